package services

import (
	"fmt"

	"chat-room/auth"
	chaterrors "chat-room/errors"
	"chat-room/repositories"
)

type IAuthService interface {
	Register(username, password string) (string, error)
	Login(username, password string) (string, error)
}

// AuthService is the Session Gate: it turns credentials into signed
// session tokens. The chat core never sees a password, only the verified
// identity extracted from a token.
type AuthService struct {
	users  repositories.IUserRepository
	tokens *auth.TokenIssuer
}

func NewAuthService(users repositories.IUserRepository, tokens *auth.TokenIssuer) IAuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(username, password string) (string, error) {
	creds := auth.Credentials{Username: username, Password: password}

	// Validate business rules before any expensive cryptographic work.
	if err := auth.ValidateRegistration(creds); err != nil {
		return "", err
	}

	// Hashing happens here so the repository never sees a plain password.
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	if err := s.users.CreateUser(username, hashed); err != nil {
		return "", err
	}

	token, err := s.tokens.Generate(username)
	if err != nil {
		return "", chaterrors.ErrTokenGeneration
	}
	return token, nil
}

func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.users.GetUser(username)
	if err != nil {
		// Same answer for unknown user and bad password, no enumeration.
		return "", chaterrors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", chaterrors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(username)
	if err != nil {
		return "", chaterrors.ErrTokenGeneration
	}
	return token, nil
}
