package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	chaterrors "chat-room/errors"
)

func TestTokenIssuer_Generate_Then_Validate(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Generate("alice")
	req.NoError(err)
	req.NotEmpty(token)

	claims, err := issuer.Validate(token)
	req.NoError(err)
	req.Equal("alice", claims.Username)
}

func TestTokenIssuer_Validate_Rejects_Wrong_Secret(t *testing.T) {
	req := require.New(t)
	token, err := NewTokenIssuer("secret-a", time.Hour).Generate("alice")
	req.NoError(err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Validate(token)

	req.Error(err)
}

func TestTokenIssuer_Validate_Rejects_Expired_Token(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Generate("alice")
	req.NoError(err)

	_, err = issuer.Validate(token)
	req.Error(err)
}

func TestTokenIssuer_Validate_Rejects_Garbage(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", time.Hour)

	_, err := issuer.Validate("definitely.not.a.token")

	req.Error(err)
}

func TestHashPassword_Then_Compare(t *testing.T) {
	req := require.New(t)

	encoded, err := HashPassword("correct horse battery")
	req.NoError(err)

	ok, err := ComparePassword("correct horse battery", encoded)
	req.NoError(err)
	req.True(ok)

	ok, err = ComparePassword("wrong guess", encoded)
	req.NoError(err)
	req.False(ok)
}

func TestHashPassword_Salts_Are_Unique(t *testing.T) {
	req := require.New(t)

	first, err := HashPassword("same password")
	req.NoError(err)
	second, err := HashPassword("same password")
	req.NoError(err)

	req.NotEqual(first, second)
}

func TestComparePassword_Rejects_Malformed_Hash(t *testing.T) {
	req := require.New(t)

	_, err := ComparePassword("anything", "not-an-encoded-hash")

	req.Error(err)
}

func TestValidateRegistration(t *testing.T) {
	req := require.New(t)

	req.NoError(ValidateRegistration(Credentials{Username: "alice", Password: "longenough"}))

	// Too short a password
	err := ValidateRegistration(Credentials{Username: "alice", Password: "short"})
	req.ErrorIs(err, chaterrors.ErrInvalidRegistration)

	// Username with spaces
	err = ValidateRegistration(Credentials{Username: "al ice", Password: "longenough"})
	req.ErrorIs(err, chaterrors.ErrInvalidRegistration)

	// Missing username
	err = ValidateRegistration(Credentials{Password: "longenough"})
	req.ErrorIs(err, chaterrors.ErrInvalidRegistration)
}
