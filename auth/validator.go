package auth

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	chaterrors "chat-room/errors"
)

var validate = validator.New()

// Credentials is a register or login request body.
type Credentials struct {
	Username string `json:"username" validate:"required,min=2,max=32,alphanum"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ValidateRegistration enforces the account rules before any expensive
// hashing work happens.
func ValidateRegistration(c Credentials) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", chaterrors.ErrInvalidRegistration, err)
	}
	return nil
}
