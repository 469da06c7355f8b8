package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotAuthenticated    = fmt.Errorf("not authenticated")
	ErrEmptyMessage        = fmt.Errorf("message text is empty")
	ErrMissingAuthor       = fmt.Errorf("message author is missing")
	ErrInvalidCredentials  = fmt.Errorf("invalid credentials")
	ErrUserAlreadyExists   = fmt.Errorf("user already exists")
	ErrInvalidRegistration = fmt.Errorf("invalid registration request")
	ErrTokenGeneration     = fmt.Errorf("token generation failed")
	ErrSubscriberGone      = fmt.Errorf("subscriber sink closed")
	ErrSlowSubscriber      = fmt.Errorf("subscriber buffer full")
	ErrEmptyCensorList     = fmt.Errorf("no censored words have been found")
)

// MapToHTTPStatus converts domain errors into transport status codes.
// Anything unknown stays internal so nothing leaks to clients.
func MapToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrMissingAuthor), errors.Is(err, ErrInvalidRegistration):
		return http.StatusBadRequest
	case errors.Is(err, ErrUserAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// IsValidation reports whether err rejects the posted content itself
// rather than the caller's identity.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyMessage) || errors.Is(err, ErrMissingAuthor)
}
