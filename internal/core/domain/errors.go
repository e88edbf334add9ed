package domain

import "errors"

// Domain errors are terminal, user-attributable outcomes. They are never
// retried and reach the HTTP boundary unchanged, where a single mapping
// turns each kind into a fixed status.
var (
	ErrEmailAlreadyExists      = errors.New("email is already registered")
	ErrIDDocumentAlreadyExists = errors.New("id document is already registered")
	ErrEntityNotFound          = errors.New("entity not found")

	// ErrInvalidCredentials deliberately covers both "no such user" and
	// "wrong password" so a caller cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenInvalid    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrTooManyAttempts = errors.New("too many failed login attempts")
)
