// Package apperror defines the error taxonomy surfaced to API clients.
// Every error here maps to a terminal HTTP response; nothing is retried.
package apperror

import "net/http"

type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap keeps an underlying cause attached while presenting a clean message.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

var (
	// ErrDuplicateIdentity: sign-up with an email/username/phone that is
	// already taken. The unique constraints on the users table are the
	// source of truth under concurrent sign-ups.
	ErrDuplicateIdentity = New(http.StatusBadRequest, "Email already registered")

	// ErrInvalidCredentials covers wrong password, wrong verification code,
	// unknown email and bad bearer tokens alike. The message never reveals
	// which of those it was.
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid credentials")

	// ErrInvalidOrExpiredToken: reset-password token that does not match or
	// whose expiry has passed.
	ErrInvalidOrExpiredToken = New(http.StatusBadRequest, "Invalid or expired reset token")

	// ErrForbidden: authenticated but with an insufficient role tier or a
	// non-active account status.
	ErrForbidden = New(http.StatusForbidden, "Forbidden")
)
