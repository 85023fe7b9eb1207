// Package apperrors defines the error taxonomy shared by services and handlers.
// Each Error carries the HTTP status it is answered with.
package apperrors

import (
	"net/http"

	"github.com/pkg/errors"
)

// Error is an application error with a stable code and an HTTP status.
type Error struct {
	status  int
	code    string
	message string
	cause   error
}

// New creates an Error.
func New(status int, code, message string) *Error {
	return &Error{status: status, code: code, message: message}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Status returns the HTTP status code.
func (e *Error) Status() int { return e.status }

// Code returns the machine-readable error code.
func (e *Error) Code() string { return e.code }

// Message returns the text that is safe to show to clients.
func (e *Error) Message() string { return e.message }

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.cause }

// Is matches errors of the same code, so errors.Is(err, ErrNotFound) holds for
// any copy made with WithMessage or Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

// WithMessage returns a copy with a different client-facing message.
func (e *Error) WithMessage(message string) *Error {
	return &Error{status: e.status, code: e.code, message: message, cause: e.cause}
}

// Wrap returns a copy that records cause. The cause is never sent to clients.
func (e *Error) Wrap(cause error) *Error {
	return &Error{status: e.status, code: e.code, message: e.message, cause: cause}
}

var (
	ErrValidation         = New(http.StatusBadRequest, "VALIDATION_ERROR", "validation failed")
	ErrDuplicateEmail     = New(http.StatusBadRequest, "DUPLICATE_EMAIL", "Email already exists.")
	ErrInvalidCredentials = New(http.StatusBadRequest, "INVALID_CREDENTIALS", "Email or password is wrong.")
	ErrMissingToken       = New(http.StatusUnauthorized, "MISSING_TOKEN", "Access denied.")
	ErrInvalidToken       = New(http.StatusUnauthorized, "INVALID_TOKEN", "Token is not valid.")
	ErrNotFound           = New(http.StatusNotFound, "NOT_FOUND", "resource not found")
	ErrInvalidQuery       = New(http.StatusBadRequest, "INVALID_QUERY", "invalid query")
	ErrRateLimited        = New(http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests.")
	ErrPersistence        = New(http.StatusInternalServerError, "PERSISTENCE_ERROR", "An internal error occurred.")
)

// Validation builds a ValidationError with the given message.
func Validation(message string) error {
	return ErrValidation.WithMessage(message)
}

// Persistence wraps a store failure; the detail stays server-side.
func Persistence(cause error, msg string) error {
	return ErrPersistence.Wrap(errors.Wrap(cause, msg))
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
