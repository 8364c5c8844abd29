package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError is a request-level failure with a client-facing message and an
// HTTP status. Err carries the internal cause and is only ever shown to
// clients in development mode.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// Validation signals missing or malformed input.
func Validation(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message}
}

// Auth signals bad credentials or an unusable token.
func Auth(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: message}
}

// Forbidden signals a role or ownership mismatch.
func Forbidden(message string) *AppError {
	return &AppError{Status: fiber.StatusForbidden, Message: message}
}

// NotFound signals a missing record. Also used where existence must not leak
// to non-owners.
func NotFound(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}

// Conflict signals a duplicate on a unique key. The original API reports
// these as 400, not 409.
func Conflict(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message}
}

// Upload signals a blob storage failure.
func Upload(message string, err error) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: message, Err: err}
}

// Internal wraps anything unexpected.
func Internal(err error) *AppError {
	return &AppError{Status: fiber.StatusInternalServerError, Message: "Error interno del servidor", Err: err}
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}
