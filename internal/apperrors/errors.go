package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the mutation lost against concurrent state:
// a uniqueness constraint fired, a referenced row vanished, or the storage
// transaction could not complete. Callers may retry.
var ErrConflict = errors.New("conflicting state")

// ErrForbidden indicates the actor lacks the capability for the attempted action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates the caller presented no usable identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal indicates an unexpected failure that should not leak details to the caller.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an HTTP-ish status code and a
// message safe to surface. errors.Is sees through it to the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an AppError against the sentinel for its code, so
// handlers can branch on ErrNotFound etc. without unwrapping manually.
func (e *AppError) Is(target error) bool {
	switch e.Code {
	case 400:
		return target == ErrValidation
	case 401:
		return target == ErrUnauthorized
	case 403:
		return target == ErrForbidden
	case 404:
		return target == ErrNotFound
	case 409:
		return target == ErrConflict
	case 500:
		return target == ErrInternal
	}
	return false
}

// NewAppError creates an AppError with a status code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError with the given message.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
