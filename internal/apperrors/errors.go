package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state
// of the resource (e.g. cancelling an already cancelled transaction).
var ErrConflict = errors.New("conflict with current resource state")

// ErrInternal indicates an unexpected internal failure, typically a storage
// error surfaced with its underlying cause attached.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP-ish status code and a
// stable message, so repositories can surface storage failures without
// leaking driver details across the service boundary.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	switch e.Code {
	case 404:
		return ErrNotFound
	case 400:
		return ErrValidation
	case 409:
		return ErrConflict
	default:
		return ErrInternal
	}
}

// NewAppError builds an AppError carrying the underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds a 404 AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
