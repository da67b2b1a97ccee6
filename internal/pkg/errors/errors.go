package xerrors

import (
	"errors"
)

// Common reusable application errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized access")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("conflict: resource already exists")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrGateway           = errors.New("payment gateway error")
	ErrInternal          = errors.New("internal server error")
)

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
