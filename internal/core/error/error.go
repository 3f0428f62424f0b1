package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// StorageErrorMessage describes failures of the profile/history store.
	StorageErrorMessage = "storage operation failed"
	// StorageNotFoundMessage describes a missing record in the store.
	StorageNotFoundMessage = "record not found"
	// GenerationErrorMessage describes failures of the generation backend.
	GenerationErrorMessage = "generation backend failed"
)

// Sentinel errors for the two failure classes a turn can surface. Wrapped
// errors keep these in their chain so callers can branch with errors.Is.
var (
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrGenerationBackend  = errors.New("generation backend error")
)

// Error wraps an underlying error with an HTTP-style status and safe message.
type Error struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the provided information.
func New(err error, status int, message string) *Error {
	return &Error{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// WrapGeneration wraps a generation backend failure so it carries the
// ErrGenerationBackend sentinel and a consistent status.
func WrapGeneration(err error) *Error {
	if err == nil {
		return nil
	}
	return New(fmt.Errorf("%w: %w", ErrGenerationBackend, err), http.StatusBadGateway, GenerationErrorMessage)
}

// Is reports whether the target matches the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to Error or the wrapped error in a chain.
func (e *Error) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**Error); ok {
		*t = e
		return true
	}
	return false
}
