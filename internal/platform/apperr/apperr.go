// Package apperr defines the error classes shared by all domain services.
// Handlers translate them to HTTP status codes exactly once; services and
// repositories never reference HTTP.
package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that the requested row does not exist within the
// caller's tenant. A row owned by another tenant is indistinguishable from a
// missing one.
var ErrNotFound = errors.New("not found")

// ValidationError reports missing or malformed required input. It is always
// raised before any storage mutation is attempted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validation builds a ValidationError with a formatted message.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps a failure from the persistence layer. The cause is kept
// for logging but is opaque to API clients.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError. A nil err returns nil.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Err: err}
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
