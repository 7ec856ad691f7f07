// Package apperrors defines the error taxonomy shared by the data layer.
// Instrumentation annotates and re-raises these; it never converts one kind
// into another. The core returns structured errors only and leaves
// user-facing text to the presentation layer.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected indicates a controller operation was attempted before
	// the database session was established. Fatal to the call, never retried.
	ErrNotConnected = errors.New("database not connected")

	// ErrNoRowsAffected indicates an UPDATE matched no rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// ValidationError reports malformed input to a controller operation.
// It is returned before any backend call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validation constructs a ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps a backend I/O or constraint failure. Op names the
// repository operation that failed, e.g. "casedb.InsertCase".
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persist wraps err as a PersistenceError. Returns nil for a nil err.
func Persist(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
