package core

import (
	"errors"
	"fmt"
)

// ErrNotFound signals an absent session or durable record. Cold lookups are
// expected; callers treat this as "create a new session", never as a failure.
var ErrNotFound = errors.New("not found")

// ValidationError rejects a request with a missing or malformed field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// PersistenceError wraps a durable read or write failure. A mutating
// operation that hits one must not report success.
type PersistenceError struct {
	Op  string
	ID  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s for session %q: %v", e.Op, e.ID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func NewPersistenceError(op, id string, err error) *PersistenceError {
	return &PersistenceError{Op: op, ID: id, Err: err}
}
