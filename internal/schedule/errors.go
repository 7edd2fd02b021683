package schedule

import (
	"errors"
	"fmt"
)

// Sentinel classes used across the store, handlers and planner.  Callers test
// with errors.Is; the typed errors below unwrap to them.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("time slot overlaps with existing block")
	ErrNotFound   = errors.New("not found")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Invalid is shorthand for a *ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError carries the intervals that blocked an operation.
type ConflictError struct {
	With []Interval
}

func (e *ConflictError) Error() string {
	if len(e.With) == 0 {
		return ErrConflict.Error()
	}
	return fmt.Sprintf("%s (%s)", ErrConflict.Error(), e.With[0])
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
