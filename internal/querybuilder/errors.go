package querybuilder

import (
	"fmt"

	"github.com/pingcap/errors"
)

// MissingFieldError is returned by Build when a required field was never set.
type MissingFieldError struct {
	Entity string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.Entity, e.Field)
}

// OutOfRangeError is returned when a numeric setting falls outside its allowed bounds.
type OutOfRangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// Errors returned by Build carry a stack trace; use errors.Cause to reach the
// typed error.
func missing(entity, field string) error {
	return errors.AddStack(&MissingFieldError{Entity: entity, Field: field})
}

func outOfRange(field string, value, lower, upper int) error {
	return errors.AddStack(&OutOfRangeError{Field: field, Value: value, Min: lower, Max: upper})
}
