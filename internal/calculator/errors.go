package calculator

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBins     = errors.New("invalid bins")
	ErrInvalidWindow   = errors.New("invalid window")
	ErrLengthMismatch  = errors.New("length mismatch")
	ErrNonFinitePrice  = errors.New("non-finite price")
	ErrNonFiniteVolume = errors.New("non-finite volume")
	ErrPriceRange      = errors.New("price range too wide")
)

// ValidationError reports an input that failed validation before any
// computation started. Err is one of the sentinel errors above.
type ValidationError struct {
	Field      string
	Value      float64
	Constraint string
	Err        error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: argument `%s` (%v) %s", e.Err, e.Field, e.Value, e.Constraint)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(sentinel error, field string, value float64, format string, args ...any) error {
	return &ValidationError{
		Field:      field,
		Value:      value,
		Constraint: fmt.Sprintf(format, args...),
		Err:        sentinel,
	}
}
