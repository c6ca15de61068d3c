package model

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation error")
	// ErrData matches any *DataError via errors.Is.
	ErrData = errors.New("data error")
)

// ValidationError reports an argument rejected before computation began.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid is shorthand for building a *ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DataError reports malformed external input such as an unparsable file line.
type DataError struct {
	Source string
	Line   int // 0 when unknown
	Err    error
}

func (e *DataError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

func (e *DataError) Is(target error) bool { return target == ErrData }

// ConvergenceError is returned when clustering exceeds its iteration cap.
type ConvergenceError struct {
	Iterations int
	MaxShift   float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("clustering did not converge after %d iterations (last centroid shift %.6f)", e.Iterations, e.MaxShift)
}

// StallError is returned when a payoff schedule exceeds its month cap.
type StallError struct {
	Months      int
	Outstanding float64
}

func (e *StallError) Error() string {
	return fmt.Sprintf("debts not repaid after %d months (outstanding %.2f); payment too small for interest growth", e.Months, e.Outstanding)
}
