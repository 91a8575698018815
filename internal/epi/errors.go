package epi

import (
	"errors"
	"fmt"
)

// Domain errors for model construction and simulation.
var (
	// ErrInvalidParameter indicates a model constructed with out-of-range
	// arguments.
	ErrInvalidParameter = errors.New("epi: invalid model parameter")

	// ErrIntegrationFailure indicates the continuous-mode solver failed to
	// converge.
	ErrIntegrationFailure = errors.New("epi: integration failed to converge")

	// ErrZeroRecoveryRate indicates a derived quantity dividing by gamma
	// while gamma == 0.
	ErrZeroRecoveryRate = errors.New("epi: recovery rate is zero")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("epi: dimension mismatch between state and system")
)

// SimulationError wraps an error with run position context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
