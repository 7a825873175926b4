package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrEmptyRegistry indicates a run was started with no bodies.
	ErrEmptyRegistry = errors.New("sim: initial registry is empty")

	// ErrInvalidConfig indicates a non-positive or otherwise unusable
	// configuration value.
	ErrInvalidConfig = errors.New("sim: invalid configuration")

	// ErrMassInvariant indicates a body reached non-positive mass, which the
	// merge rules make structurally impossible; the run aborts.
	ErrMassInvariant = errors.New("sim: mass invariant violated")

	// ErrUnstable indicates the state diverged to NaN or Inf.
	ErrUnstable = errors.New("sim: state diverged (NaN or Inf)")
)

// SimError wraps a run error with the step and time it occurred at.
type SimError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
