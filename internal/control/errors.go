package control

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateState indicates feedback the lateral law cannot divide by,
	// i.e. zero speed under the strict zero-speed policy.
	ErrDegenerateState = errors.New("control: degenerate vehicle state")

	// ErrParameterBounds indicates a gain or limit outside its valid range.
	ErrParameterBounds = errors.New("control: parameter out of valid bounds")
)

// DegenerateStateError carries the cycle that could not be computed.
type DegenerateStateError struct {
	Frame  int
	Speed  float64
	Reason string
}

func (e *DegenerateStateError) Error() string {
	return fmt.Sprintf("control: degenerate vehicle state at frame %d (speed %g): %s", e.Frame, e.Speed, e.Reason)
}

func (e *DegenerateStateError) Is(target error) bool {
	return target == ErrDegenerateState
}
