package replay

import (
	"errors"
	"fmt"

	"github.com/san-kum/waypointctl/internal/control"
	"github.com/san-kum/waypointctl/internal/vehicle"
)

// ErrEmptyTrace indicates a trace with no records.
var ErrEmptyTrace = errors.New("replay: empty trace")

// Cycle is everything produced by one control cycle.
type Cycle struct {
	Index       int
	State       vehicle.State
	Command     vehicle.Command
	Diagnostics control.Diagnostics
	Err         error
}

type Metric interface {
	Name() string
	Observe(s vehicle.State, cmd vehicle.Command, d control.Diagnostics)
	Value() float64
	Reset()
}

type Observer interface {
	OnCycle(c Cycle)
}

type Config struct {
	StopOnError bool
}

type Result struct {
	States      []vehicle.State
	Commands    []vehicle.Command
	Diagnostics []control.Diagnostics
	Metrics     map[string]float64
	Errors      []error
	Cycles      int
}

// Series names accepted by Result.Series.
var SeriesNames = []string{
	"throttle", "brake", "steer",
	"speed", "desired_speed", "speed_error",
	"heading_error", "crosstrack_error", "steer_angle",
}

// Series extracts one per-cycle signal from the result. Unknown names return
// nil.
func (r *Result) Series(name string) []float64 {
	pick := seriesPicker(name)
	if pick == nil {
		return nil
	}
	out := make([]float64, len(r.Commands))
	for i := range r.Commands {
		out[i] = pick(r.States[i], r.Commands[i], r.Diagnostics[i])
	}
	return out
}

func seriesPicker(name string) func(vehicle.State, vehicle.Command, control.Diagnostics) float64 {
	switch name {
	case "throttle":
		return func(_ vehicle.State, c vehicle.Command, _ control.Diagnostics) float64 { return c.Throttle }
	case "brake":
		return func(_ vehicle.State, c vehicle.Command, _ control.Diagnostics) float64 { return c.Brake }
	case "steer":
		return func(_ vehicle.State, c vehicle.Command, _ control.Diagnostics) float64 { return c.Steer }
	case "speed":
		return func(s vehicle.State, _ vehicle.Command, _ control.Diagnostics) float64 { return s.Speed }
	case "desired_speed":
		return func(_ vehicle.State, _ vehicle.Command, d control.Diagnostics) float64 { return d.DesiredSpeed }
	case "speed_error":
		return func(_ vehicle.State, _ vehicle.Command, d control.Diagnostics) float64 { return d.SpeedError }
	case "heading_error":
		return func(_ vehicle.State, _ vehicle.Command, d control.Diagnostics) float64 { return d.HeadingError }
	case "crosstrack_error":
		return func(_ vehicle.State, _ vehicle.Command, d control.Diagnostics) float64 { return d.CrossTrackError }
	case "steer_angle":
		return func(_ vehicle.State, _ vehicle.Command, d control.Diagnostics) float64 { return d.SteerAngle }
	}
	return nil
}

// CycleError wraps a failed cycle with its position in the trace.
type CycleError struct {
	Index     int
	Frame     int
	Timestamp float64
	Wrapped   error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle %d (frame %d, t=%.4f): %v", e.Index, e.Frame, e.Timestamp, e.Wrapped)
}

func (e *CycleError) Unwrap() error {
	return e.Wrapped
}
