package metrics

import (
	"github.com/san-kum/waypointctl/internal/control"
	"github.com/san-kum/waypointctl/internal/vehicle"
)

// Saturation is the fraction of successful active cycles with an actuator
// pinned at its limit: steer at ±1, or throttle/brake at 1.
type Saturation struct {
	name      string
	saturated int
	samples   int
}

func NewSaturation() *Saturation {
	return &Saturation{
		name: "saturation",
	}
}

func (s *Saturation) Name() string {
	return s.name
}

func (s *Saturation) Observe(st vehicle.State, cmd vehicle.Command, d control.Diagnostics) {
	if !lateralSample(d) {
		return
	}
	s.samples++
	if cmd.Throttle >= vehicle.MaxPedal || cmd.Brake >= vehicle.MaxPedal ||
		cmd.Steer <= vehicle.MinSteer || cmd.Steer >= vehicle.MaxSteer {
		s.saturated++
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.saturated) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.saturated = 0
	s.samples = 0
}
