package metrics

import (
	"math"

	"github.com/san-kum/waypointctl/internal/control"
	"github.com/san-kum/waypointctl/internal/vehicle"
)

// CrossTrack is the RMS lateral error over active cycles. Failed cycles are
// skipped.
type CrossTrack struct {
	name    string
	sumSq   float64
	samples int
}

func NewCrossTrack() *CrossTrack {
	return &CrossTrack{name: "crosstrack_rms"}
}

func (c *CrossTrack) Name() string { return c.name }

func (c *CrossTrack) Observe(s vehicle.State, cmd vehicle.Command, d control.Diagnostics) {
	if !lateralSample(d) {
		return
	}
	c.sumSq += d.LateralError * d.LateralError
	c.samples++
}

func (c *CrossTrack) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return math.Sqrt(c.sumSq / float64(c.samples))
}

func (c *CrossTrack) Reset() {
	c.sumSq = 0
	c.samples = 0
}

// HeadingError is the mean absolute heading error (rad) over active cycles.
type HeadingError struct {
	name    string
	sum     float64
	samples int
}

func NewHeadingError() *HeadingError {
	return &HeadingError{name: "heading_error_mean"}
}

func (h *HeadingError) Name() string { return h.name }

func (h *HeadingError) Observe(s vehicle.State, cmd vehicle.Command, d control.Diagnostics) {
	if !lateralSample(d) {
		return
	}
	h.sum += math.Abs(d.HeadingError)
	h.samples++
}

func (h *HeadingError) Value() float64 {
	if h.samples == 0 {
		return 0
	}
	return h.sum / float64(h.samples)
}

func (h *HeadingError) Reset() {
	h.sum = 0
	h.samples = 0
}

// SpeedTracking is the RMS of desired minus actual speed. Warm-up cycles are
// included since the desired speed is computed every cycle.
type SpeedTracking struct {
	name    string
	sumSq   float64
	samples int
}

func NewSpeedTracking() *SpeedTracking {
	return &SpeedTracking{name: "speed_rms"}
}

func (st *SpeedTracking) Name() string { return st.name }

func (st *SpeedTracking) Observe(s vehicle.State, cmd vehicle.Command, d control.Diagnostics) {
	e := d.DesiredSpeed - s.Speed
	st.sumSq += e * e
	st.samples++
}

func (st *SpeedTracking) Value() float64 {
	if st.samples == 0 {
		return 0
	}
	return math.Sqrt(st.sumSq / float64(st.samples))
}

func (st *SpeedTracking) Reset() {
	st.sumSq = 0
	st.samples = 0
}

// lateralSample reports whether a cycle ran the steering law: active and
// not failed.
func lateralSample(d control.Diagnostics) bool {
	return d.Phase == control.PhaseActive && !d.Failed
}
