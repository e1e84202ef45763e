package metrics

import (
	"math"

	"github.com/san-kum/waypointctl/internal/control"
	"github.com/san-kum/waypointctl/internal/vehicle"
)

type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(s vehicle.State, cmd vehicle.Command, d control.Diagnostics) {
	c.sum += math.Abs(cmd.Throttle) + math.Abs(cmd.Brake) + math.Abs(cmd.Steer)
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
