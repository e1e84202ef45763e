package control

import "github.com/san-kum/waypointctl/internal/vehicle"

// ControllerState is the memory the law carries from one cycle to the next.
// It starts zeroed and is never reset.
type ControllerState struct {
	PrevSpeed float64
	PrevError float64
	Integral  float64
	PrevSteer float64
}

// Longitudinal is the speed controller output for one cycle.
type Longitudinal struct {
	Error        float64
	Integral     float64
	Derivative   float64
	Acceleration float64
	Throttle     float64
	Brake        float64
}

// SpeedController is a discrete PID on speed error. The integral and
// derivative are per cycle, not per second.
type SpeedController struct {
	Kp            float64
	Ki            float64
	Kd            float64
	IntegralLimit float64
}

func NewSpeedController(g Gains) SpeedController {
	return SpeedController{
		Kp:            g.Kp,
		Ki:            g.Ki,
		Kd:            g.Kd,
		IntegralLimit: g.IntegralLimit,
	}
}

// Update advances st by one cycle and returns the pedal demand. A negative
// acceleration demand becomes brake, anything else throttle; both are
// saturated to [0, 1].
func (c SpeedController) Update(st *ControllerState, desired, current float64) Longitudinal {
	err := desired - current

	st.Integral += err
	if c.IntegralLimit > 0 {
		st.Integral = Clamp(st.Integral, -c.IntegralLimit, c.IntegralLimit)
	}
	derivative := err - st.PrevError

	acc := c.Kp*err + c.Ki*st.Integral + c.Kd*derivative

	out := Longitudinal{
		Error:        err,
		Integral:     st.Integral,
		Derivative:   derivative,
		Acceleration: acc,
	}
	if acc < 0 {
		out.Brake = -acc
	} else {
		out.Throttle = acc
	}
	out.Throttle = Clamp(out.Throttle, vehicle.MinPedal, vehicle.MaxPedal)
	out.Brake = Clamp(out.Brake, vehicle.MinPedal, vehicle.MaxPedal)

	st.PrevError = err
	return out
}
