package control

import (
	"math"

	"github.com/san-kum/waypointctl/internal/path"
	"github.com/san-kum/waypointctl/internal/vehicle"
)

// Lateral is the steering controller output for one cycle. Angles are in
// radians.
type Lateral struct {
	PathHeading     float64
	LateralError    float64
	HeadingError    float64
	CrossTrackError float64
	CrossTrackTerm  float64
	Steer           float64
	Fallback        bool
}

// SteeringController combines the heading error to the local path direction
// with atan(k·e/v) on the cross-track error e.
type SteeringController struct {
	CrossTrackGain float64
	MaxSteer       float64
	ZeroSpeed      ZeroSpeedPolicy
}

func NewSteeringController(g Gains) SteeringController {
	return SteeringController{
		CrossTrackGain: g.CrossTrackGain,
		MaxSteer:       g.MaxSteer,
		ZeroSpeed:      g.ZeroSpeed,
	}
}

// Update computes the steering angle toward the segment from waypoint idx to
// the look-ahead waypoint idy. The result is bounded to ±MaxSteer.
func (c SteeringController) Update(p path.Path, idx, idy int, s vehicle.State) (Lateral, error) {
	wp := p.At(idx)
	heading := p.Heading(idx, idy)
	sin, cos := math.Sincos(heading)

	out := Lateral{
		PathHeading:  heading,
		LateralError: (s.X-wp.X)*sin + (s.Y-wp.Y)*cos,
		HeadingError: NormalizeAngle(heading - s.Yaw),
	}

	// The cross-track error takes the sign of the heading error.
	out.CrossTrackError = -math.Abs(out.LateralError)
	if out.HeadingError > 0 {
		out.CrossTrackError = math.Abs(out.LateralError)
	}

	if s.Speed == 0 {
		if c.ZeroSpeed == ZeroSpeedError {
			return Lateral{}, &DegenerateStateError{Frame: s.Frame, Speed: s.Speed, Reason: "cross-track term divides by zero speed"}
		}
		out.Fallback = true
	} else {
		out.CrossTrackTerm = math.Atan(c.CrossTrackGain * out.CrossTrackError / s.Speed)
	}

	out.Steer = Clamp(NormalizeAngle(out.CrossTrackTerm+out.HeadingError), -c.MaxSteer, c.MaxSteer)
	return out, nil
}
