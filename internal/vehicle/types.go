package vehicle

import (
	"fmt"
	"math"
)

// State is the vehicle feedback for one control cycle. Positions are in
// meters, Yaw in radians, Speed in m/s and Timestamp in seconds.
type State struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Yaw       float64 `json:"yaw"`
	Speed     float64 `json:"speed"`
	Timestamp float64 `json:"timestamp"`
	Frame     int     `json:"frame"`
}

func (s State) IsValid() bool {
	for _, v := range []float64{s.X, s.Y, s.Yaw, s.Speed, s.Timestamp} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return s.Frame >= 0
}

func (s State) Validate() error {
	if !s.IsValid() {
		return fmt.Errorf("%w: frame %d", ErrInvalidState, s.Frame)
	}
	return nil
}

// Actuator ranges.
const (
	MinPedal = 0.0
	MaxPedal = 1.0
	MinSteer = -1.0
	MaxSteer = 1.0
)

// Command is the normalized actuator demand: Throttle and Brake in [0,1],
// Steer in [-1,1].
type Command struct {
	Throttle float64 `json:"throttle"`
	Brake    float64 `json:"brake"`
	Steer    float64 `json:"steer"`
}

// Neutral is the all-zero command.
func Neutral() Command { return Command{} }

func (c Command) InBounds() bool {
	return inRange(c.Throttle, MinPedal, MaxPedal) &&
		inRange(c.Brake, MinPedal, MaxPedal) &&
		inRange(c.Steer, MinSteer, MaxSteer)
}

func (c Command) IsNeutral() bool {
	return c.Throttle == 0 && c.Brake == 0 && c.Steer == 0
}

func (c Command) String() string {
	return fmt.Sprintf("throttle=%.3f brake=%.3f steer=%.3f", c.Throttle, c.Brake, c.Steer)
}

func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}
