package control

import (
	"fmt"
	"math"

	"github.com/san-kum/waypointctl/internal/path"
)

const (
	DefaultKp             = 0.2
	DefaultKi             = 0.01
	DefaultKd             = 0.05
	DefaultCrossTrackGain = 5.0
	DefaultMaxSteer       = 1.22 // rad
	DefaultSteerRangeDeg  = 70.0
)

// ZeroSpeedPolicy selects what the lateral law does when the vehicle speed is
// zero and the cross-track term would divide by it.
type ZeroSpeedPolicy string

const (
	// ZeroSpeedNeutral drops the cross-track term for the cycle and steers on
	// heading error alone.
	ZeroSpeedNeutral ZeroSpeedPolicy = "neutral"
	// ZeroSpeedError fails the cycle with a *DegenerateStateError.
	ZeroSpeedError ZeroSpeedPolicy = "error"
)

// Gains are the fixed constants of the control law. DefaultGains reproduces
// the reference tuning; IntegralLimit > 0 enables anti-windup, which departs
// from it.
type Gains struct {
	Kp             float64
	Ki             float64
	Kd             float64
	LookAhead      int
	CrossTrackGain float64
	MaxSteer       float64
	SteerRangeDeg  float64
	IntegralLimit  float64
	ZeroSpeed      ZeroSpeedPolicy
}

func DefaultGains() Gains {
	return Gains{
		Kp:             DefaultKp,
		Ki:             DefaultKi,
		Kd:             DefaultKd,
		LookAhead:      path.DefaultLookAhead,
		CrossTrackGain: DefaultCrossTrackGain,
		MaxSteer:       DefaultMaxSteer,
		SteerRangeDeg:  DefaultSteerRangeDeg,
		ZeroSpeed:      ZeroSpeedNeutral,
	}
}

// SteerConversion maps a steering angle in radians onto the normalized
// actuator range: 180/(70π) for the default 70° lock.
func (g Gains) SteerConversion() float64 {
	return 180.0 / (g.SteerRangeDeg * math.Pi)
}

func (g Gains) Validate() error {
	for name, v := range map[string]float64{
		"kp": g.Kp, "ki": g.Ki, "kd": g.Kd,
		"crosstrack_gain": g.CrossTrackGain, "max_steer": g.MaxSteer,
		"steer_range_deg": g.SteerRangeDeg, "integral_limit": g.IntegralLimit,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrParameterBounds, name)
		}
	}
	switch {
	case g.LookAhead < 1:
		return fmt.Errorf("%w: lookahead must be at least 1, got %d", ErrParameterBounds, g.LookAhead)
	case g.MaxSteer <= 0 || g.MaxSteer > math.Pi:
		return fmt.Errorf("%w: max_steer must be in (0, π], got %g", ErrParameterBounds, g.MaxSteer)
	case g.SteerRangeDeg <= 0:
		return fmt.Errorf("%w: steer_range_deg must be positive, got %g", ErrParameterBounds, g.SteerRangeDeg)
	case g.IntegralLimit < 0:
		return fmt.Errorf("%w: integral_limit must be >= 0, got %g", ErrParameterBounds, g.IntegralLimit)
	case g.CrossTrackGain < 0:
		return fmt.Errorf("%w: crosstrack_gain must be >= 0, got %g", ErrParameterBounds, g.CrossTrackGain)
	}
	switch g.ZeroSpeed {
	case ZeroSpeedNeutral, ZeroSpeedError:
	default:
		return fmt.Errorf("%w: unknown zero speed policy %q", ErrParameterBounds, g.ZeroSpeed)
	}
	return nil
}
