package control

import "math"

// NormalizeAngle wraps a into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	a -= math.Pi
	if a <= -math.Pi {
		return math.Pi
	}
	return a
}

// Clamp saturates v into [lo, hi]. NaN saturates to lo.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		return hi
	}
	if v >= lo {
		return v
	}
	return lo
}
