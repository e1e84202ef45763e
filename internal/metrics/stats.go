package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/waypointctl/internal/replay"
)

// Stats summarizes one per-cycle series.
type Stats struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	RMS    float64
}

func Describe(x []float64) Stats {
	n := len(x)
	if n == 0 {
		return Stats{}
	}
	st := Stats{
		N:   n,
		Min: floats.Min(x),
		Max: floats.Max(x),
		RMS: floats.Norm(x, 2) / math.Sqrt(float64(n)),
	}
	if n == 1 {
		st.Mean = x[0]
		return st
	}
	st.Mean, st.StdDev = stat.MeanStdDev(x, nil)
	return st
}

// Defaults is the metric set registered for every replay.
func Defaults() []replay.Metric {
	return []replay.Metric{
		NewCrossTrack(),
		NewHeadingError(),
		NewSpeedTracking(),
		NewControlEffort(),
		NewSaturation(),
		NewSteerOscillation(),
	}
}
