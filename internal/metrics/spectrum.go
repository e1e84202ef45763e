package metrics

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/waypointctl/internal/control"
	"github.com/san-kum/waypointctl/internal/vehicle"
)

// PowerSpectrum returns the magnitude of the first len(x)/2 FFT bins of x
// with its mean removed.
func PowerSpectrum(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}
	mean := stat.Mean(x, nil)
	centred := make([]float64, len(x))
	for i, v := range x {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantFrequency is the frequency in Hz of the strongest non-DC bin of x
// sampled every dt seconds. Flat or short series return 0.
func DominantFrequency(x []float64, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	ps := PowerSpectrum(x)
	best, peak := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > peak {
			best, peak = k, ps[k]
		}
	}
	if best == 0 || peak < 1e-9 {
		return 0
	}
	return float64(best) / (float64(len(x)) * dt)
}

// SteerOscillation is the dominant frequency (Hz) of the steer command over
// active cycles. The sample interval is the mean timestamp spacing.
type SteerOscillation struct {
	name      string
	steer     []float64
	first     float64
	last      float64
	minCycles int
}

func NewSteerOscillation() *SteerOscillation {
	return &SteerOscillation{name: "steer_osc_hz", minCycles: 8}
}

func (o *SteerOscillation) Name() string { return o.name }

func (o *SteerOscillation) Observe(s vehicle.State, cmd vehicle.Command, d control.Diagnostics) {
	if !lateralSample(d) {
		return
	}
	if len(o.steer) == 0 {
		o.first = s.Timestamp
	}
	o.last = s.Timestamp
	o.steer = append(o.steer, cmd.Steer)
}

func (o *SteerOscillation) Value() float64 {
	n := len(o.steer)
	if n < o.minCycles {
		return 0
	}
	dt := (o.last - o.first) / float64(n-1)
	return DominantFrequency(o.steer, dt)
}

func (o *SteerOscillation) Reset() {
	o.steer = o.steer[:0]
	o.first, o.last = 0, 0
}
