package replay

import (
	"context"

	"github.com/san-kum/waypointctl/internal/control"
	"github.com/san-kum/waypointctl/internal/vehicle"
)

type Runner struct {
	loop      *control.Loop
	metrics   []Metric
	observers []Observer
}

func New(loop *control.Loop) *Runner {
	return &Runner{
		loop:      loop,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Loop() *control.Loop { return r.loop }

// Run steps the loop once per trace record. Failed cycles contribute a
// neutral command and a *CycleError to the result; with StopOnError the run
// ends at the first one and the error is also returned.
func (r *Runner) Run(ctx context.Context, trace []vehicle.State, cfg Config) (*Result, error) {
	if len(trace) == 0 {
		return nil, ErrEmptyTrace
	}

	result := &Result{
		States:      make([]vehicle.State, 0, len(trace)),
		Commands:    make([]vehicle.Command, 0, len(trace)),
		Diagnostics: make([]control.Diagnostics, 0, len(trace)),
		Metrics:     make(map[string]float64),
		Errors:      make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	var runErr error
	for i, s := range trace {
		select {
		case <-ctx.Done():
			r.collectMetrics(result)
			return result, ctx.Err()
		default:
		}

		c := r.Step(i, s)

		result.States = append(result.States, c.State)
		result.Commands = append(result.Commands, c.Command)
		result.Diagnostics = append(result.Diagnostics, c.Diagnostics)
		result.Cycles++

		if c.Err != nil {
			result.Errors = append(result.Errors, c.Err)
			if cfg.StopOnError {
				runErr = c.Err
				break
			}
		}
	}

	r.collectMetrics(result)
	return result, runErr
}

// RunWithCallback streams cycles to fn until the trace ends, fn returns false
// or ctx is done.
func (r *Runner) RunWithCallback(ctx context.Context, trace []vehicle.State, cfg Config, fn func(Cycle) bool) error {
	if len(trace) == 0 {
		return ErrEmptyTrace
	}

	for i, s := range trace {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c := r.Step(i, s)
		if !fn(c) {
			return nil
		}
		if c.Err != nil && cfg.StopOnError {
			return c.Err
		}
	}
	return nil
}

// Step runs one cycle for trace record i and feeds it to metrics and
// observers.
func (r *Runner) Step(i int, s vehicle.State) Cycle {
	cmd, err := r.loop.Step(s)
	c := Cycle{
		Index:       i,
		State:       s,
		Command:     cmd,
		Diagnostics: r.loop.Diagnostics(),
	}
	if err != nil {
		c.Err = &CycleError{Index: i, Frame: s.Frame, Timestamp: s.Timestamp, Wrapped: err}
	}

	for _, m := range r.metrics {
		m.Observe(c.State, c.Command, c.Diagnostics)
	}
	for _, obs := range r.observers {
		obs.OnCycle(c)
	}
	return c
}

// Metrics returns the current value of every registered metric.
func (r *Runner) Metrics() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (r *Runner) collectMetrics(result *Result) {
	for k, v := range r.Metrics() {
		result.Metrics[k] = v
	}
}
