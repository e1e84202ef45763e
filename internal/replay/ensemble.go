package replay

import (
	"context"
	"sync"

	"github.com/san-kum/waypointctl/internal/control"
	"github.com/san-kum/waypointctl/internal/path"
	"github.com/san-kum/waypointctl/internal/vehicle"
)

// Variant is one named gain set to replay.
type Variant struct {
	Name  string
	Gains control.Gains
}

type VariantResult struct {
	Name   string
	Result *Result
	Err    error
}

// Ensemble replays one trace under several gain sets in parallel. Each
// variant gets its own loop and metric instances.
type Ensemble struct {
	path    path.Path
	metrics func() []Metric
}

func NewEnsemble(p path.Path, metrics func() []Metric) *Ensemble {
	return &Ensemble{path: p, metrics: metrics}
}

// Run builds every loop up front and fails if any gain set is invalid. Run
// errors of individual variants are reported in their VariantResult.
func (e *Ensemble) Run(ctx context.Context, trace []vehicle.State, variants []Variant, cfg Config) ([]VariantResult, error) {
	runners := make([]*Runner, len(variants))
	for i, v := range variants {
		loop, err := control.New(v.Gains)
		if err != nil {
			return nil, err
		}
		if err := loop.SetPath(e.path); err != nil {
			return nil, err
		}
		runners[i] = New(loop)
		if e.metrics != nil {
			for _, m := range e.metrics() {
				runners[i].AddMetric(m)
			}
		}
	}

	results := make([]VariantResult, len(variants))
	var wg sync.WaitGroup
	for i := range variants {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			res, err := runners[idx].Run(ctx, trace, cfg)
			results[idx] = VariantResult{Name: variants[idx].Name, Result: res, Err: err}
		}(i)
	}
	wg.Wait()

	return results, nil
}
