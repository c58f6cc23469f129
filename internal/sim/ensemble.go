package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/collisim/internal/compute"
	"github.com/san-kum/collisim/internal/dynamo"
)

// Ensemble runs the same configuration from consecutive seeds in parallel.
type Ensemble struct {
	params     dynamo.Params
	opts       Options
	numRuns    int
	workers    int
	newMetrics func() []dynamo.Metric
}

// NewEnsemble prepares numRuns worlds seeded opts.Seed, opts.Seed+1, ...
// Each world gets its own backend with the given worker count and a fresh
// set of metrics from newMetrics.
func NewEnsemble(params dynamo.Params, opts Options, numRuns, workers int, newMetrics func() []dynamo.Metric) *Ensemble {
	return &Ensemble{
		params:     params,
		opts:       opts,
		numRuns:    numRuns,
		workers:    workers,
		newMetrics: newMetrics,
	}
}

func (e *Ensemble) Run(ctx context.Context, frames int, dt float64) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			opts := e.opts
			opts.Seed = e.opts.Seed + int64(i)

			w, err := New(e.params, opts, compute.New(e.workers))
			if err != nil {
				return err
			}
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					w.AddMetric(m)
				}
			}

			results[i], err = w.Run(ctx, frames, dt)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
