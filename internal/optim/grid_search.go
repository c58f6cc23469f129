package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/collisim/internal/config"
	"github.com/san-kum/collisim/internal/experiment"
)

// GridSearch evaluates every combination of the given config parameter
// values and keeps the one that minimizes a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

type Trial struct {
	Params map[string]float64
	Value  float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Size is the number of combinations.
func (g *GridSearch) Size() int {
	if len(g.ranges) == 0 {
		return 0
	}
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs one experiment per combination. build receives a fresh copy
// of base with the combination already applied. Combinations whose config
// fails to validate are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	build func(cfg *config.Config) *experiment.Experiment,
	registry *experiment.Registry,
	metricName string,
) (Trial, []Trial, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Trial{}, nil, fmt.Errorf("grid search: %d names, %d ranges", len(g.paramNames), len(g.ranges))
	}

	best := Trial{Value: math.Inf(1)}
	trials := make([]Trial, 0, g.Size())

	err := g.each(func(current map[string]float64) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		cfg := base.Clone()
		for name, v := range current {
			if err := cfg.SetParam(name, v); err != nil {
				return err
			}
		}
		if cfg.Validate() != nil {
			return nil
		}

		exp := build(cfg)
		if err := exp.Setup(registry); err != nil {
			return err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("grid search: run has no metric %q", metricName)
		}

		t := Trial{Params: current, Value: val}
		trials = append(trials, t)
		if val < best.Value {
			best = t
		}
		return nil
	})
	if err != nil {
		return Trial{}, trials, err
	}
	return best, trials, nil
}

// each visits the combinations in odometer order, last parameter fastest.
func (g *GridSearch) each(fn func(map[string]float64) error) error {
	if g.Size() == 0 {
		return nil
	}
	idx := make([]int, len(g.ranges))
	for {
		current := make(map[string]float64, len(g.paramNames))
		for i, name := range g.paramNames {
			current[name] = g.ranges[i][idx[i]]
		}
		if err := fn(current); err != nil {
			return err
		}

		d := len(idx) - 1
		for d >= 0 {
			idx[d]++
			if idx[d] < len(g.ranges[d]) {
				break
			}
			idx[d] = 0
			d--
		}
		if d < 0 {
			return nil
		}
	}
}
