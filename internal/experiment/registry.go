package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/collisim/internal/compute"
	"github.com/san-kum/collisim/internal/dynamo"
	"github.com/san-kum/collisim/internal/metrics"
)

type Registry struct {
	backends map[string]func(workers int) compute.Backend
	metrics  map[string]func(radius float64) dynamo.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		backends: make(map[string]func(int) compute.Backend),
		metrics:  make(map[string]func(float64) dynamo.Metric),
	}

	r.backends["auto"] = func(workers int) compute.Backend { return compute.New(workers) }
	r.backends["serial"] = func(int) compute.Backend { return compute.NewSerialBackend() }
	r.backends["cpu"] = func(workers int) compute.Backend {
		if workers <= 0 {
			return compute.NewCPUBackend()
		}
		return compute.NewCPUBackendN(workers)
	}

	r.metrics["kinetic_energy"] = func(float64) dynamo.Metric { return metrics.NewKineticEnergy() }
	r.metrics["energy_loss"] = func(float64) dynamo.Metric { return metrics.NewEnergyLoss() }
	r.metrics["momentum"] = func(float64) dynamo.Metric { return metrics.NewMomentum() }
	r.metrics["containment"] = func(radius float64) dynamo.Metric { return metrics.NewContainment(radius) }
	r.metrics["overlaps"] = func(radius float64) dynamo.Metric { return metrics.NewOverlaps(radius) }

	return r
}

func (r *Registry) GetBackend(name string, workers int) (compute.Backend, error) {
	fn, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s (available: %v)", name, r.ListBackends())
	}
	return fn(workers), nil
}

// GetMetrics builds fresh metrics by name. No names means all of them.
func (r *Registry) GetMetrics(names []string, radius float64) ([]dynamo.Metric, error) {
	if len(names) == 0 {
		names = r.ListMetrics()
	}
	out := make([]dynamo.Metric, 0, len(names))
	for _, name := range names {
		fn, ok := r.metrics[name]
		if !ok {
			return nil, fmt.Errorf("unknown metric: %s (available: %v)", name, r.ListMetrics())
		}
		out = append(out, fn(radius))
	}
	return out, nil
}

func (r *Registry) ListBackends() []string { return sortedKeys(r.backends) }
func (r *Registry) ListMetrics() []string  { return sortedKeys(r.metrics) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
