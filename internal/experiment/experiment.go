package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/collisim/internal/config"
	"github.com/san-kum/collisim/internal/dynamo"
	"github.com/san-kum/collisim/internal/sim"
)

// Config selects how a headless run is executed. Sim holds the physical
// setup; Frames and Dt default to Sim.Run when zero.
type Config struct {
	Sim     *config.Config
	Backend string
	Workers int
	Frames  int
	Dt      float64
	Metrics []string
}

type Experiment struct {
	cfg     Config
	world   *sim.World
	metrics []dynamo.Metric
}

func New(cfg Config) *Experiment {
	if cfg.Sim == nil {
		cfg.Sim = config.DefaultConfig()
	}
	if cfg.Backend == "" {
		cfg.Backend = "auto"
	}
	if cfg.Frames == 0 {
		cfg.Frames = cfg.Sim.Run.Frames
	}
	if cfg.Dt == 0 {
		cfg.Dt = cfg.Sim.Run.Dt
	}
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(r *Registry) error {
	if err := e.cfg.Sim.Validate(); err != nil {
		return err
	}
	backend, err := r.GetBackend(e.cfg.Backend, e.cfg.Workers)
	if err != nil {
		return err
	}
	world, err := sim.New(e.cfg.Sim.Params(), e.cfg.Sim.Options(), backend)
	if err != nil {
		return err
	}
	ms, err := r.GetMetrics(e.cfg.Metrics, e.cfg.Sim.Radius)
	if err != nil {
		return err
	}
	for _, m := range ms {
		world.AddMetric(m)
	}
	e.world = world
	e.metrics = ms
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.world == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.world.Run(ctx, e.cfg.Frames, e.cfg.Dt)
}

func (e *Experiment) Config() Config           { return e.cfg }
func (e *Experiment) Metrics() []dynamo.Metric { return e.metrics }

// World returns the underlying world for adding observers.
func (e *Experiment) World() *sim.World {
	return e.world
}
