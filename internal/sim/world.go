package sim

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/san-kum/collisim/internal/compute"
	"github.com/san-kum/collisim/internal/dynamo"
	"github.com/san-kum/collisim/internal/physics"
)

// World is the frame driver core. It owns the particle set, the parameters
// and the backend; callers only hand it elapsed time and input.
type World struct {
	Set    *dynamo.Set
	params dynamo.Params
	opts   Options

	backend   compute.Backend
	rng       *rand.Rand
	frame     int
	t         float64
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(params dynamo.Params, opts Options, backend compute.Backend) (*World, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if backend == nil {
		backend = compute.New(0)
	}

	w := &World{
		params:    params,
		opts:      opts,
		backend:   backend,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
	w.Reset()
	return w, nil
}

func (w *World) AddMetric(m dynamo.Metric)     { w.metrics = append(w.metrics, m) }
func (w *World) AddObserver(o dynamo.Observer) { w.observers = append(w.observers, o) }

func (w *World) Params() dynamo.Params    { return w.params }
func (w *World) Backend() compute.Backend { return w.backend }
func (w *World) Frames() int              { return w.frame }
func (w *World) Time() float64            { return w.t }
func (w *World) Gravity() bool            { return w.params.GravityEnabled }

// SetGravity toggles gravity for the following frames.
func (w *World) SetGravity(on bool) { w.params.GravityEnabled = on }

// Reset scatters the particles again from the configured seed.
func (w *World) Reset() {
	w.rng = rand.New(rand.NewSource(w.opts.Seed))
	w.Set = dynamo.NewSet(w.opts.Particles)
	w.frame = 0
	w.t = 0

	for i := range w.Set.Pos {
		w.Set.Pos[i] = dynamo.Vec{w.uniform(), w.uniform()}
		w.Set.Vel[i] = dynamo.Vec{w.uniform() * w.opts.SpeedX, w.uniform() * w.opts.SpeedY}
	}
	if w.opts.SortByX {
		slices.SortFunc(w.Set.Pos, func(a, b dynamo.Vec) int {
			switch {
			case a[0] < b[0]:
				return -1
			case a[0] > b[0]:
				return 1
			}
			return 0
		})
	}

	for _, m := range w.metrics {
		m.Reset()
	}
}

func (w *World) uniform() float64 { return w.rng.Float64()*2 - 1 }

// Frame applies the input and gravity, then steps the backend. It blocks
// until every partition is done.
func (w *World) Frame(dt float64, in Input) (FrameStats, error) {
	start := time.Now()
	p := w.params

	if in.Impulse {
		physics.ApplyImpulse(w.Set.Vel, w.rng, p.ImpulseScale)
	}
	touched := physics.ApplyMouse(w.Set, in.Mouse, in.Attract, in.Repel, p)
	if p.GravityEnabled {
		physics.ApplyGravity(w.Set.Vel, p.Gravity, p.GravityScale, dt)
	}

	step := w.backend.Step(w.Set, p, dt)

	w.frame++
	w.t += dt

	stats := FrameStats{
		Frame:   w.frame,
		Time:    w.t,
		Dt:      dt,
		Mouse:   touched,
		Step:    step,
		Elapsed: time.Since(start),
	}

	if w.opts.ValidateState && !w.Set.IsValid() {
		return stats, &dynamo.SimError{Frame: w.frame, Time: w.t, Wrapped: dynamo.ErrInvalidState}
	}

	for _, m := range w.metrics {
		m.Observe(w.Set, w.t)
	}
	for _, obs := range w.observers {
		obs.OnFrame(w.Set, w.frame, w.t)
	}

	return stats, nil
}

// Run advances the world by a fixed dt without input, sampling every metric
// after each frame. A frame that fails validation halts the run; the partial
// result is returned together with that error.
func (w *World) Run(ctx context.Context, frames int, dt float64) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, frames)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, dt)
	}

	start := time.Now()
	result := &Result{
		Samples:  make(map[string][]float64),
		Metrics:  make(map[string]float64),
		Contacts: make([]int, 0, frames),
		Errors:   make([]error, 0),
	}
	for _, m := range w.metrics {
		result.Samples[m.Name()] = make([]float64, 0, frames)
	}

	var halt error
	for i := 0; i < frames && halt == nil; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		stats, err := w.Frame(dt, Input{})
		if err != nil {
			result.Errors = append(result.Errors, err)
			halt = err
			continue
		}

		result.Frames++
		result.Contacts = append(result.Contacts, stats.Step.Contacts.Touching)
		for _, m := range w.metrics {
			result.Samples[m.Name()] = append(result.Samples[m.Name()], m.Value())
		}
	}

	result.Time = w.t
	result.Elapsed = time.Since(start)
	for _, m := range w.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, halt
}
