package compute

import (
	"runtime"
	"time"

	"github.com/san-kum/collisim/internal/dynamo"
	"github.com/san-kum/collisim/internal/physics"
)

type Backend interface {
	Name() string
	Workers() int
	Step(s *dynamo.Set, p dynamo.Params, dt float64) Stats
}

// Stats describes one Step. Tasks counts logical tasks: one collision and
// one integration task per non-empty range. Both run in that order on the
// range's single goroutine, so Ranges is the number of goroutines.
type Stats struct {
	Ranges     int
	Tasks      int
	Contacts   physics.Contacts
	BorderHits int
	Elapsed    time.Duration
}

// New returns the serial backend for one worker and the CPU backend
// otherwise. workers <= 0 means one per hardware thread.
func New(workers int) Backend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 {
		return NewSerialBackend()
	}
	return NewCPUBackendN(workers)
}

// stepRange is the work of one partition: collisions, then integration,
// then the border pass.
func stepRange(v dynamo.View, p dynamo.Params, dt float64) (physics.Contacts, int) {
	c := physics.ResolvePairs(v, p)
	physics.Integrate(v, dt)
	hits := physics.ResolveBorders(v, p.Radius, p.Damping)
	return c, hits
}
