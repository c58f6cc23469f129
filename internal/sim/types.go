package sim

import (
	"time"

	"github.com/san-kum/collisim/internal/compute"
	"github.com/san-kum/collisim/internal/dynamo"
)

// Input is what the frame driver collected from the user since the last
// frame.
type Input struct {
	Impulse bool
	Attract bool
	Repel   bool
	Mouse   dynamo.Vec
}

type Options struct {
	Particles int
	Seed      int64
	// SpeedX and SpeedY bound the initial velocities. Zero starts at rest.
	SpeedX float64
	SpeedY float64
	// SortByX orders the initial positions by x so partitions are vertical
	// strips of the box.
	SortByX       bool
	ValidateState bool
}

func DefaultOptions() Options {
	return Options{
		Particles:     2000,
		SortByX:       true,
		ValidateState: true,
	}
}

type FrameStats struct {
	Frame   int
	Time    float64
	Dt      float64
	Mouse   int // particles pushed by the mouse
	Step    compute.Stats
	Elapsed time.Duration
}

type Result struct {
	Frames   int
	Time     float64
	Samples  map[string][]float64
	Metrics  map[string]float64
	Contacts []int
	Elapsed  time.Duration
	Errors   []error
}
