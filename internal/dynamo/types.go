package dynamo

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Vec = mgl64.Vec2

// Set holds N particles as two parallel arrays. Index i in Pos and Vel is
// particle i. The length never changes after NewSet.
type Set struct {
	Pos []Vec
	Vel []Vec
}

func NewSet(n int) *Set {
	if n < 0 {
		n = 0
	}
	return &Set{
		Pos: make([]Vec, n),
		Vel: make([]Vec, n),
	}
}

func (s *Set) Len() int { return len(s.Pos) }

func (s *Set) Validate() error {
	if len(s.Pos) != len(s.Vel) {
		return fmt.Errorf("%w: %d positions, %d velocities", ErrDimensionMismatch, len(s.Pos), len(s.Vel))
	}
	return nil
}

func (s *Set) IsValid() bool {
	for i := range s.Pos {
		if !finite(s.Pos[i]) || !finite(s.Vel[i]) {
			return false
		}
	}
	return true
}

func (s *Set) Clone() *Set {
	c := &Set{
		Pos: make([]Vec, len(s.Pos)),
		Vel: make([]Vec, len(s.Vel)),
	}
	copy(c.Pos, s.Pos)
	copy(c.Vel, s.Vel)
	return c
}

// View returns the window of s covered by r. The slices are capped at the end
// of the range, so appending to them can never spill into a neighbour.
// View panics if r lies outside the set.
func (s *Set) View(r Range) View {
	if r.Start < 0 || r.End > len(s.Pos) || r.Start > r.End {
		panic(fmt.Sprintf("dynamo: range %v outside set of %d", r, len(s.Pos)))
	}
	return View{
		Offset: r.Start,
		Pos:    s.Pos[r.Start:r.End:r.End],
		Vel:    s.Vel[r.Start:r.End:r.End],
	}
}

func finite(v Vec) bool {
	return !math.IsNaN(v[0]) && !math.IsNaN(v[1]) && !math.IsInf(v[0], 0) && !math.IsInf(v[1], 0)
}

// Range is the half-open index interval [Start, End).
type Range struct {
	Start int
	End   int
}

func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

func (r Range) Empty() bool { return r.Len() == 0 }

func (r Range) Overlaps(o Range) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.Start < o.End && o.Start < r.End
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// View is one worker's window over a Set. Index i in a View is particle
// Offset+i in the Set.
type View struct {
	Offset int
	Pos    []Vec
	Vel    []Vec
}

func (v View) Len() int { return len(v.Pos) }

type Params struct {
	Radius         float64
	Elasticity     float64
	Damping        float64
	Gravity        float64
	GravityScale   float64
	GravityEnabled bool
	MouseRadius    float64
	MouseStrength  float64
	ImpulseScale   float64
	// CorrectOnApproach limits positional correction to pairs that are
	// approaching. Off by default: overlap is always pushed apart.
	CorrectOnApproach bool
}

func DefaultParams() Params {
	return Params{
		Radius:        0.02,
		Elasticity:    0.9,
		Damping:       0.75,
		Gravity:       9.81,
		GravityScale:  0.25,
		MouseRadius:   0.15,
		MouseStrength: 0.25,
		ImpulseScale:  1.0,
	}
}

func (p Params) Validate() error {
	switch {
	case !(p.Radius > 0 && p.Radius < 1):
		return fmt.Errorf("%w: radius must be in (0,1), got %g", ErrParameterBounds, p.Radius)
	case !(p.Damping > 0 && p.Damping <= 1):
		return fmt.Errorf("%w: damping must be in (0,1], got %g", ErrParameterBounds, p.Damping)
	case !(p.Elasticity >= 0 && p.Elasticity <= 1):
		return fmt.Errorf("%w: elasticity must be in [0,1], got %g", ErrParameterBounds, p.Elasticity)
	case !(p.MouseRadius >= 0) || math.IsInf(p.MouseRadius, 1):
		return fmt.Errorf("%w: mouse radius must be finite and non-negative, got %g", ErrParameterBounds, p.MouseRadius)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"gravity", p.Gravity},
		{"gravity scale", p.GravityScale},
		{"mouse strength", p.MouseStrength},
		{"impulse scale", p.ImpulseScale},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrParameterBounds, f.name, f.v)
		}
	}
	return nil
}

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(s *Set, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every frame.
type Observer interface {
	OnFrame(s *Set, frame int, t float64)
}
