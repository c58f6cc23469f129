package physics

import (
	"testing"

	"github.com/san-kum/collisim/internal/dynamo"
)

func TestIntegrate(t *testing.T) {
	s := dynamo.NewSet(3)
	s.Pos[1] = dynamo.Vec{0.5, 0.5}
	s.Vel[1] = dynamo.Vec{1, -2}
	s.Vel[2] = dynamo.Vec{9, 9}

	Integrate(s.View(dynamo.Range{Start: 0, End: 2}), 0.1)

	if got := s.Pos[1]; !got.ApproxEqual(dynamo.Vec{0.6, 0.3}) {
		t.Errorf("pos[1] = %v, want (0.6, 0.3)", got)
	}
	if s.Pos[2] != (dynamo.Vec{}) {
		t.Errorf("particle outside the view moved: %v", s.Pos[2])
	}
}

func TestIntegrate_ZeroVelocity(t *testing.T) {
	for _, dt := range []float64{0, 0.016, 1, 1e6, -3} {
		s := dynamo.NewSet(2)
		s.Pos[0] = dynamo.Vec{0.25, -0.75}

		Integrate(s.View(dynamo.Range{Start: 0, End: 2}), dt)

		if s.Pos[0] != (dynamo.Vec{0.25, -0.75}) {
			t.Errorf("dt=%v: position moved to %v", dt, s.Pos[0])
		}
	}
}
