package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/collisim/internal/dynamo"
)

// Box half-extent. The simulation lives in [-Bound, Bound]².
const Bound = 1.0

// ResolveBorder clamps pos into [-Bound+radius, Bound-radius] on both axes and
// reflects the velocity component of every clamped axis, scaled by damping.
// It reports whether any axis was clamped.
func ResolveBorder(pos, vel *dynamo.Vec, radius, damping float64) bool {
	lo, hi := -Bound+radius, Bound-radius
	hit := false

	for axis := 0; axis < 2; axis++ {
		clamped := mgl64.Clamp(pos[axis], lo, hi)
		if clamped != pos[axis] {
			pos[axis] = clamped
			vel[axis] *= -damping
			hit = true
		}
	}

	return hit
}

// ResolveBorders runs ResolveBorder over a view and returns the hit count.
func ResolveBorders(v dynamo.View, radius, damping float64) int {
	hits := 0
	for i := range v.Pos {
		if ResolveBorder(&v.Pos[i], &v.Vel[i], radius, damping) {
			hits++
		}
	}
	return hits
}
