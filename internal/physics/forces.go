package physics

import (
	"math/rand"

	"github.com/san-kum/collisim/internal/dynamo"
)

// ApplyGravity pulls every velocity down by g·scale·dt.
func ApplyGravity(vel []dynamo.Vec, g, scale, dt float64) {
	dv := g * scale * dt
	for i := range vel {
		vel[i][1] -= dv
	}
}

// ApplyMouse pushes particles within p.MouseRadius of the cursor away from it
// (repel) or pulls them toward it (attract). Repel wins if both are set.
// It returns the number of particles affected.
func ApplyMouse(s *dynamo.Set, cursor dynamo.Vec, attract, repel bool, p dynamo.Params) int {
	if !attract && !repel {
		return 0
	}

	touched := 0
	for i := range s.Pos {
		away := s.Pos[i].Sub(cursor)
		dist := away.Len()
		// a particle under the cursor has no direction to go
		if dist > p.MouseRadius || dist == 0 {
			continue
		}

		dir := away.Mul(1 / dist)
		if !repel {
			dir = dir.Mul(-1)
		}
		s.Vel[i] = s.Vel[i].Add(dir.Mul(p.MouseStrength))
		touched++
	}
	return touched
}

// ApplyImpulse adds a uniform random kick in [-scale, scale] to both axes of
// every velocity.
func ApplyImpulse(vel []dynamo.Vec, rng *rand.Rand, scale float64) {
	for i := range vel {
		vel[i][0] += (rng.Float64()*2 - 1) * scale
		vel[i][1] += (rng.Float64()*2 - 1) * scale
	}
}
