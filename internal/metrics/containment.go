package metrics

import (
	"math"

	"github.com/san-kum/collisim/internal/dynamo"
	"github.com/san-kum/collisim/internal/physics"
)

// Containment is the fraction of frames in which every particle stayed
// inside the box shrunk by the radius.
type Containment struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewContainment(radius float64) *Containment {
	return &Containment{
		name:   "containment",
		radius: radius,
	}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(s *dynamo.Set, t float64) {
	c.samples++
	limit := physics.Bound - c.radius + 1e-9
	for _, p := range s.Pos {
		if math.Abs(p[0]) > limit || math.Abs(p[1]) > limit {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
