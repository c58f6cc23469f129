package physics

import (
	"math"

	"github.com/san-kum/collisim/internal/dynamo"
)

// fallbackNormal separates two particles sitting on exactly the same point.
var fallbackNormal = dynamo.Vec{1, 0}

// Contacts summarizes one ResolvePairs call.
type Contacts struct {
	Pairs      int // pairs tested
	Touching   int // pairs closer than two radii
	Impulses   int // touching pairs that were approaching
	Degenerate int // touching pairs at zero distance
}

func (c *Contacts) Add(o Contacts) {
	c.Pairs += o.Pairs
	c.Touching += o.Touching
	c.Impulses += o.Impulses
	c.Degenerate += o.Degenerate
}

// ResolvePairs tests every unordered pair of the view and resolves the ones
// closer than 2·radius. Approaching pairs exchange an equal-mass impulse
// -(1+e)·vn/2 along the contact normal. Overlap is split evenly between the
// two particles; unless p.CorrectOnApproach is set this happens for
// separating pairs too.
func ResolvePairs(v dynamo.View, p dynamo.Params) Contacts {
	var c Contacts

	twiceRadius := 2 * p.Radius
	limit := twiceRadius * twiceRadius
	n := len(v.Pos)

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			c.Pairs++

			d := v.Pos[j].Sub(v.Pos[i])
			dist2 := d.Dot(d)
			if dist2 >= limit {
				continue
			}
			c.Touching++

			var normal dynamo.Vec
			dist := math.Sqrt(dist2)
			if dist == 0 {
				normal = fallbackNormal
				c.Degenerate++
			} else {
				normal = d.Mul(1 / dist)
			}

			vn := v.Vel[j].Sub(v.Vel[i]).Dot(normal)
			approaching := vn < 0
			if approaching {
				impulse := normal.Mul(-(1 + p.Elasticity) * vn / 2)
				v.Vel[i] = v.Vel[i].Sub(impulse)
				v.Vel[j] = v.Vel[j].Add(impulse)
				c.Impulses++
			}

			if approaching || !p.CorrectOnApproach {
				correction := normal.Mul((twiceRadius - dist) * 0.5)
				v.Pos[i] = v.Pos[i].Sub(correction)
				v.Pos[j] = v.Pos[j].Add(correction)
			}
		}
	}

	return c
}
