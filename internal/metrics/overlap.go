package metrics

import "github.com/san-kum/collisim/internal/dynamo"

// Overlaps counts pairs closer than two radii over the whole set after a
// frame. This includes pairs split across partitions, which the parallel
// backend never resolves. O(N²) per observation.
type Overlaps struct {
	name    string
	radius  float64
	current int
}

func NewOverlaps(radius float64) *Overlaps {
	return &Overlaps{name: "overlaps", radius: radius}
}

func (o *Overlaps) Name() string { return o.name }

func (o *Overlaps) Observe(s *dynamo.Set, t float64) {
	limit := 4 * o.radius * o.radius
	count := 0
	for i := 0; i < len(s.Pos)-1; i++ {
		for j := i + 1; j < len(s.Pos); j++ {
			d := s.Pos[j].Sub(s.Pos[i])
			if d.Dot(d) < limit {
				count++
			}
		}
	}
	o.current = count
}

func (o *Overlaps) Value() float64 { return float64(o.current) }
func (o *Overlaps) Reset()         { o.current = 0 }
