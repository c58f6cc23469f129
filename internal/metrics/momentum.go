package metrics

import "github.com/san-kum/collisim/internal/dynamo"

// Momentum reports |Σv| of the latest frame.
type Momentum struct {
	name    string
	current float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(s *dynamo.Set, t float64) {
	var sum dynamo.Vec
	for _, v := range s.Vel {
		sum = sum.Add(v)
	}
	m.current = sum.Len()
}

func (m *Momentum) Value() float64 { return m.current }
func (m *Momentum) Reset()         { m.current = 0 }
