package compute

import (
	"time"

	"github.com/san-kum/collisim/internal/dynamo"
)

type SerialBackend struct{}

func NewSerialBackend() *SerialBackend { return &SerialBackend{} }

func (b *SerialBackend) Name() string { return "serial" }
func (b *SerialBackend) Workers() int { return 1 }

func (b *SerialBackend) Step(s *dynamo.Set, p dynamo.Params, dt float64) Stats {
	start := time.Now()
	if s.Len() == 0 {
		return Stats{Elapsed: time.Since(start)}
	}

	c, hits := stepRange(s.View(dynamo.Range{Start: 0, End: s.Len()}), p, dt)
	return Stats{
		Ranges:     1,
		Tasks:      2,
		Contacts:   c,
		BorderHits: hits,
		Elapsed:    time.Since(start),
	}
}
