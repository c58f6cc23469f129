package compute

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/san-kum/collisim/internal/dynamo"
	"github.com/san-kum/collisim/internal/physics"
)

type CPUBackend struct {
	workers int

	// partitions are cached for the last set size seen
	n      int
	ranges []dynamo.Range
}

func NewCPUBackend() *CPUBackend {
	return NewCPUBackendN(runtime.NumCPU())
}

func NewCPUBackendN(workers int) *CPUBackend {
	if workers < 1 {
		workers = 1
	}
	return &CPUBackend{workers: workers, n: -1}
}

func (c *CPUBackend) Name() string { return fmt.Sprintf("cpu/%d", c.workers) }
func (c *CPUBackend) Workers() int { return c.workers }

// Ranges returns the partitions used for a set of n particles.
func (c *CPUBackend) Ranges(n int) []dynamo.Range {
	if n != c.n {
		ranges := Partition(n, c.workers)
		if err := Verify(ranges, n); err != nil {
			panic(err)
		}
		c.n, c.ranges = n, ranges
	}
	return c.ranges
}

// Step runs every non-empty partition on its own goroutine and returns once
// all of them are done.
func (c *CPUBackend) Step(s *dynamo.Set, p dynamo.Params, dt float64) Stats {
	start := time.Now()
	ranges := c.Ranges(s.Len())

	contacts := make([]physics.Contacts, len(ranges))
	hits := make([]int, len(ranges))

	var wg sync.WaitGroup
	stats := Stats{}
	for w, r := range ranges {
		if r.Empty() {
			continue
		}
		stats.Ranges++
		stats.Tasks += 2 // collision then integration, same goroutine

		wg.Add(1)
		go func(worker int, v dynamo.View) {
			defer wg.Done()
			contacts[worker], hits[worker] = stepRange(v, p, dt)
		}(w, s.View(r))
	}

	wg.Wait()

	for w := range ranges {
		stats.Contacts.Add(contacts[w])
		stats.BorderHits += hits[w]
	}
	stats.Elapsed = time.Since(start)
	return stats
}
