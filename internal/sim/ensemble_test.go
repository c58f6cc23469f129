package sim

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/collisim/internal/dynamo"
)

func TestEnsemble_Run(t *testing.T) {
	g := NewWithT(t)
	opts := DefaultOptions()
	opts.Particles = 100
	opts.Seed = 7
	opts.SpeedX, opts.SpeedY = 1, 1

	newMetrics := func() []dynamo.Metric { return []dynamo.Metric{&countingMetric{}} }
	e := NewEnsemble(dynamo.DefaultParams(), opts, 3, 2, newMetrics)

	results, err := e.Run(context.Background(), 5, 0.01)

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(3))
	for _, r := range results {
		g.Expect(r.Frames).To(Equal(5))
		g.Expect(r.Metrics).To(HaveKeyWithValue("count", 5.0))
	}
}

func TestEnsemble_RunReportsHalt(t *testing.T) {
	g := NewWithT(t)
	opts := DefaultOptions()
	opts.Particles = 20

	newMetrics := func() []dynamo.Metric { return []dynamo.Metric{&poisonMetric{}} }
	e := NewEnsemble(dynamo.DefaultParams(), opts, 3, 2, newMetrics)

	results, err := e.Run(context.Background(), 5, 0.01)

	g.Expect(err).To(MatchError(dynamo.ErrInvalidState))
	g.Expect(results).To(BeNil())
}

func TestEnsemble_SeedsAreDistinct(t *testing.T) {
	g := NewWithT(t)
	opts := DefaultOptions()
	opts.Particles = 20
	opts.Seed = 100

	first, err := New(dynamo.DefaultParams(), opts, nil)
	g.Expect(err).NotTo(HaveOccurred())
	opts.Seed++
	second, err := New(dynamo.DefaultParams(), opts, nil)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(first.Set.Pos).NotTo(Equal(second.Set.Pos))
}

func TestEnsemble_InvalidParams(t *testing.T) {
	p := dynamo.DefaultParams()
	p.Damping = 0

	_, err := NewEnsemble(p, DefaultOptions(), 2, 1, nil).Run(context.Background(), 5, 0.01)
	if err == nil {
		t.Error("expected error, got nil")
	}
}
