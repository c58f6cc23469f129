package experiment

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/collisim/internal/config"
	"github.com/san-kum/collisim/internal/dynamo"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Particles = 64
	cfg.Seed = 3
	return cfg
}

func TestRegistry_Backends(t *testing.T) {
	g := NewWithT(t)
	r := NewRegistry()

	g.Expect(r.ListBackends()).To(Equal([]string{"auto", "cpu", "serial"}))

	b, err := r.GetBackend("serial", 8)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(b.Name()).To(Equal("serial"))

	b, err = r.GetBackend("cpu", 3)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(b.Workers()).To(Equal(3))

	_, err = r.GetBackend("gpu", 1)
	g.Expect(err).To(MatchError(ContainSubstring("unknown backend")))
}

func TestRegistry_Metrics(t *testing.T) {
	g := NewWithT(t)
	r := NewRegistry()

	all, err := r.GetMetrics(nil, 0.02)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(all).To(HaveLen(len(r.ListMetrics())))

	some, err := r.GetMetrics([]string{"overlaps", "momentum"}, 0.02)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(some[0].Name()).To(Equal("overlaps"))
	g.Expect(some[1].Name()).To(Equal("momentum"))

	_, err = r.GetMetrics([]string{"temperature"}, 0.02)
	g.Expect(err).To(HaveOccurred())
}

func TestExperiment_Run(t *testing.T) {
	g := NewWithT(t)

	exp := New(Config{Sim: smallConfig(), Backend: "cpu", Workers: 2, Frames: 20, Dt: 0.01})
	g.Expect(exp.Setup(NewRegistry())).To(Succeed())

	result, err := exp.Run(context.Background())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(result.Frames).To(Equal(20))
	g.Expect(result.Metrics).To(HaveKey("kinetic_energy"))
	g.Expect(result.Metrics["containment"]).To(Equal(1.0))
}

func TestExperiment_Defaults(t *testing.T) {
	g := NewWithT(t)

	exp := New(Config{})
	cfg := exp.Config()
	g.Expect(cfg.Backend).To(Equal("auto"))
	g.Expect(cfg.Frames).To(Equal(config.DefaultFrames))
	g.Expect(cfg.Dt).To(Equal(config.DefaultDt))
}

func TestExperiment_NotSetup(t *testing.T) {
	_, err := New(Config{}).Run(context.Background())
	if err == nil {
		t.Fatal("expected error when running before Setup")
	}
}

func TestExperiment_InvalidConfig(t *testing.T) {
	g := NewWithT(t)
	cfg := smallConfig()
	cfg.Radius = 2

	err := New(Config{Sim: cfg}).Setup(NewRegistry())
	g.Expect(err).To(MatchError(dynamo.ErrParameterBounds))
}
