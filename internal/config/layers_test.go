package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/collisim/internal/dynamo"
)

func TestResolve_LayerOrder(t *testing.T) {
	g := NewWithT(t)

	path := filepath.Join(t.TempDir(), "sim.yaml")
	g.Expect(os.WriteFile(path, []byte("particles: 500\nseed: 3\n"), 0644)).To(Succeed())

	flags := func(c *Config) error {
		c.Seed = 7
		return nil
	}
	cfg, err := Resolve(WithPreset("dense"), WithFile(path), flags)
	g.Expect(err).NotTo(HaveOccurred())

	// dense sets particles and radius; the file overrides particles only
	g.Expect(cfg.Particles).To(Equal(500))
	g.Expect(cfg.Radius).To(Equal(0.03))
	g.Expect(cfg.Seed).To(Equal(int64(7)))
	g.Expect(cfg.Damping).To(Equal(DefaultDamping))
}

func TestResolve_EmptyLayers(t *testing.T) {
	g := NewWithT(t)

	cfg, err := Resolve(WithPreset(""), WithFile(""), nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(*cfg).To(Equal(*DefaultConfig()))
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name  string
		layer Layer
	}{
		{"unknown preset", WithPreset("lava")},
		{"missing file", WithFile(filepath.Join(t.TempDir(), "missing.yaml"))},
		{"unknown param", WithParams(map[string]float64{"viscosity": 1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.layer); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestResolve_Validates(t *testing.T) {
	_, err := Resolve(WithParams(map[string]float64{"radius": 2}))
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}
