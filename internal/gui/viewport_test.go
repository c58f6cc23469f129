package gui

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/collisim/internal/dynamo"
)

func TestFit(t *testing.T) {
	g := NewWithT(t)

	v := Fit(1200, 675, 24)
	g.Expect(v.Size).To(Equal(627.0))
	g.Expect(v.X).To(Equal(286.5))
	g.Expect(v.Y).To(Equal(24.0))

	v = Fit(10, 10, 20)
	g.Expect(v.Size).To(Equal(1.0))
}

func TestViewport_ToScreen(t *testing.T) {
	g := NewWithT(t)
	v := Viewport{X: 100, Y: 50, Size: 200}

	x, y := v.ToScreen(dynamo.Vec{-1, 1})
	g.Expect([]float64{x, y}).To(Equal([]float64{100, 50}))

	x, y = v.ToScreen(dynamo.Vec{1, -1})
	g.Expect([]float64{x, y}).To(Equal([]float64{300, 250}))

	x, y = v.ToScreen(dynamo.Vec{0, 0})
	g.Expect([]float64{x, y}).To(Equal([]float64{200, 150}))
}

func TestViewport_RoundTrip(t *testing.T) {
	g := NewWithT(t)
	v := Fit(800, 600, 10)

	for _, p := range []dynamo.Vec{{0, 0}, {0.5, -0.25}, {-0.9, 0.7}} {
		x, y := v.ToScreen(p)
		back := v.ToWorld(x, y)
		g.Expect(back[0]).To(BeNumerically("~", p[0], 1e-9))
		g.Expect(back[1]).To(BeNumerically("~", p[1], 1e-9))
	}
}

func TestViewport_ToWorldClamps(t *testing.T) {
	g := NewWithT(t)
	v := Viewport{X: 100, Y: 50, Size: 200}

	g.Expect(v.ToWorld(0, 0)).To(Equal(dynamo.Vec{-1, 1}))
	g.Expect(v.ToWorld(1000, 1000)).To(Equal(dynamo.Vec{1, -1}))
}

func TestHeat(t *testing.T) {
	tests := []struct {
		speed, ref, want float64
	}{
		{0, 2, 0},
		{1, 2, 0.5},
		{5, 2, 1},
		{1, 0, 0},
	}
	for _, tt := range tests {
		if got := Heat(tt.speed, tt.ref); got != tt.want {
			t.Errorf("Heat(%g, %g) = %g, want %g", tt.speed, tt.ref, got, tt.want)
		}
	}
}
