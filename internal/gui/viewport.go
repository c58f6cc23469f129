package gui

import (
	"math"

	"github.com/san-kum/collisim/internal/dynamo"
)

// Viewport is the square region of the window the [-1,1]² box is drawn into.
type Viewport struct {
	X, Y float64
	Size float64
}

// Fit returns the largest square viewport centred in a w x h window, inset by
// margin pixels on every side.
func Fit(w, h, margin float64) Viewport {
	size := max(math.Min(w, h)-2*margin, 1)
	return Viewport{
		X:    (w - size) / 2,
		Y:    (h - size) / 2,
		Size: size,
	}
}

// ToScreen maps a box point to window pixels. +y is up in the box and down on
// screen.
func (v Viewport) ToScreen(p dynamo.Vec) (float64, float64) {
	return v.X + (p[0]+1)/2*v.Size, v.Y + (1-p[1])/2*v.Size
}

// ToWorld maps window pixels to a box point, clamped to [-1,1].
func (v Viewport) ToWorld(x, y float64) dynamo.Vec {
	wx := (x-v.X)/v.Size*2 - 1
	wy := 1 - (y-v.Y)/v.Size*2
	return dynamo.Vec{clamp(wx), clamp(wy)}
}

// Scale converts a box length to pixels.
func (v Viewport) Scale(l float64) float64 {
	return l / 2 * v.Size
}

func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}

// Heat maps a speed to [0,1], saturating at ref.
func Heat(speed, ref float64) float64 {
	if ref <= 0 {
		return 0
	}
	return math.Min(speed/ref, 1)
}
