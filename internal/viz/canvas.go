package viz

import (
	"math"
	"strings"

	"github.com/san-kum/collisim/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is Width x Height terminal cells, (Width*2) x (Height*4) dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y). Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// ToDot maps a point of the [-1,1]² box to dot coordinates. +y is up.
func (c *Canvas) ToDot(p dynamo.Vec) (int, int) {
	w, h := float64(c.Width*2-1), float64(c.Height*4-1)
	x := (p[0] + 1) / 2 * w
	y := (1 - p[1]) / 2 * h
	return int(math.Round(x)), int(math.Round(y))
}

// CellToWorld maps a terminal cell to the centre of that cell in the box,
// clamped to [-1,1].
func (c *Canvas) CellToWorld(col, row int) dynamo.Vec {
	x := (float64(col)+0.5)/float64(c.Width)*2 - 1
	y := 1 - (float64(row)+0.5)/float64(c.Height)*2
	return dynamo.Vec{math.Max(-1, math.Min(1, x)), math.Max(-1, math.Min(1, y))}
}

// Particle draws p as a single dot, or as a ring when the radius spans more
// than one dot.
func (c *Canvas) Particle(p dynamo.Vec, radius float64) {
	cx, cy := c.ToDot(p)
	r := int(radius / 2 * float64(c.Width*2))
	if r < 2 {
		c.Set(cx, cy)
		return
	}
	c.circle(cx, cy, r)
}

// midpoint circle
func (c *Canvas) circle(cx, cy, r int) {
	x, y, err := r, 0, 1-r
	for x >= y {
		c.Set(cx+x, cy+y)
		c.Set(cx+y, cy+x)
		c.Set(cx-y, cy+x)
		c.Set(cx-x, cy+y)
		c.Set(cx-x, cy-y)
		c.Set(cx-y, cy-x)
		c.Set(cx+y, cy-x)
		c.Set(cx+x, cy-y)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Ring draws a circle of the given world radius around p, used for the
// mouse reach.
func (c *Canvas) Ring(p dynamo.Vec, radius float64) {
	cx, cy := c.ToDot(p)
	c.circle(cx, cy, int(radius/2*float64(c.Width*2)))
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		b.WriteString(string(row))
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
