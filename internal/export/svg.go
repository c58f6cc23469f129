package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/collisim/internal/dynamo"
)

// SVGOptions controls snapshot rendering. Zero values fall back to the
// defaults below.
type SVGOptions struct {
	Size     int     // width and height in pixels
	HotSpeed float64 // speed drawn in the hot color
	Cold     string
	Hot      string
}

func (o SVGOptions) withDefaults() SVGOptions {
	if o.Size <= 0 {
		o.Size = 800
	}
	if o.HotSpeed <= 0 {
		o.HotSpeed = 2
	}
	if o.Cold == "" {
		o.Cold = "#00c8ff"
	}
	if o.Hot == "" {
		o.Hot = "#ff50c8"
	}
	return o
}

// WriteSetSVG draws every particle of s as a circle of the given radius,
// colored by speed. The [-1,1]² box fills the whole image with +y up.
func WriteSetSVG(w io.Writer, s *dynamo.Set, radius float64, opts SVGOptions) error {
	opts = opts.withDefaults()
	size := float64(opts.Size)
	scale := size / 2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="none">
`, opts.Size, opts.Size, opts.Size, opts.Size)

	r := math.Max(radius*scale, 0.5)
	for i, p := range s.Pos {
		cx := (p[0] + 1) * scale
		cy := (1 - p[1]) * scale
		heat := math.Min(s.Vel[i].Len()/opts.HotSpeed, 1)
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, r, mixHex(opts.Cold, opts.Hot, heat))
	}

	sb.WriteString("</g>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// SeriesToSVG plots values against their index as a polyline scaled to
// their own range.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor)

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// mixHex interpolates two #rrggbb colors. Malformed input yields a.
func mixHex(a, b string, t float64) string {
	var ar, ag, ab, br, bg, bb int
	if _, err := fmt.Sscanf(a, "#%02x%02x%02x", &ar, &ag, &ab); err != nil {
		return a
	}
	if _, err := fmt.Sscanf(b, "#%02x%02x%02x", &br, &bg, &bb); err != nil {
		return a
	}
	mix := func(x, y int) int { return int(math.Round(float64(x) + float64(y-x)*t)) }
	return fmt.Sprintf("#%02x%02x%02x", mix(ar, br), mix(ag, bg), mix(ab, bb))
}
