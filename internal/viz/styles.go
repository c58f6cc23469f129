package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas lipgloss.Style
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	active lipgloss.Style
	muted  lipgloss.Style
	err    lipgloss.Style
	graph  lipgloss.Style
}

// themed builds the styles for the current theme.
func themed() styles {
	t := CurrentTheme
	return styles{
		canvas: lipgloss.NewStyle().Foreground(t.Particle),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Border).
			Padding(0, 2).
			Width(38),
		header: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		active: lipgloss.NewStyle().Foreground(t.Active).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(t.Muted),
		err:    lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		graph:  lipgloss.NewStyle().Foreground(t.Particle).MarginTop(1),
	}
}

// Sparkline renders the last width values as block characters scaled to
// their own min/max.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}
