package viz

import (
	"testing"
	"unicode/utf8"
)

func TestSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
		want   string
	}{
		{"empty", nil, 4, "────"},
		{"zero width", []float64{1, 2}, 0, ""},
		{"flat", []float64{3, 3, 3}, 8, "▁▁▁"},
		{"ramp", []float64{0, 7}, 8, "▁█"},
		{"truncated", []float64{9, 9, 0, 7}, 2, "▁█"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sparkline(tt.values, tt.width); got != tt.want {
				t.Errorf("Sparkline() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSparkline_Width(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i % 7)
	}
	if n := utf8.RuneCountInString(Sparkline(values, 32)); n != 32 {
		t.Errorf("rune count = %d, want 32", n)
	}
}

func TestNextThemeCycles(t *testing.T) {
	start := CurrentTheme.Name
	for range Themes {
		NextTheme()
	}
	if CurrentTheme.Name != start {
		t.Errorf("theme after full cycle = %q, want %q", CurrentTheme.Name, start)
	}
}
