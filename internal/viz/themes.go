package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the terminal driver.
type Theme struct {
	Name     string
	Particle lipgloss.Color
	Border   lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Active   lipgloss.Color
	Error    lipgloss.Color
}

var (
	// cyan particles on black, as in the window driver
	ThemeCyan = Theme{
		Name:     "cyan",
		Particle: lipgloss.Color("#00ffff"),
		Border:   lipgloss.Color("#444466"),
		Accent:   lipgloss.Color("#ff00ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666688"),
		Active:   lipgloss.Color("#00ff88"),
		Error:    lipgloss.Color("#ff4444"),
	}

	ThemeEmber = Theme{
		Name:     "ember",
		Particle: lipgloss.Color("#ff9f43"),
		Border:   lipgloss.Color("#5a3a2e"),
		Accent:   lipgloss.Color("#feca57"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b5c"),
		Active:   lipgloss.Color("#ff6b6b"),
		Error:    lipgloss.Color("#ff4757"),
	}

	ThemeMono = Theme{
		Name:     "mono",
		Particle: lipgloss.Color("#e0e0e0"),
		Border:   lipgloss.Color("#3c3c3c"),
		Accent:   lipgloss.Color("#ffffff"),
		Text:     lipgloss.Color("#b4b4b4"),
		Muted:    lipgloss.Color("#5a5a5a"),
		Active:   lipgloss.Color("#ffffff"),
		Error:    lipgloss.Color("#ff0000"),
	}

	CurrentTheme = ThemeCyan

	Themes = []Theme{ThemeCyan, ThemeEmber, ThemeMono}
)

func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyan
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}
