package config

import "sort"

// Presets adjust DefaultConfig; each one only touches what it changes.
var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"rain": func(c *Config) {
		c.Gravity.Enabled = true
	},
	"gas": func(c *Config) {
		c.Elasticity = 1
		c.Damping = 1
		c.Init.SpeedX, c.Init.SpeedY = 1, 1
	},
	"dense": func(c *Config) {
		c.Particles = 3000
		c.Radius = 0.03
	},
	"sparse": func(c *Config) {
		c.Particles = 200
		c.Init.SpeedX, c.Init.SpeedY = 5, 2
	},
	"sticky": func(c *Config) {
		c.Elasticity = 0.2
		c.Damping = 0.3
		c.Gravity.Enabled = true
		c.Correction = CorrectApproach
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
