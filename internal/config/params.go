package config

import (
	"fmt"
	"sort"
)

// setters maps the dotted yaml path of every numeric field to a setter, so
// sweeps and scenarios can address fields by the names used in config files.
var setters = map[string]func(*Config, float64){
	"particles":       func(c *Config, v float64) { c.Particles = int(v) },
	"radius":          func(c *Config, v float64) { c.Radius = v },
	"elasticity":      func(c *Config, v float64) { c.Elasticity = v },
	"damping":         func(c *Config, v float64) { c.Damping = v },
	"impulse":         func(c *Config, v float64) { c.Impulse = v },
	"gravity.accel":   func(c *Config, v float64) { c.Gravity.Accel = v },
	"gravity.scale":   func(c *Config, v float64) { c.Gravity.Scale = v },
	"gravity.enabled": func(c *Config, v float64) { c.Gravity.Enabled = v != 0 },
	"mouse.radius":    func(c *Config, v float64) { c.Mouse.Radius = v },
	"mouse.strength":  func(c *Config, v float64) { c.Mouse.Strength = v },
	"init.speed_x":    func(c *Config, v float64) { c.Init.SpeedX = v },
	"init.speed_y":    func(c *Config, v float64) { c.Init.SpeedY = v },
}

// SetParam sets a numeric field by name. The config is not validated.
func (c *Config) SetParam(name string, v float64) error {
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("unknown parameter: %s (available: %v)", name, ParamNames())
	}
	set(c, v)
	return nil
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func ParamNames() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
