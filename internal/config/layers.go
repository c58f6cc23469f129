package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Layer changes a config in place. Layers only touch the fields they set, so
// later layers override earlier ones field by field.
type Layer func(*Config) error

// Resolve applies layers in order on top of DefaultConfig and validates the
// result. Nil layers are skipped.
func Resolve(layers ...Layer) (*Config, error) {
	cfg := DefaultConfig()
	for _, apply := range layers {
		if apply == nil {
			continue
		}
		if err := apply(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithPreset applies the named preset. An empty name is a no-op.
func WithPreset(name string) Layer {
	return func(c *Config) error {
		if name == "" {
			return nil
		}
		apply, ok := Presets[name]
		if !ok {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
		}
		apply(c)
		return nil
	}
}

// WithFile overlays the fields present in a yaml file. An empty path is a
// no-op.
func WithFile(path string) Layer {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}
}

// WithParams sets numeric fields by name, in name order.
func WithParams(params map[string]float64) Layer {
	return func(c *Config) error {
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := c.SetParam(name, params[name]); err != nil {
				return err
			}
		}
		return nil
	}
}
