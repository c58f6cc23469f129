package config

import (
	"fmt"

	"github.com/san-kum/collisim/internal/dynamo"
	"github.com/san-kum/collisim/internal/sim"
)

const (
	DefaultParticles     = 2000
	DefaultRadius        = 0.02
	DefaultElasticity    = 0.9
	DefaultDamping       = 0.75
	DefaultGravity       = 9.81
	DefaultGravityScale  = 0.25
	DefaultMouseRadius   = 0.15
	DefaultMouseStrength = 0.25
	DefaultImpulse       = 1.0
	DefaultFrames        = 600
	DefaultDt            = 1.0 / 60
)

type Config struct {
	Particles     int           `yaml:"particles"`
	Radius        float64       `yaml:"radius"`
	Elasticity    float64       `yaml:"elasticity"`
	Damping       float64       `yaml:"damping"`
	Gravity       GravityConfig `yaml:"gravity"`
	Mouse         MouseConfig   `yaml:"mouse"`
	Impulse       float64       `yaml:"impulse"`
	Correction    string        `yaml:"correction"`
	Workers       int           `yaml:"workers"`
	Seed          int64         `yaml:"seed"`
	Init          InitConfig    `yaml:"init"`
	Run           RunConfig     `yaml:"run"`
	ValidateState bool          `yaml:"validate_state"`
}

type GravityConfig struct {
	Accel   float64 `yaml:"accel"`
	Scale   float64 `yaml:"scale"`
	Enabled bool    `yaml:"enabled"`
}

type MouseConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"`
}

type InitConfig struct {
	SpeedX  float64 `yaml:"speed_x"`
	SpeedY  float64 `yaml:"speed_y"`
	SortByX bool    `yaml:"sort_by_x"`
}

type RunConfig struct {
	Frames int     `yaml:"frames"`
	Dt     float64 `yaml:"dt"`
}

// Correction policies for overlapping pairs.
const (
	CorrectAlways   = "always"
	CorrectApproach = "approach"
)

func DefaultConfig() *Config {
	return &Config{
		Particles:  DefaultParticles,
		Radius:     DefaultRadius,
		Elasticity: DefaultElasticity,
		Damping:    DefaultDamping,
		Gravity: GravityConfig{
			Accel: DefaultGravity,
			Scale: DefaultGravityScale,
		},
		Mouse: MouseConfig{
			Radius:   DefaultMouseRadius,
			Strength: DefaultMouseStrength,
		},
		Impulse:    DefaultImpulse,
		Correction: CorrectAlways,
		Init: InitConfig{
			SortByX: true,
		},
		Run: RunConfig{
			Frames: DefaultFrames,
			Dt:     DefaultDt,
		},
		ValidateState: true,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := WithFile(path)(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Particles < 0 {
		return fmt.Errorf("%w: particles must be non-negative, got %d", dynamo.ErrParameterBounds, c.Particles)
	}
	if c.Correction != CorrectAlways && c.Correction != CorrectApproach {
		return fmt.Errorf("%w: correction must be %q or %q, got %q", dynamo.ErrParameterBounds, CorrectAlways, CorrectApproach, c.Correction)
	}
	if c.Run.Frames <= 0 {
		return fmt.Errorf("%w: run.frames must be positive, got %d", dynamo.ErrParameterBounds, c.Run.Frames)
	}
	if c.Run.Dt <= 0 {
		return fmt.Errorf("%w: run.dt must be positive, got %g", dynamo.ErrParameterBounds, c.Run.Dt)
	}
	return c.Params().Validate()
}

func (c *Config) Params() dynamo.Params {
	return dynamo.Params{
		Radius:            c.Radius,
		Elasticity:        c.Elasticity,
		Damping:           c.Damping,
		Gravity:           c.Gravity.Accel,
		GravityScale:      c.Gravity.Scale,
		GravityEnabled:    c.Gravity.Enabled,
		MouseRadius:       c.Mouse.Radius,
		MouseStrength:     c.Mouse.Strength,
		ImpulseScale:      c.Impulse,
		CorrectOnApproach: c.Correction == CorrectApproach,
	}
}

func (c *Config) Options() sim.Options {
	return sim.Options{
		Particles:     c.Particles,
		Seed:          c.Seed,
		SpeedX:        c.Init.SpeedX,
		SpeedY:        c.Init.SpeedY,
		SortByX:       c.Init.SortByX,
		ValidateState: c.ValidateState,
	}
}
