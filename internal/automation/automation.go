package automation

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/collisim/internal/config"
	"github.com/san-kum/collisim/internal/dynamo"
	"github.com/san-kum/collisim/internal/experiment"
	"github.com/san-kum/collisim/internal/sim"
)

// Scenario is a scripted input sequence replayed against one world.
type Scenario struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Preset      string             `yaml:"preset"`
	Params      map[string]float64 `yaml:"params"`
	Steps       []ScenarioStep     `yaml:"steps"`
}

// ScenarioStep holds its input for Frames frames. Gravity, when set, is
// switched before the first frame; Impulse fires on the first frame only.
type ScenarioStep struct {
	Frames  int         `yaml:"frames"`
	Dt      float64     `yaml:"dt"`
	Gravity *bool       `yaml:"gravity"`
	Impulse bool        `yaml:"impulse"`
	Mouse   *MouseInput `yaml:"mouse"`
}

type MouseInput struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Mode string  `yaml:"mode"` // attract or repel
}

type StepResult struct {
	Step     int
	Frames   int
	Time     float64
	Contacts float64 // mean touching pairs per frame
	Touched  int     // particles pushed by the mouse
	Metrics  map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: scenario has no steps", dynamo.ErrParameterBounds)
	}
	for i, step := range s.Steps {
		if step.Frames <= 0 {
			return fmt.Errorf("%w: step %d: frames must be positive", dynamo.ErrParameterBounds, i+1)
		}
		if step.Dt < 0 {
			return fmt.Errorf("%w: step %d: dt must be non-negative", dynamo.ErrParameterBounds, i+1)
		}
		if m := step.Mouse; m != nil && m.Mode != "attract" && m.Mode != "repel" {
			return fmt.Errorf("%w: step %d: mouse mode %q", dynamo.ErrParameterBounds, i+1, m.Mode)
		}
	}
	return nil
}

// Config resolves the scenario's preset and parameters, then the caller's
// layers on top, so flags and config files still win over the scenario.
func (s *Scenario) Config(layers ...config.Layer) (*config.Config, error) {
	all := append([]config.Layer{config.WithPreset(s.Preset), config.WithParams(s.Params)}, layers...)
	return config.Resolve(all...)
}

// RunScenario replays every step against w. Metrics attached to w are
// sampled at the end of each step.
func RunScenario(ctx context.Context, scenario *Scenario, w *sim.World, metrics []dynamo.Metric, defaultDt float64, logger *log.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "frames", step.Frames)

		if step.Gravity != nil {
			w.SetGravity(*step.Gravity)
		}
		dt := step.Dt
		if dt == 0 {
			dt = defaultDt
		}

		in := sim.Input{Impulse: step.Impulse}
		if m := step.Mouse; m != nil {
			in.Mouse = dynamo.Vec{m.X, m.Y}
			in.Attract = m.Mode == "attract"
			in.Repel = m.Mode == "repel"
		}

		res := StepResult{Step: i + 1, Metrics: make(map[string]float64)}
		contacts := 0
		for f := 0; f < step.Frames; f++ {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			stats, err := w.Frame(dt, in)
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			in.Impulse = false
			contacts += stats.Step.Contacts.Touching
			res.Touched += stats.Mouse
			res.Frames++
		}

		res.Time = w.Time()
		res.Contacts = float64(contacts) / float64(res.Frames)
		for _, m := range metrics {
			res.Metrics[m.Name()] = m.Value()
		}
		results = append(results, res)
	}

	return results, nil
}

// ParameterSweep runs the same experiment across evenly spaced values of
// one config parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Backend   string
	Workers   int
	Frames    int
	Dt        float64
	Metrics   []string
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	FPS        float64
}

func (s *ParameterSweep) Values() []float64 {
	if s.NumSteps <= 1 {
		return []float64{s.ParamMin}
	}
	step := (s.ParamMax - s.ParamMin) / float64(s.NumSteps-1)
	values := make([]float64, s.NumSteps)
	for i := range values {
		values[i] = s.ParamMin + float64(i)*step
	}
	return values
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, logger *log.Logger) ([]SweepResult, error) {
	base := sweep.Base
	if base == nil {
		base = config.DefaultConfig()
	}

	values := sweep.Values()
	results := make([]SweepResult, 0, len(values))
	for i, v := range values {
		cfg := base.Clone()
		if err := cfg.SetParam(sweep.ParamName, v); err != nil {
			return nil, err
		}

		exp := experiment.New(experiment.Config{
			Sim:     cfg,
			Backend: sweep.Backend,
			Workers: sweep.Workers,
			Frames:  sweep.Frames,
			Dt:      sweep.Dt,
			Metrics: sweep.Metrics,
		})
		if err := exp.Setup(registry); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, v, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		r := SweepResult{ParamValue: v, Metrics: result.Metrics}
		if secs := result.Elapsed.Seconds(); secs > 0 {
			r.FPS = float64(result.Frames) / secs
		}
		results = append(results, r)

		logger.Debug("sweep", "point", i+1, "of", len(values), sweep.ParamName, v)
	}

	return results, nil
}
