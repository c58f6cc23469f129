package store

import (
	"encoding/json"
	"io"

	"github.com/san-kum/collisim/internal/sim"
)

type Report struct {
	Backend   string               `json:"backend"`
	Workers   int                  `json:"workers"`
	Particles int                  `json:"particles"`
	Seed      int64                `json:"seed"`
	Dt        float64              `json:"dt"`
	Frames    int                  `json:"frames"`
	Time      float64              `json:"time"`
	ElapsedMs float64              `json:"elapsed_ms"`
	FPS       float64              `json:"fps"`
	Metrics   map[string]float64   `json:"metrics"`
	Samples   map[string][]float64 `json:"samples,omitempty"`
	Contacts  []int                `json:"contacts,omitempty"`
	Errors    []string             `json:"errors,omitempty"`
}

// NewReport summarizes a headless run. Per-frame samples are only kept when
// withSamples is set.
func NewReport(backend string, workers, particles int, seed int64, dt float64, result *sim.Result, withSamples bool) Report {
	r := Report{
		Backend:   backend,
		Workers:   workers,
		Particles: particles,
		Seed:      seed,
		Dt:        dt,
		Frames:    result.Frames,
		Time:      result.Time,
		ElapsedMs: float64(result.Elapsed.Microseconds()) / 1000,
		Metrics:   result.Metrics,
	}
	if secs := result.Elapsed.Seconds(); secs > 0 {
		r.FPS = float64(result.Frames) / secs
	}
	if withSamples {
		r.Samples = result.Samples
		r.Contacts = result.Contacts
	}
	for _, err := range result.Errors {
		r.Errors = append(r.Errors, err.Error())
	}
	return r
}

func ExportJSON(w io.Writer, reports ...Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if len(reports) == 1 {
		return encoder.Encode(reports[0])
	}
	return encoder.Encode(reports)
}
