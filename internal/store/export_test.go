package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/san-kum/collisim/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		Frames:   2,
		Time:     0.02,
		Samples:  map[string][]float64{"kinetic_energy": {1.5, 1.2}},
		Metrics:  map[string]float64{"kinetic_energy": 1.2},
		Contacts: []int{3, 1},
		Elapsed:  10 * time.Millisecond,
		Errors:   []error{errors.New("boom")},
	}
}

func TestNewReport(t *testing.T) {
	r := NewReport("cpu/4", 4, 100, 42, 0.01, testResult(), false)

	if r.FPS != 200 {
		t.Errorf("expected 200 fps, got %f", r.FPS)
	}
	if r.ElapsedMs != 10 {
		t.Errorf("expected 10ms, got %f", r.ElapsedMs)
	}
	if r.Samples != nil || r.Contacts != nil {
		t.Error("samples should be dropped")
	}
	if len(r.Errors) != 1 || r.Errors[0] != "boom" {
		t.Errorf("unexpected errors: %v", r.Errors)
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport("serial", 1, 100, 42, 0.01, testResult(), true)

	if err := ExportJSON(&buf, r); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["backend"] != "serial" {
		t.Errorf("expected backend serial, got %v", decoded["backend"])
	}
	if _, ok := decoded["samples"]; !ok {
		t.Error("expected samples in output")
	}
}

func TestExportJSON_Many(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport("serial", 1, 100, 42, 0.01, testResult(), false)

	if err := ExportJSON(&buf, r, r); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("expected a json array: %v", err)
	}
	if len(decoded) != 2 {
		t.Errorf("expected 2 reports, got %d", len(decoded))
	}
}
