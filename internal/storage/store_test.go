package storage

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/roberte777/miniphys/internal/sim"
)

func testResult() *sim.Result {
	return &sim.Result{
		States:     [][]float64{{0, 0}, {0.1, -0.5}, {0.2, -1.9}},
		Times:      []float64{0, 1.0 / 60, 2.0 / 60},
		Metrics:    map[string]float64{"stability": 1.0},
		StepsTaken: 2,
	}
}

func TestSaveAndLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("pendulum", 1.0/60, 10.0, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "pendulum_") {
		t.Errorf("run id = %q, want pendulum_ prefix", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Model != "pendulum" {
		t.Errorf("model = %s, want pendulum", meta.Model)
	}
	if meta.Steps != 2 {
		t.Errorf("steps = %d, want 2", meta.Steps)
	}
	if meta.Metrics["stability"] != 1.0 {
		t.Errorf("stability metric = %f, want 1", meta.Metrics["stability"])
	}
}

func TestLoadStatesRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	result := testResult()
	runID, err := st.Save("cloth", 1.0/60, 10.0, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 3 || len(times) != 3 {
		t.Fatalf("loaded %d states, %d times, want 3 each", len(states), len(times))
	}
	if states[2][1] != -1.9 {
		t.Errorf("states[2][1] = %f, want -1.9", states[2][1])
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	if _, err := st.Save("spring", 0.01, 5.0, testResult()); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Model != "spring" {
		t.Errorf("model = %s, want spring", runs[0].Model)
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New("/nonexistent/miniphys-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("expected empty list for missing dir, got error: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope_123"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{
		ID:      "cloth_1",
		Model:   "cloth",
		Dt:      1.0 / 60,
		Metrics: map[string]float64{"max_stretch": 1.2},
	}

	var buf bytes.Buffer
	err := ExportJSON(&buf, meta, [][]float64{{1, 2}}, []float64{0})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid json: %v", err)
	}
	if data.Model != "cloth" || data.Steps != 1 {
		t.Errorf("export data = %+v", data)
	}
	if data.States[0][1] != 2 {
		t.Errorf("states not exported: %+v", data.States)
	}
}
