package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the JSON export shape for a full run.
type ExportData struct {
	ID       string             `json:"id"`
	Model    string             `json:"model"`
	Dt       float64            `json:"dt"`
	Duration float64            `json:"duration"`
	Steps    int                `json:"steps"`
	Times    []float64          `json:"times"`
	States   [][]float64        `json:"states"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run's full trajectory as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, states [][]float64, times []float64) error {
	data := ExportData{
		ID:       meta.ID,
		Model:    meta.Model,
		Dt:       meta.Dt,
		Duration: meta.Duration,
		Steps:    len(times),
		Times:    times,
		States:   states,
		Metrics:  meta.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONStdout is ExportJSON to standard output.
func ExportJSONStdout(meta *RunMetadata, states [][]float64, times []float64) error {
	return ExportJSON(os.Stdout, meta, states, times)
}
