package metrics

import "math"

// EnergySource is any system that can report its total mechanical energy.
type EnergySource interface {
	Energy() float64
}

// EnergyDrift tracks the maximum relative deviation from the initial energy
// of a system over a run.
type EnergyDrift struct {
	name     string
	src      EnergySource
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(src EnergySource) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", src: src}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x []float64, t float64) {
	energy := e.src.Energy()

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
