package sim

import (
	"fmt"
	"math"
	"time"
)

// System is a simulator advanced in place by discrete time steps. State
// returns a flattened observation of the current state for recording; its
// length must be constant over the system's lifetime.
type System interface {
	Step(dt time.Duration)
	State() []float64
}

// Configurable systems expose tunable parameters by name.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Metric accumulates a scalar over the observations of a run.
type Metric interface {
	Name() string
	Observe(x []float64, t float64)
	Value() float64
	Reset()
}

// Observer is called after every step with the new observation.
type Observer interface {
	OnStep(x []float64, t float64)
}

// Config controls a fixed-step run.
type Config struct {
	Dt       time.Duration
	Duration time.Duration
	// ValidateState stops the run early if an observation goes NaN/Inf.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            time.Second / 60,
		Duration:      10 * time.Second,
		ValidateState: true,
	}
}

func (c Config) validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %v", c.Duration)
	}
	return nil
}

// Result holds the recorded trajectory of a run.
type Result struct {
	States     [][]float64
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// StepError reports a problem detected at a particular step.
type StepError struct {
	Time    float64
	Step    int
	Message string
}

func (e StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

func finite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
