package cloth

import "fmt"

const (
	DefaultGravity      = 987.0
	DefaultDamping      = 0.99
	DefaultIterations   = 2
	DefaultCutThreshold = 10.0
)

// Params holds the physical constants of a mesh. They live on the mesh
// rather than as package globals so tests can inject exact values.
type Params struct {
	// Gravity is the downward acceleration, in position units per second
	// squared (+y is down, matching screen coordinates).
	Gravity float64
	// Damping scales the implicit velocity term each step; values below 1
	// bleed energy so the mesh settles instead of oscillating forever.
	Damping float64
	// Iterations is the number of constraint relaxation passes per step.
	Iterations int
	// CutThreshold is the maximum distance from a pointer to a particle for
	// CutAt to sever that particle's constraints.
	CutThreshold float64
}

func DefaultParams() Params {
	return Params{
		Gravity:      DefaultGravity,
		Damping:      DefaultDamping,
		Iterations:   DefaultIterations,
		CutThreshold: DefaultCutThreshold,
	}
}

// GetParams returns the tunable parameters by name.
func (m *Mesh) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity":       m.params.Gravity,
		"damping":       m.params.Damping,
		"iterations":    float64(m.params.Iterations),
		"cut_threshold": m.params.CutThreshold,
	}
}

// SetParam updates a tunable parameter by name.
func (m *Mesh) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		m.params.Gravity = value
	case "damping":
		m.params.Damping = value
	case "iterations":
		n := int(value)
		if n < 1 {
			n = 1
		}
		m.params.Iterations = n
	case "cut_threshold":
		m.params.CutThreshold = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
