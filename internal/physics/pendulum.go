package physics

import (
	"fmt"
	"math"
	"time"
)

// Pendulum is a damped simple pendulum. The angle is measured from the
// vertical in radians.
type Pendulum struct {
	Angle           float64
	AngularVelocity float64
	Length          float64
	Gravity         float64
	Damping         float64
}

// NewPendulum creates a pendulum of the given length released from rest at
// initialAngleDeg degrees from the vertical.
func NewPendulum(length, initialAngleDeg, damping float64) *Pendulum {
	return &Pendulum{
		Angle:   initialAngleDeg * math.Pi / 180,
		Length:  length,
		Gravity: 9.81,
		Damping: damping,
	}
}

// Step advances the pendulum by dt using the damped equation of motion.
func (p *Pendulum) Step(dt time.Duration) {
	secs := dt.Seconds()

	accel := -p.Gravity / p.Length * math.Sin(p.Angle)
	accel -= p.Damping * p.AngularVelocity

	p.AngularVelocity += accel * secs
	p.Angle += p.AngularVelocity * secs
}

// Position returns the bob's cartesian position with the pivot at the origin
// and y pointing up.
func (p *Pendulum) Position() (float64, float64) {
	return p.Length * math.Sin(p.Angle), -p.Length * math.Cos(p.Angle)
}

// Energy returns the total mechanical energy for a unit bob mass.
func (p *Pendulum) Energy() float64 {
	v := p.Length * p.AngularVelocity
	ke := 0.5 * v * v
	pe := p.Gravity * p.Length * (1 - math.Cos(p.Angle))
	return ke + pe
}

// State returns [angle, angular velocity] for recording.
func (p *Pendulum) State() []float64 {
	return []float64{p.Angle, p.AngularVelocity}
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"length":  p.Length,
		"gravity": p.Gravity,
		"damping": p.Damping,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "length":
		p.Length = value
	case "gravity":
		p.Gravity = value
	case "damping":
		p.Damping = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
