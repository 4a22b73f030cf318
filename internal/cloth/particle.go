package cloth

import "github.com/roberte777/miniphys/internal/geom"

// Particle is a point mass stored by value inside a Mesh and addressed by
// index. Velocity is implicit in the gap between Position and PrevPosition.
type Particle struct {
	Position     geom.Vec2
	PrevPosition geom.Vec2
	Acceleration geom.Vec2
	Mass         float64
	Pinned       bool
}

func newParticle(pos geom.Vec2, pinned bool) Particle {
	return Particle{
		Position:     pos,
		PrevPosition: pos,
		Mass:         1.0,
		Pinned:       pinned,
	}
}

// applyForce accumulates a force into the acceleration for the current step.
func (p *Particle) applyForce(force geom.Vec2) {
	p.Acceleration = p.Acceleration.Add(force.Div(p.Mass))
}

// integrate advances the particle one Verlet step of dt seconds. The damping
// factor scales the implicit velocity term to bleed energy each step.
// Pinned particles do not move.
func (p *Particle) integrate(dt, damping float64) {
	if p.Pinned {
		return
	}
	velocity := p.Position.Sub(p.PrevPosition).Scale(damping)
	next := p.Position.Add(velocity).Add(p.Acceleration.Scale(dt * dt))
	p.PrevPosition = p.Position
	p.Position = next
}

// setPosition teleports the particle, clearing any accumulated acceleration
// and implicit velocity so the next step starts from rest at the new spot.
func (p *Particle) setPosition(pos geom.Vec2) {
	p.Position = pos
	p.PrevPosition = pos
	p.Acceleration = geom.Vec2{}
}
