package physics

import (
	"time"

	"github.com/roberte777/miniphys/internal/geom"
)

// Projectile is a point mass under constant acceleration.
type Projectile struct {
	Position     geom.Vec2
	Velocity     geom.Vec2
	Acceleration geom.Vec2
}

func NewProjectile(position, velocity, acceleration geom.Vec2) *Projectile {
	return &Projectile{
		Position:     position,
		Velocity:     velocity,
		Acceleration: acceleration,
	}
}

// Step advances velocity then position by dt.
func (p *Projectile) Step(dt time.Duration) {
	secs := dt.Seconds()
	p.Velocity = p.Velocity.Add(p.Acceleration.Scale(secs))
	p.Position = p.Position.Add(p.Velocity.Scale(secs))
}

// State returns [x, y, vx, vy] for recording.
func (p *Projectile) State() []float64 {
	return []float64{p.Position.X, p.Position.Y, p.Velocity.X, p.Velocity.Y}
}
