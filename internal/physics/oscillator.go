package physics

import (
	"fmt"
	"math"
	"time"
)

const coefEpsilon = 0.0001

// Coefficients is a cached set of damped-spring update coefficients for a
// fixed time step, after Ryan Juckett's damped harmonic oscillator
// derivation. One set can drive any number of position/velocity pairs
// toward their equilibrium points.
type Coefficients struct {
	posPos, posVel float64
	velPos, velVel float64
}

// NewCoefficients computes spring coefficients for one step of dt seconds.
//
// Damping ratio > 1 is over-damped (no oscillation, slow approach), = 1 is
// critically damped (fastest approach without oscillation), < 1 is
// under-damped (oscillates). Negative inputs are clamped to zero.
func NewCoefficients(dt, angularFrequency, dampingRatio float64) Coefficients {
	angularFrequency = math.Max(angularFrequency, 0)
	dampingRatio = math.Max(dampingRatio, 0)

	// A negligible frequency leaves position and velocity untouched.
	if angularFrequency < coefEpsilon {
		return Coefficients{posPos: 1, velVel: 1}
	}

	var c Coefficients

	switch {
	case dampingRatio > 1+coefEpsilon:
		// Over-damped.
		za := -angularFrequency * dampingRatio
		zb := angularFrequency * math.Sqrt(dampingRatio*dampingRatio-1)
		z1 := za - zb
		z2 := za + zb

		e1 := math.Exp(z1 * dt)
		e2 := math.Exp(z2 * dt)

		invTwoZb := 1 / (2 * zb)
		e1OverTwoZb := e1 * invTwoZb
		e2OverTwoZb := e2 * invTwoZb
		z1e1OverTwoZb := z1 * e1OverTwoZb
		z2e2OverTwoZb := z2 * e2OverTwoZb

		c.posPos = e1OverTwoZb*z2 - z2e2OverTwoZb + e2
		c.posVel = -e1OverTwoZb + e2OverTwoZb
		c.velPos = (z1e1OverTwoZb - z2e2OverTwoZb + e2) * z2
		c.velVel = -z1e1OverTwoZb + z2e2OverTwoZb

	case dampingRatio < 1-coefEpsilon:
		// Under-damped.
		omegaZeta := angularFrequency * dampingRatio
		alpha := angularFrequency * math.Sqrt(1-dampingRatio*dampingRatio)

		expTerm := math.Exp(-omegaZeta * dt)
		cosTerm := math.Cos(alpha * dt)
		sinTerm := math.Sin(alpha * dt)

		invAlpha := 1 / alpha
		expSin := expTerm * sinTerm
		expCos := expTerm * cosTerm
		expOmegaZetaSinOverAlpha := expTerm * omegaZeta * sinTerm * invAlpha

		c.posPos = expCos + expOmegaZetaSinOverAlpha
		c.posVel = expSin * invAlpha
		c.velPos = -expSin*alpha - omegaZeta*expOmegaZetaSinOverAlpha
		c.velVel = -expOmegaZetaSinOverAlpha + expCos

	default:
		// Critically damped.
		expTerm := math.Exp(-angularFrequency * dt)
		timeExp := dt * expTerm
		timeExpFreq := timeExp * angularFrequency

		c.posPos = timeExpFreq + expTerm
		c.posVel = timeExp
		c.velPos = -angularFrequency * timeExpFreq
		c.velVel = -timeExpFreq + expTerm
	}

	return c
}

// Update advances one position/velocity pair toward equilibriumPos by the
// cached time step, returning the new pair.
func (c Coefficients) Update(pos, vel, equilibriumPos float64) (float64, float64) {
	oldPos := pos - equilibriumPos
	oldVel := vel

	newPos := oldPos*c.posPos + oldVel*c.posVel + equilibriumPos
	newVel := oldPos*c.velPos + oldVel*c.velVel

	return newPos, newVel
}

// FPS returns the time delta for a given number of frames per second,
// suitable as the dt argument to NewCoefficients.
func FPS(n int) float64 {
	return 1.0 / float64(n)
}

// Oscillator is a stateful damped spring driving a position toward a target.
// Coefficients are recomputed only when the step size changes.
type Oscillator struct {
	Position float64
	Velocity float64
	Target   float64

	AngularFrequency float64
	DampingRatio     float64

	coefs    Coefficients
	cachedDt float64
}

func NewOscillator(initialPos, angularFrequency, dampingRatio float64) *Oscillator {
	return &Oscillator{
		Position:         initialPos,
		AngularFrequency: angularFrequency,
		DampingRatio:     dampingRatio,
		cachedDt:         -1,
	}
}

// Step advances the oscillator by dt toward its target.
func (o *Oscillator) Step(dt time.Duration) {
	secs := dt.Seconds()
	if secs != o.cachedDt {
		o.coefs = NewCoefficients(secs, o.AngularFrequency, o.DampingRatio)
		o.cachedDt = secs
	}
	o.Position, o.Velocity = o.coefs.Update(o.Position, o.Velocity, o.Target)
}

// State returns [position, velocity] for recording.
func (o *Oscillator) State() []float64 {
	return []float64{o.Position, o.Velocity}
}

func (o *Oscillator) GetParams() map[string]float64 {
	return map[string]float64{
		"frequency": o.AngularFrequency,
		"damping":   o.DampingRatio,
		"target":    o.Target,
	}
}

func (o *Oscillator) SetParam(name string, value float64) error {
	switch name {
	case "frequency":
		o.AngularFrequency = value
	case "damping":
		o.DampingRatio = value
	case "target":
		o.Target = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	// Invalidate the coefficient cache.
	o.cachedDt = -1
	return nil
}
