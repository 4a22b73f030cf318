// Package physics provides the small closed-form simulators that ship
// alongside the cloth engine:
//
//   - [Pendulum]: damped simple pendulum
//   - [Projectile]: constant-acceleration kinematics
//   - [Oscillator]: damped harmonic oscillator with cached coefficients
//
// Each simulator advances with a discrete time step and exposes its state
// for recording. They share no structure with the cloth mesh.
package physics
