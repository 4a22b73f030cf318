// Package cloth implements a particle and constraint cloth simulation.
//
// A [Mesh] is a regular grid of point masses connected by distance
// constraints (structural, shear, and bend). Each [Mesh.Step] applies
// gravity, advances unpinned particles with damped Verlet integration,
// and then relaxes every constraint for a fixed number of iterations,
// correcting positions directly. Relaxation trades exact momentum
// conservation for unconditional numerical stability.
//
// The mesh can be mutated while simulating: particles may be selected
// and dragged ([Mesh.Select], [Mesh.MoveSelected], [Mesh.ClearSelection])
// and constraints may be cut ([Mesh.CutAt], [Mesh.RemoveConstraintsFunc]).
// Particles are never removed, so constraint indices stay valid for the
// lifetime of the mesh.
//
// A Mesh is not safe for concurrent use; it is owned by a single caller
// that interleaves Step and mutation calls.
package cloth
