package cloth

import (
	"fmt"
	"math"
	"time"

	"github.com/roberte777/miniphys/internal/geom"
)

// selection pairs a selected particle index with its offset from the pointer
// captured at selection time, so dragging preserves the mesh's local shape.
type selection struct {
	index  int
	offset geom.Vec2
}

// Mesh is a grid of particles connected by distance constraints. Particles
// live in a dense, index-stable slice; constraints reference them by index
// and may be removed, but particles never are.
type Mesh struct {
	particles   []Particle
	constraints []Constraint
	width       int
	height      int
	spacing     float64
	selected    []selection
	params      Params
}

// New builds a width-by-height grid with the given spacing between adjacent
// particles and default parameters. The top row is pinned to emulate hanging
// cloth.
func New(width, height int, spacing float64) (*Mesh, error) {
	return NewWithParams(width, height, spacing, DefaultParams())
}

// NewWithParams is New with explicit physical parameters.
func NewWithParams(width, height int, spacing float64, params Params) (*Mesh, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("mesh dimensions must be at least 1x1, got %dx%d", width, height)
	}
	if spacing <= 0 {
		return nil, fmt.Errorf("spacing must be positive, got %f", spacing)
	}
	if params.Iterations < 1 {
		params.Iterations = 1
	}

	m := &Mesh{
		particles:   make([]Particle, 0, width*height),
		constraints: make([]Constraint, 0, width*height*4),
		width:       width,
		height:      height,
		spacing:     spacing,
		params:      params,
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pos := geom.V(float64(x)*spacing, float64(y)*spacing)
			m.particles = append(m.particles, newParticle(pos, y == 0))
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			index := y*width + x

			// Structural: right and below neighbors.
			if x < width-1 {
				m.constraints = append(m.constraints, Constraint{index, index + 1, spacing})
			}
			if y < height-1 {
				m.constraints = append(m.constraints, Constraint{index, index + width, spacing})
			}

			// Shear: both diagonals into the row below.
			if x < width-1 && y < height-1 {
				m.constraints = append(m.constraints, Constraint{index, index + width + 1, spacing * math.Sqrt2})
			}
			if x > 0 && y < height-1 {
				m.constraints = append(m.constraints, Constraint{index, index + width - 1, spacing * math.Sqrt2})
			}

			// Bend: skip one particle right and below.
			if x < width-2 {
				m.constraints = append(m.constraints, Constraint{index, index + 2, spacing * 2})
			}
			if y < height-2 {
				m.constraints = append(m.constraints, Constraint{index, index + width*2, spacing * 2})
			}
		}
	}

	return m, nil
}

// Step advances the simulation by dt. The constraint set is unchanged;
// particle positions are updated in place. Zero or negative dt is accepted
// and produces no forward motion.
func (m *Mesh) Step(dt time.Duration) {
	secs := dt.Seconds()

	// Phase 1: external forces. Gravity only; stability comes from the
	// damping factor in integration, not from a damping force (applying
	// both over-damps).
	gravity := geom.V(0, m.params.Gravity)
	for i := range m.particles {
		if !m.particles[i].Pinned {
			m.particles[i].applyForce(gravity)
		}
	}

	// Phase 2: damped Verlet integration.
	for i := range m.particles {
		m.particles[i].integrate(secs, m.params.Damping)
	}

	// Phase 3: constraint relaxation. Each pass pulls constrained pairs
	// toward their rest lengths by direct position correction; explicit
	// integration alone is not stable for inextensible constraints.
	for iter := 0; iter < m.params.Iterations; iter++ {
		for _, c := range m.constraints {
			m.relax(c)
		}
	}

	// Phase 4: accelerations start fresh next step.
	for i := range m.particles {
		m.particles[i].Acceleration = geom.Vec2{}
	}
}

// relax redistributes half the rest-length discrepancy to each unpinned
// endpoint of a constraint. A degenerate zero-length constraint normalizes to
// the zero vector and contributes no correction.
func (m *Mesh) relax(c Constraint) {
	a := &m.particles[c.A]
	b := &m.particles[c.B]

	delta := b.Position.Sub(a.Position)
	dist := delta.Length()
	diff := dist - c.RestLength
	correction := delta.Normalize().Scale(diff * 0.5)

	if !a.Pinned {
		a.Position = a.Position.Add(correction)
	}
	if !b.Pinned {
		b.Position = b.Position.Sub(correction)
	}
}

// Select clears any prior selection, then pins and selects every particle
// within radius of the pointer, recording its offset from the pointer.
func (m *Mesh) Select(pointer geom.Vec2, radius float64) {
	m.ClearSelection()
	for i := range m.particles {
		if m.particles[i].Position.Distance(pointer) <= radius {
			m.particles[i].Pinned = true
			m.selected = append(m.selected, selection{
				index:  i,
				offset: m.particles[i].Position.Sub(pointer),
			})
		}
	}
}

// MoveSelected drags every selected particle to the pointer plus its recorded
// offset, bypassing integration. Velocity and acceleration are cleared so the
// drag does not turn into a spike on release.
func (m *Mesh) MoveSelected(pointer geom.Vec2) {
	for _, s := range m.selected {
		m.particles[s.index].setPosition(pointer.Add(s.offset))
	}
}

// ClearSelection unpins all selected particles and empties the selection.
// Calling it with nothing selected is a no-op.
func (m *Mesh) ClearSelection() {
	for _, s := range m.selected {
		m.particles[s.index].Pinned = false
	}
	m.selected = m.selected[:0]
}

// CutAt finds the particle nearest to pos and, if it is within the cut
// threshold, removes every constraint touching it. Ties go to the lower
// index. No-op when nothing is close enough.
func (m *Mesh) CutAt(pos geom.Vec2) {
	nearest := -1
	best := math.Inf(1)
	for i := range m.particles {
		d := m.particles[i].Position.Distance(pos)
		if d < best {
			best = d
			nearest = i
		}
	}
	if nearest >= 0 && best < m.params.CutThreshold {
		m.CutParticle(nearest)
	}
}

// CutParticle removes all constraints referencing the given particle index,
// permanently disconnecting it from its neighbors.
func (m *Mesh) CutParticle(index int) {
	m.RemoveConstraintsFunc(func(c Constraint) bool {
		return c.Touches(index)
	})
}

// RemoveConstraint removes the constraint at the given index, ignoring
// out-of-range indices. Order of the remaining constraints is not preserved.
func (m *Mesh) RemoveConstraint(index int) {
	if index < 0 || index >= len(m.constraints) {
		return
	}
	last := len(m.constraints) - 1
	m.constraints[index] = m.constraints[last]
	m.constraints = m.constraints[:last]
}

// RemoveConstraintsFunc removes every constraint for which remove returns
// true. Particle indices are never renumbered.
func (m *Mesh) RemoveConstraintsFunc(remove func(Constraint) bool) {
	kept := m.constraints[:0]
	for _, c := range m.constraints {
		if !remove(c) {
			kept = append(kept, c)
		}
	}
	m.constraints = kept
}

// Particles returns the particle arena. The slice is valid to iterate until
// the next call on the mesh; callers must not modify it.
func (m *Mesh) Particles() []Particle {
	return m.particles
}

// Constraints returns the live constraint list under the same contract as
// Particles.
func (m *Mesh) Constraints() []Constraint {
	return m.constraints
}

// Selected returns the indices of the currently selected particles.
func (m *Mesh) Selected() []int {
	indices := make([]int, len(m.selected))
	for i, s := range m.selected {
		indices[i] = s.index
	}
	return indices
}

func (m *Mesh) Width() int       { return m.width }
func (m *Mesh) Height() int      { return m.height }
func (m *Mesh) Spacing() float64 { return m.spacing }

// MaxStretch returns the largest ratio of current length to rest length over
// all constraints, or 0 for a mesh with no constraints.
func (m *Mesh) MaxStretch() float64 {
	max := 0.0
	for _, c := range m.constraints {
		dist := m.particles[c.A].Position.Distance(m.particles[c.B].Position)
		if ratio := dist / c.RestLength; ratio > max {
			max = ratio
		}
	}
	return max
}

// State flattens particle positions to [x0, y0, x1, y1, ...] for recording.
func (m *Mesh) State() []float64 {
	out := make([]float64, 0, len(m.particles)*2)
	for i := range m.particles {
		out = append(out, m.particles[i].Position.X, m.particles[i].Position.Y)
	}
	return out
}
