package metrics

import "github.com/roberte777/miniphys/internal/cloth"

// MaxStretch tracks the worst constraint stretch ratio seen over a cloth
// run. A value staying near 1 means relaxation is holding the mesh together.
type MaxStretch struct {
	name string
	mesh *cloth.Mesh
	max  float64
}

func NewMaxStretch(mesh *cloth.Mesh) *MaxStretch {
	return &MaxStretch{name: "max_stretch", mesh: mesh}
}

func (m *MaxStretch) Name() string { return m.name }

// Observe reads the mesh directly; the flattened observation does not carry
// constraint topology.
func (m *MaxStretch) Observe(x []float64, t float64) {
	if s := m.mesh.MaxStretch(); s > m.max {
		m.max = s
	}
}

func (m *MaxStretch) Value() float64 { return m.max }

func (m *MaxStretch) Reset() { m.max = 0 }
