package cloth

// Constraint is an undirected distance constraint between two particle
// indices. Structural, shear, and bend constraints differ only in which
// indices they connect and their rest length.
type Constraint struct {
	A, B       int
	RestLength float64
}

// Touches reports whether the constraint references the given particle index.
func (c Constraint) Touches(index int) bool {
	return c.A == index || c.B == index
}
