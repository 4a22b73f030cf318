package geom

import "math"

// Vec2 is an immutable 2D vector. All operations return new values.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Scale returns the vector multiplied by a scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Div returns the vector divided by a scalar.
func (v Vec2) Div(s float64) Vec2 {
	return Vec2{X: v.X / s, Y: v.Y / s}
}

func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Length returns the magnitude of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSq returns the squared magnitude, cheaper than Length when only
// comparing distances.
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the distance between two points.
func (v Vec2) Distance(w Vec2) float64 {
	return math.Hypot(v.X-w.X, v.Y-w.Y)
}

// Normalize returns a unit vector in the same direction. The zero vector
// normalizes to the zero vector rather than dividing by zero.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
