package geom

import (
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(3, -4)

	if got := a.Add(b); got != V(4, -2) {
		t.Errorf("Add = %v, want {4 -2}", got)
	}
	if got := a.Sub(b); got != V(-2, 6) {
		t.Errorf("Sub = %v, want {-2 6}", got)
	}
	if got := a.Scale(2); got != V(2, 4) {
		t.Errorf("Scale = %v, want {2 4}", got)
	}
	if got := a.Div(2); got != V(0.5, 1) {
		t.Errorf("Div = %v, want {0.5 1}", got)
	}
	if got := a.Dot(b); got != -5 {
		t.Errorf("Dot = %v, want -5", got)
	}
}

func TestVec2_Length(t *testing.T) {
	tests := []struct {
		v        Vec2
		expected float64
	}{
		{V(3, 4), 5},
		{V(1, 0), 1},
		{V(0, 0), 0},
		{V(-3, -4), 5},
	}

	for _, tt := range tests {
		if got := tt.v.Length(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Length(%v) = %v, want %v", tt.v, got, tt.expected)
		}
		if got := tt.v.LengthSq(); math.Abs(got-tt.expected*tt.expected) > 1e-12 {
			t.Errorf("LengthSq(%v) = %v, want %v", tt.v, got, tt.expected*tt.expected)
		}
	}
}

func TestVec2_Normalize(t *testing.T) {
	n := V(3, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", n.Length())
	}

	// Zero vector must not divide by zero.
	if got := V(0, 0).Normalize(); got != (Vec2{}) {
		t.Errorf("Normalize(zero) = %v, want zero vector", got)
	}
}

func TestVec2_Distance(t *testing.T) {
	if got := V(1, 1).Distance(V(4, 5)); math.Abs(got-5) > 1e-12 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestVec2_IsFinite(t *testing.T) {
	if !V(1, 2).IsFinite() {
		t.Error("expected finite vector")
	}
	if V(math.NaN(), 0).IsFinite() {
		t.Error("NaN component should not be finite")
	}
	if V(0, math.Inf(1)).IsFinite() {
		t.Error("Inf component should not be finite")
	}
}
