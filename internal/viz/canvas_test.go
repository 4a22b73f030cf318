package viz

import (
	"strings"
	"testing"
)

func TestCanvas_SetUnset(t *testing.T) {
	c := NewCanvas(10, 5)

	c.Set(3, 7)
	if !c.IsSet(3, 7) {
		t.Error("pixel not set")
	}
	if c.IsSet(2, 7) || c.IsSet(3, 6) {
		t.Error("neighboring pixels set")
	}

	c.Unset(3, 7)
	if c.IsSet(3, 7) {
		t.Error("pixel still set after Unset")
	}
}

func TestCanvas_OutOfRange(t *testing.T) {
	c := NewCanvas(4, 4)

	// Must not panic and must not wrap into the grid.
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(c.PixelWidth(), 0)
	c.Set(0, c.PixelHeight())
	c.Unset(-5, -5)

	if got := c.String(); strings.ContainsRune(got, rune(brailleBase+1)) {
		t.Error("out-of-range Set modified the grid")
	}
}

func TestCanvas_Clear(t *testing.T) {
	c := NewCanvas(8, 4)
	c.DrawLine(0, 0, 15, 15)
	c.Clear()

	for y := 0; y < c.PixelHeight(); y++ {
		for x := 0; x < c.PixelWidth(); x++ {
			if c.IsSet(x, y) {
				t.Fatalf("pixel (%d,%d) set after Clear", x, y)
			}
		}
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 9, 0)

	for x := 0; x <= 9; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("horizontal line missing pixel at x=%d", x)
		}
	}

	c.Clear()
	c.DrawLine(5, 2, 5, 12)
	for y := 2; y <= 12; y++ {
		if !c.IsSet(5, y) {
			t.Errorf("vertical line missing pixel at y=%d", y)
		}
	}
}

func TestCanvas_String(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, line := range lines {
		if got := len([]rune(line)); got != 3 {
			t.Errorf("row width %d, want 3", got)
		}
	}
}
