// Package viz renders simulations to the terminal: a braille pixel canvas
// plus a bubbletea live view with interactive cloth manipulation.
package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var brailleDots = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBase = 0x2800

// Canvas is a braille character grid. Each cell packs 2x4 sub-pixels, so the
// drawable area is (Width*2) x (Height*4) pixels.
type Canvas struct {
	Width, Height int
	cells         []rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		cells:  make([]rune, w*h),
	}
	c.Clear()
	return c
}

// PixelWidth returns the canvas width in sub-pixels.
func (c *Canvas) PixelWidth() int { return c.Width * 2 }

// PixelHeight returns the canvas height in sub-pixels.
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// Set turns on the sub-pixel at (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.cells[row*c.Width+col] |= brailleDots[y%4][x%2]
}

// Unset turns off the sub-pixel at (x, y).
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	idx := row*c.Width + col
	c.cells[idx] &^= brailleDots[y%4][x%2]
	if c.cells[idx] < brailleBase {
		c.cells[idx] = brailleBase
	}
}

// IsSet reports whether the sub-pixel at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.cells[row*c.Width+col]&brailleDots[y%4][x%2] != 0
}

// Clear resets every cell to the empty braille character.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBase
	}
}

// DrawLine draws a line in sub-pixel coordinates using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// FillRect fills the axis-aligned rectangle from (x, y) spanning w x h
// sub-pixels.
func (c *Canvas) FillRect(x, y, w, h int) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.Height; row++ {
		b.WriteString(string(c.cells[row*c.Width:(row+1)*c.Width]) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
