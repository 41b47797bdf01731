// Package core provides the screen buffer, colors and geometry shared by the
// terminal front ends. It contains no Bubble Tea code so drawing stays
// testable without a terminal.
package core

// Rect represents an axis-aligned rectangle of cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// CenteredRect returns a w x h rectangle whose center is (cx, cy).
func CenteredRect(cx, cy, w, h int) Rect {
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Resize returns a rectangle of the new size around the same center.
func (r Rect) Resize(w, h int) Rect {
	cx, cy := r.Center()
	return CenteredRect(cx, cy, w, h)
}

// Follow returns the rectangle shifted just enough to contain (x, y) with
// margin cells to spare on each side, when the size allows it.
func (r Rect) Follow(x, y, margin int) Rect {
	mx := Min(margin, Max(r.W/2-1, 0))
	my := Min(margin, Max(r.H/2-1, 0))

	if x < r.X+mx {
		r.X = x - mx
	} else if x >= r.Right()-mx {
		r.X = x - r.W + mx + 1
	}
	if y < r.Y+my {
		r.Y = y - my
	} else if y >= r.Bottom()-my {
		r.Y = y - r.H + my + 1
	}
	return r
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
