package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(-5, -3, 10, 6)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{0, 0, true},
		{-5, -3, true},
		{4, 2, true},
		{5, 0, false}, // right edge is exclusive
		{0, 3, false}, // bottom edge is exclusive
		{-6, 0, false},
		{0, -4, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestCenteredRect(t *testing.T) {
	tests := []struct {
		name   string
		cx, cy int
		w, h   int
	}{
		{"even size at origin", 0, 0, 80, 22},
		{"odd size", 3, -7, 11, 5},
		{"single cell", 10, 10, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := CenteredRect(tc.cx, tc.cy, tc.w, tc.h)
			if r.W != tc.w || r.H != tc.h {
				t.Errorf("size = %dx%d, expected %dx%d", r.W, r.H, tc.w, tc.h)
			}
			cx, cy := r.Center()
			if cx != tc.cx || cy != tc.cy {
				t.Errorf("Center() = (%d, %d), expected (%d, %d)", cx, cy, tc.cx, tc.cy)
			}
			if !r.Contains(tc.cx, tc.cy) {
				t.Error("rect should contain its center")
			}
		})
	}
}

func TestRectTranslateResize(t *testing.T) {
	r := NewRect(0, 0, 10, 4).Translate(-3, 2)
	if r != NewRect(-3, 2, 10, 4) {
		t.Errorf("Translate() = %+v", r)
	}

	cx, cy := r.Center()
	grown := r.Resize(20, 8)
	gx, gy := grown.Center()
	if gx != cx || gy != cy {
		t.Errorf("Resize() moved the center from (%d, %d) to (%d, %d)", cx, cy, gx, gy)
	}
	if grown.W != 20 || grown.H != 8 {
		t.Errorf("Resize() size = %dx%d", grown.W, grown.H)
	}
}

func TestRectFollow(t *testing.T) {
	view := NewRect(0, 0, 10, 10)

	tests := []struct {
		name     string
		x, y     int
		expected Rect
	}{
		{"inside margin stays", 5, 5, view},
		{"near right edge", 9, 5, NewRect(2, 0, 10, 10)},
		{"near left edge", 0, 5, NewRect(-2, 0, 10, 10)},
		{"far below", 5, 30, NewRect(0, 23, 10, 10)},
		{"far above-left", -20, -20, NewRect(-22, -22, 10, 10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := view.Follow(tc.x, tc.y, 2)
			if got != tc.expected {
				t.Errorf("Follow(%d, %d) = %+v, expected %+v", tc.x, tc.y, got, tc.expected)
			}
			if !got.Contains(tc.x, tc.y) {
				t.Error("followed rect should contain the point")
			}
		})
	}
}

func TestRectFollowTinyView(t *testing.T) {
	view := NewRect(0, 0, 1, 1)
	got := view.Follow(7, -3, 5)
	if !got.Contains(7, -3) {
		t.Errorf("Follow() on a 1x1 view = %+v, should contain the point", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below lo
		{15, 0, 10, 10}, // above hi
		{0, 0, 10, 0},   // at lo
		{10, 0, 10, 10}, // at hi
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
}

func TestRuntimeConfigViewSize(t *testing.T) {
	cfg := DefaultConfig()
	w, h := cfg.ViewSize()
	if w != 80 || h != 24-StatusLines {
		t.Errorf("ViewSize() = %dx%d, expected 80x%d", w, h, 24-StatusLines)
	}

	cfg.ScreenW, cfg.ScreenH = 0, 1
	w, h = cfg.ViewSize()
	if w != 1 || h != 1 {
		t.Errorf("ViewSize() on a tiny screen = %dx%d, expected 1x1", w, h)
	}
}
