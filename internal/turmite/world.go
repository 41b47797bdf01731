package turmite

// Background is the color of every cell that has never been painted.
const Background = 0

// World is a sparse map from cell to color.
// Cells painted back to Background are dropped, so Len counts colored cells.
type World struct {
	cells map[Cell]int
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{cells: make(map[Cell]int)}
}

// ColorAt returns the color of a cell, Background if it was never painted.
func (w *World) ColorAt(c Cell) int {
	if color, ok := w.cells[c]; ok {
		return color
	}
	return Background
}

// Paint sets the color of a cell.
func (w *World) Paint(c Cell, color int) {
	if color == Background {
		delete(w.cells, c)
		return
	}
	w.cells[c] = color
}

// Clear removes every painted cell.
func (w *World) Clear() {
	clear(w.cells)
}

// Len returns the number of cells that are not Background.
func (w *World) Len() int {
	return len(w.cells)
}

// Bounds returns the smallest rectangle containing every painted cell.
// ok is false for an empty world.
func (w *World) Bounds() (minCell, maxCell Cell, ok bool) {
	for c := range w.cells {
		if !ok {
			minCell, maxCell, ok = c, c, true
			continue
		}
		minCell.X = min(minCell.X, c.X)
		minCell.Y = min(minCell.Y, c.Y)
		maxCell.X = max(maxCell.X, c.X)
		maxCell.Y = max(maxCell.Y, c.Y)
	}
	return minCell, maxCell, ok
}

// Region copies the painted cells with origin.X <= x < origin.X+w and
// origin.Y <= y < origin.Y+h.
func (w *World) Region(origin Cell, width, height int) map[Cell]int {
	out := make(map[Cell]int)
	if width <= 0 || height <= 0 {
		return out
	}

	// Iterate whichever side is smaller: the viewport or the painted set.
	if width*height < len(w.cells) {
		for y := origin.Y; y < origin.Y+height; y++ {
			for x := origin.X; x < origin.X+width; x++ {
				if color, ok := w.cells[Cell{X: x, Y: y}]; ok {
					out[Cell{X: x, Y: y}] = color
				}
			}
		}
		return out
	}

	for c, color := range w.cells {
		if c.X >= origin.X && c.X < origin.X+width && c.Y >= origin.Y && c.Y < origin.Y+height {
			out[c] = color
		}
	}
	return out
}
