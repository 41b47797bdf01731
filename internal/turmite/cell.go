package turmite

// CellSize is the edge length, in renderer units, of one lattice cell.
// It scales coordinates for display and is not part of a cell's identity.
const CellSize = 1

// Cell is a position on the unbounded integer lattice.
// Cells are comparable and used directly as map keys.
type Cell struct {
	X, Y int
}

// C is shorthand for constructing a Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// MoveUp moves the cell up by one.
func (c *Cell) MoveUp() { c.Y-- }

// MoveDown moves the cell down by one.
func (c *Cell) MoveDown() { c.Y++ }

// MoveLeft moves the cell left by one.
func (c *Cell) MoveLeft() { c.X-- }

// MoveRight moves the cell right by one.
func (c *Cell) MoveRight() { c.X++ }

// Move translates the cell one step along h.
func (c *Cell) Move(h Heading) {
	switch h {
	case Up:
		c.MoveUp()
	case Down:
		c.MoveDown()
	case Left:
		c.MoveLeft()
	case Right:
		c.MoveRight()
	}
}

// Reset returns the cell to the origin.
func (c *Cell) Reset() {
	c.X, c.Y = 0, 0
}

// Add returns the cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Scaled returns the cell's top-left corner in units of size.
func (c Cell) Scaled(size int) (x, y int) {
	return c.X * size, c.Y * size
}
