package core

import "github.com/vovakirdan/turmite/internal/turmite"

// Glyphs are the runes used to draw the lattice.
type Glyphs struct {
	Cell rune // painted cell
	Ant  rune // the automaton
}

// DefaultGlyphs returns glyphs that render in any UTF-8 terminal.
func DefaultGlyphs() Glyphs {
	return Glyphs{Cell: '█', Ant: '▲'}
}

// DrawSnapshot draws the snapshot region into dst starting at the top-left.
// Screen (x, y) shows lattice cell (Origin.X+x, Origin.Y+y). Background cells
// are left blank; other colors use their palette index.
func DrawSnapshot(dst *Screen, snap turmite.Snapshot, g Glyphs) {
	for c, color := range snap.Cells {
		x, y := c.X-snap.Origin.X, c.Y-snap.Origin.Y
		if x < 0 || y < 0 || x >= snap.Width || y >= snap.Height {
			continue
		}
		dst.SetCell(x, y, Cell{Rune: g.Cell, Color: PaletteColor(color)})
	}

	ax, ay := snap.Ant.X-snap.Origin.X, snap.Ant.Y-snap.Origin.Y
	if ax >= 0 && ay >= 0 && ax < snap.Width && ay < snap.Height {
		dst.SetCell(ax, ay, Cell{Rune: g.Ant, Color: ColorAnt})
	}
}

// RenderASCII draws a snapshot as plain text with one character per cell:
// ' ' for background, digits for colors 1-9 and the ant glyph.
func RenderASCII(snap turmite.Snapshot, ant rune) string {
	s := NewScreen(snap.Width, snap.Height)
	for c, color := range snap.Cells {
		r := '#'
		if color > 0 && color < 10 {
			r = rune('0' + color)
		}
		s.Set(c.X-snap.Origin.X, c.Y-snap.Origin.Y, r)
	}
	s.Set(snap.Ant.X-snap.Origin.X, snap.Ant.Y-snap.Origin.Y, ant)
	return s.String()
}
