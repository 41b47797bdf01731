package core

// Color selects how a screen cell is styled.
// Non-negative values index the cell-color palette; negative values are
// reserved for interface elements.
type Color int

// Interface colors.
const (
	ColorDefault Color = -1 - iota // terminal default
	ColorAnt
	ColorStatus
)

// PaletteColor returns the screen color for a lattice cell color.
func PaletteColor(c int) Color {
	return Color(c)
}

// IsPalette reports whether c indexes the cell-color palette.
func (c Color) IsPalette() bool {
	return c >= 0
}
