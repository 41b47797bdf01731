package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/turmite/internal/config"
	"github.com/vovakirdan/turmite/internal/core"
)

// Styles maps core.Color to lipgloss styles.
// Palette entries style lattice colors; the rest style interface elements.
type Styles struct {
	Palette []lipgloss.Style
	Default lipgloss.Style
	Ant     lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
	Title   lipgloss.Style
	Panel   lipgloss.Style // framed tables and lists
	Cursor  lipgloss.Style // highlighted table row or list entry
}

// NewStyles builds styles from the display configuration.
// An empty palette entry uses the terminal's default foreground.
func NewStyles(d config.DisplayConfig) Styles {
	palette := make([]lipgloss.Style, len(d.Palette))
	for i, c := range d.Palette {
		palette[i] = lipgloss.NewStyle()
		if c != "" {
			palette[i] = palette[i].Foreground(lipgloss.Color(c))
		}
	}

	ant := lipgloss.NewStyle().Bold(true)
	if d.AntColor != "" {
		ant = ant.Foreground(lipgloss.Color(d.AntColor))
	}

	return Styles{
		Palette: palette,
		Default: lipgloss.NewStyle(),
		Ant:     ant,
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		Panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Cursor:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	}
}

// Table returns the bubbles table styles matching the palette.
func (st Styles) Table() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = st.Status.Bold(false)
	return s
}

// For returns the style of a screen color.
func (st Styles) For(c core.Color) lipgloss.Style {
	if c.IsPalette() {
		if int(c) < len(st.Palette) {
			return st.Palette[c]
		}
		return st.Default
	}

	switch c {
	case core.ColorAnt:
		return st.Ant
	case core.ColorStatus:
		return st.Status
	}
	return st.Default
}

// GlyphsFor returns the lattice glyphs of the display configuration,
// falling back to the defaults for empty strings.
func GlyphsFor(d config.DisplayConfig) core.Glyphs {
	g := core.DefaultGlyphs()
	if r, _ := utf8.DecodeRuneInString(d.Glyph); r != utf8.RuneError {
		g.Cell = r
	}
	if r, _ := utf8.DecodeRuneInString(d.AntGlyph); r != utf8.RuneError {
		g.Ant = r
	}
	return g
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, st Styles) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, run := range s.Runs(y) {
			sb.WriteString(st.For(run.Color).Render(run.Text))
		}
	}
	return sb.String()
}
