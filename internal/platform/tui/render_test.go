package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/turmite/internal/config"
	"github.com/vovakirdan/turmite/internal/core"
)

func TestGlyphsFor(t *testing.T) {
	g := GlyphsFor(config.DisplayConfig{Glyph: "#", AntGlyph: "@"})
	if g.Cell != '#' || g.Ant != '@' {
		t.Errorf("GlyphsFor() = %q %q, expected '#' '@'", g.Cell, g.Ant)
	}

	g = GlyphsFor(config.DisplayConfig{})
	if g != core.DefaultGlyphs() {
		t.Errorf("GlyphsFor(empty) = %+v, expected defaults", g)
	}
}

func TestNewStylesPalette(t *testing.T) {
	st := NewStyles(config.DefaultConfig().Display)
	if len(st.Palette) != 3 {
		t.Errorf("len(Palette) = %d, expected 3", len(st.Palette))
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 3)
	s.SetCell(1, 0, core.Cell{Rune: '█', Color: core.PaletteColor(1)})
	s.SetCell(2, 0, core.Cell{Rune: '█', Color: core.PaletteColor(1)})
	s.SetCell(3, 1, core.Cell{Rune: '▲', Color: core.ColorAnt})
	s.SetCell(0, 2, core.Cell{Rune: '█', Color: core.PaletteColor(42)}) // beyond the palette

	out := RenderScreen(s, NewStyles(config.DefaultConfig().Display))

	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("RenderScreen() has %d newlines, expected 2", got)
	}
	if got := strings.Count(out, "█"); got != 3 {
		t.Errorf("RenderScreen() has %d cell glyphs, expected 3", got)
	}
	if !strings.Contains(out, "▲") {
		t.Error("RenderScreen() should contain the ant glyph")
	}
}
