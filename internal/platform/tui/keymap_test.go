package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected Action
	}{
		{"space", runes(" "), ActionToggle},
		{"p", runes("p"), ActionToggle},
		{"n", runes("n"), ActionStep},
		{"r", runes("r"), ActionReset},
		{"plus", runes("+"), ActionFaster},
		{"equals", runes("="), ActionFaster},
		{"minus", runes("-"), ActionSlower},
		{"up arrow", keyOf(tea.KeyUp), ActionPanUp},
		{"k", runes("k"), ActionPanUp},
		{"down arrow", keyOf(tea.KeyDown), ActionPanDown},
		{"left arrow", keyOf(tea.KeyLeft), ActionPanLeft},
		{"l", runes("l"), ActionPanRight},
		{"c", runes("c"), ActionCenter},
		{"f", runes("f"), ActionFollow},
		{"e", runes("e"), ActionEdit},
		{"tab", keyOf(tea.KeyTab), ActionEdit},
		{"ctrl+s", keyOf(tea.KeyCtrlS), ActionSnapshot},
		{"esc", keyOf(tea.KeyEsc), ActionBack},
		{"q", runes("q"), ActionQuit},
		{"ctrl+c", keyOf(tea.KeyCtrlC), ActionQuit},
		{"unbound", runes("z"), ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKey(tc.msg); got != tc.expected {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{"k", runes("k"), MenuActionUp},
		{"down", keyOf(tea.KeyDown), MenuActionDown},
		{"enter", keyOf(tea.KeyEnter), MenuActionSelect},
		{"e", runes("e"), MenuActionEdit},
		{"tab", keyOf(tea.KeyTab), MenuActionHistory},
		{"esc", keyOf(tea.KeyEsc), MenuActionBack},
		{"q", runes("q"), MenuActionQuit},
		{"unbound", runes("x"), MenuActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
				t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
			}
		})
	}
}
