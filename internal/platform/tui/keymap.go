package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is a simulation view command derived from a key press.
type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionStep
	ActionReset
	ActionFaster
	ActionSlower
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionCenter
	ActionFollow
	ActionEdit
	ActionSnapshot
	ActionBack
	ActionQuit
)

// SimKeyMap defines the key bindings of the simulation view.
type SimKeyMap struct {
	Toggle   key.Binding
	Step     key.Binding
	Reset    key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Center   key.Binding
	Follow   key.Binding
	Edit     key.Binding
	Snapshot key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SimKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Step, k.Faster, k.Slower, k.Edit, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SimKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Step, k.Reset, k.Faster, k.Slower},
		{k.Up, k.Down, k.Left, k.Right, k.Center, k.Follow},
		{k.Edit, k.Snapshot, k.Back, k.Quit},
	}
}

// DefaultSimKeyMap returns default key bindings.
func DefaultSimKeyMap() SimKeyMap {
	return SimKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "run/pause"),
		),
		Step: key.NewBinding(
			key.WithKeys("n", "."),
			key.WithHelp("n", "step"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "slower"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "pan up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "pan down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "pan left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "pan right"),
		),
		Center: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "center"),
		),
		Follow: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "follow"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "tab"),
			key.WithHelp("e", "edit rules"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "snapshot"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to simulation actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Keys SimKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultSimKeyMap()}
}

// MapKey translates a key message to a simulation action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Action {
	k := km.Keys
	bindings := []struct {
		binding key.Binding
		action  Action
	}{
		{k.Quit, ActionQuit},
		{k.Back, ActionBack},
		{k.Toggle, ActionToggle},
		{k.Step, ActionStep},
		{k.Reset, ActionReset},
		{k.Faster, ActionFaster},
		{k.Slower, ActionSlower},
		{k.Up, ActionPanUp},
		{k.Down, ActionPanDown},
		{k.Left, ActionPanLeft},
		{k.Right, ActionPanRight},
		{k.Center, ActionCenter},
		{k.Follow, ActionFollow},
		{k.Edit, ActionEdit},
		{k.Snapshot, ActionSnapshot},
	}

	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return ActionNone
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionEdit
	MenuActionHistory
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "e":
		return MenuActionEdit
	case "tab", "H":
		return MenuActionHistory
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}
