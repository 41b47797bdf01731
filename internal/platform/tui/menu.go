package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/turmite/internal/core"
	"github.com/vovakirdan/turmite/internal/registry"
	"github.com/vovakirdan/turmite/internal/turmite"
)

// ItemKind says where a menu entry's table comes from.
type ItemKind int

const (
	ItemNew    ItemKind = iota // the default table
	ItemPreset                 // a built-in preset
	ItemSaved                  // a file in the ruleset library
)

// MenuItem represents a selectable ruleset in the menu.
type MenuItem struct {
	Kind  ItemKind
	Name  string // preset ID or library name
	Title string
	Edit  bool // open the editor instead of the lattice
}

// Rows loads the item's table.
func (it MenuItem) Rows(env *Env) ([]turmite.RawRule, error) {
	switch it.Kind {
	case ItemPreset:
		p, err := registry.Get(it.Name)
		if err != nil {
			return nil, err
		}
		return p.Rows, nil
	case ItemSaved:
		return env.Library.Load(it.Name)
	default:
		rules := turmite.NewRuleset(env.Config.TurmiteLimits()).Rows()
		rows := make([]turmite.RawRule, len(rules))
		for i, r := range rules {
			rows[i] = r.Raw()
		}
		return rows, nil
	}
}

// MenuModel is the Bubble Tea model for the ruleset picker.
type MenuModel struct {
	items        []MenuItem
	cursor       int
	width        int
	height       int
	keyMapper    *KeyMapper
	message      string
	styles       Styles
	quitting     bool
	selected     *MenuItem // Set when user selects a ruleset
	wantsHistory bool      // True if user pressed Tab for history
}

// NewMenuModel creates a new menu model listing the new table, the presets and the library.
func NewMenuModel(env *Env, cfg core.RuntimeConfig) MenuModel {
	items := []MenuItem{{Kind: ItemNew, Name: turmite.UnsavedName, Title: "New ruleset"}}

	for _, p := range registry.List() {
		items = append(items, MenuItem{
			Kind:  ItemPreset,
			Name:  p.ID,
			Title: fmt.Sprintf("%s - %s", p.Title, p.Description),
		})
	}

	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(),
		styles:    NewStyles(env.Config.Display),
	}

	names, err := env.Library.List()
	if err != nil {
		m.message = err.Error()
	}
	for _, name := range names {
		items = append(items, MenuItem{Kind: ItemSaved, Name: name, Title: name + " (saved)"})
	}

	m.items = items
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (MenuModel, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect, MenuActionEdit:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			selected.Edit = action == MenuActionEdit
			m.selected = &selected
		}

	case MenuActionHistory:
		m.wantsHistory = true
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render(centerText("  T U R M I T E  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a ruleset", m.width))
	b.WriteString("\n\n")

	// Ruleset list, scrolled to keep the cursor visible
	visible := core.Max(m.height-10, 3)
	start := core.Clamp(m.cursor-visible/2, 0, core.Max(len(m.items)-visible, 0))
	end := core.Min(start+visible, len(m.items))
	for i := start; i < end; i++ {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+m.items[i].Title, m.width))
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(centerText(m.message, m.width)))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Run  |  E: Edit  |  Tab: History  |  Q: Quit"
	b.WriteString(m.styles.Help.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsHistory returns true if user requested the run history.
func (m MenuModel) WantsHistory() bool {
	return m.wantsHistory
}

func (m MenuModel) clearSelection() MenuModel {
	m.selected = nil
	m.message = ""
	return m
}

func (m *MenuModel) setError(err error) {
	m.message = err.Error()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}
