package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/turmite/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show ruleset list sidebar
	sidebarWidth       = 20  // Width of ruleset list sidebar
	maxRuns            = 100 // Max runs to load
)

// HistoryKeyMap defines the key bindings for the run history.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextRule key.Binding
	PrevRule key.Binding
	Clear    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextRule, k.PrevRule, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextRule, k.PrevRule},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev ruleset"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next ruleset"),
		),
		NextRule: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next ruleset"),
		),
		PrevRule: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev ruleset"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear ruleset"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	stats       []storage.Stats // One entry per ruleset with runs
	cursor      int             // Currently selected ruleset index
	store       *storage.Store
	runs        []storage.Run
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	styles      Styles
	width       int
	height      int
	err         error
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show ruleset list sidebar
	showSource  bool // Whether the table has a source column
}

// NewHistoryModel creates a new history model. A nil store shows an empty board.
func NewHistoryModel(store *storage.Store, styles Styles, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		styles:      styles,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.loadStats()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Steps", Width: 12},
		{Title: "Painted", Width: 9},
		{Title: "Time", Width: 9},
		{Title: "Source", Width: 10},
		{Title: "Date", Width: 14},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Drop the source column when there is no room for it
	m.showSource = tableWidth >= 64
	if !m.showSource {
		columns = []table.Column{columns[0], columns[1], columns[2], columns[4]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)
	t.SetStyles(m.styles.Table())

	return t
}

// loadStats loads the ruleset list and the runs of the selected one.
func (m *HistoryModel) loadStats() {
	m.stats = nil
	if m.store != nil {
		m.stats, m.err = m.store.AllStats()
	}
	if m.cursor >= len(m.stats) {
		m.cursor = max(len(m.stats)-1, 0)
	}
	m.loadRuns()
}

// loadRuns loads the most recent runs of the selected ruleset.
func (m *HistoryModel) loadRuns() {
	m.runs = nil
	if m.store != nil && len(m.stats) > 0 {
		m.runs, m.err = m.store.RunsFor(m.stats[m.cursor].Ruleset, maxRuns)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current runs.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		row := table.Row{
			fmt.Sprintf("%d", r.Steps),
			fmt.Sprintf("%d", r.Painted),
			r.Duration.Round(time.Second).String(),
		}
		if m.showSource {
			source := r.Source
			if r.User != "" {
				source = r.User + "@" + source
			}
			row = append(row, source)
		}
		row = append(row, r.CreatedAt.Local().Format("Jan 02 15:04"))
		rows[i] = row
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history board.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextRule), key.Matches(msg, m.keys.Right):
			if len(m.stats) > 0 {
				m.cursor = (m.cursor + 1) % len(m.stats)
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevRule), key.Matches(msg, m.keys.Left):
			if len(m.stats) > 0 {
				m.cursor--
				if m.cursor < 0 {
					m.cursor = len(m.stats) - 1
				}
				m.loadRuns()
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			if m.store != nil && len(m.stats) > 0 {
				m.err = m.store.ClearRuns(m.stats[m.cursor].Ruleset)
				m.loadStats()
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history board.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "RUN HISTORY"
	if len(m.stats) > 0 {
		st := m.stats[m.cursor]
		title = fmt.Sprintf("RUN HISTORY - %s  (%d runs, best %d steps)", st.Ruleset, st.Runs, st.MaxSteps)
	}

	b.WriteString(m.styles.Title.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.err.Error()))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar for ruleset selection.
func (m HistoryModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Rulesets\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, st := range m.stats {
		name := truncate(st.Ruleset, sidebarWidth-6)
		line := "  " + name
		if i == m.cursor {
			line = m.styles.Cursor.Render("> " + name)
		}
		sidebar.WriteString(line)
		sidebar.WriteString("\n")
	}

	sidebarRendered := m.styles.Panel.Width(sidebarWidth).Render(sidebar.String())
	tableRendered := m.styles.Panel.Render(m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout renders the board with the selected ruleset above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.stats) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.stats[m.cursor].Ruleset), m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Panel.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := m.styles.Help.Italic(true).Padding(2, 4)
		if m.store == nil {
			return emptyStyle.Render("Run history is disabled.")
		}
		return emptyStyle.Render("No runs recorded yet.\nRun a ruleset to start a history!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// truncate shortens s to at most n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 1 {
		return s
	}
	return string(r[:n-1]) + "."
}
