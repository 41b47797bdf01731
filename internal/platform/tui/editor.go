package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/turmite/internal/core"
	"github.com/vovakirdan/turmite/internal/turmite"
)

// EditorKeyMap defines the key bindings for the rule editor.
type EditorKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Edit  key.Binding
	Turn  key.Binding
	Save  key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Edit, k.Turn, k.Save, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Edit, k.Turn, k.Save, k.Back, k.Quit},
	}
}

// DefaultEditorKeyMap returns default key bindings.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "prev rule"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next rule"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left/h", "prev field"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right/l", "next field"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit field"),
		),
		Turn: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cycle turn"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type editorMode int

const (
	modeBrowse editorMode = iota
	modeField             // typing a new field value
	modeName              // typing a name to save under
)

// fieldTitles are the column headers, in turmite.Fields order.
var fieldTitles = []string{"state", "color", "turn", "paint", "next"}

// EditorModel is the Bubble Tea model for the rule table editor.
// Every edit goes through Session.EditCell, so the table shown is always the
// repaired one.
type EditorModel struct {
	env     *Env
	sim     *simulation
	table   table.Model
	input   textinput.Model
	help    help.Model
	keys    EditorKeyMap
	styles  Styles
	mode    editorMode
	field   int // index into turmite.Fields
	width   int
	height  int
	message string
	isError bool

	done     bool
	quitting bool
}

// NewEditorModel creates an editor over the session's current table.
func NewEditorModel(env *Env, sim *simulation, cfg core.RuntimeConfig) EditorModel {
	input := textinput.New()
	input.CharLimit = 64

	m := EditorModel{
		env:    env,
		sim:    sim,
		input:  input,
		help:   help.New(),
		keys:   DefaultEditorKeyMap(),
		styles: NewStyles(env.Config.Display),
		field:  int(turmite.FieldTurn),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
	m.help.Width = cfg.ScreenW
	m.table = m.createTable()
	m.refreshRows()
	return m
}

// createTable creates a table whose selected field column is marked.
func (m *EditorModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-8, 3)), // Leave room for header, input, and help
	)
	t.SetStyles(m.styles.Table())

	return t
}

func (m *EditorModel) columns() []table.Column {
	columns := []table.Column{{Title: "#", Width: 4}}
	for i, title := range fieldTitles {
		if i == m.field {
			title = "[" + title + "]"
		}
		columns = append(columns, table.Column{Title: title, Width: 8})
	}
	return columns
}

// refreshRows reloads the table from the session, keeping the cursor in range.
func (m *EditorModel) refreshRows() {
	rules := m.sim.session.Rows()
	rows := make([]table.Row, len(rules))
	for i, r := range rules {
		rows[i] = table.Row{
			strconv.Itoa(i),
			strconv.Itoa(r.CurrState),
			strconv.Itoa(r.CurrColor),
			string(r.Turn.Code()),
			strconv.Itoa(r.NewColor),
			strconv.Itoa(r.NewState),
		}
	}

	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	if cursor >= len(rows) {
		m.table.SetCursor(len(rows) - 1)
	}
}

// Init implements tea.Model.
func (m EditorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the editor.
func (m EditorModel) Update(msg tea.Msg) (EditorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.handleInputKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.refreshRows()
		m.table.SetCursor(cursor)
		return m, nil
	}

	return m, nil
}

// handleKey processes keys while browsing the table.
func (m EditorModel) handleKey(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	var cmd tea.Cmd
	m.message, m.isError = "", false

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.done = true
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.field = (m.field + len(fieldTitles) - 1) % len(fieldTitles)
		m.table.SetColumns(m.columns())
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.field = (m.field + 1) % len(fieldTitles)
		m.table.SetColumns(m.columns())
		return m, nil

	case key.Matches(msg, m.keys.Turn):
		m.cycleTurn()
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		rule, ok := m.sim.session.Ruleset().Rule(m.table.Cursor())
		if !ok {
			return m, nil
		}
		if field := m.selectedField(); !field.Editable() {
			m.message = fmt.Sprintf("%s follows the row order; edit turn, paint or next", field)
			m.isError = true
			return m, nil
		}
		m.mode = modeField
		m.input.Reset()
		m.input.Prompt = fmt.Sprintf("row %d %s: ", m.table.Cursor(), m.selectedField())
		m.input.Placeholder = fieldValue(rule, m.selectedField())
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Save):
		m.mode = modeName
		m.input.Reset()
		m.input.Prompt = "save as: "
		m.input.Placeholder = "ruleset name"
		if name := m.sim.session.Name(); name != turmite.UnsavedName {
			m.input.SetValue(name)
		}
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		// Pass to table for scrolling
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleInputKey processes keys while the text input is focused.
func (m EditorModel) handleInputKey(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil

	case "enter":
		text := m.input.Value()
		mode := m.mode
		m.mode = modeBrowse
		m.input.Blur()
		if mode == modeName {
			m.save(text)
		} else {
			m.commit(m.selectedField(), text)
		}
		return m, nil

	case "ctrl+c":
		m.quitting = true
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commit applies text to field of the selected row.
func (m *EditorModel) commit(field turmite.Field, text string) {
	row := m.table.Cursor()
	edit, err := turmite.ParseFieldEdit(field, text)
	if err == nil {
		err = m.sim.session.EditCell(row, edit)
	}
	if err != nil {
		m.setError(err)
		return
	}

	m.refreshRows()
	m.message = fmt.Sprintf("row %d %s = %s, %d rules", row, field, strings.TrimSpace(text), len(m.table.Rows()))
}

// cycleTurn sets the turn of the selected row to the next turn code.
func (m *EditorModel) cycleTurn() {
	row := m.table.Cursor()
	rule, ok := m.sim.session.Ruleset().Rule(row)
	if !ok {
		return
	}

	next := turmite.Turns[0]
	for i, t := range turmite.Turns {
		if t == rule.Turn {
			next = turmite.Turns[(i+1)%len(turmite.Turns)]
			break
		}
	}
	m.commit(turmite.FieldTurn, string(next.Code()))
}

// save writes the current table to the library under name.
func (m *EditorModel) save(name string) {
	name = strings.TrimSpace(name)
	if err := m.env.Library.Save(name, m.sim.session.Rows()); err != nil {
		m.setError(err)
		return
	}
	m.sim.session.MarkSaved(name)
	m.message = "saved " + name
}

func (m EditorModel) selectedField() turmite.Field {
	return turmite.Fields[m.field]
}

func (m *EditorModel) setError(err error) {
	m.message = err.Error()
	m.isError = true
}

// fieldValue formats one field of a rule as the editor shows it.
func fieldValue(r turmite.Rule, f turmite.Field) string {
	switch f {
	case turmite.FieldCurrState:
		return strconv.Itoa(r.CurrState)
	case turmite.FieldCurrColor:
		return strconv.Itoa(r.CurrColor)
	case turmite.FieldTurn:
		return string(r.Turn.Code())
	case turmite.FieldNewColor:
		return strconv.Itoa(r.NewColor)
	default:
		return strconv.Itoa(r.NewState)
	}
}

// View renders the editor.
func (m EditorModel) View() string {
	var b strings.Builder

	limits := m.sim.session.Ruleset().Limits()
	title := fmt.Sprintf("RULES - %s  (%d states, %d colors max)", m.sim.session.Name(), limits.MaxStates, limits.MaxColors)
	b.WriteString(m.styles.Title.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Panel.Render(m.table.View()))
	b.WriteString("\n")

	switch {
	case m.mode != modeBrowse:
		b.WriteString(m.input.View())
	case m.isError:
		b.WriteString(m.styles.Error.Render(m.message))
	default:
		b.WriteString(m.styles.Help.Render(m.message))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// Done returns true if user left the editor.
func (m EditorModel) Done() bool {
	return m.done
}

// IsQuitting returns true if user wants to quit entirely.
func (m EditorModel) IsQuitting() bool {
	return m.quitting
}
