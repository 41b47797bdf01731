package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/turmite/internal/core"
	"github.com/vovakirdan/turmite/internal/turmite"
)

// followMargin is how close the automaton may get to the edge of the view
// before the view scrolls after it.
const followMargin = 3

const offscreenHint = " ant off screen: c to center "

// SimModel is the Bubble Tea model for the lattice view.
// The automaton is stepped by the driver goroutine; the model only reads snapshots.
type SimModel struct {
	env     *Env
	sim     *simulation
	keys    *KeyMapper
	help    help.Model
	styles  Styles
	glyphs  core.Glyphs
	screen  *core.Screen
	config  core.RuntimeConfig
	view    core.Rect // lattice region shown on screen
	follow  bool
	message string
	isError bool

	quitting    bool
	backToMenu  bool
	wantsEditor bool
}

// NewSimModel creates a lattice view centered on the automaton.
func NewSimModel(env *Env, sim *simulation, cfg core.RuntimeConfig) SimModel {
	w, h := cfg.ViewSize()
	pos, _, _ := sim.session.Ant()

	hm := help.New()
	hm.Width = cfg.ScreenW

	return SimModel{
		env:    env,
		sim:    sim,
		keys:   NewKeyMapper(),
		help:   hm,
		styles: NewStyles(env.Config.Display),
		glyphs: GlyphsFor(env.Config.Display),
		screen: core.NewScreen(w, h),
		config: cfg,
		view:   core.CenteredRect(pos.X, pos.Y, w, h),
		follow: true,
	}
}

// Init implements tea.Model. Ticks are driven by AppModel.
func (m SimModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m SimModel) Update(msg tea.Msg) (SimModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m SimModel) handleKey(msg tea.KeyMsg) (SimModel, tea.Cmd) {
	m.message, m.isError = "", false
	drv := m.sim.driver

	switch m.keys.MapKey(msg) {
	case ActionQuit:
		m.quitting = true
	case ActionBack:
		m.backToMenu = true
	case ActionEdit:
		m.wantsEditor = true

	case ActionToggle:
		if drv.Toggle() {
			m.message = "paused"
		} else {
			m.message = "running"
		}
	case ActionStep:
		drv.StepOnce()
		m.followAnt()
	case ActionReset:
		if err := m.sim.reset(m.env); err != nil {
			m.setError(err)
		}
		m.centerOnAnt()
	case ActionFaster:
		m.message = fmt.Sprintf("interval %v", drv.Faster())
	case ActionSlower:
		m.message = fmt.Sprintf("interval %v", drv.Slower())

	case ActionPanUp:
		m.pan(0, -m.panStep(m.view.H))
	case ActionPanDown:
		m.pan(0, m.panStep(m.view.H))
	case ActionPanLeft:
		m.pan(-m.panStep(m.view.W), 0)
	case ActionPanRight:
		m.pan(m.panStep(m.view.W), 0)
	case ActionCenter:
		m.centerOnAnt()
	case ActionFollow:
		m.follow = !m.follow
		if m.follow {
			m.followAnt()
			m.message = "following"
		} else {
			m.message = "not following"
		}

	case ActionSnapshot:
		path, err := m.saveSnapshot()
		if err != nil {
			m.setError(err)
		} else {
			m.message = "snapshot saved to " + path
		}
	}

	return m, nil
}

// handleResize processes window resize events.
func (m SimModel) handleResize(msg tea.WindowSizeMsg) (SimModel, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	w, h := m.config.ViewSize()
	m.screen.Resize(w, h)
	m.view = m.view.Resize(w, h)
	return m, nil
}

// handleTick scrolls the view after the automaton.
func (m SimModel) handleTick() (SimModel, tea.Cmd) {
	if m.follow {
		m.followAnt()
	}
	return m, nil
}

func (m *SimModel) followAnt() {
	pos, _, _ := m.sim.session.Ant()
	m.view = m.view.Follow(pos.X, pos.Y, followMargin)
}

func (m *SimModel) centerOnAnt() {
	pos, _, _ := m.sim.session.Ant()
	m.view = core.CenteredRect(pos.X, pos.Y, m.view.W, m.view.H)
}

// pan moves the view and stops following the automaton.
func (m *SimModel) pan(dx, dy int) {
	m.follow = false
	m.view = m.view.Translate(dx, dy)
}

func (m SimModel) panStep(size int) int {
	return core.Max(size/8, 1)
}

func (m *SimModel) setError(err error) {
	m.message = err.Error()
	m.isError = true
}

func (m *SimModel) clearFlags() {
	m.quitting, m.backToMenu, m.wantsEditor = false, false, false
}

// saveSnapshot writes the visible lattice as plain text.
func (m SimModel) saveSnapshot() (string, error) {
	snap := m.snapshot()

	dir := filepath.Join(filepath.Dir(m.env.Library.Root), "snapshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating snapshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", snap.Name, timestamp))
	if err := os.WriteFile(path, []byte(core.RenderASCII(snap, m.glyphs.Ant)+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("writing snapshot: %w", err)
	}
	return path, nil
}

func (m SimModel) snapshot() turmite.Snapshot {
	return m.sim.session.Snapshot(turmite.C(m.view.X, m.view.Y), m.view.W, m.view.H)
}

// View renders the lattice, a status line and a help or message line.
func (m SimModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.snapshot()
	m.screen.Clear()
	core.DrawSnapshot(m.screen, snap, m.glyphs)
	if !m.view.Contains(snap.Ant.X, snap.Ant.Y) {
		m.screen.DrawTextCentered(0, offscreenHint, core.ColorStatus)
	}

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen, m.styles))
	b.WriteString("\n")
	b.WriteString(m.statusLine(snap))
	b.WriteString("\n")

	switch {
	case m.isError:
		b.WriteString(m.styles.Error.Render(m.message))
	case m.message != "":
		b.WriteString(m.styles.Help.Render(m.message))
	default:
		b.WriteString(m.help.View(m.keys.Keys))
	}

	return b.String()
}

// statusLine summarizes the run: ruleset, steps, automaton pose and speed.
func (m SimModel) statusLine(snap turmite.Snapshot) string {
	runState := "running"
	if m.sim.driver.Paused() {
		runState = "paused"
	}

	text := fmt.Sprintf(" %s  %s  step %d  state %d  %s  (%d,%d)  painted %d  %v",
		snap.Name,
		runState,
		snap.Steps,
		snap.State,
		snap.Heading,
		snap.Ant.X, snap.Ant.Y,
		snap.Painted,
		m.sim.driver.Interval(),
	)

	w := m.screen.Width()
	if r := []rune(text); len(r) > w {
		text = string(r[:w])
	}
	return m.styles.Status.Width(w).Render(text)
}

// IsQuitting returns true if user requested to quit entirely.
func (m SimModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m SimModel) BackToMenu() bool {
	return m.backToMenu
}

// WantsEditor returns true if user requested the rule editor.
func (m SimModel) WantsEditor() bool {
	return m.wantsEditor
}
