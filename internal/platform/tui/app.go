package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/turmite/internal/config"
	"github.com/vovakirdan/turmite/internal/core"
	"github.com/vovakirdan/turmite/internal/driver"
	"github.com/vovakirdan/turmite/internal/rulefile"
	"github.com/vovakirdan/turmite/internal/storage"
	"github.com/vovakirdan/turmite/internal/turmite"
)

// Env bundles the collaborators shared by every screen.
type Env struct {
	Config  config.Config
	Library *rulefile.Library
	Store   *storage.Store // nil disables run history
	Source  string         // storage.SourceTUI or storage.SourceSSH
	User    string
}

// simulation is the session and driver of one terminal, shared by all screens.
type simulation struct {
	session *turmite.Session
	driver  *driver.Driver
	started time.Time
}

func newSimulation(env *Env) *simulation {
	session := turmite.NewSession(env.Config.TurmiteLimits())
	return &simulation{
		session: session,
		driver:  driver.New(session, driver.WithInterval(env.Config.Interval())),
		started: time.Now(),
	}
}

// current describes the run so far. ok is false before the first step.
func (s *simulation) current(env *Env) (run storage.Run, ok bool) {
	steps := s.session.Steps()
	if steps == 0 {
		return storage.Run{}, false
	}
	return storage.Run{
		Ruleset:  s.session.Name(),
		Rules:    s.session.Ruleset().Compact(),
		Steps:    steps,
		Painted:  s.session.Painted(),
		Source:   env.Source,
		User:     env.User,
		Duration: time.Since(s.started).Round(time.Millisecond),
	}, true
}

// recordError is a failure to store a run. The simulation itself is fine.
type recordError struct {
	err error
}

func (e *recordError) Error() string { return "recording run: " + e.err.Error() }
func (e *recordError) Unwrap() error { return e.err }

// save stores a run in the history, if there is one.
func save(env *Env, run storage.Run, ok bool) error {
	if env.Store == nil || !ok {
		return nil
	}
	if _, err := env.Store.SaveRun(run); err != nil {
		return &recordError{err: err}
	}
	return nil
}

// record stores the current run in the history, if it made any progress.
func (s *simulation) record(env *Env) error {
	run, ok := s.current(env)
	return save(env, run, ok)
}

// reset records the finished run, then clears the lattice.
func (s *simulation) reset(env *Env) error {
	err := s.record(env)
	s.driver.Reset()
	s.started = time.Now()
	return err
}

// load swaps in a new table. On success the finished run is recorded, the
// driver is paused and the lattice is cleared for a fresh run. On failure
// nothing changes and the driver keeps its run state.
func (s *simulation) load(env *Env, name string, rows []turmite.RawRule) error {
	wasPaused := s.driver.Paused()
	s.driver.Pause()

	run, ok := s.current(env)
	if err := s.session.Load(name, rows); err != nil {
		if !wasPaused {
			s.driver.Resume()
		}
		return err
	}

	s.driver.Reset()
	s.started = time.Now()
	return save(env, run, ok)
}

type screen int

const (
	screenMenu screen = iota
	screenSim
	screenEditor
	screenHistory
)

// Start selects what the program shows first.
type Start struct {
	Name    string
	Rows    []turmite.RawRule // nil opens the picker
	Editor  bool              // open the rule editor instead of the lattice
	Running bool              // start the driver unpaused
}

// AppModel manages the full flow: picker -> lattice <-> editor, plus history.
// It is the top-level model for both local and SSH sessions.
type AppModel struct {
	env      *Env
	sim      *simulation
	ctx      context.Context
	cancel   context.CancelFunc
	config   core.RuntimeConfig
	screen   screen
	menu     MenuModel
	view     SimModel
	editor   EditorModel
	history  HistoryModel
	quitting bool
}

// NewAppModel creates the top-level model. The driver goroutine runs until ctx
// is cancelled or the user quits.
func NewAppModel(ctx context.Context, env *Env, cfg core.RuntimeConfig, start Start) (AppModel, error) {
	sim := newSimulation(env)

	screen := screenMenu
	if start.Rows != nil {
		if err := sim.load(env, start.Name, start.Rows); err != nil {
			return AppModel{}, fmt.Errorf("loading %s: %w", start.Name, err)
		}
		screen = screenSim
		if start.Editor {
			screen = screenEditor
		}
	}
	if start.Running {
		sim.driver.Resume()
	}

	ctx, cancel := context.WithCancel(ctx)
	return AppModel{
		env:     env,
		sim:     sim,
		ctx:     ctx,
		cancel:  cancel,
		config:  cfg,
		screen:  screen,
		menu:    NewMenuModel(env, cfg),
		view:    NewSimModel(env, sim, cfg),
		editor:  NewEditorModel(env, sim, cfg),
		history: NewHistoryModel(env.Store, NewStyles(env.Config.Display), cfg.ScreenW, cfg.ScreenH),
	}, nil
}

// Init starts the driver and the redraw loop.
func (m AppModel) Init() tea.Cmd {
	go m.sim.driver.Run(m.ctx) //nolint:errcheck // Returns ctx.Err() on shutdown
	return tickCmd(m.config.FPS)
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.menu, _ = m.menu.Update(msg)
		m.view, _ = m.view.Update(msg)
		m.editor, _ = m.editor.Update(msg)
		m.history, _ = m.history.Update(msg)
		return m, nil

	case TickMsg:
		var cmd tea.Cmd
		if m.screen == screenSim {
			m.view, cmd = m.view.Update(msg)
		}
		return m, tea.Batch(cmd, tickCmd(m.config.FPS))
	}

	switch m.screen {
	case screenSim:
		return m.updateSim(msg)
	case screenEditor:
		return m.updateEditor(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsHistory():
		m.history = NewHistoryModel(m.env.Store, NewStyles(m.env.Config.Display), m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, nil

	case m.menu.Selected() != nil:
		item := *m.menu.Selected()
		m.menu = m.menu.clearSelection()

		rows, err := item.Rows(m.env)
		if err == nil {
			err = m.sim.load(m.env, item.Name, rows)
		}
		var recErr *recordError
		if err != nil && !errors.As(err, &recErr) {
			m.menu.setError(err)
			return m, nil
		}

		if item.Edit {
			m.editor = NewEditorModel(m.env, m.sim, m.config)
			if recErr != nil {
				m.editor.message, m.editor.isError = recErr.Error(), true
			}
			m.screen = screenEditor
			return m, nil
		}
		m.view = NewSimModel(m.env, m.sim, m.config)
		if recErr != nil {
			m.view.message, m.view.isError = recErr.Error(), true
		}
		m.screen = screenSim
		return m, nil
	}

	return m, cmd
}

// updateSim handles updates when the lattice is shown.
func (m AppModel) updateSim(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)

	switch {
	case m.view.IsQuitting():
		return m.quit()

	case m.view.BackToMenu():
		m.view.clearFlags()
		m.sim.driver.Pause()
		m.menu = NewMenuModel(m.env, m.config)
		m.screen = screenMenu
		return m, nil

	case m.view.WantsEditor():
		m.view.clearFlags()
		m.editor = NewEditorModel(m.env, m.sim, m.config)
		m.screen = screenEditor
		return m, nil
	}

	return m, cmd
}

// updateEditor handles updates when the rule editor is shown.
func (m AppModel) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	switch {
	case m.editor.IsQuitting():
		return m.quit()

	case m.editor.Done():
		m.view.clearFlags()
		m.screen = screenSim
		return m, nil
	}

	return m, cmd
}

// updateHistory handles updates when the run history is shown.
func (m AppModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)

	switch {
	case m.history.IsQuitting():
		return m.quit()

	case m.history.IsGoingBack():
		m.menu = NewMenuModel(m.env, m.config)
		m.screen = screenMenu
		return m, nil
	}

	return m, cmd
}

// quit records the current run and stops the driver.
func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.sim.driver.Pause()
	//nolint:errcheck // Best-effort save, the program exits regardless
	m.sim.record(m.env)
	m.cancel()
	m.quitting = true
	return m, tea.Quit
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenSim:
		return m.view.View()
	case screenEditor:
		return m.editor.View()
	case screenHistory:
		return m.history.View()
	default:
		return m.menu.View()
	}
}

// Session returns the simulation session, for inspection after the program exits.
func (m AppModel) Session() *turmite.Session {
	return m.sim.session
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(ctx context.Context, env *Env, cfg core.RuntimeConfig, start Start) error {
	model, err := NewAppModel(ctx, env, cfg, start)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	_, err = p.Run()
	model.cancel()
	return err
}
