package turmite

import "sync"

// UnsavedName is the name of a table that was edited since it was last loaded or saved.
const UnsavedName = "NewRuleset"

// Session owns one Ruleset, one Automaton and one World.
//
// Every operation takes the same mutex, so a driver goroutine calling Step and
// an editor calling EditCell or Load never observe a half-repaired table.
type Session struct {
	mu    sync.Mutex
	rules *Ruleset
	ant   *Automaton
	world *World
	steps uint64
	name  string
	dirty bool
}

// Snapshot is a copy of the session state for rendering.
type Snapshot struct {
	Origin  Cell
	Width   int
	Height  int
	Cells   map[Cell]int // painted cells inside the requested region
	Ant     Cell
	Heading Heading
	State   int
	Steps   uint64
	Painted int
	Name    string
	Dirty   bool
}

// NewSession creates a session with the default ruleset.
func NewSession(limits Limits) *Session {
	rules := NewRuleset(limits)
	return &Session{
		rules: rules,
		ant:   NewAutomaton(rules),
		world: NewWorld(),
		name:  UnsavedName,
	}
}

// Step advances the automaton once and paints the cell it left.
func (s *Session) Step() StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step()
}

// StepN advances the automaton n times under a single lock and returns the last result.
func (s *Session) StepN(n int) StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res StepResult
	for range n {
		res = s.step()
	}
	return res
}

func (s *Session) step() StepResult {
	color := s.world.ColorAt(s.ant.Position())
	res := s.ant.Step(color)
	if res.Matched {
		s.world.Paint(res.From, res.Paint)
	}
	s.steps++
	return res
}

// Reset clears the world and returns the automaton to its start pose.
// The ruleset is kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.world.Clear()
	s.ant.Reset()
	s.steps = 0
}

// EditCell changes one field of a rule; see Ruleset.EditCell.
func (s *Session) EditCell(row int, edit FieldEdit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.rules.EditCell(row, edit); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Load replaces the ruleset; see Ruleset.Load. The name is recorded on success.
func (s *Session) Load(name string, rows []RawRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.rules.Load(rows); err != nil {
		return err
	}
	s.name = name
	s.dirty = false
	return nil
}

// MarkSaved records that the current table was saved under name.
func (s *Session) MarkSaved(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.name = name
	s.dirty = false
}

// Rows returns a copy of the current table.
func (s *Session) Rows() []Rule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.Rows()
}

// Ruleset returns a copy of the current ruleset.
func (s *Session) Ruleset() *Ruleset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules.Clone()
}

// Name returns the ruleset name, or UnsavedName after an unsaved edit.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty {
		return UnsavedName
	}
	return s.name
}

// Steps returns the number of steps since the last reset.
func (s *Session) Steps() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

// Painted returns the number of cells that are not Background.
func (s *Session) Painted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Len()
}

// Ant returns the automaton's position, heading and state.
func (s *Session) Ant() (Cell, Heading, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ant.Position(), s.ant.Heading(), s.ant.State()
}

// ColorAt returns the color of a cell.
func (s *Session) ColorAt(c Cell) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.ColorAt(c)
}

// Bounds returns the rectangle of painted cells and the automaton.
func (s *Session) Bounds() (minCell, maxCell Cell) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos := s.ant.Position()
	minCell, maxCell, ok := s.world.Bounds()
	if !ok {
		return pos, pos
	}
	minCell.X, minCell.Y = min(minCell.X, pos.X), min(minCell.Y, pos.Y)
	maxCell.X, maxCell.Y = max(maxCell.X, pos.X), max(maxCell.Y, pos.Y)
	return minCell, maxCell
}

// Snapshot copies the cells of the given region along with the automaton pose.
func (s *Session) Snapshot(origin Cell, width, height int) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.name
	if s.dirty {
		name = UnsavedName
	}

	return Snapshot{
		Origin:  origin,
		Width:   width,
		Height:  height,
		Cells:   s.world.Region(origin, width, height),
		Ant:     s.ant.Position(),
		Heading: s.ant.Heading(),
		State:   s.ant.State(),
		Steps:   s.steps,
		Painted: s.world.Len(),
		Name:    name,
		Dirty:   s.dirty,
	}
}

// ColorAt returns the color of a cell in the snapshot region.
func (s Snapshot) ColorAt(c Cell) int {
	if color, ok := s.Cells[c]; ok {
		return color
	}
	return Background
}
