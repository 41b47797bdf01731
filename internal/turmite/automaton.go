package turmite

// NoPaint is the StepResult.Paint value when no rule matched.
// Callers must not write a cell color in that case.
const NoPaint = -1

// StepResult describes one automaton step.
type StepResult struct {
	From    Cell    // cell the automaton stood on; Paint applies here
	To      Cell    // cell after the move
	Heading Heading // heading after the turn
	State   int     // state after the transition
	Paint   int     // color for From, or NoPaint
	Matched bool    // whether a rule matched (state, color)
}

// Automaton is a single turmite: a position, a heading and an internal state
// driven by a Ruleset.
type Automaton struct {
	rules   *Ruleset
	pos     Cell
	heading Heading
	state   int
}

// NewAutomaton creates an automaton at the origin, heading Up, in state 0.
func NewAutomaton(rules *Ruleset) *Automaton {
	return &Automaton{rules: rules, heading: Up}
}

// Position returns the cell the automaton stands on.
func (a *Automaton) Position() Cell {
	return a.pos
}

// Heading returns the absolute heading.
func (a *Automaton) Heading() Heading {
	return a.heading
}

// State returns the internal state.
func (a *Automaton) State() int {
	return a.state
}

// Step applies the rule for (state, color), then moves one cell.
//
// Without a matching rule the heading and state are kept and Paint is
// NoPaint, but the automaton still moves forward along its heading.
func (a *Automaton) Step(color int) StepResult {
	res := StepResult{
		From:    a.pos,
		Heading: a.heading,
		State:   a.state,
		Paint:   NoPaint,
	}

	if rule, ok := a.rules.Lookup(a.state, color); ok {
		res.Matched = true
		res.Heading = a.heading.Rotate(rule.Turn)
		res.State = rule.NewState
		res.Paint = rule.NewColor
	}

	a.state = res.State
	a.heading = res.Heading
	a.pos.Move(a.heading)
	res.To = a.pos

	return res
}

// Reset returns the automaton to the origin, heading Up, in state 0.
// The ruleset is left untouched.
func (a *Automaton) Reset() {
	a.pos.Reset()
	a.heading = Up
	a.state = 0
}
