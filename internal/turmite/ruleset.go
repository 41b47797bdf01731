package turmite

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Limits bounds the states and colors a ruleset may use.
type Limits struct {
	MaxStates int
	MaxColors int
}

// DefaultLimits returns the 3 states x 3 colors reference bounds.
func DefaultLimits() Limits {
	return Limits{MaxStates: 3, MaxColors: 3}
}

// MaxRules returns the largest table the limits allow.
func (l Limits) MaxRules() int {
	return l.MaxStates * l.MaxColors
}

// Ruleset is the turmite's transition table.
//
// After every successful mutation the table is a dense, canonical cover of
// [0, HighestState] x [0, HighestColor], ordered state-major then color-minor,
// where the highest values are the maxima of the NewState and NewColor fields.
// A Ruleset is not safe for concurrent use; Session serializes access.
type Ruleset struct {
	limits       Limits
	rules        []Rule
	highestState int
	highestColor int
}

// NewRuleset creates the default table: the rule 0-0-L-1-1 completed by repair.
func NewRuleset(limits Limits) *Ruleset {
	if limits.MaxStates < 1 {
		limits.MaxStates = 1
	}
	if limits.MaxColors < 1 {
		limits.MaxColors = 1
	}

	rs := &Ruleset{
		limits: limits,
		rules:  make([]Rule, 0, limits.MaxRules()),
	}

	seed := Rule{CurrState: 0, CurrColor: 0, Turn: TurnLeft, NewColor: min(1, limits.MaxColors-1), NewState: min(1, limits.MaxStates-1)}
	rs.rules = append(rs.rules, seed)
	rs.repair()
	return rs
}

// Limits returns the bounds the ruleset validates against.
func (rs *Ruleset) Limits() Limits {
	return rs.limits
}

// Rows returns a copy of the rules in table order.
func (rs *Ruleset) Rows() []Rule {
	out := make([]Rule, len(rs.rules))
	copy(out, rs.rules)
	return out
}

// Rule returns the rule at the given row.
func (rs *Ruleset) Rule(row int) (Rule, bool) {
	if row < 0 || row >= len(rs.rules) {
		return Rule{}, false
	}
	return rs.rules[row], true
}

// Len returns the number of rules in the table.
func (rs *Ruleset) Len() int {
	return len(rs.rules)
}

// HighestState returns the highest reachable state.
func (rs *Ruleset) HighestState() int {
	return rs.highestState
}

// HighestColor returns the highest reachable color.
func (rs *Ruleset) HighestColor() int {
	return rs.highestColor
}

// Needed returns the number of rules required to cover every reachable
// state/color combination.
func (rs *Ruleset) Needed() int {
	return (rs.highestState + 1) * (rs.highestColor + 1)
}

// Clone returns an independent copy of the ruleset.
func (rs *Ruleset) Clone() *Ruleset {
	return &Ruleset{
		limits:       rs.limits,
		rules:        rs.Rows(),
		highestState: rs.highestState,
		highestColor: rs.highestColor,
	}
}

// Equal reports whether both tables hold the same rules in the same order.
func (rs *Ruleset) Equal(other *Ruleset) bool {
	return sameRules(rs.rules, other.rules) == -1
}

// Lookup returns the rule matching (state, color).
// The second result is false when no rule matches, which is a normal outcome
// for states or colors outside the reachable range.
func (rs *Ruleset) Lookup(state, color int) (Rule, bool) {
	for _, r := range rs.rules {
		if r.CurrState == state && r.CurrColor == color {
			return r, true
		}
	}
	return Rule{}, false
}

// ValidateCandidate checks a raw 5-tuple against the limits and returns the rule.
// The first violated bound is reported.
func (rs *Ruleset) ValidateCandidate(raw RawRule) (Rule, error) {
	maxState := rs.limits.MaxStates - 1
	maxColor := rs.limits.MaxColors - 1

	checks := []struct {
		field Field
		value int
		max   int
		code  string
	}{
		{FieldCurrState, raw.CurrState, maxState, CodeStateRange},
		{FieldNewState, raw.NewState, maxState, CodeStateRange},
		{FieldNewColor, raw.NewColor, maxColor, CodeColorRange},
		{FieldCurrColor, raw.CurrColor, maxColor, CodeColorRange},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > c.max {
			return Rule{}, &RuleError{
				Code:  c.code,
				Row:   -1,
				Field: c.field,
				Value: strconv.Itoa(c.value),
				Max:   c.max,
			}
		}
	}

	turn, err := ParseTurn(raw.Turn)
	if err != nil {
		return Rule{}, &RuleError{
			Code:  CodeTurnCode,
			Row:   -1,
			Field: FieldTurn,
			Value: turnValue(raw.Turn),
			err:   err,
		}
	}

	return Rule{
		CurrState: raw.CurrState,
		CurrColor: raw.CurrColor,
		Turn:      turn,
		NewColor:  raw.NewColor,
		NewState:  raw.NewState,
	}, nil
}

// Load replaces the table with rows, all or nothing.
//
// Every row is validated into a staging table; the staging table must already
// be the dense canonical cover repair would produce. On any failure the live
// table is left untouched and the error unwraps to ErrInvalidRule or
// ErrIncompleteRuleset.
func (rs *Ruleset) Load(rows []RawRule) error {
	staged := make([]Rule, 0, len(rows))
	for i, raw := range rows {
		rule, err := rs.ValidateCandidate(raw)
		if err != nil {
			var re *RuleError
			if errors.As(err, &re) {
				re.Row = i
			}
			return err
		}
		staged = append(staged, rule)
	}

	if len(staged) > rs.limits.MaxRules() {
		return &IncompleteError{Have: len(staged), Need: rs.limits.MaxRules(), Row: -1}
	}

	candidate := &Ruleset{limits: rs.limits, rules: make([]Rule, len(staged))}
	copy(candidate.rules, staged)
	candidate.repair()

	if len(candidate.rules) != len(staged) {
		return &IncompleteError{Have: len(staged), Need: len(candidate.rules), Row: -1}
	}
	if row := sameRules(staged, candidate.rules); row >= 0 {
		return &IncompleteError{Have: len(staged), Need: len(candidate.rules), Row: row}
	}

	rs.swap(candidate)
	return nil
}

// EditCell replaces one field of the rule at row and repairs the table.
// The edit is applied to a scratch copy which is swapped in only on success.
func (rs *Ruleset) EditCell(row int, edit FieldEdit) error {
	if row < 0 || row >= len(rs.rules) {
		return &RuleError{
			Code:  CodeRowRange,
			Row:   -1,
			Field: Field(255),
			Value: strconv.Itoa(row),
			Max:   len(rs.rules) - 1,
		}
	}

	if edit == nil {
		return &RuleError{Code: CodeNoEdit, Row: row, Field: Field(255)}
	}

	raw := rs.rules[row].Raw()
	edit.apply(&raw)

	rule, err := rs.ValidateCandidate(raw)
	if err != nil {
		var re *RuleError
		if errors.As(err, &re) {
			re.Row = row
		}
		return err
	}

	candidate := rs.Clone()
	candidate.rules[row] = rule
	candidate.repair()

	rs.swap(candidate)
	return nil
}

// swap installs the rules of a fully built candidate table.
func (rs *Ruleset) swap(candidate *Ruleset) {
	rs.rules = candidate.rules
	rs.highestState = candidate.highestState
	rs.highestColor = candidate.highestColor
}

// repair restores the dense-cover invariant: drop surplus rows from the tail,
// rewrite the keys of the remaining rows into canonical order and append
// default rules for missing pairs.
//
// Truncation can drop the row that held the highest NewState or NewColor, so
// passes repeat until the bounds are stable. Bounds only shrink between
// passes, which bounds the loop.
func (rs *Ruleset) repair() {
	rs.recalculateHighest()
	for {
		rs.repairPass()

		hs, hc := rs.highestState, rs.highestColor
		rs.recalculateHighest()
		if hs == rs.highestState && hc == rs.highestColor {
			return
		}
	}
}

// repairPass fits the table to the current highest state and color.
func (rs *Ruleset) repairPass() {
	needed := rs.Needed()
	if len(rs.rules) > needed {
		rs.rules = rs.rules[:needed]
	}

	row := 0
	existing := len(rs.rules)
	for s := 0; s <= rs.highestState; s++ {
		for c := 0; c <= rs.highestColor; c++ {
			if row < existing {
				rs.rules[row].CurrState = s
				rs.rules[row].CurrColor = c
			} else {
				rs.rules = append(rs.rules, defaultRule(s, c))
			}
			row++
		}
	}
}

// recalculateHighest derives the reachable bounds from the NewState and NewColor fields.
func (rs *Ruleset) recalculateHighest() {
	rs.highestState = 0
	rs.highestColor = 0
	for _, r := range rs.rules {
		rs.highestState = max(rs.highestState, r.NewState)
		rs.highestColor = max(rs.highestColor, r.NewColor)
	}
}

// sameRules returns the first row where a and b differ, or -1 if they are identical.
func sameRules(a, b []Rule) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

// String renders the table one rule per line.
func (rs *Ruleset) String() string {
	var sb strings.Builder
	for i, r := range rs.rules {
		if i > 0 {
			sb.WriteRune('\n')
		}
		fmt.Fprintf(&sb, "%d: %s", i, r)
	}
	return sb.String()
}

// Compact renders the table on one line, rules separated by spaces.
func (rs *Ruleset) Compact() string {
	parts := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

func turnValue(code rune) string {
	if code == InvalidTurnCode {
		return "not a single character"
	}
	return strconv.QuoteRune(code)
}
