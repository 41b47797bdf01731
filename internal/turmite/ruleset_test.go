package turmite

import (
	"errors"
	"math/rand"
	"testing"
)

func r(cs, cc int, turn Turn, nc, ns int) Rule {
	return Rule{CurrState: cs, CurrColor: cc, Turn: turn, NewColor: nc, NewState: ns}
}

func raw(cs, cc int, turn rune, nc, ns int) RawRule {
	return RawRule{CurrState: cs, CurrColor: cc, Turn: turn, NewColor: nc, NewState: ns}
}

func langtonRows() []RawRule {
	return []RawRule{
		raw(0, 0, 'R', 1, 0),
		raw(0, 1, 'L', 0, 0),
	}
}

// checkDense verifies the table is a dense canonical cover of its reachable range.
func checkDense(t *testing.T, rs *Ruleset) {
	t.Helper()

	hs, hc := 0, 0
	for _, rule := range rs.Rows() {
		hs = max(hs, rule.NewState)
		hc = max(hc, rule.NewColor)
	}
	if hs != rs.HighestState() || hc != rs.HighestColor() {
		t.Fatalf("highest = (%d, %d), expected (%d, %d)", rs.HighestState(), rs.HighestColor(), hs, hc)
	}

	rows := rs.Rows()
	if len(rows) != (hs+1)*(hc+1) {
		t.Fatalf("len(Rows()) = %d, expected %d", len(rows), (hs+1)*(hc+1))
	}

	i := 0
	for s := 0; s <= hs; s++ {
		for c := 0; c <= hc; c++ {
			if rows[i].CurrState != s || rows[i].CurrColor != c {
				t.Fatalf("row %d keyed (%d, %d), expected (%d, %d)", i, rows[i].CurrState, rows[i].CurrColor, s, c)
			}
			i++
		}
	}
}

func expectRows(t *testing.T, rs *Ruleset, expected []Rule) {
	t.Helper()

	got := rs.Rows()
	if len(got) != len(expected) {
		t.Fatalf("Rows() has %d rules, expected %d:\n%s", len(got), len(expected), rs)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("row %d = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestNewRulesetDefault(t *testing.T) {
	rs := NewRuleset(DefaultLimits())

	expectRows(t, rs, []Rule{
		r(0, 0, TurnLeft, 1, 1),
		r(0, 1, TurnLeft, 0, 0),
		r(1, 0, TurnLeft, 0, 0),
		r(1, 1, TurnLeft, 0, 0),
	})
	checkDense(t, rs)

	if rs.Needed() != 4 {
		t.Errorf("Needed() = %d, expected 4", rs.Needed())
	}
}

func TestValidateCandidate(t *testing.T) {
	rs := NewRuleset(DefaultLimits())

	tests := []struct {
		name  string
		raw   RawRule
		field Field
		code  string
	}{
		{"curr state negative", raw(-1, 0, 'L', 0, 0), FieldCurrState, CodeStateRange},
		{"curr state too high", raw(3, 0, 'L', 0, 0), FieldCurrState, CodeStateRange},
		{"new state too high", raw(0, 0, 'L', 0, 3), FieldNewState, CodeStateRange},
		{"new color too high", raw(0, 0, 'L', 3, 0), FieldNewColor, CodeColorRange},
		{"curr color negative", raw(0, -1, 'L', 0, 0), FieldCurrColor, CodeColorRange},
		{"bad turn", raw(0, 0, 'X', 0, 0), FieldTurn, CodeTurnCode},
		{"state checked before color", raw(5, 5, 'X', 5, 5), FieldCurrState, CodeStateRange},
		{"color checked before turn", raw(0, 9, 'X', 0, 0), FieldCurrColor, CodeColorRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := rs.ValidateCandidate(tc.raw)
			if err == nil {
				t.Fatal("ValidateCandidate() should fail")
			}
			if !errors.Is(err, ErrInvalidRule) {
				t.Errorf("error %v should match ErrInvalidRule", err)
			}

			var re *RuleError
			if !errors.As(err, &re) {
				t.Fatalf("error %T should be *RuleError", err)
			}
			if re.Field != tc.field {
				t.Errorf("Field = %v, expected %v", re.Field, tc.field)
			}
			if re.Code != tc.code {
				t.Errorf("Code = %s, expected %s", re.Code, tc.code)
			}
		})
	}

	rule, err := rs.ValidateCandidate(raw(2, 1, 'U', 2, 1))
	if err != nil {
		t.Fatalf("ValidateCandidate() failed: %v", err)
	}
	if rule != r(2, 1, UTurn, 2, 1) {
		t.Errorf("ValidateCandidate() = %v", rule)
	}
}

func TestValidateCandidateBadTurnMatchesDirectionError(t *testing.T) {
	rs := NewRuleset(DefaultLimits())
	_, err := rs.ValidateCandidate(raw(0, 0, 'Q', 0, 0))
	if !errors.Is(err, ErrInvalidDirectionCode) {
		t.Errorf("error %v should match ErrInvalidDirectionCode", err)
	}
}

func TestLoadValid(t *testing.T) {
	rs := NewRuleset(DefaultLimits())

	if err := rs.Load(langtonRows()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	expectRows(t, rs, []Rule{
		r(0, 0, TurnRight, 1, 0),
		r(0, 1, TurnLeft, 0, 0),
	})
	checkDense(t, rs)
}

func TestLoadFullTable(t *testing.T) {
	rs := NewRuleset(DefaultLimits())

	var rows []RawRule
	for s := 0; s < 3; s++ {
		for c := 0; c < 3; c++ {
			rows = append(rows, raw(s, c, 'N', (c+1)%3, (s+1)%3))
		}
	}
	if err := rs.Load(rows); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if rs.Len() != 9 {
		t.Errorf("Len() = %d, expected 9", rs.Len())
	}
	checkDense(t, rs)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name     string
		rows     []RawRule
		expected error
	}{
		{
			name:     "duplicate key",
			rows:     []RawRule{raw(0, 0, 'R', 1, 0), raw(0, 0, 'L', 0, 0)},
			expected: ErrIncompleteRuleset,
		},
		{
			name:     "state out of range",
			rows:     []RawRule{raw(3, 0, 'R', 1, 0), raw(0, 1, 'L', 0, 0)},
			expected: ErrInvalidRule,
		},
		{
			name:     "missing row",
			rows:     []RawRule{raw(0, 0, 'R', 1, 1), raw(0, 1, 'L', 0, 0), raw(1, 0, 'L', 0, 0)},
			expected: ErrIncompleteRuleset,
		},
		{
			name:     "extra row",
			rows:     []RawRule{raw(0, 0, 'R', 1, 0), raw(0, 1, 'L', 0, 0), raw(1, 0, 'L', 0, 0)},
			expected: ErrIncompleteRuleset,
		},
		{
			name:     "wrong order",
			rows:     []RawRule{raw(0, 1, 'L', 0, 0), raw(0, 0, 'R', 1, 0)},
			expected: ErrIncompleteRuleset,
		},
		{
			name:     "empty",
			rows:     nil,
			expected: ErrIncompleteRuleset,
		},
		{
			name:     "bad turn code",
			rows:     []RawRule{raw(0, 0, 'R', 1, 0), raw(0, 1, 'x', 0, 0)},
			expected: ErrInvalidRule,
		},
		{
			name: "more rows than the limits allow",
			rows: func() []RawRule {
				var rows []RawRule
				for i := 0; i < 10; i++ {
					rows = append(rows, raw(0, 0, 'L', 2, 2))
				}
				return rows
			}(),
			expected: ErrIncompleteRuleset,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rs := NewRuleset(DefaultLimits())
			if err := rs.Load(langtonRows()); err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			before := rs.Clone()

			err := rs.Load(tc.rows)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !errors.Is(err, tc.expected) {
				t.Errorf("Load() error = %v, expected %v", err, tc.expected)
			}
			if !rs.Equal(before) {
				t.Errorf("table changed after failed load:\n%s", rs)
			}
			if rs.HighestState() != before.HighestState() || rs.HighestColor() != before.HighestColor() {
				t.Error("highest state/color changed after failed load")
			}
		})
	}
}

func TestLoadReportsRow(t *testing.T) {
	rs := NewRuleset(DefaultLimits())
	err := rs.Load([]RawRule{raw(0, 0, 'R', 1, 0), raw(0, 1, 'L', 7, 0)})

	var re *RuleError
	if !errors.As(err, &re) {
		t.Fatalf("Load() error = %v, expected *RuleError", err)
	}
	if re.Row != 1 {
		t.Errorf("Row = %d, expected 1", re.Row)
	}
	if re.Value != "7" {
		t.Errorf("Value = %q, expected \"7\"", re.Value)
	}
}

func TestEditCellGrowsTable(t *testing.T) {
	rs := NewRuleset(DefaultLimits())

	if err := rs.EditCell(1, EditNewState(2)); err != nil {
		t.Fatalf("EditCell() failed: %v", err)
	}

	expectRows(t, rs, []Rule{
		r(0, 0, TurnLeft, 1, 1),
		r(0, 1, TurnLeft, 0, 2),
		r(1, 0, TurnLeft, 0, 0),
		r(1, 1, TurnLeft, 0, 0),
		r(2, 0, TurnLeft, 0, 0),
		r(2, 1, TurnLeft, 0, 0),
	})
	checkDense(t, rs)
}

func TestEditCellShrinksTable(t *testing.T) {
	rs := NewRuleset(DefaultLimits())

	if err := rs.EditCell(0, EditNewColor(0)); err != nil {
		t.Fatalf("EditCell() failed: %v", err)
	}

	// Color 1 is no longer reachable; the tail row is dropped and the
	// surviving second row is rekeyed to (1, 0).
	expectRows(t, rs, []Rule{
		r(0, 0, TurnLeft, 0, 1),
		r(1, 0, TurnLeft, 0, 0),
	})
	checkDense(t, rs)
}

func TestEditCellShrinksUntilStable(t *testing.T) {
	rs := NewRuleset(DefaultLimits())
	err := rs.Load([]RawRule{
		raw(0, 0, 'L', 1, 0),
		raw(0, 1, 'L', 0, 0),
		raw(1, 0, 'L', 0, 0),
		raw(1, 1, 'L', 0, 1),
	})
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Dropping color 1 truncates the only row that reaches state 1.
	if err := rs.EditCell(0, EditNewColor(0)); err != nil {
		t.Fatalf("EditCell() failed: %v", err)
	}

	expectRows(t, rs, []Rule{r(0, 0, TurnLeft, 0, 0)})
	checkDense(t, rs)
}

func TestEditCellTurn(t *testing.T) {
	rs := NewRuleset(DefaultLimits())

	if err := rs.EditCell(2, EditTurn('U')); err != nil {
		t.Fatalf("EditCell() failed: %v", err)
	}
	rule, _ := rs.Rule(2)
	if rule.Turn != UTurn {
		t.Errorf("row 2 turn = %v, expected UTurn", rule.Turn)
	}
	if rs.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", rs.Len())
	}
}

func TestEditCellKeyDriftIsRepaired(t *testing.T) {
	rs := NewRuleset(DefaultLimits())
	before := rs.Clone()

	if err := rs.EditCell(0, EditCurrState(1)); err != nil {
		t.Fatalf("EditCell() failed: %v", err)
	}

	if !rs.Equal(before) {
		t.Errorf("key edit should be rewritten to the canonical pair:\n%s", rs)
	}
}

func TestEditCellRejects(t *testing.T) {
	tests := []struct {
		name string
		row  int
		edit FieldEdit
	}{
		{"state too high", 0, EditNewState(3)},
		{"color negative", 1, EditNewColor(-1)},
		{"curr state out of range", 0, EditCurrState(5)},
		{"curr color out of range", 0, EditCurrColor(3)},
		{"bad turn", 3, EditTurn('?')},
		{"lowercase turn", 0, EditTurn('l')},
		{"nil edit", 0, nil},
		{"row out of range", 4, EditNewState(0)},
		{"negative row", -1, EditNewState(0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rs := NewRuleset(DefaultLimits())
			before := rs.Clone()

			err := rs.EditCell(tc.row, tc.edit)
			if !errors.Is(err, ErrInvalidRule) {
				t.Errorf("EditCell() error = %v, expected ErrInvalidRule", err)
			}
			if !rs.Equal(before) {
				t.Errorf("table changed after rejected edit:\n%s", rs)
			}
		})
	}
}

func TestEditCellNilEdit(t *testing.T) {
	rs := NewRuleset(DefaultLimits())

	err := rs.EditCell(1, nil)
	var re *RuleError
	if !errors.As(err, &re) {
		t.Fatalf("EditCell(1, nil) error = %v, expected *RuleError", err)
	}
	if re.Code != CodeNoEdit || re.Row != 1 {
		t.Errorf("RuleError = %s at row %d, expected %s at row 1", re.Code, re.Row, CodeNoEdit)
	}
}

func TestParsedLowercaseTurnIsRejected(t *testing.T) {
	rs := NewRuleset(DefaultLimits())

	edit, err := ParseFieldEdit(FieldTurn, "r")
	if err != nil {
		t.Fatalf("ParseFieldEdit() failed: %v", err)
	}
	if err := rs.EditCell(0, edit); !errors.Is(err, ErrInvalidDirectionCode) {
		t.Errorf("EditCell() error = %v, expected ErrInvalidDirectionCode", err)
	}
}

func TestEditCellRandomEditsKeepInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	rs := NewRuleset(DefaultLimits())

	for i := 0; i < 2000; i++ {
		row := rng.Intn(rs.Len())
		var edit FieldEdit
		switch rng.Intn(5) {
		case 0:
			edit = EditCurrState(rng.Intn(4))
		case 1:
			edit = EditCurrColor(rng.Intn(4))
		case 2:
			edit = EditTurn([]rune{'L', 'R', 'N', 'U', 'Z'}[rng.Intn(5)])
		case 3:
			edit = EditNewColor(rng.Intn(4))
		default:
			edit = EditNewState(rng.Intn(4))
		}

		// Out-of-range edits are rejected and leave the table as it was.
		_ = rs.EditCell(row, edit)
		checkDense(t, rs)
	}
}

func TestRepairIsIdentityOnCanonicalTables(t *testing.T) {
	rs := NewRuleset(DefaultLimits())
	if err := rs.EditCell(3, EditNewColor(2)); err != nil {
		t.Fatalf("EditCell() failed: %v", err)
	}

	// A table produced by repair must be loadable as-is.
	var rows []RawRule
	for _, rule := range rs.Rows() {
		rows = append(rows, rule.Raw())
	}
	other := NewRuleset(DefaultLimits())
	if err := other.Load(rows); err != nil {
		t.Fatalf("Load() of a repaired table failed: %v", err)
	}
	if !other.Equal(rs) {
		t.Error("loaded table differs from the repaired source")
	}
}

func TestLookup(t *testing.T) {
	rs := NewRuleset(DefaultLimits())
	if err := rs.Load(langtonRows()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	rule, ok := rs.Lookup(0, 1)
	if !ok {
		t.Fatal("Lookup(0, 1) should match")
	}
	if rule.Turn != TurnLeft {
		t.Errorf("Lookup(0, 1).Turn = %v, expected Left", rule.Turn)
	}

	if _, ok := rs.Lookup(0, 2); ok {
		t.Error("Lookup(0, 2) should not match an unreachable color")
	}
	if _, ok := rs.Lookup(1, 0); ok {
		t.Error("Lookup(1, 0) should not match an unreachable state")
	}
}

func TestCustomLimits(t *testing.T) {
	rs := NewRuleset(Limits{MaxStates: 4, MaxColors: 2})

	if err := rs.EditCell(0, EditNewState(3)); err != nil {
		t.Fatalf("EditCell() failed: %v", err)
	}
	if rs.Len() != 8 {
		t.Errorf("Len() = %d, expected 8", rs.Len())
	}
	if err := rs.EditCell(0, EditNewColor(2)); !errors.Is(err, ErrInvalidRule) {
		t.Errorf("EditCell() error = %v, expected ErrInvalidRule", err)
	}
	checkDense(t, rs)
}

func TestParseFieldEdit(t *testing.T) {
	tests := []struct {
		field    Field
		text     string
		expected FieldEdit
		wantErr  bool
	}{
		{FieldCurrState, "1", EditCurrState(1), false},
		{FieldCurrColor, " 2 ", EditCurrColor(2), false},
		{FieldTurn, "R", EditTurn('R'), false},
		{FieldTurn, "l", EditTurn('l'), false},
		{FieldTurn, "LR", nil, true},
		{FieldTurn, "", nil, true},
		{FieldNewColor, "x", nil, true},
		{FieldNewState, "0", EditNewState(0), false},
	}

	for _, tc := range tests {
		got, err := ParseFieldEdit(tc.field, tc.text)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseFieldEdit(%v, %q) should fail", tc.field, tc.text)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFieldEdit(%v, %q) failed: %v", tc.field, tc.text, err)
			continue
		}
		if got != tc.expected {
			t.Errorf("ParseFieldEdit(%v, %q) = %v, expected %v", tc.field, tc.text, got, tc.expected)
		}
	}
}

func TestParseRawRule(t *testing.T) {
	got, err := ParseRawRule("1-2-U-0-2")
	if err != nil {
		t.Fatalf("ParseRawRule() failed: %v", err)
	}
	if expected := raw(1, 2, 'U', 0, 2); got != expected {
		t.Errorf("ParseRawRule() = %+v, expected %+v", got, expected)
	}

	rule := r(0, 1, TurnRight, 1, 0)
	back, err := ParseRawRule(rule.String())
	if err != nil || back != rule.Raw() {
		t.Errorf("ParseRawRule(%q) = %+v, %v", rule.String(), back, err)
	}

	for _, bad := range []string{"", "0-0-L-1", "a-0-L-1-1", "0-0-LR-1-1", "0-0--1-1"} {
		if _, err := ParseRawRule(bad); err == nil {
			t.Errorf("ParseRawRule(%q) should fail", bad)
		}
	}
}

func TestRulesetCompact(t *testing.T) {
	rs := NewRuleset(DefaultLimits())
	if err := rs.Load(langtonRows()); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	expected := "0-0-R-1-0 0-1-L-0-0"
	if got := rs.Compact(); got != expected {
		t.Errorf("Compact() = %q, expected %q", got, expected)
	}
}
