package turmite

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule is one row of the transition table:
// (CurrState, CurrColor) -> (Turn, NewColor, NewState).
type Rule struct {
	CurrState int
	CurrColor int
	Turn      Turn
	NewColor  int
	NewState  int
}

// Raw returns the rule as an unvalidated 5-tuple.
func (r Rule) Raw() RawRule {
	return RawRule{
		CurrState: r.CurrState,
		CurrColor: r.CurrColor,
		Turn:      r.Turn.Code(),
		NewColor:  r.NewColor,
		NewState:  r.NewState,
	}
}

// String formats the rule the way the editor shows it, e.g. "0-0-L-1-1".
func (r Rule) String() string {
	return fmt.Sprintf("%d-%d-%c-%d-%d", r.CurrState, r.CurrColor, r.Turn.Code(), r.NewColor, r.NewState)
}

// ParseRawRule parses the "0-0-L-1-1" form produced by Rule.String.
// Values are not range-checked; that needs a Ruleset.
func ParseRawRule(s string) (RawRule, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 5 {
		return RawRule{}, fmt.Errorf("turmite: rule %q: expected 5 dash-separated fields", s)
	}

	var nums [4]int
	for i, idx := range []int{0, 1, 3, 4} {
		n, err := strconv.Atoi(parts[idx])
		if err != nil {
			return RawRule{}, fmt.Errorf("turmite: rule %q: %s: %w", s, Fields[idx], err)
		}
		nums[i] = n
	}

	if utf8.RuneCountInString(parts[2]) != 1 {
		return RawRule{}, fmt.Errorf("turmite: rule %q: %w", s, ErrInvalidDirectionCode)
	}
	turn, _ := utf8.DecodeRuneInString(parts[2])

	return RawRule{
		CurrState: nums[0],
		CurrColor: nums[1],
		Turn:      turn,
		NewColor:  nums[2],
		NewState:  nums[3],
	}, nil
}

// defaultRule is the placeholder appended by repair for a missing (state, color) pair.
func defaultRule(state, color int) Rule {
	return Rule{CurrState: state, CurrColor: color, Turn: TurnLeft}
}

// InvalidTurnCode stands in for turn text that is not exactly one character.
// It never parses, so the row fails validation in its place.
const InvalidTurnCode = utf8.RuneError

// RawRule is a rule as read from a file or typed by a user, before validation.
type RawRule struct {
	CurrState int
	CurrColor int
	Turn      rune
	NewColor  int
	NewState  int
}

// Field identifies one column of a rule.
type Field uint8

const (
	FieldCurrState Field = iota
	FieldCurrColor
	FieldTurn
	FieldNewColor
	FieldNewState
)

// Fields lists the rule columns in table order.
var Fields = []Field{FieldCurrState, FieldCurrColor, FieldTurn, FieldNewColor, FieldNewState}

// String returns the serialized name of the field.
func (f Field) String() string {
	switch f {
	case FieldCurrState:
		return "currState"
	case FieldCurrColor:
		return "currColor"
	case FieldTurn:
		return "turnDir"
	case FieldNewColor:
		return "newColor"
	case FieldNewState:
		return "newState"
	default:
		return "row"
	}
}

// Editable reports whether users may change the field directly.
// The key fields are owned by repair.
func (f Field) Editable() bool {
	return f == FieldTurn || f == FieldNewColor || f == FieldNewState
}

// FieldEdit replaces one field of a rule. It is implemented by
// EditCurrState, EditCurrColor, EditTurn, EditNewColor and EditNewState.
type FieldEdit interface {
	Field() Field
	apply(raw *RawRule)
}

// EditCurrState sets the current state of a rule.
type EditCurrState int

// EditCurrColor sets the current color of a rule.
type EditCurrColor int

// EditTurn sets the turn code of a rule.
type EditTurn rune

// EditNewColor sets the color a rule paints.
type EditNewColor int

// EditNewState sets the state a rule transitions to.
type EditNewState int

func (EditCurrState) Field() Field { return FieldCurrState }
func (EditCurrColor) Field() Field { return FieldCurrColor }
func (EditTurn) Field() Field      { return FieldTurn }
func (EditNewColor) Field() Field  { return FieldNewColor }
func (EditNewState) Field() Field  { return FieldNewState }

func (e EditCurrState) apply(raw *RawRule) { raw.CurrState = int(e) }
func (e EditCurrColor) apply(raw *RawRule) { raw.CurrColor = int(e) }
func (e EditTurn) apply(raw *RawRule)      { raw.Turn = rune(e) }
func (e EditNewColor) apply(raw *RawRule)  { raw.NewColor = int(e) }
func (e EditNewState) apply(raw *RawRule)  { raw.NewState = int(e) }

// ParseFieldEdit builds an edit for field from user text.
// Numbers are not range-checked here; the ruleset does that with table context.
func ParseFieldEdit(field Field, text string) (FieldEdit, error) {
	text = strings.TrimSpace(text)
	if field == FieldTurn {
		if utf8.RuneCountInString(text) != 1 {
			return nil, &RuleError{Code: CodeTurnCode, Row: -1, Field: field, Value: strconv.Quote(text)}
		}
		r, _ := utf8.DecodeRuneInString(text)
		return EditTurn(r), nil
	}

	n, err := strconv.Atoi(text)
	if err != nil {
		code := CodeStateRange
		if field == FieldCurrColor || field == FieldNewColor {
			code = CodeColorRange
		}
		return nil, &RuleError{Code: code, Row: -1, Field: field, Value: strconv.Quote(text), err: err}
	}

	switch field {
	case FieldCurrState:
		return EditCurrState(n), nil
	case FieldCurrColor:
		return EditCurrColor(n), nil
	case FieldNewColor:
		return EditNewColor(n), nil
	case FieldNewState:
		return EditNewState(n), nil
	default:
		return nil, fmt.Errorf("turmite: unknown field %d", field)
	}
}
