package turmite

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRule is returned when a rule field is out of bounds or its turn code is unknown.
	ErrInvalidRule = errors.New("invalid rule")

	// ErrIncompleteRuleset is returned when loaded rows do not densely cover the reachable states and colors.
	ErrIncompleteRuleset = errors.New("incomplete ruleset")

	// ErrInvalidDirectionCode is returned by ParseTurn for characters outside L, R, N and U.
	ErrInvalidDirectionCode = errors.New("invalid direction code")
)

// Error codes carried by RuleError.
const (
	CodeStateRange = "STATE_RANGE"
	CodeColorRange = "COLOR_RANGE"
	CodeTurnCode   = "TURN_CODE"
	CodeRowRange   = "ROW_RANGE"
	CodeNoEdit     = "NO_EDIT"
)

// RuleError describes the first violated bound of a rule candidate.
type RuleError struct {
	Code  string
	Row   int // -1 when the candidate is not tied to a table row
	Field Field
	Value string
	Max   int // inclusive upper bound; 0 for turn codes
	err   error
}

func (e *RuleError) Error() string {
	var where string
	if e.Row >= 0 {
		where = fmt.Sprintf("row %d: ", e.Row)
	}
	switch e.Code {
	case CodeStateRange:
		return fmt.Sprintf("[%s] %s%s cannot be negative or higher than %d (got %s)", e.Code, where, e.Field, e.Max, e.Value)
	case CodeColorRange:
		return fmt.Sprintf("[%s] %s%s cannot be negative or higher than %d (got %s)", e.Code, where, e.Field, e.Max, e.Value)
	case CodeRowRange:
		return fmt.Sprintf("[%s] row %s does not exist (table has %d rows)", e.Code, e.Value, e.Max+1)
	case CodeNoEdit:
		return fmt.Sprintf("[%s] %sno field edit given", e.Code, where)
	default:
		return fmt.Sprintf("[%s] %s%s is not a valid direction: %s", e.Code, where, e.Field, e.Value)
	}
}

// Unwrap lets errors.Is match both ErrInvalidRule and any underlying cause.
func (e *RuleError) Unwrap() []error {
	if e.err != nil {
		return []error{ErrInvalidRule, e.err}
	}
	return []error{ErrInvalidRule}
}

// IncompleteError reports a table that is not a dense, canonical cover.
type IncompleteError struct {
	Have int
	Need int
	Row  int // first row that differs from the canonical table, -1 if only the count differs
}

func (e *IncompleteError) Error() string {
	if e.Have > e.Need {
		return fmt.Sprintf("%s: %d rules given, the reachable states and colors need %d", ErrIncompleteRuleset, e.Have, e.Need)
	}
	if e.Row >= 0 {
		return fmt.Sprintf("%s: row %d is out of canonical state/color order or duplicates another rule", ErrIncompleteRuleset, e.Row)
	}
	return fmt.Sprintf("%s: %d rules given, every state/color combination needs one (%d)", ErrIncompleteRuleset, e.Have, e.Need)
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncompleteRuleset
}
