// Package formats provides pluggable ruleset file format parsers.
package formats

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/turmite/internal/turmite"
)

// ErrMalformed is returned for files that do not have the ruleset shape.
var ErrMalformed = errors.New("malformed ruleset file")

// FileRule is one row as stored on disk. Pointers distinguish missing keys from zeros.
type FileRule struct {
	CurrState *int    `json:"currState" yaml:"currState"`
	CurrColor *int    `json:"currColor" yaml:"currColor"`
	TurnDir   *string `json:"turnDir" yaml:"turnDir"`
	NewColor  *int    `json:"newColor" yaml:"newColor"`
	NewState  *int    `json:"newState" yaml:"newState"`
}

// File is the top-level document: {"ruleset": [...]}.
type File struct {
	Ruleset []FileRule `json:"ruleset" yaml:"ruleset"`
}

// FormatExtensions returns supported file extensions, preferred first.
func FormatExtensions() []string {
	return []string{".json", ".yaml", ".yml"}
}

// Rows converts the document into raw rules.
//
// A missing key is a shape error. A turnDir that is not exactly one character
// becomes turmite.InvalidTurnCode, so Ruleset.Load reports it for its row
// in the same pass as the range checks.
func (f File) Rows() ([]turmite.RawRule, error) {
	if f.Ruleset == nil {
		return nil, fmt.Errorf("%w: missing \"ruleset\" array", ErrMalformed)
	}

	rows := make([]turmite.RawRule, 0, len(f.Ruleset))
	for i, fr := range f.Ruleset {
		if fr.CurrState == nil || fr.CurrColor == nil || fr.TurnDir == nil || fr.NewColor == nil || fr.NewState == nil {
			return nil, fmt.Errorf("%w: row %d is missing a field", ErrMalformed, i)
		}

		code := turmite.InvalidTurnCode
		if turn := *fr.TurnDir; utf8.RuneCountInString(turn) == 1 {
			code, _ = utf8.DecodeRuneInString(turn)
		}

		rows = append(rows, turmite.RawRule{
			CurrState: *fr.CurrState,
			CurrColor: *fr.CurrColor,
			Turn:      code,
			NewColor:  *fr.NewColor,
			NewState:  *fr.NewState,
		})
	}
	return rows, nil
}

// FromRules builds a document from a validated table.
func FromRules(rules []turmite.Rule) File {
	f := File{Ruleset: make([]FileRule, len(rules))}
	for i, r := range rules {
		cs, cc, nc, ns := r.CurrState, r.CurrColor, r.NewColor, r.NewState
		turn := string(r.Turn.Code())
		f.Ruleset[i] = FileRule{
			CurrState: &cs,
			CurrColor: &cc,
			TurnDir:   &turn,
			NewColor:  &nc,
			NewState:  &ns,
		}
	}
	return f
}
