// Package turmite implements the turmite automaton engine: headings and turns,
// the rule table with its repair invariants, the automaton step function and
// the session that serializes access to all of them.
// It has no dependencies on the terminal UI or the file layer.
package turmite

import "fmt"

// Heading is an absolute direction on the grid.
// The iota order is the clockwise cycle Up -> Right -> Down -> Left.
type Heading uint8

const (
	Up Heading = iota
	Right
	Down
	Left
)

// String returns the string representation of a heading.
func (h Heading) String() string {
	switch h {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one cell in this heading.
// Up decreases Y, Down increases Y (screen coordinates).
func (h Heading) Delta() (dx, dy int) {
	switch h {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// Rotate applies a relative turn to the heading.
// TurnRight is clockwise, TurnLeft counter-clockwise.
func (h Heading) Rotate(t Turn) Heading {
	switch t {
	case TurnRight:
		return (h + 1) % 4
	case UTurn:
		return (h + 2) % 4
	case TurnLeft:
		return (h + 3) % 4
	default:
		return h
	}
}

// Turn is a relative direction used inside rules.
type Turn uint8

const (
	NoTurn Turn = iota
	TurnLeft
	TurnRight
	UTurn
)

// Turns lists every relative turn in the order editors present them.
var Turns = []Turn{TurnLeft, TurnRight, NoTurn, UTurn}

// String returns the string representation of a turn.
func (t Turn) String() string {
	switch t {
	case NoTurn:
		return "NoTurn"
	case TurnLeft:
		return "Left"
	case TurnRight:
		return "Right"
	case UTurn:
		return "UTurn"
	default:
		return "Unknown"
	}
}

// Code returns the single-character code of the turn.
// Calling it on a value outside the four declared turns is a programming error.
func (t Turn) Code() rune {
	switch t {
	case NoTurn:
		return 'N'
	case TurnLeft:
		return 'L'
	case TurnRight:
		return 'R'
	case UTurn:
		return 'U'
	default:
		panic(fmt.Sprintf("turmite: turn %d has no code", uint8(t)))
	}
}

// ParseTurn decodes a single-character turn code.
func ParseTurn(code rune) (Turn, error) {
	switch code {
	case 'N':
		return NoTurn, nil
	case 'L':
		return TurnLeft, nil
	case 'R':
		return TurnRight, nil
	case 'U':
		return UTurn, nil
	default:
		return NoTurn, fmt.Errorf("%w: %q", ErrInvalidDirectionCode, code)
	}
}
