package table

import (
	"fmt"

	"github.com/dekarrin/lr1/internal/lr1/grammar"
)

// ActionType classifies an ACTION table cell. Grounded on
// tunaq's parse.LRActionType.
type ActionType int

const (
	Error ActionType = iota
	Shift
	Reduce
	Accept
)

// Action is one cell of the ACTION table.
type Action struct {
	Type ActionType

	// State is the destination state; meaningful only when Type is Shift.
	State int

	// NonTerminal and Production identify the production to reduce by;
	// meaningful only when Type is Reduce.
	NonTerminal string
	Production  grammar.Production
}

// String renders the action the way tunaq's LRAction.String does, used both
// for diagnostics and for conflict messages.
func (a Action) String() string {
	switch a.Type {
	case Accept:
		return "ACTION<accept>"
	case Reduce:
		return fmt.Sprintf("ACTION<reduce %s -> %s>", a.NonTerminal, a.Production.String())
	case Shift:
		return fmt.Sprintf("ACTION<shift %d>", a.State)
	default:
		return "ACTION<error>"
	}
}

// Equal reports whether two actions describe the same parser behavior.
func (a Action) Equal(o Action) bool {
	if a.Type != o.Type {
		return false
	}
	switch a.Type {
	case Shift:
		return a.State == o.State
	case Reduce:
		return a.NonTerminal == o.NonTerminal && a.Production.Equal(o.Production)
	default:
		return true
	}
}
