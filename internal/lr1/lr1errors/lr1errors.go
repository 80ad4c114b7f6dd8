// Package lr1errors holds the two first-class error conditions the core can
// raise: a grammar that is not LR(1), and an input word containing a symbol
// the grammar doesn't know about. Modeled on tunaq's internal/tqerrors,
// which pairs a technical Error() string with a human-readable diagnostic.
package lr1errors

import "fmt"

// ConstructionError is raised when populating the ACTION/GOTO table would
// require overwriting a cell with a conflicting value. It is not recoverable;
// the grammar is simply not LR(1).
type ConstructionError struct {
	// State is the index of the state in which the conflict was found.
	State int

	// Symbol is the terminal column the conflict occurred on.
	Symbol string

	// Existing and Incoming are the two conflicting action descriptions, in
	// the order they were discovered.
	Existing string
	Incoming string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("not an LR(1) grammar: state %d, symbol %q: %s conflicts with %s", e.State, e.Symbol, e.Existing, e.Incoming)
}

// Diagnostic returns a human-oriented description suitable for printing to an
// operator, as opposed to Error()'s terse, log-friendly form.
func (e *ConstructionError) Diagnostic() string {
	return fmt.Sprintf("grammar is not LR(1): in state %d, on input %q, both %s and %s would apply", e.State, e.Symbol, e.Existing, e.Incoming)
}

// NewConstruction builds a ConstructionError.
func NewConstruction(state int, symbol, existing, incoming string) *ConstructionError {
	return &ConstructionError{State: state, Symbol: symbol, Existing: existing, Incoming: incoming}
}

// SymbolError is raised when a word passed to the recognizer contains a
// symbol that is not a terminal of the grammar.
type SymbolError struct {
	// Symbol is the offending symbol.
	Symbol string

	// Position is the 0-indexed offset of Symbol within the input word.
	Position int
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("symbol not in grammar: %q at position %d", e.Symbol, e.Position)
}

// Diagnostic returns a human-oriented description of the error.
func (e *SymbolError) Diagnostic() string {
	return fmt.Sprintf("the input contains %q at position %d, which is not a terminal of this grammar", e.Symbol, e.Position)
}

// NewSymbol builds a SymbolError.
func NewSymbol(symbol string, position int) *SymbolError {
	return &SymbolError{Symbol: symbol, Position: position}
}
