// Package parse drives the shift/reduce/accept/error recognizer over an
// already-built ACTION/GOTO table. Adapted from tunaq's
// internal/ictiobus/parse.lrParser.Parse (Algorithm 4.44 of the purple
// dragon book), trimmed of parse-tree construction and the token-stream
// abstraction: this module only ever answers "is this word in the
// language", it does not build a parse tree.
package parse

import (
	"github.com/dekarrin/lr1/internal/lr1/automaton"
	"github.com/dekarrin/lr1/internal/lr1/grammar"
	"github.com/dekarrin/lr1/internal/lr1/lr1errors"
	"github.com/dekarrin/lr1/internal/lr1/table"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Recognizer answers membership queries against the language of a single
// grammar, using its precomputed ACTION/GOTO table.
type Recognizer struct {
	Grammar grammar.Grammar
	Table   *table.Table
}

// New builds a Recognizer for g by constructing its canonical LR(1) table.
// Returns a *lr1errors.ConstructionError if g is not LR(1).
func New(g grammar.Grammar) (*Recognizer, error) {
	col := automaton.Build(g)
	t, err := table.Build(col)
	if err != nil {
		return nil, err
	}
	return &Recognizer{Grammar: g, Table: t}, nil
}

// Accepts runs the shift/reduce/accept/error driver over word, a sequence of
// terminal symbols. It returns true if word is in the language of the
// grammar the Recognizer was built from. A non-nil error means word could
// not even be attempted: it contains a symbol that is not one of the
// grammar's terminals (*lr1errors.SymbolError). An ordinary parse failure
// (unexpected token, no applicable action) is reported as (false, nil), not
// an error: rejection is an expected outcome of recognition, not a fault.
func (r *Recognizer) Accepts(word []string) (bool, error) {
	for pos, sym := range word {
		if !r.Grammar.IsTerminal(sym) {
			return false, lr1errors.NewSymbol(sym, pos)
		}
	}

	states := arraystack.New()
	states.Push(0)

	pos := 0
	next := func() string {
		if pos >= len(word) {
			return grammar.EndOfInput
		}
		sym := word[pos]
		pos++
		return sym
	}

	a := next()

	for {
		sTop, _ := states.Peek()
		s := sTop.(int)

		act := r.Table.Action(s, a)

		switch act.Type {
		case table.Shift:
			states.Push(act.State)
			a = next()

		case table.Reduce:
			for i := 0; i < len(act.Production); i++ {
				states.Pop()
			}
			tTop, _ := states.Peek()
			t := tTop.(int)

			dest, ok := r.Table.Goto(t, act.NonTerminal)
			if !ok {
				return false, nil
			}
			states.Push(dest)

		case table.Accept:
			return true, nil

		default: // table.Error
			return false, nil
		}
	}
}

// AcceptsString is a convenience wrapper over Accepts that treats s as a
// sequence of single-character terminals, the recognizer's typical input
// shape for the toy grammars this package is exercised against (see
// ingest/text.go).
func (r *Recognizer) AcceptsString(s string) (bool, error) {
	word := make([]string, len(s))
	for i, ch := range s {
		word[i] = string(ch)
	}
	return r.Accepts(word)
}
