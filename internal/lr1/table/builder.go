package table

import (
	"github.com/dekarrin/lr1/internal/lr1/automaton"
	"github.com/dekarrin/lr1/internal/lr1/grammar"
	"github.com/dekarrin/lr1/internal/lr1/lr1errors"
)

// Table is the populated ACTION/GOTO table for a canonical LR(1) automaton,
// plus the collection it was built from (kept around so String() and the
// recognizer can both refer back to the originating states and grammar).
// Grounded on tunaq's parse.canonicalLR1Table, minus the DFA/NFA generic
// machinery that type carried for its other algorithms.
type Table struct {
	Collection automaton.Collection
	Actions    map[int]map[string]Action
	Gotos      map[int]map[string]int
}

// Action returns the ACTION table entry for (state, terminal). A missing
// entry is reported as an Error action, matching the table's error-entry
// convention.
func (t *Table) Action(state int, terminal string) Action {
	row, ok := t.Actions[state]
	if !ok {
		return Action{Type: Error}
	}
	act, ok := row[terminal]
	if !ok {
		return Action{Type: Error}
	}
	return act
}

// Goto returns the GOTO table entry for (state, nonTerminal), and whether it
// is defined.
func (t *Table) Goto(state int, nonTerminal string) (int, bool) {
	row, ok := t.Gotos[state]
	if !ok {
		return 0, false
	}
	to, ok := row[nonTerminal]
	return to, ok
}

// Build constructs the canonical-LR(1) ACTION/GOTO table from the canonical
// collection col, per Algorithm 4.56 of the purple dragon book (the same
// algorithm tunaq's constructCanonicalLR1ParseTable/Action implements):
//
//  1. If [A -> alpha . a beta, b] is in state i and GOTO(i, a) = j, a a
//     terminal, set ACTION[i, a] = shift j.
//  2. If [A -> alpha ., a] is in state i and A is not the augmented start
//     symbol, set ACTION[i, a] = reduce A -> alpha.
//  3. If [S' -> S ., $] is in state i, set ACTION[i, $] = accept.
//  4. GOTO[i, A] = j whenever GOTO(i, A) = j for a non-terminal A.
//
// Any state/symbol pair that would receive two different actions means the
// grammar is not LR(1); Build returns a *lr1errors.ConstructionError in that
// case instead of silently picking one.
func Build(col automaton.Collection) (*Table, error) {
	g := col.Grammar
	startSym := g.StartSymbol() // the augmented start symbol, S'

	t := &Table{
		Collection: col,
		Actions:    map[int]map[string]Action{},
		Gotos:      map[int]map[string]int{},
	}

	allTerms := append(append([]string{}, g.Terminals()...), grammar.EndOfInput)

	for i, state := range col.States {
		for _, a := range allTerms {
			var found bool
			var act Action

			for _, item := range state.Items {
				A := item.NonTerminal
				alpha := item.Left
				beta := item.Right
				b := item.Lookahead

				// Rule 1: shift.
				if len(beta) > 0 && beta[0] == a && g.IsTerminal(a) {
					if j, ok := col.Goto(i, a); ok {
						candidate := Action{Type: Shift, State: j}
						if err := merge(&found, &act, candidate, i, a); err != nil {
							return nil, err
						}
					}
				}

				// Rule 2: reduce.
				if len(beta) == 0 && A != startSym && a == b {
					candidate := Action{Type: Reduce, NonTerminal: A, Production: grammar.Production(alpha)}
					if err := merge(&found, &act, candidate, i, a); err != nil {
						return nil, err
					}
				}

				// Rule 3: accept.
				if a == grammar.EndOfInput && b == grammar.EndOfInput && A == startSym && len(beta) == 0 {
					candidate := Action{Type: Accept}
					if err := merge(&found, &act, candidate, i, a); err != nil {
						return nil, err
					}
				}
			}

			if found {
				if t.Actions[i] == nil {
					t.Actions[i] = map[string]Action{}
				}
				t.Actions[i][a] = act
			}
		}

		for _, A := range g.NonTerminals() {
			if j, ok := col.Goto(i, A); ok {
				if t.Gotos[i] == nil {
					t.Gotos[i] = map[string]int{}
				}
				t.Gotos[i][A] = j
			}
		}
	}

	return t, nil
}

func merge(found *bool, act *Action, candidate Action, state int, symbol string) error {
	if *found && !act.Equal(candidate) {
		return lr1errors.NewConstruction(state, symbol, act.String(), candidate.String())
	}
	*act = candidate
	*found = true
	return nil
}
