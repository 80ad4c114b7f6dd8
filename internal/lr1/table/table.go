package table

import (
	"fmt"

	"github.com/dekarrin/lr1/internal/lr1/grammar"
	"github.com/dekarrin/rosed"
)

// String renders the full ACTION/GOTO table as a fixed-width text grid, one
// row per state and one column per terminal (ACTION) and non-terminal
// (GOTO), column-separated by "|". Grounded line-for-line on tunaq's
// canonicalLR1Table.String(), which uses the same rosed.InsertTableOpts
// call to lay the grid out.
func (t *Table) String() string {
	g := t.Collection.Grammar

	allTerms := append(append([]string{}, g.Terminals()...), grammar.EndOfInput)
	nonTerms := g.NonTerminals()

	headers := []string{"S", "|"}
	for _, term := range allTerms {
		headers = append(headers, fmt.Sprintf("A:%s", term))
	}
	headers = append(headers, "|")
	for _, nt := range nonTerms {
		headers = append(headers, fmt.Sprintf("G:%s", nt))
	}

	data := [][]string{headers}

	for i := range t.Collection.States {
		row := []string{fmt.Sprintf("%d", i), "|"}

		for _, term := range allTerms {
			act := t.Action(i, term)
			cell := ""
			switch act.Type {
			case Accept:
				cell = "acc"
			case Reduce:
				cell = fmt.Sprintf("r%s -> %s", act.NonTerminal, act.Production.String())
			case Shift:
				cell = fmt.Sprintf("s%d", act.State)
			case Error:
				// blank
			}
			row = append(row, cell)
		}

		row = append(row, "|")

		for _, nt := range nonTerms {
			cell := ""
			if j, ok := t.Goto(i, nt); ok {
				cell = fmt.Sprintf("%d", j)
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// StatesString renders every state's item set, one state per paragraph, for
// use by the diagnostic printing collaborator (ingest/diagserver both call
// through to this for their "dump automaton" views).
func (t *Table) StatesString() string {
	out := ""
	for i, state := range t.Collection.States {
		out += fmt.Sprintf("state %d:\n", i)
		for _, it := range state.Items {
			out += "  " + it.String() + "\n"
		}
	}
	return out
}
