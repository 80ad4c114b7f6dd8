package persist_test

import (
	"testing"

	"github.com/dekarrin/lr1/internal/lr1/automaton"
	"github.com/dekarrin/lr1/internal/lr1/grammar"
	"github.com/dekarrin/lr1/internal/lr1/persist"
	"github.com/dekarrin/lr1/internal/lr1/table"
	"github.com/stretchr/testify/assert"
)

func prefixGrammar() grammar.Grammar {
	g := grammar.New("S")
	g.AddTerm("a")
	g.AddTerm("b")
	g.AddTerm("c")
	g.AddNonTerm("B")
	g.AddRule("S", []string{"a", "B"})
	g.AddRule("B", []string{"b"})
	g.AddRule("B", []string{"b", "c"})
	return g
}

func buildTable(t *testing.T) *table.Table {
	col := automaton.Build(prefixGrammar())
	tbl, err := table.Build(col)
	assert.NoError(t, err)
	return tbl
}

func TestSnapshot_MarshalUnmarshalBinaryRoundTrips(t *testing.T) {
	tbl := buildTable(t)
	snap := persist.FromTable(tbl)

	data, err := snap.MarshalBinary()
	assert.NoError(t, err)

	var got persist.Snapshot
	assert.NoError(t, got.UnmarshalBinary(data))

	assert.Equal(t, snap.StartSymbol, got.StartSymbol)
	assert.Equal(t, snap.Terminals, got.Terminals)
	assert.Equal(t, snap.NonTerminals, got.NonTerminals)
	assert.Equal(t, snap.NumStates, got.NumStates)
	assert.ElementsMatch(t, snap.Actions, got.Actions)
	assert.ElementsMatch(t, snap.Gotos, got.Gotos)
}

func TestEncodeDecode_RoundTrips(t *testing.T) {
	tbl := buildTable(t)

	data := persist.Encode(tbl)
	snap, err := persist.Decode(data)
	assert.NoError(t, err)

	assert.Equal(t, len(tbl.Collection.States), snap.NumStates)
}

func TestGrammarKey_StableAcrossCalls(t *testing.T) {
	g := prefixGrammar()
	assert.Equal(t, persist.GrammarKey(g), persist.GrammarKey(g))
}
