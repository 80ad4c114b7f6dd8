package grammar_test

import (
	"testing"

	"github.com/dekarrin/lr1/internal/lr1/grammar"
	"github.com/stretchr/testify/assert"
)

func TestNewItem_DotAtStart(t *testing.T) {
	it := grammar.NewItem("S", grammar.Production{"C", "C"}, "$")
	assert.Empty(t, it.Left)
	assert.Equal(t, []string{"C", "C"}, it.Right)
	assert.False(t, it.AtEnd())

	sym, ok := it.NextSymbol()
	assert.True(t, ok)
	assert.Equal(t, "C", sym)
}

func TestItem_Advance(t *testing.T) {
	it := grammar.NewItem("S", grammar.Production{"C", "C"}, "$")
	it = it.Advance()
	assert.Equal(t, []string{"C"}, it.Left)
	assert.Equal(t, []string{"C"}, it.Right)

	it = it.Advance()
	assert.True(t, it.AtEnd())
	_, ok := it.NextSymbol()
	assert.False(t, ok)
}

func TestItem_AdvancePastEndPanics(t *testing.T) {
	it := grammar.NewItem("S", grammar.Production{}, "$")
	assert.True(t, it.AtEnd())
	assert.Panics(t, func() { it.Advance() })
}

func TestItem_Equal(t *testing.T) {
	a := grammar.NewItem("S", grammar.Production{"C", "C"}, "$")
	b := grammar.NewItem("S", grammar.Production{"C", "C"}, "$")
	c := grammar.NewItem("S", grammar.Production{"C", "C"}, "c")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestItem_Copy_IsIndependent(t *testing.T) {
	a := grammar.NewItem("S", grammar.Production{"C", "C"}, "$").Advance()
	b := a.Copy()
	b.Left[0] = "mutated"
	assert.Equal(t, "C", a.Left[0])
}

func TestItem_Production_ReconstructsFullRHS(t *testing.T) {
	it := grammar.NewItem("S", grammar.Production{"C", "C"}, "$").Advance()
	assert.Equal(t, grammar.Production{"C", "C"}, it.Production())
}

func TestItem_String(t *testing.T) {
	it := grammar.NewItem("S", grammar.Production{"C", "C"}, "$").Advance()
	assert.Equal(t, "S -> C . C, $", it.String())
}

func TestItem_String_DotAtStartAndEnd(t *testing.T) {
	start := grammar.NewItem("S", grammar.Production{"C"}, "$")
	assert.Equal(t, "S -> . C, $", start.String())

	end := start.Advance()
	assert.Equal(t, "S -> C ., $", end.String())
}
