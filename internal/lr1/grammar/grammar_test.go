package grammar_test

import (
	"testing"

	"github.com/dekarrin/lr1/internal/lr1/grammar"
	"github.com/stretchr/testify/assert"
)

func cGrammar() grammar.Grammar {
	// S -> C C
	// C -> c C | d
	g := grammar.New("S")
	g.AddTerm("c")
	g.AddTerm("d")
	g.AddNonTerm("C")
	g.AddRule("S", []string{"C", "C"})
	g.AddRule("C", []string{"c", "C"})
	g.AddRule("C", []string{"d"})
	return g
}

func TestAddRule_AssignsStableIndices(t *testing.T) {
	g := cGrammar()

	assert.Equal(t, 3, g.NumRules())

	nt, p, ok := g.RuleByIndex(0)
	assert.True(t, ok)
	assert.Equal(t, "S", nt)
	assert.Equal(t, grammar.Production{"C", "C"}, p)

	idx, ok := g.IndexOfRule("C", grammar.Production{"d"})
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestRule_UnknownNonTerminalReturnsEmpty(t *testing.T) {
	g := cGrammar()
	r := g.Rule("Nope")
	assert.Equal(t, "Nope", r.NonTerminal)
	assert.Empty(t, r.Productions)
}

func TestTerminalsAndNonTerminals_DeclarationOrder(t *testing.T) {
	g := cGrammar()
	assert.Equal(t, []string{"c", "d"}, g.Terminals())
	assert.Equal(t, []string{"S", "C"}, g.NonTerminals())
}

func TestIsTerminal(t *testing.T) {
	g := cGrammar()
	assert.True(t, g.IsTerminal("c"))
	assert.False(t, g.IsTerminal("C"))
	assert.False(t, g.IsTerminal("nonexistent"))
}

func TestAugmented_AddsFreshStartRule(t *testing.T) {
	g := cGrammar()
	aug := g.Augmented()

	assert.Equal(t, "S'", aug.StartSymbol())
	assert.Equal(t, 4, aug.NumRules())

	nt, p, ok := aug.RuleByIndex(0)
	assert.True(t, ok)
	assert.Equal(t, "S'", nt)
	assert.Equal(t, grammar.Production{"S"}, p)
}

func TestAugmented_AvoidsNameCollision(t *testing.T) {
	g := grammar.New("S")
	g.AddNonTerm("S'")
	g.AddRule("S", []string{"S'"})
	g.AddRule("S'", []string{})

	aug := g.Augmented()
	assert.Equal(t, "S''", aug.StartSymbol())
}

func TestValidate_RejectsUnknownSymbol(t *testing.T) {
	g := grammar.New("S")
	g.AddRule("S", []string{"nonexistent"})
	err := g.Validate()
	assert.Error(t, err)
}

func TestValidate_RejectsNonNonTerminalStart(t *testing.T) {
	g := grammar.Grammar{}
	err := g.Validate()
	assert.Error(t, err)
}

func TestValidate_RejectsReservedEndOfInput(t *testing.T) {
	g := grammar.New("S")
	g.AddTerm(grammar.EndOfInput)
	g.AddRule("S", []string{grammar.EndOfInput})
	err := g.Validate()
	assert.Error(t, err)
}

func TestValidate_AcceptsWellFormedGrammar(t *testing.T) {
	g := cGrammar()
	assert.NoError(t, g.Validate())
}

func TestProduction_EpsilonStringsAsEpsilonGlyph(t *testing.T) {
	var p grammar.Production
	assert.Equal(t, "ε", p.String())
}
