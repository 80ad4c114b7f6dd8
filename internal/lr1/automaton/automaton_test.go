package automaton_test

import (
	"testing"

	"github.com/dekarrin/lr1/internal/lr1/automaton"
	"github.com/dekarrin/lr1/internal/lr1/grammar"
	"github.com/stretchr/testify/assert"
)

// prefixGrammar is the spec's "S -> a B, B -> b | b c" scenario.
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

func TestBuild_StartStateContainsAugmentedInitialItem(t *testing.T) {
	col := automaton.Build(prefixGrammar())

	start := col.States[col.Start]
	found := false
	for _, it := range start.Items {
		if it.NonTerminal == "S'" && it.Lookahead == "$" {
			found = true
		}
	}
	assert.True(t, found, "start state should contain the augmented start item")
}

func TestBuild_DiscoversReachableStates(t *testing.T) {
	col := automaton.Build(prefixGrammar())
	// S' -> .S,$ / S -> .aB,$ is state 0; shifting 'a' reaches a distinct
	// state; from there 'B' and 'b' each reach further distinct states.
	assert.GreaterOrEqual(t, len(col.States), 4)
}

func TestBuild_GotoIsDeterministic(t *testing.T) {
	col := automaton.Build(prefixGrammar())

	toA, ok := col.Goto(col.Start, "a")
	assert.True(t, ok)
	assert.NotEqual(t, col.Start, toA)

	toB, ok := col.Goto(toA, "b")
	assert.True(t, ok)
	assert.NotEqual(t, toA, toB)
}

func TestBuild_UnknownTransitionNotFound(t *testing.T) {
	col := automaton.Build(prefixGrammar())
	_, ok := col.Goto(col.Start, "c")
	assert.False(t, ok)
}

func TestClosure_AddsProductionsOfNextNonTerminal(t *testing.T) {
	g := prefixGrammar().Augmented()
	null := grammar.Nullable(g)
	first := grammar.FirstSets(g, null)

	initial := grammar.NewItem(g.StartSymbol(), grammar.Production{"S"}, grammar.EndOfInput)
	closed := automaton.Closure(g, null, first, []grammar.Item{initial})

	var sawSItem bool
	for _, it := range closed {
		if it.NonTerminal == "S" && len(it.Left) == 0 {
			sawSItem = true
		}
	}
	assert.True(t, sawSItem)
}

// cGrammar mirrors the grammar package's helper for the "S -> C C" scenario.
func cGrammar() grammar.Grammar {
	g := grammar.New("S")
	g.AddTerm("c")
	g.AddTerm("d")
	g.AddNonTerm("C")
	g.AddRule("S", []string{"C", "C"})
	g.AddRule("C", []string{"c", "C"})
	g.AddRule("C", []string{"d"})
	return g
}

func TestBuild_NoDuplicateStatesForEquivalentClosures(t *testing.T) {
	col := automaton.Build(cGrammar())

	seen := map[string]bool{}
	for _, st := range col.States {
		key := ""
		for _, it := range st.Items {
			key += it.String() + "|"
		}
		assert.False(t, seen[key], "duplicate state discovered: %s", key)
		seen[key] = true
	}
}
