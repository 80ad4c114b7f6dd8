package parse_test

import (
	"errors"
	"testing"

	"github.com/dekarrin/lr1/internal/lr1/grammar"
	"github.com/dekarrin/lr1/internal/lr1/lr1errors"
	"github.com/dekarrin/lr1/internal/lr1/parse"
	"github.com/stretchr/testify/assert"
)

// ambiguousParens: S -> S S | ( S ) | ε is not LR(1) (the classic example of
// a grammar whose recognition is ambiguous about how many S's to reduce).
func ambiguousParens() grammar.Grammar {
	g := grammar.New("S")
	g.AddTerm("(")
	g.AddTerm(")")
	g.AddRule("S", []string{"S", "S"})
	g.AddRule("S", []string{"(", "S", ")"})
	g.AddRule("S", []string{})
	return g
}

func TestNew_RejectsNonLR1Grammar(t *testing.T) {
	_, err := parse.New(ambiguousParens())
	assert.Error(t, err)

	var constructionErr *lr1errors.ConstructionError
	assert.True(t, errors.As(err, &constructionErr))
}

// prefixGrammar: S -> a B, B -> b | b c.
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

func TestAccepts_PrefixGrammar(t *testing.T) {
	r, err := parse.New(prefixGrammar())
	assert.NoError(t, err)

	cases := map[string]bool{
		"a":   false,
		"ab":  true,
		"abc": true,
		"bc":  false,
		"b":   false,
	}
	for word, want := range cases {
		got, err := r.AcceptsString(word)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "word %q", word)
	}
}

// cGrammar: S -> C C, C -> c C | d.
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

func TestAccepts_CGrammar(t *testing.T) {
	r, err := parse.New(cGrammar())
	assert.NoError(t, err)

	cases := map[string]bool{
		"dcd":      true,
		"dd":       true,
		"cdcdd":    false,
		"ccc":      false,
		"ccccdcdd": false,
		"cccdccccd": true,
		"cddd":     false,
	}
	for word, want := range cases {
		got, err := r.AcceptsString(word)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "word %q", word)
	}
}

// mixedNullabilityGrammar: S -> S S | ε | x | c D, D -> d D | x.
func mixedNullabilityGrammar() grammar.Grammar {
	g := grammar.New("S")
	g.AddTerm("x")
	g.AddTerm("c")
	g.AddTerm("d")
	g.AddNonTerm("D")
	g.AddRule("S", []string{"S", "S"})
	g.AddRule("S", []string{})
	g.AddRule("S", []string{"x"})
	g.AddRule("S", []string{"c", "D"})
	g.AddRule("D", []string{"d", "D"})
	g.AddRule("D", []string{"x"})
	return g
}

func TestAccepts_MixedNullabilityGrammar(t *testing.T) {
	r, err := parse.New(mixedNullabilityGrammar())
	assert.NoError(t, err)

	cases := map[string]bool{
		"cx":     true,
		"cddxcx": true,
		"x":      true,
		"xcx":    true,
		"xccdx":  false,
		"c":      false,
	}
	for word, want := range cases {
		got, err := r.AcceptsString(word)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "word %q", word)
	}
}

func TestAccepts_RejectsSymbolNotInGrammar(t *testing.T) {
	r, err := parse.New(prefixGrammar())
	assert.NoError(t, err)

	_, err = r.AcceptsString("az")
	assert.Error(t, err)

	var symErr *lr1errors.SymbolError
	assert.True(t, errors.As(err, &symErr))
	assert.Equal(t, "z", symErr.Symbol)
	assert.Equal(t, 1, symErr.Position)
}

func TestAccepts_EmptyWordOnNullableGrammar(t *testing.T) {
	g := grammar.New("S")
	g.AddTerm("x")
	g.AddRule("S", []string{})
	g.AddRule("S", []string{"x"})
	r, err := parse.New(g)
	assert.NoError(t, err)

	cases := map[string]bool{
		"":   true,
		"x":  true,
		"xx": false,
	}
	for word, want := range cases {
		got, err := r.AcceptsString(word)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "word %q", word)
	}
}

// concatGrammar: S -> ac | bDc | Da, D -> a.
func concatGrammar() grammar.Grammar {
	g := grammar.New("S")
	g.AddTerm("a")
	g.AddTerm("b")
	g.AddTerm("c")
	g.AddNonTerm("D")
	g.AddRule("S", []string{"a", "c"})
	g.AddRule("S", []string{"b", "D", "c"})
	g.AddRule("S", []string{"D", "a"})
	g.AddRule("D", []string{"a"})
	return g
}

func TestAccepts_ConcatGrammar(t *testing.T) {
	r, err := parse.New(concatGrammar())
	assert.NoError(t, err)

	cases := map[string]bool{
		"ac":   true,
		"aa":   true,
		"bac":  true,
		"aac":  false,
		"bb":   false,
		"baac": false,
		"aaa":  false,
	}
	for word, want := range cases {
		got, err := r.AcceptsString(word)
		assert.NoError(t, err)
		assert.Equal(t, want, got, "word %q", word)
	}
}
