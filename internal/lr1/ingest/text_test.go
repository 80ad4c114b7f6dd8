package ingest_test

import (
	"testing"

	"github.com/dekarrin/lr1/internal/lr1/ingest"
	"github.com/stretchr/testify/assert"
)

func TestParseText_SimpleGrammar(t *testing.T) {
	g, err := ingest.ParseText("S->aB\nB->b\nB->bc\n")
	assert.NoError(t, err)
	assert.Equal(t, "S", g.StartSymbol())
	assert.True(t, g.IsTerminal("a"))
	assert.True(t, g.IsTerminal("b"))
	assert.True(t, g.IsTerminal("c"))
	assert.True(t, g.IsNonTerminal("B"))
	assert.Equal(t, 3, g.NumRules())
}

func TestParseText_EpsilonProduction(t *testing.T) {
	g, err := ingest.ParseText("S->SS\nS->\nS->x\n")
	assert.NoError(t, err)

	_, p, ok := g.RuleByIndex(1)
	assert.True(t, ok)
	assert.Empty(t, p)
}

func TestParseText_SkipsBlankLinesAndComments(t *testing.T) {
	g, err := ingest.ParseText("# a comment\n\nS->x\n\n# trailing\n")
	assert.NoError(t, err)
	assert.Equal(t, 1, g.NumRules())
}

func TestParseText_RejectsMissingArrow(t *testing.T) {
	_, err := ingest.ParseText("S x\n")
	assert.Error(t, err)
}

func TestParseText_RejectsLowercaseNonTerminal(t *testing.T) {
	_, err := ingest.ParseText("s->x\n")
	assert.Error(t, err)
}

func TestParseText_NoProductionsIsError(t *testing.T) {
	_, err := ingest.ParseText("\n\n# nothing here\n")
	assert.Error(t, err)
}
