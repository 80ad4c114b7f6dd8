// Package ingest turns grammar source (either the compact "A->xyz" textual
// notation or a TOML manifest) into a grammar.Grammar ready for
// automaton/table construction. The textual notation is adapted from
// original_source's generate_grammar convention: one line per production,
// "NONTERM->SYMBOLS", where each character of SYMBOLS is its own grammar
// symbol and case distinguishes kind, the same classification rule tunaq's
// automaton.go uses when walking an LR0 item's right-hand side
// ("strings.ToUpper(X) == X" means X is a non-terminal).
package ingest

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dekarrin/lr1/internal/lr1/grammar"
)

// ParseText parses src, a sequence of "NONTERM->SYMBOLS" lines (blank lines
// and lines starting with "#" are skipped), into a Grammar. The start
// symbol is the left-hand side of the first non-comment, non-blank line.
// Uppercase letters are non-terminals, everything else is a terminal;
// "->" with nothing after it is an epsilon production.
func ParseText(src string) (grammar.Grammar, error) {
	var g grammar.Grammar
	started := false

	for lineNo, rawLine := range strings.Split(src, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		nonTerminal, rhs, err := parseLine(line)
		if err != nil {
			return grammar.Grammar{}, fmt.Errorf("line %d: %w", lineNo+1, err)
		}

		if !started {
			g = grammar.New(nonTerminal)
			started = true
		}

		classifySymbols(&g, nonTerminal, rhs)
		g.AddRule(nonTerminal, rhs)
	}

	if !started {
		return grammar.Grammar{}, fmt.Errorf("no productions found in input")
	}

	if err := g.Validate(); err != nil {
		return grammar.Grammar{}, err
	}

	return g, nil
}

func parseLine(line string) (nonTerminal string, rhs []string, err error) {
	sides := strings.SplitN(line, "->", 2)
	if len(sides) != 2 {
		return "", nil, fmt.Errorf("expected a production of the form NONTERM->SYMBOLS, got %q", line)
	}

	nonTerminal = strings.TrimSpace(sides[0])
	if nonTerminal == "" {
		return "", nil, fmt.Errorf("empty non-terminal name")
	}
	if !unicode.IsUpper(rune(nonTerminal[0])) {
		return "", nil, fmt.Errorf("non-terminal %q must start with an uppercase letter", nonTerminal)
	}

	body := strings.TrimSpace(sides[1])
	for _, r := range body {
		rhs = append(rhs, string(r))
	}

	return nonTerminal, rhs, nil
}

func classifySymbols(g *grammar.Grammar, nonTerminal string, rhs []string) {
	g.AddNonTerm(nonTerminal)
	for _, sym := range rhs {
		if unicode.IsUpper(rune(sym[0])) {
			g.AddNonTerm(sym)
		} else {
			g.AddTerm(sym)
		}
	}
}
