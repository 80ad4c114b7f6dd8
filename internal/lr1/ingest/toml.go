package ingest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/lr1/internal/lr1/grammar"
)

// tomlProduction is one alternative of a rule in a TOML grammar manifest:
//
//	[[rule]]
//	nonterminal = "S"
//	produces = ["a", "B"]
type tomlProduction struct {
	NonTerminal string   `toml:"nonterminal"`
	Produces    []string `toml:"produces"`
}

// tomlManifest is the top-level shape of a grammar manifest file, modeled on
// tunaq's topLevelWorldData/topLevelManifest: a format/type header pair
// followed by the actual payload, here a start symbol and an ordered list of
// rules.
type tomlManifest struct {
	Format string           `toml:"format"`
	Type   string           `toml:"type"`
	Start  string           `toml:"start"`
	Rules  []tomlProduction `toml:"rule"`
}

// ParseTOMLFile reads and decodes a grammar manifest at path. See ParseTOML
// for the expected shape.
func ParseTOMLFile(path string) (grammar.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grammar.Grammar{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}
	g, err := ParseTOML(data)
	if err != nil {
		return grammar.Grammar{}, fmt.Errorf("%q: %w", path, err)
	}
	return g, nil
}

// ParseTOML decodes a grammar manifest of the form:
//
//	format = "LR1"
//	type = "GRAMMAR"
//	start = "S"
//
//	[[rule]]
//	nonterminal = "S"
//	produces = ["a", "B"]
//
//	[[rule]]
//	nonterminal = "B"
//	produces = ["b"]
//
// An empty produces list is an epsilon production. Symbols are classified
// as non-terminals if they appear as the nonterminal of some rule,
// terminals otherwise, mirroring the textual "A->xyz" format's uppercase
// convention but without requiring single-character symbol names.
func ParseTOML(data []byte) (grammar.Grammar, error) {
	var manifest tomlManifest
	if _, err := toml.Decode(string(data), &manifest); err != nil {
		return grammar.Grammar{}, fmt.Errorf("decoding TOML: %w", err)
	}

	if manifest.Start == "" {
		return grammar.Grammar{}, fmt.Errorf("manifest has no start symbol")
	}
	if len(manifest.Rules) == 0 {
		return grammar.Grammar{}, fmt.Errorf("manifest declares no rules")
	}

	nonTerminals := map[string]bool{manifest.Start: true}
	for _, r := range manifest.Rules {
		if r.NonTerminal == "" {
			return grammar.Grammar{}, fmt.Errorf("rule with empty nonterminal")
		}
		nonTerminals[r.NonTerminal] = true
	}

	g := grammar.New(manifest.Start)
	for _, r := range manifest.Rules {
		g.AddNonTerm(r.NonTerminal)
		for _, sym := range r.Produces {
			if nonTerminals[sym] {
				g.AddNonTerm(sym)
			} else {
				g.AddTerm(sym)
			}
		}
	}
	for _, r := range manifest.Rules {
		g.AddRule(r.NonTerminal, r.Produces)
	}

	if err := g.Validate(); err != nil {
		return grammar.Grammar{}, err
	}

	return g, nil
}
