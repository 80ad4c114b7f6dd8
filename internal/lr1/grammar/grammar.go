// Package grammar holds the immutable description of a context-free grammar:
// terminals, non-terminals, the start symbol, and an ordered list of
// productions. It is adapted from tunaq's internal/ictiobus/grammar, trimmed
// down to what an LR(1) construction needs (no LL(1)/left-factoring/
// left-recursion-removal machinery, since this module targets canonical
// LR(1) exclusively).
package grammar

import (
	"fmt"
	"sort"
	"strings"
)

// EndOfInput is the reserved end-of-input marker, a terminal that never
// appears in the right-hand side of any production of the input grammar.
const EndOfInput = "$"

// AugmentedStartSuffix is appended to the grammar's start symbol (repeatedly,
// if necessary) to synthesize a fresh augmented start non-terminal that
// cannot collide with a user-supplied name.
const AugmentedStartSuffix = "'"

// Production is the right-hand side of a rule: an ordered, possibly empty,
// sequence of symbols. A nil or zero-length Production denotes an
// epsilon-production.
type Production []string

// String renders the production the way the reference ingestion format and
// the diagnostic dumps do: symbols separated by spaces, or "ε" if empty.
func (p Production) String() string {
	if len(p) == 0 {
		return "ε"
	}
	return strings.Join(p, " ")
}

// Equal returns whether p and o have the same symbols in the same order.
func (p Production) Equal(o Production) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of p.
func (p Production) Copy() Production {
	cp := make(Production, len(p))
	copy(cp, p)
	return cp
}

// Rule is every production associated with a single left-hand side
// non-terminal, in the order they were added to the grammar.
type Rule struct {
	NonTerminal string
	Productions []Production
}

// String renders every alternative of the rule, pipe-separated.
func (r Rule) String() string {
	if len(r.Productions) == 0 {
		return r.NonTerminal + " -> (no productions)"
	}
	alts := make([]string, len(r.Productions))
	for i, p := range r.Productions {
		alts[i] = p.String()
	}
	return fmt.Sprintf("%s -> %s", r.NonTerminal, strings.Join(alts, " | "))
}

// ruleRef names a single production by its left-hand side, for the flat,
// globally-ordered production list that backs rule indices (the index a
// Reduce action carries).
type ruleRef struct {
	NonTerminal string
	Production  Production
}

// Grammar is the tuple (T, N, S, P) described by the core spec: disjoint
// terminal and non-terminal symbol sets, a start symbol in N, and an ordered
// list of productions. The zero value is an empty grammar with no start
// symbol set; use New to make one with a start symbol already assigned.
type Grammar struct {
	terminals    []string
	terminalSet  map[string]bool
	nonTerminals []string
	nonTermSet   map[string]bool
	start        string
	rules        map[string]*Rule
	order        []ruleRef
}

// New creates an empty Grammar whose start symbol is start. start is also
// registered as a non-terminal.
func New(start string) Grammar {
	g := Grammar{
		terminalSet: map[string]bool{},
		nonTermSet:  map[string]bool{},
		rules:       map[string]*Rule{},
		start:       start,
	}
	g.AddNonTerm(start)
	return g
}

// AddTerm registers symbol as a terminal. No effect if already registered as
// one.
func (g *Grammar) AddTerm(symbol string) {
	if g.terminalSet == nil {
		g.terminalSet = map[string]bool{}
	}
	if g.terminalSet[symbol] {
		return
	}
	g.terminalSet[symbol] = true
	g.terminals = append(g.terminals, symbol)
}

// AddNonTerm registers symbol as a non-terminal. No effect if already
// registered as one.
func (g *Grammar) AddNonTerm(symbol string) {
	if g.nonTermSet == nil {
		g.nonTermSet = map[string]bool{}
	}
	if g.nonTermSet[symbol] {
		return
	}
	g.nonTermSet[symbol] = true
	g.nonTerminals = append(g.nonTerminals, symbol)
	if g.rules == nil {
		g.rules = map[string]*Rule{}
	}
	if _, ok := g.rules[symbol]; !ok {
		g.rules[symbol] = &Rule{NonTerminal: symbol}
	}
}

// AddRule adds one production alternative A -> production to the grammar. A
// is registered as a non-terminal if it is not one already. The production
// is appended both to A's accumulated Rule and to the grammar's flat,
// globally-ordered production list, so that the index this call returns is
// stable and usable as a Reduce target.
func (g *Grammar) AddRule(nonTerminal string, production []string) int {
	g.AddNonTerm(nonTerminal)

	p := Production(production).Copy()
	g.rules[nonTerminal].Productions = append(g.rules[nonTerminal].Productions, p)
	g.order = append(g.order, ruleRef{NonTerminal: nonTerminal, Production: p})

	return len(g.order) - 1
}

// StartSymbol returns the grammar's start symbol.
func (g Grammar) StartSymbol() string {
	return g.start
}

// Terminals returns T in declaration order.
func (g Grammar) Terminals() []string {
	out := make([]string, len(g.terminals))
	copy(out, g.terminals)
	return out
}

// NonTerminals returns N in declaration order.
func (g Grammar) NonTerminals() []string {
	out := make([]string, len(g.nonTerminals))
	copy(out, g.nonTerminals)
	return out
}

// AllSymbols returns T followed by N, the order the constructor iterates
// successor edges in when discovering states.
func (g Grammar) AllSymbols() []string {
	out := make([]string, 0, len(g.terminals)+len(g.nonTerminals))
	out = append(out, g.terminals...)
	out = append(out, g.nonTerminals...)
	return out
}

// IsTerminal reports whether x is classified as a terminal. Total on
// symbols: anything not a known terminal is considered non-terminal-or-
// unknown and returns false.
func (g Grammar) IsTerminal(x string) bool {
	return g.terminalSet[x]
}

// IsNonTerminal reports whether x is classified as a non-terminal.
func (g Grammar) IsNonTerminal(x string) bool {
	return g.nonTermSet[x]
}

// Rule returns every production whose left-hand side is nonTerminal, in
// insertion order. Returns a zero-value Rule (no productions) if
// nonTerminal has none.
func (g Grammar) Rule(nonTerminal string) Rule {
	r, ok := g.rules[nonTerminal]
	if !ok {
		return Rule{NonTerminal: nonTerminal}
	}
	cp := Rule{NonTerminal: r.NonTerminal, Productions: make([]Production, len(r.Productions))}
	copy(cp.Productions, r.Productions)
	return cp
}

// NumRules returns the total number of productions in the grammar (R in the
// data model, so that rule indices range over [0, NumRules())).
func (g Grammar) NumRules() int {
	return len(g.order)
}

// RuleByIndex returns the non-terminal and production at rule index i, the
// same index a Reduce action carries. ok is false if i is out of range.
func (g Grammar) RuleByIndex(i int) (nonTerminal string, production Production, ok bool) {
	if i < 0 || i >= len(g.order) {
		return "", nil, false
	}
	ref := g.order[i]
	return ref.NonTerminal, ref.Production, true
}

// IndexOfRule returns the index of the production A -> rhs in the grammar's
// global rule order, and whether it was found.
func (g Grammar) IndexOfRule(nonTerminal string, rhs Production) (int, bool) {
	for i, ref := range g.order {
		if ref.NonTerminal == nonTerminal && ref.Production.Equal(rhs) {
			return i, true
		}
	}
	return -1, false
}

// Augmented returns a new grammar G' = G plus a single production
// S' -> S, where S' is a synthesized non-terminal guaranteed not to collide
// with any symbol already in G (by repeatedly appending
// AugmentedStartSuffix until the name is free). The returned grammar's start
// symbol is S'.
func (g Grammar) Augmented() Grammar {
	augStart := g.start + AugmentedStartSuffix
	for g.nonTermSet[augStart] || g.terminalSet[augStart] {
		augStart += AugmentedStartSuffix
	}

	gPrime := New(augStart)
	for _, t := range g.terminals {
		gPrime.AddTerm(t)
	}
	for _, nt := range g.nonTerminals {
		gPrime.AddNonTerm(nt)
	}
	gPrime.AddRule(augStart, []string{g.start})
	for _, ref := range g.order {
		gPrime.AddRule(ref.NonTerminal, ref.Production)
	}

	return gPrime
}

// Validate checks the grammar invariants from the data model: every rhs
// symbol is classified as a terminal or non-terminal, the start symbol is a
// non-terminal, and neither reserved name ($ or an augmented-start-looking
// name) was used by the caller as an ordinary grammar symbol.
func (g Grammar) Validate() error {
	if !g.nonTermSet[g.start] {
		return fmt.Errorf("start symbol %q is not a non-terminal of the grammar", g.start)
	}
	if g.terminalSet[EndOfInput] || g.nonTermSet[EndOfInput] {
		return fmt.Errorf("reserved symbol %q must not appear in the grammar", EndOfInput)
	}
	for _, ref := range g.order {
		for _, sym := range ref.Production {
			if sym == "" {
				continue // epsilon marker within an otherwise-nonempty slice shouldn't occur, but is harmless
			}
			if !g.terminalSet[sym] && !g.nonTermSet[sym] {
				return fmt.Errorf("production %s -> %s references unknown symbol %q", ref.NonTerminal, ref.Production.String(), sym)
			}
		}
	}
	return nil
}

// String renders every rule in declaration order, one per line.
func (g Grammar) String() string {
	var sb strings.Builder
	nts := make([]string, len(g.nonTerminals))
	copy(nts, g.nonTerminals)
	sort.SliceStable(nts, func(i, j int) bool { return nts[i] == g.start && nts[j] != g.start })
	for i, nt := range nts {
		sb.WriteString(g.Rule(nt).String())
		if i+1 < len(nts) {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
