// Package automaton builds the canonical collection of LR(1) item sets for a
// grammar (CLOSURE, GOTO, and the BFS that discovers every reachable state),
// adapted from tunaq's internal/ictiobus/automaton.NewLR1ViablePrefixDFA.
// Unlike the teacher, this package only ever targets canonical LR(1): there
// is no LR(0)/NFA scaffolding to support SLR or LALR merging.
package automaton

import (
	"sort"

	"github.com/cnf/structhash"
	"github.com/dekarrin/lr1/internal/lr1/grammar"
	"github.com/dekarrin/lr1/internal/lr1/lr1util"
)

// State is one node of the canonical collection: a closed set of LR(1)
// items. Items is kept in the Item.String() sort order so that two States
// built from the same logical set always compare equal field-for-field.
type State struct {
	Items []grammar.Item
}

// key returns a content hash of the state's items, used to dedup newly
// discovered states against ones already in the collection without
// repeatedly reconstructing and comparing the full joined string of every
// item (see the state-identity design note this package is grounded on:
// large grammars can produce states with hundreds of items, so comparing by
// hash is worth it over comparing the raw item slice). A collision would
// silently merge two distinct states, but structhash's digest is wide
// enough that collisions are not a practical concern in this size regime.
func (s State) key() string {
	h, err := structhash.Hash(itemStrings(s.Items), 1)
	if err != nil {
		// structhash only fails on unsupported types; itemStrings is always
		// a []string, which it always supports.
		panic("unreachable: " + err.Error())
	}
	return h
}

func itemStrings(items []grammar.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.String()
	}
	return out
}

func sortedItems(items []grammar.Item) []grammar.Item {
	out := make([]grammar.Item, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func newState(items []grammar.Item) State {
	return State{Items: sortedItems(dedupItems(items))}
}

func dedupItems(items []grammar.Item) []grammar.Item {
	seen := map[string]bool{}
	out := make([]grammar.Item, 0, len(items))
	for _, it := range items {
		k := it.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}

// Transition is one GOTO edge of the collection: from state From, on symbol
// Symbol, to state To.
type Transition struct {
	From   int
	Symbol string
	To     int
}

// Collection is the canonical collection of LR(1) item sets: every state
// reachable from the augmented grammar's initial item, plus the GOTO
// transitions between them. States are numbered by discovery order; Start
// is always 0.
type Collection struct {
	Grammar     grammar.Grammar // the augmented grammar the collection was built from
	States      []State
	Transitions map[int]map[string]int
	Start       int
}

// Goto returns the destination state index for (state, symbol), and whether
// that transition exists.
func (c Collection) Goto(state int, symbol string) (int, bool) {
	row, ok := c.Transitions[state]
	if !ok {
		return 0, false
	}
	to, ok := row[symbol]
	return to, ok
}

// Closure computes CLOSURE(items) against grammar g: repeatedly, for every
// item [A -> alpha . B beta, a] with B a non-terminal, add [B -> . gamma, b]
// for every production B -> gamma and every b in FIRST(beta a), until no
// more items can be added. Grounded on the teacher's LR1_CLOSURE (referenced
// from NewLR1ViablePrefixDFA) generalized off its util.SVSet machinery.
func Closure(g grammar.Grammar, null map[string]bool, first map[string]lr1util.OrderedSet, items []grammar.Item) []grammar.Item {
	set := map[string]grammar.Item{}
	for _, it := range items {
		set[it.String()] = it
	}

	changed := true
	for changed {
		changed = false
		for _, it := range setValues(set) {
			sym, ok := it.NextSymbol()
			if !ok || !g.IsNonTerminal(sym) {
				continue
			}

			betaA := append(append([]string{}, it.Right[1:]...), it.Lookahead)
			lookaheads, _ := grammar.FirstOfSequence(betaA, first, null)

			for _, prod := range g.Rule(sym).Productions {
				for _, la := range lookaheads.Slice() {
					newItem := grammar.NewItem(sym, prod, la)
					k := newItem.String()
					if _, exists := set[k]; !exists {
						set[k] = newItem
						changed = true
					}
				}
			}
		}
	}

	return setValues(set)
}

func setValues(set map[string]grammar.Item) []grammar.Item {
	out := make([]grammar.Item, 0, len(set))
	for _, it := range set {
		out = append(out, it)
	}
	return out
}

// Build discovers the full canonical collection of LR(1) item sets for g.
// It augments g with a fresh start production first, so the returned
// Collection's Grammar is g', not g. Grounded on
// automaton.NewLR1ViablePrefixDFA's fixed-point BFS loop ("following algo
// from http://www.cs.ecu.edu/karl/5220/spr16/Notes/Bottom-up/lr1.html"),
// restated without the DFA/NFA generic scaffolding that loop's host type
// needed for SLR/LALR.
func Build(g grammar.Grammar) Collection {
	oldStart := g.StartSymbol()
	gPrime := g.Augmented()

	null := grammar.Nullable(gPrime)
	first := grammar.FirstSets(gPrime, null)

	initial := grammar.NewItem(gPrime.StartSymbol(), grammar.Production{oldStart}, grammar.EndOfInput)
	startItems := Closure(gPrime, null, first, []grammar.Item{initial})
	startState := newState(startItems)

	indexOf := map[string]int{startState.key(): 0}
	states := []State{startState}
	transitions := map[int]map[string]int{}

	for frontier := 0; frontier < len(states); frontier++ {
		I := states[frontier]

		bySymbol := map[string][]grammar.Item{}
		order := []string{}
		for _, it := range I.Items {
			sym, ok := it.NextSymbol()
			if !ok {
				continue
			}
			if _, seen := bySymbol[sym]; !seen {
				order = append(order, sym)
			}
			bySymbol[sym] = append(bySymbol[sym], it.Advance())
		}
		sort.Strings(order)

		for _, sym := range order {
			kernel := bySymbol[sym]
			closed := Closure(gPrime, null, first, kernel)
			next := newState(closed)
			k := next.key()

			idx, exists := indexOf[k]
			if !exists {
				idx = len(states)
				indexOf[k] = idx
				states = append(states, next)
			}

			if transitions[frontier] == nil {
				transitions[frontier] = map[string]int{}
			}
			transitions[frontier][sym] = idx
		}
	}

	return Collection{Grammar: gPrime, States: states, Transitions: transitions, Start: 0}
}
