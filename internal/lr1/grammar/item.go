package grammar

import (
	"fmt"
	"strings"
)

// Item is an LR(1) item: a production with a dot marking how much of it has
// been recognized so far, plus a single lookahead terminal. Left holds the
// symbols before the dot, Right the symbols after it. Adapted directly from
// tunaq's grammar.LR0Item/LR1Item, collapsed into one type since this
// module only ever builds canonical LR(1) automata (no LR(0)-only
// construction is needed along the way).
type Item struct {
	NonTerminal string
	Left        []string
	Right       []string
	Lookahead   string
}

// Equal reports whether two items have the same core (non-terminal, dot
// position, production symbols) and the same lookahead.
func (it Item) Equal(o Item) bool {
	if it.NonTerminal != o.NonTerminal || it.Lookahead != o.Lookahead {
		return false
	}
	if len(it.Left) != len(o.Left) || len(it.Right) != len(o.Right) {
		return false
	}
	for i := range it.Left {
		if it.Left[i] != o.Left[i] {
			return false
		}
	}
	for i := range it.Right {
		if it.Right[i] != o.Right[i] {
			return false
		}
	}
	return true
}

// Copy returns an independent copy of it.
func (it Item) Copy() Item {
	cp := Item{NonTerminal: it.NonTerminal, Lookahead: it.Lookahead}
	cp.Left = make([]string, len(it.Left))
	copy(cp.Left, it.Left)
	cp.Right = make([]string, len(it.Right))
	copy(cp.Right, it.Right)
	return cp
}

// AtEnd reports whether the dot is at the end of the production, i.e. this
// item is a candidate for a Reduce (or Accept) action.
func (it Item) AtEnd() bool {
	return len(it.Right) == 0
}

// NextSymbol returns the symbol immediately after the dot and true, or ""
// and false if the dot is at the end.
func (it Item) NextSymbol() (string, bool) {
	if it.AtEnd() {
		return "", false
	}
	return it.Right[0], true
}

// Advance returns a copy of it with the dot moved one symbol to the right.
// Panics if the dot is already at the end; callers are expected to check
// AtEnd/NextSymbol first.
func (it Item) Advance() Item {
	if it.AtEnd() {
		panic("cannot advance an item whose dot is already at the end of its production")
	}
	adv := it.Copy()
	adv.Left = append(adv.Left, adv.Right[0])
	adv.Right = adv.Right[1:]
	return adv
}

// Production reconstructs the full right-hand side of the underlying
// production (Left and Right concatenated, dot removed).
func (it Item) Production() Production {
	full := make(Production, 0, len(it.Left)+len(it.Right))
	full = append(full, it.Left...)
	full = append(full, it.Right...)
	return full
}

// String renders the item the way tunaq's LR1Item does: "A -> alpha . beta,
// a".
func (it Item) String() string {
	nonTermPhrase := ""
	if it.NonTerminal != "" {
		nonTermPhrase = fmt.Sprintf("%s -> ", it.NonTerminal)
	}

	left := strings.Join(it.Left, " ")
	right := strings.Join(it.Right, " ")
	if len(left) > 0 {
		left += " "
	}
	if len(right) > 0 {
		right = " " + right
	}

	return fmt.Sprintf("%s%s.%s, %s", nonTermPhrase, left, right, it.Lookahead)
}

// NewItem builds the initial item A -> . production, lookahead, with the
// dot at the very start of the production.
func NewItem(nonTerminal string, production Production, lookahead string) Item {
	right := make([]string, len(production))
	copy(right, production)
	return Item{NonTerminal: nonTerminal, Right: right, Lookahead: lookahead}
}
