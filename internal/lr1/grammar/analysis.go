package grammar

import "github.com/dekarrin/lr1/internal/lr1/lr1util"

// Nullable computes, for every non-terminal in g, whether it can derive the
// empty string. It is a straightforward least-fixed-point over the
// productions: a non-terminal is nullable if it has an epsilon-production,
// or a production all of whose symbols are (already known to be) nullable.
// Mirrors original_source/grammar.py's get_epsilon.
func Nullable(g Grammar) map[string]bool {
	null := map[string]bool{}
	for _, nt := range g.NonTerminals() {
		null[nt] = false
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.NonTerminals() {
			if null[nt] {
				continue
			}
			for _, p := range g.Rule(nt).Productions {
				if productionNullable(p, null) {
					null[nt] = true
					changed = true
					break
				}
			}
		}
	}

	return null
}

func productionNullable(p Production, null map[string]bool) bool {
	if len(p) == 0 {
		return true
	}
	for _, sym := range p {
		if !null[sym] {
			return false
		}
	}
	return true
}

// FirstSets computes FIRST(X) for every symbol X (terminal and
// non-terminal) of g, given the already-computed nullability map. Follows
// spec.md §4.2's two-pass shape:
//
//  1. Seed FIRST(t) = {t} for every terminal t, and FIRST(A) with the
//     leading terminals directly visible in A's own productions.
//  2. Build the "may begin with" graph: A may-begin-with B whenever some
//     production of A starts with a (possibly empty, given nullability)
//     prefix of nullable symbols followed by B. Propagate FIRST sets along
//     this graph to a fixed point.
//
// This is the algorithm original_source/grammar.py's get_first implements
// directly (walk each production's symbols left to right, stopping at the
// first non-nullable one), generalized here into an explicit two-pass form
// so it composes with FirstOfSequence below.
func FirstSets(g Grammar, null map[string]bool) map[string]lr1util.OrderedSet {
	first := map[string]lr1util.OrderedSet{}
	for _, t := range g.Terminals() {
		first[t] = lr1util.NewOrderedSet(t)
	}
	for _, nt := range g.NonTerminals() {
		first[nt] = lr1util.NewOrderedSet()
	}

	mayBeginWith := map[string]lr1util.OrderedSet{}
	for _, nt := range g.NonTerminals() {
		mayBeginWith[nt] = lr1util.NewOrderedSet()
	}

	for _, nt := range g.NonTerminals() {
		for _, p := range g.Rule(nt).Productions {
			for _, sym := range p {
				if g.IsTerminal(sym) {
					first[nt].Add(sym)
					break
				}
				// sym is a non-terminal: everything currently/eventually in
				// FIRST(sym) belongs in FIRST(nt) too.
				mayBeginWith[nt].Add(sym)
				if !null[sym] {
					break
				}
			}
		}
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.NonTerminals() {
			for _, succ := range mayBeginWith[nt].Slice() {
				for _, t := range first[succ].Slice() {
					if !first[nt].Has(t) {
						first[nt].Add(t)
						changed = true
					}
				}
			}
		}
	}

	return first
}

// FirstOfSequence computes FIRST(X1 X2 ... Xn) given the per-symbol FIRST
// sets and nullability map: the union of FIRST(Xi) for the longest nullable
// prefix X1..Xi-1, plus FIRST(Xi) itself, stopping at the first
// non-nullable symbol. If every Xi is nullable (including the empty
// sequence), the result also contains epsilon, reported via the second
// return value.
func FirstOfSequence(seq []string, first map[string]lr1util.OrderedSet, null map[string]bool) (lr1util.OrderedSet, bool) {
	out := lr1util.NewOrderedSet()
	for _, sym := range seq {
		for _, t := range first[sym].Slice() {
			out.Add(t)
		}
		if !null[sym] {
			return out, false
		}
	}
	return out, true
}
