// Package lr1util holds small generic helpers shared by the grammar,
// automaton, and table packages. It is adapted from tunaq's internal/util,
// trimmed to the pieces an LR(1) construction actually needs.
package lr1util

import (
	"sort"
	"strings"
)

// OrderedSet is a set of comparable strings that remembers nothing about
// insertion order but can always produce one deterministically, the way
// util.StringSet does in the teacher package.
type OrderedSet map[string]bool

// NewOrderedSet makes an OrderedSet out of the given elements.
func NewOrderedSet(elements ...string) OrderedSet {
	s := OrderedSet{}
	for _, e := range elements {
		s[e] = true
	}
	return s
}

// Add adds element to the set. No effect if already present.
func (s OrderedSet) Add(element string) {
	s[element] = true
}

// Has returns whether element is in the set.
func (s OrderedSet) Has(element string) bool {
	return s[element]
}

// Slice returns the set's elements sorted lexicographically, so that two
// calls against equal sets always agree on order.
func (s OrderedSet) Slice() []string {
	sl := make([]string, 0, len(s))
	for k := range s {
		sl = append(sl, k)
	}
	sort.Strings(sl)
	return sl
}

// Len returns the number of elements in the set.
func (s OrderedSet) Len() int {
	return len(s)
}

// MakeTextList joins items into a human-readable list with an Oxford comma,
// e.g. "a, b, and c". Lifted from tunaq's util.MakeTextList.
func MakeTextList(items []string) string {
	if len(items) < 1 {
		return ""
	}

	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 2 {
		return items[0] + " and " + items[1]
	}

	cp := make([]string, len(items))
	copy(cp, items)
	cp[len(cp)-1] = "and " + cp[len(cp)-1]
	return strings.Join(cp, ", ")
}

// ArticleFor returns "a" or "an" depending on whether s starts with a vowel
// sound. capitalize controls whether the article itself is capitalized.
func ArticleFor(s string, capitalize bool) string {
	article := "a"
	if len(s) > 0 && strings.ContainsRune("aeiouAEIOU", rune(s[0])) {
		article = "an"
	}
	if capitalize {
		return strings.ToUpper(article[:1]) + article[1:]
	}
	return article
}
