// Package pool canonicalizes the card multiset the enumerator searches
// over: building it from raw card slices with two-deck validation, taking
// the sorted (rank,suit,count) signature used as the memo key (spec.md
// §4.3 points 1 and 5), and subtracting a candidate group from a pool with
// proper multiplicity. Kept separate from the search itself the way the
// teacher keeps removeSubset/combo-extraction (bot/internal/combo_extract.go)
// apart from move generation (bot/internal/generator.go).
package pool

import (
	"fmt"
	"sort"

	"makiaveli/internal/card"
)

// Pool is the count-map representation of the cards available to the
// solver: hand ∪ floor ∪ used_cross, per spec.md §3.
type Pool card.Multiset

// Build assembles a Pool from a flat card slice, rejecting any (rank,suit)
// that would occur more than card.MaxCopies times.
func Build(cards []card.Card) (Pool, error) {
	p := make(Pool, len(cards))
	for _, c := range cards {
		p[c]++
		if p[c] > card.MaxCopies {
			return nil, fmt.Errorf("invalid input: %s appears more than %d times in the pool", c.Code(), card.MaxCopies)
		}
	}
	return p, nil
}

// Clone returns an independent copy of p.
func (p Pool) Clone() Pool {
	out := make(Pool, len(p))
	for c, n := range p {
		out[c] = n
	}
	return out
}

// Total returns the number of cards, counted with multiplicity, in p.
func (p Pool) Total() int {
	n := 0
	for _, c := range p {
		n += c
	}
	return n
}

// Contains reports whether p has at least one copy of c.
func (p Pool) Contains(c card.Card) bool {
	return p[c] > 0
}

// Sub returns a new pool with one copy of each card in group removed. It
// reports false, leaving p untouched, if group is not a sub-multiset of p.
func (p Pool) Sub(group []card.Card) (Pool, bool) {
	out := p.Clone()
	for _, c := range group {
		if out[c] <= 0 {
			return nil, false
		}
		out[c]--
		if out[c] == 0 {
			delete(out, c)
		}
	}
	return out, true
}

// Cards flattens the pool into a sorted card slice, one entry per copy.
func (p Pool) Cards() []card.Card {
	return card.Multiset(p).Cards()
}

// entry is one (rank, suit, count) tuple of the canonical signature.
type entry struct {
	rank  card.Rank
	suit  card.Suit
	count int
}

// Signature returns the canonical hashable form of p: the sorted tuple of
// (rank, suit, count) entries with count > 0. Two pools equal as multisets
// produce an identical signature regardless of how they were built, which
// is the memoization contract spec.md §4.3 point 5 requires.
func (p Pool) Signature() string {
	entries := make([]entry, 0, len(p))
	for c, n := range p {
		if n == 0 {
			continue
		}
		entries = append(entries, entry{rank: c.Rank, suit: c.Suit, count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].suit != entries[j].suit {
			return entries[i].suit < entries[j].suit
		}
		return entries[i].rank < entries[j].rank
	})

	buf := make([]byte, 0, len(entries)*6)
	for _, e := range entries {
		buf = append(buf, byte('A'+e.suit))
		buf = append(buf, byte(e.rank), byte(e.count), ';')
	}
	return string(buf)
}
