// Package solve implements the partition enumerator: the recursive search
// that repartitions a card pool into legal groups. It is the combinatorial
// core of the solver (spec.md §4.3).
//
// The search generalizes the teacher's move-generation shape
// (bot/internal/generator.go's findAll*/findBeating* functions, which each
// enumerate one category of legal play for a fixed hand) from "list every
// candidate beating a fixed previous play" to "list every candidate group
// containing a fixed required card, then recurse on what's left." The
// greedy priority-bucket partitioning in bot/internal/organizer.go
// (ExtractBombs → ExtractStraights → ExtractSets) is generalized the same
// way: one greedy pass becomes full backtracking with memoized failure.
package solve

import (
	"context"
	"errors"
	"sort"

	"makiaveli/internal/card"
	"makiaveli/internal/group"
	"makiaveli/internal/pool"
)

// ErrTimeout is returned when the search deadline elapses before the
// enumerator reaches a verdict. It is distinct from a negative result
// (NoSolution is reported as solvable=false, not an error) per spec.md §7.
var ErrTimeout = errors.New("solve: search deadline exceeded")

// Partition is a multiset of legal groups. Groups is nil for a failed
// search (solvable=false).
type Partition struct {
	Groups [][]card.Card
}

// Solve searches for a partition of a subset of p into legal groups such
// that every card required calls for is placed at least that many times,
// and any surplus copy of a required card's value may be left out as an
// optional cross anchor. required counts by card value, not by copy
// identity: a (rank,suit) present in p more times than required asks for
// has its extra copies treated as optional. It reports (partition, true,
// nil) on success, (zero value, false, nil) on exhausted search, and
// (zero value, false, ErrTimeout) if ctx's deadline elapses first.
func Solve(ctx context.Context, p pool.Pool, required card.Multiset) (Partition, bool, error) {
	s := &searcher{
		required: required,
		original: p.Clone(),
		memo:     make(map[string]memoEntry),
	}
	groups, ok, err := s.search(ctx, p)
	if err != nil {
		return Partition{}, false, err
	}
	if !ok {
		return Partition{}, false, nil
	}
	return Partition{Groups: groups}, true, nil
}

type memoEntry struct {
	groups [][]card.Card
	ok     bool
}

type searcher struct {
	required card.Multiset
	original pool.Pool
	memo     map[string]memoEntry
}

func (s *searcher) search(ctx context.Context, p pool.Pool) ([][]card.Card, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, ErrTimeout
	}

	sig := p.Signature()
	if cached, ok := s.memo[sig]; ok {
		return cached.groups, cached.ok, nil
	}

	current, needsWork := firstRequired(p, s.required, s.original)
	if !needsWork {
		s.memo[sig] = memoEntry{groups: nil, ok: true}
		return nil, true, nil
	}

	for _, cand := range candidateGroups(p, current) {
		next, ok := p.Sub(cand.cards)
		if !ok {
			continue
		}
		tail, found, err := s.search(ctx, next)
		if err != nil {
			return nil, false, err
		}
		if found {
			groups := make([][]card.Card, 0, len(tail)+1)
			groups = append(groups, cand.cards)
			groups = append(groups, tail...)
			s.memo[sig] = memoEntry{groups: groups, ok: true}
			return groups, true, nil
		}
	}

	s.memo[sig] = memoEntry{groups: nil, ok: false}
	return nil, false, nil
}

// firstRequired returns the smallest (by canonical total order) card in p
// still owed a mandatory placement, per spec.md §4.3 point 1. A card value
// is still required if fewer copies have been placed so far (original
// count minus current count) than required calls for; copies beyond that
// count are optional surplus (e.g. a cross card sharing a value with a
// mandatory hand card).
func firstRequired(p pool.Pool, required card.Multiset, original pool.Pool) (card.Card, bool) {
	var candidates []card.Card
	for c, n := range p {
		if n <= 0 {
			continue
		}
		placed := original[c] - n
		if required[c]-placed > 0 {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return card.Card{}, false
	}
	card.Sort(candidates)
	return candidates[0], true
}

type candidate struct {
	cards []card.Card
	isRun bool
}

// candidateGroups enumerates every legal group containing must, drawn from
// p, ordered per spec.md §4.3: runs before sets, larger before smaller,
// lexicographically smaller before larger as a final tie-break.
func candidateGroups(p pool.Pool, must card.Card) []candidate {
	seen := make(map[string]bool)
	var out []candidate

	add := func(cards []card.Card, isRun bool) {
		sorted := card.Sorted(cards)
		key := card.JoinCodes(sorted)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, candidate{cards: sorted, isRun: isRun})
	}

	for _, run := range runCandidates(p, must) {
		add(run, true)
	}
	for _, set := range setCandidates(p, must) {
		add(set, false)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].isRun != out[j].isRun {
			return out[i].isRun // runs before sets
		}
		if len(out[i].cards) != len(out[j].cards) {
			return len(out[i].cards) > len(out[j].cards) // larger before smaller
		}
		return lexLess(out[i].cards, out[j].cards)
	})
	return out
}

func lexLess(a, b []card.Card) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if card.Less(a[i], b[i]) {
			return true
		}
		if card.Less(b[i], a[i]) {
			return false
		}
	}
	return len(a) < len(b)
}

// setCandidates enumerates every Set containing must: must plus one
// representative from each non-empty subset (size ≥ 2) of the other three
// suits that are present at must's rank.
func setCandidates(p pool.Pool, must card.Card) [][]card.Card {
	var otherSuits []card.Suit
	for s := card.Spades; s <= card.Clubs; s++ {
		if s == must.Suit {
			continue
		}
		if p.Contains(card.Card{Rank: must.Rank, Suit: s}) {
			otherSuits = append(otherSuits, s)
		}
	}

	var out [][]card.Card
	n := len(otherSuits)
	for mask := 1; mask < (1 << n); mask++ {
		if bitsSet(mask) < 2 {
			continue
		}
		group := []card.Card{must}
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				group = append(group, card.Card{Rank: must.Rank, Suit: otherSuits[i]})
			}
		}
		out = append(out, group)
	}
	return out
}

func bitsSet(mask int) int {
	n := 0
	for mask != 0 {
		n += mask & 1
		mask >>= 1
	}
	return n
}

// runPosition is one rank present in a suit, labeled with its position in
// a particular Ace projection (low: Ace=1; high: Ace=14) and the real
// card.Rank to use when materializing a candidate.
type runPosition struct {
	effective int
	actual    card.Rank
}

// runCandidates enumerates every Run containing must: sub-intervals of
// length ≥ 3 of the maximal contiguous rank window (in must's suit) that
// contains must, under both the Ace-low and Ace-high projections. A run
// that would need both projections at once (wrapping, e.g. K,A,2) is never
// produced because the two projections are searched independently.
func runCandidates(p pool.Pool, must card.Card) [][]card.Card {
	var out [][]card.Card
	out = append(out, windowCandidates(presentLow(p, must.Suit), effectiveLow(must), must.Suit)...)
	out = append(out, windowCandidates(presentHigh(p, must.Suit), effectiveHigh(must), must.Suit)...)
	return out
}

func effectiveLow(c card.Card) int {
	return int(c.Rank)
}

func effectiveHigh(c card.Card) int {
	if c.Rank == card.Ace {
		return 14
	}
	return int(c.Rank)
}

func presentLow(p pool.Pool, suit card.Suit) []runPosition {
	var out []runPosition
	for r := card.Rank(1); r <= 13; r++ {
		if p.Contains(card.Card{Rank: r, Suit: suit}) {
			out = append(out, runPosition{effective: int(r), actual: r})
		}
	}
	return out
}

func presentHigh(p pool.Pool, suit card.Suit) []runPosition {
	var out []runPosition
	for r := card.Rank(2); r <= 13; r++ {
		if p.Contains(card.Card{Rank: r, Suit: suit}) {
			out = append(out, runPosition{effective: int(r), actual: r})
		}
	}
	if p.Contains(card.Card{Rank: card.Ace, Suit: suit}) {
		out = append(out, runPosition{effective: 14, actual: card.Ace})
	}
	return out
}

// windowCandidates finds the maximal contiguous block of positions around
// targetEffective and enumerates every sub-interval of length ≥ 3 that
// still contains it.
func windowCandidates(positions []runPosition, targetEffective int, suit card.Suit) [][]card.Card {
	idx := -1
	for i, pos := range positions {
		if pos.effective == targetEffective {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	start, end := idx, idx
	for start > 0 && positions[start-1].effective == positions[start].effective-1 {
		start--
	}
	for end < len(positions)-1 && positions[end+1].effective == positions[end].effective+1 {
		end++
	}

	var out [][]card.Card
	for i := start; i <= idx; i++ {
		for j := idx; j <= end; j++ {
			if j-i+1 < 3 {
				continue
			}
			window := make([]card.Card, 0, j-i+1)
			for k := i; k <= j; k++ {
				window = append(window, card.Card{Rank: positions[k].actual, Suit: suit})
			}
			out = append(out, window)
		}
	}
	return out
}

// Valid is a thin check used by callers that already have a candidate
// partition and want to confirm it obeys the group predicate, mirroring
// how the teacher's domain.IsValidSet gate precedes its combination logic.
func Valid(groups [][]card.Card) bool {
	for _, g := range groups {
		if !group.IsValidGroup(g) {
			return false
		}
	}
	return true
}
