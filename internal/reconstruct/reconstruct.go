// Package reconstruct turns an initial floor partition plus a target
// partition produced by solve into an ordered, human-readable list of
// rearrangement steps (spec.md §4.4). Its only hard contract is
// replayability: the described moves, applied to the initial state, must
// reach the target partition. Step wording is best-effort, matching the
// teacher's own best-effort greedy structuring in
// bot/internal/organizer.go, and step descriptions borrow the small
// tagged-struct style of internal/app/events.go for naming what happened.
package reconstruct

import (
	"errors"
	"fmt"

	"makiaveli/internal/card"
)

// Step is one human-readable rearrangement instruction.
type Step struct {
	Description string
}

// ErrReconstructionFailure indicates an internal consistency violation: the
// enumerator handed the reconstructor a target partition that does not
// actually account for every floor and hand card. It signals a bug in the
// solver/driver contract, not a player-facing outcome.
var ErrReconstructionFailure = errors.New("reconstruct: target partition does not account for all floor and hand cards")

type source struct {
	label string
	cards card.Multiset
}

// classification of one target group relative to the initial floor.
type kind int

const (
	unchanged kind = iota
	extended
	synthesized
)

type classified struct {
	group  []card.Card
	kind   kind
	base   source // for unchanged/extended
	broken []source
	added  []card.Card
}

// Reconstruct matches floor (the initial table partition) and cross
// against target (the enumerator's output) and returns the ordered step
// list describing how to get from one to the other.
func Reconstruct(floor [][]card.Card, cross []card.Card, hand []card.Card, target [][]card.Card) ([]Step, error) {
	sources := make([]source, len(floor))
	for i, g := range floor {
		sources[i] = source{label: fmt.Sprintf("#%d", i+1), cards: card.NewMultiset(g)}
	}
	used := make([]bool, len(sources))
	assignedBase := make([]int, len(target)) // index into sources, or -1
	for i := range assignedBase {
		assignedBase[i] = -1
	}

	// Pass 1: Unchanged — exact multiset match.
	for ti, t := range target {
		tm := card.NewMultiset(t)
		for si, s := range sources {
			if used[si] {
				continue
			}
			if multisetEqual(tm, s.cards) {
				used[si] = true
				assignedBase[ti] = si
				break
			}
		}
	}

	// Pass 2: Extended — source is a proper card-subset of target. Prefer
	// the largest unused source that fits, so a bigger preserved fragment
	// wins over a smaller one.
	for ti, t := range target {
		if assignedBase[ti] != -1 {
			continue
		}
		tm := card.NewMultiset(t)
		best := -1
		for si, s := range sources {
			if used[si] {
				continue
			}
			if multisetSubset(s.cards, tm) && len(s.cards.Cards()) < len(t) {
				if best == -1 || len(sources[si].cards.Cards()) > len(sources[best].cards.Cards()) {
					best = si
				}
			}
		}
		if best != -1 {
			used[best] = true
			assignedBase[ti] = best
		}
	}

	// Every source not used as an Unchanged or Extended base is "broken":
	// its cards feed into Synthesized groups alongside the hand and cross.
	var brokenSources []source
	for si, s := range sources {
		if !used[si] {
			brokenSources = append(brokenSources, s)
		}
	}

	available := card.NewMultiset(hand)
	for _, c := range cross {
		available[c]++
	}
	for _, s := range brokenSources {
		for c, n := range s.cards {
			available[c] += n
		}
	}

	results := make([]classified, len(target))
	for ti, t := range target {
		if assignedBase[ti] != -1 {
			si := assignedBase[ti]
			s := sources[si]
			if len(s.cards) == len(t) && multisetEqual(s.cards, card.NewMultiset(t)) {
				results[ti] = classified{group: t, kind: unchanged, base: s}
				continue
			}
			added, ok := multisetDiffCards(card.NewMultiset(t), s.cards)
			if !ok {
				return nil, ErrReconstructionFailure
			}
			if err := draw(available, added); err != nil {
				return nil, err
			}
			results[ti] = classified{group: t, kind: extended, base: s, added: added}
			continue
		}

		tm := card.NewMultiset(t)
		if err := draw(available, tm.Cards()); err != nil {
			return nil, err
		}
		var contributors []source
		for _, s := range brokenSources {
			if overlaps(s.cards, tm) {
				contributors = append(contributors, s)
			}
		}
		results[ti] = classified{group: t, kind: synthesized, broken: contributors}
	}

	crossMultiset := card.NewMultiset(cross)
	for c, n := range available {
		if n > crossMultiset[c] {
			return nil, ErrReconstructionFailure
		}
	}

	return emitSteps(results), nil
}

// draw removes cards from available, reporting ErrReconstructionFailure if
// any card is not present in sufficient quantity.
func draw(available card.Multiset, cards []card.Card) error {
	for _, c := range cards {
		if available[c] <= 0 {
			return ErrReconstructionFailure
		}
		available[c]--
		if available[c] == 0 {
			delete(available, c)
		}
	}
	return nil
}

func emitSteps(results []classified) []Step {
	var steps []Step

	for _, r := range results {
		if r.kind != synthesized {
			continue
		}
		for _, s := range r.broken {
			steps = append(steps, Step{
				Description: fmt.Sprintf("Split %s, take the cards it shares with the new group", s.label),
			})
		}
	}
	for _, r := range results {
		if r.kind != extended {
			continue
		}
		steps = append(steps, Step{
			Description: fmt.Sprintf("Add %s to %s", card.JoinCodes(r.added), r.base.label),
		})
	}
	for _, r := range results {
		if r.kind != synthesized {
			continue
		}
		steps = append(steps, Step{
			Description: fmt.Sprintf("New group: %s", card.JoinCodes(card.Sorted(r.group))),
		})
	}

	return steps
}

func multisetEqual(a, b card.Multiset) bool {
	if len(a) != len(b) {
		return false
	}
	for c, n := range a {
		if b[c] != n {
			return false
		}
	}
	return true
}

// multisetSubset reports whether every card in sub appears in super with
// at least the same multiplicity.
func multisetSubset(sub, super card.Multiset) bool {
	for c, n := range sub {
		if super[c] < n {
			return false
		}
	}
	return true
}

// multisetDiffCards returns super minus sub as a flat card slice, or false
// if sub is not actually a sub-multiset of super.
func multisetDiffCards(super, sub card.Multiset) ([]card.Card, bool) {
	if !multisetSubset(sub, super) {
		return nil, false
	}
	var out []card.Card
	for c, n := range super {
		remaining := n - sub[c]
		for i := 0; i < remaining; i++ {
			out = append(out, c)
		}
	}
	card.Sort(out)
	return out, true
}

func overlaps(a, b card.Multiset) bool {
	for c := range a {
		if b[c] > 0 {
			return true
		}
	}
	return false
}
