// Package driver assembles the one external entry point the core exposes
// (spec.md §6): it parses and validates a request, runs the enumerator and
// reconstructor, and serializes the result. Its error taxonomy and
// sentinel-error plumbing follow the teacher's app.Service
// (Server/internal/app/service.go).
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"makiaveli/internal/card"
	"makiaveli/internal/config"
	"makiaveli/internal/group"
	"makiaveli/internal/pool"
	"makiaveli/internal/reconstruct"
	"makiaveli/internal/solve"
)

// Kind names the taxonomy entries from spec.md §7. NoSolution is
// deliberately absent: it is reported as Output.Solvable == false, not an
// error.
type Kind string

const (
	KindMalformedCode         Kind = "MalformedCode"
	KindInvalidInput          Kind = "InvalidInput"
	KindTimeout               Kind = "Timeout"
	KindReconstructionFailure Kind = "ReconstructionFailure"
)

var (
	// ErrCrossTooLong signals a cross list longer than the table allows.
	ErrCrossTooLong = errors.New("driver: cross list longer than the table's anchor slots")
	// ErrFloorGroupInvalid signals a floor group that is not a legal group
	// on entry (this session's resolution of the §9 open question: reject
	// rather than silently pool the cards).
	ErrFloorGroupInvalid = errors.New("driver: floor group is not a valid group")
)

// Input is the request shape from spec.md §6.
type Input struct {
	Hand        []string
	FloorGroups [][]string
	Cross       []string
	DeadlineMS  *int
}

// CardView is the wire shape used for cards inside target_groups.
type CardView struct {
	Code    string `json:"code"`
	Rank    int    `json:"rank"`
	Suit    string `json:"suit"`
	Display string `json:"display"`
}

// Step is one reconstructed rearrangement instruction.
type Step struct {
	Description string `json:"description"`
}

// Output is the response shape from spec.md §6.
type Output struct {
	Solvable       bool         `json:"solvable"`
	ElapsedSeconds float64      `json:"elapsed_seconds"`
	TargetGroups   [][]CardView `json:"target_groups,omitempty"`
	Steps          []Step       `json:"steps,omitempty"`
	RemainingCross []string     `json:"remaining_cross"`
	Error          Kind         `json:"error,omitempty"`
}

// Solve is the core's single entry point.
func Solve(in Input) Output {
	start := time.Now()
	elapsed := func() float64 { return time.Since(start).Seconds() }

	hand, err := parseCodes(in.Hand)
	if err != nil {
		return Output{Error: KindMalformedCode, ElapsedSeconds: elapsed()}
	}
	floorGroups := make([][]card.Card, len(in.FloorGroups))
	for i, codes := range in.FloorGroups {
		cards, err := parseCodes(codes)
		if err != nil {
			return Output{Error: KindMalformedCode, ElapsedSeconds: elapsed()}
		}
		floorGroups[i] = cards
	}
	cross, err := parseCodes(in.Cross)
	if err != nil {
		return Output{Error: KindMalformedCode, ElapsedSeconds: elapsed()}
	}

	if err := validate(floorGroups, cross); err != nil {
		return Output{Error: KindInvalidInput, ElapsedSeconds: elapsed()}
	}

	var floorFlat []card.Card
	for _, g := range floorGroups {
		floorFlat = append(floorFlat, g...)
	}

	allCards := append(append(append([]card.Card{}, hand...), floorFlat...), cross...)
	p, err := pool.Build(allCards)
	if err != nil {
		return Output{Error: KindInvalidInput, ElapsedSeconds: elapsed()}
	}

	required := card.NewMultiset(append(append([]card.Card{}, hand...), floorFlat...))

	ctx, cancel := deadlineContext(in.DeadlineMS)
	defer cancel()

	partition, ok, err := solve.Solve(ctx, p, required)
	if err != nil {
		if errors.Is(err, solve.ErrTimeout) {
			return Output{Error: KindTimeout, ElapsedSeconds: elapsed()}
		}
		return Output{Error: KindReconstructionFailure, ElapsedSeconds: elapsed()}
	}
	if !ok {
		return Output{Solvable: false, ElapsedSeconds: elapsed(), RemainingCross: in.Cross}
	}

	steps, err := reconstruct.Reconstruct(floorGroups, cross, hand, partition.Groups)
	if err != nil {
		return Output{Error: KindReconstructionFailure, ElapsedSeconds: elapsed()}
	}

	return Output{
		Solvable:       true,
		ElapsedSeconds: elapsed(),
		TargetGroups:   renderGroups(partition.Groups),
		Steps:          renderSteps(steps),
		RemainingCross: remainingCross(cross, hand, floorFlat, partition.Groups),
	}
}

func parseCodes(codes []string) ([]card.Card, error) {
	out := make([]card.Card, len(codes))
	for i, code := range codes {
		c, err := card.Parse(code)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func validate(floorGroups [][]card.Card, cross []card.Card) error {
	if len(cross) > config.Get().MaxCrossCards {
		return ErrCrossTooLong
	}
	for _, g := range floorGroups {
		if len(g) < 3 || !group.IsValidGroup(g) {
			return fmt.Errorf("%w: %s", ErrFloorGroupInvalid, card.JoinCodes(g))
		}
	}
	return nil
}

func deadlineContext(deadlineMS *int) (context.Context, context.CancelFunc) {
	d := config.Get().DefaultDeadline()
	if deadlineMS != nil {
		d = time.Duration(*deadlineMS) * time.Millisecond
	}
	return context.WithTimeout(context.Background(), d)
}

func renderGroups(groups [][]card.Card) [][]CardView {
	out := make([][]CardView, len(groups))
	for i, g := range groups {
		view := make([]CardView, len(g))
		for j, c := range g {
			view[j] = CardView{Code: c.Code(), Rank: int(c.Rank), Suit: c.Suit.Name(), Display: c.Display()}
		}
		out[i] = view
	}
	return out
}

func renderSteps(steps []reconstruct.Step) []Step {
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = Step{Description: s.Description}
	}
	return out
}

// remainingCross reports which cross cards were not incorporated into any
// target group: the cards in the target partition beyond what hand and
// floor already account for are exactly the incorporated cross cards.
func remainingCross(cross, hand, floorFlat []card.Card, groups [][]card.Card) []string {
	required := card.NewMultiset(append(append([]card.Card{}, hand...), floorFlat...))
	var incorporated []card.Card
	for _, g := range groups {
		for _, c := range g {
			if required[c] > 0 {
				required[c]--
				continue
			}
			incorporated = append(incorporated, c)
		}
	}
	incorporatedSet := card.NewMultiset(incorporated)
	var remaining []string
	for _, c := range cross {
		if incorporatedSet[c] > 0 {
			incorporatedSet[c]--
			continue
		}
		remaining = append(remaining, c.Code())
	}
	return remaining
}
