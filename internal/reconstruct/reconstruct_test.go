package reconstruct

import (
	"testing"

	"makiaveli/internal/card"
)

func mustParse(t *testing.T, codes ...string) []card.Card {
	t.Helper()
	cards := make([]card.Card, len(codes))
	for i, c := range codes {
		parsed, err := card.Parse(c)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c, err)
		}
		cards[i] = parsed
	}
	return cards
}

func TestReconstructUnchangedAndSynthesized(t *testing.T) {
	floor := [][]card.Card{mustParse(t, "7H", "7D", "7C")}
	cross := mustParse(t, "2S")
	hand := mustParse(t, "3S", "4S", "5S")
	target := [][]card.Card{
		mustParse(t, "2S", "3S", "4S", "5S"),
		mustParse(t, "7H", "7D", "7C"),
	}

	steps, err := Reconstruct(floor, cross, hand, target)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if len(steps) != 1 {
		t.Fatalf("expected a single 'New group' step, got %v", steps)
	}
	if steps[0].Description != "New group: 2S, 3S, 4S, 5S" {
		t.Fatalf("unexpected step: %q", steps[0].Description)
	}
}

func TestReconstructExtended(t *testing.T) {
	floor := [][]card.Card{mustParse(t, "3H", "4H", "5H")}
	hand := mustParse(t, "6H")
	target := [][]card.Card{mustParse(t, "3H", "4H", "5H", "6H")}

	steps, err := Reconstruct(floor, nil, hand, target)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if len(steps) != 1 {
		t.Fatalf("expected a single 'Add' step, got %v", steps)
	}
	if steps[0].Description != "Add 6H to #1" {
		t.Fatalf("unexpected step: %q", steps[0].Description)
	}
}

// S4-style scenario: the floor's 3H-7H run is kept whole with its own 5H,
// and the hand's four fives (including a second 5H) form a new set, so the
// only step is the "New group" step.
func TestReconstructUnchangedRunAndSetFromHand(t *testing.T) {
	floor := [][]card.Card{mustParse(t, "3H", "4H", "5H", "6H", "7H")}
	hand := mustParse(t, "5S", "5D", "5C", "5H")
	target := [][]card.Card{
		mustParse(t, "3H", "4H", "5H", "6H", "7H"),
		mustParse(t, "5S", "5D", "5C", "5H"),
	}

	steps, err := Reconstruct(floor, nil, hand, target)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if len(steps) != 1 {
		t.Fatalf("expected a single 'New group' step, got %v", steps)
	}
}

func TestReconstructFailsWhenHandCardUnaccounted(t *testing.T) {
	floor := [][]card.Card{mustParse(t, "7H", "7D", "7C")}
	hand := mustParse(t, "3S", "4S", "5S")
	// target omits the hand cards entirely: an inconsistent input.
	target := [][]card.Card{mustParse(t, "7H", "7D", "7C")}

	if _, err := Reconstruct(floor, nil, hand, target); err != ErrReconstructionFailure {
		t.Fatalf("expected ErrReconstructionFailure, got %v", err)
	}
}
