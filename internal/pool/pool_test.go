package pool

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

func TestBuildRejectsThirdCopy(t *testing.T) {
	cards := mustParse(t, "7S", "7S", "7S")
	if _, err := Build(cards); err == nil {
		t.Fatalf("expected error for a third copy of 7S")
	}
}

func TestBuildAllowsTwoCopies(t *testing.T) {
	cards := mustParse(t, "7S", "7S")
	p, err := Build(cards)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if p.Total() != 2 {
		t.Fatalf("Total() = %d, want 2", p.Total())
	}
}

func TestSubRequiresSubMultiset(t *testing.T) {
	p, err := Build(mustParse(t, "3S", "4S", "5S"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := p.Sub(mustParse(t, "3S", "6S")); ok {
		t.Fatalf("expected Sub to fail for a card not in the pool")
	}
	next, ok := p.Sub(mustParse(t, "3S", "4S"))
	if !ok {
		t.Fatalf("expected Sub to succeed")
	}
	if next.Total() != 1 {
		t.Fatalf("Total() after Sub = %d, want 1", next.Total())
	}
	if p.Total() != 3 {
		t.Fatalf("original pool mutated by Sub, Total() = %d, want 3", p.Total())
	}
}

func TestSignatureIgnoresOrderAndIdentity(t *testing.T) {
	a, err := Build(mustParse(t, "3S", "4S", "7S", "7S"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build(mustParse(t, "7S", "3S", "7S", "4S"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a.Signature() != b.Signature() {
		t.Fatalf("Signature differs for equal multisets built in different orders")
	}
}

func TestSignatureDistinguishesCounts(t *testing.T) {
	a, err := Build(mustParse(t, "7S"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	b, err := Build(mustParse(t, "7S", "7S"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a.Signature() == b.Signature() {
		t.Fatalf("Signature conflated one copy of 7S with two")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p, err := Build(mustParse(t, "3S", "4S"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	clone := p.Clone()
	extra := card.Card{Rank: card.Ace, Suit: card.Clubs}
	clone[extra] = 1
	if p.Contains(extra) {
		t.Fatalf("mutating clone affected original pool")
	}
}
