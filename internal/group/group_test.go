package group

import (
	"testing"

	"makiaveli/internal/card"
)

func mustParseAll(t *testing.T, codes ...string) []card.Card {
	t.Helper()
	cards := make([]card.Card, len(codes))
	for i, code := range codes {
		c, err := card.Parse(code)
		if err != nil {
			t.Fatalf("Parse(%q): %v", code, err)
		}
		cards[i] = c
	}
	return cards
}

func TestIsValidGroup(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
		want  bool
		kind  Kind
	}{
		{name: "too short", codes: []string{"3S", "4S"}, want: false},
		{name: "triple set", codes: []string{"7S", "7H", "7D"}, want: true, kind: Set},
		{name: "quad set", codes: []string{"7S", "7H", "7D", "7C"}, want: true, kind: Set},
		{name: "set with duplicate suit rejected", codes: []string{"7S", "7S", "7D"}, want: false},
		{name: "run low", codes: []string{"3S", "4S", "5S"}, want: true, kind: Run},
		{name: "run ace low", codes: []string{"AS", "2S", "3S"}, want: true, kind: Run},
		{name: "run ace high", codes: []string{"QS", "KS", "AS"}, want: true, kind: Run},
		{name: "run ace high four", codes: []string{"JS", "QS", "KS", "AS"}, want: true, kind: Run},
		{name: "run wraps rejected", codes: []string{"KS", "AS", "2S"}, want: false},
		{name: "run mixed suits rejected", codes: []string{"3S", "4H", "5S"}, want: false},
		{name: "run duplicate rank rejected", codes: []string{"3S", "3S", "4S"}, want: false},
		{name: "non-contiguous rejected", codes: []string{"3S", "5S", "7S"}, want: false},
		{name: "five of a kind impossible", codes: []string{"7S", "7H", "7D", "7C", "7S"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := mustParseAll(t, tt.codes...)
			kind, ok := Classify(cards)
			if ok != tt.want {
				t.Fatalf("Classify(%v) ok = %v, want %v", tt.codes, ok, tt.want)
			}
			if ok && kind != tt.kind {
				t.Fatalf("Classify(%v) kind = %v, want %v", tt.codes, kind, tt.kind)
			}
			if IsValidGroup(cards) != tt.want {
				t.Fatalf("IsValidGroup(%v) = %v, want %v", tt.codes, !tt.want, tt.want)
			}
		})
	}
}
