// Package card implements the canonical card representation and the
// multiset operations the solver builds on. Two cards are interchangeable
// whenever their (rank, suit) match; the game deals from two decks, so a
// given (rank, suit) may appear up to twice across hand, floor and cross
// combined.
package card

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Suit identifies one of the four French suits.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

var suitLetters = [...]string{"S", "H", "D", "C"}
var suitNames = [...]string{"spades", "hearts", "diamonds", "clubs"}
var suitSymbols = [...]string{"♠", "♥", "♦", "♣"}

// Letter returns the canonical single-character suit code.
func (s Suit) Letter() string {
	if s < Spades || s > Clubs {
		return "?"
	}
	return suitLetters[s]
}

// Name returns the title-cased English suit name, e.g. "Spades".
func (s Suit) Name() string {
	if s < Spades || s > Clubs {
		return "Unknown"
	}
	return cases.Title(language.English).String(suitNames[s])
}

// Rank is a card rank in [1,13], where 1 denotes Ace and 13 denotes King.
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

var rankLetters = map[Rank]string{
	1: "A", 2: "2", 3: "3", 4: "4", 5: "5", 6: "6", 7: "7",
	8: "8", 9: "9", 10: "10", 11: "J", 12: "Q", 13: "K",
}

// Letter returns the canonical rank code used in a card's text form.
func (r Rank) Letter() string {
	if l, ok := rankLetters[r]; ok {
		return l
	}
	return "?"
}

// Card is a value object: two cards with the same rank and suit are
// interchangeable. Cards are comparable and usable as map keys.
type Card struct {
	Rank Rank
	Suit Suit
}

// Error is a malformed-code parsing failure; its text names the offending
// code so callers can report it without re-deriving it from the index.
type Error struct {
	Code string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %q", e.Msg, e.Code)
}

// MalformedCode constructs the error returned by Parse for an
// unrecognizable card code.
func MalformedCode(code string) error {
	return &Error{Code: code, Msg: "malformed card code"}
}

// Parse decodes a canonical card code such as "AS", "10H" or "KD".
func Parse(code string) (Card, error) {
	if len(code) < 2 || len(code) > 3 {
		return Card{}, MalformedCode(code)
	}
	suitLetter := code[len(code)-1:]
	rankLetter := code[:len(code)-1]

	var suit Suit
	switch suitLetter {
	case "S":
		suit = Spades
	case "H":
		suit = Hearts
	case "D":
		suit = Diamonds
	case "C":
		suit = Clubs
	default:
		return Card{}, MalformedCode(code)
	}

	rank, ok := parseRank(rankLetter)
	if !ok {
		return Card{}, MalformedCode(code)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

func parseRank(s string) (Rank, bool) {
	switch s {
	case "A":
		return Ace, true
	case "J":
		return Jack, true
	case "Q":
		return Queen, true
	case "K":
		return King, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 2 || n > 10 {
		return 0, false
	}
	return Rank(n), true
}

// Code returns the canonical textual code, e.g. "AS", "10H".
func (c Card) Code() string {
	return c.Rank.Letter() + c.Suit.Letter()
}

// Display renders the card as rank plus suit symbol, e.g. "10♥", matching
// spec.md §4.1's display(card) operation.
func (c Card) Display() string {
	return c.Rank.Letter() + suitSymbols[c.Suit]
}

// String implements fmt.Stringer using the same rank-plus-symbol form as
// Display.
func (c Card) String() string {
	return c.Display()
}

// pow is the total-order key: suit major, rank minor, matching spec.md
// §4.1's "total_order(a, b)" for canonical group and pool serialization.
func (c Card) pow() int {
	return int(c.Suit)*13 + int(c.Rank)
}

// Less reports whether a sorts before b under the canonical total order.
func Less(a, b Card) bool {
	return a.pow() < b.pow()
}

// Sort orders cards in place by the canonical total order.
func Sort(cards []Card) {
	sort.Slice(cards, func(i, j int) bool { return Less(cards[i], cards[j]) })
}

// Sorted returns a sorted copy, leaving cards untouched.
func Sorted(cards []Card) []Card {
	out := append([]Card(nil), cards...)
	Sort(out)
	return out
}

// Deck returns the 52 distinct (rank,suit) cards of a single deck, in
// canonical order. Makiaveli plays with two such decks pooled together;
// Deck is a building block for tests and for any future dealing code, not
// something the solver itself consumes directly.
func Deck() []Card {
	deck := make([]Card, 0, 52)
	for s := Spades; s <= Clubs; s++ {
		for r := Rank(1); r <= 13; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// JoinCodes renders a slice of cards as a comma-separated list of codes,
// used by the reconstructor when describing a group in a step sentence.
func JoinCodes(cards []Card) string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.Code()
	}
	return strings.Join(codes, ", ")
}

// MaxCopies is the number of decks Makiaveli deals from: any (rank,suit)
// may appear at most this many times across hand, floor and cross combined.
const MaxCopies = 2

// Multiset counts occurrences of each card, capped implicitly at MaxCopies
// by callers (Add returns false rather than silently exceeding it). This is
// the "count, not identity" representation spec.md §3 requires.
type Multiset map[Card]int

// NewMultiset builds a Multiset from a flat card slice.
func NewMultiset(cards []Card) Multiset {
	m := make(Multiset, len(cards))
	for _, c := range cards {
		m[c]++
	}
	return m
}

// Add increments the count for c. It reports false without modifying the
// multiset if doing so would exceed MaxCopies.
func (m Multiset) Add(c Card) bool {
	if m[c] >= MaxCopies {
		return false
	}
	m[c]++
	return true
}

// Remove decrements the count for c, deleting the key at zero. It reports
// false if c was not present.
func (m Multiset) Remove(c Card) bool {
	if m[c] <= 0 {
		return false
	}
	m[c]--
	if m[c] == 0 {
		delete(m, c)
	}
	return true
}

// Count returns the number of copies of c present.
func (m Multiset) Count(c Card) int {
	return m[c]
}

// Cards flattens the multiset back into a slice, one entry per copy, in
// canonical order. Used to render output groups.
func (m Multiset) Cards() []Card {
	out := make([]Card, 0, len(m))
	for c, n := range m {
		for i := 0; i < n; i++ {
			out = append(out, c)
		}
	}
	Sort(out)
	return out
}

// Clone returns an independent copy of m.
func (m Multiset) Clone() Multiset {
	out := make(Multiset, len(m))
	for c, n := range m {
		out[c] = n
	}
	return out
}

// Total returns the number of cards (with multiplicity) in the multiset.
func (m Multiset) Total() int {
	n := 0
	for _, c := range m {
		n += c
	}
	return n
}
