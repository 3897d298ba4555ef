package poker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput is returned for card or rank text that cannot be parsed.
var ErrInvalidInput = errors.New("invalid input")

// Suit represents a card suit
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs

	SuitCount = 4
)

// String returns the single letter used on the command line
func (s Suit) String() string {
	switch s {
	case Spades:
		return "S"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are low.
type Rank uint8

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King

	RankCount = 13

	// InvalidRank stands in for "no rank", e.g. the maximum rank of an empty hand.
	InvalidRank Rank = RankCount + 1
)

// Valid reports whether r is one of the thirteen ranks
func (r Rank) Valid() bool {
	return r < RankCount
}

// String returns the rank token (A, 2-10, J, Q, K)
func (r Rank) String() string {
	switch {
	case r == Ace:
		return "A"
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r)+1)
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	default:
		return "?"
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// Valid reports whether the card has a real suit and rank
func (c Card) Valid() bool {
	return c.Suit < SuitCount && c.Rank.Valid()
}

// Index maps the card to 0..51, spades ace first and clubs king last.
func (c Card) Index() int {
	return int(c.Suit)*RankCount + int(c.Rank)
}

// CardAt is the inverse of Card.Index.
func CardAt(i int) Card {
	return Card{Suit: Suit(i / RankCount), Rank: Rank(i % RankCount)}
}

// String returns the card code, e.g. "SA" or "C10"
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return c.Suit.String() + c.Rank.String()
}

// FormatCard is an alias for Card.String kept for symmetry with ParseCard.
func FormatCard(c Card) string {
	return c.String()
}

// ParseRank parses a rank token: A, 2-9, 10, J, Q or K (case-insensitive).
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "A":
		return Ace, nil
	case "10":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	}
	if len(s) == 1 && s[0] >= '2' && s[0] <= '9' {
		return Rank(s[0] - '1'), nil
	}
	return InvalidRank, fmt.Errorf("rank %q: %w", s, ErrInvalidInput)
}

// ParseCard parses a suit letter followed by a rank token, e.g. "SA", "d10", "hJ".
func ParseCard(s string) (Card, error) {
	if len(s) < 2 || len(s) > 3 {
		return Card{}, fmt.Errorf("card %q: %w", s, ErrInvalidInput)
	}

	var suit Suit
	switch s[0] {
	case 'S', 's':
		suit = Spades
	case 'H', 'h':
		suit = Hearts
	case 'D', 'd':
		suit = Diamonds
	case 'C', 'c':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("card %q: unknown suit: %w", s, ErrInvalidInput)
	}

	rank, err := ParseRank(s[1:])
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", s, err)
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// MustParseCard parses a card and panics on error. Intended for tests.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses every field as a card. Fields may also hold several
// whitespace or comma separated codes.
func ParseCards(fields ...string) ([]Card, error) {
	var cards []Card
	for _, field := range fields {
		for _, code := range strings.FieldsFunc(field, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		}) {
			c, err := ParseCard(code)
			if err != nil {
				return nil, err
			}
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error. Intended for tests.
func MustParseCards(fields ...string) []Card {
	cards, err := ParseCards(fields...)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins card codes with single spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// AllCards returns the 52 cards in index order.
func AllCards() []Card {
	cards := make([]Card, 0, SuitCount*RankCount)
	for i := 0; i < SuitCount*RankCount; i++ {
		cards = append(cards, CardAt(i))
	}
	return cards
}
