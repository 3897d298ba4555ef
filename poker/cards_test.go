package poker

import (
	"errors"
	"testing"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()
	aceSpades := NewCard(Spades, Ace)
	if aceSpades.Rank != Ace {
		t.Errorf("Expected rank Ace, got %d", aceSpades.Rank)
	}
	if aceSpades.Suit != Spades {
		t.Errorf("Expected suit Spades, got %d", aceSpades.Suit)
	}
	if aceSpades.String() != "SA" {
		t.Errorf("Expected 'SA', got %s", aceSpades.String())
	}

	tenClubs := NewCard(Clubs, Ten)
	if tenClubs.String() != "C10" {
		t.Errorf("Expected 'C10', got %s", tenClubs.String())
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		wantCard Card
		wantErr  bool
	}{
		{input: "S8", wantCard: Card{Spades, Eight}},
		{input: "dk", wantCard: Card{Diamonds, King}},
		{input: "Ca", wantCard: Card{Clubs, Ace}},
		{input: "hJ", wantCard: Card{Hearts, Jack}},
		{input: "SQ", wantCard: Card{Spades, Queen}},
		{input: "H10", wantCard: Card{Hearts, Ten}},
		{input: "c2", wantCard: Card{Clubs, Two}},
		{input: "SS", wantErr: true},
		{input: "S0", wantErr: true},
		{input: "S1", wantErr: true},
		{input: "S11", wantErr: true},
		{input: "a2", wantErr: true},
		{input: "S", wantErr: true},
		{input: "", wantErr: true},
		{input: "H100", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCard(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("ParseCard(%q) error %v does not wrap ErrInvalidInput", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCard(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.wantCard {
				t.Errorf("ParseCard(%q) = %v, want %v", tt.input, got, tt.wantCard)
			}
		})
	}
}

func TestParseRank(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    Rank
		wantErr bool
	}{
		{"A", Ace, false},
		{"a", Ace, false},
		{"8", Eight, false},
		{"K", King, false},
		{"10", Ten, false},
		{"j", Jack, false},
		{"1", InvalidRank, true},
		{"ace", InvalidRank, true},
		{"11", InvalidRank, true},
		{"", InvalidRank, true},
	}

	for _, tt := range tests {
		got, err := ParseRank(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRank(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRank(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRankString(t *testing.T) {
	t.Parallel()
	cases := map[Rank]string{
		Ace:         "A",
		Eight:       "8",
		Ten:         "10",
		King:        "K",
		InvalidRank: "?",
	}
	for r, want := range cases {
		if got := r.String(); got != want {
			t.Errorf("Rank(%d).String() = %q, want %q", r, got, want)
		}
	}
}

func TestAll52CardsRoundTrip(t *testing.T) {
	t.Parallel()
	cards := AllCards()
	if len(cards) != 52 {
		t.Fatalf("Expected 52 cards, got %d", len(cards))
	}

	seen := make(map[Card]bool)
	for i, c := range cards {
		if seen[c] {
			t.Errorf("Duplicate card %v", c)
		}
		seen[c] = true

		if c.Index() != i {
			t.Errorf("%v.Index() = %d, want %d", c, c.Index(), i)
		}
		if CardAt(i) != c {
			t.Errorf("CardAt(%d) = %v, want %v", i, CardAt(i), c)
		}

		parsed, err := ParseCard(FormatCard(c))
		if err != nil {
			t.Errorf("ParseCard(%q) failed: %v", c.String(), err)
			continue
		}
		if parsed != c {
			t.Errorf("Round trip %v -> %q -> %v", c, c.String(), parsed)
		}
	}

	if cards[0] != (Card{Spades, Ace}) || cards[51] != (Card{Clubs, King}) {
		t.Errorf("Unexpected index order: first %v, last %v", cards[0], cards[51])
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()
	cards, err := ParseCards("SA D2", "c10,HK")
	if err != nil {
		t.Fatalf("ParseCards failed: %v", err)
	}
	want := []Card{{Spades, Ace}, {Diamonds, Two}, {Clubs, Ten}, {Hearts, King}}
	if len(cards) != len(want) {
		t.Fatalf("Expected %d cards, got %d", len(want), len(cards))
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("card %d = %v, want %v", i, cards[i], want[i])
		}
	}
	if got := FormatCards(cards); got != "SA D2 C10 HK" {
		t.Errorf("FormatCards = %q", got)
	}

	if _, err := ParseCards("SA", "XX"); err == nil {
		t.Error("Expected error for invalid card")
	}
}

func BenchmarkParseCard(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = ParseCard("H10")
	}
}
