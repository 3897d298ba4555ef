// Package deck implements a 52-card deck that deals uniformly at random
// from the cards still present.
package deck

import (
	rand "math/rand/v2"

	"github.com/lox/razzodds/internal/collection"
	"github.com/lox/razzodds/poker"
)

// Size is the number of cards in a full deck.
const Size = poker.SuitCount * poker.RankCount

const full uint64 = 1<<Size - 1

// Deck tracks which cards are still available with one bit per card index.
// Cards that have been dealt are kept, in deal order, for inspection.
type Deck struct {
	present   uint64
	remaining int
	rng       *rand.Rand
	dealt     *collection.Ring[poker.Card]
}

// New returns a full deck drawing from rng. A nil rng uses the
// package-level source of math/rand/v2.
func New(rng *rand.Rand) *Deck {
	return &Deck{
		present:   full,
		remaining: Size,
		rng:       rng,
		dealt:     collection.New(collection.Config[poker.Card]{Capacity: Size}),
	}
}

// Remaining returns the number of cards that can still be dealt
func (d *Deck) Remaining() int {
	return d.remaining
}

// IsAvailable reports whether c is still in the deck
func (d *Deck) IsAvailable(c poker.Card) bool {
	if !c.Valid() {
		return false
	}
	return d.present&bit(c) != 0
}

// Strip removes c from the deck without dealing it. Stripping a card that
// is already gone does nothing.
func (d *Deck) Strip(c poker.Card) {
	if !d.IsAvailable(c) {
		return
	}
	d.present &^= bit(c)
	d.remaining--
}

// Deal removes and returns a uniformly chosen card. It returns false once
// the deck is exhausted.
func (d *Deck) Deal() (poker.Card, bool) {
	if d.remaining == 0 {
		return poker.Card{}, false
	}

	target := d.intN(d.remaining)
	for i := 0; i < Size; i++ {
		if d.present&(1<<i) == 0 {
			continue
		}
		if target > 0 {
			target--
			continue
		}

		c := poker.CardAt(i)
		d.present &^= 1 << i
		d.remaining--
		// Capacity is Size and each card is dealt at most once.
		_, _ = d.dealt.Insert(c, appendDealt)
		return c, true
	}

	// Unreachable while remaining matches the bitmap.
	return poker.Card{}, false
}

// Dealt returns the cards handed out so far in the order they were dealt.
func (d *Deck) Dealt() []poker.Card {
	return d.dealt.Values()
}

// Destroy empties the deck. Further deals fail and no card is available.
func (d *Deck) Destroy() {
	d.present = 0
	d.remaining = 0
	d.dealt.Clear(nil)
}

func (d *Deck) intN(n int) int {
	if d.rng == nil {
		return rand.IntN(n)
	}
	return d.rng.IntN(n)
}

func bit(c poker.Card) uint64 {
	return 1 << c.Index()
}

func appendDealt(_ *poker.Card, _ poker.Card, after *poker.Card) bool {
	return after == nil
}
