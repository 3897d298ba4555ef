// Package hand implements a bounded, policy-sorted collection of cards.
package hand

import (
	"github.com/lox/razzodds/internal/collection"
	"github.com/lox/razzodds/poker"
)

// Policy decides where an inserted card goes. See collection.Placer.
type Policy = collection.Placer[poker.Card]

// AppendPolicy keeps cards in insertion order.
func AppendPolicy(before *poker.Card, c poker.Card, after *poker.Card) bool {
	return after == nil
}

// ByRankPolicy keeps cards in ascending rank order. A new card goes after
// every card of lower rank and in front of the first card of equal or
// higher rank.
func ByRankPolicy(before *poker.Card, c poker.Card, after *poker.Card) bool {
	if after == nil {
		return true
	}
	return (before == nil || c.Rank > before.Rank) && c.Rank <= after.Rank
}

// Action tells Iterate what to do after visiting a card.
type Action int

const (
	Continue Action = iota
	Break
	RemoveAndContinue
	RemoveAndBreak
)

func (a Action) removes() bool {
	return a == RemoveAndContinue || a == RemoveAndBreak
}

func (a Action) stops() bool {
	return a == Break || a == RemoveAndBreak
}

// Visitor is called for each card with the current hand length and the
// card's 0-based position.
type Visitor func(length, pos int, c poker.Card) Action

// Hand holds at most Max cards ordered by its policy. A hand never owns
// the cards it holds: removing or resetting only drops the references.
type Hand struct {
	max    int
	policy Policy
	cards  *collection.Ring[poker.Card]
}

// New creates an empty hand. A nil policy falls back to AppendPolicy.
func New(limit int, policy Policy) *Hand {
	if policy == nil {
		policy = AppendPolicy
	}
	return &Hand{
		max:    limit,
		policy: policy,
		cards:  collection.New(collection.Config[poker.Card]{Capacity: limit}),
	}
}

// Len returns the number of cards in the hand
func (h *Hand) Len() int {
	return h.cards.Len()
}

// Max returns the capacity of the hand
func (h *Hand) Max() int {
	return h.max
}

// Full reports whether another Insert would be dropped
func (h *Hand) Full() bool {
	return h.cards.Len() >= h.max
}

// Insert adds c to the hand. Once the hand is full further cards are
// silently dropped, so callers that care must check Full first.
func (h *Hand) Insert(c poker.Card) error {
	if h.Full() {
		return nil
	}
	_, err := h.cards.Insert(c, h.policy)
	return err
}

// Remove drops every card equal to c and returns how many were removed.
func (h *Hand) Remove(c poker.Card) int {
	removed := 0
	cur := h.cards.Cursor()
	for cur.Next() {
		if cur.Value() == c {
			cur.Remove()
			removed++
		}
	}
	return removed
}

// Iterate visits the cards in order. When the visitor asks for a removal
// the card is dropped and the next card is reported at the same position.
func (h *Hand) Iterate(fn Visitor) {
	Fold(h, struct{}{}, func(acc struct{}, length, pos int, c poker.Card) (struct{}, Action) {
		return acc, fn(length, pos, c)
	})
}

// Fold drives the same iteration as Iterate but threads an accumulator
// through the callbacks and returns its final value.
func Fold[A any](h *Hand, acc A, fn func(acc A, length, pos int, c poker.Card) (A, Action)) A {
	pos := 0
	cur := h.cards.Cursor()
	for cur.Next() {
		var action Action
		acc, action = fn(acc, h.cards.Len(), pos, cur.Value())
		if action.removes() {
			cur.Remove()
		} else {
			pos++
		}
		if action.stops() {
			break
		}
	}
	return acc
}

// MaxRank returns the highest rank in the hand or poker.InvalidRank if empty.
func (h *Hand) MaxRank() poker.Rank {
	best := poker.InvalidRank
	cur := h.cards.Cursor()
	for cur.Next() {
		r := cur.Value().Rank
		if best == poker.InvalidRank || r > best {
			best = r
		}
	}
	return best
}

// Reset empties the hand.
func (h *Hand) Reset() {
	h.cards.Clear(nil)
}

// Cards returns the cards in order
func (h *Hand) Cards() []poker.Card {
	return h.cards.Values()
}

func (h *Hand) String() string {
	return poker.FormatCards(h.Cards())
}
