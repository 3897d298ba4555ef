package razz

import (
	"fmt"

	"github.com/lox/razzodds/internal/hand"
	"github.com/lox/razzodds/poker"
)

// Evaluate returns the Razz rank of a rank-sorted hand: the highest card
// of the best five distinct ranks, or poker.InvalidRank when the hand holds
// fewer than five distinct ranks. The hand is reduced in place.
func Evaluate(h *hand.Hand) poker.Rank {
	return evaluate(h, nil)
}

// trace captures the hand at each stage of an evaluation for debug output.
type trace struct {
	dealt   string
	reduced string
	kept    string
}

func evaluate(h *hand.Hand, tr *trace) poker.Rank {
	if tr != nil {
		tr.dealt = h.String()
	}

	hand.Fold(h, poker.InvalidRank, func(prev poker.Rank, _, pos int, c poker.Card) (poker.Rank, hand.Action) {
		if pos > 0 && c.Rank == prev {
			return prev, hand.RemoveAndContinue
		}
		return c.Rank, hand.Continue
	})
	if tr != nil {
		tr.reduced = h.String()
	}

	if h.Len() < EvaluatedCards {
		return poker.InvalidRank
	}

	h.Iterate(func(_, pos int, _ poker.Card) hand.Action {
		if pos >= EvaluatedCards {
			return hand.RemoveAndContinue
		}
		return hand.Continue
	})
	if tr != nil {
		tr.kept = h.String()
	}

	return h.MaxRank()
}

// EvaluateCards sorts cards into a fresh hand and evaluates it. It accepts
// at most HandSize distinct cards.
func EvaluateCards(cards []poker.Card) (poker.Rank, error) {
	if len(cards) > HandSize {
		return poker.InvalidRank, fmt.Errorf("%d cards given, a hand holds %d: %w", len(cards), HandSize, ErrTooManyCards)
	}
	h := hand.New(HandSize, hand.ByRankPolicy)
	seen := make(map[poker.Card]bool, len(cards))
	for i, c := range cards {
		if !c.Valid() {
			return poker.InvalidRank, fmt.Errorf("card #%d: %w", i+1, poker.ErrInvalidInput)
		}
		if seen[c] {
			return poker.InvalidRank, fmt.Errorf("card #%d (%s): %w", i+1, c, ErrDuplicateCard)
		}
		seen[c] = true
		if err := h.Insert(c); err != nil {
			return poker.InvalidRank, err
		}
	}
	return Evaluate(h), nil
}
