// Package razz evaluates seven-card lowball hands and estimates the
// distribution of final ranks by repeated random deals.
package razz

import (
	"errors"
	"fmt"

	"github.com/lox/razzodds/internal/statistics"
	"github.com/lox/razzodds/poker"
)

const (
	// HandSize is the number of cards each player ends up with.
	HandSize = 7
	// EvaluatedCards is the number of distinct ranks that make a low.
	EvaluatedCards = 5

	MaxSelfCards     = 3
	MaxOpponentCards = 7

	LowestRank  = statistics.LowestTracked
	HighestRank = statistics.HighestTracked
)

var (
	ErrDuplicateCard = fmt.Errorf("duplicate card: %w", poker.ErrInvalidInput)
	ErrTooManyCards  = fmt.Errorf("too many cards: %w", poker.ErrInvalidInput)
	ErrDeckExhausted = errors.New("deck exhausted")
)

// DecidedCards are the cards known before a game is dealt: our own up to
// three starting cards and the cards showing in front of opponents.
type DecidedCards struct {
	Self      []poker.Card
	Opponents []poker.Card
}

// All returns our cards followed by the opponents' cards
func (d DecidedCards) All() []poker.Card {
	all := make([]poker.Card, 0, len(d.Self)+len(d.Opponents))
	all = append(all, d.Self...)
	return append(all, d.Opponents...)
}

// Validate checks the card counts and that no card appears twice. The
// error names the offending card and its 1-based position in its group.
func (d DecidedCards) Validate() error {
	if len(d.Self) > MaxSelfCards {
		return fmt.Errorf("%d of our cards given, at most %d allowed: %w", len(d.Self), MaxSelfCards, ErrTooManyCards)
	}
	if len(d.Opponents) > MaxOpponentCards {
		return fmt.Errorf("%d opponent cards given, at most %d allowed: %w", len(d.Opponents), MaxOpponentCards, ErrTooManyCards)
	}

	seen := make(map[poker.Card]bool, len(d.Self)+len(d.Opponents))
	check := func(group string, cards []poker.Card) error {
		for i, c := range cards {
			if !c.Valid() {
				return fmt.Errorf("%s card #%d: %w", group, i+1, poker.ErrInvalidInput)
			}
			if seen[c] {
				return fmt.Errorf("%s card #%d (%s): %w", group, i+1, c, ErrDuplicateCard)
			}
			seen[c] = true
		}
		return nil
	}

	if err := check("my", d.Self); err != nil {
		return err
	}
	return check("opponent", d.Opponents)
}
