package razz

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/razzodds/internal/deck"
	"github.com/lox/razzodds/internal/hand"
	"github.com/lox/razzodds/poker"
)

// Listener receives the final rank of every simulated game, including
// poker.InvalidRank for games without a five-card low.
type Listener func(poker.Rank)

// Simulate plays games independent deals. Each game starts from a fresh
// deck with every decided card stripped, fills our hand to HandSize with
// our decided cards plus dealt ones and reports the evaluated rank to
// listener. Games run sequentially on one stream of rng; a nil rng uses
// the package-level source.
func Simulate(ctx context.Context, decided DecidedCards, games int, rng *rand.Rand, listener Listener, logger *log.Logger) error {
	if err := decided.Validate(); err != nil {
		return err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if listener == nil {
		listener = func(poker.Rank) {}
	}

	stripped := decided.All()
	my := hand.New(HandSize, hand.ByRankPolicy)
	debug := logger.GetLevel() <= log.DebugLevel

	for game := 0; game < games; game++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		d := deck.New(rng)
		for _, c := range stripped {
			d.Strip(c)
		}

		my.Reset()
		if err := deal(my, decided.Self, d); err != nil {
			d.Destroy()
			return fmt.Errorf("game %d: %w", game+1, err)
		}

		var tr *trace
		if debug {
			tr = &trace{}
		}
		rank := evaluate(my, tr)
		if tr != nil {
			logger.Debug("game", "n", game+1, "dealt", tr.dealt, "reduced", tr.reduced, "kept", tr.kept, "rank", rank)
		}

		listener(rank)
		d.Destroy()
	}

	return nil
}

func deal(h *hand.Hand, self []poker.Card, d *deck.Deck) error {
	for _, c := range self {
		if err := h.Insert(c); err != nil {
			return err
		}
	}
	for !h.Full() {
		c, ok := d.Deal()
		if !ok {
			return ErrDeckExhausted
		}
		if err := h.Insert(c); err != nil {
			return err
		}
	}
	return nil
}
