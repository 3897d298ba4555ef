package main

import (
	"context"
	"fmt"
	"io"

	"github.com/lox/razzodds/internal/razz"
	"github.com/lox/razzodds/internal/report"
	"github.com/lox/razzodds/internal/statistics"
	"github.com/lox/razzodds/poker"
)

type OddsCmd struct {
	Rank     string   `arg:"" help:"Desired final rank (5-9, 10, J, Q or K)"`
	Cards    []string `arg:"" help:"Our three cards followed by up to seven opponent cards, e.g. SA D2 C3 HK"`
	OrBetter bool     `help:"Print the probability of RANK or better"`
}

func (c *OddsCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	rank, err := parseDesiredRank(c.Rank)
	if err != nil {
		return err
	}
	decided, err := parseDecided(c.Cards)
	if err != nil {
		return err
	}

	res, err := g.simulate(ctx, decided)
	if err != nil {
		return err
	}

	p := res.Tally.Probability(rank)
	if c.OrBetter {
		p = res.Tally.AtLeast(rank)
	}
	return g.printer(out).Probability(p)
}

type TableCmd struct {
	Cards      []string `arg:"" help:"Our three cards followed by up to seven opponent cards"`
	Cumulative bool     `help:"Print the probability of each rank or better"`
	Detailed   bool     `short:"d" help:"Add game counts, confidence intervals and run details"`
}

func (c *TableCmd) Run(ctx context.Context, g *Globals, out io.Writer) error {
	decided, err := parseDecided(c.Cards)
	if err != nil {
		return err
	}

	res, err := g.simulate(ctx, decided)
	if err != nil {
		return err
	}

	p := g.printer(out)
	if err := p.Table(&res.Tally, report.TableOptions{Cumulative: c.Cumulative, Detailed: c.Detailed}); err != nil {
		return err
	}
	if c.Detailed {
		return p.Footer(res.Tally.Games, res.Seed, res.Duration)
	}
	return nil
}

type EvaluateCmd struct {
	Cards []string `arg:"" help:"Seven distinct cards, e.g. SA D2 C2 D6 H9 H10 HQ"`
}

func (c *EvaluateCmd) Run(g *Globals, out io.Writer) error {
	if len(c.Cards) != razz.HandSize {
		return fmt.Errorf("expected %d cards, got %d: %w", razz.HandSize, len(c.Cards), poker.ErrInvalidInput)
	}
	cards := make([]poker.Card, len(c.Cards))
	for i, s := range c.Cards {
		card, err := poker.ParseCard(s)
		if err != nil {
			return fmt.Errorf("invalid card specification #%d: %w", i+1, err)
		}
		cards[i] = card
	}

	rank, err := razz.EvaluateCards(cards)
	if err != nil {
		return err
	}
	return g.printer(out).Rank(rank)
}

type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	_, err := fmt.Fprintf(out, "razz %s\n", version)
	return err
}

func parseDesiredRank(s string) (poker.Rank, error) {
	rank, err := poker.ParseRank(s)
	if err != nil || !statistics.Tracked(rank) {
		return poker.InvalidRank, fmt.Errorf("invalid desired rank %q (%s <= R <= %s): %w",
			s, razz.LowestRank, razz.HighestRank, poker.ErrInvalidInput)
	}
	return rank, nil
}

// parseDecided reads exactly three of our cards followed by up to seven
// opponent cards. Errors name the 1-based position within each group.
func parseDecided(args []string) (razz.DecidedCards, error) {
	var decided razz.DecidedCards
	if len(args) < razz.MaxSelfCards || len(args) > razz.MaxSelfCards+razz.MaxOpponentCards {
		return decided, fmt.Errorf("expected %d of our cards and up to %d opponent cards, got %d cards: %w",
			razz.MaxSelfCards, razz.MaxOpponentCards, len(args), poker.ErrInvalidInput)
	}

	for i, s := range args {
		c, err := poker.ParseCard(s)
		if i < razz.MaxSelfCards {
			if err != nil {
				return decided, fmt.Errorf("invalid my card specification #%d: %w", i+1, err)
			}
			decided.Self = append(decided.Self, c)
			continue
		}
		if err != nil {
			return decided, fmt.Errorf("invalid opponent card specification #%d: %w", i-razz.MaxSelfCards+1, err)
		}
		decided.Opponents = append(decided.Opponents, c)
	}

	if err := decided.Validate(); err != nil {
		return decided, err
	}
	return decided, nil
}
