package statistics

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/lox/razzodds/poker"
)

// The range of final ranks a Razz hand can take. Anything else is an
// evaluation that produced no five-card low.
const (
	LowestTracked  = poker.Five
	HighestTracked = poker.King
)

// Tracked reports whether r falls in the histogram range
func Tracked(r poker.Rank) bool {
	return r >= LowestTracked && r <= HighestTracked
}

// Tally is a histogram of final hand ranks over a number of games
type Tally struct {
	Games    int
	Counts   [poker.RankCount]int
	Excluded int // Games whose rank fell outside the tracked range
}

// Add records the outcome of one game and reports whether it was counted
// in the histogram.
func (t *Tally) Add(r poker.Rank) bool {
	t.Games++
	if !Tracked(r) {
		t.Excluded++
		return false
	}
	t.Counts[r]++
	return true
}

// Probability returns the share of games that finished with rank r
func (t *Tally) Probability(r poker.Rank) float64 {
	if t.Games == 0 || !Tracked(r) {
		return 0
	}
	return float64(t.Counts[r]) / float64(t.Games)
}

// AtLeast returns the share of games that finished with rank r or better.
// Lower ranks are better.
func (t *Tally) AtLeast(r poker.Rank) float64 {
	if t.Games == 0 || !Tracked(r) {
		return 0
	}
	n := 0
	for x := LowestTracked; x <= r; x++ {
		n += t.Counts[x]
	}
	return float64(n) / float64(t.Games)
}

// ExcludedShare returns the share of games without a qualifying hand
func (t *Tally) ExcludedShare() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.Excluded) / float64(t.Games)
}

// StdError returns the binomial standard error of Probability(r)
func (t *Tally) StdError(r poker.Rank) float64 {
	if t.Games == 0 {
		return 0
	}
	p := t.Probability(r)
	return math.Sqrt(p * (1 - p) / float64(t.Games))
}

// ConfidenceInterval95 returns the normal-approximation 95% interval for
// Probability(r), clamped to [0, 1].
func (t *Tally) ConfidenceInterval95(r poker.Rank) (float64, float64) {
	p := t.Probability(r)
	margin := 1.96 * t.StdError(r)
	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// Merge folds another tally into t
func (t *Tally) Merge(other *Tally) {
	t.Games += other.Games
	t.Excluded += other.Excluded
	for i := range t.Counts {
		t.Counts[i] += other.Counts[i]
	}
}

// Validate checks that every game is accounted for exactly once
func (t *Tally) Validate() error {
	if t.Games < 0 || t.Excluded < 0 {
		return fmt.Errorf("negative totals: games=%d excluded=%d", t.Games, t.Excluded)
	}

	total := t.Excluded
	for r, n := range t.Counts {
		if n < 0 {
			return fmt.Errorf("negative count %d for rank %s", n, poker.Rank(r))
		}
		if n > 0 && !Tracked(poker.Rank(r)) {
			return fmt.Errorf("rank %s is outside the tracked range but has %d games", poker.Rank(r), n)
		}
		total += n
	}
	if total != t.Games {
		return fmt.Errorf("counted games (%d) does not match games played (%d)", total, t.Games)
	}
	return nil
}

// Warn logs a single summary line when some games had no qualifying hand.
func (t *Tally) Warn(logger *log.Logger) {
	if t.Excluded == 0 || logger == nil {
		return
	}
	logger.Warn("games without a qualifying hand were left out of the distribution",
		"excluded", t.Excluded,
		"games", t.Games,
		"share", fmt.Sprintf("%.4f", t.ExcludedShare()))
}
