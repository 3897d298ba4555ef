package statistics

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lox/razzodds/poker"
)

func TestTally_Empty(t *testing.T) {
	var tally Tally

	if got := tally.Probability(poker.Eight); got != 0 {
		t.Errorf("Expected probability 0 for empty tally, got %f", got)
	}
	if got := tally.AtLeast(poker.King); got != 0 {
		t.Errorf("Expected cumulative probability 0 for empty tally, got %f", got)
	}
	if got := tally.StdError(poker.Eight); got != 0 {
		t.Errorf("Expected stderr 0 for empty tally, got %f", got)
	}
	if err := tally.Validate(); err != nil {
		t.Errorf("Empty tally should validate: %v", err)
	}
}

func TestTally_Add(t *testing.T) {
	var tally Tally
	ranks := []poker.Rank{poker.Eight, poker.Eight, poker.Ten, poker.Five, poker.InvalidRank, poker.Four}

	counted := 0
	for _, r := range ranks {
		if tally.Add(r) {
			counted++
		}
	}

	if tally.Games != 6 {
		t.Errorf("Expected 6 games, got %d", tally.Games)
	}
	if counted != 4 {
		t.Errorf("Expected 4 counted games, got %d", counted)
	}
	if tally.Excluded != 2 {
		t.Errorf("Expected 2 excluded games, got %d", tally.Excluded)
	}
	if got := tally.Probability(poker.Eight); math.Abs(got-2.0/6.0) > 1e-12 {
		t.Errorf("Expected P(8) = 1/3, got %f", got)
	}
	if got := tally.Probability(poker.Four); got != 0 {
		t.Errorf("Untracked rank should have probability 0, got %f", got)
	}
	if got := tally.AtLeast(poker.Eight); math.Abs(got-3.0/6.0) > 1e-12 {
		t.Errorf("Expected P(8 or better) = 1/2, got %f", got)
	}
	if got := tally.AtLeast(poker.King); math.Abs(got-4.0/6.0) > 1e-12 {
		t.Errorf("Expected P(K or better) = 2/3, got %f", got)
	}
	if got := tally.ExcludedShare(); math.Abs(got-2.0/6.0) > 1e-12 {
		t.Errorf("Expected excluded share 1/3, got %f", got)
	}
	if err := tally.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestTally_ProbabilitiesSumToOne(t *testing.T) {
	var tally Tally
	for i := 0; i < 1000; i++ {
		tally.Add(poker.Rank(i % int(poker.RankCount)))
	}

	sum := tally.ExcludedShare()
	for r := LowestTracked; r <= HighestTracked; r++ {
		sum += tally.Probability(r)
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("Probabilities should sum to 1, got %f", sum)
	}
}

func TestTally_ConfidenceInterval(t *testing.T) {
	var tally Tally
	for i := 0; i < 100; i++ {
		if i < 25 {
			tally.Add(poker.Nine)
		} else {
			tally.Add(poker.King)
		}
	}

	se := tally.StdError(poker.Nine)
	expected := math.Sqrt(0.25 * 0.75 / 100)
	if math.Abs(se-expected) > 1e-12 {
		t.Errorf("Expected stderr %f, got %f", expected, se)
	}

	lo, hi := tally.ConfidenceInterval95(poker.Nine)
	if math.Abs(lo-(0.25-1.96*expected)) > 1e-12 || math.Abs(hi-(0.25+1.96*expected)) > 1e-12 {
		t.Errorf("Unexpected interval [%f, %f]", lo, hi)
	}

	lo, hi = tally.ConfidenceInterval95(poker.Five)
	if lo != 0 || hi != 0 {
		t.Errorf("Expected degenerate interval for unseen rank, got [%f, %f]", lo, hi)
	}
}

func TestTally_Merge(t *testing.T) {
	var a, b Tally
	a.Add(poker.Six)
	a.Add(poker.InvalidRank)
	b.Add(poker.Six)
	b.Add(poker.Queen)

	a.Merge(&b)
	if a.Games != 4 || a.Excluded != 1 {
		t.Errorf("Unexpected totals after merge: games=%d excluded=%d", a.Games, a.Excluded)
	}
	if a.Counts[poker.Six] != 2 || a.Counts[poker.Queen] != 1 {
		t.Errorf("Unexpected counts after merge: %v", a.Counts)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Validate failed after merge: %v", err)
	}
}

func TestTally_ValidateDetectsMismatch(t *testing.T) {
	tally := Tally{Games: 3}
	tally.Counts[poker.Seven] = 2
	if err := tally.Validate(); err == nil {
		t.Error("Expected mismatch error")
	}

	tally = Tally{Games: 1}
	tally.Counts[poker.Two] = 1
	if err := tally.Validate(); err == nil {
		t.Error("Expected error for count outside the tracked range")
	}
}

func TestTally_Warn(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

	var tally Tally
	tally.Add(poker.Eight)
	tally.Warn(logger)
	if buf.Len() != 0 {
		t.Errorf("Expected no output without exclusions, got %q", buf.String())
	}

	tally.Add(poker.InvalidRank)
	tally.Warn(logger)
	if !strings.Contains(buf.String(), "excluded=1") {
		t.Errorf("Expected excluded count in warning, got %q", buf.String())
	}
	tally.Warn(nil)
}
