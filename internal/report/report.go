// Package report renders simulation results as terminal text and as a TOML
// report file.
package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/razzodds/internal/razz"
	"github.com/lox/razzodds/internal/statistics"
	"github.com/lox/razzodds/poker"
)

// Report is the persisted summary of one simulation run
type Report struct {
	RunID     string        `toml:"run_id"`
	Started   time.Time     `toml:"started"`
	Duration  string        `toml:"duration"`
	Games     int           `toml:"games"`
	Seed      int64         `toml:"seed"`
	Workers   int           `toml:"workers"`
	Self      []string      `toml:"self,omitempty"`
	Opponents []string      `toml:"opponents,omitempty"`
	Excluded  ExcludedEntry `toml:"excluded"`
	Ranks     []RankEntry   `toml:"rank"`
}

// RankEntry holds the statistics for one final rank
type RankEntry struct {
	Rank        string  `toml:"rank"`
	Count       int     `toml:"count"`
	Probability float64 `toml:"probability"`
	AtLeast     float64 `toml:"at_least"`
	CILow       float64 `toml:"ci95_low"`
	CIHigh      float64 `toml:"ci95_high"`
}

// ExcludedEntry counts games without a qualifying hand
type ExcludedEntry struct {
	Count int     `toml:"count"`
	Share float64 `toml:"share"`
}

// New builds a report from a finished run
func New(res *razz.Result) *Report {
	t := &res.Tally
	r := &Report{
		RunID:     res.RunID,
		Started:   res.Started.UTC(),
		Duration:  res.Duration.String(),
		Games:     t.Games,
		Seed:      res.Seed,
		Workers:   res.Workers,
		Self:      codes(res.Decided.Self),
		Opponents: codes(res.Decided.Opponents),
		Excluded:  ExcludedEntry{Count: t.Excluded, Share: t.ExcludedShare()},
	}
	for rank := statistics.LowestTracked; rank <= statistics.HighestTracked; rank++ {
		lo, hi := t.ConfidenceInterval95(rank)
		r.Ranks = append(r.Ranks, RankEntry{
			Rank:        rank.String(),
			Count:       t.Counts[rank],
			Probability: t.Probability(rank),
			AtLeast:     t.AtLeast(rank),
			CILow:       lo,
			CIHigh:      hi,
		})
	}
	return r
}

// Encode writes the report to w in TOML format
func Encode(w io.Writer, r *Report) error {
	if r == nil {
		return fmt.Errorf("report: nil report")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(r)
}

// Decode reads a report written by Encode
func Decode(rd io.Reader) (*Report, error) {
	var r Report
	if _, err := toml.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return &r, nil
}

// WriteFile encodes the report and atomically replaces filename with it
func WriteFile(filename string, r *Report) error {
	var buf bytes.Buffer
	if err := Encode(&buf, r); err != nil {
		return err
	}
	return writeFileAtomic(filename, buf.Bytes(), 0o644)
}

func codes(cards []poker.Card) []string {
	if len(cards) == 0 {
		return nil
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
