package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/razzodds/internal/statistics"
	"github.com/lox/razzodds/poker"
)

// NoQualifyingLabel labels the share of games without a five-card low.
const NoQualifyingLabel = "none"

// Printer writes results to a terminal, styled when the output supports it
type Printer struct {
	w      io.Writer
	header lipgloss.Style
	rank   lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
}

// NewPrinter returns a printer for w. With color false, or when w is not a
// terminal, the output is plain text.
func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w:      w,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		rank:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		value:  r.NewStyle().Foreground(lipgloss.Color("10")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Probability prints a single probability with four decimals
func (p *Printer) Probability(v float64) error {
	_, err := fmt.Fprintln(p.w, p.value.Render(fmt.Sprintf("%.4f", v)))
	return err
}

// Rank prints a final rank, or that the hand has no five-card low
func (p *Printer) Rank(r poker.Rank) error {
	label := NoQualifyingLabel
	if statistics.Tracked(r) {
		label = r.String()
	}
	_, err := fmt.Fprintln(p.w, p.rank.Render(label))
	return err
}

// TableOptions selects what Table prints
type TableOptions struct {
	// Cumulative prints the share of games at each rank or better.
	Cumulative bool
	// Detailed adds game counts and 95% confidence intervals.
	Detailed bool
}

// Table prints one "RANK: probability" line per tracked rank followed by
// the share of games without a qualifying hand.
func (p *Printer) Table(t *statistics.Tally, opts TableOptions) error {
	value := t.Probability
	if opts.Cumulative {
		value = t.AtLeast
	}

	if !opts.Detailed {
		for r := statistics.LowestTracked; r <= statistics.HighestTracked; r++ {
			if _, err := fmt.Fprintf(p.w, "%s: %s\n",
				p.rank.Render(r.String()),
				p.value.Render(fmt.Sprintf("%.4f", value(r)))); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(p.w, "%s: %s\n",
			p.muted.Render(NoQualifyingLabel),
			p.value.Render(fmt.Sprintf("%.4f", t.ExcludedShare())))
		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		p.header.Render("rank"),
		p.header.Render("games"),
		p.header.Render("probability"),
		p.header.Render("95% ci"))
	for r := statistics.LowestTracked; r <= statistics.HighestTracked; r++ {
		lo, hi := t.ConfidenceInterval95(r)
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			p.rank.Render(r.String()),
			t.Counts[r],
			p.value.Render(fmt.Sprintf("%.4f", value(r))),
			p.muted.Render(fmt.Sprintf("[%.4f, %.4f]", lo, hi)))
	}
	fmt.Fprintf(tw, "%s\t%d\t%s\t\n",
		p.muted.Render(NoQualifyingLabel),
		t.Excluded,
		p.value.Render(fmt.Sprintf("%.4f", t.ExcludedShare())))
	return tw.Flush()
}

// Footer prints the run size and how long it took
func (p *Printer) Footer(games int, seed int64, d time.Duration) error {
	_, err := fmt.Fprintf(p.w, "\n%s\n", p.muted.Render(
		fmt.Sprintf("%d games in %v (seed %d)", games, d.Truncate(time.Millisecond), seed)))
	return err
}
