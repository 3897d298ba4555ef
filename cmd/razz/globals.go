package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/razzodds/internal/config"
	"github.com/lox/razzodds/internal/progress"
	"github.com/lox/razzodds/internal/razz"
	"github.com/lox/razzodds/internal/report"
)

// Globals are the flags shared by every command. Flags that are left unset
// fall back to RAZZ_* environment variables, then the config file.
type Globals struct {
	Config    string `help:"HCL config file" default:"razz.hcl" type:"path"`
	Games     int    `short:"n" help:"Number of games to simulate"`
	Seed      *int64 `help:"Random seed for reproducible results (0 picks one from the clock)"`
	Workers   int    `short:"w" help:"Number of parallel workers"`
	Debug     bool   `help:"Trace every simulated game"`
	LogFormat string `help:"Log format (text|json|logfmt)"`
	NoColor   bool   `help:"Disable styled output"`
	Progress  bool   `help:"Show a progress bar on stderr"`
	Output    string `short:"o" help:"Write a TOML report of the run to this file" type:"path"`

	stderr io.Writer
}

func (g *Globals) errWriter() io.Writer {
	if g.stderr != nil {
		return g.stderr
	}
	return os.Stderr
}

// settings merges flags over the environment over the config file.
func (g *Globals) settings() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if g.Games != 0 {
		cfg.Simulation.Games = g.Games
	}
	if g.Seed != nil {
		cfg.Simulation.Seed = *g.Seed
	}
	if g.Workers != 0 {
		cfg.Simulation.Workers = g.Workers
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if g.LogFormat != "" {
		cfg.Log.Format = g.LogFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, settings config.LogSettings) (*log.Logger, error) {
	level, err := settings.ParseLevel()
	if err != nil {
		return nil, err
	}
	formatter, err := settings.Formatter()
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: level <= log.DebugLevel,
	}), nil
}

func (g *Globals) printer(out io.Writer) *report.Printer {
	return report.NewPrinter(out, !g.NoColor)
}

// simulate runs the configured number of games for decided and handles the
// optional progress bar and report file.
func (g *Globals) simulate(ctx context.Context, decided razz.DecidedCards) (res *razz.Result, err error) {
	cfg, err := g.settings()
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(g.errWriter(), cfg.Log)
	if err != nil {
		return nil, err
	}

	simCfg := razz.Config{
		Decided: decided,
		Games:   cfg.Simulation.Games,
		Seed:    cfg.Simulation.Seed,
		Workers: cfg.Simulation.Workers,
		Logger:  logger,
		Clock:   quartz.NewReal(),
	}
	if g.Progress {
		bar := progress.Start(ctx, g.errWriter(), "simulating", cfg.Simulation.Games)
		simCfg.Progress = bar.Update
		defer func() { bar.Finish(err) }()
	}

	res, err = razz.New(simCfg).Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}
	res.Tally.Warn(logger)

	if g.Output != "" {
		if err := report.WriteFile(g.Output, report.New(res)); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		logger.Info("Wrote report", "path", g.Output, "run", res.RunID)
	}
	return res, nil
}
