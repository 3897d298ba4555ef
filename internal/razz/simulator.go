package razz

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/razzodds/internal/randutil"
	"github.com/lox/razzodds/internal/statistics"
	"github.com/lox/razzodds/poker"
)

// Config holds configuration for a simulation run
type Config struct {
	Decided DecidedCards
	Games   int
	Seed    int64 // 0 picks a seed from the clock
	Workers int
	Logger  *log.Logger
	Clock   quartz.Clock

	// Progress, when set, is called with the number of finished games
	// roughly every percent of the run and once at the end.
	Progress func(done, total int)
}

// Result summarises a finished run
type Result struct {
	RunID    string
	Decided  DecidedCards
	Tally    statistics.Tally
	Seed     int64
	Workers  int
	Started  time.Time
	Duration time.Duration
}

// Simulator runs Razz simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Simulator{config: config}
}

// Run plays the configured number of games. With more than one worker the
// games are split across goroutines, each with its own random stream, and
// the per-worker tallies are merged once all of them finish.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	cfg := s.config
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	if err := cfg.Decided.Validate(); err != nil {
		return nil, err
	}

	started := cfg.Clock.Now()
	seed := cfg.Seed
	if seed == 0 {
		seed = started.UnixNano()
	}
	workers := min(cfg.Workers, cfg.Games)

	result := &Result{
		RunID:   uuid.NewString(),
		Decided: cfg.Decided,
		Seed:    seed,
		Workers: workers,
		Started: started,
	}
	logger := cfg.Logger.With("run", result.RunID[:8])
	logger.Debug("Starting simulation", "games", cfg.Games, "seed", seed, "workers", workers,
		"self", poker.FormatCards(cfg.Decided.Self), "opponents", poker.FormatCards(cfg.Decided.Opponents))

	meter := newProgressMeter(cfg.Games, cfg.Progress)
	tallies := make([]statistics.Tally, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		games := cfg.Games / workers
		if w < cfg.Games%workers {
			games++
		}
		g.Go(func() error {
			tally := &tallies[w]
			rng := randutil.New(randutil.WorkerSeed(seed, w))
			listener := func(r poker.Rank) {
				if !tally.Add(r) {
					logger.Debug("No qualifying hand", "worker", w, "rank", r)
				}
				meter.tick()
			}
			if err := Simulate(gctx, cfg.Decided, games, rng, listener, logger.With("worker", w)); err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range tallies {
		result.Tally.Merge(&tallies[i])
	}
	if err := result.Tally.Validate(); err != nil {
		return nil, fmt.Errorf("tally validation failed: %w", err)
	}

	result.Duration = cfg.Clock.Since(started)
	logger.Debug("Simulation finished", "games", result.Tally.Games, "excluded", result.Tally.Excluded, "duration", result.Duration)
	return result, nil
}

// progressMeter throttles progress callbacks from concurrent workers.
type progressMeter struct {
	mu       sync.Mutex
	total    int
	step     int
	done     int
	reported int
	fn       func(done, total int)
}

func newProgressMeter(total int, fn func(done, total int)) *progressMeter {
	return &progressMeter{total: total, step: max(1, total/100), fn: fn}
}

func (m *progressMeter) tick() {
	if m.fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.done++
	if m.done-m.reported >= m.step || m.done == m.total {
		m.reported = m.done
		m.fn(m.done, m.total)
	}
}
