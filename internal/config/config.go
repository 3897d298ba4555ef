// Package config loads run settings from an HCL file and RAZZ_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment override, e.g. RAZZ_GAMES.
const EnvPrefix = "razz"

// Config is the merged run configuration
type Config struct {
	Simulation SimulationSettings
	Log        LogSettings
}

// SimulationSettings controls how many games are played and how
type SimulationSettings struct {
	Games   int   `hcl:"games,optional"`
	Seed    int64 `hcl:"seed,optional"` // 0 = derive from the clock
	Workers int   `hcl:"workers,optional"`
}

// LogSettings controls the diagnostic logger
type LogSettings struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// file mirrors the HCL layout; both blocks may be left out.
type file struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Log        *LogSettings        `hcl:"log,block"`
}

// env lists the variables that may override file settings.
type env struct {
	Games     int    `envconfig:"games"`
	Seed      int64  `envconfig:"seed"`
	Workers   int    `envconfig:"workers"`
	LogLevel  string `envconfig:"log_level"`
	LogFormat string `envconfig:"log_format"`
}

// Default returns the configuration used when nothing else is set
func Default() *Config {
	return &Config{
		Simulation: SimulationSettings{
			Games:   100000,
			Workers: 1,
		},
		Log: LogSettings{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads filename on top of the defaults. A missing file is not an
// error and yields the defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source on top of the defaults
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var decoded file
	diags = gohcl.DecodeBody(f.Body, nil, &decoded)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if s := decoded.Simulation; s != nil {
		if s.Games != 0 {
			config.Simulation.Games = s.Games
		}
		config.Simulation.Seed = s.Seed
		if s.Workers != 0 {
			config.Simulation.Workers = s.Workers
		}
	}
	if l := decoded.Log; l != nil {
		if l.Level != "" {
			config.Log.Level = l.Level
		}
		if l.Format != "" {
			config.Log.Format = l.Format
		}
	}
	return config, nil
}

// ApplyEnv overrides settings from RAZZ_* environment variables. Unset
// variables leave the current value alone.
func (c *Config) ApplyEnv() error {
	e := env{
		Games:     c.Simulation.Games,
		Seed:      c.Simulation.Seed,
		Workers:   c.Simulation.Workers,
		LogLevel:  c.Log.Level,
		LogFormat: c.Log.Format,
	}
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	c.Simulation.Games = e.Games
	c.Simulation.Seed = e.Seed
	c.Simulation.Workers = e.Workers
	c.Log.Level = e.LogLevel
	c.Log.Format = e.LogFormat
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", c.Simulation.Games)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Simulation.Workers)
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	if _, err := c.Log.Formatter(); err != nil {
		return err
	}
	return nil
}

// ParseLevel returns the configured log level
func (l LogSettings) ParseLevel() (log.Level, error) {
	level, err := log.ParseLevel(strings.ToLower(l.Level))
	if err != nil {
		return log.WarnLevel, fmt.Errorf("invalid log level %q: %w", l.Level, err)
	}
	return level, nil
}

// Formatter returns the charmbracelet/log formatter for the configured format
func (l LogSettings) Formatter() (log.Formatter, error) {
	switch strings.ToLower(l.Format) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("invalid log format %q (want text, json or logfmt)", l.Format)
	}
}
