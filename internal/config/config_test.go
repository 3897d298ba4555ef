package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "razz.hcl")
	src := `
simulation {
  games   = 5000
  seed    = 42
  workers = 4
}

log {
  level  = "debug"
  format = "json"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Simulation.Games)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestParsePartial(t *testing.T) {
	cfg, err := Parse([]byte(`simulation { games = 10 }`), "partial.hcl")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Simulation.Games)
	assert.Equal(t, 1, cfg.Simulation.Workers)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `simulation {`},
		{"unknown attribute", `simulation { rounds = 3 }`},
		{"wrong type", `simulation { games = "many" }`},
		{"unknown block", `server { port = 1 }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			assert.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("RAZZ_GAMES", "777")
	t.Setenv("RAZZ_LOG_FORMAT", "logfmt")

	cfg := Default()
	cfg.Simulation.Seed = 5
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 777, cfg.Simulation.Games)
	assert.Equal(t, int64(5), cfg.Simulation.Seed, "unset variables keep the file value")
	assert.Equal(t, 1, cfg.Simulation.Workers)
	assert.Equal(t, "logfmt", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestApplyEnvInvalid(t *testing.T) {
	t.Setenv("RAZZ_WORKERS", "lots")
	assert.Error(t, Default().ApplyEnv())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero games", func(c *Config) { c.Simulation.Games = 0 }},
		{"negative games", func(c *Config) { c.Simulation.Games = -3 }},
		{"zero workers", func(c *Config) { c.Simulation.Workers = 0 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLogSettings(t *testing.T) {
	level, err := LogSettings{Level: "DEBUG"}.ParseLevel()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)

	f, err := LogSettings{Format: "json"}.Formatter()
	require.NoError(t, err)
	assert.Equal(t, log.JSONFormatter, f)

	f, err = LogSettings{}.Formatter()
	require.NoError(t, err)
	assert.Equal(t, log.TextFormatter, f)
}
