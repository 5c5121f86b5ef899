package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithDefaults(t *testing.T) {
	require.NoError(t, Init(filepath.Join(t.TempDir(), "absent.yaml")))
	cfg := Get()

	assert.Equal(t, 10, cfg.Game.StartingBalance)
	assert.Equal(t, 1, cfg.Game.PassiveIncome)
	assert.Equal(t, 1, cfg.Game.FarmIncome)
	assert.InDelta(t, 10.0, cfg.Game.InitialTimePoolSeconds, 1e-9)
	assert.InDelta(t, 0.01, cfg.Game.TimeIncrementSeconds, 1e-9)
	assert.InDelta(t, 0.75, cfg.Game.SellHealthPercent, 1e-9)
	assert.Equal(t, 500, cfg.Game.MaxTurns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Spectator.Enabled)
}

func TestInitReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	doc := []byte(`
game:
  starting_balance: 25
  max_turns: 40
log:
  level: debug
  format: json
`)
	require.NoError(t, os.WriteFile(path, doc, 0o644))
	require.NoError(t, Init(path))

	cfg := Get()
	assert.Equal(t, 25, cfg.Game.StartingBalance)
	assert.Equal(t, 40, cfg.Game.MaxTurns)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, 1, cfg.Game.PassiveIncome)
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		return &Config{
			Game: DefaultGame(),
			Log:  LogConfig{Level: "info", Format: "console"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative starting balance", func(c *Config) { c.Game.StartingBalance = -1 }},
		{"zero time pool", func(c *Config) { c.Game.InitialTimePoolSeconds = 0 }},
		{"sell percent above one", func(c *Config) { c.Game.SellHealthPercent = 1.5 }},
		{"negative max turns", func(c *Config) { c.Game.MaxTurns = -1 }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"spectator without addr", func(c *Config) { c.Spectator.Enabled = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}

	assert.NoError(t, Validate(base()))
}

func TestDurationHelpers(t *testing.T) {
	g := GameConfig{InitialTimePoolSeconds: 2.5, TimeIncrementSeconds: 0.01}
	assert.Equal(t, 2500, int(g.InitialTimePool().Milliseconds()))
	assert.Equal(t, 10, int(g.TimeIncrement().Milliseconds()))
}

func TestDefaultGameMatchesViperDefaults(t *testing.T) {
	require.NoError(t, Init(filepath.Join(t.TempDir(), "absent.yaml")))
	assert.Equal(t, DefaultGame(), Get().Game)
}
