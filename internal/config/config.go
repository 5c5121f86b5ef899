package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the engine
type Config struct {
	Game      GameConfig      `mapstructure:"game"`
	Log       LogConfig       `mapstructure:"log"`
	Replay    ReplayConfig    `mapstructure:"replay"`
	Spectator SpectatorConfig `mapstructure:"spectator"`
}

// GameConfig holds the balance constants that drive a match
type GameConfig struct {
	StartingBalance        int     `mapstructure:"starting_balance"`
	PassiveIncome          int     `mapstructure:"passive_income"`
	FarmIncome             int     `mapstructure:"farm_income"`
	InitialTimePoolSeconds float64 `mapstructure:"initial_time_pool_seconds"`
	TimeIncrementSeconds   float64 `mapstructure:"time_increment_seconds"`
	SellHealthPercent      float64 `mapstructure:"sell_health_percent"`
	UnitSellDiscount       float64 `mapstructure:"unit_sell_discount"`
	BuildingSellDiscount   float64 `mapstructure:"building_sell_discount"`
	MaxTurns               int     `mapstructure:"max_turns"`
}

// InitialTimePool returns the per-team starting time budget as a Duration
func (g GameConfig) InitialTimePool() time.Duration {
	return time.Duration(g.InitialTimePoolSeconds * float64(time.Second))
}

// TimeIncrement returns the per-turn time pool increment as a Duration
func (g GameConfig) TimeIncrement() time.Duration {
	return time.Duration(g.TimeIncrementSeconds * float64(time.Second))
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReplayConfig holds replay output settings
type ReplayConfig struct {
	Compress    bool   `mapstructure:"compress"`
	ArchivePath string `mapstructure:"archive_path"`
}

// SpectatorConfig holds the live snapshot feed settings
type SpectatorConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.starting_balance", 10)
	v.SetDefault("game.passive_income", 1)
	v.SetDefault("game.farm_income", 1)
	v.SetDefault("game.initial_time_pool_seconds", 10.0)
	v.SetDefault("game.time_increment_seconds", 0.01)
	v.SetDefault("game.sell_health_percent", 0.75)
	v.SetDefault("game.unit_sell_discount", 0.5)
	v.SetDefault("game.building_sell_discount", 0.5)
	v.SetDefault("game.max_turns", 500)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("replay.compress", false)
	v.SetDefault("replay.archive_path", "")

	v.SetDefault("spectator.enabled", false)
	v.SetDefault("spectator.addr", "127.0.0.1:8711")
}

// DefaultGame returns the default balance constants without touching the
// global viper instance. Tests use this to build games directly.
func DefaultGame() GameConfig {
	return GameConfig{
		StartingBalance:        10,
		PassiveIncome:          1,
		FarmIncome:             1,
		InitialTimePoolSeconds: 10.0,
		TimeIncrementSeconds:   0.01,
		SellHealthPercent:      0.75,
		UnitSellDiscount:       0.5,
		BuildingSellDiscount:   0.5,
		MaxTurns:               500,
	}
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/castlewars")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("CASTLEWARS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			// Specific file requested but not found - that's ok, use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// For default locations, only ignore ConfigFileNotFoundError
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	v.Unmarshal(cfg)
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// Re-unmarshal on change
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.StartingBalance < 0 {
		return fmt.Errorf("game.starting_balance must be non-negative")
	}
	if c.Game.PassiveIncome < 0 {
		return fmt.Errorf("game.passive_income must be non-negative")
	}
	if c.Game.FarmIncome < 0 {
		return fmt.Errorf("game.farm_income must be non-negative")
	}
	if c.Game.InitialTimePoolSeconds <= 0 {
		return fmt.Errorf("game.initial_time_pool_seconds must be positive")
	}
	if c.Game.TimeIncrementSeconds < 0 {
		return fmt.Errorf("game.time_increment_seconds must be non-negative")
	}
	if c.Game.SellHealthPercent < 0 || c.Game.SellHealthPercent > 1 {
		return fmt.Errorf("game.sell_health_percent must be between 0 and 1")
	}
	if c.Game.UnitSellDiscount < 0 || c.Game.UnitSellDiscount > 1 {
		return fmt.Errorf("game.unit_sell_discount must be between 0 and 1")
	}
	if c.Game.BuildingSellDiscount < 0 || c.Game.BuildingSellDiscount > 1 {
		return fmt.Errorf("game.building_sell_discount must be between 0 and 1")
	}
	if c.Game.MaxTurns < 0 {
		return fmt.Errorf("game.max_turns must be non-negative (0 disables the limit)")
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json")
	}

	if c.Spectator.Enabled && c.Spectator.Addr == "" {
		return fmt.Errorf("spectator.addr must be set when spectator.enabled is true")
	}

	return nil
}
