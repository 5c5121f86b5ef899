package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/castlewars/engine/internal/bots"
	"github.com/castlewars/engine/internal/config"
	"github.com/castlewars/engine/internal/game"
	"github.com/castlewars/engine/internal/game/core"
	"github.com/castlewars/engine/internal/game/events"
	"github.com/castlewars/engine/internal/mapload"
	"github.com/castlewars/engine/internal/replay"
	"github.com/castlewars/engine/internal/spectator"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	mapPath := flag.String("map", "", "Path to a YAML map file (empty for a built-in 12x8 grass board)")
	blueBot := flag.String("blue", "rusher", "Built-in agent for BLUE (rusher, idler)")
	redBot := flag.String("red", "idler", "Built-in agent for RED (rusher, idler)")
	replayPath := flag.String("replay", "replay.json", "Replay output path (.gz compresses, empty disables)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	if *logLevel == "" {
		*logLevel = cfg.Log.Level
	}
	setupLogging(*logLevel, cfg.Log.Format)

	m, err := loadMap(*mapPath)
	if err != nil {
		log.Fatal().Err(err).Str("map", *mapPath).Msg("Failed to load map")
	}

	gs, err := game.NewGameState(m, cfg.Game, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build game state")
	}

	agents := map[core.Team]game.Agent{
		core.Blue: pickAgent(*blueBot),
		core.Red:  pickAgent(*redBot),
	}

	bus := events.NewBus(log.Logger)
	var feed *spectator.Server
	if cfg.Spectator.Enabled {
		feed = spectator.NewServer(cfg.Spectator.Addr, log.Logger)
		feed.Attach(bus)
		if err := feed.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start spectator feed")
		}
	}

	runner := game.NewRunner(gs, agents, bus, log.Logger)

	log.Info().
		Str("game_id", runner.GameID()).
		Int("map_width", m.W).
		Int("map_height", m.H).
		Str("blue", *blueBot).
		Str("red", *redBot).
		Msg("Starting match")

	outcome := runner.Run()

	if outcome.Draw {
		log.Info().Str("reason", string(outcome.Reason)).Msg("Match drawn")
	} else {
		log.Info().
			Stringer("winner", outcome.Winner).
			Str("reason", string(outcome.Reason)).
			Msg("Match decided")
	}

	if *replayPath != "" {
		if err := replay.WriteFile(runner.Recorder(), *replayPath, cfg.Replay.Compress); err != nil {
			log.Fatal().Err(err).Str("path", *replayPath).Msg("Failed to write replay")
		}
		log.Info().Str("path", *replayPath).Msg("Replay written")
	}

	if cfg.Replay.ArchivePath != "" {
		archiveReplay(cfg.Replay.ArchivePath, runner.Recorder())
	}

	if feed != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := feed.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("Spectator feed shutdown failed")
		}
	}
}

func loadMap(path string) (*core.WorldMap, error) {
	if path == "" {
		return core.NewUniformMap(12, 8, core.Grass,
			core.Coord{X: 1, Y: 4}, core.Coord{X: 10, Y: 4})
	}
	return mapload.Load(path)
}

func pickAgent(name string) game.Agent {
	switch name {
	case "rusher":
		return bots.Rusher{}
	case "idler":
		return bots.Idler{}
	default:
		log.Fatal().Str("agent", name).Msg("Unknown built-in agent")
		return nil
	}
}

func archiveReplay(path string, rec *replay.Recorder) {
	store, err := replay.OpenStore(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to open replay archive")
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Save(ctx, rec); err != nil {
		log.Fatal().Err(err).Msg("Failed to archive replay")
	}
	log.Info().Str("path", path).Msg("Replay archived")
}

func setupLogging(level, format string) {
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if format == "json" || os.Getenv("APP_ENV") == "production" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
