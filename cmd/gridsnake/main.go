package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Mshel/gridsnake/internal/game"
	"github.com/Mshel/gridsnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

const (
	defaultLogPath = "gridsnake.log"

	envLogPath   = "GRIDSNAKE_LOG"
	envPilotPath = "GRIDSNAKE_PILOT"
	envSeed      = "GRIDSNAKE_SEED"
)

type options struct {
	config    game.Config
	logPath   string
	pilotPath string
	debug     bool
}

func envOr(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func parseOptions(args []string) (options, error) {
	opts := options{config: game.DefaultConfig()}

	seed, err := strconv.ParseInt(envOr(envSeed, "0"), 10, 64)
	if err != nil {
		return opts, fmt.Errorf("%s: %w", envSeed, err)
	}

	fs := flag.NewFlagSet("gridsnake", flag.ContinueOnError)
	fs.IntVar(&opts.config.Columns, "columns", opts.config.Columns, "board width in cells")
	fs.IntVar(&opts.config.Rows, "rows", opts.config.Rows, "board height in cells")
	fs.IntVar(&opts.config.CellSize, "cell", opts.config.CellSize, "cell size in board units")
	fs.IntVar(&opts.config.TicksPerSecond, "tps", opts.config.TicksPerSecond, "simulation ticks per second")
	fs.Int64Var(&opts.config.Seed, "seed", seed, "RNG seed, 0 for a random one")
	fs.StringVar(&opts.logPath, "log", envOr(envLogPath, defaultLogPath), "log file")
	fs.StringVar(&opts.pilotPath, "pilot", os.Getenv(envPilotPath), "Lua autopilot script, built-in pilot when empty")
	fs.BoolVar(&opts.debug, "debug", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if err := opts.config.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// newGameFactory builds games for the UI, loading a fresh pilot per game so
// every Lua state belongs to exactly one game loop.
func newGameFactory(pilotPath string, logger *log.Logger) ui.GameFactory {
	return func(cfg game.Config, autopilot bool) (*game.GameManager, error) {
		gameOptions := []game.Option{game.WithLogger(logger)}

		var pilot *game.ScriptedPilot
		if autopilot {
			var err error
			if pilotPath != "" {
				pilot, err = game.LoadScriptedPilot(pilotPath)
			} else {
				pilot, err = game.NewScriptedPilot("default", game.DefaultPilotScript)
			}
			if err != nil {
				return nil, err
			}
			logger.Info("Autopilot loaded", "pilot", pilot.Name)
			gameOptions = append(gameOptions, game.WithPilot(pilot))
		}

		gm, err := game.NewGameManager(cfg, gameOptions...)
		if err != nil {
			if pilot != nil {
				pilot.Close()
			}
			return nil, fmt.Errorf("creating game: %w", err)
		}
		return gm, nil
	}
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		os.Exit(2)
	}

	logFile, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	// the terminal belongs to bubbletea, so logs go to the file
	log.SetOutput(logFile)
	if opts.debug {
		log.SetLevel(log.DebugLevel)
	}
	logger := log.Default()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("Starting gridsnake", "columns", opts.config.Columns, "rows", opts.config.Rows, "tps", opts.config.TicksPerSecond)

	controller := ui.NewControllerModel(ctx, opts.config, newGameFactory(opts.pilotPath, logger), 0, 0)
	p := tea.NewProgram(controller, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("Program exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "error %v\n", err)
		os.Exit(1)
	}

	logger.Info("Stopping gridsnake")
}
