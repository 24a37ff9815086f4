// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/gamehub-go/internal/config"
)

var (
	// Game setup
	modeFlag = flag.String("mode", "multiplayer", "Game mode: multiplayer or singleplayer (engine plays Black)")
	startFEN = flag.String("fen", "", "Start from this FEN position (default: standard start)")

	// Engine options
	enginePath    = flag.String("engine", "stockfish", "UCI engine executable")
	engineDepth   = flag.Int("depth", 20, "Engine search depth")
	engineHash    = flag.Int("hash", 128, "Engine hash table size in MB")
	engineTimeout = flag.Duration("engine-timeout", 0, "Maximum wait for an engine reply (0 = no limit)")

	// Batch status
	statusOnly = flag.Bool("status", false, "Report the status of FEN lines from files or stdin instead of playing")
	workers    = flag.Int("workers", 0, "Number of status workers (0 = one per CPU)")
	jsonOutput = flag.Bool("J", false, "Output status reports in JSON format")

	// Output options
	outputFile  = flag.String("o", "", "Output file (default: stdout)")
	noColor     = flag.Bool("nocolor", false, "Never colour the board")
	forceColor  = flag.Bool("color", false, "Always colour the board, even when not a terminal")
	noCoords    = flag.Bool("nocoords", false, "Don't draw rank and file labels")
	statusLines = flag.Bool("debug", false, "Show FEN, side to move and check flags under the board")

	// Logging
	logFile   = flag.String("l", "", "Write log to this file (default: stderr)")
	verbosity = flag.Int("v", 1, "Verbosity: 0 silent, 1 summary, 2 engine traffic")

	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	mode, err := config.ParseMode(*modeFlag)
	if err != nil {
		return err
	}
	cfg.Mode = mode
	cfg.StartFEN = *startFEN
	cfg.Verbosity = *verbosity

	applyEngineFlags(cfg)
	applyOutputFlags(cfg)

	cfg.StatusOnly = *statusOnly
	cfg.Workers = *workers
	return cfg.Validate()
}

func applyEngineFlags(cfg *config.Config) {
	cfg.Engine.Path = *enginePath
	cfg.Engine.Depth = *engineDepth
	cfg.Engine.HashMB = *engineHash
	cfg.Engine.Timeout = *engineTimeout
}

func applyOutputFlags(cfg *config.Config) {
	switch {
	case *noColor:
		cfg.Output.Color = config.ColorNever
	case *forceColor:
		cfg.Output.Color = config.ColorAlways
	default:
		cfg.Output.Color = config.ColorAuto
	}
	cfg.Output.Coordinates = !*noCoords
	cfg.Output.ShowStatus = *statusLines
	cfg.Output.JSONFormat = *jsonOutput
}
