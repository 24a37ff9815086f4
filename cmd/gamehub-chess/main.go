// gamehub-chess plays chess in the terminal against a friend or a UCI engine,
// and reports the status of FEN positions in batch.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/lgbarn/gamehub-go/internal/config"
	"github.com/lgbarn/gamehub-go/internal/engine"
	"github.com/lgbarn/gamehub-go/internal/errors"
	"github.com/lgbarn/gamehub-go/internal/output"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("gamehub-chess version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	setupLogFile(cfg)
	setupOutputFile(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if cfg.StatusOnly {
		var invalid int
		invalid, err = runStatus(ctx, cfg, flag.Args(), os.Stdin)
		if err == nil && invalid > 0 {
			stop()
			os.Exit(1)
		}
	} else {
		err = runGame(ctx, cfg, os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
}

// runGame plays one game on stdin. In singleplayer mode the configured UCI
// engine is started for Black and shut down when the game ends.
func runGame(ctx context.Context, cfg *config.Config, in io.Reader) error {
	game, err := newGame(cfg.StartFEN)
	if err != nil {
		return err
	}

	var mover Mover
	if cfg.Mode == config.Singleplayer {
		uci, err := startEngine(ctx, cfg)
		if err != nil {
			return errors.Wrap(err, "singleplayer needs a UCI engine (see -engine)")
		}
		defer func() {
			if cerr := uci.Close(); cerr != nil {
				cfg.Logf(1, "engine shutdown: %v\n", cerr)
			}
		}()
		mover = uci
	}

	s := newSession(cfg, game, mover, in, output.NewBoardRenderer(cfg.OutputFile, cfg.Output))
	return s.run(ctx)
}

func newGame(fen string) (*engine.Game, error) {
	if fen == "" {
		fen = engine.GameStartFEN
	}
	return engine.NewGameFromFEN(fen)
}

// startEngine launches the UCI engine with the configured options. Engine
// traffic goes to the log at verbosity 2.
func startEngine(ctx context.Context, cfg *config.Config) (*engine.UCIEngine, error) {
	opts := []engine.EngineOption{
		engine.WithDepth(cfg.Engine.Depth),
		engine.WithHash(cfg.Engine.HashMB),
		engine.WithTimeout(cfg.Engine.Timeout),
	}
	if cfg.Verbosity >= 2 {
		opts = append(opts, engine.WithLog(cfg.LogFile))
	}
	cfg.Logf(1, "Starting engine %s\n", cfg.Engine.Path)
	return engine.StartUCIEngine(ctx, cfg.Engine.Path, opts...)
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: gamehub-chess [options] [fen-files...]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess in the terminal, or report the status of FEN positions.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nDuring a game:\n")
	fmt.Fprintf(os.Stderr, "  e2e4   Move the piece on e2 to e4\n")
	fmt.Fprintf(os.Stderr, "  e2     Show the legal moves of the piece on e2\n")
	fmt.Fprintf(os.Stderr, "  quit   End the game\n")
}
