package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/gamehub-go/internal/chess"
	"github.com/lgbarn/gamehub-go/internal/config"
	"github.com/lgbarn/gamehub-go/internal/engine"
	"github.com/lgbarn/gamehub-go/internal/errors"
	"github.com/lgbarn/gamehub-go/internal/output"
	"github.com/lgbarn/gamehub-go/internal/processing"
)

// Mover picks a move for the side to move. *engine.UCIEngine implements it.
type Mover interface {
	Move(ctx context.Context, board *chess.Board) (from, to chess.Square, err error)
}

// evaluator is implemented by movers that report a score for their last move.
type evaluator interface {
	LastEvaluation() *engine.Evaluation
}

// session runs the read-render-play loop of one game.
type session struct {
	cfg      *config.Config
	game     *engine.Game
	mover    Mover // Plays Black when set
	in       *bufio.Scanner
	out      io.Writer
	renderer *output.BoardRenderer
}

func newSession(cfg *config.Config, game *engine.Game, mover Mover, in io.Reader, r *output.BoardRenderer) *session {
	return &session{
		cfg:      cfg,
		game:     game,
		mover:    mover,
		in:       bufio.NewScanner(in),
		out:      cfg.OutputFile,
		renderer: r,
	}
}

// run plays until checkmate, stalemate, "quit" or end of input.
func (s *session) run(ctx context.Context) error {
	var selected *chess.Square
	var targets []chess.Square
	for {
		state := s.game.State()
		view := output.View{Board: s.game.Board(), State: state, Selected: selected, Moves: targets}
		if err := s.renderer.Render(view); err != nil {
			return err
		}
		selected, targets = nil, nil

		if state.Over() {
			fmt.Fprintln(s.out, processing.EndMessage(state, s.game.SideToMove()))
			return nil
		}
		if state.InCheck {
			fmt.Fprintf(s.out, "%s is in check.\n", s.game.SideToMove())
		}

		if s.mover != nil && s.game.SideToMove() == chess.Black {
			if err := s.engineTurn(ctx); err != nil {
				return err
			}
			continue
		}

		fmt.Fprintf(s.out, "%s to move: ", s.game.SideToMove())
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit", "q":
			return nil
		}

		from, to, selectOnly, err := parseMoveInput(line)
		if err != nil {
			fmt.Fprintf(s.out, "%v\n", err)
			continue
		}
		if selectOnly {
			selected, targets = &from, s.game.LegalMovesFrom(from)
			continue
		}
		if _, err := s.game.Play(from, to); err != nil {
			if stderrors.Is(err, errors.ErrIllegalMove) {
				fmt.Fprintf(s.out, "Illegal move: %s\n", line)
				continue
			}
			return err
		}
		s.cfg.Logf(2, "%s\n", s.game.FEN())
	}
}

// engineTurn asks the engine for Black's move and plays it. An engine move
// that the rules reject ends the game with an error.
func (s *session) engineTurn(ctx context.Context) error {
	from, to, err := s.mover.Move(ctx, s.game.Board())
	if err != nil {
		return fmt.Errorf("engine move: %w", err)
	}
	if _, err := s.game.Play(from, to); err != nil {
		return fmt.Errorf("engine move %v%v: %w", from, to, err)
	}
	fmt.Fprintf(s.out, "Engine plays %v%v\n", from, to)
	if ev, ok := s.mover.(evaluator); ok {
		if eval := ev.LastEvaluation(); eval != nil {
			s.cfg.Logf(2, "engine eval %s at depth %d\n", engine.FormatEvaluation(eval), eval.Depth)
		}
	}
	s.cfg.Logf(2, "%s\n", s.game.FEN())
	return nil
}

// parseMoveInput accepts "e2e4" as a move, "e2-e4" likewise, or "e2" to
// select a piece and show its moves. A trailing promotion letter is ignored
// since pawns always promote to a queen.
func parseMoveInput(s string) (from, to chess.Square, selectOnly bool, err error) {
	move := strings.ToLower(strings.ReplaceAll(s, "-", ""))
	if len(move) == 5 && strings.ContainsRune("qrbn", rune(move[4])) {
		move = move[:4]
	}
	switch len(move) {
	case 2:
		selectOnly = true
		from, err = chess.ParseSquare(move)
	case 4:
		if from, err = chess.ParseSquare(move[:2]); err == nil {
			to, err = chess.ParseSquare(move[2:])
		}
	default:
		err = errors.ErrInvalidPosition
	}
	if err != nil {
		return from, to, selectOnly, fmt.Errorf("%q: want a square like e2 or a move like e2e4: %w", s, err)
	}
	return from, to, selectOnly, nil
}
