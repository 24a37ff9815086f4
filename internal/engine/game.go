package engine

import (
	"fmt"

	"github.com/lgbarn/gamehub-go/internal/chess"
	"github.com/lgbarn/gamehub-go/internal/errors"
)

// Players lists the colours in turn order. The side to move after a move is
// Players[turn%2], where turn is the running move counter held by the Game.
var Players = [2]chess.Colour{chess.White, chess.Black}

// Status is the coarse state of a game.
type Status int

const (
	InProgress Status = iota
	Check
	Checkmate
	Stalemate
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case Check:
		return "Check"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	}
	return "InProgress"
}

// TerminalState holds the derived check flags for the side to move.
// A position is never both checkmate and stalemate.
type TerminalState struct {
	InCheck   bool
	Checkmate bool
	Stalemate bool
}

// Status collapses the flags into a single Status value.
func (s TerminalState) Status() Status {
	switch {
	case s.Checkmate:
		return Checkmate
	case s.Stalemate:
		return Stalemate
	case s.InCheck:
		return Check
	}
	return InProgress
}

// Over reports whether the game has reached checkmate or stalemate.
func (s TerminalState) Over() bool {
	return s.Checkmate || s.Stalemate
}

// Game orchestrates turn order on a single Board. It is not safe for
// concurrent use.
type Game struct {
	board *chess.Board
	turn  int
	state TerminalState
}

// NewGame creates a game around board, which the game takes ownership of.
// Both kings must be present.
func NewGame(board *chess.Board) (*Game, error) {
	for _, colour := range Players {
		if _, ok := board.DetectKingCoordinates(colour); !ok {
			return nil, fmt.Errorf("%s king: %w", colour, errors.ErrKingNotFound)
		}
	}

	g := &Game{board: board, turn: board.FullmoveNumber}
	if _, err := g.EvaluateTerminalState(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewGameFromFEN creates a game from a FEN string.
func NewGameFromFEN(fen string) (*Game, error) {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return NewGame(board)
}

// Board returns the game's board. Callers must not mutate it directly.
func (g *Game) Board() *chess.Board {
	return g.board
}

// SideToMove returns the colour whose turn it is.
func (g *Game) SideToMove() chess.Colour {
	return g.board.SideToMove
}

// MoveNumber returns the running move counter.
func (g *Game) MoveNumber() int {
	return g.turn
}

// State returns the terminal state computed after the last move.
func (g *Game) State() TerminalState {
	return g.state
}

// FEN returns the current position as a FEN string.
func (g *Game) FEN() string {
	return BoardToFEN(g.board)
}

// LegalMovesFrom returns the legal destinations of the piece on sq.
// An empty square yields no moves.
func (g *Game) LegalMovesFrom(sq chess.Square) []chess.Square {
	piece := g.board.Get(sq)
	if piece == nil {
		return nil
	}
	return LegalMoves(&g.board.Grid, piece)
}

// LegalMoveCount sums the legal moves of every piece of the side to move.
func (g *Game) LegalMoveCount() int {
	count := 0
	for _, piece := range g.board.Pieces(g.board.SideToMove) {
		count += len(LegalMoves(&g.board.Grid, piece))
	}
	return count
}

// ApplyMove relocates the piece on from to to, capturing whatever stood
// there, and advances the turn.
//
// ApplyMove does not check legality: callers must have taken to from
// LegalMovesFrom(from) first, or use Play. It only rejects off-board squares
// and an empty origin.
func (g *Game) ApplyMove(from, to chess.Square) error {
	if !from.OnBoard() || !to.OnBoard() {
		return fmt.Errorf("move %v-%v: %w", from, to, errors.ErrInvalidPosition)
	}
	piece := g.board.Get(from)
	if piece == nil {
		return fmt.Errorf("no piece on %v: %w", from, errors.ErrIllegalMove)
	}

	g.board.Clear(from)
	g.board.Set(to, piece)

	g.board.SideToMove = Players[g.turn%2]
	g.turn++
	g.board.FullmoveNumber = g.turn
	return nil
}

// DetectPromotion replaces a white pawn on the top rank or a black pawn on
// the bottom rank with a queen of the same colour. It returns the squares
// that were promoted.
func (g *Game) DetectPromotion() []chess.Square {
	var promoted []chess.Square
	for file := 0; file < chess.BoardSize; file++ {
		for _, c := range []struct {
			rank   int
			colour chess.Colour
		}{
			{chess.TopRank, chess.White},
			{chess.BottomRank, chess.Black},
		} {
			sq := chess.Sq(file, c.rank)
			p := g.board.Get(sq)
			if p == nil || p.Kind != chess.Pawn || p.Colour != c.colour {
				continue
			}
			g.board.Set(sq, &chess.Piece{Kind: chess.Queen, Colour: c.colour, Position: sq})
			promoted = append(promoted, sq)
		}
	}
	return promoted
}

// EvaluateTerminalState recomputes check, checkmate and stalemate for the
// side to move. Check is decided first; zero legal moves then means
// checkmate when in check and stalemate otherwise.
func (g *Game) EvaluateTerminalState() (TerminalState, error) {
	state, err := TerminalStateOf(g.board)
	if err != nil {
		return TerminalState{}, err
	}
	g.state = state
	return state, nil
}

// Play performs one validated turn: the piece on from must belong to the side
// to move and to must be one of its legal destinations. The move is applied,
// promotion is resolved and the terminal state is recomputed.
func (g *Game) Play(from, to chess.Square) (TerminalState, error) {
	if g.state.Over() {
		return g.state, errors.ErrGameOver
	}
	piece := g.board.Get(from)
	if piece == nil {
		return g.state, fmt.Errorf("no piece on %v: %w", from, errors.ErrIllegalMove)
	}
	if piece.Colour != g.board.SideToMove {
		return g.state, fmt.Errorf("%v belongs to %s, %s to move: %w",
			from, piece.Colour, g.board.SideToMove, errors.ErrIllegalMove)
	}
	if !containsSquare(g.LegalMovesFrom(from), to) {
		return g.state, fmt.Errorf("%s %v-%v: %w", piece.Kind, from, to, errors.ErrIllegalMove)
	}

	if err := g.ApplyMove(from, to); err != nil {
		return g.state, err
	}
	g.DetectPromotion()
	return g.EvaluateTerminalState()
}

func containsSquare(squares []chess.Square, sq chess.Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}
