package engine

import (
	"fmt"

	"github.com/lgbarn/gamehub-go/internal/chess"
	"github.com/lgbarn/gamehub-go/internal/errors"
)

// HasLegalMoves returns true if any piece of the given colour has a legal move.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	for _, piece := range board.Pieces(colour) {
		if len(LegalMoves(&board.Grid, piece)) > 0 {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(board *chess.Board) bool {
	return IsInCheck(board) && !HasLegalMoves(board, board.SideToMove)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(board *chess.Board) bool {
	return !IsInCheck(board) && !HasLegalMoves(board, board.SideToMove)
}

// TerminalStateOf derives check, checkmate and stalemate for the side to move
// of any board. The side to move must have a king.
func TerminalStateOf(board *chess.Board) (TerminalState, error) {
	side := board.SideToMove
	if _, ok := board.DetectKingCoordinates(side); !ok {
		return TerminalState{}, fmt.Errorf("%s king: %w", side, errors.ErrKingNotFound)
	}

	state := TerminalState{InCheck: KingUnderAttack(&board.Grid, side)}
	if !HasLegalMoves(board, side) {
		if state.InCheck {
			state.Checkmate = true
		} else {
			state.Stalemate = true
		}
	}
	return state, nil
}
