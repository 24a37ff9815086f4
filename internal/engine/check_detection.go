package engine

import "github.com/lgbarn/gamehub-go/internal/chess"

// KingUnderAttack returns true if the king of the given colour stands on a
// square reached by any enemy piece's pseudo-legal moves. Attack detection
// never filters for self-check, so it cannot recurse.
func KingUnderAttack(grid *chess.Grid, colour chess.Colour) bool {
	kingSq, ok := chess.FindKing(grid, colour)
	if !ok {
		return false // No king found
	}
	return isSquareAttacked(grid, kingSq, colour.Opposite())
}

// isSquareAttacked returns true if the square is reached by a piece of byColour.
func isSquareAttacked(grid *chess.Grid, sq chess.Square, byColour chess.Colour) bool {
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			piece := grid[rank][file]
			if piece == nil || piece.Colour != byColour {
				continue
			}
			for _, target := range PseudoLegalMoves(grid, piece) {
				if target == sq {
					return true
				}
			}
		}
	}
	return false
}

// IsInCheck returns true if the side to move's king is attacked.
func IsInCheck(board *chess.Board) bool {
	return KingUnderAttack(&board.Grid, board.SideToMove)
}
