package engine

import "github.com/lgbarn/gamehub-go/internal/chess"

var (
	diagonalDirs = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	knightJumps  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingSteps    = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// Pawn start ranks in grid coordinates (rank 0 at the top).
const (
	whitePawnStartRank = 6
	blackPawnStartRank = 1
)

// pawnDirection returns the rank delta of a pawn push. White moves toward
// decreasing rank index.
func pawnDirection(colour chess.Colour) int {
	if colour == chess.White {
		return -1
	}
	return 1
}

// MovesFor returns the destinations of piece on grid. With filterSelfCheck
// set, moves that leave the mover's own king attacked are dropped.
func MovesFor(grid *chess.Grid, piece *chess.Piece, filterSelfCheck bool) []chess.Square {
	if filterSelfCheck {
		return LegalMoves(grid, piece)
	}
	return PseudoLegalMoves(grid, piece)
}

// PseudoLegalMoves returns the destinations allowed by the piece's movement
// pattern and square occupancy, ignoring whether the own king ends up attacked.
func PseudoLegalMoves(grid *chess.Grid, piece *chess.Piece) []chess.Square {
	switch piece.Kind {
	case chess.Pawn:
		return pawnMoves(grid, piece)
	case chess.Knight:
		return stepMoves(grid, piece, knightJumps)
	case chess.Bishop:
		return slidingMoves(grid, piece, diagonalDirs)
	case chess.Rook:
		return slidingMoves(grid, piece, straightDirs)
	case chess.Queen:
		return append(slidingMoves(grid, piece, straightDirs), slidingMoves(grid, piece, diagonalDirs)...)
	case chess.King:
		return stepMoves(grid, piece, kingSteps)
	}
	return nil
}

// LegalMoves returns the pseudo-legal destinations of piece that do not leave
// its own king under attack. Each candidate is tried on a copy of the grid.
func LegalMoves(grid *chess.Grid, piece *chess.Piece) []chess.Square {
	candidates := PseudoLegalMoves(grid, piece)
	legal := candidates[:0]
	for _, to := range candidates {
		if !leavesKingAttacked(grid, piece, to) {
			legal = append(legal, to)
		}
	}
	return legal
}

// leavesKingAttacked simulates piece moving to the destination and reports
// whether its own king is attacked afterwards. Pieces are not mutated; the
// mover keeps its old Position inside the snapshot, which attack detection
// never reads for own pieces.
func leavesKingAttacked(grid *chess.Grid, piece *chess.Piece, to chess.Square) bool {
	sim := *grid
	from := piece.Position
	sim[from.Rank][from.File] = nil
	sim[to.Rank][to.File] = piece
	return KingUnderAttack(&sim, piece.Colour)
}

// slidingMoves walks each ray until the board edge or the first occupied
// square, which is included when it holds an enemy piece.
func slidingMoves(grid *chess.Grid, piece *chess.Piece, dirs [][2]int) []chess.Square {
	var moves []chess.Square
	for _, dir := range dirs {
		sq := piece.Position.Offset(dir[0], dir[1])
		for sq.OnBoard() {
			target := grid.At(sq)
			if target != nil {
				if piece.IsEnemy(target) {
					moves = append(moves, sq)
				}
				break // Blocked
			}
			moves = append(moves, sq)
			sq = sq.Offset(dir[0], dir[1])
		}
	}
	return moves
}

// stepMoves handles knights and kings: fixed offsets onto empty or enemy squares.
func stepMoves(grid *chess.Grid, piece *chess.Piece, offsets [][2]int) []chess.Square {
	var moves []chess.Square
	for _, offset := range offsets {
		sq := piece.Position.Offset(offset[0], offset[1])
		if !sq.OnBoard() {
			continue
		}
		if target := grid.At(sq); target == nil || piece.IsEnemy(target) {
			moves = append(moves, sq)
		}
	}
	return moves
}

// pawnMoves generates pushes and diagonal captures. No en passant.
func pawnMoves(grid *chess.Grid, piece *chess.Piece) []chess.Square {
	var moves []chess.Square
	dir := pawnDirection(piece.Colour)
	from := piece.Position

	one := from.Offset(0, dir)
	if one.OnBoard() && grid.At(one) == nil {
		moves = append(moves, one)

		startRank := whitePawnStartRank
		if piece.Colour == chess.Black {
			startRank = blackPawnStartRank
		}
		two := from.Offset(0, 2*dir)
		if from.Rank == startRank && grid.At(two) == nil {
			moves = append(moves, two)
		}
	}

	for _, df := range []int{-1, 1} {
		sq := from.Offset(df, dir)
		if sq.OnBoard() && piece.IsEnemy(grid.At(sq)) {
			moves = append(moves, sq)
		}
	}
	return moves
}
