package chess

import (
	"fmt"

	"github.com/lgbarn/gamehub-go/internal/errors"
)

// Grid is the 8x8 square table indexed [rank][file]. Copying a Grid value
// copies the table but shares the Piece values it points to.
type Grid [BoardSize][BoardSize]*Piece

// At returns the piece on the square, or nil if the square is empty or off the board.
func (g *Grid) At(sq Square) *Piece {
	if !sq.OnBoard() {
		return nil
	}
	return g[sq.Rank][sq.File]
}

// Board represents a chess position with all state carried by FEN.
type Board struct {
	// The board squares. The Board exclusively owns all pieces placed on it.
	Grid Grid

	// Who has the next move.
	SideToMove Colour

	// Castling availability as found in FEN ("KQkq" subset or "-").
	// Kept only for FEN output; move generation never consults it.
	CastlingRights string

	// En passant target square as found in FEN ("e3" or "-"). Unused by generation.
	EnPassant string

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock int

	// The move counter as stored in FEN.
	FullmoveNumber int
}

// NewEmptyBoard creates a board with no pieces and White to move.
func NewEmptyBoard() *Board {
	return &Board{
		SideToMove:     White,
		CastlingRights: "-",
		EnPassant:      "-",
		FullmoveNumber: 1,
	}
}

// NewBoard creates a board from explicit field values. Every piece must sit
// on the slot its Position names.
func NewBoard(grid Grid, side Colour, castling, enPassant string, halfmove, fullmove int) (*Board, error) {
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			p := grid[rank][file]
			if p != nil && p.Position != Sq(file, rank) {
				return nil, fmt.Errorf("%v stored on %v: %w", p, Sq(file, rank), errors.ErrInvalidPosition)
			}
		}
	}
	if side != White && side != Black {
		return nil, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "side", Value: fmt.Sprint(int(side))}
	}
	if !ValidCastling(castling) {
		return nil, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "castling", Value: castling}
	}
	if !ValidEnPassant(enPassant) {
		return nil, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "en passant", Value: enPassant}
	}
	if halfmove < 0 || fullmove < 0 {
		return nil, &errors.FENError{Err: errors.ErrInvalidFEN, Field: "clocks", Value: fmt.Sprintf("%d %d", halfmove, fullmove)}
	}
	return &Board{
		Grid:           grid,
		SideToMove:     side,
		CastlingRights: castling,
		EnPassant:      enPassant,
		HalfmoveClock:  halfmove,
		FullmoveNumber: fullmove,
	}, nil
}

// ValidCastling reports whether s is "-" or 1-4 distinct characters from "KQkq".
func ValidCastling(s string) bool {
	if s == "-" {
		return true
	}
	if len(s) == 0 || len(s) > 4 {
		return false
	}
	seen := map[rune]bool{}
	for _, c := range s {
		switch c {
		case 'K', 'Q', 'k', 'q':
		default:
			return false
		}
		if seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}

// ValidEnPassant reports whether s is "-" or an algebraic square.
func ValidEnPassant(s string) bool {
	if s == "-" {
		return true
	}
	_, err := ParseSquare(s)
	return err == nil
}

// Get returns the piece at the given square, or nil.
func (b *Board) Get(sq Square) *Piece {
	return b.Grid.At(sq)
}

// Set places a piece at the given square and updates its position.
// Off-board squares are ignored.
func (b *Board) Set(sq Square, p *Piece) {
	if !sq.OnBoard() {
		return
	}
	if p != nil {
		p.Position = sq
	}
	b.Grid[sq.Rank][sq.File] = p
}

// Clear empties the given square.
func (b *Board) Clear(sq Square) {
	b.Set(sq, nil)
}

// Pieces returns the pieces of the given colour in row-major order.
func (b *Board) Pieces(colour Colour) []*Piece {
	var pieces []*Piece
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if p := b.Grid[rank][file]; p != nil && p.Colour == colour {
				pieces = append(pieces, p)
			}
		}
	}
	return pieces
}

// DetectKingCoordinates returns the square of the first king of the given
// colour found in a row-major scan.
func (b *Board) DetectKingCoordinates(colour Colour) (Square, bool) {
	return FindKing(&b.Grid, colour)
}

// FindKing scans the grid for a king of the given colour.
func FindKing(g *Grid, colour Colour) (Square, bool) {
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if p := g[rank][file]; p != nil && p.Kind == King && p.Colour == colour {
				return Sq(file, rank), true
			}
		}
	}
	return Square{}, false
}

// Copy creates a deep copy of the board. Pieces are duplicated so the copy
// can be mutated without touching the original.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if p := b.Grid[rank][file]; p != nil {
				dup := *p
				newBoard.Grid[rank][file] = &dup
			}
		}
	}
	return newBoard
}
