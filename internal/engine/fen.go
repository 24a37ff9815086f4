// Package engine provides chess move generation, game orchestration and the
// external UCI engine adapter.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/gamehub-go/internal/chess"
	"github.com/lgbarn/gamehub-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// GameStartFEN is the standard starting position without castling rights.
// New games start here because castling is never played.
const GameStartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

// fenFields is the number of space-separated fields in a FEN string.
const fenFields = 6

func fenError(fen, field, value string) error {
	return &errors.FENError{Err: errors.ErrInvalidFEN, FEN: fen, Field: field, Value: value}
}

// ValidateFEN checks the structure of a FEN string without building a board.
func ValidateFEN(fen string) error {
	parts := strings.Fields(fen)
	if len(parts) != fenFields {
		return fenError(fen, "fields", strconv.Itoa(len(parts)))
	}

	if err := validatePlacement(fen, parts[0]); err != nil {
		return err
	}
	if parts[1] != "w" && parts[1] != "b" {
		return fenError(fen, "side", parts[1])
	}
	if !chess.ValidCastling(parts[2]) {
		return fenError(fen, "castling", parts[2])
	}
	if !chess.ValidEnPassant(parts[3]) {
		return fenError(fen, "en passant", parts[3])
	}
	if _, err := parseCounter(parts[4]); err != nil {
		return fenError(fen, "halfmove", parts[4])
	}
	if _, err := parseCounter(parts[5]); err != nil {
		return fenError(fen, "fullmove", parts[5])
	}
	return nil
}

// validatePlacement checks the piece placement field: 8 rank groups, each
// exactly 8 squares wide.
func validatePlacement(fen, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != chess.BoardSize {
		return fenError(fen, "placement", placement)
	}
	for _, rank := range ranks {
		width := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			switch {
			case c >= '1' && c <= '8':
				width += int(c - '0')
			default:
				if _, _, err := chess.KindFromChar(c); err != nil {
					return fmt.Errorf("%w: %w", fenError(fen, "placement", rank), err)
				}
				width++
			}
		}
		if width != chess.BoardSize {
			return fenError(fen, "placement", rank)
		}
	}
	return nil
}

// parseCounter parses a non-negative decimal integer.
func parseCounter(s string) (int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, fmt.Errorf("counter %q: %w", s, errors.ErrInvalidFEN)
	}
	return strconv.Atoi(s)
}

// NewBoardFromFEN creates a board from a FEN string. The string is validated
// before any piece is created, so no partial board is ever returned.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	if err := ValidateFEN(fen); err != nil {
		return nil, err
	}
	parts := strings.Fields(fen)

	board := chess.NewEmptyBoard()
	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}

	board.SideToMove = chess.White
	if parts[1] == "b" {
		board.SideToMove = chess.Black
	}
	board.CastlingRights = parts[2]
	board.EnPassant = parts[3]
	board.HalfmoveClock, _ = parseCounter(parts[4])
	board.FullmoveNumber, _ = parseCounter(parts[5])

	return board, nil
}

// parsePiecePositions fills the grid from the placement field, top rank first.
func parsePiecePositions(board *chess.Board, placement string) error {
	for rank, group := range strings.Split(placement, "/") {
		file := 0
		for i := 0; i < len(group); i++ {
			c := group[i]
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, err := chess.NewPiece(c, chess.Sq(file, rank))
			if err != nil {
				return fmt.Errorf("%w: %w", errors.ErrInvalidFEN, err)
			}
			board.Set(piece.Position, piece)
			file++
		}
	}
	return nil
}

// BoardToFEN converts a board to a FEN string.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	sb.WriteByte(board.SideToMove.FENLetter())
	sb.WriteByte(' ')
	sb.WriteString(orDash(board.CastlingRights))
	sb.WriteByte(' ')
	sb.WriteString(orDash(board.EnPassant))
	fmt.Fprintf(&sb, " %d %d", board.HalfmoveClock, board.FullmoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := 0; rank < chess.BoardSize; rank++ {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := board.Grid[rank][file]
			if piece == nil {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Char())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// EngineFEN is the FEN handed to a UCI engine. Castling rights and the en
// passant square are written as "-" since the rules play neither, so the
// engine can only suggest moves the game accepts.
func EngineFEN(board *chess.Board) string {
	position := *board
	position.CastlingRights = ""
	position.EnPassant = ""
	return BoardToFEN(&position)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board, _ := NewBoardFromFEN(InitialFEN)
	return board
}
