// Package chess provides core chess types and operations.
package chess

import (
	"fmt"
	"unicode"

	"github.com/lgbarn/gamehub-go/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// FENLetter returns the side-to-move letter used in FEN strings.
func (c Colour) FENLetter() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// Kind represents a chess piece type.
type Kind int

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// KindFromChar converts a FEN character to a piece kind and colour.
// Upper case letters are White, lower case Black.
func KindFromChar(c byte) (Kind, Colour, error) {
	colour := White
	if unicode.IsLower(rune(c)) {
		colour = Black
	}
	switch unicode.ToUpper(rune(c)) {
	case 'P':
		return Pawn, colour, nil
	case 'N':
		return Knight, colour, nil
	case 'B':
		return Bishop, colour, nil
	case 'R':
		return Rook, colour, nil
	case 'Q':
		return Queen, colour, nil
	case 'K':
		return King, colour, nil
	}
	return 0, 0, fmt.Errorf("piece character %q: %w", c, errors.ErrInvalidPieceKind)
}

// Board dimensions.
const (
	BoardSize = 8

	// Ranks as stored in the grid: rank 0 is the top row (Black's back rank).
	TopRank    = 0
	BottomRank = BoardSize - 1
)

// Square is a (file, rank) board coordinate. File 0..7 maps to columns a..h,
// rank 0..7 maps to grid rows top to bottom, so rank 0 is the eighth rank.
type Square struct {
	File int
	Rank int
}

// Sq is a shorthand constructor for a Square.
func Sq(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

// OnBoard reports whether the square lies within the 8x8 board.
func (s Square) OnBoard() bool {
	return s.File >= 0 && s.File < BoardSize && s.Rank >= 0 && s.Rank < BoardSize
}

// Offset returns the square shifted by the given file and rank deltas.
func (s Square) Offset(df, dr int) Square {
	return Square{File: s.File + df, Rank: s.Rank + dr}
}

// String returns the algebraic name of the square ("e2").
func (s Square) String() string {
	if !s.OnBoard() {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return string([]byte{byte('a' + s.File), byte('0' + BoardSize - s.Rank)})
}

// ParseSquare converts algebraic notation ("e2") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("square %q: %w", s, errors.ErrInvalidPosition)
	}
	return Square{File: int(s[0] - 'a'), Rank: BoardSize - int(s[1]-'0')}, nil
}

// Piece is one chess piece. Kind and Colour never change; Position is updated
// in place when the piece moves and always matches its slot on the board.
type Piece struct {
	Kind     Kind
	Colour   Colour
	Position Square
}

// NewPiece creates a piece from its FEN character at the given square.
func NewPiece(c byte, pos Square) (*Piece, error) {
	kind, colour, err := KindFromChar(c)
	if err != nil {
		return nil, err
	}
	if !pos.OnBoard() {
		return nil, fmt.Errorf("piece %q at %v: %w", c, pos, errors.ErrInvalidPosition)
	}
	return &Piece{Kind: kind, Colour: colour, Position: pos}, nil
}

// Char returns the FEN character of the piece.
func (p *Piece) Char() byte {
	letter := p.Kind.Letter()
	if p.Colour == Black {
		return byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// Filled glyphs are drawn for White and outline glyphs for Black, which reads
// correctly on dark terminal backgrounds.
var pieceSymbols = map[Colour][]string{
	White: {"♟", "♞", "♝", "♜", "♛", "♚"},
	Black: {"♙", "♘", "♗", "♖", "♕", "♔"},
}

// Symbol returns the Unicode glyph used to draw the piece in a terminal.
func (p *Piece) Symbol() string {
	return pieceSymbols[p.Colour][p.Kind]
}

// IsEnemy reports whether other belongs to the opposite colour.
func (p *Piece) IsEnemy(other *Piece) bool {
	return other != nil && other.Colour != p.Colour
}

// String returns a debug representation of the piece.
func (p *Piece) String() string {
	return fmt.Sprintf("%s %s at %v", p.Colour, p.Kind, p.Position)
}
