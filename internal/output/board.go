// Package output renders boards and position reports.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/lgbarn/gamehub-go/internal/chess"
	"github.com/lgbarn/gamehub-go/internal/config"
	"github.com/lgbarn/gamehub-go/internal/engine"
)

// View is everything drawn for one frame of the game.
type View struct {
	Board    *chess.Board
	State    engine.TerminalState
	Selected *chess.Square  // Origin square picked by the player, if any
	Moves    []chess.Square // Legal destinations of the selected piece
}

// Cell markers used when colour is off.
const (
	markNone     = ' '
	markSelected = '>'
	markMove     = '*'
	markCheck    = '!'
)

// BoardRenderer draws a board as text, one line per rank.
type BoardRenderer struct {
	w           io.Writer
	colour      bool
	coordinates bool
	showStatus  bool

	light, dark, selected, move, check *color.Color
}

// NewBoardRenderer creates a renderer writing to w.
func NewBoardRenderer(w io.Writer, cfg *config.OutputConfig) *BoardRenderer {
	r := &BoardRenderer{
		w:           w,
		colour:      useColour(w, cfg.Color),
		coordinates: cfg.Coordinates,
		showStatus:  cfg.ShowStatus,
		light:       color.New(color.FgBlack, color.BgHiWhite),
		dark:        color.New(color.FgBlack, color.BgCyan),
		selected:    color.New(color.FgBlack, color.BgYellow),
		move:        color.New(color.FgBlack, color.BgGreen),
		check:       color.New(color.FgHiWhite, color.BgRed),
	}
	for _, c := range []*color.Color{r.light, r.dark, r.selected, r.move, r.check} {
		if r.colour {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// useColour decides whether ANSI colour is written. In auto mode only
// terminals get colour.
func useColour(w io.Writer, mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Colour reports whether the renderer emits ANSI colour.
func (r *BoardRenderer) Colour() bool {
	return r.colour
}

// Render draws the board followed by the optional status lines.
func (r *BoardRenderer) Render(v View) error {
	var sb strings.Builder

	var checkSq *chess.Square
	if v.State.InCheck {
		if sq, ok := v.Board.DetectKingCoordinates(v.Board.SideToMove); ok {
			checkSq = &sq
		}
	}
	moves := make(map[chess.Square]bool, len(v.Moves))
	for _, sq := range v.Moves {
		moves[sq] = true
	}

	for rank := 0; rank < chess.BoardSize; rank++ {
		if r.coordinates {
			fmt.Fprintf(&sb, "%d ", chess.BoardSize-rank)
		}
		for file := 0; file < chess.BoardSize; file++ {
			sq := chess.Sq(file, rank)
			sb.WriteString(r.cell(v.Board.Get(sq), sq, v.Selected, moves[sq], checkSq))
		}
		sb.WriteByte('\n')
	}
	if r.coordinates {
		sb.WriteString("  ")
		for file := 0; file < chess.BoardSize; file++ {
			fmt.Fprintf(&sb, " %c ", 'a'+file)
		}
		sb.WriteByte('\n')
	}
	if r.showStatus {
		sb.WriteString(StatusLines(v.Board, v.State))
	}

	_, err := io.WriteString(r.w, sb.String())
	return err
}

// cell renders one square three columns wide.
func (r *BoardRenderer) cell(p *chess.Piece, sq chess.Square, selected *chess.Square, isMove bool, checkSq *chess.Square) string {
	glyph := "·"
	if p != nil {
		glyph = p.Symbol()
	}

	style, mark := r.light, rune(markNone)
	if (sq.File+sq.Rank)%2 == 1 {
		style = r.dark
	}
	switch {
	case checkSq != nil && *checkSq == sq:
		style, mark = r.check, markCheck
	case selected != nil && *selected == sq:
		style, mark = r.selected, markSelected
	case isMove:
		style, mark = r.move, markMove
	}

	if r.colour {
		return style.Sprint(" " + glyph + " ")
	}
	return string(mark) + glyph + " "
}

// StatusLines returns the FEN, side to move and check flags of a position.
func StatusLines(board *chess.Board, state engine.TerminalState) string {
	return fmt.Sprintf("FEN: %s\nTurn: %s\nCheck: %t  Checkmate: %t  Stalemate: %t\n",
		engine.BoardToFEN(board), board.SideToMove, state.InCheck, state.Checkmate, state.Stalemate)
}
