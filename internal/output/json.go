package output

import (
	"github.com/lgbarn/gamehub-go/internal/processing"
	"github.com/lgbarn/gamehub-go/internal/worker"
)

// JSONPosition is one analysed position in JSON format.
type JSONPosition struct {
	Index       int    `json:"index"`
	Source      string `json:"source,omitempty"`
	FEN         string `json:"fen"`
	Error       string `json:"error,omitempty"`
	SideToMove  string `json:"side_to_move,omitempty"`
	Status      string `json:"status,omitempty"`
	Check       bool   `json:"check"`
	Checkmate   bool   `json:"checkmate"`
	Stalemate   bool   `json:"stalemate"`
	LegalMoves  int    `json:"legal_moves"`
	WhiteKing   string `json:"white_king,omitempty"`
	BlackKing   string `json:"black_king,omitempty"`
	DuplicateOf *int   `json:"duplicate_of,omitempty"`
}

// JSONReport holds a whole batch plus its summary.
type JSONReport struct {
	Positions []*JSONPosition    `json:"positions"`
	Summary   processing.Summary `json:"summary"`
}

// PositionToJSON converts a batch result to its JSON form.
func PositionToJSON(r worker.ProcessResult) *JSONPosition {
	jp := &JSONPosition{Index: r.Index, Source: r.Source, FEN: r.FEN}
	if r.Error != nil {
		jp.Error = r.Error.Error()
		return jp
	}
	analysis, ok := r.Info.(*processing.PositionAnalysis)
	if !ok {
		return jp
	}
	jp.SideToMove = analysis.Board.SideToMove.String()
	jp.Status = analysis.Status().String()
	jp.Check = analysis.State.InCheck
	jp.Checkmate = analysis.State.Checkmate
	jp.Stalemate = analysis.State.Stalemate
	jp.LegalMoves = analysis.LegalMoves
	jp.WhiteKing = analysis.WhiteKing.String()
	jp.BlackKing = analysis.BlackKing.String()
	if analysis.DuplicateOf >= 0 {
		first := analysis.DuplicateOf
		jp.DuplicateOf = &first
	}
	return jp
}
