// Package processing evaluates positions and builds status reports.
package processing

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/lgbarn/gamehub-go/internal/chess"
	"github.com/lgbarn/gamehub-go/internal/engine"
	"github.com/lgbarn/gamehub-go/internal/hashing"
	"github.com/lgbarn/gamehub-go/internal/worker"
)

// PositionAnalysis holds the derived state of one position.
type PositionAnalysis struct {
	Board       *chess.Board
	State       engine.TerminalState
	LegalMoves  int
	WhiteKing   chess.Square
	BlackKing   chess.Square
	DuplicateOf int // Index of an earlier identical position, or -1
}

// Status returns the collapsed status of the position.
func (pa *PositionAnalysis) Status() engine.Status {
	return pa.State.Status()
}

// AnalyzePosition parses a FEN string and derives check, checkmate,
// stalemate and the legal move count for the side to move.
func AnalyzePosition(fen string) (*PositionAnalysis, error) {
	g, err := engine.NewGameFromFEN(fen)
	if err != nil {
		return nil, err
	}
	board := g.Board()
	analysis := &PositionAnalysis{
		Board:       board,
		State:       g.State(),
		LegalMoves:  g.LegalMoveCount(),
		DuplicateOf: -1,
	}
	analysis.WhiteKing, _ = board.DetectKingCoordinates(chess.White)
	analysis.BlackKing, _ = board.DetectKingCoordinates(chess.Black)
	return analysis, nil
}

// ReadPositions reads one FEN per line. Blank lines and lines starting with
// '#' are skipped. Source is used to label each item with its line number.
func ReadPositions(r io.Reader, source string) ([]worker.WorkItem, error) {
	var items []worker.WorkItem
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		items = append(items, worker.WorkItem{
			FEN:    line,
			Source: fmt.Sprintf("%s:%d", source, lineNo),
			Index:  len(items),
		})
	}
	if err := scanner.Err(); err != nil {
		return items, fmt.Errorf("reading %s: %w", source, err)
	}
	return items, nil
}

// processItem is the worker.ProcessFunc for batch analysis.
func processItem(item worker.WorkItem) worker.ProcessResult {
	result := worker.ProcessResult{Index: item.Index, FEN: item.FEN, Source: item.Source}
	analysis, err := AnalyzePosition(item.FEN)
	if err != nil {
		result.Error = err
		return result
	}
	result.Board = analysis.Board
	result.Info = analysis
	return result
}

// AnalyzeBatch evaluates items on the worker pool and returns the results in
// input order. Invalid positions carry their error and do not stop the batch.
// Repeated positions are marked with the index of their first occurrence.
// A worker count below one uses one worker per CPU.
func AnalyzeBatch(ctx context.Context, items []worker.WorkItem, workers int) []worker.ProcessResult {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	results := worker.Run(ctx, items, processItem, worker.WithWorkers(workers), worker.WithBufferSize(2*workers))

	dups := hashing.NewDuplicateDetector()
	for _, r := range results {
		analysis, ok := r.Info.(*PositionAnalysis)
		if !ok {
			continue
		}
		if first, dup := dups.CheckAndAdd(r.Board, r.Index); dup {
			analysis.DuplicateOf = first
		}
	}
	return results
}

// Summary counts batch outcomes.
type Summary struct {
	Total      int `json:"total"`
	Invalid    int `json:"invalid"`
	InProgress int `json:"in_progress"`
	Check      int `json:"check"`
	Checkmate  int `json:"checkmate"`
	Stalemate  int `json:"stalemate"`
	Duplicates int `json:"duplicates"`
}

// Summarize tallies a batch of results.
func Summarize(results []worker.ProcessResult) Summary {
	var s Summary
	for _, r := range results {
		s.Total++
		analysis, ok := r.Info.(*PositionAnalysis)
		if r.Error != nil || !ok {
			s.Invalid++
			continue
		}
		if analysis.DuplicateOf >= 0 {
			s.Duplicates++
		}
		switch analysis.Status() {
		case engine.Check:
			s.Check++
		case engine.Checkmate:
			s.Checkmate++
		case engine.Stalemate:
			s.Stalemate++
		default:
			s.InProgress++
		}
	}
	return s
}

// EndMessage returns the message shown when a game ends, or "" while it is
// still running. side is the colour to move in the final position.
func EndMessage(state engine.TerminalState, side chess.Colour) string {
	switch {
	case state.Checkmate:
		return fmt.Sprintf("Checkmate. %s wins.", side.Opposite())
	case state.Stalemate:
		return "Stalemate."
	}
	return ""
}
