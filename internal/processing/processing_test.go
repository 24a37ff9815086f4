package processing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lgbarn/gamehub-go/internal/chess"
	"github.com/lgbarn/gamehub-go/internal/engine"
	chesserrors "github.com/lgbarn/gamehub-go/internal/errors"
	"github.com/lgbarn/gamehub-go/internal/testutil"
	"github.com/lgbarn/gamehub-go/internal/worker"
)

// TestAnalyzePosition verifies position analysis for each status.
func TestAnalyzePosition(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		wantStatus engine.Status
		wantMoves  int
		whiteKing  chess.Square
		blackKing  chess.Square
	}{
		{"initial", engine.InitialFEN, engine.InProgress, 20, chess.Sq(4, 7), chess.Sq(4, 0)},
		{"stalemate", "8/8/4k3/8/8/8/2q5/K7 w - - 0 47", engine.Stalemate, 0, chess.Sq(0, 7), chess.Sq(4, 2)},
		{"checkmate", "8/8/4K3/8/8/8/2R5/k2R4 b - - 0 62", engine.Checkmate, 0, chess.Sq(4, 2), chess.Sq(0, 7)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			analysis, err := AnalyzePosition(tt.fen)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, analysis.Status(), tt.wantStatus)
			testutil.AssertEqual(t, analysis.LegalMoves, tt.wantMoves)
			testutil.AssertEqual(t, analysis.WhiteKing, tt.whiteKing)
			testutil.AssertEqual(t, analysis.BlackKing, tt.blackKing)
			testutil.AssertEqual(t, analysis.DuplicateOf, -1)
		})
	}
}

func TestAnalyzePosition_Check(t *testing.T) {
	analysis, err := AnalyzePosition("8/5p2/p4K2/3pp3/8/1P3q2/1kr2R2/8 w - - 0 43")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, analysis.Status(), engine.Check)
	testutil.AssertTrue(t, analysis.LegalMoves > 0, "side in check still has moves")
}

func TestAnalyzePosition_Errors(t *testing.T) {
	_, err := AnalyzePosition("not a fen")
	testutil.AssertErrorIs(t, err, chesserrors.ErrInvalidFEN)

	_, err = AnalyzePosition("8/8/8/8/8/8/8/4K3 w - - 0 1")
	testutil.AssertErrorIs(t, err, chesserrors.ErrKingNotFound)
}

func TestReadPositions(t *testing.T) {
	input := strings.Join([]string{
		"# opening",
		engine.InitialFEN,
		"",
		"   8/8/4k3/8/8/8/2q5/K7 w - - 0 47  ",
		"garbage",
	}, "\n")

	items, err := ReadPositions(strings.NewReader(input), "positions.txt")
	testutil.AssertNoError(t, err)

	want := []worker.WorkItem{
		{FEN: engine.InitialFEN, Source: "positions.txt:2", Index: 0},
		{FEN: "8/8/4k3/8/8/8/2q5/K7 w - - 0 47", Source: "positions.txt:4", Index: 1},
		{FEN: "garbage", Source: "positions.txt:5", Index: 2},
	}
	testutil.AssertEqual(t, items, want)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReadPositions_ReadError(t *testing.T) {
	_, err := ReadPositions(failingReader{}, "broken")
	testutil.AssertError(t, err)
	testutil.AssertContains(t, err.Error(), "broken")
}

func TestAnalyzeBatch(t *testing.T) {
	fens := []string{
		engine.InitialFEN,
		"8/8/4k3/8/8/8/2q5/K7 w - - 0 47",
		"not a fen",
		"8/8/4K3/8/8/8/2R5/k2R4 b - - 0 62",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 5 30",
		"8/5p2/p4K2/3pp3/8/1P3q2/1kr2R2/8 w - - 0 43",
	}
	items := make([]worker.WorkItem, len(fens))
	for i, fen := range fens {
		items[i] = worker.WorkItem{FEN: fen, Source: "test", Index: i}
	}

	for _, workers := range []int{0, 1, 4} {
		results := AnalyzeBatch(context.Background(), items, workers)
		if len(results) != len(fens) {
			t.Fatalf("workers=%d: %d results; want %d", workers, len(results), len(fens))
		}
		for i, r := range results {
			testutil.AssertEqual(t, r.Index, i, "workers=%d order", workers)
		}
		testutil.AssertErrorIs(t, results[2].Error, chesserrors.ErrInvalidFEN)

		dup := results[4].Info.(*PositionAnalysis)
		testutil.AssertEqual(t, dup.DuplicateOf, 0, "repeated start position")

		got := Summarize(results)
		want := Summary{Total: 6, Invalid: 1, InProgress: 2, Check: 1, Checkmate: 1, Stalemate: 1, Duplicates: 1}
		testutil.AssertEqual(t, got, want, "workers=%d", workers)
	}
}

func TestEndMessage(t *testing.T) {
	tests := []struct {
		state engine.TerminalState
		side  chess.Colour
		want  string
	}{
		{engine.TerminalState{InCheck: true, Checkmate: true}, chess.Black, "Checkmate. White wins."},
		{engine.TerminalState{InCheck: true, Checkmate: true}, chess.White, "Checkmate. Black wins."},
		{engine.TerminalState{Stalemate: true}, chess.White, "Stalemate."},
		{engine.TerminalState{InCheck: true}, chess.White, ""},
		{engine.TerminalState{}, chess.Black, ""},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, EndMessage(tt.state, tt.side), tt.want)
	}
}
