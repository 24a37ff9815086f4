package engine

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lgbarn/gamehub-go/internal/chess"
	chesserrors "github.com/lgbarn/gamehub-go/internal/errors"
	"github.com/lgbarn/gamehub-go/internal/testutil"
)

// hangUp makes the fake engine close its output instead of replying.
const hangUp = "<hang up>"

type commandLog struct {
	mu       sync.Mutex
	commands []string
}

func (l *commandLog) add(cmd string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.commands = append(l.commands, cmd)
}

func (l *commandLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.commands...)
}

// newFakeEngine wires a UCIEngine to an in-process responder over OS pipes.
// respond maps each received command to the lines written back.
func newFakeEngine(t *testing.T, respond func(cmd string) []string, opts ...EngineOption) (*UCIEngine, *commandLog) {
	t.Helper()
	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	t.Cleanup(func() {
		inR.Close()
		outR.Close()
	})

	log := &commandLog{}
	go func() {
		defer outW.Close()
		scanner := bufio.NewScanner(inR)
		for scanner.Scan() {
			cmd := scanner.Text()
			log.add(cmd)
			if cmd == "quit" {
				return
			}
			for _, line := range respond(cmd) {
				if line == hangUp {
					return
				}
				if _, err := io.WriteString(outW, line+"\n"); err != nil {
					return
				}
			}
		}
	}()
	return newUCIEngine(outR, inW, opts...), log
}

// stockfishLike answers the handshake and replies to every search with move.
func stockfishLike(move string) func(string) []string {
	return func(cmd string) []string {
		switch {
		case cmd == "uci":
			return []string{"id name Fake", "id author test", "uciok"}
		case cmd == "isready":
			return []string{"readyok"}
		case strings.HasPrefix(cmd, "go"):
			return []string{
				"info depth 1 score cp 20 nodes 20 pv " + move,
				"info depth 2 score cp 35 nodes 90 pv " + move,
				"bestmove " + move + " ponder e7e5",
			}
		}
		return nil
	}
}

func TestUCIEngine_Handshake(t *testing.T) {
	e, log := newFakeEngine(t, stockfishLike("e2e4"))
	if err := e.handshake(context.Background()); err != nil {
		t.Fatalf("handshake() error = %v", err)
	}
	testutil.AssertNoError(t, e.Close())

	want := []string{"uci", "setoption name Hash value 128", "isready", "quit"}
	testutil.AssertEqual(t, log.all(), want)
}

func TestUCIEngine_HandshakeHashOption(t *testing.T) {
	e, log := newFakeEngine(t, stockfishLike("e2e4"), WithHash(64))
	testutil.AssertNoError(t, e.handshake(context.Background()))
	testutil.AssertNoError(t, e.Close())
	testutil.AssertEqual(t, log.all()[1], "setoption name Hash value 64")
}

func TestUCIEngine_BestMove(t *testing.T) {
	e, log := newFakeEngine(t, stockfishLike("e2e4"))
	defer e.Close()

	move, eval, err := e.BestMove(context.Background(), InitialFEN)
	if err != nil {
		t.Fatalf("BestMove() error = %v", err)
	}
	testutil.AssertEqual(t, move, "e2e4")
	testutil.AssertEqual(t, *eval, Evaluation{Score: 35, Depth: 2, BestMove: "e2e4"})
	testutil.AssertEqual(t, log.all(), []string{"position fen " + InitialFEN, "go depth 20"})
}

func TestUCIEngine_BestMoveDepthOption(t *testing.T) {
	e, log := newFakeEngine(t, stockfishLike("g1f3"), WithDepth(5))
	defer e.Close()

	_, _, err := e.BestMove(context.Background(), InitialFEN)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, log.all()[1], "go depth 5")
}

func TestUCIEngine_Move(t *testing.T) {
	e, _ := newFakeEngine(t, stockfishLike("e7e5"))
	defer e.Close()

	board, err := NewBoardFromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2")
	testutil.AssertNoError(t, err)

	from, to, err := e.Move(context.Background(), board)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	testutil.AssertEqual(t, from, chess.Sq(4, 1))
	testutil.AssertEqual(t, to, chess.Sq(4, 3))
}

func TestUCIEngine_MoveSendsNoCastlingRights(t *testing.T) {
	e, log := newFakeEngine(t, stockfishLike("f8c5"))
	defer e.Close()

	board, err := NewBoardFromFEN("rnbqkb1r/pppp1ppp/5n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq e3 3 3")
	testutil.AssertNoError(t, err)

	_, _, err = e.Move(context.Background(), board)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, log.all()[0],
		"position fen rnbqkb1r/pppp1ppp/5n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b - - 3 3")
	testutil.AssertEqual(t, board.CastlingRights, "KQkq", "board must not be modified")
}

func TestUCIEngine_LastEvaluation(t *testing.T) {
	e, _ := newFakeEngine(t, stockfishLike("e7e5"))
	defer e.Close()

	testutil.AssertNil(t, e.LastEvaluation())

	board, err := NewBoardFromFEN(GameStartFEN)
	testutil.AssertNoError(t, err)
	_, _, err = e.Move(context.Background(), board)
	testutil.AssertNoError(t, err)

	eval := e.LastEvaluation()
	if eval == nil {
		t.Fatal("LastEvaluation() = nil after a successful Move")
	}
	testutil.AssertEqual(t, FormatEvaluation(eval), "+0.35")
	testutil.AssertEqual(t, eval.Depth, 2)
}

func TestUCIEngine_LastEvaluationClearedOnFailure(t *testing.T) {
	calls := 0
	e, _ := newFakeEngine(t, func(cmd string) []string {
		if strings.HasPrefix(cmd, "go") {
			calls++
			if calls > 1 {
				return []string{"bestmove (none)"}
			}
		}
		return stockfishLike("e7e5")(cmd)
	})
	defer e.Close()

	board, err := NewBoardFromFEN(GameStartFEN)
	testutil.AssertNoError(t, err)
	_, _, err = e.Move(context.Background(), board)
	testutil.AssertNoError(t, err)
	_, _, err = e.Move(context.Background(), board)
	testutil.AssertErrorIs(t, err, chesserrors.ErrEngineProtocol)
	testutil.AssertNil(t, e.LastEvaluation())
}

func TestUCIEngine_NoLegalMove(t *testing.T) {
	e, _ := newFakeEngine(t, stockfishLike("(none)"))
	defer e.Close()

	_, _, err := e.BestMove(context.Background(), "8/8/8/8/8/8/8/k1K5 b - - 0 1")
	testutil.AssertErrorIs(t, err, chesserrors.ErrEngineProtocol)
}

func TestUCIEngine_OutputEnds(t *testing.T) {
	e, _ := newFakeEngine(t, func(cmd string) []string {
		if strings.HasPrefix(cmd, "go") {
			return []string{"info depth 1", hangUp}
		}
		return nil
	})

	_, _, err := e.BestMove(context.Background(), InitialFEN)
	testutil.AssertErrorIs(t, err, chesserrors.ErrEngineUnavailable)

	// The failure sticks.
	_, _, err = e.BestMove(context.Background(), InitialFEN)
	testutil.AssertErrorIs(t, err, chesserrors.ErrEngineUnavailable)

	e.Close() //nolint:errcheck // the engine is already gone
}

func TestUCIEngine_Timeout(t *testing.T) {
	e, _ := newFakeEngine(t, func(string) []string { return nil }, WithTimeout(50*time.Millisecond))
	defer e.Close()

	start := time.Now()
	_, _, err := e.BestMove(context.Background(), InitialFEN)
	testutil.AssertErrorIs(t, err, chesserrors.ErrEngineUnavailable)
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("BestMove() returned after %v; want about 50ms", elapsed)
	}
}

func TestUCIEngine_ContextCancel(t *testing.T) {
	e, _ := newFakeEngine(t, func(string) []string { return nil })
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := e.BestMove(ctx, InitialFEN)
	testutil.AssertErrorIs(t, err, chesserrors.ErrEngineUnavailable)
}

func TestUCIEngine_CloseTwice(t *testing.T) {
	e, log := newFakeEngine(t, stockfishLike("e2e4"))
	testutil.AssertNoError(t, e.Close())
	testutil.AssertNoError(t, e.Close())
	testutil.AssertEqual(t, log.all(), []string{"quit"})
}

func TestUCIEngine_LogsTraffic(t *testing.T) {
	var sb strings.Builder
	e, _ := newFakeEngine(t, stockfishLike("e2e4"), WithLog(&sb))
	testutil.AssertNoError(t, e.handshake(context.Background()))
	testutil.AssertNoError(t, e.Close())

	testutil.AssertContains(t, sb.String(), "engine> uci\n")
	testutil.AssertContains(t, sb.String(), "engine< readyok\n")
}

func TestStartUCIEngine_MissingExecutable(t *testing.T) {
	_, err := StartUCIEngine(context.Background(), "/nonexistent/engine-binary")
	testutil.AssertErrorIs(t, err, chesserrors.ErrEngineUnavailable)
}

func TestDecodeAlgebraic(t *testing.T) {
	tests := []struct {
		move string
		want [4]int
	}{
		{"e7e5", [4]int{4, 1, 4, 3}},
		{"e2e4", [4]int{4, 6, 4, 4}},
		{"a1h8", [4]int{0, 7, 7, 0}},
		{"h8a1", [4]int{7, 0, 0, 7}},
		{"b7b8q", [4]int{1, 1, 1, 0}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.move, func(t *testing.T) {
			t.Parallel()
			ff, fr, tf, tr, err := DecodeAlgebraic(tt.move)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, [4]int{ff, fr, tf, tr}, tt.want)
		})
	}
}

func TestDecodeAlgebraic_Invalid(t *testing.T) {
	for _, move := range []string{"", "e2", "e2e", "e2e9", "i2e4", "e0e4", "e2e4x", "e2e4e5"} {
		move := move
		t.Run(move, func(t *testing.T) {
			t.Parallel()
			_, _, _, _, err := DecodeAlgebraic(move)
			testutil.AssertErrorIs(t, err, chesserrors.ErrEngineProtocol)
		})
	}
}

func TestFormatEvaluation(t *testing.T) {
	tests := []struct {
		name string
		eval *Evaluation
		want string
	}{
		{"positive centipawns", &Evaluation{Score: 123}, "+1.23"},
		{"negative centipawns", &Evaluation{Score: -45}, "-0.45"},
		{"zero", &Evaluation{}, "+0.00"},
		{"large", &Evaluation{Score: 1250}, "+12.50"},
		{"small negative", &Evaluation{Score: -8}, "-0.08"},
		{"exactly one pawn", &Evaluation{Score: 100}, "+1.00"},
		{"very large negative", &Evaluation{Score: -9999}, "-99.99"},
		{"mate in one", &Evaluation{IsMate: true, MateIn: 1}, "+M1"},
		{"mate in many", &Evaluation{IsMate: true, MateIn: 15}, "+M15"},
		{"getting mated", &Evaluation{IsMate: true, MateIn: -5}, "-M5"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatEvaluation(tt.eval); got != tt.want {
				t.Errorf("FormatEvaluation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name  string
		start Evaluation
		line  string
		want  Evaluation
	}{
		{
			name: "depth",
			line: "info depth 20 seldepth 25 multipv 1 score cp 125 nodes 123456",
			want: Evaluation{Depth: 20, Score: 125},
		},
		{
			name: "mate score",
			line: "info depth 15 score mate 3 nodes 100000",
			want: Evaluation{Depth: 15, IsMate: true, MateIn: 3},
		},
		{
			name: "negative centipawns",
			line: "info depth 18 score cp -50 nodes 200000",
			want: Evaluation{Depth: 18, Score: -50},
		},
		{
			name: "negative mate",
			line: "info depth 20 score mate -3 nodes 300000",
			want: Evaluation{Depth: 20, IsMate: true, MateIn: -3},
		},
		{
			name:  "missing fields keep values",
			start: Evaluation{Depth: 10, Score: 50},
			line:  "info nodes 100000 time 500",
			want:  Evaluation{Depth: 10, Score: 50},
		},
		{
			name:  "empty line",
			start: Evaluation{Depth: 10, Score: 25},
			line:  "",
			want:  Evaluation{Depth: 10, Score: 25},
		},
		{
			name: "score without value",
			line: "info depth 10 score",
			want: Evaluation{Depth: 10},
		},
		{
			name: "depth without value",
			line: "info nodes 100000 depth",
			want: Evaluation{},
		},
		{
			name:  "best move untouched",
			start: Evaluation{Depth: 5, Score: 100, BestMove: "e2e4"},
			line:  "info depth 10",
			want:  Evaluation{Depth: 10, Score: 100, BestMove: "e2e4"},
		},
		{
			name: "realistic line",
			line: "info depth 22 seldepth 31 multipv 1 score cp 35 nodes 2145678 nps 2500000 hashfull 456 tbhits 0 time 858 pv e2e4 e7e5 g1f3",
			want: Evaluation{Depth: 22, Score: 35},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := &UCIEngine{}
			eval := tt.start
			e.parseInfo(tt.line, &eval)
			testutil.AssertEqual(t, eval, tt.want)
		})
	}
}
