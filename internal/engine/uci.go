package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/gamehub-go/internal/chess"
	"github.com/lgbarn/gamehub-go/internal/errors"
)

// Engine defaults, matching what the single-player mode has always sent.
const (
	DefaultEnginePath = "stockfish"
	DefaultDepth      = 20
	DefaultHashMB     = 128
)

// Evaluation holds what the engine reported while searching.
type Evaluation struct {
	Score    int  // Centipawns from the side to move's point of view
	IsMate   bool // Score is a mate distance
	MateIn   int  // Moves to mate; negative when the side to move is mated
	Depth    int
	BestMove string
}

// FormatEvaluation renders an evaluation as "+1.23" or "-M3".
func FormatEvaluation(eval *Evaluation) string {
	if eval.IsMate {
		if eval.MateIn < 0 {
			return fmt.Sprintf("-M%d", -eval.MateIn)
		}
		return fmt.Sprintf("+M%d", eval.MateIn)
	}
	sign := '+'
	score := eval.Score
	if score < 0 {
		sign = '-'
		score = -score
	}
	return fmt.Sprintf("%c%d.%02d", sign, score/100, score%100)
}

// UCIEngine talks to an external engine over the UCI text protocol. It owns
// one child process and is not safe for concurrent use.
type UCIEngine struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	lines   chan string
	readErr error // valid once lines is closed

	depth   int
	hashMB  int
	timeout time.Duration
	log     io.Writer

	broken error
	closed bool

	last *Evaluation // From the most recent Move
}

// EngineOption configures a UCIEngine.
type EngineOption func(*UCIEngine)

// WithDepth sets the search depth sent with "go depth".
func WithDepth(depth int) EngineOption {
	return func(e *UCIEngine) {
		if depth >= 1 {
			e.depth = depth
		}
	}
}

// WithHash sets the hash table size in megabytes.
func WithHash(mb int) EngineOption {
	return func(e *UCIEngine) {
		if mb >= 1 {
			e.hashMB = mb
		}
	}
}

// WithTimeout bounds every wait for an engine reply. Zero waits forever.
func WithTimeout(d time.Duration) EngineOption {
	return func(e *UCIEngine) {
		if d >= 0 {
			e.timeout = d
		}
	}
}

// WithLog echoes the protocol traffic to w.
func WithLog(w io.Writer) EngineOption {
	return func(e *UCIEngine) {
		e.log = w
	}
}

// StartUCIEngine spawns the engine executable and completes the UCI
// handshake, blocking until the engine reports "readyok".
func StartUCIEngine(ctx context.Context, path string, opts ...EngineOption) (*UCIEngine, error) {
	cmd := exec.Command(path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, unavailable(path, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, unavailable(path, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, unavailable(path, err)
	}

	e := newUCIEngine(stdout, stdin, opts...)
	e.cmd = cmd
	if err := e.handshake(ctx); err != nil {
		e.Close() //nolint:errcheck // handshake error takes precedence
		return nil, err
	}
	return e, nil
}

// newUCIEngine wraps an already running engine's streams.
func newUCIEngine(r io.Reader, w io.WriteCloser, opts ...EngineOption) *UCIEngine {
	e := &UCIEngine{
		stdin:  w,
		lines:  make(chan string),
		depth:  DefaultDepth,
		hashMB: DefaultHashMB,
	}
	for _, opt := range opts {
		opt(e)
	}
	go e.readLoop(r)
	return e
}

func unavailable(command string, err error) error {
	return &errors.EngineError{Err: fmt.Errorf("%w: %v", errors.ErrEngineUnavailable, err), Command: command}
}

// readLoop forwards engine output line by line until the stream ends.
func (e *UCIEngine) readLoop(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		e.lines <- scanner.Text()
	}
	e.readErr = scanner.Err()
	close(e.lines)
}

// handshake sends the start-up commands and waits for "readyok".
func (e *UCIEngine) handshake(ctx context.Context) error {
	for _, command := range []string{
		"uci",
		fmt.Sprintf("setoption name Hash value %d", e.hashMB),
		"isready",
	} {
		if err := e.send(command); err != nil {
			return err
		}
	}
	_, err := e.waitFor(ctx, "isready", func(line string) bool {
		return strings.Contains(line, "readyok")
	}, nil)
	return err
}

// BestMove asks the engine for its best move in the given position and
// returns it in long algebraic notation ("e7e5").
func (e *UCIEngine) BestMove(ctx context.Context, fen string) (string, *Evaluation, error) {
	if e.broken != nil {
		return "", nil, e.broken
	}
	goCmd := fmt.Sprintf("go depth %d", e.depth)
	for _, command := range []string{"position fen " + fen, goCmd} {
		if err := e.send(command); err != nil {
			return "", nil, err
		}
	}

	eval := &Evaluation{}
	line, err := e.waitFor(ctx, goCmd, func(line string) bool {
		return strings.Contains(line, "bestmove")
	}, func(line string) {
		if strings.HasPrefix(line, "info") {
			e.parseInfo(line, eval)
		}
	})
	if err != nil {
		return "", nil, err
	}

	move := bestMoveToken(line)
	if move == "" || move == "(none)" {
		return "", nil, &errors.EngineError{Err: errors.ErrEngineProtocol, Command: goCmd, Reply: line}
	}
	eval.BestMove = move
	return move, eval, nil
}

// Move asks the engine to move in the board's position and decodes the
// reply into board squares. The position is sent through EngineFEN.
func (e *UCIEngine) Move(ctx context.Context, board *chess.Board) (chess.Square, chess.Square, error) {
	e.last = nil
	move, eval, err := e.BestMove(ctx, EngineFEN(board))
	if err != nil {
		return chess.Square{}, chess.Square{}, err
	}
	e.last = eval
	fromFile, fromRank, toFile, toRank, err := DecodeAlgebraic(move)
	if err != nil {
		return chess.Square{}, chess.Square{}, err
	}
	return chess.Sq(fromFile, fromRank), chess.Sq(toFile, toRank), nil
}

// LastEvaluation returns what the engine reported for its last Move, or nil
// when that call failed or none was made.
func (e *UCIEngine) LastEvaluation() *Evaluation {
	return e.last
}

// bestMoveToken returns the token following "bestmove".
func bestMoveToken(line string) string {
	fields := strings.Fields(line)
	for i, f := range fields {
		if f == "bestmove" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}

// DecodeAlgebraic converts a move such as "e7e5" into board coordinates:
// file = letter - 'a' and rank = 8 - digit, so rank 0 is the eighth rank.
// A trailing promotion letter is accepted and ignored, since promotion is
// always to a queen.
func DecodeAlgebraic(move string) (fromFile, fromRank, toFile, toRank int, err error) {
	if len(move) == 5 && strings.IndexByte("qrbn", move[4]) >= 0 {
		move = move[:4]
	}
	if len(move) != 4 {
		return 0, 0, 0, 0, &errors.EngineError{Err: errors.ErrEngineProtocol, Reply: move}
	}
	from, errFrom := chess.ParseSquare(move[:2])
	to, errTo := chess.ParseSquare(move[2:])
	if errFrom != nil || errTo != nil {
		return 0, 0, 0, 0, &errors.EngineError{Err: errors.ErrEngineProtocol, Reply: move}
	}
	return from.File, from.Rank, to.File, to.Rank, nil
}

// parseInfo updates eval from an "info" line. Fields missing their value
// are ignored.
func (e *UCIEngine) parseInfo(line string, eval *Evaluation) {
	fields := strings.Fields(line)
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if i+1 < len(fields) {
				if d, err := strconv.Atoi(fields[i+1]); err == nil {
					eval.Depth = d
				}
				i++
			}
		case "score":
			if i+2 < len(fields) {
				v, err := strconv.Atoi(fields[i+2])
				if err != nil {
					continue
				}
				switch fields[i+1] {
				case "cp":
					eval.Score = v
					eval.IsMate = false
				case "mate":
					eval.MateIn = v
					eval.IsMate = true
				}
				i += 2
			}
		}
	}
}

// send writes one command line to the engine.
func (e *UCIEngine) send(command string) error {
	e.logf("> %s", command)
	if _, err := io.WriteString(e.stdin, command+"\n"); err != nil {
		return unavailable(command, err)
	}
	return nil
}

// waitFor reads lines until match accepts one, handing the others to
// onLine. It returns early when ctx is done, the timeout expires or the
// engine's output ends.
func (e *UCIEngine) waitFor(ctx context.Context, command string, match func(string) bool, onLine func(string)) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	for {
		select {
		case <-ctx.Done():
			// The reply may still arrive and would be mistaken for the next one.
			e.broken = unavailable(command, ctx.Err())
			return "", e.broken
		case line, ok := <-e.lines:
			if !ok {
				cause := e.readErr
				if cause == nil {
					cause = io.EOF
				}
				e.broken = unavailable(command, cause)
				return "", e.broken
			}
			e.logf("< %s", line)
			if match(line) {
				return line, nil
			}
			if onLine != nil {
				onLine(line)
			}
		}
	}
}

func (e *UCIEngine) logf(format string, args ...interface{}) {
	if e.log != nil {
		fmt.Fprintf(e.log, "engine"+format+"\n", args...)
	}
}

// Close sends "quit", closes the engine's input and waits for it to exit.
// All failures along the way are reported together.
func (e *UCIEngine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	var result *multierror.Error
	if err := e.send("quit"); err != nil {
		result = multierror.Append(result, err)
	}
	if err := e.stdin.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := e.drain(); err != nil {
		result = multierror.Append(result, err)
	}
	if e.cmd != nil {
		if err := e.cmd.Wait(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// drain consumes output until the engine closes its end, killing the
// process if the timeout expires first.
func (e *UCIEngine) drain() error {
	var expired <-chan time.Time
	if e.timeout > 0 {
		timer := time.NewTimer(e.timeout)
		defer timer.Stop()
		expired = timer.C
	}
	for {
		select {
		case _, ok := <-e.lines:
			if !ok {
				return nil
			}
		case <-expired:
			if e.cmd != nil && e.cmd.Process != nil {
				if err := e.cmd.Process.Kill(); err != nil {
					return err
				}
				expired = nil
				continue
			}
			return unavailable("quit", context.DeadlineExceeded)
		}
	}
}
