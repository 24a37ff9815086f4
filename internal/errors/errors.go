// Package errors provides sentinel errors and error types for the chess rules
// engine. It defines common error conditions and structured error types that
// preserve context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidPieceKind indicates an unrecognised piece character.
	ErrInvalidPieceKind = errors.New("invalid piece kind")

	// ErrInvalidPosition indicates a square outside the 8x8 board.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrKingNotFound indicates a board without a king of the requested colour.
	ErrKingNotFound = errors.New("king not found")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver indicates a move attempted after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")

	// ErrEngineUnavailable indicates the external engine could not be started
	// or stopped talking (spawn failure, closed stream, timeout).
	ErrEngineUnavailable = errors.New("engine unavailable")

	// ErrEngineProtocol indicates a reply the adapter could not understand.
	ErrEngineProtocol = errors.New("engine protocol error")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// FENError wraps FEN failures with the offending field. It implements the
// error interface and supports unwrapping via errors.Is() and errors.As().
type FENError struct {
	Err   error  // The underlying error
	FEN   string // The full input string (may be empty)
	Field string // Field name: "placement", "side", "castling", ...
	Value string // The offending field value (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *FENError) Error() string {
	var parts []string

	if e.Field != "" {
		if e.Value != "" {
			parts = append(parts, fmt.Sprintf("%s %q", e.Field, e.Value))
		} else {
			parts = append(parts, e.Field)
		}
	}
	if e.FEN != "" {
		parts = append(parts, fmt.Sprintf("in %q", e.FEN))
	}

	context := strings.Join(parts, " ")
	if e.Err == nil {
		if context == "" {
			return "FEN error"
		}
		return context
	}
	if context == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", context, e.Err)
}

// Unwrap returns the underlying error.
func (e *FENError) Unwrap() error {
	return e.Err
}

// EngineError represents a failure talking to the external engine process.
type EngineError struct {
	Err     error  // The underlying error
	Command string // The command being sent or awaited (if known)
	Reply   string // The last line read from the engine (if any)
}

// Error returns a formatted error message with the command and reply context.
func (e *EngineError) Error() string {
	var parts []string
	if e.Command != "" {
		parts = append(parts, fmt.Sprintf("command %q", e.Command))
	}
	if e.Reply != "" {
		parts = append(parts, fmt.Sprintf("reply %q", e.Reply))
	}
	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ", "), e.Err)
		}
		return e.Err.Error()
	}
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return "engine error"
}

// Unwrap returns the underlying error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
