package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/gamehub-go/internal/errors"
)

// EngineConfig holds settings for the external UCI engine.
type EngineConfig struct {
	// Path is the engine executable, looked up on PATH when bare
	Path string

	// Depth is sent with every "go depth" command
	Depth int

	// HashMB is sent as the Hash option during the handshake
	HashMB int

	// Timeout bounds each wait for a reply; zero waits forever
	Timeout time.Duration
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		Path:   "stockfish",
		Depth:  20,
		HashMB: 128,
	}
}

// Validate checks that the engine configuration is usable.
func (e *EngineConfig) Validate() error {
	if e.Path == "" {
		return fmt.Errorf("engine path is empty: %w", errors.ErrInvalidConfig)
	}
	if e.Depth < 1 {
		return fmt.Errorf("engine depth %d: %w", e.Depth, errors.ErrInvalidConfig)
	}
	if e.HashMB < 1 {
		return fmt.Errorf("engine hash %d MB: %w", e.HashMB, errors.ErrInvalidConfig)
	}
	if e.Timeout < 0 {
		return fmt.Errorf("engine timeout %v: %w", e.Timeout, errors.ErrInvalidConfig)
	}
	return nil
}
