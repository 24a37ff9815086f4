// Package config provides configuration for the chess game hub.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/gamehub-go/internal/errors"
)

// Mode selects who plays Black.
type Mode int

const (
	Multiplayer  Mode = iota // Both sides entered at the keyboard
	Singleplayer             // The engine plays Black
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	if m == Singleplayer {
		return "singleplayer"
	}
	return "multiplayer"
}

// ParseMode parses a -mode flag value. Case is ignored.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multiplayer", "multi", "mp":
		return Multiplayer, nil
	case "singleplayer", "single", "sp":
		return Singleplayer, nil
	}
	return Multiplayer, fmt.Errorf("mode %q: %w", s, errors.ErrInvalidConfig)
}

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	// Game setup
	Mode     Mode
	StartFEN string // Empty means the standard starting position

	// Batch status
	StatusOnly bool
	Workers    int // 0 means one per CPU

	// Sub-configs
	Engine *EngineConfig
	Output *OutputConfig

	// Streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Mode:       Multiplayer,
		Engine:     NewEngineConfig(),
		Output:     NewOutputConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Logf writes a log line when the verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.Verbosity >= level && c.LogFile != nil {
		fmt.Fprintf(c.LogFile, format, args...)
	}
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.Mode != Multiplayer && c.Mode != Singleplayer {
		return fmt.Errorf("mode %d: %w", c.Mode, errors.ErrInvalidConfig)
	}
	if c.Engine != nil {
		if err := c.Engine.Validate(); err != nil {
			return err
		}
	}
	return nil
}
