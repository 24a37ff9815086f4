package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithMode sets the game mode.
func (b *ConfigBuilder) WithMode(mode Mode) *ConfigBuilder {
	b.cfg.Mode = mode
	return b
}

// WithStartFEN sets the starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.StartFEN = fen
	return b
}

// WithEngine sets the engine executable.
func (b *ConfigBuilder) WithEngine(path string) *ConfigBuilder {
	b.cfg.Engine.Path = path
	return b
}

// WithDepth sets the engine search depth.
func (b *ConfigBuilder) WithDepth(depth int) *ConfigBuilder {
	b.cfg.Engine.Depth = depth
	return b
}

// WithHash sets the engine hash size in megabytes.
func (b *ConfigBuilder) WithHash(mb int) *ConfigBuilder {
	b.cfg.Engine.HashMB = mb
	return b
}

// WithEngineTimeout bounds each engine reply.
func (b *ConfigBuilder) WithEngineTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Engine.Timeout = d
	return b
}

// WithStatusOnly switches to batch status mode with the given worker count.
func (b *ConfigBuilder) WithStatusOnly(workers int) *ConfigBuilder {
	b.cfg.StatusOnly = true
	b.cfg.Workers = workers
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithColor sets the colour mode.
func (b *ConfigBuilder) WithColor(mode ColorMode) *ConfigBuilder {
	b.cfg.Output.Color = mode
	return b
}

// WithStatusLines enables the FEN and check lines under the board.
func (b *ConfigBuilder) WithStatusLines(enabled bool) *ConfigBuilder {
	b.cfg.Output.ShowStatus = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
