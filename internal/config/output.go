package config

// ColorMode controls ANSI colour in board output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Colour only when writing to a terminal
	ColorAlways                  // Colour even when redirected
	ColorNever                   // Plain text
)

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Color selects when the board is drawn with ANSI colours
	Color ColorMode

	// JSONFormat enables JSON output for batch status reports
	JSONFormat bool

	// ShowStatus prints the FEN and check flags under the board
	ShowStatus bool

	// Coordinates prints file letters and rank digits around the board
	Coordinates bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Color:       ColorAuto,
		Coordinates: true,
	}
}
