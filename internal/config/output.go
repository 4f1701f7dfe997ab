package config

import (
	"fmt"

	"github.com/lgbarn/chess-state-go/internal/errors"
)

// minLineLength is the narrowest line a numbered move pair fits on.
const minLineLength = 16

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// MaxLineLength is the maximum line length for move lists
	MaxLineLength uint

	// JSONFormat enables JSON output instead of text
	JSONFormat bool

	// KeepMoveNumbers controls whether move numbers are included
	KeepMoveNumbers bool

	// KeepResults controls whether game results are included
	KeepResults bool

	// ShowBoard prints a diagram of the final position
	ShowBoard bool

	// OutputFEN prints the final position as FEN
	OutputFEN bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		MaxLineLength:   80,
		KeepMoveNumbers: true,
		KeepResults:     true,
	}
}

// Validate checks that the output configuration is usable.
func (o *OutputConfig) Validate() error {
	if o.MaxLineLength != 0 && o.MaxLineLength < minLineLength {
		return fmt.Errorf("line length %d is below %d: %w", o.MaxLineLength, minLineLength, errors.ErrInvalidConfig)
	}
	return nil
}
