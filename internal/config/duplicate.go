package config

import (
	"fmt"

	"github.com/lgbarn/chess-state-go/internal/errors"
)

// DuplicateConfig holds settings for duplicate game detection.
type DuplicateConfig struct {
	// Suppress drops finished games whose final position and moves match
	// an earlier game
	Suppress bool

	// ExactMatch compares move sequences as well as final positions
	ExactMatch bool

	// MaxCapacity bounds the number of remembered games (0 = unlimited)
	MaxCapacity int
}

// NewDuplicateConfig creates a DuplicateConfig with default values.
func NewDuplicateConfig() *DuplicateConfig {
	return &DuplicateConfig{
		ExactMatch: true,
	}
}

// Validate checks that the duplicate configuration is usable.
func (d *DuplicateConfig) Validate() error {
	if d.MaxCapacity < 0 {
		return fmt.Errorf("duplicate capacity %d is negative: %w", d.MaxCapacity, errors.ErrInvalidConfig)
	}
	return nil
}
