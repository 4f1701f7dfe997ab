package config

import (
	"fmt"

	"github.com/lgbarn/chess-state-go/internal/errors"
)

// FilterConfig selects which stored games are listed.
type FilterConfig struct {
	Result   string // "1-0", "0-1", "1/2-1/2" or "*"
	Reason   string // how the game ended, e.g. "checkmate"
	MinPlies int
	MaxPlies int // 0 = no limit

	// Material is a balance such as "QR:qrr" that some position of the
	// game must show
	Material      string
	ExactMaterial bool

	// FENPattern is a piece-placement pattern with wildcards that some
	// position of the game must match
	FENPattern    string
	InvertPattern bool
}

// NewFilterConfig creates a FilterConfig that selects every game.
func NewFilterConfig() *FilterConfig {
	return &FilterConfig{}
}

// Validate checks that the filter configuration is usable.
func (f *FilterConfig) Validate() error {
	switch f.Result {
	case "", "1-0", "0-1", "1/2-1/2", "*":
	default:
		return fmt.Errorf("unknown result %q: %w", f.Result, errors.ErrInvalidConfig)
	}
	if f.MinPlies < 0 || f.MaxPlies < 0 {
		return fmt.Errorf("ply bounds %d..%d are negative: %w", f.MinPlies, f.MaxPlies, errors.ErrInvalidConfig)
	}
	if f.MaxPlies > 0 && f.MinPlies > f.MaxPlies {
		return fmt.Errorf("minimum plies %d above maximum %d: %w", f.MinPlies, f.MaxPlies, errors.ErrInvalidConfig)
	}
	return nil
}
