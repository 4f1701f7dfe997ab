// Package config provides configuration for the chess-state tools.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chess-state-go/internal/errors"
)

// Config holds all program configuration. Each concern lives in its own
// sub-config.
type Config struct {
	Verbosity int // 0=nothing, 1=summary, 2=running commentary

	Output    *OutputConfig
	Play      *PlayConfig
	Perft     *PerftConfig
	Store     *StoreConfig
	Duplicate *DuplicateConfig
	Filter    *FilterConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Output:     NewOutputConfig(),
		Play:       NewPlayConfig(),
		Perft:      NewPerftConfig(),
		Store:      NewStoreConfig(),
		Duplicate:  NewDuplicateConfig(),
		Filter:     NewFilterConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the stream games and reports are written to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every sub-config.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d is negative: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	for _, v := range []interface{ Validate() error }{c.Output, c.Play, c.Perft, c.Store, c.Duplicate, c.Filter} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
