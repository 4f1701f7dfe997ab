package config

import (
	"fmt"

	"github.com/lgbarn/chess-state-go/internal/errors"
)

// Defaults for self-play batches.
const (
	DefaultMaxPlies        = 300
	DefaultRepetitionLimit = 3
	MaxPerftDepth          = 8
)

// PlayConfig holds settings for self-play batches.
type PlayConfig struct {
	Games           int
	MaxPlies        int // 0 = play until the game ends
	Workers         int
	Seed            uint64
	RepetitionLimit int // 0 = never adjudicate repetitions
	FEN             string
}

// NewPlayConfig creates a PlayConfig with default values.
func NewPlayConfig() *PlayConfig {
	return &PlayConfig{
		Games:           1,
		MaxPlies:        DefaultMaxPlies,
		Workers:         1,
		Seed:            1,
		RepetitionLimit: DefaultRepetitionLimit,
	}
}

// Validate checks that the play configuration is usable.
func (p *PlayConfig) Validate() error {
	switch {
	case p.Games < 1:
		return fmt.Errorf("game count %d must be positive: %w", p.Games, errors.ErrInvalidConfig)
	case p.Workers < 1:
		return fmt.Errorf("worker count %d must be positive: %w", p.Workers, errors.ErrInvalidConfig)
	case p.MaxPlies < 0:
		return fmt.Errorf("ply limit %d is negative: %w", p.MaxPlies, errors.ErrInvalidConfig)
	case p.RepetitionLimit < 0 || p.RepetitionLimit == 1:
		return fmt.Errorf("repetition limit %d must be 0 or at least 2: %w", p.RepetitionLimit, errors.ErrInvalidConfig)
	}
	return nil
}

// PerftConfig holds settings for move-generation counts.
type PerftConfig struct {
	Depth  int
	Divide bool
	FEN    string
}

// NewPerftConfig creates a PerftConfig with default values.
func NewPerftConfig() *PerftConfig {
	return &PerftConfig{Depth: 3}
}

// Validate checks that the perft configuration is usable.
func (p *PerftConfig) Validate() error {
	if p.Depth < 1 || p.Depth > MaxPerftDepth {
		return fmt.Errorf("perft depth %d outside 1..%d: %w", p.Depth, MaxPerftDepth, errors.ErrInvalidConfig)
	}
	return nil
}

// StoreConfig holds settings for the game database.
type StoreConfig struct {
	// Path is the database directory; empty disables persistence
	Path string

	// InMemory keeps the database in memory for the life of the process
	InMemory bool
}

// NewStoreConfig creates a StoreConfig with default values.
func NewStoreConfig() *StoreConfig {
	return &StoreConfig{}
}

// Enabled reports whether games should be stored.
func (s *StoreConfig) Enabled() bool {
	return s.Path != "" || s.InMemory
}

// Validate checks that the store configuration is usable.
func (s *StoreConfig) Validate() error {
	if s.Path != "" && s.InMemory {
		return fmt.Errorf("store path %q given with in-memory store: %w", s.Path, errors.ErrInvalidConfig)
	}
	return nil
}
