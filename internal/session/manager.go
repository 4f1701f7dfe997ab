// Package session keeps the games a rendering or input layer is driving and
// serialises every change to each of them.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/errors"
	"github.com/lgbarn/chess-state-go/internal/hashing"
	"github.com/lgbarn/chess-state-go/internal/processing"
	"github.com/lgbarn/chess-state-go/internal/store"
)

// Recorder receives the record of each game that ends.
type Recorder interface {
	RecordGame(rec *store.Record) error
}

// Manager owns the live games by ID.
type Manager struct {
	mu              sync.RWMutex
	games           map[string]*Game
	recorder        Recorder
	repetitionLimit int
	duplicates      *hashing.ThreadSafeDuplicateDetector
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithRecorder sends finished games to r.
func WithRecorder(r Recorder) ManagerOption {
	return func(m *Manager) {
		m.recorder = r
	}
}

// WithRepetitionLimit ends games as drawn once a position occurs n times.
// Zero disables the rule.
func WithRepetitionLimit(n int) ManagerOption {
	return func(m *Manager) {
		m.repetitionLimit = n
	}
}

// WithDuplicateSuppression skips recording a finished game that repeats one
// already recorded by any game of the manager. With exactMatch the move
// sequences must agree as well as the final positions.
func WithDuplicateSuppression(exactMatch bool, maxCapacity int) ManagerOption {
	return func(m *Manager) {
		m.duplicates = hashing.NewThreadSafeDuplicateDetector(exactMatch, maxCapacity)
	}
}

// NewManager creates an empty manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		games:           make(map[string]*Game),
		repetitionLimit: processing.DefaultRepetitionLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewGame starts a game at the standard initial position.
func (m *Manager) NewGame() *Game {
	return m.add(engine.NewGameState())
}

// NewGameFromFEN starts a game at the given position.
func (m *Manager) NewGameFromFEN(fen string) (*Game, error) {
	gs, err := engine.NewGameStateFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return m.add(gs), nil
}

func (m *Manager) add(gs *engine.GameState) *Game {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	g := &Game{
		ID:              uuid.NewString(),
		CreatedAt:       now,
		updatedAt:       now,
		state:           gs,
		startFEN:        gs.FEN(),
		recorder:        m.recorder,
		duplicates:      m.duplicates,
		repetitionLimit: m.repetitionLimit,
		adj:             processing.NewAdjudicator(gs, m.repetitionLimit),
	}
	m.games[g.ID] = g
	return g
}

// Get returns the game with the given ID.
func (m *Manager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrGameNotFound, "game %s", id)
	}
	return g, nil
}

// Delete forgets the game with the given ID.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[id]; !ok {
		return errors.Wrapf(errors.ErrGameNotFound, "game %s", id)
	}
	delete(m.games, id)
	return nil
}

// List returns the IDs of all live games, oldest first.
func (m *Manager) List() []string {
	m.mu.RLock()
	games := make([]*Game, 0, len(m.games))
	for _, g := range m.games {
		games = append(games, g)
	}
	m.mu.RUnlock()

	sort.Slice(games, func(i, j int) bool {
		if games[i].CreatedAt.Equal(games[j].CreatedAt) {
			return games[i].ID < games[j].ID
		}
		return games[i].CreatedAt.Before(games[j].CreatedAt)
	})
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	return ids
}

// Len returns the number of live games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Duplicates returns how many finished games were not recorded as
// duplicates and how many distinct games were recorded.
func (m *Manager) Duplicates() (duplicates, unique int) {
	if m.duplicates == nil {
		return 0, 0
	}
	return m.duplicates.Counts()
}
