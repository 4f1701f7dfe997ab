// Package store persists finished and in-progress games in BadgerDB.
package store

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/lgbarn/chess-state-go/internal/errors"
)

// Game results in the usual score notation.
const (
	ResultWhiteWins = "1-0"
	ResultBlackWins = "0-1"
	ResultDraw      = "1/2-1/2"
	ResultOngoing   = "*"
)

// Storage keys
const (
	gamePrefix = "game/"
	keyStats   = "stats"
)

// Record is the stored form of one game.
type Record struct {
	ID        string    `json:"id"`
	StartFEN  string    `json:"start_fen"`
	Moves     []string  `json:"moves"`
	FinalFEN  string    `json:"final_fen"`
	Result    string    `json:"result"`
	Reason    string    `json:"reason,omitempty"`
	Plies     int       `json:"plies"`
	Hash      uint64    `json:"hash"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Finished reports whether the record holds a decided game.
func (r *Record) Finished() bool {
	return r.Result != "" && r.Result != ResultOngoing
}

// Stats aggregates results over every game recorded with RecordGame.
type Stats struct {
	GamesPlayed int `json:"games_played"`
	WhiteWins   int `json:"white_wins"`
	BlackWins   int `json:"black_wins"`
	Draws       int `json:"draws"`
	TotalPlies  int `json:"total_plies"`
	LongestGame int `json:"longest_game"`
}

// AveragePlies returns the mean game length, or 0 with no games.
func (s *Stats) AveragePlies() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalPlies) / float64(s.GamesPlayed)
}

// Store wraps BadgerDB for persistent storage
type Store struct {
	db *badger.DB
}

// Open opens or creates a database in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the Store.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open store")
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(gamePrefix + id)
}

// Save writes a record, assigning an ID and timestamps as needed. The
// record passed in is updated with the stored values.
func (s *Store) Save(rec *Record) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return saveRecord(txn, rec)
	})
}

func saveRecord(txn *badger.Txn, rec *Record) error {
	now := time.Now()
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return txn.Set(gameKey(rec.ID), data)
}

// Load reads the record with the given ID. It returns errors.ErrGameNotFound
// when there is none.
func (s *Store) Load(id string) (*Record, error) {
	rec := &Record{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if err == badger.ErrKeyNotFound {
			return errors.Wrapf(errors.ErrGameNotFound, "game %s", id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns every stored record, oldest first.
func (s *Store) List() ([]*Record, error) {
	var records []*Record
	prefix := []byte(gamePrefix)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rec := &Record{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			}); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// Delete removes the record with the given ID. It returns
// errors.ErrGameNotFound when there is none.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(gameKey(id)); err == badger.ErrKeyNotFound {
			return errors.Wrapf(errors.ErrGameNotFound, "game %s", id)
		} else if err != nil {
			return err
		}
		return txn.Delete(gameKey(id))
	})
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Store) LoadStats() (*Stats, error) {
	stats := &Stats{}
	err := s.db.View(func(txn *badger.Txn) error {
		return loadStats(txn, stats)
	})
	return stats, err
}

func loadStats(txn *badger.Txn, stats *Stats) error {
	item, err := txn.Get([]byte(keyStats))
	if err == badger.ErrKeyNotFound {
		return nil // Use empty stats
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
}

// RecordGame saves a finished game and updates the statistics in one
// transaction.
func (s *Store) RecordGame(rec *Record) error {
	return s.db.Update(func(txn *badger.Txn) error {
		stats := &Stats{}
		if err := loadStats(txn, stats); err != nil {
			return err
		}

		stats.GamesPlayed++
		stats.TotalPlies += rec.Plies
		if rec.Plies > stats.LongestGame {
			stats.LongestGame = rec.Plies
		}
		switch rec.Result {
		case ResultWhiteWins:
			stats.WhiteWins++
		case ResultBlackWins:
			stats.BlackWins++
		case ResultDraw:
			stats.Draws++
		}

		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(keyStats), data); err != nil {
			return err
		}
		return saveRecord(txn, rec)
	})
}
