package hashing

import "github.com/lgbarn/chess-state-go/internal/engine"

// RepetitionTracker counts how often each position has occurred in one game.
// Record after every applied move and Forget after every undo.
type RepetitionTracker struct {
	counts  map[uint64]int
	history []uint64
}

// NewRepetitionTracker creates a tracker seeded with the current position.
func NewRepetitionTracker(gs *engine.GameState) *RepetitionTracker {
	r := &RepetitionTracker{counts: make(map[uint64]int)}
	r.Record(gs)
	return r
}

// Record counts the current position and returns how often it has now
// occurred.
func (r *RepetitionTracker) Record(gs *engine.GameState) int {
	key := Hash(gs)
	r.history = append(r.history, key)
	r.counts[key]++
	return r.counts[key]
}

// Forget removes the most recently recorded position.
func (r *RepetitionTracker) Forget() {
	if len(r.history) == 0 {
		return
	}
	key := r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	if r.counts[key]--; r.counts[key] == 0 {
		delete(r.counts, key)
	}
}

// Count returns how often the position with the given key has occurred.
func (r *RepetitionTracker) Count(key uint64) int {
	return r.counts[key]
}

// MaxCount returns the highest occurrence count of any position.
func (r *RepetitionTracker) MaxCount() int {
	highest := 0
	for _, n := range r.counts {
		if n > highest {
			highest = n
		}
	}
	return highest
}
