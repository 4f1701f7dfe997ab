// Package player defines how a move-search collaborator hands its choice
// back to the game.
package player

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/errors"
)

// Chooser picks a move from the legal moves of the side to move. It must not
// modify gs. Returning false means the chooser has no preference.
type Chooser interface {
	ChooseMove(gs *engine.GameState, legal []chess.Move) (chess.Move, bool)
}

// ChooserFunc adapts an ordinary function to the Chooser interface.
type ChooserFunc func(gs *engine.GameState, legal []chess.Move) (chess.Move, bool)

// ChooseMove calls f(gs, legal).
func (f ChooserFunc) ChooseMove(gs *engine.GameState, legal []chess.Move) (chess.Move, bool) {
	return f(gs, legal)
}

// Random picks uniformly among the legal moves. It is safe for concurrent
// use.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom creates a random chooser with a fixed seed.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// ChooseMove returns a random legal move, or false when there is none.
func (r *Random) ChooseMove(_ *engine.GameState, legal []chess.Move) (chess.Move, bool) {
	if len(legal) == 0 {
		return chess.Move{}, false
	}
	r.mu.Lock()
	i := r.rng.Intn(len(legal))
	r.mu.Unlock()
	return legal[i], true
}

// Abstain is a chooser that never has a preference.
var Abstain = ChooserFunc(func(*engine.GameState, []chess.Move) (chess.Move, bool) {
	return chess.Move{}, false
})

// fallbackRandom substitutes for a missing or failing fallback chooser.
var fallbackRandom = NewRandom(uint64(time.Now().UnixNano()))

// Select asks chooser for a move and checks it against legal. The legal
// list's own copy of the move is returned so its flags match the board. When
// the chooser abstains, or is nil, fallback picks instead; a fallback that
// also abstains or picks a non-member is replaced by a uniformly random move.
func Select(gs *engine.GameState, legal []chess.Move, chooser, fallback Chooser) (chess.Move, error) {
	if len(legal) == 0 {
		return chess.Move{}, errors.ErrNoLegalMoves
	}

	if chooser != nil {
		if choice, ok := chooser.ChooseMove(gs, legal); ok {
			move, found := chess.FindMove(legal, choice)
			if !found {
				return chess.Move{}, fmt.Errorf("chooser returned %s: %w", choice, errors.ErrInvalidMove)
			}
			return move, nil
		}
	}

	if fallback != nil {
		if choice, ok := fallback.ChooseMove(gs, legal); ok {
			if move, found := chess.FindMove(legal, choice); found {
				return move, nil
			}
		}
	}
	move, _ := fallbackRandom.ChooseMove(gs, legal)
	return move, nil
}
