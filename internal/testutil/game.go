// Package testutil provides shared test utilities for the chess-state-go project.
// These utilities reduce code duplication across test files and provide
// consistent test setup helpers.
package testutil

import (
	"testing"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/engine"
)

// MustGameState builds a game from a FEN string. An empty string yields the
// standard initial position. It calls t.Fatal if the FEN is rejected.
func MustGameState(t *testing.T, fen string) *engine.GameState {
	t.Helper()
	if fen == "" {
		return engine.NewGameState()
	}
	gs, err := engine.NewGameStateFromFEN(fen)
	if err != nil {
		t.Fatalf("failed to load FEN %q: %v", fen, err)
	}
	return gs
}

// LegalMove finds the legal move written as start+end squares, e.g. "e2e4".
// The boolean is false when the text is malformed or the move is not legal.
func LegalMove(gs *engine.GameState, text string) (chess.Move, bool) {
	from, to, err := chess.ParseMoveText(text)
	if err != nil {
		return chess.Move{}, false
	}
	return gs.FindLegal(gs.MoveFromSquares(from, to))
}

// MustPlay applies each move written as start+end squares. It calls
// t.Fatal on the first move that is not legal in the position reached.
func MustPlay(t *testing.T, gs *engine.GameState, moves ...string) {
	t.Helper()
	for i, text := range moves {
		move, ok := LegalMove(gs, text)
		if !ok {
			t.Fatalf("move %d %q is not legal in %s", i+1, text, gs.FEN())
		}
		if err := gs.Apply(move); err != nil {
			t.Fatalf("move %d %q: %v", i+1, text, err)
		}
	}
}

// MoveStrings returns the notation of each move, preserving order.
func MoveStrings(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}
