package processing

import (
	"context"
	"fmt"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/errors"
	"github.com/lgbarn/chess-state-go/internal/hashing"
	"github.com/lgbarn/chess-state-go/internal/player"
	"github.com/lgbarn/chess-state-go/internal/store"
)

// Limits bounds a play-out.
type Limits struct {
	// MaxPlies stops the game after this many moves are played (0 = no limit).
	MaxPlies int
	// RepetitionLimit ends the game as drawn when a position occurs this
	// many times (0 = never).
	RepetitionLimit int
}

// Outcome describes how a played-out game ended.
type Outcome struct {
	StartFEN string
	Result   string
	Reason   string
	Plies    int
	Moves    []string
	FinalFEN string
	Hash     uint64
}

// Record converts the outcome to its stored form.
func (o *Outcome) Record() *store.Record {
	return &store.Record{
		StartFEN: o.StartFEN,
		Moves:    append([]string(nil), o.Moves...),
		FinalFEN: o.FinalFEN,
		Result:   o.Result,
		Reason:   o.Reason,
		Plies:    o.Plies,
		Hash:     o.Hash,
	}
}

// PlayOut lets white and black choose moves until the game ends, maxPlies
// moves have been played or a position repeats three times. Whenever a
// chooser abstains, fallback picks.
func PlayOut(gs *engine.GameState, white, black, fallback player.Chooser, maxPlies int) (*Outcome, error) {
	return PlayOutWithLimits(context.Background(), gs, white, black, fallback, Limits{
		MaxPlies:        maxPlies,
		RepetitionLimit: DefaultRepetitionLimit,
	})
}

// PlayOutWithLimits is PlayOut with explicit limits. It stops with the
// context's error when ctx is cancelled between moves.
func PlayOutWithLimits(ctx context.Context, gs *engine.GameState, white, black, fallback player.Chooser, limits Limits) (*Outcome, error) {
	out := &Outcome{StartFEN: gs.FEN()}
	adj := NewAdjudicator(gs, limits.RepetitionLimit)

	for played := 0; ; played++ {
		verdict, legal := adj.Judge(gs)
		if verdict.Over {
			out.Result, out.Reason = verdict.Result, verdict.Reason
			break
		}
		if limits.MaxPlies > 0 && played >= limits.MaxPlies {
			out.Result, out.Reason = store.ResultOngoing, ReasonPlyLimit
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		chooser := white
		if gs.ToMove() == chess.Black {
			chooser = black
		}
		move, err := player.Select(gs, legal, chooser, fallback)
		if err != nil {
			return nil, &errors.GameError{Err: err, PlyNum: gs.Plies() + 1}
		}
		if err := gs.Apply(move); err != nil {
			return nil, &errors.GameError{Err: err, PlyNum: gs.Plies() + 1, MoveText: move.String()}
		}
		adj.Played(gs)
	}

	out.Plies = gs.Plies()
	out.Moves = gs.Notation()
	out.FinalFEN = gs.FEN()
	out.Hash = hashing.Hash(gs)
	return out, nil
}

// Replay rebuilds a game from its start position and move notation. The
// first move that cannot be played is reported as a *errors.GameError.
func Replay(startFEN string, notations []string) (*engine.GameState, error) {
	var final *engine.GameState
	err := ReplayEach(startFEN, notations, func(gs *engine.GameState) bool {
		final = gs
		return true
	})
	if err != nil {
		return nil, err
	}
	return final, nil
}

// ReplayEach replays a game like Replay, calling fn with the start position
// and again after every move. It stops as soon as fn returns false. fn sees
// the live state and must not keep or modify it.
func ReplayEach(startFEN string, notations []string, fn func(gs *engine.GameState) bool) error {
	gs, err := engine.NewGameStateFromFEN(startFEN)
	if err != nil {
		return err
	}
	if !fn(gs) {
		return nil
	}
	for i, text := range notations {
		if err := playText(gs, text); err != nil {
			return &errors.GameError{Err: err, PlyNum: i + 1, MoveText: text}
		}
		if !fn(gs) {
			return nil
		}
	}
	return nil
}

// playText applies one move written as start+end squares.
func playText(gs *engine.GameState, text string) error {
	from, to, err := chess.ParseMoveText(text)
	if err != nil {
		return err
	}
	move, ok := gs.FindLegal(gs.MoveFromSquares(from, to))
	if !ok {
		return errors.ErrIllegalMove
	}
	return gs.Apply(move)
}

// ValidationResult holds the result of record validation.
type ValidationResult struct {
	Valid    bool
	ErrorPly int
	ErrorMsg string
	Err      error
}

func invalid(err error) *ValidationResult {
	res := &ValidationResult{Err: err, ErrorMsg: err.Error()}
	var gameErr *errors.GameError
	if errors.As(err, &gameErr) {
		res.ErrorPly = gameErr.PlyNum
	}
	return res
}

// Validate replays a stored record and checks that what it claims about the
// final position holds.
func Validate(rec *store.Record) *ValidationResult {
	if rec.Result != "" && !isValidResult(rec.Result) {
		return invalid(&errors.GameError{Err: fmt.Errorf("result %q: %w", rec.Result, errors.ErrInvalidRecord), GameID: rec.ID})
	}

	startFEN := rec.StartFEN
	if startFEN == "" {
		startFEN = engine.InitialFEN
	}
	gs, err := Replay(startFEN, rec.Moves)
	if err != nil {
		var gameErr *errors.GameError
		if errors.As(err, &gameErr) {
			gameErr.GameID = rec.ID
		}
		return invalid(err)
	}

	switch {
	case rec.Plies != len(rec.Moves):
		return invalid(&errors.GameError{Err: fmt.Errorf("record claims %d plies, has %d moves: %w", rec.Plies, len(rec.Moves), errors.ErrInvalidRecord), GameID: rec.ID})
	case rec.FinalFEN != "" && rec.FinalFEN != gs.FEN():
		return invalid(&errors.GameError{Err: fmt.Errorf("final position %q, replay reaches %q: %w", rec.FinalFEN, gs.FEN(), errors.ErrInvalidRecord), GameID: rec.ID})
	case rec.Hash != 0 && rec.Hash != hashing.Hash(gs):
		return invalid(&errors.GameError{Err: fmt.Errorf("final hash %x, replay gives %x: %w", rec.Hash, hashing.Hash(gs), errors.ErrInvalidRecord), GameID: rec.ID})
	}
	return &ValidationResult{Valid: true}
}

// isValidResult checks if a result string is a valid game result.
func isValidResult(result string) bool {
	switch result {
	case store.ResultWhiteWins, store.ResultBlackWins, store.ResultDraw, store.ResultOngoing:
		return true
	default:
		return false
	}
}
