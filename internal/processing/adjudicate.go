package processing

import (
	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/hashing"
	"github.com/lgbarn/chess-state-go/internal/store"
)

// DefaultRepetitionLimit is the number of occurrences of one position that
// ends a game.
const DefaultRepetitionLimit = 3

// Reasons a game ends.
const (
	ReasonCheckmate            = "checkmate"
	ReasonStalemate            = "stalemate"
	ReasonRepetition           = "repetition"
	ReasonInsufficientMaterial = "insufficient material"
	ReasonSeventyFiveMoves     = "75-move rule"
	ReasonPlyLimit             = "ply limit"
)

// Verdict is the adjudicated state of a game.
type Verdict struct {
	Over   bool
	Result string
	Reason string
}

// Adjudicator decides when a game is over. It follows one game and must be
// told about every move played and taken back so it can count repetitions.
type Adjudicator struct {
	tracker         *hashing.RepetitionTracker
	repetitionLimit int
}

// NewAdjudicator starts following gs from its current position. A
// repetitionLimit of 0 or less disables the repetition rule.
func NewAdjudicator(gs *engine.GameState, repetitionLimit int) *Adjudicator {
	return &Adjudicator{
		tracker:         hashing.NewRepetitionTracker(gs),
		repetitionLimit: repetitionLimit,
	}
}

// Played records the position reached after a move.
func (a *Adjudicator) Played(gs *engine.GameState) {
	a.tracker.Record(gs)
}

// TakenBack forgets the position left by an undone move.
func (a *Adjudicator) TakenBack() {
	a.tracker.Forget()
}

// Judge refreshes the terminal flags of gs and decides whether the game is
// over. It also returns the legal moves it computed on the way.
func (a *Adjudicator) Judge(gs *engine.GameState) (Verdict, []chess.Move) {
	legal := gs.LegalMoves()

	switch {
	case gs.Checkmate():
		result := store.ResultWhiteWins
		if gs.ToMove() == chess.White {
			result = store.ResultBlackWins
		}
		return Verdict{Over: true, Result: result, Reason: ReasonCheckmate}, legal
	case gs.Stalemate():
		return drawn(ReasonStalemate), legal
	}

	if a.repetitionLimit > 0 && a.tracker.Count(hashing.Hash(gs)) >= a.repetitionLimit {
		return drawn(ReasonRepetition), legal
	}

	rules := gs.AnalyzeDrawRules()
	switch {
	case rules.HasInsufficientMaterial:
		return drawn(ReasonInsufficientMaterial), legal
	case rules.Has75MoveRule:
		return drawn(ReasonSeventyFiveMoves), legal
	}

	return Verdict{Result: store.ResultOngoing}, legal
}

func drawn(reason string) Verdict {
	return Verdict{Over: true, Result: store.ResultDraw, Reason: reason}
}
