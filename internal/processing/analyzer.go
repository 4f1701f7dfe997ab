// Package processing plays, replays, analyses and validates games.
package processing

import (
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/errors"
	"github.com/lgbarn/chess-state-go/internal/hashing"
)

// FiftyMoveLimit is the halfmove clock value from which a draw may be claimed.
const FiftyMoveLimit = 100

// GameAnalysis holds analysis results from replaying a game.
type GameAnalysis struct {
	FinalState    *engine.GameState
	Positions     []uint64 // Zobrist hashes for repetition detection
	HasRepetition bool
	HasPromotion  bool
	Captures      int
	Checks        int

	// Draw rule detection
	HasFiftyMoveRule        bool
	Has75MoveRule           bool
	Has5FoldRepetition      bool
	HasInsufficientMaterial bool
	HasMaterialOdds         bool
}

// FiftyMoveTriggered returns true if the game triggered the fifty-move rule.
func (ga *GameAnalysis) FiftyMoveTriggered() bool {
	return ga.HasFiftyMoveRule
}

// RepetitionDetected returns true if the game has a threefold repetition.
func (ga *GameAnalysis) RepetitionDetected() bool {
	return ga.HasRepetition
}

// AnalyzeGame replays a game and analyzes it for various features.
func AnalyzeGame(startFEN string, notations []string) (*GameAnalysis, error) {
	gs, err := engine.NewGameStateFromFEN(startFEN)
	if err != nil {
		return nil, err
	}
	analysis := &GameAnalysis{}

	posHash := hashing.Hash(gs)
	analysis.Positions = append(analysis.Positions, posHash)
	positionCount := map[uint64]int{posHash: 1}

	for i, text := range notations {
		if err := playText(gs, text); err != nil {
			return nil, &errors.GameError{Err: err, PlyNum: i + 1, MoveText: text}
		}
		last, _ := gs.LastMove()
		if last.IsCapture() {
			analysis.Captures++
		}
		if last.Promotion {
			analysis.HasPromotion = true
		}
		if gs.InCheck() {
			analysis.Checks++
		}

		rules := gs.AnalyzeDrawRules()
		if gs.HalfmoveClock() >= FiftyMoveLimit {
			analysis.HasFiftyMoveRule = true
		}
		if rules.Has75MoveRule {
			analysis.Has75MoveRule = true
		}

		posHash = hashing.Hash(gs)
		analysis.Positions = append(analysis.Positions, posHash)
		positionCount[posHash]++

		// 3-fold repetition
		if positionCount[posHash] >= 3 {
			analysis.HasRepetition = true
		}

		// 5-fold repetition (automatic draw)
		if positionCount[posHash] >= 5 {
			analysis.Has5FoldRepetition = true
		}
	}

	final := gs.AnalyzeDrawRules()
	analysis.HasInsufficientMaterial = final.HasInsufficientMaterial
	analysis.HasMaterialOdds = final.HasMaterialOdds
	analysis.FinalState = gs
	return analysis, nil
}
