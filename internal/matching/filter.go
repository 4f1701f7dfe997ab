package matching

import (
	"github.com/lgbarn/chess-state-go/internal/config"
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/processing"
	"github.com/lgbarn/chess-state-go/internal/store"
)

// GameFilter combines record criteria with position matching. A game
// matches when it meets every criterion that is set.
type GameFilter struct {
	Result   string
	Reason   string
	MinPlies int
	MaxPlies int // 0 = no limit

	Material        *MaterialMatcher
	PositionMatcher *PositionMatcher
}

// NewGameFilter creates a filter that matches every game.
func NewGameFilter() *GameFilter {
	return &GameFilter{PositionMatcher: NewPositionMatcher()}
}

// NewGameFilterFromConfig builds a filter from the configuration.
func NewGameFilterFromConfig(cfg *config.FilterConfig) (*GameFilter, error) {
	gf := NewGameFilter()
	gf.Result = cfg.Result
	gf.Reason = cfg.Reason
	gf.MinPlies = cfg.MinPlies
	gf.MaxPlies = cfg.MaxPlies

	if cfg.Material != "" {
		mm, err := NewMaterialMatcher(cfg.Material, cfg.ExactMaterial)
		if err != nil {
			return nil, err
		}
		gf.Material = mm
	}
	if cfg.FENPattern != "" {
		if err := gf.PositionMatcher.AddPattern(cfg.FENPattern, "", cfg.InvertPattern); err != nil {
			return nil, err
		}
	}
	return gf, nil
}

// HasCriteria reports whether the filter rejects anything.
func (gf *GameFilter) HasCriteria() bool {
	return gf.Result != "" || gf.Reason != "" || gf.MinPlies > 0 || gf.MaxPlies > 0 ||
		gf.Material.HasCriteria() || gf.PositionMatcher.PatternCount() > 0
}

// Match reports whether a stored game passes the filter. Material and
// position criteria hold if some position of the game, the start included,
// satisfies them; both may be met by different positions. The whole game
// is replayed, and a game whose moves cannot be replayed never matches.
func (gf *GameFilter) Match(rec *store.Record) bool {
	switch {
	case gf.Result != "" && rec.Result != gf.Result:
		return false
	case gf.Reason != "" && rec.Reason != gf.Reason:
		return false
	case rec.Plies < gf.MinPlies:
		return false
	case gf.MaxPlies > 0 && rec.Plies > gf.MaxPlies:
		return false
	}

	wantMaterial := gf.Material.HasCriteria()
	wantPosition := gf.PositionMatcher.PatternCount() > 0
	if !wantMaterial && !wantPosition {
		return true
	}

	startFEN := rec.StartFEN
	if startFEN == "" {
		startFEN = engine.InitialFEN
	}
	err := processing.ReplayEach(startFEN, rec.Moves, func(gs *engine.GameState) bool {
		board := gs.Board()
		if wantMaterial && gf.Material.MatchBoard(&board) {
			wantMaterial = false
		}
		if wantPosition && gf.PositionMatcher.MatchBoard(&board) != nil {
			wantPosition = false
		}
		return true
	})
	return err == nil && !wantMaterial && !wantPosition
}

// Filter returns the records that pass the filter, in order.
func (gf *GameFilter) Filter(recs []*store.Record) []*store.Record {
	if !gf.HasCriteria() {
		return recs
	}
	var out []*store.Record
	for _, rec := range recs {
		if gf.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}
