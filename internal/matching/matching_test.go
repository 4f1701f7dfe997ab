package matching

import (
	"testing"

	"github.com/lgbarn/chess-state-go/internal/config"
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/errors"
	"github.com/lgbarn/chess-state-go/internal/store"
	"github.com/lgbarn/chess-state-go/internal/testutil"
)

func TestMaterialMatcher(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		pattern string
		exact   bool
		want    bool
	}{
		{"full set exact", "", "KQRRBBNNPPPPPPPP:kqrrbbnnpppppppp", true, true},
		{"queens minimal", "", "Q:q", false, true},
		{"queens exact", "", "Q:q", true, false},
		{"two white queens", "", "QQ:", false, false},
		{"lower case white side", "", "qr:", false, true},
		{"rook ending kings implied", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", "R:", true, true},
		{"rook ending kings named", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", "KR:k", true, true},
		{"rook ending missing rook", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", "K:k", true, false},
		{"black side only", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", ":r", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mm, err := NewMaterialMatcher(tt.pattern, tt.exact)
			testutil.AssertNoError(t, err)
			testutil.AssertTrue(t, mm.HasCriteria())

			board := testutil.MustGameState(t, tt.fen).Board()
			if got := mm.MatchBoard(&board); got != tt.want {
				t.Errorf("MatchBoard(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestMaterialMatcherRejectsBadPatterns(t *testing.T) {
	for _, pattern := range []string{"QX:q", "Q:q:r", "Q1:q"} {
		_, err := NewMaterialMatcher(pattern, false)
		if !errors.Is(err, errors.ErrInvalidConfig) {
			t.Errorf("NewMaterialMatcher(%q) error = %v, want ErrInvalidConfig", pattern, err)
		}
	}

	var none *MaterialMatcher
	testutil.AssertFalse(t, none.HasCriteria())
}

func TestMatchRank(t *testing.T) {
	tests := []struct {
		board   string
		pattern string
		want    bool
	}{
		{"RNBQKBNR", "RNBQKBNR", true},
		{"RNBQKBNR", "RNBQKBN?", true},
		{"____P___", "4P3", true},
		{"____P___", "4p3", false},
		{"____P___", "*P*", true},
		{"____P___", "*A*", true},
		{"____P___", "*a*", false},
		{"____P___", "!*", false},
		{"rnbqkbnr", "!!!!!!!!", true},
		{"rnbqkbnr", "aaaaaaaa", true},
		{"________", "8", true},
		{"________", "7", false},
		{"________", "*", true},
		{"_______k", "*k", true},
		{"_______k", "_*", true},
	}

	for _, tt := range tests {
		if got := matchRank(tt.board, tt.pattern); got != tt.want {
			t.Errorf("matchRank(%q, %q) = %v, want %v", tt.board, tt.pattern, got, tt.want)
		}
	}
}

func TestPositionMatcher(t *testing.T) {
	pm := NewPositionMatcher()
	testutil.AssertNoError(t, pm.AddPattern("*/*/*/*/4P3/*/*/*", "e4 pawn", true))
	testutil.AssertEqual(t, pm.PatternCount(), 2)

	initial := testutil.MustGameState(t, "").Board()
	testutil.AssertNil(t, pm.MatchBoard(&initial))

	afterE4 := testutil.MustGameState(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1").Board()
	match := pm.MatchBoard(&afterE4)
	testutil.AssertNotNil(t, match)
	testutil.AssertEqual(t, match.Label, "e4 pawn")

	blackE5 := testutil.MustGameState(t, "4k3/8/8/4p3/8/8/8/4K3 w - - 0 1").Board()
	match = pm.MatchBoard(&blackE5)
	testutil.AssertNotNil(t, match, "inverted pattern")
	testutil.AssertEqual(t, match.Pattern, "*/*/*/4p3/*/*/*/*")
}

func TestPositionMatcherExactFEN(t *testing.T) {
	pm := NewPositionMatcher()
	testutil.AssertNoError(t, pm.AddFEN(engine.InitialFEN, "start"))

	// Side to move and clocks do not count.
	gs := testutil.MustGameState(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b - - 12 40")
	board := gs.Board()
	match := pm.MatchBoard(&board)
	testutil.AssertNotNil(t, match)
	testutil.AssertTrue(t, match.IsExact)

	testutil.AssertError(t, pm.AddFEN("not a fen", ""))
	testutil.AssertError(t, pm.AddPattern("8/8/8", "", false))
}

func foolsMate() *store.Record {
	return &store.Record{
		ID:     "fools-mate",
		Moves:  []string{"f2f3", "e7e5", "g2g4", "d8h4"},
		Result: store.ResultBlackWins,
		Reason: "checkmate",
		Plies:  4,
	}
}

func shortGame() *store.Record {
	return &store.Record{ID: "short", Moves: []string{"e2e4"}, Result: store.ResultOngoing, Plies: 1}
}

func TestGameFilterMatch(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.FilterConfig
		wantFools bool
		wantShort bool
	}{
		{"no criteria", config.FilterConfig{}, true, true},
		{"result", config.FilterConfig{Result: store.ResultBlackWins}, true, false},
		{"reason", config.FilterConfig{Reason: "checkmate"}, true, false},
		{"min plies", config.FilterConfig{MinPlies: 2}, true, false},
		{"max plies", config.FilterConfig{MaxPlies: 2}, false, true},
		{"queen on h4", config.FilterConfig{FENPattern: "*/*/*/*/*q/*/*/*"}, true, false},
		{"pawn on e4", config.FilterConfig{FENPattern: "*/*/*/*/4P3/*/*/*"}, false, true},
		{"start material", config.FilterConfig{Material: "KQRRBBNNPPPPPPPP:kqrrbbnnpppppppp", ExactMaterial: true}, true, true},
		{"material lost", config.FilterConfig{Material: "Q:", ExactMaterial: true}, false, false},
		{
			"material and pattern",
			config.FilterConfig{Material: "Q:q", FENPattern: "*/*/*/*/6Pq/*/*/*"},
			true, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			gf, err := NewGameFilterFromConfig(&cfg)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, gf.Match(foolsMate()), tt.wantFools, "fool's mate")
			testutil.AssertEqual(t, gf.Match(shortGame()), tt.wantShort, "short game")
		})
	}
}

func TestGameFilterSkipsUnplayableGames(t *testing.T) {
	gf := NewGameFilter()
	testutil.AssertNoError(t, gf.PositionMatcher.AddPattern("*/*/*/*/*/*/*/*", "", false))

	broken := &store.Record{Moves: []string{"e2e5"}, Plies: 1}
	testutil.AssertFalse(t, gf.Match(broken))
	testutil.AssertTrue(t, gf.Match(shortGame()))
}

func TestGameFilterFilter(t *testing.T) {
	recs := []*store.Record{foolsMate(), shortGame()}

	gf := NewGameFilter()
	testutil.AssertFalse(t, gf.HasCriteria())
	testutil.AssertEqual(t, len(gf.Filter(recs)), 2)

	gf.MinPlies = 3
	testutil.AssertTrue(t, gf.HasCriteria())
	got := gf.Filter(recs)
	testutil.AssertEqual(t, len(got), 1)
	testutil.AssertEqual(t, got[0].ID, "fools-mate")
}

func TestNewGameFilterFromConfigErrors(t *testing.T) {
	_, err := NewGameFilterFromConfig(&config.FilterConfig{Material: "Z:"})
	testutil.AssertTrue(t, errors.Is(err, errors.ErrInvalidConfig), "got %v", err)

	_, err = NewGameFilterFromConfig(&config.FilterConfig{FENPattern: "8/8"})
	testutil.AssertTrue(t, errors.Is(err, errors.ErrInvalidConfig), "got %v", err)
}
