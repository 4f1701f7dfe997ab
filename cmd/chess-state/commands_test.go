package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/lgbarn/chess-state-go/internal/config"
	"github.com/lgbarn/chess-state-go/internal/errors"
	"github.com/lgbarn/chess-state-go/internal/store"
	"github.com/lgbarn/chess-state-go/internal/testutil"
)

const foolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

func testConfig() (*config.Config, *bytes.Buffer, *bytes.Buffer) {
	var out, log bytes.Buffer
	cfg := config.NewConfig()
	cfg.OutputFile = &out
	cfg.LogFile = &log
	return cfg, &out, &log
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.OpenInMemory()
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRunPerft(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		depth  int
		divide bool
		want   []string
	}{
		{"initial depth 2", "", 2, false, []string{"Nodes searched: 400\n"}},
		{"divide", "", 1, true, []string{"a2a3: 1\n", "g1f3: 1\n", "Nodes searched: 20\n"}},
		{"from FEN", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", 1, false, []string{"Nodes searched: 5\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, out, _ := testConfig()
			cfg.Perft.FEN = tt.fen
			cfg.Perft.Depth = tt.depth
			cfg.Perft.Divide = tt.divide

			testutil.AssertNoError(t, run(context.Background(), cfg, "perft", nil))
			for _, w := range tt.want {
				testutil.AssertContains(t, out.String(), w)
			}
		})
	}
}

func TestRunPerftBadFEN(t *testing.T) {
	cfg, _, _ := testConfig()
	cfg.Perft.FEN = "8/8/8/8/8/8/8/8 w - - 0 1"
	err := run(context.Background(), cfg, "perft", nil)
	if !errors.Is(err, errors.ErrInvalidFEN) {
		t.Errorf("perft on bad FEN: got %v; want ErrInvalidFEN", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	cfg, _, _ := testConfig()
	err := run(context.Background(), cfg, "analyse", nil)
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("got %v; want ErrInvalidConfig", err)
	}
}

func TestStoreCommandsNeedDatabase(t *testing.T) {
	for _, cmd := range []string{"list", "show", "validate", "delete", "stats"} {
		cfg, _, _ := testConfig()
		err := run(context.Background(), cfg, cmd, nil)
		if !errors.Is(err, errors.ErrInvalidConfig) {
			t.Errorf("%s without a database: got %v; want ErrInvalidConfig", cmd, err)
		}
	}
}

func TestRunReplay(t *testing.T) {
	cfg, out, _ := testConfig()
	err := run(context.Background(), cfg, "replay", []string{"f2f3", "e7e5", "g2g4", "d8h4"})
	testutil.AssertNoError(t, err)

	got := out.String()
	testutil.AssertContains(t, got, "1. f2f3 e7e5 2. g2g4 d8h4\n")
	testutil.AssertContains(t, got, "4 . . . . . . P q\n")
	testutil.AssertContains(t, got, "FEN: "+foolsMateFEN)
	testutil.AssertContains(t, got, "Status: checkmate")
	testutil.AssertContains(t, got, "checks: 1")
}

func TestRunReplayJSON(t *testing.T) {
	cfg, out, _ := testConfig()
	cfg.Output.JSONFormat = true
	err := run(context.Background(), cfg, "replay", []string{"f2f3", "e7e5", "g2g4", "d8h4"})
	testutil.AssertNoError(t, err)

	var game struct {
		Result   string `json:"result"`
		FinalFEN string `json:"finalFEN"`
		PlyCount int    `json:"plyCount"`
	}
	testutil.AssertNoError(t, json.Unmarshal(out.Bytes(), &game))
	testutil.AssertEqual(t, game.Result, store.ResultBlackWins)
	testutil.AssertEqual(t, game.FinalFEN, foolsMateFEN)
	testutil.AssertEqual(t, game.PlyCount, 4)
}

func TestRunReplayIllegal(t *testing.T) {
	cfg, out, _ := testConfig()
	err := run(context.Background(), cfg, "replay", []string{"e2e4", "e7e5", "e4e5"})
	if !errors.Is(err, errors.ErrIllegalMove) {
		t.Fatalf("got %v; want ErrIllegalMove", err)
	}
	var gameErr *errors.GameError
	if !errors.As(err, &gameErr) || gameErr.PlyNum != 3 {
		t.Errorf("error %v should name ply 3", err)
	}
	if out.Len() != 0 {
		t.Errorf("failed replay wrote %q", out.String())
	}
}

func TestRunMoves(t *testing.T) {
	cfg, out, log := testConfig()
	cfg.Play.FEN = "4k3/8/8/8/8/8/8/4K3 w - - 0 1"
	testutil.AssertNoError(t, run(context.Background(), cfg, "moves", nil))

	testutil.AssertEqual(t, out.String(), "e1d1\ne1d2\ne1e2\ne1f1\ne1f2\n")
	testutil.AssertContains(t, log.String(), "5 legal move(s)")
}

func TestPlayAndStoreCommands(t *testing.T) {
	st := openTestStore(t)
	cfg, out, log := testConfig()
	cfg.Play.Games = 6
	cfg.Play.Workers = 3
	cfg.Play.MaxPlies = 30

	testutil.AssertNoError(t, runPlay(context.Background(), cfg, st))
	testutil.AssertEqual(t, strings.Count(out.String(), "[Game "), 6)
	testutil.AssertContains(t, log.String(), "6 game(s) played")

	recs, err := st.List()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(recs), 6)

	out.Reset()
	testutil.AssertNoError(t, runStoreCommand(cfg, st, "validate", nil))
	testutil.AssertEqual(t, out.String(), "")

	out.Reset()
	testutil.AssertNoError(t, runStoreCommand(cfg, st, "show", []string{recs[0].ID}))
	testutil.AssertContains(t, out.String(), recs[0].ID)

	out.Reset()
	testutil.AssertNoError(t, runStoreCommand(cfg, st, "stats", nil))
	testutil.AssertContains(t, out.String(), "Games:        6\n")

	testutil.AssertNoError(t, runStoreCommand(cfg, st, "delete", []string{recs[0].ID}))
	err = runStoreCommand(cfg, st, "show", []string{recs[0].ID})
	if !errors.Is(err, errors.ErrGameNotFound) {
		t.Errorf("show after delete: got %v; want ErrGameNotFound", err)
	}
}

func TestValidateReportsBadRecords(t *testing.T) {
	st := openTestStore(t)
	good := &store.Record{Moves: []string{"e2e4"}, Plies: 1, Result: store.ResultOngoing}
	bad := &store.Record{Moves: []string{"e2e5"}, Plies: 1, Result: store.ResultOngoing}
	testutil.AssertNoError(t, st.Save(good))
	testutil.AssertNoError(t, st.Save(bad))

	cfg, out, _ := testConfig()
	err := runStoreCommand(cfg, st, "validate", nil)
	if !errors.Is(err, errors.ErrInvalidRecord) {
		t.Fatalf("got %v; want ErrInvalidRecord", err)
	}
	testutil.AssertContains(t, out.String(), bad.ID)
	if strings.Contains(out.String(), good.ID) {
		t.Errorf("valid game reported: %q", out.String())
	}

	err = runStoreCommand(cfg, st, "validate", []string{good.ID})
	testutil.AssertNoError(t, err)
}

func TestPlaySuppressesDuplicates(t *testing.T) {
	st := openTestStore(t)
	cfg, _, log := testConfig()
	cfg.Play.Games = 40
	cfg.Play.Workers = 4
	cfg.Play.MaxPlies = 1
	cfg.Duplicate.Suppress = true

	testutil.AssertNoError(t, runPlay(context.Background(), cfg, st))

	stats, err := st.LoadStats()
	testutil.AssertNoError(t, err)
	if stats.GamesPlayed > 20 {
		t.Errorf("stored %d one-move games; only 20 first moves exist", stats.GamesPlayed)
	}
	testutil.AssertContains(t, log.String(), "unfinished, ")
	testutil.AssertTrue(t, !strings.Contains(log.String(), " 0 duplicate(s)"), "log %q", log.String())
}

func TestPlayStatsJSON(t *testing.T) {
	st := openTestStore(t)
	cfg, out, _ := testConfig()
	cfg.Play.Games = 2
	cfg.Play.MaxPlies = 10
	cfg.Verbosity = 0

	testutil.AssertNoError(t, runPlay(context.Background(), cfg, st))
	out.Reset()
	cfg.Output.JSONFormat = true
	testutil.AssertNoError(t, runStoreCommand(cfg, st, "stats", nil))

	var stats struct {
		GamesPlayed  int     `json:"games_played"`
		AveragePlies float64 `json:"average_plies"`
	}
	testutil.AssertNoError(t, json.Unmarshal(out.Bytes(), &stats))
	testutil.AssertEqual(t, stats.GamesPlayed, 2)
	testutil.AssertTrue(t, stats.AveragePlies > 0 && stats.AveragePlies <= 10)
}

func TestPlayCancelled(t *testing.T) {
	cfg, _, _ := testConfig()
	cfg.Play.Games = 50
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, cfg, "play", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v; want context.Canceled", err)
	}
}

func TestListFilters(t *testing.T) {
	st := openTestStore(t)
	mate := &store.Record{Moves: []string{"f2f3", "e7e5", "g2g4", "d8h4"}, Plies: 4, Result: store.ResultBlackWins, Reason: "checkmate"}
	short := &store.Record{Moves: []string{"e2e4"}, Plies: 1, Result: store.ResultOngoing}
	testutil.AssertNoError(t, st.Save(mate))
	testutil.AssertNoError(t, st.Save(short))

	tests := []struct {
		name   string
		filter config.FilterConfig
		want   []string
	}{
		{"everything", config.FilterConfig{}, []string{mate.ID, short.ID}},
		{"by result", config.FilterConfig{Result: store.ResultBlackWins}, []string{mate.ID}},
		{"by length", config.FilterConfig{MaxPlies: 2}, []string{short.ID}},
		{"by pattern", config.FilterConfig{FENPattern: "*/*/*/*/6Pq/*/*/*"}, []string{mate.ID}},
		{"by material", config.FilterConfig{Material: "QQ:"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, out, _ := testConfig()
			filter := tt.filter
			cfg.Filter = &filter
			testutil.AssertNoError(t, runStoreCommand(cfg, st, "list", nil))

			testutil.AssertEqual(t, strings.Count(out.String(), "[Game "), len(tt.want))
			for _, id := range tt.want {
				testutil.AssertContains(t, out.String(), id)
			}
		})
	}
}

func TestApplyFilterFlags(t *testing.T) {
	defer saveRestoreString(materialMatchExact, "KR:k")()
	defer saveRestoreString(resultFilter, "1-0")()
	defer saveRestoreInt(minLength, 10)()

	cfg := config.NewConfig()
	applyFlags(cfg)
	if cfg.Filter.Material != "KR:k" || !cfg.Filter.ExactMaterial {
		t.Errorf("material = %q exact %v; want KR:k exact", cfg.Filter.Material, cfg.Filter.ExactMaterial)
	}
	if cfg.Filter.Result != "1-0" || cfg.Filter.MinPlies != 10 {
		t.Errorf("Filter = %+v", cfg.Filter)
	}
}
