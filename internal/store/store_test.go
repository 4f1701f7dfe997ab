package store

import (
	"testing"
	"time"

	"github.com/lgbarn/chess-state-go/internal/errors"
	"github.com/lgbarn/chess-state-go/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func TestSaveLoad(t *testing.T) {
	s := openTestStore(t)

	rec := &Record{
		StartFEN: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Moves:    []string{"f2f3", "e7e5", "g2g4", "d8h4"},
		FinalFEN: "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3",
		Result:   ResultBlackWins,
		Reason:   "checkmate",
		Plies:    4,
		Hash:     0xABCDEF,
	}
	testutil.AssertNoError(t, s.Save(rec))
	testutil.AssertTrue(t, rec.ID != "", "Save assigns an ID")
	testutil.AssertFalse(t, rec.CreatedAt.IsZero(), "Save sets CreatedAt")

	got, err := s.Load(rec.ID)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Moves, rec.Moves)
	testutil.AssertEqual(t, got.Result, ResultBlackWins)
	testutil.AssertEqual(t, got.Hash, uint64(0xABCDEF))
	testutil.AssertTrue(t, got.CreatedAt.Equal(rec.CreatedAt))
	testutil.AssertTrue(t, got.Finished())
}

func TestSaveKeepsCreatedAt(t *testing.T) {
	s := openTestStore(t)

	rec := &Record{ID: "fixed", Result: ResultOngoing}
	testutil.AssertNoError(t, s.Save(rec))
	created := rec.CreatedAt

	time.Sleep(time.Millisecond)
	rec.Result = ResultDraw
	testutil.AssertNoError(t, s.Save(rec))

	got, err := s.Load("fixed")
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, got.CreatedAt.Equal(created))
	testutil.AssertTrue(t, got.UpdatedAt.After(created))
	testutil.AssertEqual(t, got.Result, ResultDraw)
}

func TestLoadMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Load("nope")
	testutil.AssertTrue(t, errors.Is(err, errors.ErrGameNotFound), "got %v", err)
}

func TestListAndDelete(t *testing.T) {
	s := openTestStore(t)

	ids := []string{"b-game", "a-game", "c-game"}
	for _, id := range ids {
		testutil.AssertNoError(t, s.Save(&Record{ID: id}))
		time.Sleep(time.Millisecond)
	}

	records, err := s.List()
	testutil.AssertNoError(t, err)
	got := make([]string, len(records))
	for i, r := range records {
		got[i] = r.ID
	}
	testutil.AssertEqual(t, got, ids, "records listed oldest first")

	testutil.AssertNoError(t, s.Delete("a-game"))
	err = s.Delete("a-game")
	testutil.AssertTrue(t, errors.Is(err, errors.ErrGameNotFound), "got %v", err)

	records, err = s.List()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(records), 2)
}

func TestListIgnoresStats(t *testing.T) {
	s := openTestStore(t)
	testutil.AssertNoError(t, s.RecordGame(&Record{Result: ResultDraw, Plies: 10}))

	records, err := s.List()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(records), 1)
}

func TestRecordGameStats(t *testing.T) {
	s := openTestStore(t)

	stats, err := s.LoadStats()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, *stats, Stats{})
	testutil.AssertEqual(t, stats.AveragePlies(), 0.0)

	games := []*Record{
		{Result: ResultWhiteWins, Plies: 30},
		{Result: ResultBlackWins, Plies: 4},
		{Result: ResultDraw, Plies: 80},
		{Result: ResultDraw, Plies: 6},
	}
	for _, g := range games {
		testutil.AssertNoError(t, s.RecordGame(g))
	}

	stats, err = s.LoadStats()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, *stats, Stats{
		GamesPlayed: 4,
		WhiteWins:   1,
		BlackWins:   1,
		Draws:       2,
		TotalPlies:  120,
		LongestGame: 80,
	})
	testutil.AssertEqual(t, stats.AveragePlies(), 30.0)
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, s.Save(&Record{ID: "persisted", Plies: 3}))
	testutil.AssertNoError(t, s.Close())

	s, err = Open(dir)
	testutil.AssertNoError(t, err)
	defer s.Close()

	got, err := s.Load("persisted")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got.Plies, 3)
}
