package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lgbarn/chess-state-go/internal/config"
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/errors"
	"github.com/lgbarn/chess-state-go/internal/hashing"
	"github.com/lgbarn/chess-state-go/internal/matching"
	"github.com/lgbarn/chess-state-go/internal/output"
	"github.com/lgbarn/chess-state-go/internal/processing"
	"github.com/lgbarn/chess-state-go/internal/store"
	"github.com/lgbarn/chess-state-go/internal/worker"
)

// maxBufferSize caps the work channel of the self-play pool.
const maxBufferSize = 100

// run dispatches a command.
func run(ctx context.Context, cfg *config.Config, command string, args []string) error {
	switch command {
	case "perft":
		return runPerft(cfg)
	case "play":
		return withOptionalStore(cfg, func(st *store.Store) error {
			return runPlay(ctx, cfg, st)
		})
	case "interactive":
		return withOptionalStore(cfg, func(st *store.Store) error {
			return runInteractive(ctx, cfg, st)
		})
	case "replay":
		return runReplay(cfg, args)
	case "moves":
		return runMoves(cfg)
	case "list", "show", "validate", "delete", "stats":
		return withStore(cfg, command, func(st *store.Store) error {
			return runStoreCommand(cfg, st, command, args)
		})
	default:
		return fmt.Errorf("unknown command %q: %w", command, errors.ErrInvalidConfig)
	}
}

func runStoreCommand(cfg *config.Config, st *store.Store, command string, args []string) error {
	switch command {
	case "list":
		return runList(cfg, st)
	case "show":
		return runShow(cfg, st, args)
	case "validate":
		return runValidate(cfg, st, args)
	case "delete":
		return runDelete(cfg, st, args)
	default:
		return runStats(cfg, st)
	}
}

// openStore opens the configured game database, or returns nil when
// persistence is off.
func openStore(cfg *config.Config) (*store.Store, error) {
	switch {
	case cfg.Store.InMemory:
		return store.OpenInMemory()
	case cfg.Store.Path != "":
		return store.Open(cfg.Store.Path)
	}
	return nil, nil
}

func withOptionalStore(cfg *config.Config, fn func(*store.Store) error) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close() //nolint:errcheck // read-mostly close on exit
	}
	return fn(st)
}

func withStore(cfg *config.Config, command string, fn func(*store.Store) error) error {
	if !cfg.Store.Enabled() {
		return fmt.Errorf("%s needs a game database (-db): %w", command, errors.ErrInvalidConfig)
	}
	return withOptionalStore(cfg, fn)
}

// loadPosition returns the game at fen, or the initial position when fen is
// empty.
func loadPosition(fen string) (*engine.GameState, error) {
	if fen == "" {
		return engine.NewGameState(), nil
	}
	return engine.NewGameStateFromFEN(fen)
}

// runPerft counts the leaf positions reachable at the configured depth.
func runPerft(cfg *config.Config) error {
	gs, err := loadPosition(cfg.Perft.FEN)
	if err != nil {
		return err
	}

	start := time.Now()
	var nodes uint64
	if cfg.Perft.Divide {
		counts := gs.Divide(cfg.Perft.Depth)
		moves := make([]string, 0, len(counts))
		for m := range counts {
			moves = append(moves, m)
		}
		sort.Strings(moves)
		for _, m := range moves {
			fmt.Fprintf(cfg.OutputFile, "%s: %d\n", m, counts[m])
			nodes += counts[m]
		}
		fmt.Fprintln(cfg.OutputFile)
	} else {
		nodes = gs.Perft(cfg.Perft.Depth)
	}
	fmt.Fprintf(cfg.OutputFile, "Nodes searched: %d\n", nodes)

	if cfg.Verbosity > 1 {
		elapsed := time.Since(start)
		fmt.Fprintf(cfg.LogFile, "perft(%d) took %v (%.0f nodes/s)\n",
			cfg.Perft.Depth, elapsed, float64(nodes)/elapsed.Seconds())
	}
	return nil
}

// playSummary tallies a self-play batch.
type playSummary struct {
	games, whiteWins, blackWins, draws, unfinished, duplicates, failed int
}

func (s *playSummary) add(result string) {
	s.games++
	switch result {
	case store.ResultWhiteWins:
		s.whiteWins++
	case store.ResultBlackWins:
		s.blackWins++
	case store.ResultDraw:
		s.draws++
	default:
		s.unfinished++
	}
}

// runPlay plays a batch of self-play games on the worker pool. Results are
// handled in game order, so duplicate suppression keeps the first of equal
// games whatever the number of workers.
func runPlay(ctx context.Context, cfg *config.Config, st *store.Store) error {
	start, err := loadPosition(cfg.Play.FEN)
	if err != nil {
		return err
	}

	limits := processing.Limits{MaxPlies: cfg.Play.MaxPlies, RepetitionLimit: cfg.Play.RepetitionLimit}
	pool := worker.NewPoolWithOptions(worker.SelfPlay(ctx, limits),
		worker.WithWorkers(cfg.Play.Workers),
		worker.WithBufferSize(min(cfg.Play.Games, maxBufferSize)))
	pool.Start()

	go func() {
		defer pool.Close()
		for i := 0; i < cfg.Play.Games; i++ {
			item := worker.WorkItem{Index: i, State: start.Clone(), Seed: cfg.Play.Seed + uint64(i)}
			if err := pool.SubmitContext(ctx, item); err != nil {
				return
			}
		}
	}()
	results := worker.Collect(pool.Results())

	var detector *hashing.DuplicateDetector
	if cfg.Duplicate.Suppress {
		detector = hashing.NewDuplicateDetector(cfg.Duplicate.ExactMatch, cfg.Duplicate.MaxCapacity)
	}

	writer := output.NewWriter(cfg.OutputFile, cfg.Output)
	var summary playSummary
	for _, r := range results {
		if r.Error != nil {
			summary.failed++
			if cfg.Verbosity > 1 {
				fmt.Fprintf(cfg.LogFile, "game %d: %v\n", r.Index+1, r.Error)
			}
			continue
		}
		if detector != nil && detector.CheckAndAdd(hashing.NewGameSignature(r.Outcome.Hash, r.Outcome.Moves)) {
			summary.duplicates++
			continue
		}
		if st != nil {
			if err := st.RecordGame(r.Record); err != nil {
				return err
			}
		}
		if err := writer.WriteGame(r.Record); err != nil {
			return err
		}
		summary.add(r.Outcome.Result)
		if cfg.Verbosity > 1 {
			fmt.Fprintf(cfg.LogFile, "game %d: %s (%s) in %d plies\n",
				r.Index+1, r.Outcome.Result, r.Outcome.Reason, r.Outcome.Plies)
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "%d game(s) played: %d white win(s), %d black win(s), %d draw(s), %d unfinished, %d duplicate(s).\n",
			summary.games, summary.whiteWins, summary.blackWins, summary.draws, summary.unfinished, summary.duplicates)
	}
	return ctx.Err()
}

// runReplay replays moves from the starting position and reports where they
// lead.
func runReplay(cfg *config.Config, moves []string) error {
	fen := cfg.Play.FEN
	if fen == "" {
		fen = engine.InitialFEN
	}
	analysis, err := processing.AnalyzeGame(fen, moves)
	if err != nil {
		return err
	}
	gs := analysis.FinalState

	rec := &store.Record{
		StartFEN: fen,
		Moves:    gs.Notation(),
		FinalFEN: gs.FEN(),
		Result:   replayResult(gs, analysis),
		Plies:    gs.Plies(),
		Hash:     hashing.Hash(gs),
	}
	if cfg.Output.JSONFormat {
		return output.WriteRecordJSON(cfg.OutputFile, rec)
	}

	w := cfg.OutputFile
	output.WriteNotation(w, rec.Moves, output.NumberingFromFEN(fen), cfg.Output)
	fmt.Fprintln(w)
	output.WriteBoard(w, gs.Board())
	fmt.Fprintf(w, "FEN: %s\n", rec.FinalFEN)
	fmt.Fprintf(w, "Status: %s\n", positionStatus(gs))
	fmt.Fprintf(w, "Captures: %d, checks: %d\n", analysis.Captures, analysis.Checks)
	if features := gameFeatures(analysis); len(features) > 0 {
		fmt.Fprintf(w, "Features: %s\n", strings.Join(features, ", "))
	}
	return nil
}

// replayResult scores a replayed game. Only the rules that end a game
// without a claim are applied.
func replayResult(gs *engine.GameState, analysis *processing.GameAnalysis) string {
	switch {
	case gs.IsCheckmate():
		if gs.WhiteToMove() {
			return store.ResultBlackWins
		}
		return store.ResultWhiteWins
	case gs.Stalemate(), analysis.HasInsufficientMaterial, analysis.Has75MoveRule, analysis.Has5FoldRepetition:
		return store.ResultDraw
	}
	return store.ResultOngoing
}

func positionStatus(gs *engine.GameState) string {
	legal := gs.LegalMoves()
	switch {
	case gs.Checkmate():
		return "checkmate"
	case gs.Stalemate():
		return "stalemate"
	case gs.InCheck():
		return fmt.Sprintf("%v to move, in check, %d legal moves", gs.ToMove(), len(legal))
	}
	return fmt.Sprintf("%v to move, %d legal moves", gs.ToMove(), len(legal))
}

func gameFeatures(a *processing.GameAnalysis) []string {
	var features []string
	for _, f := range []struct {
		has  bool
		name string
	}{
		{a.HasPromotion, "promotion"},
		{a.HasRepetition, "threefold repetition"},
		{a.Has5FoldRepetition, "fivefold repetition"},
		{a.HasFiftyMoveRule, "50-move rule"},
		{a.Has75MoveRule, "75-move rule"},
		{a.HasInsufficientMaterial, "insufficient material"},
		{a.HasMaterialOdds, "material odds"},
	} {
		if f.has {
			features = append(features, f.name)
		}
	}
	return features
}

// runMoves lists the legal moves of the starting position.
func runMoves(cfg *config.Config) error {
	gs, err := loadPosition(cfg.Play.FEN)
	if err != nil {
		return err
	}
	legal := gs.LegalMoves()
	notation := make([]string, len(legal))
	for i, m := range legal {
		notation[i] = m.String()
	}
	sort.Strings(notation)

	for _, m := range notation {
		fmt.Fprintln(cfg.OutputFile, m)
	}
	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "%d legal move(s); %s\n", len(legal), positionStatus(gs))
	}
	return nil
}

// runList writes the stored games that pass the configured filter.
func runList(cfg *config.Config, st *store.Store) error {
	filter, err := matching.NewGameFilterFromConfig(cfg.Filter)
	if err != nil {
		return err
	}
	recs, err := st.List()
	if err != nil {
		return err
	}
	matched := filter.Filter(recs)
	if cfg.Verbosity > 1 && filter.HasCriteria() {
		fmt.Fprintf(cfg.LogFile, "%d of %d game(s) matched\n", len(matched), len(recs))
	}
	return writeRecords(cfg, matched)
}

// runShow writes the games with the given IDs. A single game in JSON is
// written as a bare object rather than a list.
func runShow(cfg *config.Config, st *store.Store, ids []string) error {
	recs, err := loadRecords(st, ids)
	if err != nil {
		return err
	}
	if cfg.Output.JSONFormat && len(recs) == 1 {
		writer := output.NewJSONWriterSingle(cfg.OutputFile)
		if err := writer.WriteGame(recs[0]); err != nil {
			return err
		}
		return writer.Close()
	}
	return writeRecords(cfg, recs)
}

func loadRecords(st *store.Store, ids []string) ([]*store.Record, error) {
	recs := make([]*store.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := st.Load(id)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func writeRecords(cfg *config.Config, recs []*store.Record) error {
	writer := output.NewWriter(cfg.OutputFile, cfg.Output)
	for _, rec := range recs {
		if err := writer.WriteGame(rec); err != nil {
			return err
		}
	}
	return writer.Close()
}

// runValidate replays stored games and reports the ones whose records do
// not hold. With no IDs every stored game is checked.
func runValidate(cfg *config.Config, st *store.Store, ids []string) error {
	var recs []*store.Record
	var err error
	if len(ids) == 0 {
		recs, err = st.List()
	} else {
		recs, err = loadRecords(st, ids)
	}
	if err != nil {
		return err
	}

	invalid := 0
	for _, rec := range recs {
		res := processing.Validate(rec)
		if res.Valid {
			if cfg.Verbosity > 1 {
				fmt.Fprintf(cfg.OutputFile, "%s: ok\n", rec.ID)
			}
			continue
		}
		invalid++
		fmt.Fprintf(cfg.OutputFile, "%s: %s\n", rec.ID, res.ErrorMsg)
	}

	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "%d game(s) checked, %d invalid.\n", len(recs), invalid)
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d game(s): %w", invalid, len(recs), errors.ErrInvalidRecord)
	}
	return nil
}

func runDelete(cfg *config.Config, st *store.Store, ids []string) error {
	for _, id := range ids {
		if err := st.Delete(id); err != nil {
			return err
		}
		if cfg.Verbosity > 1 {
			fmt.Fprintf(cfg.LogFile, "deleted %s\n", id)
		}
	}
	return nil
}

func runStats(cfg *config.Config, st *store.Store) error {
	stats, err := st.LoadStats()
	if err != nil {
		return err
	}
	if cfg.Output.JSONFormat {
		return output.WriteStatsJSON(cfg.OutputFile, stats)
	}

	w := cfg.OutputFile
	fmt.Fprintf(w, "Games:        %d\n", stats.GamesPlayed)
	fmt.Fprintf(w, "White wins:   %d\n", stats.WhiteWins)
	fmt.Fprintf(w, "Black wins:   %d\n", stats.BlackWins)
	fmt.Fprintf(w, "Draws:        %d\n", stats.Draws)
	fmt.Fprintf(w, "Average plies: %.1f\n", stats.AveragePlies())
	fmt.Fprintf(w, "Longest game: %d\n", stats.LongestGame)
	return nil
}
