package session

import (
	"sync"
	"time"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/errors"
	"github.com/lgbarn/chess-state-go/internal/hashing"
	"github.com/lgbarn/chess-state-go/internal/player"
	"github.com/lgbarn/chess-state-go/internal/processing"
	"github.com/lgbarn/chess-state-go/internal/store"
)

// Game is one live game. All methods are safe for concurrent use; each
// holds the game's lock for the whole operation.
type Game struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	state     *engine.GameState
	startFEN  string
	updatedAt time.Time

	recorder        Recorder
	recorded        bool
	duplicates      *hashing.ThreadSafeDuplicateDetector
	repetitionLimit int

	adj     *processing.Adjudicator
	verdict processing.Verdict
	legal   []chess.Move
	judged  bool
}

// View is a read-only snapshot of a game for rendering.
type View struct {
	ID        string
	Board     chess.Board
	ToMove    chess.Colour
	Moves     []string
	LastMove  string
	Legal     []string
	Checkmate bool
	Stalemate bool
	InCheck   bool
	FEN       string
	Plies     int
	Result    string
	Reason    string
	UpdatedAt time.Time
}

// Over reports whether the viewed game has ended.
func (v View) Over() bool {
	return v.Result != "" && v.Result != store.ResultOngoing
}

// judge refreshes the verdict and the legal moves after the position changed.
// Callers hold g.mu.
func (g *Game) judge() {
	if g.judged {
		return
	}
	g.verdict, g.legal = g.adj.Judge(g.state)
	g.judged = true
}

func (g *Game) changed() {
	g.judged = false
	g.updatedAt = time.Now()
}

// Submit plays the move between two selected squares. The pair is matched
// against the legal moves, so the caller need not know about castling, en
// passant or promotion. The returned error is a *errors.GameError wrapping
// errors.ErrGameOver or errors.ErrIllegalMove when nothing was played.
//
// If the move ends the game and the recorder fails, the move stays played
// and the recorder's error is returned with it.
func (g *Game) Submit(from, to chess.Square) (chess.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.judge()
	text := from.String() + to.String()
	if g.verdict.Over {
		return chess.Move{}, g.gameError(errors.ErrGameOver, text)
	}
	move, ok := chess.FindMove(g.legal, g.state.MoveFromSquares(from, to))
	if !ok {
		return chess.Move{}, g.gameError(errors.ErrIllegalMove, text)
	}
	return move, g.play(move)
}

// SubmitText is Submit for a move written as start+end squares, e.g. "e2e4".
func (g *Game) SubmitText(text string) (chess.Move, error) {
	from, to, err := chess.ParseMoveText(text)
	if err != nil {
		return chess.Move{}, err
	}
	return g.Submit(from, to)
}

// PlayAI asks chooser for a move for the side to move and plays it. When the
// chooser abstains, fallback picks, and failing that a random legal move.
func (g *Game) PlayAI(chooser, fallback player.Chooser) (chess.Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.judge()
	if g.verdict.Over {
		return chess.Move{}, g.gameError(errors.ErrGameOver, "")
	}
	move, err := player.Select(g.state, g.legal, chooser, fallback)
	if err != nil {
		return chess.Move{}, g.gameError(err, "")
	}
	return move, g.play(move)
}

// play applies a legal move and records the game if it has just ended,
// unless the manager has already recorded the same game. Callers hold g.mu.
func (g *Game) play(move chess.Move) error {
	if err := g.state.Apply(move); err != nil {
		return g.gameError(err, move.String())
	}
	g.adj.Played(g.state)
	g.changed()

	g.judge()
	if !g.verdict.Over || g.recorded || g.recorder == nil {
		return nil
	}
	g.recorded = true
	rec := g.record()
	if g.duplicates != nil && g.duplicates.CheckAndAdd(hashing.NewGameSignature(rec.Hash, rec.Moves)) {
		return nil
	}
	if err := g.recorder.RecordGame(rec); err != nil {
		return &errors.GameError{Err: errors.Wrap(err, "recording game"), GameID: g.ID}
	}
	return nil
}

// Undo takes back the last move. It returns false when no move has been
// played. A game that had ended continues; it is not recorded again.
func (g *Game) Undo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Plies() == 0 {
		return false
	}
	g.state.Undo()
	g.adj.TakenBack()
	g.changed()
	return true
}

// Reset restarts the game from its starting position.
func (g *Game) Reset() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	gs, err := engine.NewGameStateFromFEN(g.startFEN)
	if err != nil {
		return &errors.GameError{Err: err, GameID: g.ID}
	}
	g.state = gs
	g.adj = processing.NewAdjudicator(gs, g.repetitionLimit)
	g.recorded = false
	g.changed()
	return nil
}

// View returns a snapshot of the game.
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.judge()
	v := View{
		ID:        g.ID,
		Board:     g.state.Board(),
		ToMove:    g.state.ToMove(),
		Moves:     g.state.Notation(),
		Legal:     make([]string, len(g.legal)),
		Checkmate: g.state.Checkmate(),
		Stalemate: g.state.Stalemate(),
		InCheck:   g.state.InCheck(),
		FEN:       g.state.FEN(),
		Plies:     g.state.Plies(),
		Result:    g.verdict.Result,
		Reason:    g.verdict.Reason,
		UpdatedAt: g.updatedAt,
	}
	for i, m := range g.legal {
		v.Legal[i] = m.String()
	}
	if last, ok := g.state.LastMove(); ok {
		v.LastMove = last.String()
	}
	return v
}

// Record returns the stored form of the game as it stands.
func (g *Game) Record() *store.Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.judge()
	return g.record()
}

// State returns a deep copy of the game state.
func (g *Game) State() *engine.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Clone()
}

// UpdatedAt returns the time of the last change.
func (g *Game) UpdatedAt() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.updatedAt
}

func (g *Game) record() *store.Record {
	return &store.Record{
		StartFEN: g.startFEN,
		Moves:    g.state.Notation(),
		FinalFEN: g.state.FEN(),
		Result:   g.verdict.Result,
		Reason:   g.verdict.Reason,
		Plies:    g.state.Plies(),
		Hash:     hashing.Hash(g.state),
	}
}

func (g *Game) gameError(err error, moveText string) error {
	return &errors.GameError{
		Err:      err,
		GameID:   g.ID,
		PlyNum:   g.state.Plies() + 1,
		MoveText: moveText,
	}
}
