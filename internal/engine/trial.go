package engine

import "github.com/lgbarn/chess-state-go/internal/chess"

// trial is a move played on the shared state only to look at the resulting
// position. Every trial must be rolled back before the state is used for
// anything else; between begin and rollback the board shows the trial move.
type trial struct {
	gs    *GameState
	mover chess.Colour
	plies int
}

// beginTrial plays move and returns the open trial.
func (gs *GameState) beginTrial(move chess.Move) trial {
	t := trial{gs: gs, mover: gs.toMove, plies: len(gs.moveLog)}
	gs.makeMove(move)
	return t
}

// exposesKing reports whether the mover's king is attacked after the move.
func (t trial) exposesKing() bool {
	return t.gs.kingAttacked(t.mover)
}

// rollback takes the trial move back.
func (t trial) rollback() {
	if len(t.gs.moveLog) != t.plies+1 {
		panic("engine: trial rolled back out of order")
	}
	t.gs.Undo()
}

// leavesKingSafe plays move as a trial and reports whether the mover's
// king is safe afterwards. The state is unchanged on return.
func (gs *GameState) leavesKingSafe(move chess.Move) bool {
	t := gs.beginTrial(move)
	defer t.rollback()
	return !t.exposesKing()
}
