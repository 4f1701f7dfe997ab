package engine

import (
	"fmt"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/errors"
)

// moveEffect is the extra board work a special move does on top of the
// plain from/to relocation, together with its exact inverse.
type moveEffect struct {
	apply func(gs *GameState, move chess.Move)
	undo  func(gs *GameState, move chess.Move)
}

// moveEffects is indexed by chess.MoveKind.
var moveEffects = [chess.NumMoveKinds]moveEffect{
	chess.NormalMove: {
		apply: func(*GameState, chess.Move) {},
		undo:  func(*GameState, chess.Move) {},
	},
	chess.PromotionMove: {
		apply: applyPromotion,
		undo:  func(*GameState, chess.Move) {},
	},
	chess.EnPassantMove: {
		apply: applyEnPassant,
		undo:  undoEnPassant,
	},
	chess.CastleMove: {
		apply: applyCastleRook,
		undo:  undoCastleRook,
	},
}

// Apply plays a move on the board. The move must have been built against
// the current board, normally by picking it from LegalMoves; Apply does not
// check legality. It fails with errors.ErrInvalidMove, leaving the state
// untouched, when the move's piece snapshots disagree with the board.
func (gs *GameState) Apply(move chess.Move) error {
	if err := gs.checkSnapshot(move); err != nil {
		return err
	}
	gs.makeMove(move)
	return nil
}

// checkSnapshot verifies a move still describes the current board.
func (gs *GameState) checkSnapshot(move chess.Move) error {
	if !move.From.OnBoard() || !move.To.OnBoard() {
		return fmt.Errorf("move %s: square off board: %w", move, errors.ErrInvalidMove)
	}
	if move.PieceMoved == chess.Empty {
		return fmt.Errorf("move %s: no piece moved: %w", move, errors.ErrInvalidMove)
	}
	if got := gs.board.Get(move.From); got != move.PieceMoved {
		return fmt.Errorf("move %s: %s holds %v, move expects %v: %w",
			move, move.From, got, move.PieceMoved, errors.ErrInvalidMove)
	}
	if got := gs.board.Get(move.To); got != move.PieceCaptured {
		return fmt.Errorf("move %s: %s holds %v, move expects %v: %w",
			move, move.To, got, move.PieceCaptured, errors.ErrInvalidMove)
	}
	return nil
}

// makeMove applies a move without any checks.
func (gs *GameState) makeMove(move chess.Move) {
	gs.board.Set(move.From, chess.Empty)
	gs.board.Set(move.To, move.PieceMoved)
	gs.moveLog = append(gs.moveLog, move)
	gs.toMove = gs.toMove.Opposite()

	if chess.ExtractPiece(move.PieceMoved) == chess.King {
		gs.kings[move.Mover()] = move.To
	}

	moveEffects[move.Kind()].apply(gs, move)

	gs.enPassant = enPassantAfter(move)
	gs.epLog = append(gs.epLog, gs.enPassant)

	gs.castleRights = castleRightsAfter(gs.castleRights, move)
	gs.castleLog = append(gs.castleLog, gs.castleRights)
}

// Undo takes back the last applied move. It does nothing when no move has
// been played.
func (gs *GameState) Undo() {
	if len(gs.moveLog) == 0 {
		return
	}
	last := len(gs.moveLog) - 1
	move := gs.moveLog[last]
	gs.moveLog = gs.moveLog[:last]

	gs.board.Set(move.From, move.PieceMoved)
	gs.board.Set(move.To, move.PieceCaptured)
	gs.toMove = gs.toMove.Opposite()

	if chess.ExtractPiece(move.PieceMoved) == chess.King {
		gs.kings[move.Mover()] = move.From
	}

	moveEffects[move.Kind()].undo(gs, move)

	gs.castleLog = gs.castleLog[:len(gs.castleLog)-1]
	gs.castleRights = gs.castleLog[len(gs.castleLog)-1]
	gs.epLog = gs.epLog[:len(gs.epLog)-1]
	gs.enPassant = gs.epLog[len(gs.epLog)-1]
}

func applyPromotion(gs *GameState, move chess.Move) {
	gs.board.Set(move.To, chess.MakeColouredPiece(move.Mover(), move.PromoteTo))
}

// enPassantVictim is the square of the pawn removed by an en passant capture.
func enPassantVictim(move chess.Move) chess.Square {
	return chess.Sq(move.From.Row, move.To.Col)
}

func applyEnPassant(gs *GameState, move chess.Move) {
	gs.board.Set(enPassantVictim(move), chess.Empty)
}

func undoEnPassant(gs *GameState, move chess.Move) {
	gs.board.Set(move.To, chess.Empty)
	gs.board.Set(enPassantVictim(move), chess.MakeColouredPiece(move.Mover().Opposite(), chess.Pawn))
}

func applyCastleRook(gs *GameState, move chess.Move) {
	from, to := chess.CastleRookSquares(move.To)
	gs.board.Set(to, gs.board.Get(from))
	gs.board.Set(from, chess.Empty)
}

func undoCastleRook(gs *GameState, move chess.Move) {
	from, to := chess.CastleRookSquares(move.To)
	gs.board.Set(from, gs.board.Get(to))
	gs.board.Set(to, chess.Empty)
}

// enPassantAfter returns the en passant target created by a move: the
// square a pawn passed over on a two-square advance.
func enPassantAfter(move chess.Move) chess.Square {
	if !move.IsDoublePawnPush() {
		return chess.NoSquare
	}
	return chess.Sq((move.From.Row+move.To.Row)/2, move.From.Col)
}

// castleRightsAfter removes the rights lost by a move. A king move loses
// both flanks; a rook leaving or being captured on its original corner loses
// that flank.
func castleRightsAfter(rights chess.CastleRights, move chess.Move) chess.CastleRights {
	mover := move.Mover()
	switch chess.ExtractPiece(move.PieceMoved) {
	case chess.King:
		rights = rights.WithoutSide(mover)
	case chess.Rook:
		rights = withoutRookCorner(rights, mover, move.From)
	}
	if move.PieceCaptured != chess.Empty && chess.ExtractPiece(move.PieceCaptured) == chess.Rook {
		rights = withoutRookCorner(rights, mover.Opposite(), move.To)
	}
	return rights
}

// withoutRookCorner revokes the flank whose rook starts on sq, if any.
func withoutRookCorner(rights chess.CastleRights, colour chess.Colour, sq chess.Square) chess.CastleRights {
	if sq.Row != chess.HomeRow(colour) {
		return rights
	}
	switch sq.Col {
	case chess.KingsideRookCol:
		return rights.WithoutFlank(colour, true)
	case chess.QueensideRookCol:
		return rights.WithoutFlank(colour, false)
	}
	return rights
}
