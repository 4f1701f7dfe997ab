package engine

import "github.com/lgbarn/chess-state-go/internal/chess"

// LegalMoves returns the legal moves of the side to move and refreshes the
// checkmate and stalemate flags for the current position.
//
// Candidates are filtered by trial: each pseudo-legal move is played, the
// mover's king is tested, and the move is taken back. The en passant target
// and castling rights are restored afterwards so no trial side effect leaks.
func (gs *GameState) LegalMoves() []chess.Move {
	savedEnPassant, savedRights := gs.enPassant, gs.castleRights
	defer func() {
		gs.enPassant, gs.castleRights = savedEnPassant, savedRights
	}()

	mover := gs.toMove
	inCheck := gs.kingAttacked(mover)

	candidates := gs.pseudoLegalMoves(mover, make([]chess.Move, 0, 64))
	legal := candidates[:0]
	for _, move := range candidates {
		if gs.leavesKingSafe(move) {
			legal = append(legal, move)
		}
	}
	legal = gs.castleMoves(mover, legal)

	gs.checkmate = len(legal) == 0 && inCheck
	gs.stalemate = len(legal) == 0 && !inCheck

	return legal
}

// IsLegal reports whether a move with the same start and end squares is
// among the legal moves.
func (gs *GameState) IsLegal(move chess.Move) bool {
	_, ok := gs.FindLegal(move)
	return ok
}

// FindLegal matches a candidate, typically built from two selected squares,
// against the legal moves and returns the legal move with its full flags.
func (gs *GameState) FindLegal(candidate chess.Move) (chess.Move, bool) {
	return chess.FindMove(gs.LegalMoves(), candidate)
}

// MoveFromSquares builds a candidate move from two squares against the
// current board.
func (gs *GameState) MoveFromSquares(from, to chess.Square) chess.Move {
	return chess.NewMove(from, to, &gs.board)
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (gs *GameState) HasLegalMoves() bool {
	return len(gs.LegalMoves()) > 0
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func (gs *GameState) IsCheckmate() bool {
	gs.LegalMoves()
	return gs.checkmate
}

// IsStalemate returns true if the position is stalemate for the side to move.
func (gs *GameState) IsStalemate() bool {
	gs.LegalMoves()
	return gs.stalemate
}
