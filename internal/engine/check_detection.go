package engine

import "github.com/lgbarn/chess-state-go/internal/chess"

// SquareUnderAttack returns true if the opponent of the side to move attacks
// the square.
func (gs *GameState) SquareUnderAttack(sq chess.Square) bool {
	return gs.isSquareAttacked(sq, gs.toMove.Opposite())
}

// InCheck returns true if the side to move's king is attacked.
func (gs *GameState) InCheck() bool {
	return gs.kingAttacked(gs.toMove)
}

// kingAttacked returns true if the king of colour is attacked.
func (gs *GameState) kingAttacked(colour chess.Colour) bool {
	return gs.isSquareAttacked(gs.kings[colour], colour.Opposite())
}

// isSquareAttacked returns true if the square is attacked by the given colour.
// Pawn attacks are diagonal only, so empty squares a king would cross while
// castling are judged the same way as occupied ones.
func (gs *GameState) isSquareAttacked(sq chess.Square, byColour chess.Colour) bool {
	if !sq.OnBoard() {
		return false
	}

	// Check pawn attacks
	pawn := chess.MakeColouredPiece(byColour, chess.Pawn)
	pawnRow := sq.Row - chess.Forward(byColour) // attackers sit one row behind
	for _, dc := range []int{-1, 1} {
		if gs.board.Get(chess.Sq(pawnRow, sq.Col+dc)) == pawn {
			return true
		}
	}

	// Check knight attacks
	knight := chess.MakeColouredPiece(byColour, chess.Knight)
	for _, off := range knightOffsets {
		if gs.board.Get(sq.Offset(off[0], off[1])) == knight {
			return true
		}
	}

	// Check king attacks
	king := chess.MakeColouredPiece(byColour, chess.King)
	for _, off := range allDirs {
		if gs.board.Get(sq.Offset(off[0], off[1])) == king {
			return true
		}
	}

	queen := chess.MakeColouredPiece(byColour, chess.Queen)

	// Check sliding pieces (bishop, queen) along diagonals
	if gs.rayHits(sq, diagonalDirs, chess.MakeColouredPiece(byColour, chess.Bishop), queen) {
		return true
	}

	// Check sliding pieces (rook, queen) along straight lines
	return gs.rayHits(sq, orthogonalDirs, chess.MakeColouredPiece(byColour, chess.Rook), queen)
}

// rayHits reports whether the first piece met along any of dirs is one of
// the two given sliders.
func (gs *GameState) rayHits(sq chess.Square, dirs [][2]int, slider, queen chess.Piece) bool {
	for _, dir := range dirs {
		for at := sq.Offset(dir[0], dir[1]); at.OnBoard(); at = at.Offset(dir[0], dir[1]) {
			piece := gs.board.Get(at)
			if piece == chess.Empty {
				continue
			}
			if piece == slider || piece == queen {
				return true
			}
			break // Blocked
		}
	}
	return false
}
