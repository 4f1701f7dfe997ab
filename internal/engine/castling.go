package engine

import "github.com/lgbarn/chess-state-go/internal/chess"

// CastleMoves returns the castle moves available to the side to move. Each
// candidate is already safe: the king is not in check and does not cross
// or land on an attacked square.
func (gs *GameState) CastleMoves() []chess.Move {
	return gs.castleMoves(gs.toMove, nil)
}

// castleMoves appends the castle moves of colour.
func (gs *GameState) castleMoves(colour chess.Colour, moves []chess.Move) []chess.Move {
	king := gs.kings[colour]
	home := chess.Sq(chess.HomeRow(colour), chess.KingHomeCol)
	if king != home || gs.board.Get(home) != chess.MakeColouredPiece(colour, chess.King) {
		return moves
	}
	if gs.isSquareAttacked(king, colour.Opposite()) {
		return moves
	}
	if gs.castleRights.Kingside(colour) {
		moves = gs.kingsideCastle(colour, king, moves)
	}
	if gs.castleRights.Queenside(colour) {
		moves = gs.queensideCastle(colour, king, moves)
	}
	return moves
}

// kingsideCastle needs both squares between king and rook empty and
// neither of them attacked.
func (gs *GameState) kingsideCastle(colour chess.Colour, king chess.Square, moves []chess.Move) []chess.Move {
	transit, landing := king.Offset(0, 1), king.Offset(0, 2)
	if !gs.hasCornerRook(colour, chess.KingsideRookCol) {
		return moves
	}
	if gs.board.Get(transit) != chess.Empty || gs.board.Get(landing) != chess.Empty {
		return moves
	}
	enemy := colour.Opposite()
	if gs.isSquareAttacked(transit, enemy) || gs.isSquareAttacked(landing, enemy) {
		return moves
	}
	return append(moves, chess.NewMove(king, landing, &gs.board, chess.AsCastle()))
}

// queensideCastle needs the three squares between king and rook empty; only
// the two the king crosses must be unattacked.
func (gs *GameState) queensideCastle(colour chess.Colour, king chess.Square, moves []chess.Move) []chess.Move {
	transit, landing, rookSide := king.Offset(0, -1), king.Offset(0, -2), king.Offset(0, -3)
	if !gs.hasCornerRook(colour, chess.QueensideRookCol) {
		return moves
	}
	if gs.board.Get(transit) != chess.Empty || gs.board.Get(landing) != chess.Empty ||
		gs.board.Get(rookSide) != chess.Empty {
		return moves
	}
	enemy := colour.Opposite()
	if gs.isSquareAttacked(transit, enemy) || gs.isSquareAttacked(landing, enemy) {
		return moves
	}
	return append(moves, chess.NewMove(king, landing, &gs.board, chess.AsCastle()))
}

// hasCornerRook reports whether colour still has a rook on the given corner.
func (gs *GameState) hasCornerRook(colour chess.Colour, col int) bool {
	return gs.board.Get(chess.Sq(chess.HomeRow(colour), col)) == chess.MakeColouredPiece(colour, chess.Rook)
}
