package engine

import "github.com/lgbarn/chess-state-go/internal/chess"

// Direction tables as {row delta, col delta}.
var (
	orthogonalDirs = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalDirs   = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	allDirs        = append(append([][2]int{}, orthogonalDirs...), diagonalDirs...)
	knightOffsets  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// pieceMoveFunc appends the pseudo-legal moves of the piece on from.
type pieceMoveFunc func(gs *GameState, from chess.Square, moves []chess.Move) []chess.Move

// pieceMoveFuncs is indexed by piece kind.
var pieceMoveFuncs = [chess.NumPieceValues]pieceMoveFunc{
	chess.Pawn:   pawnMoves,
	chess.Knight: knightMoves,
	chess.Bishop: bishopMoves,
	chess.Rook:   rookMoves,
	chess.Queen:  queenMoves,
	chess.King:   kingMoves,
}

// PseudoLegalMoves returns every move of the side to move that follows the
// piece movement rules, ignoring king safety. Castles are not included.
func (gs *GameState) PseudoLegalMoves() []chess.Move {
	return gs.pseudoLegalMoves(gs.toMove, make([]chess.Move, 0, 64))
}

// pseudoLegalMoves scans the board in row-major order and appends the moves
// of every piece of colour.
func (gs *GameState) pseudoLegalMoves(colour chess.Colour, moves []chess.Move) []chess.Move {
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			piece := gs.board[row][col]
			if !chess.IsColour(piece, colour) {
				continue
			}
			moves = pieceMoveFuncs[chess.ExtractPiece(piece)](gs, chess.Sq(row, col), moves)
		}
	}
	return moves
}

func pawnMoves(gs *GameState, from chess.Square, moves []chess.Move) []chess.Move {
	colour := chess.ExtractColour(gs.board.Get(from))
	dir := chess.Forward(colour)

	one := from.Offset(dir, 0)
	if one.OnBoard() && gs.board.Get(one) == chess.Empty {
		moves = append(moves, chess.NewMove(from, one, &gs.board))
		two := from.Offset(2*dir, 0)
		if from.Row == chess.PawnStartRow(colour) && gs.board.Get(two) == chess.Empty {
			moves = append(moves, chess.NewMove(from, two, &gs.board))
		}
	}

	for _, dc := range []int{-1, 1} {
		to := from.Offset(dir, dc)
		if !to.OnBoard() {
			continue
		}
		switch {
		case chess.IsColour(gs.board.Get(to), colour.Opposite()):
			moves = append(moves, chess.NewMove(from, to, &gs.board))
		case to == gs.enPassant && to.Row == enPassantCaptureRow(colour):
			moves = append(moves, chess.NewMove(from, to, &gs.board, chess.AsEnPassant()))
		}
	}
	return moves
}

// enPassantCaptureRow is the row a pawn of colour lands on when capturing
// en passant.
func enPassantCaptureRow(colour chess.Colour) int {
	return chess.PawnStartRow(colour.Opposite()) + chess.Forward(colour.Opposite())
}

func knightMoves(gs *GameState, from chess.Square, moves []chess.Move) []chess.Move {
	return stepMoves(gs, from, knightOffsets, moves)
}

func kingMoves(gs *GameState, from chess.Square, moves []chess.Move) []chess.Move {
	return stepMoves(gs, from, allDirs, moves)
}

// stepMoves handles single-step pieces: every on-board offset square not
// holding an own piece.
func stepMoves(gs *GameState, from chess.Square, offsets [][2]int, moves []chess.Move) []chess.Move {
	colour := chess.ExtractColour(gs.board.Get(from))
	for _, off := range offsets {
		to := from.Offset(off[0], off[1])
		if !to.OnBoard() || chess.IsColour(gs.board.Get(to), colour) {
			continue
		}
		moves = append(moves, chess.NewMove(from, to, &gs.board))
	}
	return moves
}

func rookMoves(gs *GameState, from chess.Square, moves []chess.Move) []chess.Move {
	return slidingMoves(gs, from, orthogonalDirs, moves)
}

func bishopMoves(gs *GameState, from chess.Square, moves []chess.Move) []chess.Move {
	return slidingMoves(gs, from, diagonalDirs, moves)
}

func queenMoves(gs *GameState, from chess.Square, moves []chess.Move) []chess.Move {
	return slidingMoves(gs, from, allDirs, moves)
}

// slidingMoves casts a ray in each direction until the board edge, an own
// piece (excluded) or an enemy piece (included).
func slidingMoves(gs *GameState, from chess.Square, dirs [][2]int, moves []chess.Move) []chess.Move {
	colour := chess.ExtractColour(gs.board.Get(from))
	for _, dir := range dirs {
		for to := from.Offset(dir[0], dir[1]); to.OnBoard(); to = to.Offset(dir[0], dir[1]) {
			target := gs.board.Get(to)
			if target == chess.Empty {
				moves = append(moves, chess.NewMove(from, to, &gs.board))
				continue
			}
			if chess.ExtractColour(target) != colour {
				moves = append(moves, chess.NewMove(from, to, &gs.board))
			}
			break // Blocked
		}
	}
	return moves
}
