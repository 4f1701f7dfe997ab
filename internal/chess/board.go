package chess

// Board is the 8x8 square-to-piece mapping, indexed [row][col].
// A Board is a value: assigning it copies every square.
type Board [BoardSize][BoardSize]Piece

// backRank lists the piece kinds of the standard back rank from the a-file.
var backRank = [BoardSize]Piece{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewInitialBoard returns a board holding the standard starting position.
func NewInitialBoard() Board {
	var b Board
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Clear()
	for col := 0; col < BoardSize; col++ {
		b[HomeRow(Black)][col] = B(backRank[col])
		b[PawnStartRow(Black)][col] = B(Pawn)
		b[PawnStartRow(White)][col] = W(Pawn)
		b[HomeRow(White)][col] = W(backRank[col])
	}
}

// Clear empties every square.
func (b *Board) Clear() {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			b[row][col] = Empty
		}
	}
}

// Get returns the piece on a square. Off-board squares read as Empty.
func (b *Board) Get(sq Square) Piece {
	if !sq.OnBoard() {
		return Empty
	}
	return b[sq.Row][sq.Col]
}

// Set places a piece on a square. Off-board squares are ignored.
func (b *Board) Set(sq Square, piece Piece) {
	if sq.OnBoard() {
		b[sq.Row][sq.Col] = piece
	}
}

// FindPieces returns every square holding the given coloured piece, in
// row-major order.
func (b *Board) FindPieces(piece Piece) []Square {
	var squares []Square
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b[row][col] == piece {
				squares = append(squares, Sq(row, col))
			}
		}
	}
	return squares
}
