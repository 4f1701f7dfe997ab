// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Piece represents a chess piece type, or a coloured piece once combined
// with a colour via MakeColouredPiece.
type Piece int

const (
	Empty Piece = iota // Empty square
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumPieceValues
)

// String returns the string representation of a piece.
func (p Piece) String() string {
	if p != Empty && p >= NumPieceValues {
		return ExtractColour(p).String() + " " + ExtractPiece(p).String()
	}
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece (uppercase).
func (p Piece) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// MoveKind selects the special-move effect applied alongside the basic
// piece relocation.
type MoveKind int

const (
	NormalMove MoveKind = iota
	PromotionMove
	EnPassantMove
	CastleMove
	NumMoveKinds
)

// String returns the string representation of a move kind.
func (k MoveKind) String() string {
	switch k {
	case PromotionMove:
		return "Promotion"
	case EnPassantMove:
		return "EnPassant"
	case CastleMove:
		return "Castle"
	default:
		return "Normal"
	}
}

// Constants for board dimensions and coordinates.
const (
	BoardSize = 8

	RankBase = '1'
	ColBase  = 'a'
)

// PieceShift is used for encoding coloured pieces.
const PieceShift = 3

// MakeColouredPiece creates a coloured piece value.
func MakeColouredPiece(colour Colour, piece Piece) Piece {
	return Piece((int(piece) << PieceShift) | int(colour))
}

// W creates a white piece.
func W(piece Piece) Piece {
	return MakeColouredPiece(White, piece)
}

// B creates a black piece.
func B(piece Piece) Piece {
	return MakeColouredPiece(Black, piece)
}

// ExtractColour extracts the colour from a coloured piece.
// The result is meaningless for Empty.
func ExtractColour(colouredPiece Piece) Colour {
	return Colour(colouredPiece & 0x01)
}

// ExtractPiece extracts the piece type from a coloured piece.
func ExtractPiece(colouredPiece Piece) Piece {
	return Piece(colouredPiece >> PieceShift)
}

// IsColour reports whether the square content is a piece of the given colour.
func IsColour(colouredPiece Piece, colour Colour) bool {
	return colouredPiece != Empty && ExtractColour(colouredPiece) == colour
}

// HomeRow returns the back-rank row of a colour.
func HomeRow(colour Colour) int {
	if colour == White {
		return BoardSize - 1
	}
	return 0
}

// PawnStartRow returns the row pawns of a colour start on.
func PawnStartRow(colour Colour) int {
	if colour == White {
		return BoardSize - 2
	}
	return 1
}

// PromotionRow returns the farthest row for a colour's pawns.
func PromotionRow(colour Colour) int {
	return HomeRow(colour.Opposite())
}

// Forward returns the row delta of a pawn advance: -1 for White, +1 for Black.
func Forward(colour Colour) int {
	if colour == White {
		return -1
	}
	return 1
}
