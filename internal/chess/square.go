package chess

import (
	"fmt"

	"github.com/lgbarn/chess-state-go/internal/errors"
)

// Square is a board coordinate. Row 0 is the far rank (rank 8) and row 7
// the near rank (rank 1); column 0 is the a-file.
type Square struct {
	Row int
	Col int
}

// NoSquare marks an absent square, e.g. no en passant target.
var NoSquare = Square{Row: -1, Col: -1}

// Sq builds a square from row and column indices.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// OnBoard reports whether the square lies inside the 8x8 board.
func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// IsNone reports whether s is NoSquare.
func (s Square) IsNone() bool {
	return s == NoSquare
}

// Offset returns the square dr rows and dc columns away.
func (s Square) Offset(dr, dc int) Square {
	return Square{Row: s.Row + dr, Col: s.Col + dc}
}

// File returns the file letter 'a'-'h'.
func (s Square) File() byte {
	return byte(ColBase + s.Col)
}

// Rank returns the rank digit '1'-'8'.
func (s Square) Rank() byte {
	return byte(RankBase + BoardSize - 1 - s.Row)
}

// String returns the square in file-letter + rank-digit form, e.g. "e4".
func (s Square) String() string {
	if !s.OnBoard() {
		return "-"
	}
	return string([]byte{s.File(), s.Rank()})
}

// ParseSquare parses a square such as "e4".
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return NoSquare, fmt.Errorf("%q: %w", text, errors.ErrInvalidSquare)
	}
	file, rank := text[0], text[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%q: %w", text, errors.ErrInvalidSquare)
	}
	return Square{
		Row: BoardSize - 1 - int(rank-RankBase),
		Col: int(file - ColBase),
	}, nil
}

// MustParseSquare is like ParseSquare but panics on malformed input.
// Intended for constants and tests.
func MustParseSquare(text string) Square {
	sq, err := ParseSquare(text)
	if err != nil {
		panic(err)
	}
	return sq
}
