package chess

import (
	"fmt"

	"github.com/lgbarn/chess-state-go/internal/errors"
)

// Move describes one transition of the game. Moves are values; once built
// they are never modified.
type Move struct {
	// Source and destination squares.
	From Square
	To   Square

	// The piece being moved.
	PieceMoved Piece

	// The contents of the destination square when the move was built
	// (Empty for quiet moves, castles and en passant captures).
	PieceCaptured Piece

	// Special move flags.
	EnPassant bool
	Castle    bool
	Promotion bool

	// The piece kind a promotion resolves to. Always Queen when Promotion
	// is set, Empty otherwise.
	PromoteTo Piece
}

// MoveOption sets a special flag while building a move.
type MoveOption func(*Move)

// AsEnPassant marks the move as an en passant capture.
func AsEnPassant() MoveOption {
	return func(m *Move) { m.EnPassant = true }
}

// AsCastle marks the move as a castle. Only the king's squares are encoded;
// the rook relocation is derived when the move is applied.
func AsCastle() MoveOption {
	return func(m *Move) { m.Castle = true }
}

// NewMove builds a move from two squares, snapshotting the moved and
// captured pieces from the board. A pawn landing on its farthest rank is
// flagged as a promotion to queen.
func NewMove(from, to Square, board *Board, opts ...MoveOption) Move {
	m := Move{
		From:          from,
		To:            to,
		PieceMoved:    board.Get(from),
		PieceCaptured: board.Get(to),
	}
	if m.PieceMoved != Empty && ExtractPiece(m.PieceMoved) == Pawn &&
		to.Row == PromotionRow(ExtractColour(m.PieceMoved)) {
		m.Promotion = true
		m.PromoteTo = Queen
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Equal reports whether two moves share start and end squares. Flags are
// ignored so a two-click selection matches the generated move.
func (m Move) Equal(other Move) bool {
	return m.From == other.From && m.To == other.To
}

// ID returns a compact integer key derived from the start and end squares.
func (m Move) ID() int {
	return m.From.Row*1000 + m.From.Col*100 + m.To.Row*10 + m.To.Col
}

// Kind returns the special-move kind that governs this move's side effects.
func (m Move) Kind() MoveKind {
	switch {
	case m.Castle:
		return CastleMove
	case m.EnPassant:
		return EnPassantMove
	case m.Promotion:
		return PromotionMove
	default:
		return NormalMove
	}
}

// IsCapture returns true if this move removes an enemy piece.
func (m Move) IsCapture() bool {
	return m.PieceCaptured != Empty || m.EnPassant
}

// Mover returns the colour of the moving piece.
func (m Move) Mover() Colour {
	return ExtractColour(m.PieceMoved)
}

// IsDoublePawnPush reports whether the move advances a pawn two squares.
func (m Move) IsDoublePawnPush() bool {
	if m.PieceMoved == Empty || ExtractPiece(m.PieceMoved) != Pawn {
		return false
	}
	dr := m.To.Row - m.From.Row
	return dr == 2 || dr == -2
}

// String returns the move as start square followed by end square, e.g. "e2e4".
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ParseMoveText parses the start and end squares of a move written as
// "e2e4". The result carries no piece information; match it against a
// legal-move list with Equal.
func ParseMoveText(text string) (Square, Square, error) {
	if len(text) != 4 {
		return NoSquare, NoSquare, fmt.Errorf("move %q: %w", text, errors.ErrInvalidSquare)
	}
	from, err := ParseSquare(text[:2])
	if err != nil {
		return NoSquare, NoSquare, fmt.Errorf("move %q: %w", text, err)
	}
	to, err := ParseSquare(text[2:])
	if err != nil {
		return NoSquare, NoSquare, fmt.Errorf("move %q: %w", text, err)
	}
	return from, to, nil
}

// FindMove returns the first move in list equal to candidate.
func FindMove(list []Move, candidate Move) (Move, bool) {
	for _, m := range list {
		if m.Equal(candidate) {
			return m, true
		}
	}
	return Move{}, false
}
