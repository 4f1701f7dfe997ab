package chess

// CastleRights is a snapshot of the four castling permissions. It is a
// value type; the With*/Without* methods return modified copies.
type CastleRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// FullCastleRights returns the rights held at the start of a game.
func FullCastleRights() CastleRights {
	return CastleRights{
		WhiteKingside:  true,
		WhiteQueenside: true,
		BlackKingside:  true,
		BlackQueenside: true,
	}
}

// Kingside reports whether the colour may still castle kingside.
func (r CastleRights) Kingside(colour Colour) bool {
	if colour == White {
		return r.WhiteKingside
	}
	return r.BlackKingside
}

// Queenside reports whether the colour may still castle queenside.
func (r CastleRights) Queenside(colour Colour) bool {
	if colour == White {
		return r.WhiteQueenside
	}
	return r.BlackQueenside
}

// Any reports whether the colour holds any castling right.
func (r CastleRights) Any(colour Colour) bool {
	return r.Kingside(colour) || r.Queenside(colour)
}

// WithoutSide revokes both flanks for a colour.
func (r CastleRights) WithoutSide(colour Colour) CastleRights {
	if colour == White {
		r.WhiteKingside, r.WhiteQueenside = false, false
	} else {
		r.BlackKingside, r.BlackQueenside = false, false
	}
	return r
}

// WithoutFlank revokes one flank for a colour.
func (r CastleRights) WithoutFlank(colour Colour, kingside bool) CastleRights {
	switch {
	case colour == White && kingside:
		r.WhiteKingside = false
	case colour == White:
		r.WhiteQueenside = false
	case kingside:
		r.BlackKingside = false
	default:
		r.BlackQueenside = false
	}
	return r
}

// Bits packs the rights into four bits (K=1, Q=2, k=4, q=8).
func (r CastleRights) Bits() int {
	bits := 0
	if r.WhiteKingside {
		bits |= 1
	}
	if r.WhiteQueenside {
		bits |= 2
	}
	if r.BlackKingside {
		bits |= 4
	}
	if r.BlackQueenside {
		bits |= 8
	}
	return bits
}

// String returns the rights in FEN form, e.g. "KQkq" or "-".
func (r CastleRights) String() string {
	var out []byte
	if r.WhiteKingside {
		out = append(out, 'K')
	}
	if r.WhiteQueenside {
		out = append(out, 'Q')
	}
	if r.BlackKingside {
		out = append(out, 'k')
	}
	if r.BlackQueenside {
		out = append(out, 'q')
	}
	if len(out) == 0 {
		return "-"
	}
	return string(out)
}

// Castling geometry for the standard start position, by column.
const (
	KingHomeCol       = 4
	KingsideRookCol   = 7
	QueensideRookCol  = 0
	KingsideKingCol   = 6
	QueensideKingCol  = 2
	KingsideRookDest  = 5
	QueensideRookDest = 3
)

// CastleRookSquares returns the rook's origin and destination for a castle
// whose king lands on kingTo.
func CastleRookSquares(kingTo Square) (from, to Square) {
	if kingTo.Col == KingsideKingCol {
		return Sq(kingTo.Row, KingsideRookCol), Sq(kingTo.Row, KingsideRookDest)
	}
	return Sq(kingTo.Row, QueensideRookCol), Sq(kingTo.Row, QueensideRookDest)
}
