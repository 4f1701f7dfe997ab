// Package matching selects stored games by result, length and the positions
// they pass through.
package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/errors"
)

// pieceTypes lists the piece types in pattern order.
var pieceTypes = []chess.Piece{chess.King, chess.Queen, chess.Rook, chess.Bishop, chess.Knight, chess.Pawn}

// MaterialMatcher matches positions by material balance.
type MaterialMatcher struct {
	// Pattern like "QR:qrr" means white has Q+R, black has Q+2R
	pattern    string
	exactMatch bool
	counts     [2]map[chess.Piece]int
}

// NewMaterialMatcher creates a material matcher.
// Pattern format: "QRN:qrn" (white pieces : black pieces). Letters are
// K=King, Q=Queen, R=Rook, B=Bishop, N=Knight, P=Pawn in either case; the
// side of the colon decides the colour. With exact set, pieces missing from
// the pattern must be absent from the board. Kings only count when the
// pattern names them.
func NewMaterialMatcher(pattern string, exact bool) (*MaterialMatcher, error) {
	mm := &MaterialMatcher{pattern: pattern, exactMatch: exact}
	mm.counts[chess.White], mm.counts[chess.Black] = map[chess.Piece]int{}, map[chess.Piece]int{}
	parts := strings.Split(pattern, ":")
	if len(parts) > 2 {
		return nil, fmt.Errorf("material pattern %q has more than one colon: %w", pattern, errors.ErrInvalidConfig)
	}
	sides := []chess.Colour{chess.White, chess.Black}
	for i, part := range parts {
		if err := mm.parseSide(sides[i], part); err != nil {
			return nil, err
		}
	}
	return mm, nil
}

// parseSide parses one side's piece letters.
func (mm *MaterialMatcher) parseSide(colour chess.Colour, s string) error {
	for _, c := range strings.ToUpper(s) {
		piece := engine.ConvertFENCharToPiece(byte(c))
		if piece == chess.Empty {
			return fmt.Errorf("material pattern %q: unknown piece %q: %w", mm.pattern, c, errors.ErrInvalidConfig)
		}
		mm.counts[colour][piece]++
	}
	return nil
}

// MatchBoard reports whether a position has the pattern's material.
func (mm *MaterialMatcher) MatchBoard(board *chess.Board) bool {
	var onBoard [2]map[chess.Piece]int
	onBoard[chess.White], onBoard[chess.Black] = map[chess.Piece]int{}, map[chess.Piece]int{}
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			p := board[row][col]
			if p == chess.Empty {
				continue
			}
			onBoard[chess.ExtractColour(p)][chess.ExtractPiece(p)]++
		}
	}

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		for _, piece := range pieceTypes {
			want, have := mm.counts[colour][piece], onBoard[colour][piece]
			if piece == chess.King && want == 0 {
				continue
			}
			if have < want || (mm.exactMatch && have != want) {
				return false
			}
		}
	}
	return true
}

// HasCriteria returns true if a material pattern is set.
func (mm *MaterialMatcher) HasCriteria() bool {
	return mm != nil && mm.pattern != ""
}
