package engine

import (
	"fmt"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/errors"
)

// CheckInvariants verifies the internal bookkeeping of the game: the king
// cache agrees with the board, each side has exactly one king, the histories
// line up with the move log and the current values match their tops.
func (gs *GameState) CheckInvariants() error {
	var kings [2][]chess.Square
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			p := gs.board[row][col]
			if p != chess.Empty && chess.ExtractPiece(p) == chess.King {
				c := chess.ExtractColour(p)
				kings[c] = append(kings[c], chess.Sq(row, col))
			}
		}
	}
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if len(kings[colour]) != 1 {
			return fmt.Errorf("%v has %d kings: %w", colour, len(kings[colour]), errors.ErrInvariant)
		}
		if kings[colour][0] != gs.kings[colour] {
			return fmt.Errorf("%v king cached on %s but found on %s: %w",
				colour, gs.kings[colour], kings[colour][0], errors.ErrInvariant)
		}
	}

	plies := len(gs.moveLog)
	if len(gs.castleLog) != plies+1 {
		return fmt.Errorf("castle log has %d entries for %d plies: %w", len(gs.castleLog), plies, errors.ErrInvariant)
	}
	if len(gs.epLog) != plies+1 {
		return fmt.Errorf("en passant log has %d entries for %d plies: %w", len(gs.epLog), plies, errors.ErrInvariant)
	}
	if gs.castleLog[plies] != gs.castleRights {
		return fmt.Errorf("castle rights %s differ from log top %s: %w",
			gs.castleRights, gs.castleLog[plies], errors.ErrInvariant)
	}
	if gs.epLog[plies] != gs.enPassant {
		return fmt.Errorf("en passant target %s differs from log top %s: %w",
			gs.enPassant, gs.epLog[plies], errors.ErrInvariant)
	}

	if !gs.enPassant.IsNone() {
		if gs.enPassant.Row != enPassantCaptureRow(gs.toMove) {
			return fmt.Errorf("en passant target %s on wrong rank: %w", gs.enPassant, errors.ErrInvariant)
		}
		if gs.board.Get(gs.enPassant) != chess.Empty {
			return fmt.Errorf("en passant target %s is occupied: %w", gs.enPassant, errors.ErrInvariant)
		}
	}
	return nil
}
