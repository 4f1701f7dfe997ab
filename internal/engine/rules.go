package engine

import "github.com/lgbarn/chess-state-go/internal/chess"

// SeventyFiveMoveLimit is the halfmove clock value at which a game is drawn
// without either side claiming it.
const SeventyFiveMoveLimit = 150

// DrawRuleResult contains the results of draw rule detection for the
// current position. Repetition needs position keys and is tracked by the
// caller.
type DrawRuleResult struct {
	// Has75MoveRule is true if 75 moves (150 half-moves) have been made
	// without a pawn move or capture.
	Has75MoveRule bool

	// HasInsufficientMaterial is true if neither side has mating material.
	HasInsufficientMaterial bool

	// HasMaterialOdds is true if the game started from a position with
	// other than the standard material.
	HasMaterialOdds bool
}

// Drawn reports whether any rule ends the game immediately.
func (r DrawRuleResult) Drawn() bool {
	return r.Has75MoveRule || r.HasInsufficientMaterial
}

// AnalyzeDrawRules checks the automatic draw rules for the current position.
func (gs *GameState) AnalyzeDrawRules() DrawRuleResult {
	return DrawRuleResult{
		Has75MoveRule:           gs.HalfmoveClock() >= SeventyFiveMoveLimit,
		HasInsufficientMaterial: HasInsufficientMaterial(&gs.board),
		HasMaterialOdds:         !isStandardMaterial(gs.startBoard()),
	}
}

// startBoard rebuilds the board of the starting position by taking back
// every move on a copy.
func (gs *GameState) startBoard() *chess.Board {
	start := gs.Clone()
	for start.Plies() > 0 {
		start.Undo()
	}
	return &start.board
}

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same color bishops)
func HasInsufficientMaterial(board *chess.Board) bool {
	var whitePieces, blackPieces []chess.Piece
	var whiteBishopOnLight, blackBishopOnLight bool

	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			piece := board[row][col]
			if piece == chess.Empty {
				continue
			}

			colour := chess.ExtractColour(piece)
			pieceType := chess.ExtractPiece(piece)

			// Kings don't count for material
			if pieceType == chess.King {
				continue
			}

			// Any pawn, rook, or queen means sufficient material
			if pieceType == chess.Pawn || pieceType == chess.Rook || pieceType == chess.Queen {
				return false
			}

			if colour == chess.White {
				whitePieces = append(whitePieces, pieceType)
				if pieceType == chess.Bishop {
					whiteBishopOnLight = isLightSquare(chess.Sq(row, col))
				}
			} else {
				blackPieces = append(blackPieces, pieceType)
				if pieceType == chess.Bishop {
					blackBishopOnLight = isLightSquare(chess.Sq(row, col))
				}
			}
		}
	}

	// K vs K
	if len(whitePieces) == 0 && len(blackPieces) == 0 {
		return true
	}

	// K+B vs K or K+N vs K
	if len(whitePieces) == 0 && len(blackPieces) == 1 {
		return blackPieces[0] == chess.Bishop || blackPieces[0] == chess.Knight
	}
	if len(blackPieces) == 0 && len(whitePieces) == 1 {
		return whitePieces[0] == chess.Bishop || whitePieces[0] == chess.Knight
	}

	// K+B vs K+B (same color bishops)
	if len(whitePieces) == 1 && len(blackPieces) == 1 &&
		whitePieces[0] == chess.Bishop && blackPieces[0] == chess.Bishop {
		return whiteBishopOnLight == blackBishopOnLight
	}

	return false
}

// isLightSquare returns true if the given square is a light square. a8 is
// light, so a square is light when row+col is even.
func isLightSquare(sq chess.Square) bool {
	return (sq.Row+sq.Col)%2 == 0
}

// isStandardMaterial checks if the board has standard starting material.
func isStandardMaterial(board *chess.Board) bool {
	// Standard material: 8 pawns, 2 rooks, 2 knights, 2 bishops, 1 queen, 1 king per side
	expectedPieces := map[chess.Piece]int{
		chess.W(chess.Pawn):   8,
		chess.W(chess.Rook):   2,
		chess.W(chess.Knight): 2,
		chess.W(chess.Bishop): 2,
		chess.W(chess.Queen):  1,
		chess.W(chess.King):   1,
		chess.B(chess.Pawn):   8,
		chess.B(chess.Rook):   2,
		chess.B(chess.Knight): 2,
		chess.B(chess.Bishop): 2,
		chess.B(chess.Queen):  1,
		chess.B(chess.King):   1,
	}

	actualPieces := make(map[chess.Piece]int)
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if piece := board[row][col]; piece != chess.Empty {
				actualPieces[piece]++
			}
		}
	}

	for piece, expected := range expectedPieces {
		if actualPieces[piece] != expected {
			return false
		}
	}
	return len(actualPieces) == len(expectedPieces)
}
