// Package engine provides chess move generation, legality checking and
// game-state bookkeeping.
package engine

import "github.com/lgbarn/chess-state-go/internal/chess"

// GameState owns the board of one game together with everything needed to
// play and take back moves: side to move, move log, castling-rights and
// en passant histories, cached king locations and the terminal flags.
//
// A GameState is not safe for concurrent use. Legality checking applies and
// rolls back trial moves on the shared state, so give each goroutine its own
// Clone.
type GameState struct {
	board  chess.Board
	toMove chess.Colour

	moveLog []chess.Move

	// One entry per ply plus the starting entry; the last entry always
	// equals the current value.
	castleLog []chess.CastleRights
	epLog     []chess.Square

	castleRights chess.CastleRights
	enPassant    chess.Square

	// Indexed by chess.Colour.
	kings [2]chess.Square

	checkmate bool
	stalemate bool

	// Clock values of the starting position, used when writing FEN.
	startHalfmove int
	startFullmove int
	startToMove   chess.Colour
}

// NewGameState creates a game at the standard initial position with full
// castling rights and White to move.
func NewGameState() *GameState {
	gs := &GameState{}
	gs.Reset()
	return gs
}

// Reset discards the game and restores the standard initial position.
func (gs *GameState) Reset() {
	gs.board = chess.NewInitialBoard()
	gs.toMove = chess.White
	gs.kings[chess.White] = chess.Sq(chess.HomeRow(chess.White), chess.KingHomeCol)
	gs.kings[chess.Black] = chess.Sq(chess.HomeRow(chess.Black), chess.KingHomeCol)
	gs.resetHistory(chess.FullCastleRights(), chess.NoSquare)
	gs.startHalfmove, gs.startFullmove, gs.startToMove = 0, 1, chess.White
}

// resetHistory clears the move log and seeds the per-ply histories.
func (gs *GameState) resetHistory(rights chess.CastleRights, ep chess.Square) {
	gs.moveLog = nil
	gs.castleRights = rights
	gs.enPassant = ep
	gs.castleLog = []chess.CastleRights{rights}
	gs.epLog = []chess.Square{ep}
	gs.checkmate = false
	gs.stalemate = false
}

// Board returns a copy of the board.
func (gs *GameState) Board() chess.Board {
	return gs.board
}

// PieceAt returns the piece on a square.
func (gs *GameState) PieceAt(sq chess.Square) chess.Piece {
	return gs.board.Get(sq)
}

// ToMove returns the side to move.
func (gs *GameState) ToMove() chess.Colour {
	return gs.toMove
}

// WhiteToMove reports whether White is to move.
func (gs *GameState) WhiteToMove() bool {
	return gs.toMove == chess.White
}

// MoveLog returns a copy of the applied moves, oldest first.
func (gs *GameState) MoveLog() []chess.Move {
	out := make([]chess.Move, len(gs.moveLog))
	copy(out, gs.moveLog)
	return out
}

// Plies returns the number of applied moves.
func (gs *GameState) Plies() int {
	return len(gs.moveLog)
}

// LastMove returns the most recently applied move.
func (gs *GameState) LastMove() (chess.Move, bool) {
	if len(gs.moveLog) == 0 {
		return chess.Move{}, false
	}
	return gs.moveLog[len(gs.moveLog)-1], true
}

// Notation returns the move log in start+end square notation.
func (gs *GameState) Notation() []string {
	out := make([]string, len(gs.moveLog))
	for i, m := range gs.moveLog {
		out[i] = m.String()
	}
	return out
}

// CastleRights returns the current castling rights.
func (gs *GameState) CastleRights() chess.CastleRights {
	return gs.castleRights
}

// CastleRightsLog returns a copy of the castling-rights history. Its length
// is always Plies()+1.
func (gs *GameState) CastleRightsLog() []chess.CastleRights {
	out := make([]chess.CastleRights, len(gs.castleLog))
	copy(out, gs.castleLog)
	return out
}

// EnPassantTarget returns the square a pawn may capture onto en passant,
// or chess.NoSquare.
func (gs *GameState) EnPassantTarget() chess.Square {
	return gs.enPassant
}

// KingLocation returns the cached king square of a colour.
func (gs *GameState) KingLocation(colour chess.Colour) chess.Square {
	return gs.kings[colour]
}

// Checkmate reports whether the last LegalMoves call found checkmate.
func (gs *GameState) Checkmate() bool {
	return gs.checkmate
}

// Stalemate reports whether the last LegalMoves call found stalemate.
func (gs *GameState) Stalemate() bool {
	return gs.stalemate
}

// Clone returns an independent deep copy of the game.
func (gs *GameState) Clone() *GameState {
	clone := *gs
	clone.moveLog = append([]chess.Move(nil), gs.moveLog...)
	clone.castleLog = append([]chess.CastleRights(nil), gs.castleLog...)
	clone.epLog = append([]chess.Square(nil), gs.epLog...)
	return &clone
}
