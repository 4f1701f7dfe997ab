package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ConvertFENCharToPiece converts a FEN character to a piece type.
func ConvertFENCharToPiece(c byte) chess.Piece {
	switch c {
	case 'K', 'k':
		return chess.King
	case 'Q', 'q':
		return chess.Queen
	case 'R', 'r':
		return chess.Rook
	case 'N', 'n':
		return chess.Knight
	case 'B', 'b':
		return chess.Bishop
	case 'P', 'p':
		return chess.Pawn
	default:
		return chess.Empty
	}
}

// ColouredPieceToFENLetter returns the FEN letter for a coloured piece:
// uppercase for White, lowercase for Black.
func ColouredPieceToFENLetter(colouredPiece chess.Piece) byte {
	letter := chess.ExtractPiece(colouredPiece).Letter()
	if chess.ExtractColour(colouredPiece) == chess.Black {
		letter = byte(unicode.ToLower(rune(letter)))
	}
	return letter
}

// NewGameStateFromFEN creates a game from a FEN string. The halfmove and
// fullmove fields are optional.
func NewGameStateFromFEN(fen string) (*GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("FEN %q needs at least 4 fields: %w", fen, errors.ErrInvalidFEN)
	}

	gs := &GameState{}
	if err := parsePiecePositions(gs, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(gs, parts[1]); err != nil {
		return nil, err
	}
	rights, err := parseCastlingRights(parts[2])
	if err != nil {
		return nil, err
	}
	ep, err := parseEnPassant(gs, parts[3])
	if err != nil {
		return nil, err
	}
	gs.resetHistory(rights, ep)

	if err := parseClocks(gs, parts[4:]); err != nil {
		return nil, err
	}
	return gs, nil
}

// MustGameStateFromFEN is like NewGameStateFromFEN but panics on error.
func MustGameStateFromFEN(fen string) *GameState {
	gs, err := NewGameStateFromFEN(fen)
	if err != nil {
		panic(err)
	}
	return gs
}

// parsePiecePositions parses the piece placement field of a FEN string and
// records the king locations.
func parsePiecePositions(gs *GameState, positions string) error {
	rows := strings.Split(positions, "/")
	if len(rows) != chess.BoardSize {
		return fmt.Errorf("expected %d ranks, got %d: %w", chess.BoardSize, len(rows), errors.ErrInvalidFEN)
	}

	kingCount := [2]int{}
	for row, text := range rows {
		col := 0
		for _, c := range text {
			switch {
			case c >= '1' && c <= '8':
				col += int(c - '0')
			default:
				piece := ConvertFENCharToPiece(byte(c))
				if piece == chess.Empty {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				if col >= chess.BoardSize {
					return fmt.Errorf("rank %d overflows: %w", chess.BoardSize-row, errors.ErrInvalidFEN)
				}

				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}

				sq := chess.Sq(row, col)
				gs.board.Set(sq, chess.MakeColouredPiece(colour, piece))
				if piece == chess.King {
					gs.kings[colour] = sq
					kingCount[colour]++
				}
				col++
			}
		}
		if col != chess.BoardSize {
			return fmt.Errorf("rank %d has %d squares: %w", chess.BoardSize-row, col, errors.ErrInvalidFEN)
		}
	}

	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if kingCount[colour] != 1 {
			return fmt.Errorf("%v has %d kings: %w", colour, kingCount[colour], errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(gs *GameState, side string) error {
	switch side {
	case "w":
		gs.toMove = chess.White
	case "b":
		gs.toMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", side, errors.ErrInvalidFEN)
	}
	gs.startToMove = gs.toMove
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(field string) (chess.CastleRights, error) {
	var rights chess.CastleRights
	if field == "-" {
		return rights, nil
	}
	for _, c := range field {
		switch c {
		case 'K':
			rights.WhiteKingside = true
		case 'Q':
			rights.WhiteQueenside = true
		case 'k':
			rights.BlackKingside = true
		case 'q':
			rights.BlackQueenside = true
		default:
			return rights, fmt.Errorf("invalid castling field %q: %w", field, errors.ErrInvalidFEN)
		}
	}
	return rights, nil
}

// parseEnPassant parses the en passant target square field. The square must
// be one a double push by the opponent just passed over: empty, on the row
// the side to move captures onto, with the pushed pawn in front of it and
// its start square vacated.
func parseEnPassant(gs *GameState, field string) (chess.Square, error) {
	if field == "-" {
		return chess.NoSquare, nil
	}
	sq, err := chess.ParseSquare(field)
	if err != nil {
		return chess.NoSquare, fmt.Errorf("en passant field: %v: %w", err, errors.ErrInvalidFEN)
	}
	if sq.Row != enPassantCaptureRow(gs.toMove) {
		return chess.NoSquare, fmt.Errorf("en passant square %s impossible for %v: %w", field, gs.toMove, errors.ErrInvalidFEN)
	}

	dir := chess.Forward(gs.toMove)
	pushed := chess.Sq(sq.Row-dir, sq.Col)
	origin := chess.Sq(sq.Row+dir, sq.Col)
	switch {
	case gs.board.Get(sq) != chess.Empty:
		return chess.NoSquare, fmt.Errorf("en passant square %s is occupied: %w", field, errors.ErrInvalidFEN)
	case gs.board.Get(pushed) != chess.MakeColouredPiece(gs.toMove.Opposite(), chess.Pawn):
		return chess.NoSquare, fmt.Errorf("no pushed pawn on %s for en passant square %s: %w", pushed, field, errors.ErrInvalidFEN)
	case gs.board.Get(origin) != chess.Empty:
		return chess.NoSquare, fmt.Errorf("pawn start square %s is occupied for en passant square %s: %w", origin, field, errors.ErrInvalidFEN)
	}
	return sq, nil
}

// parseClocks parses the optional halfmove clock and fullmove number fields.
func parseClocks(gs *GameState, fields []string) error {
	gs.startHalfmove, gs.startFullmove = 0, 1
	if len(fields) >= 1 {
		n, err := strconv.Atoi(fields[0])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid halfmove clock %q: %w", fields[0], errors.ErrInvalidFEN)
		}
		gs.startHalfmove = n
	}
	if len(fields) >= 2 {
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid fullmove number %q: %w", fields[1], errors.ErrInvalidFEN)
		}
		gs.startFullmove = n
	}
	return nil
}

// FEN converts the current position to a FEN string.
func (gs *GameState) FEN() string {
	var sb strings.Builder

	writePiecePositions(&sb, &gs.board)
	sb.WriteByte(' ')
	if gs.toMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	sb.WriteString(gs.castleRights.String())
	sb.WriteByte(' ')
	sb.WriteString(gs.enPassant.String())
	fmt.Fprintf(&sb, " %d %d", gs.HalfmoveClock(), gs.FullmoveNumber())

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece := board[row][col]
			if piece == chess.Empty {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(ColouredPieceToFENLetter(piece))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// HalfmoveClock counts plies since the last pawn move or capture.
func (gs *GameState) HalfmoveClock() int {
	for i := len(gs.moveLog) - 1; i >= 0; i-- {
		m := gs.moveLog[i]
		if m.IsCapture() || chess.ExtractPiece(m.PieceMoved) == chess.Pawn {
			return len(gs.moveLog) - 1 - i
		}
	}
	return gs.startHalfmove + len(gs.moveLog)
}

// FullmoveNumber is incremented after each Black move.
func (gs *GameState) FullmoveNumber() int {
	plies := len(gs.moveLog)
	if gs.startToMove == chess.Black {
		plies++
	}
	return gs.startFullmove + plies/2
}
