package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/errors"
	"github.com/lgbarn/chess-state-go/internal/store"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	ID         string     `json:"id,omitempty"`
	InitialFEN string     `json:"initialFEN"`
	Moves      []JSONMove `json:"moves"`
	Result     string     `json:"result"`
	Reason     string     `json:"reason,omitempty"`
	PlyCount   int        `json:"plyCount"`
	FinalFEN   string     `json:"finalFEN"`
	Hash       string     `json:"hash,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber,omitempty"`
	Color      string `json:"color"` // "white" or "black"
	Notation   string `json:"notation"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	Castle     bool   `json:"castle,omitempty"`
	EnPassant  bool   `json:"enPassant,omitempty"`
	Check      bool   `json:"check,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// RecordToJSON converts a stored game to JSON format. The moves are
// replayed to fill in piece details, so a record that does not replay is an
// error.
func RecordToJSON(rec *store.Record) (*JSONGame, error) {
	startFEN := rec.StartFEN
	if startFEN == "" {
		startFEN = engine.InitialFEN
	}
	gs, err := engine.NewGameStateFromFEN(startFEN)
	if err != nil {
		return nil, &errors.GameError{Err: err, GameID: rec.ID}
	}

	jg := &JSONGame{
		ID:         rec.ID,
		InitialFEN: startFEN,
		Moves:      make([]JSONMove, 0, len(rec.Moves)),
		Result:     rec.Result,
		Reason:     rec.Reason,
		PlyCount:   len(rec.Moves),
	}
	if jg.Result == "" {
		jg.Result = store.ResultOngoing
	}
	if rec.Hash != 0 {
		jg.Hash = fmt.Sprintf("%016x", rec.Hash)
	}
	if !rec.CreatedAt.IsZero() {
		created := rec.CreatedAt
		jg.CreatedAt = &created
	}

	num := NumberingFromFEN(startFEN)
	moveNum := num.Fullmove
	for i, text := range rec.Moves {
		jm, err := convertSingleMove(gs, text, moveNum)
		if err != nil {
			return nil, &errors.GameError{Err: err, GameID: rec.ID, PlyNum: i + 1, MoveText: text}
		}
		if jm.Color == "black" {
			moveNum++
		}
		jg.Moves = append(jg.Moves, jm)
	}

	jg.FinalFEN = gs.FEN()
	return jg, nil
}

// convertSingleMove converts a single move to JSON format and applies it.
func convertSingleMove(gs *engine.GameState, text string, moveNum int) (JSONMove, error) {
	from, to, err := chess.ParseMoveText(text)
	if err != nil {
		return JSONMove{}, err
	}
	move, ok := gs.FindLegal(gs.MoveFromSquares(from, to))
	if !ok {
		return JSONMove{}, errors.ErrIllegalMove
	}

	isWhite := gs.WhiteToMove()
	jm := JSONMove{
		Color:     colorName(isWhite),
		Notation:  move.String(),
		From:      move.From.String(),
		To:        move.To.String(),
		Piece:     pieceTypeName(chess.ExtractPiece(move.PieceMoved)),
		Castle:    move.Castle,
		EnPassant: move.EnPassant,
	}
	if isWhite {
		jm.MoveNumber = moveNum
	}
	switch {
	case move.EnPassant:
		jm.Captured = "pawn"
	case move.PieceCaptured != chess.Empty:
		jm.Captured = pieceTypeName(chess.ExtractPiece(move.PieceCaptured))
	}
	if move.Promotion {
		jm.Promotion = pieceTypeName(move.PromoteTo)
	}

	if err := gs.Apply(move); err != nil {
		return JSONMove{}, err
	}
	jm.Check = gs.InCheck()
	return jm, nil
}

// WriteRecordJSON writes a single game in JSON format.
func WriteRecordJSON(w io.Writer, rec *store.Record) error {
	jg, err := RecordToJSON(rec)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jg)
}

// WriteRecordsJSON writes games as a JSON object holding an array.
func WriteRecordsJSON(w io.Writer, recs []*store.Record) error {
	out := &JSONOutput{Games: make([]*JSONGame, 0, len(recs))}
	for _, rec := range recs {
		jg, err := RecordToJSON(rec)
		if err != nil {
			return err
		}
		out.Games = append(out.Games, jg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// colorName returns "white" or "black" based on the boolean.
func colorName(isWhite bool) string {
	if isWhite {
		return "white"
	}
	return "black"
}

// pieceTypeName returns the piece type as a string.
func pieceTypeName(p chess.Piece) string {
	switch p {
	case chess.Pawn:
		return "pawn"
	case chess.Knight:
		return "knight"
	case chess.Bishop:
		return "bishop"
	case chess.Rook:
		return "rook"
	case chess.Queen:
		return "queen"
	case chess.King:
		return "king"
	default:
		return ""
	}
}
