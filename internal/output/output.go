// Package output writes games and positions as text and JSON.
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/config"
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/store"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer. A maxLineLength of zero or
// less never wraps.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		// Check if we need a new line
		if o.maxLineLength > 0 && o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// MoveNumbering says how the first move of a list is numbered.
type MoveNumbering struct {
	Fullmove   int
	BlackFirst bool
}

// NumberingFromFEN reads the side to move and fullmove number of a FEN.
// Missing or malformed fields fall back to move 1 with White to move.
func NumberingFromFEN(fen string) MoveNumbering {
	num := MoveNumbering{Fullmove: 1}
	fields := strings.Fields(fen)
	if len(fields) > 1 {
		num.BlackFirst = fields[1] == "b"
	}
	if len(fields) > 5 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			num.Fullmove = n
		}
	}
	return num
}

// WriteNotation writes a numbered move list such as "1. e2e4 e7e5 2. g1f3",
// wrapped at the configured line length. A list starting with Black opens
// with "1...".
func WriteNotation(w io.Writer, moves []string, num MoveNumbering, cfg *config.OutputConfig) {
	writeMoves(NewOutputWriter(w, int(cfg.MaxLineLength)), moves, num, cfg.KeepMoveNumbers)
}

func writeMoves(ow *OutputWriter, moves []string, num MoveNumbering, keepNumbers bool) {
	moveNum := num.Fullmove
	isWhite := !num.BlackFirst

	for i, text := range moves {
		if keepNumbers {
			if isWhite {
				ow.Write(fmt.Sprintf("%d.", moveNum))
			} else if i == 0 {
				ow.Write(fmt.Sprintf("%d...", moveNum))
			}
		}
		ow.Write(text)

		if !isWhite {
			moveNum++
		}
		isWhite = !isWhite
	}
}

// WriteBoard writes a diagram of the board with rank and file labels.
// White pieces are uppercase, empty squares are dots.
func WriteBoard(w io.Writer, board chess.Board) {
	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		sb.WriteByte(byte('8' - row))
		for col := 0; col < chess.BoardSize; col++ {
			sb.WriteByte(' ')
			piece := board[row][col]
			if piece == chess.Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(engine.ColouredPieceToFENLetter(piece))
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	io.WriteString(w, sb.String()) //nolint:errcheck // diagram output is best effort
}

// WriteRecord writes a stored game as text: a header line, the numbered
// moves and the result, then the final position if configured.
func WriteRecord(w io.Writer, rec *store.Record, cfg *config.OutputConfig) error {
	header := fmt.Sprintf("[Game %q]", rec.ID)
	if rec.Reason != "" {
		header += fmt.Sprintf(" [Reason %q]", rec.Reason)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if rec.StartFEN != "" && rec.StartFEN != engine.InitialFEN {
		fmt.Fprintf(w, "[FEN %q]\n", rec.StartFEN)
	}

	ow := NewOutputWriter(w, int(cfg.MaxLineLength))
	writeMoves(ow, rec.Moves, NumberingFromFEN(rec.StartFEN), cfg.KeepMoveNumbers)
	if cfg.KeepResults {
		result := rec.Result
		if result == "" {
			result = store.ResultOngoing
		}
		ow.Write(result)
	}
	ow.NewLine()

	if cfg.OutputFEN && rec.FinalFEN != "" {
		fmt.Fprintln(w, rec.FinalFEN)
	}
	if cfg.ShowBoard && rec.FinalFEN != "" {
		gs, err := engine.NewGameStateFromFEN(rec.FinalFEN)
		if err != nil {
			return err
		}
		WriteBoard(w, gs.Board())
	}
	_, err := fmt.Fprintln(w)
	return err
}
