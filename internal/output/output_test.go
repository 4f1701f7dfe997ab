package output

import (
	"bytes"
	"testing"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/config"
)

func TestWriteBoard(t *testing.T) {
	var buf bytes.Buffer
	WriteBoard(&buf, chess.NewInitialBoard())

	want := "8 r n b q k b n r\n" +
		"7 p p p p p p p p\n" +
		"6 . . . . . . . .\n" +
		"5 . . . . . . . .\n" +
		"4 . . . . . . . .\n" +
		"3 . . . . . . . .\n" +
		"2 P P P P P P P P\n" +
		"1 R N B Q K B N R\n" +
		"  a b c d e f g h\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteBoard() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteNotation(t *testing.T) {
	tests := []struct {
		name     string
		moves    []string
		num      MoveNumbering
		lineLen  uint
		noNumber bool
		want     string
	}{
		{
			name:  "from the start",
			moves: []string{"e2e4", "e7e5", "g1f3"},
			num:   MoveNumbering{Fullmove: 1},
			want:  "1. e2e4 e7e5 2. g1f3",
		},
		{
			name:  "black first",
			moves: []string{"e7e5", "g1f3"},
			num:   MoveNumbering{Fullmove: 12, BlackFirst: true},
			want:  "12... e7e5 13. g1f3",
		},
		{
			name:     "without numbers",
			moves:    []string{"e2e4", "e7e5"},
			num:      MoveNumbering{Fullmove: 1},
			noNumber: true,
			want:     "e2e4 e7e5",
		},
		{
			name:    "wrapped",
			moves:   []string{"e2e4", "e7e5", "g1f3", "b8c6"},
			num:     MoveNumbering{Fullmove: 1},
			lineLen: 16,
			want:    "1. e2e4 e7e5 2.\ng1f3 b8c6",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewOutputConfig()
			cfg.MaxLineLength = tt.lineLen
			cfg.KeepMoveNumbers = !tt.noNumber

			var buf bytes.Buffer
			WriteNotation(&buf, tt.moves, tt.num, cfg)
			if got := buf.String(); got != tt.want {
				t.Errorf("WriteNotation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNumberingFromFEN(t *testing.T) {
	tests := []struct {
		fen  string
		want MoveNumbering
	}{
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", MoveNumbering{Fullmove: 1}},
		{"4k3/8/8/8/8/8/8/4K3 b - - 10 42", MoveNumbering{Fullmove: 42, BlackFirst: true}},
		{"4k3/8/8/8/8/8/8/4K3 b - -", MoveNumbering{Fullmove: 1, BlackFirst: true}},
		{"", MoveNumbering{Fullmove: 1}},
	}
	for _, tt := range tests {
		if got := NumberingFromFEN(tt.fen); got != tt.want {
			t.Errorf("NumberingFromFEN(%q) = %+v, want %+v", tt.fen, got, tt.want)
		}
	}
}
