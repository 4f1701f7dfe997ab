package engine_test

import (
	"sort"
	"testing"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/testutil"
)

func sortedNotation(moves []chess.Move) []string {
	out := testutil.MoveStrings(moves)
	sort.Strings(out)
	return out
}

func TestFoolsMate(t *testing.T) {
	gs := testutil.MustGameState(t, "")
	testutil.MustPlay(t, gs, "f2f3", "e7e5", "g2g4", "d8h4")

	legal := gs.LegalMoves()

	testutil.AssertEqual(t, len(legal), 0)
	testutil.AssertTrue(t, gs.Checkmate())
	testutil.AssertFalse(t, gs.Stalemate())
	testutil.AssertTrue(t, gs.InCheck())
}

func TestStalemate(t *testing.T) {
	gs := testutil.MustGameState(t, "k1K5/8/8/8/8/8/8/1Q6 w - - 0 1")
	testutil.MustPlay(t, gs, "b1b6")

	legal := gs.LegalMoves()

	testutil.AssertEqual(t, len(legal), 0)
	testutil.AssertTrue(t, gs.Stalemate())
	testutil.AssertFalse(t, gs.Checkmate())
	testutil.AssertFalse(t, gs.InCheck())
}

func TestTerminalFlagsClearAfterUndo(t *testing.T) {
	gs := testutil.MustGameState(t, "")
	testutil.MustPlay(t, gs, "f2f3", "e7e5", "g2g4", "d8h4")
	testutil.AssertTrue(t, gs.IsCheckmate())

	gs.Undo()

	testutil.AssertFalse(t, gs.IsCheckmate())
	testutil.AssertFalse(t, gs.IsStalemate())
	testutil.AssertTrue(t, gs.HasLegalMoves())
}

func TestLegalMovesCounts(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{
			name: "pinned bishop cannot move",
			fen:  "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1f1", "e1f2"},
		},
		{
			name: "check must be answered",
			fen:  "4k3/8/8/8/8/8/3q4/4K3 w - - 0 1",
			want: []string{"e1d2", "e1f1"},
		},
		{
			name: "knight in the corner",
			fen:  "4k3/8/8/8/8/8/8/N3K3 w - - 0 1",
			want: []string{"a1b3", "a1c2", "e1d1", "e1d2", "e1e2", "e1f1", "e1f2"},
		},
		{
			name: "knight on the far corner",
			fen:  "N3k3/8/8/8/8/8/8/4K3 w - - 0 1",
			want: []string{"a8b6", "a8c7", "e1d1", "e1d2", "e1e2", "e1f1", "e1f2"},
		},
		{
			name: "black pawn pushes",
			fen:  "4k3/p7/8/8/8/8/8/4K3 b - - 0 1",
			want: []string{"a7a5", "a7a6", "e8d7", "e8d8", "e8e7", "e8f7", "e8f8"},
		},
		{
			name: "blocked pawn",
			fen:  "4k3/8/8/8/8/p7/P7/4K3 w - - 0 1",
			want: []string{"e1d1", "e1d2", "e1e2", "e1f1", "e1f2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := testutil.MustGameState(t, tt.fen)
			testutil.AssertEqual(t, sortedNotation(gs.LegalMoves()), tt.want)
		})
	}
}

func TestEnPassant(t *testing.T) {
	gs := testutil.MustGameState(t, "")
	testutil.MustPlay(t, gs, "e2e4", "a7a6", "e4e5", "d7d5")

	testutil.AssertEqual(t, gs.EnPassantTarget(), chess.MustParseSquare("d6"))

	move, ok := testutil.LegalMove(gs, "e5d6")
	testutil.AssertTrue(t, ok, "en passant capture should be legal")
	testutil.AssertTrue(t, move.EnPassant)
	testutil.AssertEqual(t, move.Kind(), chess.EnPassantMove)
	testutil.AssertTrue(t, move.IsCapture())

	testutil.AssertNoError(t, gs.Apply(move))
	testutil.AssertEqual(t, gs.PieceAt(chess.MustParseSquare("d6")), chess.W(chess.Pawn))
	testutil.AssertEqual(t, gs.PieceAt(chess.MustParseSquare("d5")), chess.Empty)
	testutil.AssertEqual(t, gs.PieceAt(chess.MustParseSquare("e5")), chess.Empty)
	testutil.AssertEqual(t, gs.EnPassantTarget(), chess.NoSquare)

	gs.Undo()
	testutil.AssertEqual(t, gs.PieceAt(chess.MustParseSquare("d5")), chess.B(chess.Pawn))
	testutil.AssertEqual(t, gs.PieceAt(chess.MustParseSquare("e5")), chess.W(chess.Pawn))
	testutil.AssertEqual(t, gs.PieceAt(chess.MustParseSquare("d6")), chess.Empty)
	testutil.AssertEqual(t, gs.EnPassantTarget(), chess.MustParseSquare("d6"))
}

func TestEnPassantExpires(t *testing.T) {
	gs := testutil.MustGameState(t, "")
	testutil.MustPlay(t, gs, "e2e4", "a7a6", "e4e5", "d7d5", "h2h3", "h7h6")

	_, ok := testutil.LegalMove(gs, "e5d6")
	testutil.AssertFalse(t, ok, "en passant only lasts one ply")
}

func TestEnPassantByBlack(t *testing.T) {
	gs := testutil.MustGameState(t, "")
	testutil.MustPlay(t, gs, "h2h3", "d7d5", "h3h4", "d5d4", "e2e4")

	move, ok := testutil.LegalMove(gs, "d4e3")
	testutil.AssertTrue(t, ok)
	testutil.AssertTrue(t, move.EnPassant)

	testutil.AssertNoError(t, gs.Apply(move))
	testutil.AssertEqual(t, gs.PieceAt(chess.MustParseSquare("e4")), chess.Empty)
	testutil.AssertEqual(t, gs.PieceAt(chess.MustParseSquare("e3")), chess.B(chess.Pawn))
	testutil.AssertNoError(t, gs.CheckInvariants())
}

func TestEnPassantExposingKing(t *testing.T) {
	// Capturing en passant would clear the fifth rank between the rook
	// and the king.
	gs := testutil.MustGameState(t, "8/8/8/K2pP2r/8/8/8/7k w - d6 0 1")

	_, ok := testutil.LegalMove(gs, "e5d6")
	testutil.AssertFalse(t, ok)
	_, ok = testutil.LegalMove(gs, "e5e6")
	testutil.AssertTrue(t, ok)
}

func TestCastlingAvailability(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []string
	}{
		{"both sides open", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1c1", "e1g1"}},
		{"black both sides", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", []string{"e8c8", "e8g8"}},
		{"no rights", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", []string{}},
		{"in check", "r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1", []string{}},
		{"kingside transit attacked", "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1", []string{"e1c1"}},
		{"landing square attacked by pawn", "r3k2r/8/8/8/8/8/7p/R3K2R w KQkq - 0 1", []string{"e1c1"}},
		{"queenside rook square attacked", "1r2k3/8/8/8/8/8/8/R3K3 w Q - 0 1", []string{"e1c1"}},
		{"queenside blocked on b1", "4k3/8/8/8/8/8/8/RN2K3 w Q - 0 1", []string{}},
		{"kingside blocked", "4k3/8/8/8/8/8/8/4K1NR w K - 0 1", []string{}},
		{"rook missing", "4k3/8/8/8/8/8/8/4K3 w K - 0 1", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := testutil.MustGameState(t, tt.fen)
			testutil.AssertEqual(t, sortedNotation(gs.CastleMoves()), tt.want)

			legal := gs.LegalMoves()
			for _, want := range tt.want {
				move, ok := testutil.LegalMove(gs, want)
				testutil.AssertTrue(t, ok, "%s should be legal", want)
				testutil.AssertTrue(t, move.Castle, "%s should be a castle", want)
			}
			testutil.AssertTrue(t, len(legal) > 0)
		})
	}
}

func TestCastlingMovesRook(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		move     string
		rookFrom string
		rookTo   string
		rights   string
	}{
		{"white kingside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "h1", "f1", "kq"},
		{"white queenside", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1c1", "a1", "d1", "kq"},
		{"black kingside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8g8", "h8", "f8", "KQ"},
		{"black queenside", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", "a8", "d8", "KQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := testutil.MustGameState(t, tt.fen)
			mover := gs.ToMove()
			rook := chess.MakeColouredPiece(mover, chess.Rook)

			testutil.MustPlay(t, gs, tt.move)
			testutil.AssertEqual(t, gs.PieceAt(chess.MustParseSquare(tt.rookTo)), rook)
			testutil.AssertEqual(t, gs.PieceAt(chess.MustParseSquare(tt.rookFrom)), chess.Empty)
			testutil.AssertEqual(t, gs.CastleRights().String(), tt.rights)

			gs.Undo()
			testutil.AssertEqual(t, gs.PieceAt(chess.MustParseSquare(tt.rookFrom)), rook)
			testutil.AssertEqual(t, gs.PieceAt(chess.MustParseSquare(tt.rookTo)), chess.Empty)
			testutil.AssertEqual(t, gs.FEN(), tt.fen)
		})
	}
}

func TestCastlingRightsLoss(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
		want  string
	}{
		{"king move loses both", []string{"e1e2"}, "kq"},
		{"kingside rook move", []string{"h1h2"}, "Qkq"},
		{"queenside rook move", []string{"a1a2"}, "Kkq"},
		{"rook captured on its corner", []string{"a1a8"}, "Kk"},
		{"rook returning does not restore", []string{"h1h2", "h8h7", "h2h1"}, "Qq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := testutil.MustGameState(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
			testutil.MustPlay(t, gs, tt.moves...)
			testutil.AssertEqual(t, gs.CastleRights().String(), tt.want)
			testutil.AssertEqual(t, len(gs.CastleRightsLog()), len(tt.moves)+1)
		})
	}
}

func TestPromotionAlwaysQueen(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		move  string
		piece chess.Piece
	}{
		{"white push", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8", chess.W(chess.Queen)},
		{"white capture", "1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7b8", chess.W(chess.Queen)},
		{"black push", "4k3/8/8/8/8/8/7p/K7 b - - 0 1", "h2h1", chess.B(chess.Queen)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs := testutil.MustGameState(t, tt.fen)
			move, ok := testutil.LegalMove(gs, tt.move)
			testutil.AssertTrue(t, ok)
			testutil.AssertTrue(t, move.Promotion)
			testutil.AssertEqual(t, move.PromoteTo, chess.Queen)

			count := 0
			for _, m := range gs.LegalMoves() {
				if m.Equal(move) {
					count++
				}
			}
			testutil.AssertEqual(t, count, 1, "one promotion per destination")

			before := gs.PieceAt(move.From)
			testutil.AssertNoError(t, gs.Apply(move))
			testutil.AssertEqual(t, gs.PieceAt(move.To), tt.piece)

			gs.Undo()
			testutil.AssertEqual(t, gs.PieceAt(move.From), before)
			testutil.AssertEqual(t, gs.PieceAt(move.To), move.PieceCaptured)
		})
	}
}

func TestSquareUnderAttack(t *testing.T) {
	gs := testutil.MustGameState(t, "4k3/8/8/8/3p4/8/8/R3K3 w - - 0 1")

	tests := []struct {
		square string
		want   bool
	}{
		{"c3", true},
		{"e3", true},
		{"d3", false},
		{"e7", true},
		{"a1", false},
	}

	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			testutil.AssertEqual(t, gs.SquareUnderAttack(chess.MustParseSquare(tt.square)), tt.want)
		})
	}
}

func TestMoveFromSquaresMatchesLegal(t *testing.T) {
	gs := engine.NewGameState()
	candidate := gs.MoveFromSquares(chess.MustParseSquare("e2"), chess.MustParseSquare("e4"))

	testutil.AssertTrue(t, gs.IsLegal(candidate))
	move, ok := gs.FindLegal(candidate)
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, move, candidate)

	testutil.AssertFalse(t, gs.IsLegal(gs.MoveFromSquares(chess.MustParseSquare("e2"), chess.MustParseSquare("e5"))))
}

func TestLegalMovesLeavesStateUntouched(t *testing.T) {
	gs := testutil.MustGameState(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := gs.FEN()

	gs.LegalMoves()

	testutil.AssertEqual(t, gs.FEN(), before)
	testutil.AssertEqual(t, gs.Plies(), 0)
	testutil.AssertNoError(t, gs.CheckInvariants())
}
