// Package hashing provides Zobrist position keys, repetition counting and
// duplicate detection for chess games.
package hashing

import (
	"golang.org/x/exp/rand"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/engine"
)

// zobristSeed fixes the key tables so hashes are stable across runs and can
// be stored.
const zobristSeed = 0xC0DE

const numSquares = chess.BoardSize * chess.BoardSize

// Zobrist keys, indexed by coloured piece value and square.
var (
	zobristPiece     [chess.NumPieceValues << chess.PieceShift][numSquares]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [chess.BoardSize]uint64
	zobristSide      uint64
)

func init() {
	rnd := rand.New(rand.NewSource(zobristSeed))

	for p := range zobristPiece {
		for sq := range zobristPiece[p] {
			zobristPiece[p][sq] = rnd.Uint64()
		}
	}
	for cr := range zobristCastle {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// Hash computes the Zobrist key of the current position from scratch. Two
// positions with the same placement, side to move, castling rights and
// capturable en passant file share a key. An en passant target no pawn can
// capture onto does not count.
func Hash(gs *engine.GameState) uint64 {
	board := gs.Board()
	key := BoardHash(&board)

	if gs.ToMove() == chess.Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[gs.CastleRights().Bits()]
	if ep := gs.EnPassantTarget(); !ep.IsNone() && canCaptureEnPassant(gs, ep) {
		key ^= zobristEnPassant[ep.Col]
	}
	return key
}

// canCaptureEnPassant reports whether a pawn of the side to move stands
// beside the pawn that passed over ep.
func canCaptureEnPassant(gs *engine.GameState, ep chess.Square) bool {
	mover := gs.ToMove()
	pawn := chess.MakeColouredPiece(mover, chess.Pawn)
	row := ep.Row - chess.Forward(mover)
	for _, dc := range []int{-1, 1} {
		if sq := chess.Sq(row, ep.Col+dc); sq.OnBoard() && gs.PieceAt(sq) == pawn {
			return true
		}
	}
	return false
}

// BoardHash hashes only the piece placement.
func BoardHash(board *chess.Board) uint64 {
	var key uint64
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if p := board[row][col]; p != chess.Empty {
				key ^= zobristPiece[p][row*chess.BoardSize+col]
			}
		}
	}
	return key
}
