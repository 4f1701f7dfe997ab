package matching

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-state-go/internal/chess"
	"github.com/lgbarn/chess-state-go/internal/engine"
	"github.com/lgbarn/chess-state-go/internal/errors"
	"github.com/lgbarn/chess-state-go/internal/hashing"
)

// FENPattern is a piece-placement pattern to match.
// Supports wildcards:
//   - ? matches any square (empty or occupied)
//   - ! matches any non-empty square
//   - * matches zero or more of anything
//   - A matches any white piece
//   - a matches any black piece
//   - _ matches empty square
type FENPattern struct {
	Pattern string
	Label   string // optional label for matched position
	Hash    uint64 // board hash for exact FEN matches
	IsExact bool   // true if this is a full FEN (no wildcards)
	ranks   []string
}

// PositionMatcher matches positions against FEN patterns.
type PositionMatcher struct {
	patterns    []*FENPattern
	exactHashes map[uint64]*FENPattern
}

// NewPositionMatcher creates a new position matcher.
func NewPositionMatcher() *PositionMatcher {
	return &PositionMatcher{
		exactHashes: make(map[uint64]*FENPattern),
	}
}

// AddFEN adds an exact position to match. Only the piece placement counts.
func (pm *PositionMatcher) AddFEN(fen string, label string) error {
	gs, err := engine.NewGameStateFromFEN(fen)
	if err != nil {
		return err
	}

	board := gs.Board()
	pattern := &FENPattern{
		Pattern: fen,
		Label:   label,
		Hash:    hashing.BoardHash(&board),
		IsExact: true,
	}
	pm.patterns = append(pm.patterns, pattern)
	pm.exactHashes[pattern.Hash] = pattern
	return nil
}

// AddPattern adds a piece-placement pattern with wildcards. With
// includeInvert the colour-reversed pattern is added too.
func (pm *PositionMatcher) AddPattern(pattern string, label string, includeInvert bool) error {
	p, err := newFENPattern(pattern, label)
	if err != nil {
		return err
	}
	pm.patterns = append(pm.patterns, p)

	if includeInvert {
		ip, err := newFENPattern(invertPattern(pattern), label)
		if err != nil {
			return err
		}
		pm.patterns = append(pm.patterns, ip)
	}
	return nil
}

func newFENPattern(pattern, label string) (*FENPattern, error) {
	ranks := strings.Split(pattern, "/")
	if len(ranks) != chess.BoardSize {
		return nil, fmt.Errorf("position pattern %q needs %d ranks: %w", pattern, chess.BoardSize, errors.ErrInvalidConfig)
	}
	return &FENPattern{Pattern: pattern, Label: label, ranks: ranks}, nil
}

// MatchBoard returns the first pattern a position matches, or nil.
func (pm *PositionMatcher) MatchBoard(board *chess.Board) *FENPattern {
	// First check exact hash matches (fast)
	if pattern, ok := pm.exactHashes[hashing.BoardHash(board)]; ok {
		return pattern
	}

	var ranks [chess.BoardSize]string
	for _, pattern := range pm.patterns {
		if pattern.IsExact {
			continue
		}
		if ranks[0] == "" {
			ranks = boardToRanks(board)
		}
		if matchRanks(ranks, pattern) {
			return pattern
		}
	}
	return nil
}

// matchRanks checks if a board matches a pattern rank by rank.
func matchRanks(boardRanks [chess.BoardSize]string, pattern *FENPattern) bool {
	for i, patternRank := range pattern.ranks {
		if !matchRank(boardRanks[i], patternRank) {
			return false
		}
	}
	return true
}

// boardToRanks converts a board to rank strings, rank 8 first, with '_'
// for empty squares.
func boardToRanks(board *chess.Board) [chess.BoardSize]string {
	var ranks [chess.BoardSize]string
	for row := 0; row < chess.BoardSize; row++ {
		var sb strings.Builder
		for col := 0; col < chess.BoardSize; col++ {
			sb.WriteByte(pieceToChar(board[row][col]))
		}
		ranks[row] = sb.String()
	}
	return ranks
}

// pieceToChar converts a piece to its FEN character.
func pieceToChar(piece chess.Piece) byte {
	if piece == chess.Empty {
		return '_'
	}
	return engine.ColouredPieceToFENLetter(piece)
}

// matchRank matches a board rank string against a pattern rank.
func matchRank(boardRank, patternRank string) bool {
	bi := 0 // board index
	pi := 0 // pattern index

	for pi < len(patternRank) {
		c := patternRank[pi]
		if c == '*' {
			pi++
			if pi >= len(patternRank) {
				return true // * at end matches rest
			}
			// Try matching rest of pattern at each position
			for ; bi <= len(boardRank); bi++ {
				if matchRank(boardRank[bi:], patternRank[pi:]) {
					return true
				}
			}
			return false
		}

		if c >= '1' && c <= '8' {
			for n := int(c - '0'); n > 0; n-- {
				if bi >= len(boardRank) || boardRank[bi] != '_' {
					return false
				}
				bi++
			}
			pi++
			continue
		}

		if bi >= len(boardRank) || !matchSquare(boardRank[bi], c) {
			return false
		}
		bi++
		pi++
	}

	return bi == len(boardRank)
}

// matchSquare matches one board square against one pattern character.
func matchSquare(sq, c byte) bool {
	switch c {
	case '?':
		return true
	case '!':
		return sq != '_'
	case 'A':
		return sq >= 'A' && sq <= 'Z'
	case 'a':
		return sq >= 'a' && sq <= 'z'
	default:
		return sq == c
	}
}

// invertPattern swaps the colours of a pattern and mirrors it top to bottom.
func invertPattern(pattern string) string {
	swapped := strings.Map(func(c rune) rune {
		switch {
		case c >= 'A' && c <= 'Z':
			return c + 'a' - 'A'
		case c >= 'a' && c <= 'z':
			return c - 'a' + 'A'
		}
		return c
	}, pattern)

	ranks := strings.Split(swapped, "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	return strings.Join(ranks, "/")
}

// PatternCount returns the number of patterns.
func (pm *PositionMatcher) PatternCount() int {
	return len(pm.patterns)
}
