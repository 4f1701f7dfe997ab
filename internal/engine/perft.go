package engine

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Promotions only ever resolve to a queen, so counts for positions with
// promotions are lower than those of engines that generate all four.
func (gs *GameState) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := gs.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, move := range moves {
		gs.makeMove(move)
		nodes += gs.Perft(depth - 1)
		gs.Undo()
	}
	return nodes
}

// Divide returns the perft count below each legal root move, keyed by the
// move's notation.
func (gs *GameState) Divide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth <= 0 {
		return out
	}
	for _, move := range gs.LegalMoves() {
		gs.makeMove(move)
		out[move.String()] = gs.Perft(depth - 1)
		gs.Undo()
	}
	return out
}
