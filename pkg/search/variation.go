package search

import "github.com/ravenfell/caissa/pkg/board"

// PrincipalVariation reconstructs the best line found by a prior AlphaBeta
// call at the given depth, by walking the transposition table from
// history's current position and following each Exact entry's best move as
// long as its stored depth matches the depth remaining at that step. It
// restores history to its original position before returning.
func PrincipalVariation(tt *Table, history *board.PositionHistory, depth int) []board.Move {
	var pv []board.Move

	d := depth
	applied := 0
	for {
		e, ok := tt.Get(history.CurrentHash())
		if !ok || e.Depth != d || e.Bound != Exact || e.BestMove.IsNull() {
			break
		}

		pv = append(pv, e.BestMove)
		history.DoMove(e.BestMove)
		applied++
		if d > 0 {
			d--
		}
	}

	for ; applied > 0; applied-- {
		history.UndoLastMove()
	}
	return pv
}
