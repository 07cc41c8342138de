package search

import (
	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/ravenfell/caissa/pkg/board"
	"github.com/ravenfell/caissa/pkg/eval"
	"github.com/ravenfell/caissa/pkg/movegen"
	"github.com/ravenfell/caissa/pkg/score"
)

// quiescence searches captures only, past the nominal search horizon, to
// avoid misjudging a position mid-capture-sequence. Standard moves are
// never explored here; only the stand-pat evaluation and capture
// recursion. Legal non-capture moves still have to be generated once, to
// tell a quiet position (evaluate and stop) from checkmate or stalemate
// (no legal move of any kind).
func (r *runner) quiescence(alpha, beta score.Score) score.Score {
	if contextx.IsCancelled(r.ctx) {
		return score.Equal
	}
	r.nodes++

	pos := r.history.CurrentPosition()
	standPat := eval.SideRelative(r.ev, pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	list := board.NewMoveList()
	movegen.GenerateMoves(list, pos)
	if list.Len() == 0 {
		return terminalScore(pos)
	}

	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if !m.IsCapture() {
			continue
		}

		r.history.DoMove(m)
		childScore := r.quiescence(beta.Negate(), alpha.Negate())
		childScore = score.IncrementMateDistance(childScore).Negate()
		r.history.UndoLastMove()

		if childScore >= beta {
			return beta
		}
		if childScore > alpha {
			alpha = childScore
		}
	}
	return alpha
}
