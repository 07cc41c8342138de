// Package search implements negamax alpha-beta search with quiescence and a
// transposition table, over the position/move-generation primitives in
// pkg/board and pkg/movegen.
package search

import (
	"context"
	"errors"

	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/ravenfell/caissa/pkg/board"
	"github.com/ravenfell/caissa/pkg/eval"
	"github.com/ravenfell/caissa/pkg/movegen"
	"github.com/ravenfell/caissa/pkg/score"
)

// ErrCancelled is returned when ctx is cancelled before a search completes.
var ErrCancelled = errors.New("search: cancelled")

// Result is the outcome of a top-level search call.
type Result struct {
	Score    score.Score // side-to-move-relative
	BestMove board.Move  // NullMove iff the root position is terminal
	Nodes    uint64
}

// AlphaBeta searches history's current position to the given depth in
// plies, consulting and updating tt, and returns the side-relative score
// and best move at the root. It calls tt.NextAge itself before searching, so
// its writes outrank entries left by earlier searches.
func AlphaBeta(ctx context.Context, tt *Table, ev eval.Evaluator, history *board.PositionHistory, depth int) (Result, error) {
	tt.NextAge()
	r := &runner{ctx: ctx, tt: tt, ev: ev, history: history}

	s, move := r.search(depth, score.NegInf, score.Inf)
	if contextx.IsCancelled(ctx) {
		return Result{}, ErrCancelled
	}
	return Result{Score: s, BestMove: move, Nodes: r.nodes}, nil
}

type runner struct {
	ctx     context.Context
	tt      *Table
	ev      eval.Evaluator
	history *board.PositionHistory
	nodes   uint64
}

// boundHard applies the fail-hard bounding rule to a table hit: an Exact
// entry still has to be re-clamped to the current window since the window
// at the time it was stored may have been wider or narrower.
func boundHard(e Entry, alpha, beta score.Score) (score.Score, bool) {
	switch e.Bound {
	case Exact:
		if e.Score >= beta {
			return beta, true
		}
		if e.Score < alpha {
			return alpha, true
		}
		return e.Score, true
	case LowerBound:
		if e.Score >= beta {
			return beta, true
		}
	case UpperBound:
		if e.Score < alpha {
			return alpha, true
		}
	}
	return 0, false
}

// search returns the side-to-move-relative score at depth, plus the best
// move found (NullMove for quiescence leaves and terminal nodes).
func (r *runner) search(depth int, alpha, beta score.Score) (score.Score, board.Move) {
	if contextx.IsCancelled(r.ctx) {
		return score.Equal, board.NullMove
	}

	hash := r.history.CurrentHash()
	if e, ok := r.tt.Get(hash); ok && e.Depth == depth {
		if bounded, ok := boundHard(e, alpha, beta); ok {
			return bounded, e.BestMove
		}
	}

	if depth == 0 {
		return r.quiescence(alpha, beta), board.NullMove
	}

	r.nodes++

	pos := r.history.CurrentPosition()
	list := board.NewMoveList()
	movegen.GenerateMoves(list, pos)

	if list.Len() == 0 {
		term := terminalScore(pos)
		r.tt.Insert(Entry{Hash: hash, Bound: Exact, Depth: depth, Score: term, BestMove: board.NullMove})
		return term, board.NullMove
	}

	bestMove := board.NullMove
	bound := UpperBound
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)

		r.history.DoMove(m)
		childScore, _ := r.search(depth-1, beta.Negate(), alpha.Negate())
		childScore = score.IncrementMateDistance(childScore).Negate()
		r.history.UndoLastMove()

		if childScore >= beta {
			r.tt.Insert(Entry{Hash: hash, Bound: LowerBound, Depth: depth, Score: beta, BestMove: m})
			return beta, m
		}
		if childScore > alpha {
			alpha = childScore
			bestMove = m
			bound = Exact
		}
	}

	r.tt.Insert(Entry{Hash: hash, Bound: bound, Depth: depth, Score: alpha, BestMove: bestMove})
	return alpha, bestMove
}

// terminalScore returns the score for a position with no legal moves:
// checkmate, signed so the side just mated scores as badly as possible at
// this node, or stalemate (equal).
func terminalScore(pos *board.Position) score.Score {
	if pos.IsInCheck(pos.SideToMove) {
		return score.MatedIn(0)
	}
	return score.Equal
}
