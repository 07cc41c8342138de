// Package eval contains static position evaluation.
package eval

import (
	"github.com/ravenfell/caissa/pkg/board"
	"github.com/ravenfell/caissa/pkg/score"
)

// Evaluator is a static position evaluator: a function from Position to a
// signed score, positive favoring White, zero equal. Implementations carry
// no hidden state beyond configuration.
type Evaluator interface {
	Evaluate(pos *board.Position) score.Score
}

// SideRelative adapts an Evaluator's absolute, White-favoring score to the
// side-relative convention negamax search consumes: positive favors
// whichever side is to move in pos.
func SideRelative(e Evaluator, pos *board.Position) score.Score {
	return score.RelativeToAbsolute(pos.SideToMove, e.Evaluate(pos))
}

// NominalValue is the absolute nominal value in centipawns of a piece. The
// king is never scored (it has no material value) and returns zero.
func NominalValue(pt board.PieceType) score.Score {
	switch pt {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	default:
		return 0
	}
}
