package eval

import (
	"github.com/ravenfell/caissa/pkg/board"
	"github.com/ravenfell/caissa/pkg/score"
)

// Material is the nominal material-balance evaluator: the sum, over every
// piece on the board, of its nominal value signed by color. It recognizes
// the handful of material combinations that can never force checkmate and
// reports those as an exact draw regardless of the raw balance.
type Material struct{}

func (Material) Evaluate(pos *board.Position) score.Score {
	if isInsufficientMaterial(pos) {
		return score.Equal
	}

	var total score.Score
	for pt := board.Pawn; pt <= board.Queen; pt++ {
		white := pos.PieceOccupancy(board.White, pt).PopCount()
		black := pos.PieceOccupancy(board.Black, pt).PopCount()
		total += score.Score(white-black) * NominalValue(pt)
	}
	return total
}

// isInsufficientMaterial reports whether neither side has enough material
// left on the board to force checkmate: king versus king, king and knight
// versus king, king and bishop versus king, or king and bishop(s) versus
// king and bishop(s) with every bishop on the board confined to the same
// square color. A single pawn, rook, or queen anywhere rules this out,
// since any of those alone can force mate.
func isInsufficientMaterial(pos *board.Position) bool {
	for _, side := range [2]board.Side{board.White, board.Black} {
		if pos.PieceOccupancy(side, board.Pawn) != 0 ||
			pos.PieceOccupancy(side, board.Rook) != 0 ||
			pos.PieceOccupancy(side, board.Queen) != 0 {
			return false
		}
	}

	knights := pos.PieceOccupancy(board.White, board.Knight).PopCount() +
		pos.PieceOccupancy(board.Black, board.Knight).PopCount()
	bishops := pos.PieceOccupancy(board.White, board.Bishop) | pos.PieceOccupancy(board.Black, board.Bishop)
	numBishops := bishops.PopCount()

	switch {
	case knights == 0 && numBishops == 0:
		return true // KvK
	case knights == 1 && numBishops == 0:
		return true // K+NvK
	case knights == 0 && numBishops >= 1:
		return allSameSquareColor(bishops) // K+B(+B...)vK(+B...), same-color bishops only
	default:
		return false // a knight alongside any bishop, or two+ knights
	}
}

// allSameSquareColor reports whether every set square in bb is the same
// light/dark color, trivially true for zero or one square.
func allSameSquareColor(bb board.Bitboard) bool {
	first := true
	var color int
	for bb != 0 {
		var sq board.Square
		bb, sq = bb.PopLSB()
		c := (int(sq.File()) + int(sq.Rank())) & 1
		if first {
			color = c
			first = false
		} else if c != color {
			return false
		}
	}
	return true
}
