// Package score defines the signed evaluation unit the move generator's
// consumers (evaluation and search) share, plus the mate-distance
// conventions that let faster mates outscore slower ones.
package score

import (
	"fmt"

	"github.com/ravenfell/caissa/pkg/board"
)

// Score is a signed centipawn value. Positive favors White in an absolute
// context (an Evaluator's return value); in search it is negamax-relative,
// positive favoring the side to move at that node. Score must stay within
// [NegInf; Inf]; Mate and MatedIn below stay inside that range for any
// non-negative ply count.
type Score int32

const (
	Equal Score = 0

	// Inf and NegInf bound every ordinary evaluation; Mate scores live
	// strictly inside that band so they still compare correctly against
	// plain material scores.
	Inf    Score = 1_000_000
	NegInf Score = -Inf

	// maxMateDistance is generously larger than any reachable search depth;
	// it only has to keep Mate(ply) inside (Equal, Inf) for every ply the
	// search can actually reach.
	maxMateDistance = 1000
)

// Mate returns the score for delivering checkmate in the given number of
// plies from the current node (0 meaning the opponent is already mated; the
// mated side itself scores MatedIn(0)). Closer mates score higher, so that
// the search prefers them.
func Mate(plies int) Score {
	return Inf - Score(plies)
}

// MatedIn is the score for being on the losing end of a mate in the given
// number of plies.
func MatedIn(plies int) Score {
	return -Mate(plies)
}

// IsMate reports whether s represents a forced mate in either direction.
func IsMate(s Score) bool {
	return s > Inf-maxMateDistance || s < -Inf+maxMateDistance
}

// PliesToMate returns the number of plies to mate encoded in s and whether
// s actually encodes one. The returned count is relative to the node where
// s was produced, not the search root.
func PliesToMate(s Score) (int, bool) {
	switch {
	case s > Inf-maxMateDistance:
		return int(Inf - s), true
	case s < -Inf+maxMateDistance:
		return int(Inf + s), true
	default:
		return 0, false
	}
}

// Negate flips the score to the opponent's perspective, the one operation
// negamax recursion performs at every ply.
func (s Score) Negate() Score {
	return -s
}

// IncrementMateDistance adjusts a mate score returned by one ply of
// recursion to account for the ply just unwound, so a mate reported deeper
// in the tree scores worse than one found closer to the current node. Score
// values that are not mate scores pass through unchanged.
func IncrementMateDistance(s Score) Score {
	if plies, ok := PliesToMate(s); ok {
		if s > 0 {
			return Mate(plies + 1)
		}
		return MatedIn(plies + 1)
	}
	return s
}

// RelativeToAbsolute converts a side-relative score (positive favors side)
// to the absolute White-favoring convention an Evaluator's Evaluate result
// and a UCI score report use.
func RelativeToAbsolute(side board.Side, s Score) Score {
	if side == board.Black {
		return -s
	}
	return s
}

// Max returns the larger of two scores.
func Max(a, b Score) Score {
	if b > a {
		return b
	}
	return a
}

// Min returns the smaller of two scores.
func Min(a, b Score) Score {
	if b < a {
		return b
	}
	return a
}

// Crop clamps s into [NegInf; Inf].
func Crop(s Score) Score {
	switch {
	case s > Inf:
		return Inf
	case s < NegInf:
		return NegInf
	default:
		return s
	}
}

func (s Score) String() string {
	if plies, ok := PliesToMate(s); ok {
		if s > 0 {
			return fmt.Sprintf("mate %d", (plies+1)/2)
		}
		return fmt.Sprintf("mate -%d", (plies+1)/2)
	}
	return fmt.Sprintf("%.2f", float64(s)/100)
}
