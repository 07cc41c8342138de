package movegen

import "github.com/ravenfell/caissa/pkg/board"

// policy supplies the legality rules that differ across the three positions
// a side to move can be in: nothing is pinned to its king, something might
// be (an x-ray reaches the king), or the king is already attacked. Target
// filtering (which squares a piece may even consider moving to) and
// per-move legality (does this particular move leave the king in check) are
// kept separate so the bulk of generation — enumerating pieces, pushing
// pawns, building moves — is shared in generator.go regardless of which
// policy is active.
type policy interface {
	nonCaptureTargetFilter(at *attacksTo, targets board.Bitboard) board.Bitboard
	captureTargetFilter(at *attacksTo, targets board.Bitboard) board.Bitboard
	pawnCaptureTargetFilter(at *attacksTo, targets board.Bitboard) board.Bitboard

	isLegalNonCapture(at *attacksTo, origin, target board.Square) bool
	isLegalCapture(at *attacksTo, origin, target board.Square) bool
	isLegalEnPassantCapture(at *attacksTo, origin, target board.Square) bool
	isLegalKingMove(at *attacksTo, origin, target board.Square) bool
}

func enPassantBitboard(pos *board.Position) board.Bitboard {
	if pos.EnPassant.IsValid() {
		return board.BitMask(pos.EnPassant)
	}
	return board.EmptyBitboard
}

// notXrayedPolicy applies when the king has no x-ray reaching it at all:
// nothing can be pinned, so every pseudo-legal move is legal. All the work
// is in restricting targets to non-own-occupied (quiets) or opponent-
// occupied (captures) squares.
type notXrayedPolicy struct{}

func (notXrayedPolicy) nonCaptureTargetFilter(at *attacksTo, targets board.Bitboard) board.Bitboard {
	return targets &^ at.pos.Occupancy()
}

func (notXrayedPolicy) captureTargetFilter(at *attacksTo, targets board.Bitboard) board.Bitboard {
	return targets & at.pos.SideOccupancy(at.pos.SideToMove.Opponent())
}

func (notXrayedPolicy) pawnCaptureTargetFilter(at *attacksTo, targets board.Bitboard) board.Bitboard {
	return targets & (at.pos.SideOccupancy(at.pos.SideToMove.Opponent()) | enPassantBitboard(at.pos))
}

func (notXrayedPolicy) isLegalNonCapture(*attacksTo, board.Square, board.Square) bool { return true }
func (notXrayedPolicy) isLegalCapture(*attacksTo, board.Square, board.Square) bool    { return true }
func (notXrayedPolicy) isLegalEnPassantCapture(*attacksTo, board.Square, board.Square) bool {
	return true
}
func (notXrayedPolicy) isLegalKingMove(*attacksTo, board.Square, board.Square) bool { return true }

// xrayedPolicy applies when the king is not in check but at least one
// opponent slider has a clear line to it on an otherwise empty board: a
// friendly piece sitting on that line might be pinned. Target filtering is
// identical to notXrayedPolicy; only the legality checks differ, and only
// for the origin squares that actually sit on a recorded x-ray.
type xrayedPolicy struct{}

func (xrayedPolicy) nonCaptureTargetFilter(at *attacksTo, targets board.Bitboard) board.Bitboard {
	return targets &^ at.pos.Occupancy()
}

func (xrayedPolicy) captureTargetFilter(at *attacksTo, targets board.Bitboard) board.Bitboard {
	return targets & at.pos.SideOccupancy(at.pos.SideToMove.Opponent())
}

func (xrayedPolicy) pawnCaptureTargetFilter(at *attacksTo, targets board.Bitboard) board.Bitboard {
	return targets & (at.pos.SideOccupancy(at.pos.SideToMove.Opponent()) | enPassantBitboard(at.pos))
}

func (xrayedPolicy) isLegalNonCapture(at *attacksTo, origin, target board.Square) bool {
	originBB := board.BitMask(origin)
	if originBB&at.allAttackTargets&at.xrayTargets == 0 {
		return true
	}
	occAfter := at.pos.Occupancy()&^originBB | board.BitMask(target)
	return !xraysCheckKing(at, occAfter, func(x sliderTargets) bool { return x.targets&originBB != 0 })
}

func (xrayedPolicy) isLegalCapture(at *attacksTo, origin, target board.Square) bool {
	originBB := board.BitMask(origin)
	if originBB&at.allAttackTargets&at.xrayTargets == 0 {
		return true
	}
	occAfter := at.pos.Occupancy() &^ originBB
	return !xraysCheckKing(at, occAfter, func(x sliderTargets) bool {
		return x.origin != target && x.targets&originBB != 0
	})
}

func (xrayedPolicy) isLegalEnPassantCapture(at *attacksTo, origin, target board.Square) bool {
	originBB := board.BitMask(origin)
	capturedBB := board.BitMask(board.PawnPushOrigin(at.pos.SideToMove, target))
	if (originBB|capturedBB)&at.allAttackTargets&at.xrayTargets == 0 {
		return true
	}
	occAfter := at.pos.Occupancy()&^originBB&^capturedBB | board.BitMask(target)
	return !xraysCheckKing(at, occAfter, func(x sliderTargets) bool {
		return x.targets&(originBB|capturedBB) != 0
	})
}

func (xrayedPolicy) isLegalKingMove(*attacksTo, board.Square, board.Square) bool { return true }

// inCheckPolicy applies while the king is attacked. Quiet moves are
// restricted to squares blocking the single checking slider (none, if the
// checker is a leaper); captures are restricted to the checker's square(s).
// The target filters assume exactly one checker: with a second checker they
// would still admit moves that answer only one of them, so callers generate
// king moves only in that case and never reach these filters.
type inCheckPolicy struct{}

func (inCheckPolicy) nonCaptureTargetFilter(at *attacksTo, targets board.Bitboard) board.Bitboard {
	if len(at.sliderAttacks) == 0 {
		return board.EmptyBitboard
	}
	return targets & at.sliderAttacks[0].targets &^ at.pos.Occupancy()
}

func (inCheckPolicy) captureTargetFilter(at *attacksTo, targets board.Bitboard) board.Bitboard {
	return targets & at.attackOrigins
}

func (inCheckPolicy) pawnCaptureTargetFilter(at *attacksTo, targets board.Bitboard) board.Bitboard {
	return targets & (at.attackOrigins | enPassantBitboard(at.pos))
}

func (inCheckPolicy) isLegalNonCapture(at *attacksTo, origin, target board.Square) bool {
	occAfter := at.pos.Occupancy()&^board.BitMask(origin) | board.BitMask(target)
	return !xraysCheckKing(at, occAfter, func(sliderTargets) bool { return true })
}

func (inCheckPolicy) isLegalCapture(at *attacksTo, origin, target board.Square) bool {
	originBB := board.BitMask(origin)
	occAfter := at.pos.Occupancy() &^ originBB
	return !xraysCheckKing(at, occAfter, func(x sliderTargets) bool {
		return x.origin != target && x.targets&originBB != 0
	})
}

func (inCheckPolicy) isLegalEnPassantCapture(at *attacksTo, origin, target board.Square) bool {
	originBB := board.BitMask(origin)
	capturedBB := board.BitMask(board.PawnPushOrigin(at.pos.SideToMove, target))
	if capturedBB != at.attackOrigins {
		// The checker is a slider the capture would not block.
		return false
	}
	occAfter := at.pos.Occupancy()&^originBB&^capturedBB | board.BitMask(target)
	return !xraysCheckKing(at, occAfter, func(x sliderTargets) bool { return x.targets&originBB != 0 })
}

func (inCheckPolicy) isLegalKingMove(at *attacksTo, origin, target board.Square) bool {
	targetBB := board.BitMask(target)
	if targetBB&at.xrayTargets == 0 {
		return true
	}
	originBB := board.BitMask(origin)
	occAfter := at.pos.Occupancy()&^originBB | targetBB
	for _, s := range at.sliderAttacks {
		if s.targets&originBB == 0 {
			continue
		}
		if slidingTargetsAfter(s, occAfter)&targetBB != 0 {
			return false
		}
	}
	return true
}

// xraysCheckKing reports whether any x-ray passing the given filter, when
// recomputed against occAfter, now reaches the king — i.e. whether the
// candidate move would expose a discovered check along that ray.
func xraysCheckKing(at *attacksTo, occAfter board.Bitboard, include func(sliderTargets) bool) bool {
	ownKing := board.BitMask(at.target)
	for _, x := range at.xrays {
		if !include(x) {
			continue
		}
		if slidingTargetsAfter(x, occAfter)&ownKing != 0 {
			return true
		}
	}
	return false
}
