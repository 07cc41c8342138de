// Package movegen generates strictly legal moves: every Move it produces is
// safe to play without a post-hoc "did that leave my king in check" check.
package movegen

import "github.com/ravenfell/caissa/pkg/board"

// sliderTargets is a sliding piece's attack set from one origin, either its
// real attack set (against the actual occupancy) or its x-ray set (against
// an empty board).
type sliderTargets struct {
	piece   board.PieceType
	origin  board.Square
	targets board.Bitboard
}

// attacksTo summarizes every attack the given side directs at target,
// typically the defending king's square. It is the single piece of
// information the three legality policies need: how many attackers there
// are, where they can be blocked or captured, and which of them is doing so
// only because a friendly piece is in the way (a potential pin).
type attacksTo struct {
	pos    *board.Position
	target board.Square

	// allAttackTargets is the union of every square attackingSide's pieces
	// attack, independent of whether any of them actually hits target. It
	// is what a king move must avoid stepping into.
	allAttackTargets board.Bitboard

	// attackOrigins is the set of attackingSide squares that actually
	// attack target right now.
	attackOrigins board.Bitboard

	// sliderAttacks holds one entry per sliding piece whose real attack
	// set includes target.
	sliderAttacks []sliderTargets

	// xrayTargets is the union of every slider's x-ray set that would
	// reach target if the board were otherwise empty; xrays holds the
	// matching per-slider records. A friendly piece sitting on one of
	// these squares is a pin candidate that needs a legality check before
	// it moves off the ray.
	xrayTargets board.Bitboard
	xrays       []sliderTargets
}

// newAttacksTo computes every attack attackingSide directs at target in pos.
func newAttacksTo(pos *board.Position, target board.Square, attackingSide board.Side) *attacksTo {
	targetBB := board.BitMask(target)

	pawns := pos.PieceOccupancy(attackingSide, board.Pawn)
	eastTargets := board.PawnEastAttackTargets(attackingSide, pawns)
	westTargets := board.PawnWestAttackTargets(attackingSide, pawns)
	pawnAttackTargets := eastTargets | westTargets
	pawnOrigins := board.PawnEastAttackOrigins(attackingSide, eastTargets&targetBB) |
		board.PawnWestAttackOrigins(attackingSide, westTargets&targetBB)

	knightAttackTargets, knightOrigins := leaperAttacksTowards(pos, board.Knight, board.KnightTargets, target, attackingSide)
	kingAttackTargets, kingOrigins := leaperAttacksTowards(pos, board.King, board.KingTargets, target, attackingSide)

	bishopTargets, bishopOrigins, bishopAttacks, bishopXrayTargets, bishopXrays :=
		sliderAttacksTowards(pos, board.Bishop, board.BishopTargets, target, attackingSide)
	rookTargets, rookOrigins, rookAttacks, rookXrayTargets, rookXrays :=
		sliderAttacksTowards(pos, board.Rook, board.RookTargets, target, attackingSide)
	queenTargets, queenOrigins, queenAttacks, queenXrayTargets, queenXrays :=
		sliderAttacksTowards(pos, board.Queen, board.QueenTargets, target, attackingSide)

	at := &attacksTo{
		pos:    pos,
		target: target,

		allAttackTargets: pawnAttackTargets | knightAttackTargets | kingAttackTargets |
			bishopTargets | rookTargets | queenTargets,
		attackOrigins: pawnOrigins | knightOrigins | kingOrigins |
			bishopOrigins | rookOrigins | queenOrigins,

		xrayTargets: bishopXrayTargets | rookXrayTargets | queenXrayTargets,
	}
	at.sliderAttacks = append(at.sliderAttacks, bishopAttacks...)
	at.sliderAttacks = append(at.sliderAttacks, rookAttacks...)
	at.sliderAttacks = append(at.sliderAttacks, queenAttacks...)
	at.xrays = append(at.xrays, bishopXrays...)
	at.xrays = append(at.xrays, rookXrays...)
	at.xrays = append(at.xrays, queenXrays...)
	return at
}

// leaperAttacksTowards handles knight and king attacks: occupancy never
// affects their reach, so there is no x-ray case.
func leaperAttacksTowards(pos *board.Position, pt board.PieceType, targetsOf func(board.Square) board.Bitboard, target board.Square, attackingSide board.Side) (allTargets, origins board.Bitboard) {
	targetBB := board.BitMask(target)
	pieces := pos.PieceOccupancy(attackingSide, pt)
	for pieces != 0 {
		var origin board.Square
		pieces, origin = pieces.PopLSB()
		t := targetsOf(origin)
		allTargets |= t
		if t&targetBB != 0 {
			origins |= board.BitMask(origin)
		}
	}
	return allTargets, origins
}

// sliderAttacksTowards handles bishops, rooks and queens, which additionally
// need the x-ray computation: attacking target's square with the actual
// occupancy replaced by an empty board reveals what lies beyond the first
// blocker, i.e. what the slider would attack if that blocker moved away.
func sliderAttacksTowards(pos *board.Position, pt board.PieceType, targetsOf func(board.Square, board.Bitboard) board.Bitboard, target board.Square, attackingSide board.Side) (allTargets, origins board.Bitboard, attacks []sliderTargets, xrayTargets board.Bitboard, xrays []sliderTargets) {
	targetBB := board.BitMask(target)
	pieces := pos.PieceOccupancy(attackingSide, pt)
	for pieces != 0 {
		var origin board.Square
		pieces, origin = pieces.PopLSB()

		t := targetsOf(origin, pos.Occupancy())
		allTargets |= t
		if t&targetBB != 0 {
			origins |= board.BitMask(origin)
			attacks = append(attacks, sliderTargets{piece: pt, origin: origin, targets: t})
		}

		xt := targetsOf(origin, board.EmptyBitboard)
		if xt&targetBB != 0 {
			xrayTargets |= xt
			xrays = append(xrays, sliderTargets{piece: pt, origin: origin, targets: xt})
		}
	}
	return allTargets, origins, attacks, xrayTargets, xrays
}

// slidingTargetsAfter recomputes a recorded slider's attack set against a
// hypothetical occupancy, used to re-check for check after a candidate move
// vacates or fills a square on its ray.
func slidingTargetsAfter(s sliderTargets, occupancy board.Bitboard) board.Bitboard {
	switch s.piece {
	case board.Bishop:
		return board.BishopTargets(s.origin, occupancy)
	case board.Rook:
		return board.RookTargets(s.origin, occupancy)
	default:
		return board.QueenTargets(s.origin, occupancy)
	}
}
