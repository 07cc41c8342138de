package board

import "math/bits"

// Ray attack tables: for each of the eight directions and each origin
// square, the bitboard of squares along that ray from, but excluding, the
// origin, extended to the board edge on an otherwise empty board. Slider
// targets against an actual occupancy are derived from these at query time
// in RookTargets/BishopTargets/QueenTargets below.
var (
	northRays     [NumSquares]Bitboard
	southRays     [NumSquares]Bitboard
	eastRays      [NumSquares]Bitboard
	westRays      [NumSquares]Bitboard
	northEastRays [NumSquares]Bitboard
	northWestRays [NumSquares]Bitboard
	southEastRays [NumSquares]Bitboard
	southWestRays [NumSquares]Bitboard
)

func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		b := BitMask(sq)
		northRays[sq] = northFill(shiftNorth(b))
		southRays[sq] = southFill(shiftSouth(b))
		eastRays[sq] = eastFill(shiftEast(b))
		westRays[sq] = westFill(shiftWest(b))
		northEastRays[sq] = northEastFill(shiftNorthEast(b))
		northWestRays[sq] = northWestFill(shiftNorthWest(b))
		southEastRays[sq] = southEastFill(shiftSouthEast(b))
		southWestRays[sq] = southWestFill(shiftSouthWest(b))
	}
}

// sentinel bits so a scan across a potentially-empty blocker set is always
// well-defined without a branch: the highest square for a forward (LSB)
// scan, the lowest square for a reverse (MSB) scan. Neither changes the
// result, since the corresponding ray table entry for those squares (H8,
// A1) never intersects the true ray from a different origin in a way that
// would forge a spurious blocker; it exists only to give the scan a bit to
// find when there are no real blockers.
const (
	forwardSentinel = Bitboard(1) << 63
	reverseSentinel = Bitboard(1)
)

// positiveTargets handles the four rays along which the square index
// increases as you travel outward from the origin (N, NE, E, SE): the
// nearest blocker is the lowest set bit.
func positiveTargets(rays *[NumSquares]Bitboard, origin Square, occupied Bitboard) Bitboard {
	empty := rays[origin]
	blocked := empty & occupied
	first := Square(bits.TrailingZeros64(uint64(blocked | forwardSentinel)))
	return empty ^ rays[first]
}

// negativeTargets handles the four rays along which the square index
// decreases as you travel outward from the origin (S, SW, W, NW): the
// nearest blocker is the highest set bit.
func negativeTargets(rays *[NumSquares]Bitboard, origin Square, occupied Bitboard) Bitboard {
	empty := rays[origin]
	blocked := empty & occupied
	first := Square(63 - bits.LeadingZeros64(uint64(blocked|reverseSentinel)))
	return empty ^ rays[first]
}

func NorthTargets(origin Square, occupied Bitboard) Bitboard {
	return positiveTargets(&northRays, origin, occupied)
}

func NorthEastTargets(origin Square, occupied Bitboard) Bitboard {
	return positiveTargets(&northEastRays, origin, occupied)
}

func EastTargets(origin Square, occupied Bitboard) Bitboard {
	return positiveTargets(&eastRays, origin, occupied)
}

func SouthEastTargets(origin Square, occupied Bitboard) Bitboard {
	return positiveTargets(&southEastRays, origin, occupied)
}

func SouthTargets(origin Square, occupied Bitboard) Bitboard {
	return negativeTargets(&southRays, origin, occupied)
}

func SouthWestTargets(origin Square, occupied Bitboard) Bitboard {
	return negativeTargets(&southWestRays, origin, occupied)
}

func WestTargets(origin Square, occupied Bitboard) Bitboard {
	return negativeTargets(&westRays, origin, occupied)
}

func NorthWestTargets(origin Square, occupied Bitboard) Bitboard {
	return negativeTargets(&northWestRays, origin, occupied)
}

// RookTargets returns the pseudo-legal rook move/attack set from origin
// against the given full-board occupancy. The caller masks out squares
// occupied by the moving side.
func RookTargets(origin Square, occupied Bitboard) Bitboard {
	return NorthTargets(origin, occupied) | SouthTargets(origin, occupied) |
		EastTargets(origin, occupied) | WestTargets(origin, occupied)
}

// BishopTargets returns the pseudo-legal bishop move/attack set from origin.
func BishopTargets(origin Square, occupied Bitboard) Bitboard {
	return NorthEastTargets(origin, occupied) | NorthWestTargets(origin, occupied) |
		SouthEastTargets(origin, occupied) | SouthWestTargets(origin, occupied)
}

// QueenTargets returns the pseudo-legal queen move/attack set from origin.
func QueenTargets(origin Square, occupied Bitboard) Bitboard {
	return RookTargets(origin, occupied) | BishopTargets(origin, occupied)
}

// Targets dispatches to the right attack function by piece type. Pawn has
// no context-free targets function since its attacks depend on side; use
// PawnAttackTargets instead.
func Targets(pt PieceType, origin Square, occupied Bitboard) Bitboard {
	switch pt {
	case King:
		return KingTargets(origin)
	case Queen:
		return QueenTargets(origin, occupied)
	case Rook:
		return RookTargets(origin, occupied)
	case Bishop:
		return BishopTargets(origin, occupied)
	case Knight:
		return KnightTargets(origin)
	default:
		panic("board: Targets called with non-officer piece type")
	}
}

// PawnAttackTargets returns every square the given side's pawns (as a
// bitboard) attack diagonally, ignoring whether a capturable piece is
// actually there.
func PawnAttackTargets(side Side, pawns Bitboard) Bitboard {
	if side == White {
		return shiftNorthEast(pawns) | shiftNorthWest(pawns)
	}
	return shiftSouthEast(pawns) | shiftSouthWest(pawns)
}

// PawnPushTargets returns the single-step push targets of the given side's
// pawns against the given empty-square set.
func PawnPushTargets(side Side, pawns, empty Bitboard) Bitboard {
	if side == White {
		return shiftNorth(pawns) & empty
	}
	return shiftSouth(pawns) & empty
}

// PawnDoublePushTargets returns the double-step push targets, given the
// single-push targets already computed by PawnPushTargets.
func PawnDoublePushTargets(side Side, singlePushTargets, empty Bitboard) Bitboard {
	if side == White {
		return shiftNorth(singlePushTargets&BitRank(Rank3)) & empty
	}
	return shiftSouth(singlePushTargets&BitRank(Rank6)) & empty
}

// PawnEastAttackTargets returns the diagonal targets on the a1-h8 side of
// the given side's pawns (toward higher files, regardless of push
// direction): north-east for White, south-east for Black.
func PawnEastAttackTargets(side Side, pawns Bitboard) Bitboard {
	if side == White {
		return shiftNorthEast(pawns)
	}
	return shiftSouthEast(pawns)
}

// PawnWestAttackTargets returns the diagonal targets toward lower files:
// north-west for White, south-west for Black.
func PawnWestAttackTargets(side Side, pawns Bitboard) Bitboard {
	if side == White {
		return shiftNorthWest(pawns)
	}
	return shiftSouthWest(pawns)
}

// PawnEastAttackOrigins maps a set of east-attack target squares back to the
// pawn origins that could have produced them.
func PawnEastAttackOrigins(side Side, targets Bitboard) Bitboard {
	if side == White {
		return shiftSouthWest(targets)
	}
	return shiftNorthWest(targets)
}

// PawnWestAttackOrigins maps a set of west-attack target squares back to the
// pawn origins that could have produced them.
func PawnWestAttackOrigins(side Side, targets Bitboard) Bitboard {
	if side == White {
		return shiftSouthEast(targets)
	}
	return shiftNorthEast(targets)
}

// PawnPushOrigin returns the square a side's pawn pushed from to reach
// target with a single step.
func PawnPushOrigin(side Side, target Square) Square {
	if side == White {
		return NewSquare(target.File(), target.Rank()-1)
	}
	return NewSquare(target.File(), target.Rank()+1)
}

// PawnDoublePushOrigin returns the square a side's pawn pushed from to reach
// target with a double step.
func PawnDoublePushOrigin(side Side, target Square) Square {
	if side == White {
		return NewSquare(target.File(), target.Rank()-2)
	}
	return NewSquare(target.File(), target.Rank()+2)
}

// PawnEastAttackOrigin returns the single square an east-attack on target
// originated from.
func PawnEastAttackOrigin(side Side, target Square) Square {
	if side == White {
		return NewSquare(target.File()-1, target.Rank()-1)
	}
	return NewSquare(target.File()-1, target.Rank()+1)
}

// PawnWestAttackOrigin returns the single square a west-attack on target
// originated from.
func PawnWestAttackOrigin(side Side, target Square) Square {
	if side == White {
		return NewSquare(target.File()+1, target.Rank()-1)
	}
	return NewSquare(target.File()+1, target.Rank()+1)
}

// PawnPromotionRank returns the opponent's back rank, where the given
// side's pawns promote.
func PawnPromotionRank(side Side) Rank {
	if side == White {
		return Rank8
	}
	return Rank1
}

// PawnJumpRank returns the rank a pawn's double push lands on for the given
// side.
func PawnJumpRank(side Side) Rank {
	if side == White {
		return Rank4
	}
	return Rank5
}
