package movegen

import "github.com/ravenfell/caissa/pkg/board"

var promotionPieces = [4]board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight}

// GenerateMoves fills list with every strictly legal move available to the
// side to move in pos, replacing whatever list held before.
func GenerateMoves(list *board.MoveList, pos *board.Position) {
	list.Reset()
	at := attacksToOwnKing(pos)

	switch checkerCount := at.attackOrigins.PopCount(); {
	case checkerCount >= 2:
		generateKingMoves(list, at, inCheckPolicy{}, false)
	case checkerCount == 1:
		generateAll(list, at, inCheckPolicy{}, false)
	case len(at.xrays) > 0:
		generateAll(list, at, xrayedPolicy{}, false)
		generateCastles(list, at)
	default:
		generateAll(list, at, notXrayedPolicy{}, false)
		generateCastles(list, at)
	}
}

// GenerateCaptures fills list with every strictly legal capturing move
// (including promotions and en-passant) available to the side to move,
// replacing whatever list held before. Used by quiescence search.
func GenerateCaptures(list *board.MoveList, pos *board.Position) {
	list.Reset()
	at := attacksToOwnKing(pos)

	switch checkerCount := at.attackOrigins.PopCount(); {
	case checkerCount >= 2:
		generateKingMoves(list, at, inCheckPolicy{}, true)
	case checkerCount == 1:
		generateAll(list, at, inCheckPolicy{}, true)
	case len(at.xrays) > 0:
		generateAll(list, at, xrayedPolicy{}, true)
	default:
		generateAll(list, at, notXrayedPolicy{}, true)
	}
}

func attacksToOwnKing(pos *board.Position) *attacksTo {
	side := pos.SideToMove
	return newAttacksTo(pos, pos.KingSquare(side), side.Opponent())
}

// generateAll runs every non-castle, non-king generation step shared by all
// three policies. capturesOnly selects GenerateCaptures' narrower pass.
func generateAll(list *board.MoveList, at *attacksTo, pol policy, capturesOnly bool) {
	generatePawnMoves(list, at, pol, capturesOnly)
	generateLeaperMoves(list, at, pol, board.Knight, board.KnightTargets, capturesOnly)
	generateSliderMoves(list, at, pol, board.Bishop, board.BishopTargets, capturesOnly)
	generateSliderMoves(list, at, pol, board.Rook, board.RookTargets, capturesOnly)
	generateSliderMoves(list, at, pol, board.Queen, board.QueenTargets, capturesOnly)
	generateKingMoves(list, at, pol, capturesOnly)
}

func generateLeaperMoves(list *board.MoveList, at *attacksTo, pol policy, pt board.PieceType, targetsOf func(board.Square) board.Bitboard, capturesOnly bool) {
	pos := at.pos
	ownOccupancy := pos.SideOccupancy(pos.SideToMove)
	pieces := pos.PieceOccupancy(pos.SideToMove, pt)
	for pieces != 0 {
		var origin board.Square
		pieces, origin = pieces.PopLSB()
		targets := targetsOf(origin) &^ ownOccupancy
		generatePieceMoves(list, at, pol, origin, targets, capturesOnly)
	}
}

func generateSliderMoves(list *board.MoveList, at *attacksTo, pol policy, pt board.PieceType, targetsOf func(board.Square, board.Bitboard) board.Bitboard, capturesOnly bool) {
	pos := at.pos
	ownOccupancy := pos.SideOccupancy(pos.SideToMove)
	pieces := pos.PieceOccupancy(pos.SideToMove, pt)
	for pieces != 0 {
		var origin board.Square
		pieces, origin = pieces.PopLSB()
		targets := targetsOf(origin, pos.Occupancy()) &^ ownOccupancy
		generatePieceMoves(list, at, pol, origin, targets, capturesOnly)
	}
}

func generatePieceMoves(list *board.MoveList, at *attacksTo, pol policy, origin board.Square, targets board.Bitboard, capturesOnly bool) {
	captures := pol.captureTargetFilter(at, targets)
	for captures != 0 {
		var target board.Square
		captures, target = captures.PopLSB()
		if pol.isLegalCapture(at, origin, target) {
			list.Add(board.NewMove(origin, target, board.Capture))
		}
	}
	if capturesOnly {
		return
	}
	quiets := pol.nonCaptureTargetFilter(at, targets)
	for quiets != 0 {
		var target board.Square
		quiets, target = quiets.PopLSB()
		if pol.isLegalNonCapture(at, origin, target) {
			list.Add(board.NewMove(origin, target, board.Quiet))
		}
	}
}

func generateKingMoves(list *board.MoveList, at *attacksTo, pol policy, capturesOnly bool) {
	pos := at.pos
	origin := at.target
	targets := board.KingTargets(origin) &^ pos.SideOccupancy(pos.SideToMove) &^ at.allAttackTargets
	opponents := pos.SideOccupancy(pos.SideToMove.Opponent())

	captures := targets & opponents
	for captures != 0 {
		var target board.Square
		captures, target = captures.PopLSB()
		if pol.isLegalKingMove(at, origin, target) {
			list.Add(board.NewMove(origin, target, board.Capture))
		}
	}
	if capturesOnly {
		return
	}
	quiets := targets &^ opponents
	for quiets != 0 {
		var target board.Square
		quiets, target = quiets.PopLSB()
		if pol.isLegalKingMove(at, origin, target) {
			list.Add(board.NewMove(origin, target, board.Quiet))
		}
	}
}

func generatePawnMoves(list *board.MoveList, at *attacksTo, pol policy, capturesOnly bool) {
	if !capturesOnly {
		generatePawnPushes(list, at, pol)
	}
	generatePawnCapturesOneSide(list, at, pol, board.PawnEastAttackTargets, board.PawnEastAttackOrigin)
	generatePawnCapturesOneSide(list, at, pol, board.PawnWestAttackTargets, board.PawnWestAttackOrigin)
}

func generatePawnPushes(list *board.MoveList, at *attacksTo, pol policy) {
	pos := at.pos
	side := pos.SideToMove
	pawns := pos.PieceOccupancy(side, board.Pawn)
	empty := ^pos.Occupancy()

	singlePushTargets := board.PawnPushTargets(side, pawns, empty)
	doublePushTargets := board.PawnDoublePushTargets(side, singlePushTargets, empty)

	singlePushTargets = pol.nonCaptureTargetFilter(at, singlePushTargets)
	doublePushTargets = pol.nonCaptureTargetFilter(at, doublePushTargets)

	promoRank := board.PawnPromotionRank(side)
	promoTargets := singlePushTargets & board.BitRank(promoRank)
	nonPromoTargets := singlePushTargets &^ promoTargets

	for promoTargets != 0 {
		var target board.Square
		promoTargets, target = promoTargets.PopLSB()
		origin := board.PawnPushOrigin(side, target)
		if pol.isLegalNonCapture(at, origin, target) {
			for _, p := range promotionPieces {
				list.Add(board.NewPromotionMove(origin, target, false, p))
			}
		}
	}
	for nonPromoTargets != 0 {
		var target board.Square
		nonPromoTargets, target = nonPromoTargets.PopLSB()
		origin := board.PawnPushOrigin(side, target)
		if pol.isLegalNonCapture(at, origin, target) {
			list.Add(board.NewMove(origin, target, board.Quiet))
		}
	}
	for doublePushTargets != 0 {
		var target board.Square
		doublePushTargets, target = doublePushTargets.PopLSB()
		origin := board.PawnDoublePushOrigin(side, target)
		if pol.isLegalNonCapture(at, origin, target) {
			list.Add(board.NewMove(origin, target, board.DoublePawnPush))
		}
	}
}

func generatePawnCapturesOneSide(list *board.MoveList, at *attacksTo, pol policy, attacksOf func(board.Side, board.Bitboard) board.Bitboard, originOf func(board.Side, board.Square) board.Square) {
	pos := at.pos
	side := pos.SideToMove
	pawns := pos.PieceOccupancy(side, board.Pawn)
	promoRank := board.PawnPromotionRank(side)

	targets := attacksOf(side, pawns)
	captures := pol.pawnCaptureTargetFilter(at, targets)

	promoCaptures := captures & board.BitRank(promoRank)
	nonPromoCaptures := captures &^ promoCaptures

	for promoCaptures != 0 {
		var target board.Square
		promoCaptures, target = promoCaptures.PopLSB()
		origin := originOf(side, target)
		if pol.isLegalCapture(at, origin, target) {
			for _, p := range promotionPieces {
				list.Add(board.NewPromotionMove(origin, target, true, p))
			}
		}
	}
	for nonPromoCaptures != 0 {
		var target board.Square
		nonPromoCaptures, target = nonPromoCaptures.PopLSB()
		origin := originOf(side, target)
		if pos.EnPassant.IsValid() && target == pos.EnPassant {
			if pol.isLegalEnPassantCapture(at, origin, target) {
				list.Add(board.NewMove(origin, target, board.EnPassantCapture))
			}
		} else if pol.isLegalCapture(at, origin, target) {
			list.Add(board.NewMove(origin, target, board.Capture))
		}
	}
}

func generateCastles(list *board.MoveList, at *attacksTo) {
	pos := at.pos
	side := pos.SideToMove
	rank := board.Rank1
	kingside, queenside := board.WhiteKingside, board.WhiteQueenside
	kingsideTarget, queensideTarget := board.G1, board.C1
	if side == board.Black {
		rank = board.Rank8
		kingside, queenside = board.BlackKingside, board.BlackQueenside
		kingsideTarget, queensideTarget = board.G8, board.C8
	}
	king := board.NewSquare(pos.Geometry.KingFile, rank)

	if pos.Castling.Has(kingside) && castleIsClear(pos, at, pos.Geometry.Squares(kingside)) {
		list.Add(board.NewMove(king, kingsideTarget, board.CastleKingside))
	}
	if pos.Castling.Has(queenside) && castleIsClear(pos, at, pos.Geometry.Squares(queenside)) {
		list.Add(board.NewMove(king, queensideTarget, board.CastleQueenside))
	}
}

func castleIsClear(pos *board.Position, at *attacksTo, squares board.CastlingSquares) bool {
	passable := pos.Occupancy()&squares.NonBlocked == 0
	attacked := at.allAttackTargets&squares.NonAttacked != 0
	return passable && !attacked
}
