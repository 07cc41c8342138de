package board

// irreversible captures the fields DoMove cannot recompute on UndoLastMove
// without replaying from scratch: the position fields that a move may
// destroy, plus whatever it captured.
type irreversible struct {
	enPassant     Square
	castling      Castling
	halfmoveClock int
	captured      PieceType
	hadCapture    bool
	capturedAt    Square
}

// PositionHistory holds the current position plus a stack of irreversible
// records aligned with a parallel stack of applied moves, so UndoLastMove
// can reverse DoMove without recomputing anything from scratch.
type PositionHistory struct {
	pos  Position
	hash Zobrist

	moves         []Move
	irreversibles []irreversible
}

// NewPositionHistory starts a history rooted at pos.
func NewPositionHistory(pos Position) *PositionHistory {
	return &PositionHistory{pos: pos, hash: HashPosition(&pos)}
}

func (h *PositionHistory) CurrentPosition() *Position {
	return &h.pos
}

func (h *PositionHistory) CurrentHash() Zobrist {
	return h.hash
}

func (h *PositionHistory) Len() int {
	return len(h.moves)
}

// DoMove applies m to the current position, pushing enough state onto the
// history to undo it later. m is assumed pseudo-legal: origin holds a piece
// of the side to move, and the move's shape (capture/en-passant/castle/
// promotion flags) matches what generating it from this position produced.
func (h *PositionHistory) DoMove(m Move) {
	pos := &h.pos
	side := pos.SideToMove
	opp := side.Opponent()

	rec := irreversible{
		enPassant:     pos.EnPassant,
		castling:      pos.Castling,
		halfmoveClock: pos.HalfmoveClock,
	}

	if m.IsNull() {
		h.irreversibles = append(h.irreversibles, rec)
		h.moves = append(h.moves, m)
		h.clearEnPassant()
		h.toggleSide()
		return
	}

	origin, target := m.Origin(), m.Target()
	mover, _ := pos.PieceAt(origin)

	switch {
	case m.IsEnPassant():
		capturedAt := epCapturedSquare(side, target)
		rec.hadCapture = true
		rec.captured = Pawn
		rec.capturedAt = capturedAt
		h.xorPiece(opp, Pawn, capturedAt)
		pos.remove(opp, Pawn, capturedAt)
	case m.IsCapture():
		captured, _ := pos.PieceAt(target)
		rec.hadCapture = true
		rec.captured = captured.Type
		rec.capturedAt = target
		h.xorPiece(opp, captured.Type, target)
		pos.remove(opp, captured.Type, target)
	}

	h.xorPiece(side, mover.Type, origin)
	pos.remove(side, mover.Type, origin)

	placedType := mover.Type
	if m.IsPromotion() {
		placedType = m.PromotionPiece()
	}
	h.xorPiece(side, placedType, target)
	pos.place(side, placedType, target)

	if m.IsCastle() {
		rookFrom, rookTo := castlingRookSquares(pos.Geometry, side, m.Type())
		h.xorPiece(side, Rook, rookFrom)
		pos.remove(side, Rook, rookFrom)
		h.xorPiece(side, Rook, rookTo)
		pos.place(side, Rook, rookTo)
	}

	h.xorCastling(pos.Castling)
	h.xorEnPassant(pos.EnPassant)
	if m.IsDoublePawnPush() {
		pos.EnPassant = NewSquare(origin.File(), Rank((int(origin.Rank())+int(target.Rank()))/2))
	} else {
		pos.EnPassant = NoEnPassant
	}
	h.xorEnPassant(pos.EnPassant)

	pos.Castling = pos.Castling.Without(lostCastlingRights(pos.Geometry, side, origin) | lostCastlingRights(pos.Geometry, opp, target))
	h.xorCastling(pos.Castling)

	if mover.Type == Pawn || rec.hadCapture {
		pos.HalfmoveClock = 0
	} else {
		pos.HalfmoveClock++
	}

	h.toggleSide()
	if side == Black {
		pos.FullmoveNumber++
	}

	h.irreversibles = append(h.irreversibles, rec)
	h.moves = append(h.moves, m)
}

// UndoLastMove reverses the most recent DoMove or null move.
func (h *PositionHistory) UndoLastMove() {
	n := len(h.moves)
	m := h.moves[n-1]
	rec := h.irreversibles[n-1]
	h.moves = h.moves[:n-1]
	h.irreversibles = h.irreversibles[:n-1]

	pos := &h.pos

	// pos.SideToMove is whoever moves next, i.e. the opponent of whoever
	// made m. If that's White, m was Black's move, which is when DoMove
	// incremented FullmoveNumber (a null move leaves it unchanged).
	if pos.SideToMove == White && !m.IsNull() {
		pos.FullmoveNumber--
	}
	h.toggleSide()
	side := pos.SideToMove
	opp := side.Opponent()

	h.xorEnPassant(pos.EnPassant)
	h.xorCastling(pos.Castling)
	pos.EnPassant = rec.enPassant
	pos.Castling = rec.castling
	pos.HalfmoveClock = rec.halfmoveClock
	h.xorCastling(pos.Castling)
	h.xorEnPassant(pos.EnPassant)

	if m.IsNull() {
		return
	}

	origin, target := m.Origin(), m.Target()

	if m.IsCastle() {
		rookFrom, rookTo := castlingRookSquares(pos.Geometry, side, m.Type())
		h.xorPiece(side, Rook, rookTo)
		pos.remove(side, Rook, rookTo)
		h.xorPiece(side, Rook, rookFrom)
		pos.place(side, Rook, rookFrom)
	}

	placedType, _ := pos.PieceAt(target)
	h.xorPiece(side, placedType.Type, target)
	pos.remove(side, placedType.Type, target)

	movedType := placedType.Type
	if m.IsPromotion() {
		movedType = Pawn
	}
	h.xorPiece(side, movedType, origin)
	pos.place(side, movedType, origin)

	if rec.hadCapture {
		h.xorPiece(opp, rec.captured, rec.capturedAt)
		pos.place(opp, rec.captured, rec.capturedAt)
	}
}

func (h *PositionHistory) toggleSide() {
	h.pos.SideToMove = h.pos.SideToMove.Opponent()
	h.hash ^= zobristSideToMoveKey()
}

func (h *PositionHistory) clearEnPassant() {
	h.xorEnPassant(h.pos.EnPassant)
	h.pos.EnPassant = NoEnPassant
	h.xorEnPassant(h.pos.EnPassant)
}

func (h *PositionHistory) xorPiece(side Side, pt PieceType, sq Square) {
	h.hash ^= zobristPieceKey(side, pt, sq)
}

func (h *PositionHistory) xorCastling(c Castling) {
	for _, right := range allCastlingRights {
		if c.Has(right) {
			h.hash ^= zobristCastlingKey(right)
		}
	}
}

func (h *PositionHistory) xorEnPassant(ep Square) {
	if ep.IsValid() {
		h.hash ^= zobristEnPassantKey(ep.File())
	}
}

// epCapturedSquare returns the square of the pawn captured en passant when
// side moves to target: the square one push behind target, i.e. opposite
// of side's own push direction.
func epCapturedSquare(side Side, target Square) Square {
	if side == White {
		return NewSquare(target.File(), target.Rank()-1)
	}
	return NewSquare(target.File(), target.Rank()+1)
}

// castlingRookSquares returns the rook's (from, to) squares for a castle of
// the given type by side, per the position's Chess960 geometry.
func castlingRookSquares(g CastlingGeometry, side Side, mt MoveType) (from, to Square) {
	rank := Rank1
	if side == Black {
		rank = Rank8
	}
	if mt == CastleKingside {
		return NewSquare(g.KingsideRookFile, rank), NewSquare(FileF, rank)
	}
	return NewSquare(g.QueenRookFile, rank), NewSquare(FileD, rank)
}

// lostCastlingRights returns the rights side forfeits because one of its
// own king/rook home squares (or the opponent's rook home square, if that's
// what sq is) was just vacated or captured onto.
func lostCastlingRights(g CastlingGeometry, side Side, sq Square) Castling {
	rank := Rank1
	kingside, queenside := WhiteKingside, WhiteQueenside
	if side == Black {
		rank = Rank8
		kingside, queenside = BlackKingside, BlackQueenside
	}
	var lost Castling
	if sq == NewSquare(g.KingFile, rank) {
		lost |= kingside | queenside
	}
	if sq == NewSquare(g.KingsideRookFile, rank) {
		lost |= kingside
	}
	if sq == NewSquare(g.QueenRookFile, rank) {
		lost |= queenside
	}
	return lost
}
