package board

import "fmt"

// Move is a chess move packed into 16 bits: bits 0-5 are the origin square,
// bits 6-11 the target square, bits 12-15 a 4-bit move type. Within the
// move type, bit 3 marks promotion and bit 2 marks capture; for a
// promotion, bits 0-1 hold the promoted piece (Knight=0, Bishop=1, Rook=2,
// Queen=3). NullMove is the all-zero value (origin==target==A1).
type Move uint16

const (
	NullMove Move = 0
)

// MoveType is the 4-bit tag occupying bits 12-15 of a Move.
type MoveType uint8

const (
	Quiet MoveType = iota
	DoublePawnPush
	CastleKingside
	CastleQueenside
	Capture
	EnPassantCapture
)

const (
	promotionFlag MoveType = 1 << 3
	captureFlag   MoveType = 1 << 2
	promoPieceBit MoveType = 0x3
)

// PromotionQuiet and PromotionCapture, OR'd with a 2-bit promo piece code
// (0=Knight, 1=Bishop, 2=Rook, 3=Queen), produce the eight promotion move
// types.
const (
	PromotionQuiet   MoveType = promotionFlag
	PromotionCapture MoveType = promotionFlag | captureFlag
)

const (
	originMask Move = 0x3f
	targetBits      = 6
	targetMask Move = 0x3f << targetBits
	typeBits        = 12
)

// NewMove packs an origin, target, and move type into a Move.
func NewMove(origin, target Square, mt MoveType) Move {
	return Move(origin) | Move(target)<<targetBits | Move(mt)<<typeBits
}

// NewPromotionMove packs a promotion move, encoding the desired piece.
func NewPromotionMove(origin, target Square, capture bool, promo PieceType) Move {
	mt := promotionFlag
	if capture {
		mt |= captureFlag
	}
	mt |= promoCode(promo)
	return NewMove(origin, target, mt)
}

func (m Move) Origin() Square {
	return Square(m & originMask)
}

func (m Move) Target() Square {
	return Square((m & targetMask) >> targetBits)
}

func (m Move) Type() MoveType {
	return MoveType(m >> typeBits)
}

func (m Move) IsNull() bool {
	return m == NullMove
}

func (m Move) IsPromotion() bool {
	return m.Type()&promotionFlag != 0
}

func (m Move) IsCapture() bool {
	return m.Type()&captureFlag != 0
}

func (m Move) IsCastle() bool {
	t := m.Type()
	return t == CastleKingside || t == CastleQueenside
}

func (m Move) IsEnPassant() bool {
	return m.Type() == EnPassantCapture
}

func (m Move) IsDoublePawnPush() bool {
	return m.Type() == DoublePawnPush
}

// PromotionPiece returns the piece a promotion move promotes to. Only
// meaningful if IsPromotion() is true.
func (m Move) PromotionPiece() PieceType {
	return pieceFromPromoCode(m.Type() & promoPieceBit)
}

func promoCode(pt PieceType) MoveType {
	switch pt {
	case Knight:
		return 0
	case Bishop:
		return 1
	case Rook:
		return 2
	case Queen:
		return 3
	default:
		panic("board: invalid promotion piece")
	}
}

func pieceFromPromoCode(code MoveType) PieceType {
	switch code {
	case 0:
		return Knight
	case 1:
		return Bishop
	case 2:
		return Rook
	default:
		return Queen
	}
}

func (m Move) Equals(o Move) bool {
	return m == o
}

// String renders a move in pure algebraic coordinate notation, e.g. "e2e4"
// or "e7e8q" for a promotion.
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}
	if m.IsPromotion() {
		return fmt.Sprintf("%v%v%v", m.Origin(), m.Target(), m.PromotionPiece())
	}
	return fmt.Sprintf("%v%v", m.Origin(), m.Target())
}

// ParseMoveUCI parses a move in pure algebraic coordinate notation. The
// returned move carries no type tag beyond Quiet/PromotionQuiet, since the
// notation itself does not distinguish captures, castles, or en-passant
// from context; callers that need the precise type should instead match
// against a generated MoveList.
func ParseMoveUCI(str string) (Move, error) {
	runes := []rune(str)
	if len(runes) < 4 || len(runes) > 5 {
		return NullMove, fmt.Errorf("board: invalid move %q", str)
	}
	origin, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return NullMove, fmt.Errorf("board: invalid move %q: %w", str, err)
	}
	target, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return NullMove, fmt.Errorf("board: invalid move %q: %w", str, err)
	}
	if len(runes) == 5 {
		promo, ok := ParsePieceType(runes[4])
		if !ok || promo == Pawn || promo == King {
			return NullMove, fmt.Errorf("board: invalid promotion in move %q", str)
		}
		return NewPromotionMove(origin, target, false, promo), nil
	}
	return NewMove(origin, target, Quiet), nil
}
