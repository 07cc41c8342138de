package board

// PieceType represents a chess piece kind without color. 3 bits.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	ZeroPieceType PieceType = 0
	NumPieceTypes PieceType = 6
)

func ParsePieceType(r rune) (PieceType, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return 0, false
	}
}

func (p PieceType) IsValid() bool {
	return p <= King
}

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

// Piece is a pair of (Side, PieceType). Twelve values total.
type Piece struct {
	Side Side
	Type PieceType
}

// String returns the standard FEN letter (uppercase for White).
func (p Piece) String() string {
	if p.Side == White {
		return upper(p.Type.String())
	}
	return p.Type.String()
}

func upper(s string) string {
	r := []rune(s)
	if len(r) == 1 && r[0] >= 'a' && r[0] <= 'z' {
		r[0] -= 'a' - 'A'
	}
	return string(r)
}
