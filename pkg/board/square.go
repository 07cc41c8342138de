package board

import "fmt"

// Square is a 0..63 index into an 8x8 board using little-endian file-rank
// mapping: index = file*8 + rank (file A=0..H=7, rank 1=0..8=7). This
// numbering is what the bitboard layout below assumes: bit `1<<sq` marks
// occupancy of that square. 6 bits.
type Square uint8

const (
	A1 Square = iota
	A2
	A3
	A4
	A5
	A6
	A7
	A8
	B1
	B2
	B3
	B4
	B5
	B6
	B7
	B8
	C1
	C2
	C3
	C4
	C5
	C6
	C7
	C8
	D1
	D2
	D3
	D4
	D5
	D6
	D7
	D8
	E1
	E2
	E3
	E4
	E5
	E6
	E7
	E8
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	G1
	G2
	G3
	G4
	G5
	G6
	G7
	G8
	H1
	H2
	H3
	H4
	H5
	H6
	H7
	H8
)

const (
	ZeroSquare Square = 0
	NumSquares Square = 64

	// NullMoveSquare is the origin==target sentinel of the null move.
	NullMoveSquare Square = A1
)

// NewSquare builds a square from a file and rank.
func NewSquare(f File, r Rank) Square {
	return Square(f)*8 + Square(r)
}

func (s Square) IsValid() bool {
	return s < NumSquares
}

// File returns the file (A=0..H=7) of the square.
func (s Square) File() File {
	return File(s / 8)
}

// Rank returns the rank (1=0..8=7) of the square.
func (s Square) Rank() Rank {
	return Rank(s % 8)
}

// FlipVertical returns the square with rank 7-rank (mirror across the
// 4th/5th rank boundary): A1 <-> A8.
func (s Square) FlipVertical() Square {
	return NewSquare(s.File(), 7-s.Rank())
}

// MirrorHorizontal returns the square with file 7-file: A1 <-> H1.
func (s Square) MirrorHorizontal() Square {
	return NewSquare(7-s.File(), s.Rank())
}

// FoldToQueenside maps files E..H to D..A, leaving A..D unchanged. Useful
// for piece-square tables that are symmetric about the center files.
func (s Square) FoldToQueenside() Square {
	f := s.File()
	if f >= FileE {
		f = 7 - f
	}
	return NewSquare(f, s.Rank())
}

// ChebyshevDistance returns max(|file delta|, |rank delta|) between squares.
func (s Square) ChebyshevDistance(o Square) int {
	df := absInt(int(s.File()) - int(o.File()))
	dr := absInt(int(s.Rank()) - int(o.Rank()))
	if df > dr {
		return df
	}
	return dr
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func ParseSquare(f, r rune) (Square, error) {
	file, ok := ParseFile(f)
	if !ok {
		return 0, fmt.Errorf("invalid file: %q", f)
	}
	rank, ok := ParseRank(r)
	if !ok {
		return 0, fmt.Errorf("invalid rank: %q", r)
	}
	return NewSquare(file, rank), nil
}

func ParseSquareStr(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return 0, fmt.Errorf("invalid square: %q", str)
	}
	return ParseSquare(runes[0], runes[1])
}

func (s Square) String() string {
	return fmt.Sprintf("%v%v", s.File(), s.Rank())
}

// File is a board file, A=0..H=7. 3 bits.
type File uint8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	ZeroFile File = 0
	NumFiles File = 8
)

func ParseFile(r rune) (File, bool) {
	if r >= 'a' && r <= 'h' {
		return File(r - 'a'), true
	}
	if r >= 'A' && r <= 'H' {
		return File(r - 'A'), true
	}
	return 0, false
}

func (f File) IsValid() bool {
	return f < NumFiles
}

func (f File) String() string {
	return string(rune('a' + f))
}

// Rank is a board rank, 1=0..8=7. 3 bits.
type Rank uint8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	ZeroRank Rank = 0
	NumRanks Rank = 8
)

func ParseRank(r rune) (Rank, bool) {
	if r >= '1' && r <= '8' {
		return Rank(r - '1'), true
	}
	return 0, false
}

func (r Rank) IsValid() bool {
	return r < NumRanks
}

func (r Rank) String() string {
	return string(rune('1' + r))
}
