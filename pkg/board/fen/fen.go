// Package fen reads and writes chess positions in Forsyth-Edwards Notation,
// in both the standard and Chess960 castling-field variants.
package fen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ravenfell/caissa/pkg/board"
)

const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Field names the FEN field a DecodeError is about.
type Field int

const (
	FieldPartCount Field = iota
	FieldRankCount
	FieldSquaresInRank
	FieldPiece
	FieldSideToMove
	FieldCastling
	FieldEnPassant
	FieldHalfmoveClock
	FieldFullmoveNumber
	FieldKings
)

func (f Field) String() string {
	switch f {
	case FieldPartCount:
		return "part count"
	case FieldRankCount:
		return "rank count"
	case FieldSquaresInRank:
		return "squares in rank"
	case FieldPiece:
		return "piece"
	case FieldSideToMove:
		return "side to move"
	case FieldCastling:
		return "castling rights"
	case FieldEnPassant:
		return "en passant square"
	case FieldHalfmoveClock:
		return "halfmove clock"
	case FieldFullmoveNumber:
		return "fullmove number"
	case FieldKings:
		return "kings"
	default:
		return "unknown field"
	}
}

// DecodeError reports a malformed FEN field, echoing the offending input.
type DecodeError struct {
	Field Field
	Input string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("fen: invalid %v: %q", e.Field, e.Input)
}

// Result is a thin wrapper around a decoded Position. Decode does not
// produce one: it returns the *board.Position directly, since Position
// already holds side-to-move, castling, en passant and the two counters.
type Result struct {
	Position *board.Position
}

// Decode parses a FEN string. Both the standard six-field form and the
// short form (placement/side/castling/ep only, defaulting halfmove to 0
// and fullmove to 1) are accepted. The castling field is interpreted as
// Chess960-style home-file letters when it contains characters other than
// K, Q, k, q.
func Decode(s string) (*board.Position, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) == 4 {
		parts = append(parts, "0", "1")
	}
	if len(parts) != 6 {
		return nil, &DecodeError{Field: FieldPartCount, Input: s}
	}

	placements, err := decodePlacement(parts[0])
	if err != nil {
		return nil, err
	}

	side, ok := decodeSide(parts[1])
	if !ok {
		return nil, &DecodeError{Field: FieldSideToMove, Input: parts[1]}
	}

	kingFile, err := kingFiles(placements, parts[2])
	if err != nil {
		return nil, err
	}

	castling, geometry, err := decodeCastling(parts[2], kingFile)
	if err != nil {
		return nil, err
	}

	ep := board.NoEnPassant
	if parts[3] != "-" {
		sq, parseErr := board.ParseSquareStr(parts[3])
		if parseErr != nil || (sq.Rank() != board.Rank3 && sq.Rank() != board.Rank6) {
			return nil, &DecodeError{Field: FieldEnPassant, Input: parts[3]}
		}
		ep = sq
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		return nil, &DecodeError{Field: FieldHalfmoveClock, Input: parts[4]}
	}

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		return nil, &DecodeError{Field: FieldFullmoveNumber, Input: parts[5]}
	}

	pos, perr := board.NewPosition(placements, side, castling, ep, halfmove, fullmove, geometry)
	if perr != nil {
		return nil, &DecodeError{Field: FieldKings, Input: s}
	}
	return pos, nil
}

func decodePlacement(field string) ([]board.Placement, error) {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return nil, &DecodeError{Field: FieldRankCount, Input: field}
	}

	var placements []board.Placement
	for i, rankField := range ranks {
		rank := board.Rank(7 - i)
		file := board.FileA
		for _, r := range rankField {
			switch {
			case r >= '1' && r <= '8':
				file += board.File(r - '0')
			default:
				pt, ok := board.ParsePieceType(r)
				if !ok || file > board.FileH {
					return nil, &DecodeError{Field: FieldPiece, Input: field}
				}
				side := board.Black
				if r >= 'A' && r <= 'Z' {
					side = board.White
				}
				placements = append(placements, board.Placement{
					Square: board.NewSquare(file, rank),
					Piece:  board.Piece{Side: side, Type: pt},
				})
				file++
			}
		}
		if file != board.NumFiles {
			return nil, &DecodeError{Field: FieldSquaresInRank, Input: rankField}
		}
	}
	return placements, nil
}

func decodeSide(field string) (board.Side, bool) {
	switch field {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

// kingFiles returns the king file the castling geometry is built from. A
// single stored KingFile serves both sides, so the two kings must share a
// file only when the castling field names rights for both sides; otherwise
// the file of the king whose rights are named (White's if none) is used.
func kingFiles(placements []board.Placement, castlingField string) (board.File, error) {
	var whiteFile, blackFile board.File
	var sawWhite, sawBlack bool
	for _, p := range placements {
		if p.Piece.Type != board.King {
			continue
		}
		if p.Piece.Side == board.White {
			whiteFile, sawWhite = p.Square.File(), true
		} else {
			blackFile, sawBlack = p.Square.File(), true
		}
	}
	if !sawWhite || !sawBlack {
		return 0, &DecodeError{Field: FieldKings, Input: "missing king"}
	}
	whiteRights := strings.ContainsAny(castlingField, "KQABCDEFGH")
	blackRights := strings.ContainsAny(castlingField, "kqabcdefgh")
	if whiteRights && blackRights && whiteFile != blackFile {
		return 0, &DecodeError{Field: FieldKings, Input: "kings on different files"}
	}
	if blackRights && !whiteRights {
		return blackFile, nil
	}
	return whiteFile, nil
}

func decodeCastling(field string, kingFile board.File) (board.Castling, board.CastlingGeometry, error) {
	if field == "-" {
		return board.NoCastling, board.NewCastlingGeometry(kingFile, board.FileH, board.FileA), nil
	}

	standard := true
	for _, r := range field {
		if r != 'K' && r != 'Q' && r != 'k' && r != 'q' {
			standard = false
			break
		}
	}

	if standard {
		var c board.Castling
		seen := map[rune]bool{}
		order := []rune{'K', 'Q', 'k', 'q'}
		last := -1
		for _, r := range field {
			if seen[r] {
				return 0, board.CastlingGeometry{}, &DecodeError{Field: FieldCastling, Input: field}
			}
			seen[r] = true
			idx := indexOf(order, r)
			if idx < last {
				return 0, board.CastlingGeometry{}, &DecodeError{Field: FieldCastling, Input: field}
			}
			last = idx
			switch r {
			case 'K':
				c |= board.WhiteKingside
			case 'Q':
				c |= board.WhiteQueenside
			case 'k':
				c |= board.BlackKingside
			case 'q':
				c |= board.BlackQueenside
			}
		}
		return c, board.NewCastlingGeometry(kingFile, board.FileH, board.FileA), nil
	}

	var c board.Castling
	var kingsideRookFile, queenRookFile board.File
	haveKingside, haveQueenside := false, false
	for _, r := range field {
		var f board.File
		var side board.Side
		switch {
		case r >= 'A' && r <= 'H':
			f, side = board.File(r-'A'), board.White
		case r >= 'a' && r <= 'h':
			f, side = board.File(r-'a'), board.Black
		default:
			return 0, board.CastlingGeometry{}, &DecodeError{Field: FieldCastling, Input: field}
		}
		if f > kingFile {
			kingsideRookFile = f
			haveKingside = true
			if side == board.White {
				c |= board.WhiteKingside
			} else {
				c |= board.BlackKingside
			}
		} else {
			queenRookFile = f
			haveQueenside = true
			if side == board.White {
				c |= board.WhiteQueenside
			} else {
				c |= board.BlackQueenside
			}
		}
	}
	if !haveKingside {
		kingsideRookFile = board.FileH
	}
	if !haveQueenside {
		queenRookFile = board.FileA
	}
	return c, board.NewCastlingGeometry(kingFile, kingsideRookFile, queenRookFile), nil
}

func indexOf(rs []rune, r rune) int {
	for i, c := range rs {
		if c == r {
			return i
		}
	}
	return -1
}

// Encode serializes pos as a full six-field FEN string. Castling rights are
// written as KQkq unless the rook home files differ from h and a, in which
// case they are written as rook-file letters (uppercase for White).
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for i := 0; i < 8; i++ {
		rank := board.Rank(7 - i)
		blanks := 0
		for file := board.FileA; file <= board.FileH; file++ {
			p, ok := pos.PieceAt(board.NewSquare(file, rank))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(p.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if i < 7 {
			sb.WriteRune('/')
		}
	}

	ep := "-"
	if pos.EnPassant.IsValid() {
		ep = pos.EnPassant.String()
	}

	castling := pos.Castling.String()
	if g := pos.Geometry; pos.Castling != board.NoCastling && (g.KingsideRookFile != board.FileH || g.QueenRookFile != board.FileA) {
		castling = ""
		files := [4]board.File{g.KingsideRookFile, g.QueenRookFile, g.KingsideRookFile, g.QueenRookFile}
		for i, right := range [4]board.Castling{board.WhiteKingside, board.WhiteQueenside, board.BlackKingside, board.BlackQueenside} {
			if letter := files[i].String(); pos.Castling.Has(right) && i < 2 {
				castling += strings.ToUpper(letter)
			} else if pos.Castling.Has(right) {
				castling += letter
			}
		}
	}

	return fmt.Sprintf("%s %v %s %s %d %d", sb.String(), pos.SideToMove, castling, ep, pos.HalfmoveClock, pos.FullmoveNumber)
}
