package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initialPosition(t *testing.T) Position {
	t.Helper()

	placements := []Placement{
		{A1, Piece{White, Rook}}, {B1, Piece{White, Knight}}, {C1, Piece{White, Bishop}},
		{D1, Piece{White, Queen}}, {E1, Piece{White, King}}, {F1, Piece{White, Bishop}},
		{G1, Piece{White, Knight}}, {H1, Piece{White, Rook}},
		{A8, Piece{Black, Rook}}, {B8, Piece{Black, Knight}}, {C8, Piece{Black, Bishop}},
		{D8, Piece{Black, Queen}}, {E8, Piece{Black, King}}, {F8, Piece{Black, Bishop}},
		{G8, Piece{Black, Knight}}, {H8, Piece{Black, Rook}},
	}
	for f := FileA; f <= FileH; f++ {
		placements = append(placements, Placement{NewSquare(f, Rank2), Piece{White, Pawn}})
		placements = append(placements, Placement{NewSquare(f, Rank7), Piece{Black, Pawn}})
	}

	pos, err := NewPosition(placements, White, AllCastling, NoEnPassant, 0, 1, standardGeometry())
	require.NoError(t, err)
	return *pos
}

func TestDoMoveAndUndoRestoresPosition(t *testing.T) {
	h := NewPositionHistory(initialPosition(t))
	before := h.CurrentHash()

	h.DoMove(NewMove(E2, E4, DoublePawnPush))
	assert.Equal(t, Black, h.CurrentPosition().SideToMove)
	assert.Equal(t, NewSquare(FileE, Rank3), h.CurrentPosition().EnPassant)
	assert.NotEqual(t, before, h.CurrentHash())

	h.UndoLastMove()
	assert.Equal(t, before, h.CurrentHash())
	assert.Equal(t, White, h.CurrentPosition().SideToMove)
	assert.Equal(t, NoEnPassant, h.CurrentPosition().EnPassant)
	assert.True(t, h.CurrentPosition().PieceOccupancy(White, Pawn).IsSet(E2))
}

func TestDoMoveCaptureRestoresCapturedPiece(t *testing.T) {
	h := NewPositionHistory(initialPosition(t))

	h.DoMove(NewMove(E2, E4, DoublePawnPush))
	h.DoMove(NewMove(D7, D5, DoublePawnPush))
	h.DoMove(NewMove(E4, D5, Capture))

	assert.True(t, h.CurrentPosition().PieceOccupancy(White, Pawn).IsSet(D5))
	assert.False(t, h.CurrentPosition().PieceOccupancy(Black, Pawn).IsSet(D5))

	h.UndoLastMove()
	assert.True(t, h.CurrentPosition().PieceOccupancy(Black, Pawn).IsSet(D5))
	assert.True(t, h.CurrentPosition().PieceOccupancy(White, Pawn).IsSet(E4))
}

func TestDoMoveEnPassantCapturesCorrectSquare(t *testing.T) {
	h := NewPositionHistory(initialPosition(t))

	h.DoMove(NewMove(E2, E4, DoublePawnPush))
	h.DoMove(NewMove(A7, A6, Quiet))
	h.DoMove(NewMove(E4, E5, Quiet))
	h.DoMove(NewMove(D7, D5, DoublePawnPush))

	before := h.CurrentHash()
	h.DoMove(NewMove(E5, D6, EnPassantCapture))

	assert.True(t, h.CurrentPosition().PieceOccupancy(White, Pawn).IsSet(D6))
	assert.False(t, h.CurrentPosition().PieceOccupancy(Black, Pawn).IsSet(D5))

	h.UndoLastMove()
	assert.Equal(t, before, h.CurrentHash())
	assert.True(t, h.CurrentPosition().PieceOccupancy(Black, Pawn).IsSet(D5))
	assert.True(t, h.CurrentPosition().PieceOccupancy(White, Pawn).IsSet(E5))
}

func TestDoMoveCastleMovesBothPieces(t *testing.T) {
	placements := []Placement{
		{E1, Piece{White, King}}, {H1, Piece{White, Rook}}, {A1, Piece{White, Rook}},
		{E8, Piece{Black, King}},
	}
	pos, err := NewPosition(placements, White, WhiteKingside|WhiteQueenside, NoEnPassant, 0, 1, standardGeometry())
	require.NoError(t, err)

	h := NewPositionHistory(*pos)
	h.DoMove(NewMove(E1, G1, CastleKingside))

	assert.True(t, h.CurrentPosition().PieceOccupancy(White, King).IsSet(G1))
	assert.True(t, h.CurrentPosition().PieceOccupancy(White, Rook).IsSet(F1))
	assert.False(t, h.CurrentPosition().Castling.Has(WhiteKingside))
	assert.False(t, h.CurrentPosition().Castling.Has(WhiteQueenside))

	h.UndoLastMove()
	assert.True(t, h.CurrentPosition().PieceOccupancy(White, King).IsSet(E1))
	assert.True(t, h.CurrentPosition().PieceOccupancy(White, Rook).IsSet(H1))
	assert.True(t, h.CurrentPosition().Castling.Has(WhiteKingside))
}

func TestDoMoveRookMoveLosesOnlyThatSideCastling(t *testing.T) {
	placements := []Placement{
		{E1, Piece{White, King}}, {H1, Piece{White, Rook}}, {A1, Piece{White, Rook}},
		{E8, Piece{Black, King}},
	}
	pos, err := NewPosition(placements, White, AllCastling, NoEnPassant, 0, 1, standardGeometry())
	require.NoError(t, err)

	h := NewPositionHistory(*pos)
	h.DoMove(NewMove(A1, A4, Quiet))

	assert.False(t, h.CurrentPosition().Castling.Has(WhiteQueenside))
	assert.True(t, h.CurrentPosition().Castling.Has(WhiteKingside))
}

func TestHalfmoveClockResetsOnPawnMoveOrCapture(t *testing.T) {
	h := NewPositionHistory(initialPosition(t))

	h.DoMove(NewMove(B1, C3, Quiet))
	assert.Equal(t, 1, h.CurrentPosition().HalfmoveClock)

	h.DoMove(NewMove(B8, C6, Quiet))
	assert.Equal(t, 2, h.CurrentPosition().HalfmoveClock)

	h.DoMove(NewMove(E2, E4, DoublePawnPush))
	assert.Equal(t, 0, h.CurrentPosition().HalfmoveClock)
}

func TestNullMoveTogglesSideOnly(t *testing.T) {
	h := NewPositionHistory(initialPosition(t))
	occBefore := h.CurrentPosition().Occupancy()

	h.DoMove(NullMove)
	assert.Equal(t, Black, h.CurrentPosition().SideToMove)
	assert.Equal(t, occBefore, h.CurrentPosition().Occupancy())

	h.UndoLastMove()
	assert.Equal(t, White, h.CurrentPosition().SideToMove)
}
