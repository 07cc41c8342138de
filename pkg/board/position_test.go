package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardGeometry() CastlingGeometry {
	return NewCastlingGeometry(FileE, FileH, FileA)
}

func TestNewPositionRejectsMissingKing(t *testing.T) {
	_, err := NewPosition([]Placement{
		{Square: E1, Piece: Piece{White, King}},
	}, White, NoCastling, NoEnPassant, 0, 1, standardGeometry())
	assert.Error(t, err)
}

func TestNewPositionRejectsDuplicatePlacement(t *testing.T) {
	_, err := NewPosition([]Placement{
		{Square: E1, Piece: Piece{White, King}},
		{Square: E1, Piece: Piece{White, Queen}},
		{Square: E8, Piece: Piece{Black, King}},
	}, White, NoCastling, NoEnPassant, 0, 1, standardGeometry())
	assert.Error(t, err)
}

func TestNewPositionRejectsAdjacentKings(t *testing.T) {
	_, err := NewPosition([]Placement{
		{Square: E1, Piece: Piece{White, King}},
		{Square: E2, Piece: Piece{Black, King}},
	}, White, NoCastling, NoEnPassant, 0, 1, standardGeometry())
	assert.Error(t, err)
}

func TestPieceOccupancyAndPieceAt(t *testing.T) {
	pos, err := NewPosition([]Placement{
		{Square: E1, Piece: Piece{White, King}},
		{Square: E8, Piece: Piece{Black, King}},
		{Square: D4, Piece: Piece{White, Queen}},
	}, White, NoCastling, NoEnPassant, 0, 1, standardGeometry())
	require.NoError(t, err)

	assert.True(t, pos.PieceOccupancy(White, Queen).IsSet(D4))
	p, ok := pos.PieceAt(D4)
	require.True(t, ok)
	assert.Equal(t, Piece{White, Queen}, p)

	_, ok = pos.PieceAt(A1)
	assert.False(t, ok)
	assert.True(t, pos.IsEmpty(A1))
}

func TestKingSquare(t *testing.T) {
	pos, err := NewPosition([]Placement{
		{Square: G1, Piece: Piece{White, King}},
		{Square: G8, Piece: Piece{Black, King}},
	}, White, NoCastling, NoEnPassant, 0, 1, standardGeometry())
	require.NoError(t, err)

	assert.Equal(t, G1, pos.KingSquare(White))
	assert.Equal(t, G8, pos.KingSquare(Black))
}

func TestIsInCheckByRook(t *testing.T) {
	pos, err := NewPosition([]Placement{
		{Square: E1, Piece: Piece{White, King}},
		{Square: E8, Piece: Piece{Black, King}},
		{Square: E5, Piece: Piece{Black, Rook}},
	}, White, NoCastling, NoEnPassant, 0, 1, standardGeometry())
	require.NoError(t, err)

	assert.True(t, pos.IsInCheck(White))
	assert.False(t, pos.IsInCheck(Black))
}

func TestIsSquareAttackedByBlockedSlider(t *testing.T) {
	pos, err := NewPosition([]Placement{
		{Square: A1, Piece: Piece{White, King}},
		{Square: H8, Piece: Piece{Black, King}},
		{Square: A8, Piece: Piece{Black, Rook}},
		{Square: A4, Piece: Piece{White, Pawn}},
	}, White, NoCastling, NoEnPassant, 0, 1, standardGeometry())
	require.NoError(t, err)

	assert.False(t, pos.IsSquareAttackedBy(Black, A1, pos.Occupancy()), "the pawn on a4 blocks the rook's file")
	assert.True(t, pos.IsSquareAttackedBy(Black, A1, pos.Occupancy().Clear(A4)), "without the blocker, the rook reaches a1")
}

func TestCloneIsIndependent(t *testing.T) {
	pos, err := NewPosition([]Placement{
		{Square: E1, Piece: Piece{White, King}},
		{Square: E8, Piece: Piece{Black, King}},
	}, White, NoCastling, NoEnPassant, 0, 1, standardGeometry())
	require.NoError(t, err)

	cp := pos.Clone()
	cp.Pieces[White][King] = cp.Pieces[White][King].Clear(E1).Set(D1)

	assert.Equal(t, E1, pos.KingSquare(White))
	assert.Equal(t, D1, cp.KingSquare(White))
}
