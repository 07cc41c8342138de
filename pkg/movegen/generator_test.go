package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravenfell/caissa/pkg/board"
	"github.com/ravenfell/caissa/pkg/board/fen"
)

func perft(history *board.PositionHistory, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	list := board.NewMoveList()
	GenerateMoves(list, history.CurrentPosition())

	var nodes uint64
	for i := 0; i < list.Len(); i++ {
		history.DoMove(list.At(i))
		nodes += perft(history, depth-1)
		history.UndoLastMove()
	}
	return nodes
}

func TestPerftInitialPositionDepth4(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	history := board.NewPositionHistory(*pos)
	assert.Equal(t, uint64(197281), perft(history, 4))
}

func TestPerftInitialPositionShallow(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	history := board.NewPositionHistory(*pos)
	assert.Equal(t, uint64(20), perft(history, 1))
	assert.Equal(t, uint64(400), perft(history, 2))
}

func generate(t *testing.T, position string) *board.MoveList {
	t.Helper()
	pos, err := fen.Decode(position)
	require.NoError(t, err)

	list := board.NewMoveList()
	GenerateMoves(list, pos)
	return list
}

func TestEnPassantAwayFromKingRankIsLegal(t *testing.T) {
	list := generate(t, "4k3/8/b7/1pP5/8/8/4K3/8 w - b6 0 1")
	assert.True(t, list.Contains(board.NewMove(board.C5, board.B6, board.EnPassantCapture)))
}

func TestEnPassantExposingHorizontalCheckIsIllegal(t *testing.T) {
	list := generate(t, "4k3/8/8/K2Pp2r/8/8/8/8 w - e6 0 1")
	assert.False(t, list.Contains(board.NewMove(board.D5, board.E6, board.EnPassantCapture)),
		"capturing would vacate both d5 and e5, opening the rook's rank to the king")
	assert.True(t, list.Contains(board.NewMove(board.D5, board.D6, board.Quiet)),
		"the ordinary push alone does not clear the rank; e5 still blocks the rook")
}

func TestCastlingBothSidesLegalWithClearPath(t *testing.T) {
	list := generate(t, "4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	assert.True(t, list.Contains(board.NewMove(board.E1, board.G1, board.CastleKingside)))
	assert.True(t, list.Contains(board.NewMove(board.E1, board.C1, board.CastleQueenside)))
}

func TestCastlingIllegalWhileInCheck(t *testing.T) {
	list := generate(t, "4k3/8/8/8/8/8/4r3/R3K2R w KQ - 0 1")
	assert.False(t, list.Contains(board.NewMove(board.E1, board.G1, board.CastleKingside)))
	assert.False(t, list.Contains(board.NewMove(board.E1, board.C1, board.CastleQueenside)))
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// White king e1 attacked by both a rook on h1 (first rank) and a bishop
	// on h4 (diagonal): every generated move must be a king move.
	list := generate(t, "4k3/8/8/8/7b/8/8/4K2r w - - 0 1")
	require.Greater(t, list.Len(), 0)
	for i := 0; i < list.Len(); i++ {
		assert.Equal(t, board.E1, list.At(i).Origin())
	}
}
