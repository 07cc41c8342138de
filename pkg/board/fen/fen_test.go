package fen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravenfell/caissa/pkg/board"
	"github.com/ravenfell/caissa/pkg/board/fen"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"4k3/8/8/8/4P3/8/8/4K3 w - - 0 1",
	}

	for _, tt := range tests {
		pos, err := fen.Decode(tt)
		require.NoError(t, err, tt)
		assert.Equal(t, tt, fen.Encode(pos), tt)
	}
}

func TestDecodeShortFormDefaultsCounters(t *testing.T) {
	pos, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	require.NoError(t, err)

	assert.Equal(t, 0, pos.HalfmoveClock)
	assert.Equal(t, 1, pos.FullmoveNumber)
}

func TestDecodeChess960Castling(t *testing.T) {
	// King on e1/e8, rooks on b1/g1 (white) and b8/g8 (black).
	pos, err := fen.Decode("1r2k1r1/8/8/8/8/8/8/1R2K1R1 w GBgb - 0 1")
	require.NoError(t, err)

	assert.Equal(t, board.FileB, pos.Geometry.QueenRookFile)
	assert.Equal(t, board.FileG, pos.Geometry.KingsideRookFile)
}

func TestDecodeRejectsWrongRankCount(t *testing.T) {
	_, err := fen.Decode("8/8/8/8/8/8/8 w - - 0 1")
	var decErr *fen.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, fen.FieldRankCount, decErr.Field)
}

func TestDecodeRejectsBadPiece(t *testing.T) {
	_, err := fen.Decode("rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	var decErr *fen.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, fen.FieldPiece, decErr.Field)
}

func TestDecodeRejectsMissingKing(t *testing.T) {
	_, err := fen.Decode("8/8/8/8/8/8/8/4K3 w - - 0 1")
	var decErr *fen.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, fen.FieldKings, decErr.Field)
}

func TestDecodeRejectsOutOfRangeEnPassant(t *testing.T) {
	_, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1")
	var decErr *fen.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, fen.FieldEnPassant, decErr.Field)
}

func TestDecodeRejectsNegativeHalfmoveClock(t *testing.T) {
	_, err := fen.Decode("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1")
	var decErr *fen.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, fen.FieldHalfmoveClock, decErr.Field)
}
