package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ravenfell/caissa/pkg/board"
	"github.com/ravenfell/caissa/pkg/score"
)

func TestTableGetAfterInsert(t *testing.T) {
	tt := New(1 << 16)
	e := Entry{Hash: board.Zobrist(42), Bound: Exact, Depth: 3, Score: score.Score(150), BestMove: board.NewMove(board.E2, board.E4, board.DoublePawnPush)}
	tt.Insert(e)

	got, ok := tt.Get(board.Zobrist(42))
	assert.True(t, ok)
	assert.Equal(t, e.Score, got.Score)
	assert.Equal(t, e.BestMove, got.BestMove)
	assert.Equal(t, 1, tt.Len())
}

func TestTableMissingKey(t *testing.T) {
	tt := New(1 << 16)
	_, ok := tt.Get(board.Zobrist(7))
	assert.False(t, ok)
}

func TestTableClear(t *testing.T) {
	tt := New(1 << 16)
	tt.Insert(Entry{Hash: board.Zobrist(1), Bound: Exact, Depth: 1})
	assert.Equal(t, 1, tt.Len())

	tt.Clear()
	assert.Equal(t, 0, tt.Len())
	_, ok := tt.Get(board.Zobrist(1))
	assert.False(t, ok)
}

func TestTableLenNeverExceedsCapacity(t *testing.T) {
	tt := New(1 << 12)
	for i := 0; i < 10_000; i++ {
		tt.Insert(Entry{Hash: board.Zobrist(i), Bound: Exact, Depth: i % 8})
	}
	assert.LessOrEqual(t, tt.Len(), tt.Capacity())
}

func TestTableLoadFactorPermille(t *testing.T) {
	tt := New(1 << 12)
	assert.Equal(t, 0, tt.LoadFactorPermille())
	tt.Insert(Entry{Hash: board.Zobrist(1), Bound: Exact, Depth: 1})
	assert.Equal(t, 1000*tt.Len()/tt.Capacity(), tt.LoadFactorPermille())
}
