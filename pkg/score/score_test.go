package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ravenfell/caissa/pkg/board"
)

func TestMateOrdering(t *testing.T) {
	assert.Greater(t, Mate(1), Mate(3), "mate in 1 should score higher than mate in 3")
	assert.Less(t, MatedIn(1), MatedIn(3), "being mated in 1 should score lower than mated in 3")
	assert.Greater(t, Mate(1), Inf-maxMateDistance)
}

func TestIsMate(t *testing.T) {
	assert.True(t, IsMate(Mate(5)))
	assert.True(t, IsMate(MatedIn(5)))
	assert.False(t, IsMate(Equal))
	assert.False(t, IsMate(Score(250)))
}

func TestPliesToMate(t *testing.T) {
	plies, ok := PliesToMate(Mate(4))
	assert.True(t, ok)
	assert.Equal(t, 4, plies)

	plies, ok = PliesToMate(MatedIn(2))
	assert.True(t, ok)
	assert.Equal(t, 2, plies)

	_, ok = PliesToMate(Score(42))
	assert.False(t, ok)
}

func TestIncrementMateDistance(t *testing.T) {
	incremented := IncrementMateDistance(Mate(2))
	plies, ok := PliesToMate(incremented)
	assert.True(t, ok)
	assert.Equal(t, 3, plies)
	assert.Greater(t, Mate(2), incremented, "a mate one ply further away scores lower")

	assert.Equal(t, Score(42), IncrementMateDistance(Score(42)))
}

func TestNegate(t *testing.T) {
	assert.Equal(t, Score(-100), Score(100).Negate())
	assert.Equal(t, Equal, Equal.Negate())
}

func TestRelativeToAbsolute(t *testing.T) {
	assert.Equal(t, Score(100), RelativeToAbsolute(board.White, Score(100)))
	assert.Equal(t, Score(-100), RelativeToAbsolute(board.Black, Score(100)))
}

func TestCrop(t *testing.T) {
	assert.Equal(t, Inf, Crop(Inf+500))
	assert.Equal(t, NegInf, Crop(NegInf-500))
	assert.Equal(t, Score(10), Crop(Score(10)))
}

func TestMaxMin(t *testing.T) {
	assert.Equal(t, Score(5), Max(Score(5), Score(-5)))
	assert.Equal(t, Score(-5), Min(Score(5), Score(-5)))
}
