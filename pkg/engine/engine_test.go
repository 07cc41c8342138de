package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/ravenfell/caissa/pkg/board/fen"
	"github.com/ravenfell/caissa/pkg/engine"
	"github.com/ravenfell/caissa/pkg/eval"
)

func newTestEngine(ctx context.Context) *engine.Engine {
	return engine.New(ctx, "test", "suite", eval.Material{},
		engine.WithOptions(engine.Options{DepthLimit: 2, Hash: 1}))
}

func TestNewEngineStartsAtInitialPosition(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	assert.Equal(t, fen.Initial, e.Position())
}

func TestMoveAndTakeBackRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, fen.Initial, e.Position())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, fen.Initial, e.Position())
}

func TestMoveRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	assert.Error(t, e.Move(ctx, "e2e5"))
}

func TestTakeBackWithoutHistoryFails(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)

	assert.Error(t, e.TakeBack(ctx))
}

func TestAnalyzeFindsBackRankMate(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(ctx)
	require.NoError(t, e.Reset(ctx, "7k/6pp/8/8/8/8/8/R3K3 w - - 0 1"))

	out, err := e.Analyze(ctx, lang.Some(uint(2)))
	require.NoError(t, err)

	var last engine.PV
	for pv := range out {
		last = pv
	}
	require.NotEmpty(t, last.Moves)
	assert.Equal(t, "a1a8", last.Moves[0].String())
}
