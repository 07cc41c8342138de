package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"

	"github.com/ravenfell/caissa/pkg/board"
	"github.com/ravenfell/caissa/pkg/board/fen"
	"github.com/ravenfell/caissa/pkg/eval"
	"github.com/ravenfell/caissa/pkg/movegen"
	"github.com/ravenfell/caissa/pkg/score"
	"github.com/ravenfell/caissa/pkg/search"
)

var version = build.NewVersion(0, 1, 0)

// Options are engine creation and runtime options.
type Options struct {
	// DepthLimit bounds iterative deepening. If zero, Analyze uses
	// DefaultDepth.
	DepthLimit uint
	// Hash is the transposition table size in MB. If zero, a minimal table
	// is still allocated since pkg/search always consults one.
	Hash uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%vMB}", o.DepthLimit, o.Hash)
}

func (o Options) tableBytes() uint64 {
	if o.Hash == 0 {
		return 1 << 16
	}
	return uint64(o.Hash) << 20
}

// DefaultDepth is used by Analyze when no depth limit is configured.
const DefaultDepth = 6

// PV is a completed or in-progress iterative-deepening result.
type PV struct {
	Depth int
	Score score.Score
	Moves []board.Move
	Nodes uint64
}

func (pv PV) String() string {
	moves := make([]string, len(pv.Moves))
	for i, m := range pv.Moves {
		moves[i] = m.String()
	}
	return fmt.Sprintf("depth=%v score=%v nodes=%v pv=%v", pv.Depth, pv.Score, pv.Nodes, strings.Join(moves, " "))
}

// Engine encapsulates game state, search and evaluation for a single game.
type Engine struct {
	name, author string
	ev           eval.Evaluator
	opts         Options

	history *board.PositionHistory
	tt      *search.Table

	cancel func()
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

func New(ctx context.Context, name, author string, ev eval.Evaluator, opts ...Option) *Engine {
	e := &Engine{name: name, author: author, ev: ev}
	for _, fn := range opts {
		fn(e)
	}

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.DepthLimit = depth
}

func (e *Engine) SetHash(sizeMB uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = sizeMB
	e.tt = search.New(e.opts.tableBytes())
}

// Position returns the current position in FEN format.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.history.CurrentPosition())
}

// Reset resets the engine to a new starting position in FEN format.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, options=%v", position, e.opts)

	e.haltSearchIfActive(ctx)

	pos, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.history = board.NewPositionHistory(*pos)
	e.tt = search.New(e.opts.tableBytes())

	logw.Infof(ctx, "New position: %v", e.history.CurrentPosition())
	return nil
}

// Move selects the given move, usually an opponent move, by matching it
// against the legal moves in the current position.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMoveUCI(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	e.haltSearchIfActive(ctx)

	list := board.NewMoveList()
	movegen.GenerateMoves(list, e.history.CurrentPosition())
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)
		if m.Origin() == candidate.Origin() && m.Target() == candidate.Target() &&
			(!m.IsPromotion() || m.PromotionPiece() == candidate.PromotionPiece()) {
			e.history.DoMove(m)
			logw.Infof(ctx, "Move %v: %v", m, e.history.CurrentPosition())
			return nil
		}
	}
	return fmt.Errorf("illegal move: %v", candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	if e.history.Len() == 0 {
		return fmt.Errorf("no move to take back")
	}
	e.history.UndoLastMove()

	logw.Infof(ctx, "Takeback: %v", e.history.CurrentPosition())
	return nil
}

// Analyze iteratively deepens from depth 1 up to the configured (or
// requested) depth limit, emitting one PV per completed iteration. The
// channel is closed when the search completes or ctx/Halt cancels it.
func (e *Engine) Analyze(ctx context.Context, depth lang.Optional[uint]) (<-chan PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		return nil, fmt.Errorf("search already active")
	}

	limit := e.opts.DepthLimit
	if d, ok := depth.V(); ok && d > 0 {
		limit = d
	}
	if limit == 0 {
		limit = DefaultDepth
	}

	closer := iox.NewAsyncCloser()
	wctx, cancel := contextx.WithQuitCancel(ctx, closer.Closed())
	e.cancel = func() {
		closer.Close()
		cancel()
	}

	out := make(chan PV, int(limit))
	history := board.NewPositionHistory(*e.history.CurrentPosition())
	tt := e.tt
	ev := e.ev

	go func() {
		defer close(out)
		defer cancel()

		for d := 1; d <= int(limit); d++ {
			tt.NextAge()
			result, err := search.AlphaBeta(wctx, tt, ev, history, d)
			if err != nil {
				logw.Infof(ctx, "Search halted at depth %v: %v", d, err)
				return
			}

			pv := PV{Depth: d, Score: result.Score, Nodes: result.Nodes, Moves: search.PrincipalVariation(tt, history, d)}
			logw.Infof(ctx, "Analyze depth %v: %v", d, pv)

			select {
			case out <- pv:
			case <-wctx.Done():
				return
			}

			if score.IsMate(result.Score) {
				return
			}
		}
	}()

	return out, nil
}

// Halt halts an active search, if any.
func (e *Engine) Halt(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel == nil {
		return fmt.Errorf("no active search")
	}
	e.haltSearchIfActiveLocked(ctx)
	return nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) {
	e.haltSearchIfActiveLocked(ctx)
}

func (e *Engine) haltSearchIfActiveLocked(ctx context.Context) {
	if e.cancel != nil {
		logw.Infof(ctx, "Halting active search")
		e.cancel()
		e.cancel = nil
	}
}
