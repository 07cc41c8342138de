package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/iox"

	"github.com/ravenfell/caissa/pkg/board/fen"
	"github.com/ravenfell/caissa/pkg/engine"
)

// ProtocolName identifies this driver in logs and diagnostics.
const ProtocolName = "console"

// Driver implements a console driver for debugging: one text command per
// line in, one or more text lines out per command.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out    chan<- string
	active atomic.Bool // a caller is waiting for a search to finish
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printPosition(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}
			d.handle(ctx, line)

		case <-d.Closed():
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) handle(ctx context.Context, line string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return
	}

	cmd, args := strings.ToLower(parts[0]), parts[1:]

	switch cmd {
	case "reset", "r":
		// reset [<fenstring>] [moves ...]
		d.ensureInactive(ctx)

		pos, rest := "", args
		if len(args) >= 6 && args[0] != "moves" {
			pos, rest = strings.Join(args[0:6], " "), args[6:]
		}
		if pos == "" {
			pos = fen.Initial
		}
		if err := d.e.Reset(ctx, pos); err != nil {
			logw.Errorf(ctx, "Invalid position %q: %v", pos, err)
			return
		}

		move := false
		for _, arg := range rest {
			if arg == "moves" {
				move = true
				continue
			}
			if !move {
				continue
			}
			if err := d.e.Move(ctx, arg); err != nil {
				logw.Errorf(ctx, "Invalid move %q: %v", arg, err)
				return
			}
		}
		d.printPosition(ctx)

	case "undo", "u":
		d.ensureInactive(ctx)
		_ = d.e.TakeBack(ctx)
		d.printPosition(ctx)

	case "print", "p":
		d.printPosition(ctx)

	case "analyze", "a", "go":
		d.ensureInactive(ctx)

		var depth lang.Optional[uint]
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
				depth = lang.Some(uint(n))
			}
		}

		out, err := d.e.Analyze(ctx, depth)
		if err != nil {
			logw.Errorf(ctx, "Analyze failed: %v", err)
			return
		}
		d.active.Store(true)

		go func() {
			var last engine.PV
			for pv := range out {
				last = pv
				d.out <- pv.String()
			}
			d.searchCompleted(last)
		}()

	case "depth", "d":
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				d.e.SetDepth(uint(n))
			}
		}

	case "hash": // size in MB
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				d.e.SetHash(uint(n))
			}
		}

	case "halt", "stop":
		d.ensureInactive(ctx)

	case "quit", "exit", "q":
		d.ensureInactive(ctx)
		d.Close()

	default:
		// Assume a move if not a recognized command.
		d.ensureInactive(ctx)
		if err := d.e.Move(ctx, cmd); err != nil {
			d.out <- fmt.Sprintf("invalid command or move: %q", cmd)
		} else {
			d.printPosition(ctx)
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	if d.active.CompareAndSwap(true, false) {
		_ = d.e.Halt(ctx)
	}
}

func (d *Driver) searchCompleted(pv engine.PV) {
	if d.active.CompareAndSwap(true, false) {
		if len(pv.Moves) > 0 {
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		}
	} // else: stale or duplicate result
}

func (d *Driver) printPosition(ctx context.Context) {
	d.out <- ""
	d.out <- fmt.Sprintf("fen: %v", d.e.Position())
	d.out <- ""
}
