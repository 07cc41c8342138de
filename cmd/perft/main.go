// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/seekerror/logw"

	"github.com/ravenfell/caissa/pkg/board"
	"github.com/ravenfell/caissa/pkg/board/fen"
	"github.com/ravenfell/caissa/pkg/movegen"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = fen.Initial
	}

	pos, err := fen.Decode(*position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen %q: %v", *position, err)
	}
	history := board.NewPositionHistory(*pos)

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := perft(history, i, *divide && i == *depth)
		duration := time.Since(start)

		println(fmt.Sprintf("perft,%v,%v,%v,%v", *position, i, nodes, duration.Microseconds()))
	}
}

func perft(history *board.PositionHistory, depth int, divide bool) uint64 {
	if depth == 0 {
		return 1
	}

	list := board.NewMoveList()
	movegen.GenerateMoves(list, history.CurrentPosition())

	var nodes uint64
	for i := 0; i < list.Len(); i++ {
		m := list.At(i)

		history.DoMove(m)
		count := perft(history, depth-1, false)
		history.UndoLastMove()

		if divide {
			println(fmt.Sprintf("%v: %v", m, count))
		}
		nodes += count
	}
	return nodes
}
