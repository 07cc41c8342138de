// caissa-engine is a simple console-protocol chess engine.
package main

import (
	"context"
	"flag"

	"github.com/seekerror/logw"

	"github.com/ravenfell/caissa/pkg/engine"
	"github.com/ravenfell/caissa/pkg/engine/console"
	"github.com/ravenfell/caissa/pkg/eval"
)

var (
	depth = flag.Uint("depth", engine.DefaultDepth, "Default search depth limit")
	hash  = flag.Uint("hash", 16, "Transposition table size in MB")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "caissa", "ravenfell", eval.Material{},
		engine.WithOptions(engine.Options{DepthLimit: *depth, Hash: *hash}))

	in := engine.ReadStdinLines(ctx)
	driver, out := console.NewDriver(ctx, e, in)
	go engine.WriteStdoutLines(ctx, out)

	<-driver.Closed()
	logw.Infof(ctx, "Engine exiting")
}
