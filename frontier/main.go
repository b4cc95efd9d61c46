// Command frontier walks forward from a position through the
// already-solved region of a checkpoint store and reports every
// adjacent position that is not yet solved, as a JSON document. It is
// a standalone counting/enumeration pass over the same move-generation
// code the solver uses, run independently so its output can cross-
// check the solver's own traversal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/anthropics/gobbletsolve/engine"
	"github.com/anthropics/gobbletsolve/notation"
	"github.com/anthropics/gobbletsolve/store"
)

var (
	storePath = flag.String("store", "", "badger checkpoint store directory; empty means nothing is solved yet")
	position  = flag.String("position", "", "base64 canonical key to start from; empty starts from the new game")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st store.CheckpointStore
	var err error
	if *storePath == "" {
		st = store.NewMemStore()
	} else {
		st, err = store.OpenBadgerStore(*storePath)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "opening store:", err)
		os.Exit(1)
	}
	defer st.Close()

	solver := engine.NewSolver()
	if err := st.ScanAll(ctx, func(e store.Entry) error {
		solver.Table().Put(e.Key, e.Outcome)
		return nil
	}); err != nil {
		fmt.Fprintln(os.Stderr, "loading checkpoint:", err)
		os.Exit(1)
	}

	var root *engine.Position
	if *position == "" {
		root = engine.NewPosition()
	} else {
		key, err := notation.DecodeKey(*position)
		if err != nil {
			fmt.Fprintln(os.Stderr, "decoding --position:", err)
			os.Exit(1)
		}
		root, err = engine.Decode(key)
		if err != nil {
			fmt.Fprintln(os.Stderr, "decoding --position:", err)
			os.Exit(1)
		}
	}

	entries, err := engine.EnumerateFrontier(ctx, solver, root)
	if err != nil {
		fmt.Fprintln(os.Stderr, "enumerating frontier:", err)
		os.Exit(1)
	}

	out, err := notation.MarshalFrontier(entries)
	if err != nil {
		fmt.Fprintln(os.Stderr, "marshaling frontier:", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
