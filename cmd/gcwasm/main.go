// Command gcwasm is a minimal, non-interactive demonstration of the GC
// heap and Store/Instance/Interpreter pieces wired together — it runs one
// of a handful of hand-built modules (no binary decoder is in scope) and
// prints the result, plus heap occupancy when -heap-stats is set.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/gcwasm-core/heap"
	"github.com/wippyai/gcwasm-core/instance"
	"github.com/wippyai/gcwasm-core/interp"
	"github.com/wippyai/gcwasm-core/store"
)

func main() {
	var (
		demoName  = flag.String("demo", "struct", "demo module to run (struct, array, i31)")
		list      = flag.Bool("list", false, "list available demo modules and exit")
		verbose   = flag.Bool("v", false, "enable development logging")
		heapStats = flag.Bool("heap-stats", false, "print heap stats after the call")
	)
	flag.Parse()

	all := demos()

	if *list {
		names := make([]string, 0, len(all))
		for name := range all {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Println("Available demos:", strings.Join(names, ", "))
		return
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "logger: %v\n", err)
			os.Exit(1)
		}
		store.SetLogger(logger)
		heap.SetLogger(logger)
	}

	d, ok := all[*demoName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown demo %q (use -list to see available demos)\n", *demoName)
		os.Exit(1)
	}

	s := store.NewWithDefaults()
	it := interp.New(s)

	in, err := instance.Instantiate(s, it, 0, *demoName, d.module)
	if err != nil {
		fmt.Fprintf(os.Stderr, "instantiate: %v\n", err)
		os.Exit(1)
	}

	handle, err := in.ExportedFunc(s, "run")
	if err != nil {
		fmt.Fprintf(os.Stderr, "export lookup: %v\n", err)
		os.Exit(1)
	}

	results, err := it.Call(handle, d.args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "call: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("demo %q result: %v\n", *demoName, results)

	if *heapStats {
		stats := s.Heap().Stats()
		fmt.Printf("heap: slots=%d live=%d free=%d alloc_since_gc=%d\n",
			stats.Slots, stats.Live, stats.Free, stats.AllocSinceGC)
	}
}
