package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"chess-perft/engine"
	"chess-perft/movegen"
	"chess-perft/store"
)

// expectedStartposNodes holds the published perft counts for the initial
// position, indexed by depth. Used by -progressive to flag regressions.
var expectedStartposNodes = []uint64{
	1,
	20,
	400,
	8902,
	197281,
	4865609,
	119060324,
	3195901860,
}

func main() {
	fen := flag.String("fen", movegen.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	workers := flag.Int("workers", 1, "Worker goroutines; 0 selects one per CPU, 1 runs serially")
	hashMB := flag.Int("hash", 0, "Transposition table size in MB (0 disables)")
	cacheDir := flag.String("cache", "", "Directory of a persistent result cache (empty disables)")
	progressive := flag.Bool("progressive", false, "Run depths 1..depth and check startpos counts")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	board, err := movegen.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
		os.Exit(1)
	}

	var table *engine.PerftTable
	if *hashMB > 0 {
		table = engine.NewPerftTable(*hashMB)
	}

	var results *store.Store
	if *cacheDir != "" {
		results, err = store.Open(*cacheDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "opening result cache: %v\n", err)
			os.Exit(1)
		}
		defer results.Close()
	}

	count := func(b *movegen.Board, d int) uint64 {
		if *workers == 1 && table == nil {
			return movegen.Perft(b, d)
		}
		return engine.ParallelPerftTable(b, d, *workers, table)
	}

	if *divide {
		var entries []movegen.DivideEntry
		var sum uint64
		if *workers == 1 && table == nil {
			entries, sum = movegen.PerftDivide(board, *depth)
		} else {
			entries, sum = engine.ParallelDivide(board, *depth, *workers, table)
		}
		for _, e := range entries {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(1)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(1)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	if *progressive {
		runProgressive(board, *fen, *depth, count, results)
		return
	}

	// A cached result short-circuits the run entirely and is printed without
	// a timing.
	if results != nil {
		if nodes, ok, err := results.Get(*fen, *depth); err != nil {
			fmt.Fprintf(os.Stderr, "result cache read: %v\n", err)
			os.Exit(1)
		} else if ok {
			fmt.Printf("%s \t%d \t\t%d \t\t(cached)\n", *label, *depth, nodes)
			return
		}
	}

	var totalNodes uint64
	var lastNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		lastNodes = count(board, *depth)
		totalNodes += lastNodes
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if results != nil {
		if err := results.Put(*fen, *depth, lastNodes); err != nil {
			fmt.Fprintf(os.Stderr, "result cache write: %v\n", err)
			os.Exit(1)
		}
	}

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(1)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(1)
		}
		_ = f.Close()
	}
}

// runProgressive counts nodes at every depth from 1 up to maxDepth, checks
// startpos counts against the published table and exits nonzero on any
// mismatch.
func runProgressive(board *movegen.Board, fen string, maxDepth int, count func(*movegen.Board, int) uint64, results *store.Store) {
	isStartpos := fen == movegen.FENStartPos
	failed := false
	for d := 1; d <= maxDepth; d++ {
		var nodes uint64
		cached := false
		if results != nil {
			if n, ok, err := results.Get(fen, d); err != nil {
				fmt.Fprintf(os.Stderr, "result cache read: %v\n", err)
				os.Exit(1)
			} else if ok {
				nodes, cached = n, true
			}
		}
		start := time.Now()
		if !cached {
			nodes = count(board, d)
		}
		elapsed := time.Since(start)
		nps := float64(nodes) / elapsed.Seconds()

		verdict := ""
		if isStartpos && d < len(expectedStartposNodes) {
			if nodes == expectedStartposNodes[d] {
				verdict = "PASS"
			} else {
				verdict = fmt.Sprintf("FAIL (expected %d)", expectedStartposNodes[d])
				failed = true
			}
		}
		if cached {
			fmt.Printf("depth %d \t%d \t\t(cached) \t%s\n", d, nodes, verdict)
		} else {
			fmt.Printf("depth %d \t%d \t\t%s \t%.0f \t%s\n", d, nodes, elapsed, nps, verdict)
		}

		if results != nil && !cached {
			if err := results.Put(fen, d, nodes); err != nil {
				fmt.Fprintf(os.Stderr, "result cache write: %v\n", err)
				os.Exit(1)
			}
		}
	}
	if failed {
		os.Exit(1)
	}
}
