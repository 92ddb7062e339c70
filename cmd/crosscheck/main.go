package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"chess-perft/movegen"
	"chess-perft/refcheck"
)

func main() {
	fen := flag.String("fen", movegen.FENStartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Comparison depth (required)")
	countOnly := flag.Bool("count", false, "Compare root node counts only, skip the tree walk")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	if *countOnly {
		board, err := movegen.ParseFEN(*fen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
			os.Exit(1)
		}
		ours := movegen.Perft(board, *depth)
		theirs, err := refcheck.ReferencePerft(*fen, *depth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reference perft: %v\n", err)
			os.Exit(1)
		}
		if ours != theirs {
			fmt.Printf("MISMATCH: ours %d, reference %d\n", ours, theirs)
			os.Exit(1)
		}
		fmt.Printf("OK: %d nodes at depth %d\n", ours, *depth)
		return
	}

	start := time.Now()
	mm, err := refcheck.Compare(*fen, *depth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "compare: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	if mm == nil {
		fmt.Printf("OK: trees agree to depth %d (%s)\n", *depth, elapsed)
		return
	}

	fmt.Printf("MISMATCH at depth %d\n", mm.Depth)
	fmt.Printf("position: %s\n", mm.FEN)
	if len(mm.Line) > 0 {
		fmt.Printf("line: %s\n", strings.Join(mm.Line, " "))
	}
	if len(mm.Missing) > 0 {
		fmt.Printf("missing: %s\n", strings.Join(mm.Missing, " "))
	}
	if len(mm.Extra) > 0 {
		fmt.Printf("extra: %s\n", strings.Join(mm.Extra, " "))
	}
	os.Exit(1)
}
