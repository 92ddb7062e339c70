package engine_test

import (
	"testing"

	"chess-perft/engine"
	"chess-perft/movegen"
)

func parse(t *testing.T, fen string) *movegen.Board {
	t.Helper()
	b, err := movegen.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) failed: %v", fen, err)
	}
	return b
}

var perftPositions = []struct {
	name  string
	fen   string
	depth int
	nodes uint64
}{
	{"startpos", movegen.FENStartPos, 4, 197281},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 97862},
	{"pos3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
	{"en passant", "k7/8/8/3pP3/8/8/8/7K w - d6 0 2", 2, 19},
}

func TestParallelPerftMatchesSerial(t *testing.T) {
	for _, pos := range perftPositions {
		t.Run(pos.name, func(t *testing.T) {
			b := parse(t, pos.fen)
			serial := movegen.Perft(b, pos.depth)
			for _, workers := range []int{0, 1, 2, 4, 7} {
				got := engine.ParallelPerft(b, pos.depth, workers)
				if got != serial {
					t.Fatalf("workers=%d: got %d, serial %d", workers, got, serial)
				}
			}
		})
	}
}

func TestParallelPerftKnownCounts(t *testing.T) {
	for _, pos := range perftPositions {
		t.Run(pos.name, func(t *testing.T) {
			b := parse(t, pos.fen)
			if got := engine.ParallelPerft(b, pos.depth, 4); got != pos.nodes {
				t.Fatalf("got %d want %d", got, pos.nodes)
			}
		})
	}
}

// The memo table must never change a count, only the work done to get it.
func TestParallelPerftWithTable(t *testing.T) {
	table := engine.NewPerftTable(16)
	for _, pos := range perftPositions {
		t.Run(pos.name, func(t *testing.T) {
			b := parse(t, pos.fen)
			if got := engine.ParallelPerftTable(b, pos.depth, 4, table); got != pos.nodes {
				t.Fatalf("first run: got %d want %d", got, pos.nodes)
			}
			// Second run hits warm table entries.
			if got := engine.ParallelPerftTable(b, pos.depth, 4, table); got != pos.nodes {
				t.Fatalf("warm run: got %d want %d", got, pos.nodes)
			}
		})
	}
}

func TestParallelPerftLeavesBoardUntouched(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	b := parse(t, fen)
	engine.ParallelPerft(b, 3, 4)
	if got := b.ToFEN(); got != fen {
		t.Fatalf("root board changed: got %q want %q", got, fen)
	}
}

func TestParallelPerftEdgeDepths(t *testing.T) {
	b := parse(t, movegen.FENStartPos)
	if got := engine.ParallelPerft(b, 0, 4); got != 1 {
		t.Fatalf("depth0: got %d want 1", got)
	}
	if got := engine.ParallelPerft(b, 1, 4); got != 20 {
		t.Fatalf("depth1: got %d want 20", got)
	}
}

func TestParallelDivideMatchesSerial(t *testing.T) {
	b := parse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	wantEntries, wantTotal := movegen.PerftDivide(b, 3)

	gotEntries, gotTotal := engine.ParallelDivide(b, 3, 4, nil)
	if gotTotal != wantTotal {
		t.Fatalf("total: got %d want %d", gotTotal, wantTotal)
	}
	if len(gotEntries) != len(wantEntries) {
		t.Fatalf("entries: got %d want %d", len(gotEntries), len(wantEntries))
	}
	for i := range wantEntries {
		if gotEntries[i].Move != wantEntries[i].Move || gotEntries[i].Nodes != wantEntries[i].Nodes {
			t.Fatalf("entry %d: got %s=%d want %s=%d", i,
				gotEntries[i].Move, gotEntries[i].Nodes,
				wantEntries[i].Move, wantEntries[i].Nodes)
		}
	}
}

func TestParallelDeepStartpos(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deep parallel perft in short mode")
	}
	b := parse(t, movegen.FENStartPos)
	table := engine.NewPerftTable(64)
	if got := engine.ParallelPerftTable(b, 5, 0, table); got != 4865609 {
		t.Fatalf("depth5: got %d want 4865609", got)
	}
	if got := engine.ParallelPerftTable(b, 6, 0, table); got != 119060324 {
		t.Fatalf("depth6: got %d want 119060324", got)
	}
}
