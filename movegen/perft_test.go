package movegen_test

import (
	"testing"

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

func TestPerftInitialPosition(t *testing.T) {
	b := parse(t, movegen.FENStartPos)
	for _, tc := range []struct {
		depth int
		want  uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	} {
		if got := movegen.Perft(b, tc.depth); got != tc.want {
			t.Fatalf("startpos depth%d: got %d want %d", tc.depth, got, tc.want)
		}
	}

	if testing.Short() {
		t.Skip("skipping depth 5+ perft in short mode")
	}
	if got := movegen.Perft(b, 5); got != 4865609 {
		t.Fatalf("startpos depth5: got %d want %d", got, 4865609)
	}
	if got := movegen.Perft(b, 6); got != 119060324 {
		t.Fatalf("startpos depth6: got %d want %d", got, 119060324)
	}
}

func TestPerftKiwipete(t *testing.T) {
	b := parse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if got := movegen.Perft(b, 1); got != 48 {
		moves := b.LegalMoves()
		t.Logf("diagnostic: legal=%d", len(moves))
		var caps, eps, castles, promos int
		for _, m := range moves {
			if m.IsCapture() {
				caps++
			}
			if m.IsEnPassant() {
				eps++
			}
			if m.IsCastle() {
				castles++
			}
			if m.IsPromotion() {
				promos++
			}
			t.Logf("  %s mp=%v cap=%v flag=%d", m, m.MovedPiece(), m.CapturedPiece(), m.Flag())
		}
		t.Logf("special: captures=%d ep=%d castles=%d promotions=%d", caps, eps, castles, promos)
		t.Fatalf("Kiwipete depth1: got %d want %d", got, 48)
	}
	if got := movegen.Perft(b, 2); got != 2039 {
		t.Fatalf("Kiwipete depth2: got %d want %d", got, 2039)
	}
	if got := movegen.Perft(b, 3); got != 97862 {
		t.Fatalf("Kiwipete depth3: got %d want %d", got, 97862)
	}
	if testing.Short() {
		t.Skip("skipping depth 4 Kiwipete in short mode")
	}
	if got := movegen.Perft(b, 4); got != 4085603 {
		t.Fatalf("Kiwipete depth4: got %d want %d", got, 4085603)
	}
}

func TestPerftPosition3(t *testing.T) {
	b := parse(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	for _, tc := range []struct {
		depth int
		want  uint64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	} {
		if got := movegen.Perft(b, tc.depth); got != tc.want {
			t.Fatalf("Pos3 d%d: got %d want %d", tc.depth, got, tc.want)
		}
	}
}

func TestPerftPosition4(t *testing.T) {
	b := parse(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1")
	for _, tc := range []struct {
		depth int
		want  uint64
	}{
		{1, 6},
		{2, 264},
		{3, 9467},
	} {
		if got := movegen.Perft(b, tc.depth); got != tc.want {
			t.Fatalf("Pos4 d%d: got %d want %d", tc.depth, got, tc.want)
		}
	}
}

func TestPerftPosition5(t *testing.T) {
	b := parse(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 0 1")
	for _, tc := range []struct {
		depth int
		want  uint64
	}{
		{1, 44},
		{2, 1486},
		{3, 62379},
	} {
		if got := movegen.Perft(b, tc.depth); got != tc.want {
			t.Fatalf("Pos5 d%d: got %d want %d", tc.depth, got, tc.want)
		}
	}
}

func TestPerftPosition6(t *testing.T) {
	b := parse(t, "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10")
	for _, tc := range []struct {
		depth int
		want  uint64
	}{
		{1, 46},
		{2, 2079},
		{3, 89890},
	} {
		if got := movegen.Perft(b, tc.depth); got != tc.want {
			t.Fatalf("Pos6 d%d: got %d want %d", tc.depth, got, tc.want)
		}
	}
}

func TestPerftEnPassant(t *testing.T) {
	b := parse(t, "k7/8/8/3pP3/8/8/8/7K w - d6 0 2")
	if got := movegen.Perft(b, 1); got != 5 {
		t.Fatalf("EP depth1: got %d want %d", got, 5)
	}
	if got := movegen.Perft(b, 2); got != 19 {
		t.Fatalf("EP depth2: got %d want %d", got, 19)
	}
}

// The d-pawn capture en passant would expose the black king to the rook on
// h4, so exd3 must not be generated as legal.
func TestPerftEnPassantPin(t *testing.T) {
	b := parse(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if got := movegen.Perft(b, 1); got != 6 {
		for _, m := range b.LegalMoves() {
			t.Logf("  %s", m)
		}
		t.Fatalf("EP-pin depth1: got %d want %d", got, 6)
	}
	if got := movegen.Perft(b, 2); got != 94 {
		t.Fatalf("EP-pin depth2: got %d want %d", got, 94)
	}
}

func TestPerftPromotion(t *testing.T) {
	b := parse(t, "1n5k/P7/8/8/8/8/8/7K w - - 0 1")
	if got := movegen.Perft(b, 1); got != 11 {
		t.Fatalf("Promotion depth1: got %d want %d", got, 11)
	}
}

// Checkmated and stalemated positions have no moves, so every positive
// depth counts zero leaves.
func TestPerftTerminalPositions(t *testing.T) {
	mate := parse(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if got := movegen.Perft(mate, 1); got != 0 {
		t.Fatalf("checkmate depth1: got %d want 0", got)
	}
	if got := movegen.Perft(mate, 3); got != 0 {
		t.Fatalf("checkmate depth3: got %d want 0", got)
	}
	stale := parse(t, "7k/8/6Q1/8/8/8/8/K7 b - - 0 1")
	if got := movegen.Perft(stale, 1); got != 0 {
		t.Fatalf("stalemate depth1: got %d want 0", got)
	}
}

func TestPerftDepthZero(t *testing.T) {
	b := parse(t, movegen.FENStartPos)
	if got := movegen.Perft(b, 0); got != 1 {
		t.Fatalf("depth0: got %d want 1", got)
	}
	if got := movegen.Perft(b, -3); got != 1 {
		t.Fatalf("negative depth: got %d want 1", got)
	}
}

// Bulk counting is a pure shortcut; counts must match the plain recursion.
func TestPerftNoBulkMatches(t *testing.T) {
	fens := []string{
		movegen.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		b := parse(t, fen)
		for depth := 1; depth <= 3; depth++ {
			bulk := movegen.Perft(b, depth)
			plain := movegen.PerftNoBulk(b, depth)
			if bulk != plain {
				t.Fatalf("%s depth%d: bulk %d, no-bulk %d", fen, depth, bulk, plain)
			}
		}
	}
}

func TestPerftDivideSumsToTotal(t *testing.T) {
	b := parse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	entries, total := movegen.PerftDivide(b, 3)
	if total != 97862 {
		t.Fatalf("divide total: got %d want %d", total, 97862)
	}
	if len(entries) != 48 {
		t.Fatalf("divide entries: got %d want %d", len(entries), 48)
	}
	var sum uint64
	for _, e := range entries {
		sum += e.Nodes
	}
	if sum != total {
		t.Fatalf("entry sum %d != total %d", sum, total)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Move.PromotionPiece().Type() > entries[i].Move.PromotionPiece().Type() &&
			entries[i-1].Move.From() == entries[i].Move.From() &&
			entries[i-1].Move.To() == entries[i].Move.To() {
			t.Fatalf("divide entries out of order at %d: %s before %s",
				i, entries[i-1].Move, entries[i].Move)
		}
	}
}

// Perft must leave the board exactly as it found it.
func TestPerftRestoresPosition(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	b := parse(t, fen)
	before := b.Hash()
	movegen.Perft(b, 3)
	if b.Hash() != before {
		t.Fatalf("hash changed: %x -> %x", before, b.Hash())
	}
	if got := b.ToFEN(); got != fen {
		t.Fatalf("position changed: got %q want %q", got, fen)
	}
	if !b.Validate() {
		t.Fatal("Validate failed after perft")
	}
}
