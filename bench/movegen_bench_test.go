package bench

import (
	"testing"

	"chess-perft/movegen"
)

func benchPseudoLegal(b *testing.B, fen string) {
	board, err := movegen.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	buf := make([]movegen.Move, 0, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = board.PseudoLegalMovesInto(buf[:0])
	}
}

func BenchmarkPseudoLegal_Initial(b *testing.B) {
	benchPseudoLegal(b, movegen.FENStartPos)
}

func BenchmarkPseudoLegal_Kiwipete(b *testing.B) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	benchPseudoLegal(b, fen)
}

func BenchmarkPseudoLegal_Pos6(b *testing.B) {
	fen := "r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10"
	benchPseudoLegal(b, fen)
}

func benchLegal(b *testing.B, fen string) {
	board, err := movegen.ParseFEN(fen)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	buf := make([]movegen.Move, 0, 256)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf = board.LegalMovesInto(buf[:0])
	}
}

func BenchmarkLegal_Initial(b *testing.B) {
	benchLegal(b, movegen.FENStartPos)
}

func BenchmarkLegal_Kiwipete(b *testing.B) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	benchLegal(b, fen)
}

func BenchmarkMakeUnmake_AllMoves_Initial(b *testing.B) {
	board, err := movegen.ParseFEN(movegen.FENStartPos)
	if err != nil {
		b.Fatalf("ParseFEN: %v", err)
	}
	moves := board.LegalMoves()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, m := range moves {
			ok, st := board.MakeMove(m)
			if !ok {
				b.Fatalf("illegal move in cached list: %v", m)
			}
			board.UnmakeMove(m, st)
		}
	}
}
