package movegen

import "slices"

// Perft counts leaf nodes reachable from the position at the given depth.
// Depth 0 counts the position itself as one node. At depth 1 the legal moves
// are counted without descending into the child positions.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(b, depth, &pc, true)
}

// PerftNoBulk counts leaf nodes without the depth-1 shortcut, descending to
// depth 0 for every line. Counts always match Perft.
func PerftNoBulk(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(b, depth, &pc, false)
}

// perftCtx holds one reusable move buffer per remaining depth, so the
// recursion allocates nothing after warmup.
type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	if depth < 0 {
		depth = 0
	}
	for depth >= len(pc.bufs) {
		pc.bufs = append(pc.bufs, nil)
	}
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, maxMoves)
		pc.bufs[depth] = buf
	}
	return buf[:0]
}

// perftRec iterates pseudo-legal moves and settles legality with the castling
// pre-checks plus the MakeMove probe, so each move is probed exactly once.
func perftRec(b *Board, depth int, pc *perftCtx, bulk bool) uint64 {
	if depth == 0 {
		return 1
	}
	moves := b.PseudoLegalMovesInto(pc.bufFor(depth))
	var nodes uint64
	for _, m := range moves {
		if m.IsCastle() && !b.castleLegal(m) {
			continue
		}
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		if bulk && depth == 1 {
			nodes++
		} else {
			nodes += perftRec(b, depth-1, pc, bulk)
		}
		b.UnmakeMove(m, st)
	}
	return nodes
}

// DivideEntry is the per-root-move node count reported by PerftDivide.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// PerftDivide returns the node count below each legal root move at the given
// depth, plus the total. Entries are ordered by (from, to, promotion) so the
// output is stable regardless of generation details.
func PerftDivide(b *Board, depth int) ([]DivideEntry, uint64) {
	if depth <= 0 {
		return nil, 1
	}
	moves := b.LegalMoves()
	entries := make([]DivideEntry, 0, len(moves))
	var total uint64
	for _, m := range moves {
		ok, st := b.MakeMove(m)
		if !ok {
			continue
		}
		cnt := Perft(b, depth-1)
		b.UnmakeMove(m, st)
		entries = append(entries, DivideEntry{Move: m, Nodes: cnt})
		total += cnt
	}
	slices.SortFunc(entries, func(a, c DivideEntry) int {
		return a.Move.orderKey() - c.Move.orderKey()
	})
	return entries, total
}
