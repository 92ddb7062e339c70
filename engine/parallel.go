package engine

import (
	"runtime"
	"slices"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"chess-perft/movegen"
)

// ParallelPerft counts leaf nodes at the given depth, splitting the root
// moves across workers. Results are identical to movegen.Perft for any
// worker count. workers <= 0 selects runtime.NumCPU().
func ParallelPerft(b *movegen.Board, depth, workers int) uint64 {
	return ParallelPerftTable(b, depth, workers, nil)
}

// ParallelPerftTable is ParallelPerft with an optional shared subtree memo.
// A nil table disables memoization.
func ParallelPerftTable(b *movegen.Board, depth, workers int, table *PerftTable) uint64 {
	if depth <= 0 {
		return 1
	}
	roots := b.LegalMoves()
	if depth == 1 {
		return uint64(len(roots))
	}

	var total atomic.Uint64
	g := new(errgroup.Group)
	g.SetLimit(workerCount(workers))
	for _, m := range roots {
		m := m
		g.Go(func() error {
			// Each worker owns a clone and its own buffers; the shared
			// table is the only state crossing goroutines.
			child := b.Clone()
			ok, _ := child.MakeMove(m)
			if !ok {
				return nil
			}
			w := perftWorker{table: table}
			total.Add(w.count(child, depth-1))
			return nil
		})
	}
	_ = g.Wait()
	return total.Load()
}

// ParallelDivide returns per-root-move node counts plus the total, computed
// with the same root split as ParallelPerftTable. Entries are ordered by
// (from, to, promotion) regardless of worker completion order.
func ParallelDivide(b *movegen.Board, depth, workers int, table *PerftTable) ([]movegen.DivideEntry, uint64) {
	if depth <= 0 {
		return nil, 1
	}
	roots := b.LegalMoves()

	entries := make([]movegen.DivideEntry, len(roots))
	g := new(errgroup.Group)
	g.SetLimit(workerCount(workers))
	for i, m := range roots {
		i, m := i, m
		g.Go(func() error {
			child := b.Clone()
			ok, _ := child.MakeMove(m)
			if !ok {
				return nil
			}
			w := perftWorker{table: table}
			entries[i] = movegen.DivideEntry{Move: m, Nodes: w.count(child, depth-1)}
			return nil
		})
	}
	_ = g.Wait()

	slices.SortFunc(entries, func(a, c movegen.DivideEntry) int {
		return divideKey(a.Move) - divideKey(c.Move)
	})
	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	return entries, total
}

func divideKey(m movegen.Move) int {
	return int(m.From())<<10 | int(m.To())<<4 | int(m.PromotionPiece().Type())
}

func workerCount(workers int) int {
	if workers <= 0 {
		return runtime.NumCPU()
	}
	return workers
}

// perftWorker is the per-goroutine recursion state: reusable per-depth move
// buffers plus the optional shared memo table.
type perftWorker struct {
	bufs  [][]movegen.Move
	table *PerftTable
}

func (w *perftWorker) bufFor(depth int) []movegen.Move {
	for depth >= len(w.bufs) {
		w.bufs = append(w.bufs, nil)
	}
	buf := w.bufs[depth]
	if buf == nil {
		buf = make([]movegen.Move, 0, 256)
		w.bufs[depth] = buf
	}
	return buf[:0]
}

func (w *perftWorker) count(b *movegen.Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	if w.table != nil && depth >= 2 {
		if nodes, found := w.table.Probe(b.Hash(), depth); found {
			return nodes
		}
	}

	moves := b.LegalMovesInto(w.bufFor(depth))
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		if ok, st := b.MakeMove(m); ok {
			nodes += w.count(b, depth-1)
			b.UnmakeMove(m, st)
		}
	}

	if w.table != nil && depth >= 2 {
		w.table.Store(b.Hash(), depth, nodes)
	}
	return nodes
}
