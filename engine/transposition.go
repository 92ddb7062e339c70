package engine

import (
	"sync"
	"unsafe"
)

const (
	clusterSize = 4

	// stripeCount is the number of lock stripes guarding the table. Power of
	// two so the stripe index is a mask of the cluster index.
	stripeCount = 128
)

// PerftTable is a fixed-size transposition table memoizing perft subtree
// counts, keyed by position Zobrist key and remaining depth. The table is
// sized from a megabyte budget and organized in 4-entry clusters. Clusters
// are guarded by striped mutexes so parallel workers can share one table.
//
// The table is a pure memo: probing or skipping it never changes counts.
type PerftTable struct {
	entries      []perftEntry
	clusterCount uint64
	stripes      [stripeCount]sync.Mutex
}

type perftEntry struct {
	hash  uint64
	nodes uint64
	depth int8 // 0 marks an empty slot; stored depths are >= 1
}

// NewPerftTable allocates a table using at most sizeMB megabytes. A non
// positive budget still yields a one-cluster table.
func NewPerftTable(sizeMB int) *PerftTable {
	entrySize := uint64(unsafe.Sizeof(perftEntry{}))
	totalBytes := uint64(0)
	if sizeMB > 0 {
		totalBytes = uint64(sizeMB) * 1024 * 1024
	}
	clusterCount := totalBytes / (entrySize * clusterSize)
	if clusterCount == 0 {
		clusterCount = 1
	}
	return &PerftTable{
		entries:      make([]perftEntry, clusterCount*clusterSize),
		clusterCount: clusterCount,
	}
}

// Probe looks up the subtree count for (hash, depth).
func (t *PerftTable) Probe(hash uint64, depth int) (nodes uint64, found bool) {
	cluster := hash % t.clusterCount
	base := int(cluster * clusterSize)

	mu := &t.stripes[cluster&(stripeCount-1)]
	mu.Lock()
	defer mu.Unlock()

	for i := 0; i < clusterSize; i++ {
		e := &t.entries[base+i]
		if e.depth == int8(depth) && e.hash == hash {
			return e.nodes, true
		}
	}
	return 0, false
}

// Store records the subtree count for (hash, depth). Within a full cluster
// the shallowest entry is evicted, and the new entry is dropped instead when
// it is shallower than everything already present. Deep subtrees are the
// expensive ones to recompute, so they win.
func (t *PerftTable) Store(hash uint64, depth int, nodes uint64) {
	d := int8(depth)
	if d < 1 {
		return
	}
	cluster := hash % t.clusterCount
	base := int(cluster * clusterSize)

	mu := &t.stripes[cluster&(stripeCount-1)]
	mu.Lock()
	defer mu.Unlock()

	targetIdx := -1

	// Prefer refreshing an existing entry for the same key.
	for i := 0; i < clusterSize; i++ {
		e := &t.entries[base+i]
		if e.depth == d && e.hash == hash {
			targetIdx = base + i
			break
		}
	}

	// Next an empty slot.
	if targetIdx == -1 {
		for i := 0; i < clusterSize; i++ {
			if t.entries[base+i].depth == 0 {
				targetIdx = base + i
				break
			}
		}
	}

	// Otherwise evict the shallowest entry, unless the newcomer is shallower.
	if targetIdx == -1 {
		minIdx := base
		minDepth := t.entries[base].depth
		for i := 1; i < clusterSize; i++ {
			if t.entries[base+i].depth < minDepth {
				minDepth = t.entries[base+i].depth
				minIdx = base + i
			}
		}
		if d < minDepth {
			return
		}
		targetIdx = minIdx
	}

	t.entries[targetIdx] = perftEntry{hash: hash, nodes: nodes, depth: d}
}
