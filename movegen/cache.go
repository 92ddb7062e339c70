package movegen

// MoveCache memoizes per-square pseudo-legal move lists. A cached list is
// returned only when the querying position's Zobrist key matches the key the
// list was stored under, so any board change invalidates hits implicitly.
// The Zobrist key covers piece placement, side to move, castling rights and
// the en passant file, which is exactly the state the move list depends on.
//
// Perft and the legality filter never consult the cache. It serves callers
// that repeatedly query moves from individual squares of a slowly changing
// position, such as interactive drivers.
type MoveCache struct {
	entries map[moveCacheKey][]Move
}

type moveCacheKey struct {
	position uint64
	from     Square
}

// moveCacheLimit caps the entry count; the cache resets wholesale when full.
const moveCacheLimit = 1 << 14

// NewMoveCache returns an empty cache.
func NewMoveCache() *MoveCache {
	return &MoveCache{entries: make(map[moveCacheKey][]Move)}
}

// MovesFrom returns the pseudo-legal moves of the piece standing on the given
// square. The returned slice is shared with the cache and must not be
// modified by the caller.
func (c *MoveCache) MovesFrom(b *Board, from Square) []Move {
	key := moveCacheKey{position: b.Hash(), from: from}
	if cached, ok := c.entries[key]; ok {
		return cached
	}

	var buf [maxMoves]Move
	all := b.PseudoLegalMovesInto(buf[:0])
	var out []Move
	for _, m := range all {
		if m.From() == from {
			out = append(out, m)
		}
	}

	if len(c.entries) >= moveCacheLimit {
		c.entries = make(map[moveCacheKey][]Move)
	}
	c.entries[key] = out
	return out
}

// Reset discards all cached entries.
func (c *MoveCache) Reset() {
	c.entries = make(map[moveCacheKey][]Move)
}

// Len reports the number of cached entries.
func (c *MoveCache) Len() int { return len(c.entries) }
