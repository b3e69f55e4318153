package types

import "sync"

// Number of shard-selector bits. k=5 gives 32 shards for parallel builds;
// k=0 collapses to a single shard for a single-threaded driver (§4.1, §5:
// "a correct single-threaded implementation is acceptable").
const (
	shardBitsParallel = 5
	shardBitsSerial   = 0
)

type cacheShard[K comparable, V any] struct {
	mu   sync.Mutex
	data map[K]V
}

// ShardedCache is a hash-consed lookup table sharded across 2^k
// lock-protected buckets (§4.1). A value's shard is chosen from the high
// bits of its precomputed hash, leaving the low bits free for the
// map's own inner hashing. Each GetOrInsert holds its shard's lock for
// both the lookup and any insertion; callers compute the hash outside
// any lock.
//
// It backs the Type interner (internal/types) and, via the same generic
// type, the layout cache (internal/layout) — both are "hash-consed sets"
// in the sense of §4.1, even though only one is literally a Type table.
type ShardedCache[K comparable, V any] struct {
	shards []cacheShard[K, V]
	mask   uint64
}

// NewShardedCache builds a cache with shardBitsParallel shards when
// parallel is true, or a single shard otherwise.
func NewShardedCache[K comparable, V any](parallel bool) *ShardedCache[K, V] {
	k := shardBitsSerial
	if parallel {
		k = shardBitsParallel
	}
	n := 1 << uint(k)
	c := &ShardedCache[K, V]{
		shards: make([]cacheShard[K, V], n),
		mask:   uint64(n - 1),
	}
	for i := range c.shards {
		c.shards[i].data = make(map[K]V)
	}
	return c
}

func (c *ShardedCache[K, V]) shardFor(h uint64) *cacheShard[K, V] {
	idx := (h >> 57) & c.mask
	return &c.shards[idx]
}

// GetOrInsert looks up key under its precomputed hash h. If absent, it calls
// build() — exactly once, under the shard's lock — and stores the result.
// A thread holds at most one shard lock at a time (§5: locking discipline).
func (c *ShardedCache[K, V]) GetOrInsert(h uint64, key K, build func() V) V {
	s := c.shardFor(h)
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.data[key]; ok {
		return v
	}
	v := build()
	s.data[key] = v
	return v
}

// Len reports the total number of interned entries across all shards.
// Intended for diagnostics/metrics, not the hot path.
func (c *ShardedCache[K, V]) Len() int {
	n := 0
	for i := range c.shards {
		c.shards[i].mu.Lock()
		n += len(c.shards[i].data)
		c.shards[i].mu.Unlock()
	}
	return n
}
