package web

import "github.com/cespare/xxhash"

type cacheEntry struct {
	hash uint64
	used bool
}

// cache remembers the hashes of the last size batches sent, so that
// a repeated batch can be sent as its index instead. Clients keep
// the payloads at the same indexes.
type cache struct {
	cache []cacheEntry
	idx   int
}

func newCache(size int) *cache {
	return &cache{
		cache: make([]cacheEntry, size),
	}
}

func (c *cache) enabled() bool {
	return len(c.cache) > 0
}

// index returns the index of the payload, or -1 if it is not cached.
func (c *cache) index(payload []byte) int {
	hash := xxhash.Sum64(payload)
	for i, e := range c.cache {
		if e.used && e.hash == hash {
			return i
		}
	}

	return -1
}

// add stores the payload, overwriting the oldest entry, and returns
// its index.
func (c *cache) add(payload []byte) int {
	i := c.idx
	c.cache[i] = cacheEntry{hash: xxhash.Sum64(payload), used: true}
	c.idx = (c.idx + 1) % len(c.cache)

	return i
}
