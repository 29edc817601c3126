package domain

import (
	"sync"
	"time"
)

// CacheEntry records how one structure was retrieved from the cache.
type CacheEntry struct {
	// Bytes is the length of the fetched blob.
	Bytes int
	// DecodeMillis is the wall-clock time spent decoding, in milliseconds.
	DecodeMillis int64
}

// Pair returns the entry as the ordered pair [byteSize, decodeMillis].
func (e CacheEntry) Pair() [2]int64 {
	return [2]int64{int64(e.Bytes), e.DecodeMillis}
}

// CacheInfo maps structure names to retrieval statistics.
// It is safe for concurrent use by independent loading stages.
type CacheInfo struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
	order   []string
}

// NewCacheInfo creates an empty CacheInfo.
func NewCacheInfo() *CacheInfo {
	return &CacheInfo{
		entries: make(map[string]CacheEntry),
	}
}

// Record stores the statistics for a decoded structure, replacing any previous entry.
func (c *CacheInfo) Record(name string, size int, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[name]; !exists {
		c.order = append(c.order, name)
	}
	c.entries[name] = CacheEntry{
		Bytes:        size,
		DecodeMillis: max(elapsed.Milliseconds(), 0),
	}
}

// Get returns the entry recorded under name.
func (c *CacheInfo) Get(name string) (CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[name]
	return e, ok
}

// Len returns the number of recorded structures.
func (c *CacheInfo) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Names returns the recorded structure names in the order they were first recorded.
func (c *CacheInfo) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Snapshot returns a copy of all entries.
func (c *CacheInfo) Snapshot() map[string]CacheEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]CacheEntry, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}
