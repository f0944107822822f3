package services

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

// DefaultPathCacheCapacity is the slot count used when no capacity is
// configured.
const DefaultPathCacheCapacity = 1024

// PathCache remembers the last N distinct path resolutions as a
// fixed-capacity ring. Eviction is FIFO by insertion order: a hit does not
// refresh an entry, so a hot path that is looked up but never re-inserted
// is still displaced once enough newer paths arrive. Each cache belongs to
// one volume handle; two volumes never share a cache.
//
// Thread-safe: lookups run concurrently under a read lock, Add is
// exclusive.
type PathCache struct {
	mu    sync.RWMutex
	slots []pathCacheSlot

	// head indexes the most recently inserted slot; insertion walks
	// backwards through the ring so a forward scan from head visits
	// entries newest first and reaches never-populated slots last.
	head int

	hits   atomic.Uint64
	misses atomic.Uint64
}

type pathCacheSlot struct {
	populated bool
	path      string
	key       types.CatalogKey
	record    types.CatalogRecord
}

// NewPathCache creates a cache with the given slot count; a non-positive
// capacity selects DefaultPathCacheCapacity. Capacity is fixed for the
// life of the cache.
func NewPathCache(capacity int) *PathCache {
	if capacity <= 0 {
		capacity = DefaultPathCacheCapacity
	}
	return &PathCache{slots: make([]pathCacheSlot, capacity)}
}

// Capacity returns the fixed slot count.
func (c *PathCache) Capacity() int { return len(c.slots) }

// Lookup scans for an exact path match, newest entry first, stopping at
// the first never-populated slot or after a full revolution. It never
// fails; a miss only reports "not cached".
func (c *PathCache) Lookup(path string) (types.CatalogKey, types.CatalogRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := len(c.slots)
	for i := 0; i < n; i++ {
		slot := &c.slots[(c.head+i)%n]
		if !slot.populated {
			break
		}
		if slot.path == path {
			c.hits.Add(1)
			return slot.key, slot.record, true
		}
	}
	c.misses.Add(1)
	return types.CatalogKey{}, types.CatalogRecord{}, false
}

// Add records a resolution, overwriting the oldest slot and making it the
// new scan start. The path string is copied; cache memory never aliases
// caller buffers.
func (c *PathCache) Add(path string, key types.CatalogKey, record types.CatalogRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.slots)
	tail := (c.head - 1 + n) % n
	c.slots[tail] = pathCacheSlot{
		populated: true,
		path:      strings.Clone(path),
		key:       key,
		record:    record,
	}
	c.head = tail
}

// Len returns the number of populated slots.
func (c *PathCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	count := 0
	for i := range c.slots {
		if c.slots[i].populated {
			count++
		}
	}
	return count
}

// PathCacheStats reports cache occupancy and effectiveness.
type PathCacheStats struct {
	Capacity int
	Entries  int
	Hits     uint64
	Misses   uint64
}

// Stats returns a snapshot of the cache counters.
func (c *PathCache) Stats() PathCacheStats {
	return PathCacheStats{
		Capacity: c.Capacity(),
		Entries:  c.Len(),
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
	}
}
