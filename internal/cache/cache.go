// Package cache provides a small TTL cache for resolved share snapshots.
// Shared links are read-heavy and immutable once published, so repeated
// resolves should not hit the storage layer.
package cache

import (
	"sync"
	"time"

	"github.com/tlsguqwn-ship-it/rising-report/internal/models"
)

// Snapshot holds one cached published report.
type Snapshot struct {
	Report      models.Report
	Options     models.ShareOptions
	PublishedAt string
}

// entry wraps a cached snapshot with expiry and insertion order tracking.
type entry struct {
	snap      *Snapshot
	expiry    time.Time
	insertIdx int64
}

// SnapshotCache caches resolved share snapshots by share id.
// Thread-safe with sync.RWMutex.
type SnapshotCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64
}

// New creates a new SnapshotCache with the given TTL and max entry count.
func New(ttl time.Duration, maxEntries int) *SnapshotCache {
	return &SnapshotCache{
		items:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get returns a cached snapshot if found and not expired.
func (c *SnapshotCache) Get(id string) (*Snapshot, bool) {
	c.mu.RLock()
	e, ok := c.items[id]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiry) {
		// Expired: remove lazily
		c.mu.Lock()
		if e2, ok2 := c.items[id]; ok2 && time.Now().After(e2.expiry) {
			delete(c.items, id)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.snap, true
}

// Set stores a snapshot in the cache. Evicts the oldest entry if at capacity.
func (c *SnapshotCache) Set(id string, snap *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{
		snap:      snap,
		expiry:    time.Now().Add(c.ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	if _, exists := c.items[id]; exists {
		c.items[id] = e
		return
	}

	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[id] = e
}

// evictOldest removes the entry with the lowest insertIdx. Must be called with mu held.
func (c *SnapshotCache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1
	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

// Len returns the number of cached entries.
func (c *SnapshotCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
