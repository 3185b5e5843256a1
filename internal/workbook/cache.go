package workbook

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Cache holds the most recently loaded workbook for a TTL. A Service reads a
// single source, so one slot is enough; storing under a new key replaces it.
type Cache struct {
	mu     sync.RWMutex
	key    string
	entry  *cacheEntry
	ttl    time.Duration
	clock  clockwork.Clock
	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	wb       *Workbook
	loadedAt time.Time
}

// CacheStats contains cache performance statistics.
type CacheStats struct {
	Entries int     `json:"entries"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// NewCache creates a Cache that keeps a workbook for ttl.
// A zero ttl never expires the entry. A nil clock uses the real clock.
func NewCache(ttl time.Duration, clock clockwork.Clock) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{ttl: ttl, clock: clock}
}

// Get returns the cached workbook for key, or nil on miss or expiration.
func (c *Cache) Get(key string) *Workbook {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil || c.key != key {
		c.misses.Add(1)
		return nil
	}

	if c.ttl > 0 && c.clock.Since(c.entry.loadedAt) > c.ttl {
		c.entry = nil
		c.key = ""
		c.misses.Add(1)
		return nil
	}

	c.hits.Add(1)
	return c.entry.wb
}

// Put stores wb under key, replacing whatever was cached.
func (c *Cache) Put(key string, wb *Workbook) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = key
	c.entry = &cacheEntry{wb: wb, loadedAt: c.clock.Now()}
}

// Invalidate drops the entry if it is stored under key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry != nil && c.key == key {
		c.entry = nil
		c.key = ""
	}
}

// Stats returns cache performance statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	var entries int
	if c.entry != nil {
		entries = 1
	}
	c.mu.RUnlock()

	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStats{
		Entries: entries,
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
	}
}
