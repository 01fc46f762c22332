package stats

import (
	"sync"
	"time"

	"tradinghub/internal/domain"
)

// Cache memoizes computed records keyed by (strategy, last ledger
// timestamp). A ledger that has grown since the cached computation produces
// a different key, so a stale entry is simply a miss; entries are never
// served past their ledger version.
type Cache struct {
	mu   sync.RWMutex
	data map[cacheKey]*domain.StatsRecord
}

type cacheKey struct {
	strategy string
	lastTS   time.Time
}

// NewCache creates an empty record cache.
func NewCache() *Cache {
	return &Cache{data: make(map[cacheKey]*domain.StatsRecord)}
}

// Get returns the cached record for the strategy at this ledger version.
func (c *Cache) Get(strategy string, lastTS time.Time) (*domain.StatsRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.data[cacheKey{strategy, lastTS}]
	return rec, ok
}

// Put stores a computed record, evicting any prior version for the strategy.
func (c *Cache) Put(strategy string, lastTS time.Time, rec *domain.StatsRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if k.strategy == strategy && !k.lastTS.Equal(lastTS) {
			delete(c.data, k)
		}
	}
	c.data[cacheKey{strategy, lastTS}] = rec
}
