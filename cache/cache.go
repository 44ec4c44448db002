// ABOUTME: In-memory cache with TTL-based expiration backed by ristretto
// ABOUTME: Memoizes API results keyed by normalized input; bounded by entry count

package cache

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto"
)

type Cache struct {
	store *ristretto.Cache
	ttl   time.Duration
}

// Stats reports cache effectiveness since creation.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Ratio   float64 `json:"hit_ratio"`
	Entries uint64  `json:"entries"`
}

// New creates a cache holding at most maxEntries items for ttl each.
func New(ttl time.Duration, maxEntries int) (*Cache, error) {
	maxCost := int64(max(1, maxEntries))

	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        maxCost * 10, // ~10 counters per entry for admission accuracy
		MaxCost:            maxCost,
		BufferItems:        64,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating cache: %w", err)
	}

	return &Cache{store: store, ttl: ttl}, nil
}

func (c *Cache) Get(key string) (interface{}, bool) {
	val, ok := c.store.Get(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}

	slog.Debug("Cache hit", "key", key)
	return val, true
}

// Set stores value with the default TTL. It blocks until the value is
// visible to Get.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if !c.store.SetWithTTL(key, value, 1, ttl) {
		slog.Debug("Cache set dropped", "key", key)
		return
	}
	c.store.Wait()
	slog.Debug("Cache set", "key", key, "ttl", ttl)
}

func (c *Cache) Clear(key string) {
	c.store.Del(key)
}

// Stats returns hit/miss counters.
func (c *Cache) Stats() Stats {
	m := c.store.Metrics
	return Stats{
		Hits:    m.Hits(),
		Misses:  m.Misses(),
		Ratio:   m.Ratio(),
		Entries: m.KeysAdded() - m.KeysEvicted(),
	}
}

// TTL returns the default entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Close stops the cache's background goroutines.
func (c *Cache) Close() {
	c.store.Close()
}
