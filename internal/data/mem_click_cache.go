package data

import (
	"context"
	"sync"
	"time"
	"traceable-link/internal/metrics"
)

// MemClickCache remembers click fingerprints in process memory until their window expires.
type MemClickCache struct {
	entries map[string]time.Time
	mutex   sync.Mutex
	now     func() time.Time
}

func NewMemClickCache() *MemClickCache {
	return &MemClickCache{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// MarkClick records key for window and reports whether this is the first sighting inside it.
func (c *MemClickCache) MarkClick(_ context.Context, key string, window time.Duration) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.WithLabelValues(metrics.CacheTypeMemory).Observe(time.Since(start).Seconds())
	}()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	if expiry, exists := c.entries[key]; exists && now.Before(expiry) {
		return false, nil
	}

	c.entries[key] = now.Add(window)
	metrics.CacheItems.WithLabelValues(metrics.CacheTypeMemory).Set(float64(len(c.entries)))

	return true, nil
}

// Sweep drops expired entries and returns how many were removed.
func (c *MemClickCache) Sweep() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	removed := 0
	for key, expiry := range c.entries {
		if !now.Before(expiry) {
			delete(c.entries, key)
			removed++
		}
	}

	metrics.CacheItems.WithLabelValues(metrics.CacheTypeMemory).Set(float64(len(c.entries)))
	return removed
}

// Size returns the current number of elements in the cache
func (c *MemClickCache) Size() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries)
}
