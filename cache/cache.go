// ABOUTME: In-memory cache with TTL-based expiration
// ABOUTME: Thread-safe generic get-or-create cache using sync.Map with sliding expiry

package cache

import (
	"log/slog"
	"sync"
	"time"
)

type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache holds values of type V for a fixed TTL. Entries fetched with
// GetOrCreate have their TTL refreshed, so only idle keys expire.
type Cache[V any] struct {
	store sync.Map
	ttl   time.Duration
	mu    sync.Mutex // serializes GetOrCreate
	stop  chan struct{}
	once  sync.Once
}

// New creates a cache and starts a cleanup goroutine that runs until Close
func New[V any](ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go c.startCleanup(cleanupInterval(ttl))
	return c
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return zero, false
	}

	e := val.(entry[V])
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return zero, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

// GetOrCreate returns the live value for key, creating it with create when
// absent or expired. Either way the entry's TTL restarts.
func (c *Cache[V]) GetOrCreate(key string, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.Get(key)
	if !ok {
		value = create()
	}
	c.store.Store(key, entry[V]{data: value, expiresAt: time.Now().Add(c.ttl)})
	return value
}

// Close stops the cleanup goroutine
func (c *Cache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache[V]) sweep(now time.Time) {
	c.store.Range(func(key, val any) bool {
		if now.After(val.(entry[V]).expiresAt) {
			c.store.Delete(key)
		}
		return true
	})
}

func (c *Cache[V]) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.sweep(now)
		}
	}
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl > 0 && ttl < time.Minute {
		return ttl
	}
	return time.Minute
}
