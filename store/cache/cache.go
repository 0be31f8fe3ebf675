// Package cache provides a lightweight in-memory cache with TTL support.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Config holds the cache configuration.
type Config struct {
	// DefaultTTL is the TTL applied by Set. Zero means entries never expire.
	DefaultTTL time.Duration
	// CleanupInterval is how often the janitor removes expired entries.
	// Zero disables the janitor; expired entries are then dropped on read.
	CleanupInterval time.Duration
	// MaxItems bounds the cache. When full, Set drops the entry closest to
	// expiry. Zero means unbounded.
	MaxItems int
	// OnEviction is called after an entry is removed by the janitor or by
	// capacity eviction. May be nil.
	OnEviction func(key string, value any)
}

type item struct {
	value     any
	expiresAt time.Time // zero means no expiry
}

func (i *item) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// Cache is a concurrency-safe key/value cache.
type Cache struct {
	config Config
	data   sync.Map
	size   atomic.Int64

	stopOnce sync.Once
	stop     chan struct{}
}

// New creates a cache and starts its janitor when a cleanup interval is set.
func New(config Config) *Cache {
	c := &Cache{
		config: config,
		stop:   make(chan struct{}),
	}
	if config.CleanupInterval > 0 {
		go c.janitor()
	}
	return c
}

// Get returns the value for key, treating expired entries as absent.
func (c *Cache) Get(_ context.Context, key string) (any, bool) {
	v, ok := c.data.Load(key)
	if !ok {
		return nil, false
	}
	it := v.(*item)
	if it.expired(time.Now()) {
		c.remove(key)
		return nil, false
	}
	return it.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	c.SetWithTTL(ctx, key, value, c.config.DefaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	if c.config.MaxItems > 0 && int(c.size.Load()) >= c.config.MaxItems {
		if _, exists := c.data.Load(key); !exists {
			c.evictOne()
		}
	}
	if _, loaded := c.data.Swap(key, &item{value: value, expiresAt: expiresAt}); !loaded {
		c.size.Add(1)
	}
}

// Delete removes key from the cache.
func (c *Cache) Delete(_ context.Context, key string) {
	c.remove(key)
}

// Clear removes all entries.
func (c *Cache) Clear(_ context.Context) {
	c.data.Range(func(key, _ any) bool {
		c.remove(key.(string))
		return true
	})
}

// Size returns the number of entries, including not-yet-collected expired ones.
func (c *Cache) Size() int64 {
	return c.size.Load()
}

// Close stops the janitor.
func (c *Cache) Close() error {
	c.stopOnce.Do(func() { close(c.stop) })
	return nil
}

func (c *Cache) remove(key string) {
	if v, loaded := c.data.LoadAndDelete(key); loaded {
		c.size.Add(-1)
		if c.config.OnEviction != nil {
			c.config.OnEviction(key, v.(*item).value)
		}
	}
}

// evictOne drops the entry closest to expiry, preferring already-expired ones.
func (c *Cache) evictOne() {
	var victim string
	var victimExpiry time.Time
	found := false
	c.data.Range(func(key, value any) bool {
		it := value.(*item)
		if it.expiresAt.IsZero() {
			if !found {
				victim, found = key.(string), true
			}
			return true
		}
		if !found || victimExpiry.IsZero() || it.expiresAt.Before(victimExpiry) {
			victim, victimExpiry, found = key.(string), it.expiresAt, true
		}
		return true
	})
	if found {
		c.remove(victim)
	}
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.data.Range(func(key, value any) bool {
				if value.(*item).expired(now) {
					c.remove(key.(string))
				}
				return true
			})
		}
	}
}
