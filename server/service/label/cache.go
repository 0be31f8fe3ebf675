package label

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes resolved prefixes per subject. Entries have no TTL:
// validity is maintained entirely by explicit invalidation on writes.
//
// Concurrency discipline: the hit path takes only a read lock. Misses for
// the same subject coalesce onto a single resolver call via singleflight,
// so at most one recomputation per subject is in flight and backend I/O
// never happens under the map lock. A generation counter per subject (plus
// a cache-wide epoch for Purge) keeps an in-flight computation from
// publishing a value older than a write that completed meanwhile.
type Cache struct {
	resolver *Resolver

	mu      sync.RWMutex
	entries map[string]string
	gens    map[string]uint64
	epoch   uint64

	group singleflight.Group
}

// NewCache creates an empty cache over the resolver.
func NewCache(resolver *Resolver) *Cache {
	return &Cache{
		resolver: resolver,
		entries:  make(map[string]string),
		gens:     make(map[string]uint64),
	}
}

// Get returns the cached prefix for the subject, resolving on miss.
func (c *Cache) Get(ctx context.Context, subjectID string) (string, error) {
	c.mu.RLock()
	if prefix, ok := c.entries[subjectID]; ok {
		c.mu.RUnlock()
		return prefix, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(subjectID, func() (any, error) {
		c.mu.RLock()
		if prefix, ok := c.entries[subjectID]; ok {
			c.mu.RUnlock()
			return prefix, nil
		}
		gen, epoch := c.gens[subjectID], c.epoch
		c.mu.RUnlock()

		prefix, err := c.resolver.Resolve(ctx, subjectID)
		if err != nil {
			return "", err
		}

		c.mu.Lock()
		if c.gens[subjectID] == gen && c.epoch == epoch {
			c.entries[subjectID] = prefix
		}
		c.mu.Unlock()
		return prefix, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the subject's entry; the next Get recomputes.
func (c *Cache) Invalidate(subjectID string) {
	c.mu.Lock()
	delete(c.entries, subjectID)
	c.gens[subjectID]++
	c.mu.Unlock()
	c.group.Forget(subjectID)
}

// ForceRefresh invalidates and recomputes, returning the fresh prefix.
func (c *Cache) ForceRefresh(ctx context.Context, subjectID string) (string, error) {
	c.Invalidate(subjectID)
	return c.Get(ctx, subjectID)
}

// Purge drops every entry. Group mutations affect an unknown set of
// subjects, so correctness over micro-optimization: the whole cache goes.
func (c *Cache) Purge() {
	c.mu.Lock()
	c.entries = make(map[string]string)
	c.gens = make(map[string]uint64)
	c.epoch++
	c.mu.Unlock()
}

// Size returns the number of cached entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
