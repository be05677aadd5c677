package memory

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// cacheEntry holds cached action names with expiration.
type cacheEntry struct {
	names     []string
	expiresAt time.Time
}

// isExpired checks if the entry has expired.
func (e *cacheEntry) isExpired() bool {
	if e.expiresAt.IsZero() {
		return false
	}
	return time.Now().After(e.expiresAt)
}

// PlanCache is an in-memory implementation of plan.Cache with TTL-based
// expiration and size-bounded eviction.
type PlanCache struct {
	entries map[string]*cacheEntry
	maxSize int
	mu      sync.RWMutex
	hits    int64
	misses  int64
}

// PlanCacheOption configures the cache.
type PlanCacheOption func(*PlanCache)

// WithMaxSize sets the maximum number of entries.
func WithMaxSize(size int) PlanCacheOption {
	return func(c *PlanCache) {
		c.maxSize = size
	}
}

// NewPlanCache creates a new in-memory plan cache.
func NewPlanCache(opts ...PlanCacheOption) *PlanCache {
	c := &PlanCache{
		entries: make(map[string]*cacheEntry),
		maxSize: 1000, // Default max entries
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves the cached action names for a state/goal pair.
func (c *PlanCache) Get(ctx context.Context, state, goal world.State) ([]string, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	key := plan.CacheKey(state, goal)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false, nil
	}

	if entry.isExpired() {
		delete(c.entries, key)
		c.misses++
		return nil, false, nil
	}

	c.hits++
	names := make([]string, len(entry.names))
	copy(names, entry.names)
	return names, true, nil
}

// Set stores action names for a state/goal pair.
func (c *PlanCache) Set(ctx context.Context, state, goal world.State, names []string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := plan.CacheKey(state, goal)

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	stored := make([]string, len(names))
	copy(stored, names)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOne()
	}

	c.entries[key] = &cacheEntry{
		names:     stored,
		expiresAt: expiresAt,
	}
	return nil
}

// Delete removes the entry for a state/goal pair.
func (c *PlanCache) Delete(ctx context.Context, state, goal world.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, plan.CacheKey(state, goal))
	return nil
}

// Clear removes all entries.
func (c *PlanCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
	return nil
}

// Stats returns cache statistics.
func (c *PlanCache) Stats() plan.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return plan.Stats{
		Hits:   c.hits,
		Misses: c.misses,
		Size:   len(c.entries),
	}
}

// evictOne removes an expired entry if one exists, otherwise an
// arbitrary entry. Caller must hold the write lock.
func (c *PlanCache) evictOne() {
	for key, entry := range c.entries {
		if entry.isExpired() {
			delete(c.entries, key)
			return
		}
	}
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

// Ensure PlanCache implements plan.Cache and plan.StatsProvider
var (
	_ plan.Cache         = (*PlanCache)(nil)
	_ plan.StatsProvider = (*PlanCache)(nil)
)
