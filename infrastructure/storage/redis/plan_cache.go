package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// PlanCache is a Redis-backed implementation of plan.Cache. Plans are
// stored as JSON-encoded action-name lists so entries survive process
// restarts; callers re-resolve names through an action registry.
type PlanCache struct {
	client     *redis.Client
	keyPrefix  string
	defaultTTL time.Duration
	hits       atomic.Int64
	misses     atomic.Int64
}

// NewPlanCache creates a new Redis plan cache with the given configuration.
func NewPlanCache(cfg Config, opts ...ConfigOption) (*PlanCache, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Join(plan.ErrConnectionFailed, err)
	}

	return &PlanCache{
		client:     client,
		keyPrefix:  cfg.KeyPrefix,
		defaultTTL: cfg.DefaultTTL,
	}, nil
}

// NewPlanCacheFromClient creates a plan cache from an existing Redis client.
func NewPlanCacheFromClient(client *redis.Client, keyPrefix string, defaultTTL time.Duration) *PlanCache {
	return &PlanCache{
		client:     client,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
	}
}

// prefixKey adds the key prefix.
func (c *PlanCache) prefixKey(state, goal world.State) string {
	return c.keyPrefix + "plans:" + plan.CacheKey(state, goal)
}

// Get retrieves the cached action names for a state/goal pair.
func (c *PlanCache) Get(ctx context.Context, state, goal world.State) ([]string, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	data, err := c.client.Get(ctx, c.prefixKey(state, goal)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.misses.Add(1)
			return nil, false, nil
		}
		return nil, false, c.wrapError(err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, false, err
	}

	c.hits.Add(1)
	return names, true, nil
}

// Set stores action names for a state/goal pair.
func (c *PlanCache) Set(ctx context.Context, state, goal world.State, names []string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(names)
	if err != nil {
		return err
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	if err := c.client.Set(ctx, c.prefixKey(state, goal), data, ttl).Err(); err != nil {
		return c.wrapError(err)
	}
	return nil
}

// Delete removes the entry for a state/goal pair.
func (c *PlanCache) Delete(ctx context.Context, state, goal world.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := c.client.Del(ctx, c.prefixKey(state, goal)).Err(); err != nil {
		return c.wrapError(err)
	}
	return nil
}

// Clear removes all entries with the cache prefix.
func (c *PlanCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Use SCAN to find all keys with our prefix
	pattern := c.keyPrefix + "plans:*"
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		// Delete in batches of 100
		if len(keys) >= 100 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return c.wrapError(err)
			}
			keys = keys[:0]
		}
	}

	if err := iter.Err(); err != nil {
		return c.wrapError(err)
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return c.wrapError(err)
		}
	}

	return nil
}

// Stats returns cache statistics.
func (c *PlanCache) Stats() plan.Stats {
	return plan.Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		// Size is not tracked for Redis
	}
}

// Close closes the Redis connection.
func (c *PlanCache) Close() error {
	return c.client.Close()
}

// Ping checks the Redis connection.
func (c *PlanCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Client returns the underlying Redis client for advanced operations.
func (c *PlanCache) Client() *redis.Client {
	return c.client
}

// wrapError wraps Redis errors with domain errors.
func (c *PlanCache) wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(plan.ErrOperationTimeout, err)
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.Join(plan.ErrOperationTimeout, err)
	}

	return err
}

// Ensure PlanCache implements plan.Cache and plan.StatsProvider
var (
	_ plan.Cache         = (*PlanCache)(nil)
	_ plan.StatsProvider = (*PlanCache)(nil)
)
