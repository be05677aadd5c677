package plan

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Cache errors.
var (
	ErrInvalidKey       = errors.New("cache: invalid key")
	ErrConnectionFailed = errors.New("cache: connection failed")
	ErrOperationTimeout = errors.New("cache: operation timeout")
)

// Cache stores computed plans keyed by the initial state and goal they
// were computed for. Entries hold action names rather than actions so
// implementations can serialize them; callers resolve names back through
// an action registry on retrieval.
type Cache interface {
	// Get returns the cached action names for the state/goal pair.
	// The second return is false on a miss.
	Get(ctx context.Context, state, goal world.State) ([]string, bool, error)

	// Set stores the action names for the state/goal pair.
	Set(ctx context.Context, state, goal world.State, names []string, ttl time.Duration) error

	// Delete removes the entry for the state/goal pair.
	Delete(ctx context.Context, state, goal world.State) error

	// Clear removes all entries.
	Clear(ctx context.Context) error
}

// Stats holds cache hit/miss counters.
type Stats struct {
	Hits   int64
	Misses int64
	Size   int
}

// StatsProvider is implemented by caches that track statistics.
type StatsProvider interface {
	Stats() Stats
}

// CacheKey derives a deterministic cache key from a state/goal pair.
// Two equal state/goal pairs always produce the same key.
func CacheKey(state, goal world.State) string {
	return state.Canonical() + "|" + goal.Canonical()
}
