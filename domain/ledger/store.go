package ledger

import "context"

// Store persists ledger entries beyond the lifetime of a run.
type Store interface {
	// Append persists one or more entries atomically.
	Append(ctx context.Context, entries ...Entry) error

	// List returns all persisted entries for a run in append order.
	List(ctx context.Context, runID string) ([]Entry, error)

	// Runs returns the IDs of all runs with persisted entries.
	Runs(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}
