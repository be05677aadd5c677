package agent

import "context"

// Store persists agent runs.
type Store interface {
	// Save persists a run, overwriting any existing run with the same ID.
	Save(ctx context.Context, run *Run) error

	// Get retrieves a run by ID.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns all stored runs.
	List(ctx context.Context) ([]*Run, error)

	// Delete removes a run by ID.
	Delete(ctx context.Context, id string) error
}
