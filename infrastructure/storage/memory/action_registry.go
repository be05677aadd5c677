// Package memory provides in-memory storage implementations.
package memory

import (
	"sync"

	"github.com/felixgeelhaar/goap-go/domain/action"
)

// ActionRegistry is an in-memory implementation of action.Registry.
// List returns actions in registration order, which planners rely on
// for deterministic tie-breaking.
type ActionRegistry struct {
	byName map[string]action.Action
	order  []action.Action
	mu     sync.RWMutex
}

// NewActionRegistry creates a new in-memory action registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{
		byName: make(map[string]action.Action),
	}
}

// Register adds an action to the registry.
func (r *ActionRegistry) Register(a action.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[a.Name()]; exists {
		return action.ErrActionExists
	}

	r.byName[a.Name()] = a
	r.order = append(r.order, a)
	return nil
}

// Get retrieves an action by name.
func (r *ActionRegistry) Get(name string) (action.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byName[name]
	return a, ok
}

// List returns all registered actions in registration order.
func (r *ActionRegistry) List() []action.Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]action.Action, len(r.order))
	copy(out, r.order)
	return out
}

// Names returns all registered action names in registration order.
func (r *ActionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.order))
	for _, a := range r.order {
		names = append(names, a.Name())
	}
	return names
}

// Has checks if an action is registered.
func (r *ActionRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[name]
	return ok
}

// Unregister removes an action from the registry.
func (r *ActionRegistry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; !exists {
		return action.ErrActionNotFound
	}

	delete(r.byName, name)
	for i, a := range r.order {
		if a.Name() == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of registered actions.
func (r *ActionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Resolve maps a list of action names back to actions. The second
// return is false if any name is not registered.
func (r *ActionRegistry) Resolve(names []string) ([]action.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actions := make([]action.Action, 0, len(names))
	for _, name := range names {
		a, ok := r.byName[name]
		if !ok {
			return nil, false
		}
		actions = append(actions, a)
	}
	return actions, true
}

// Ensure ActionRegistry implements action.Registry
var _ action.Registry = (*ActionRegistry)(nil)
