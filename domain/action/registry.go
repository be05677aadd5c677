package action

// Registry defines the interface for action registration and lookup.
// This is a repository interface - implementations are in infrastructure.
// List preserves registration order: planners iterate actions in the order
// the registry yields them, and the greedy planner breaks ties by it.
type Registry interface {
	// Register adds an action to the registry.
	Register(action Action) error

	// Get retrieves an action by name.
	Get(name string) (Action, bool)

	// List returns all registered actions in registration order.
	List() []Action

	// Names returns all registered action names in registration order.
	Names() []string

	// Has checks if an action is registered.
	Has(name string) bool

	// Unregister removes an action from the registry.
	Unregister(name string) error
}
