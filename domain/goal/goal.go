// Package goal provides the goal model and goal selection for the agent loop.
package goal

import "github.com/felixgeelhaar/goap-go/domain/world"

// Goal is a named desired world state with a selection priority.
type Goal struct {
	// Name identifies the goal for display and ledger records.
	Name string `json:"name" yaml:"name"`

	// Desired is the partial world state the goal requires.
	Desired world.State `json:"desired" yaml:"desired"`

	// Priority orders goal selection; higher wins.
	Priority float64 `json:"priority" yaml:"priority"`
}

// IsSatisfied reports whether the goal holds in the given state.
func (g Goal) IsSatisfied(state world.State) bool {
	return state.Satisfies(g.Desired)
}

// Selector chooses which goal the agent pursues next.
type Selector interface {
	// Select returns the goal to pursue given the current world state,
	// or false if every goal is already satisfied.
	Select(state world.State, goals []Goal) (Goal, bool)
}

// PrioritySelector selects the highest-priority unsatisfied goal. Goals of
// equal priority resolve to the earliest in the given order.
type PrioritySelector struct{}

// NewPrioritySelector creates a priority-based goal selector.
func NewPrioritySelector() *PrioritySelector {
	return &PrioritySelector{}
}

// Select implements Selector.
func (s *PrioritySelector) Select(state world.State, goals []Goal) (Goal, bool) {
	var best Goal
	found := false
	for _, g := range goals {
		if g.IsSatisfied(state) {
			continue
		}
		if !found || g.Priority > best.Priority {
			best = g
			found = true
		}
	}
	return best, found
}
