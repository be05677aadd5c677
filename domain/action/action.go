// Package action provides the action descriptor model for the planning core.
package action

import (
	"context"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// DefaultCost is the cost assigned to actions that do not declare one.
const DefaultCost = 1.0

// Action represents a named unit of work the planners can sequence.
// Planners read preconditions, effects, cost, and the runtime gate; they
// never invoke Execute. Execution belongs to the caller's execution layer.
type Action interface {
	// Name returns the display identifier. Names are not required unique.
	Name() string

	// Preconditions returns the facts that must hold before the action
	// may be chosen.
	Preconditions() world.State

	// Effects returns the facts the action's selection is assumed to set.
	Effects() world.State

	// Cost returns the planning cost, used by the cost-aware planner.
	Cost() float64

	// CanExecute is the runtime gate evaluated at planning time. Actions
	// failing the gate are excluded from a planning call regardless of
	// world-state facts.
	CanExecute() bool

	// Execute performs the real side effect. Only the execution layer
	// calls it, typically re-checking CanExecute first since world state
	// may have changed since planning.
	Execute(ctx context.Context) error
}

// Gate is the runtime executability check attached to an action.
type Gate func() bool

// Handler is the function signature for action execution.
type Handler func(ctx context.Context) error

// Definition is a concrete implementation of Action.
type Definition struct {
	name          string
	preconditions world.State
	effects       world.State
	cost          float64
	gate          Gate
	handler       Handler
}

// Name returns the action name.
func (d *Definition) Name() string {
	return d.name
}

// Preconditions returns the action preconditions.
func (d *Definition) Preconditions() world.State {
	return d.preconditions
}

// Effects returns the action effects.
func (d *Definition) Effects() world.State {
	return d.effects
}

// Cost returns the action cost.
func (d *Definition) Cost() float64 {
	return d.cost
}

// CanExecute evaluates the runtime gate. Actions without a gate are
// always executable.
func (d *Definition) CanExecute() bool {
	if d.gate == nil {
		return true
	}
	return d.gate()
}

// Execute runs the action handler.
func (d *Definition) Execute(ctx context.Context) error {
	if d.handler == nil {
		return ErrNoHandler
	}
	return d.handler(ctx)
}
