// Package planner provides the planning strategies that turn a current
// world state, a goal, and an action set into an ordered plan.
//
// Both strategies are synchronous and run to completion within their
// bounds; neither accepts a cancellation signal. They are pure with
// respect to their inputs except for evaluating each action's CanExecute
// gate, which may read external state owned by the caller. Planners never
// invoke an action's Execute.
package planner

import (
	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Planner selects and orders actions that transform state into one
// satisfying goal. The empty plan is the universal failure signal: no
// qualifying sequence, exhausted budget, and an already-satisfied goal
// all return it. Callers needing to distinguish must test goal
// satisfaction against the initial state themselves.
type Planner interface {
	Plan(state, goal world.State, actions []action.Action) plan.Plan
}

// executable filters actions by their runtime gate. Gate results are taken
// once per planning call; actions failing the gate are excluded from the
// remainder of the call.
func executable(actions []action.Action) []action.Action {
	usable := make([]action.Action, 0, len(actions))
	for _, a := range actions {
		if a.CanExecute() {
			usable = append(usable, a)
		}
	}
	return usable
}
