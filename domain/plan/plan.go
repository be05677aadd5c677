// Package plan provides the ordered action sequence produced by planners.
package plan

import "github.com/felixgeelhaar/goap-go/domain/action"

// Plan is an ordered sequence of actions; insertion order is the intended
// execution order. The empty plan is the canonical no-plan-found result and
// is observably identical to a goal that was already satisfied.
type Plan []action.Action

// Empty returns the canonical no-plan result.
func Empty() Plan {
	return Plan{}
}

// Of builds a plan from the given actions, in execution order.
func Of(actions ...action.Action) Plan {
	return Plan(actions)
}

// IsEmpty reports whether the plan contains no actions.
func (p Plan) IsEmpty() bool {
	return len(p) == 0
}

// Len returns the number of actions in the plan.
func (p Plan) Len() int {
	return len(p)
}

// TotalCost sums the costs of all actions in the plan.
func (p Plan) TotalCost() float64 {
	var total float64
	for _, a := range p {
		total += a.Cost()
	}
	return total
}

// Names returns the action names in execution order.
func (p Plan) Names() []string {
	names := make([]string, 0, len(p))
	for _, a := range p {
		names = append(names, a.Name())
	}
	return names
}
