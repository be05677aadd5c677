package planner

import (
	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// DefaultMaxDepth bounds the greedy planner's backtracking search.
const DefaultMaxDepth = 5

// Greedy is a fast, incomplete planner. It first tries to satisfy the goal
// with a single action, then falls back to depth-bounded depth-first
// backtracking in the given action order. The first successful path wins;
// it is not necessarily the cheapest or shortest. Action cost is ignored.
type Greedy struct {
	// MaxDepth bounds the backtracking search. Zero means DefaultMaxDepth.
	MaxDepth int
}

// NewGreedy creates a greedy planner with the default depth bound.
func NewGreedy() *Greedy {
	return &Greedy{MaxDepth: DefaultMaxDepth}
}

// Plan implements Planner.
func (g *Greedy) Plan(state, goal world.State, actions []action.Action) plan.Plan {
	if state.Satisfies(goal) {
		return plan.Empty()
	}

	usable := executable(actions)
	if len(usable) == 0 {
		return plan.Empty()
	}

	// Single-step pass: first action in the given order whose
	// preconditions match and whose effects reach the goal.
	for _, a := range usable {
		if !state.Satisfies(a.Preconditions()) {
			continue
		}
		if state.Apply(a.Effects()).Satisfies(goal) {
			return plan.Of(a)
		}
	}

	maxDepth := g.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	used := make(map[action.Action]bool, len(usable))
	return backtrack(state, goal, usable, used, maxDepth)
}

// backtrack explores action sequences depth-first up to depth steps.
// The used set is keyed by action identity: a descriptor already chosen
// earlier in the current partial sequence is skipped, which prevents naive
// cycles but also makes a plan requiring the same action twice unreachable.
func backtrack(state, goal world.State, actions []action.Action, used map[action.Action]bool, depth int) plan.Plan {
	if depth <= 0 {
		return plan.Empty()
	}

	for _, a := range actions {
		if used[a] {
			continue
		}
		if !state.Satisfies(a.Preconditions()) {
			continue
		}

		next := state.Apply(a.Effects())
		if next.Satisfies(goal) {
			return plan.Of(a)
		}

		used[a] = true
		if rest := backtrack(next, goal, actions, used, depth-1); !rest.IsEmpty() {
			return append(plan.Of(a), rest...)
		}
		delete(used, a)
	}

	return plan.Empty()
}
