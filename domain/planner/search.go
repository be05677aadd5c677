package planner

import (
	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// DefaultMaxIterations bounds the cost-aware planner's search loop.
const DefaultMaxIterations = 1000

// Search is an informed best-first planner over fact-state nodes. It
// returns a minimum-cost plan within its iteration budget, using the
// unsatisfied-goal-count heuristic. The heuristic is intentionally cheap
// and not admissible in every action-cost configuration.
type Search struct {
	// MaxIterations bounds the search loop. Zero means DefaultMaxIterations.
	MaxIterations int
}

// NewSearch creates a cost-aware planner with the default budget.
func NewSearch() *Search {
	return &Search{MaxIterations: DefaultMaxIterations}
}

// node is one entry in the search tree. Parent back-references root the
// tree at the initial state; nodes live only for the duration of one
// planning call.
type node struct {
	state       world.State
	action      action.Action
	parent      *node
	runningCost float64
	heuristic   int
}

// Plan implements Planner.
func (s *Search) Plan(state, goal world.State, actions []action.Action) plan.Plan {
	if state.Satisfies(goal) {
		return plan.Empty()
	}

	maxIterations := s.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	frontier := []*node{{
		state:     state.Clone(),
		heuristic: state.Distance(goal),
	}}
	closed := make(map[string]bool)

	for iteration := 0; iteration < maxIterations && len(frontier) > 0; iteration++ {
		// Lowest runningCost+heuristic wins; ties break to the earliest
		// inserted node. A linear scan keeps the tie-break deterministic.
		best := 0
		for i := 1; i < len(frontier); i++ {
			if frontier[i].score() < frontier[best].score() {
				best = i
			}
		}
		current := frontier[best]
		frontier = append(frontier[:best], frontier[best+1:]...)

		// Dedup happens at pop time only: a state may sit in the
		// frontier several times but is processed once.
		key := current.state.Canonical()
		if closed[key] {
			continue
		}
		closed[key] = true

		if current.state.Satisfies(goal) {
			return reconstruct(current)
		}

		for _, a := range actions {
			if !a.CanExecute() {
				continue
			}
			if !current.state.Satisfies(a.Preconditions()) {
				continue
			}
			next := current.state.Apply(a.Effects())
			frontier = append(frontier, &node{
				state:       next,
				action:      a,
				parent:      current,
				runningCost: current.runningCost + a.Cost(),
				heuristic:   next.Distance(goal),
			})
		}
	}

	return plan.Empty()
}

func (n *node) score() float64 {
	return n.runningCost + float64(n.heuristic)
}

// reconstruct walks parent back-links from the goal node to the root,
// collecting each step's action, then reverses into execution order.
func reconstruct(n *node) plan.Plan {
	var reversed []action.Action
	for cur := n; cur.parent != nil; cur = cur.parent {
		reversed = append(reversed, cur.action)
	}

	p := make(plan.Plan, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		p = append(p, reversed[i])
	}
	return p
}
