package agent

// allowedTransitions is the canonical transition table for the
// sense-plan-act loop. Failure is reachable from every non-terminal state.
var allowedTransitions = map[State][]State{
	StateSense: {StatePlan, StateFailed},
	StatePlan:  {StateAct, StateDone, StateFailed},
	StateAct:   {StateSense, StateDone, StateFailed},
}

// CanTransition reports whether moving from one state to another is allowed.
func CanTransition(from, to State) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
