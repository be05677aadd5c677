package agent

import "errors"

// Domain errors for the agent loop.
var (
	// ErrInvalidState indicates the state is not a recognized canonical state.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidTransition indicates an attempted state transition is not allowed.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrRunTerminated indicates an operation was attempted on a terminated run.
	ErrRunTerminated = errors.New("run already terminated")

	// ErrNoGoal indicates no unsatisfied goal remains to pursue.
	ErrNoGoal = errors.New("no unsatisfied goal")

	// ErrNoPlan indicates the planner found no plan for the selected goal.
	ErrNoPlan = errors.New("no plan found")

	// ErrRunNotFound indicates the requested run does not exist in the store.
	ErrRunNotFound = errors.New("run not found")
)
