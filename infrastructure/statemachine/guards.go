package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/goap-go/domain/agent"
)

// guardCanTransition checks if the transition is valid according to the
// canonical transition table.
// Note: In statekit, guards receive the context by value. Since our context is *Context,
// the guard receives *Context directly.
func guardCanTransition(ctx *Context, event statekit.Event) bool {
	if ctx == nil || ctx.Run == nil {
		return false
	}

	fromState := ctx.Run.CurrentState

	// Get target state from the event payload if available
	var toState agent.State
	if payload, ok := event.Payload.(TransitionPayload); ok {
		toState = payload.ToState
	} else {
		// Fall back to deriving from event type
		toState = stateFromEventType(event.Type)
	}

	return agent.CanTransition(fromState, toState)
}

// stateFromEventType derives the target state from an event type.
func stateFromEventType(eventType statekit.EventType) agent.State {
	switch eventType {
	case "SENSE":
		return agent.StateSense
	case "PLAN":
		return agent.StatePlan
	case "ACT":
		return agent.StateAct
	case "DONE":
		return agent.StateDone
	case "FAIL":
		return agent.StateFailed
	default:
		return agent.State(eventType)
	}
}
