// Package statemachine provides the statekit integration for the agent loop.
package statemachine

import (
	"github.com/felixgeelhaar/statekit"

	"github.com/felixgeelhaar/goap-go/domain/agent"
	"github.com/felixgeelhaar/goap-go/domain/ledger"
)

// Context carries run state through the state machine.
type Context struct {
	Run    *agent.Run
	Ledger *ledger.Ledger
}

// NewContext creates a new machine context.
func NewContext(run *agent.Run, runLedger *ledger.Ledger) *Context {
	return &Context{
		Run:    run,
		Ledger: runLedger,
	}
}

// State IDs as StateID type for statekit.
const (
	stateSense  statekit.StateID = statekit.StateID(agent.StateSense)
	statePlan   statekit.StateID = statekit.StateID(agent.StatePlan)
	stateAct    statekit.StateID = statekit.StateID(agent.StateAct)
	stateDone   statekit.StateID = statekit.StateID(agent.StateDone)
	stateFailed statekit.StateID = statekit.StateID(agent.StateFailed)
)

// NewAgentMachine creates the canonical sense-plan-act statechart.
func NewAgentMachine() (*statekit.MachineConfig[*Context], error) {
	return statekit.NewMachine[*Context]("goap-agent").
		WithInitial(stateSense).
		WithContext(&Context{}).
		// Register actions
		WithAction("logEntry", logStateEntry).
		WithAction("recordTransition", recordTransition).
		// Register guards
		WithGuard("canTransition", guardCanTransition).
		// Define states
		State(stateSense).
			OnEntry("logEntry").
			On("PLAN").Target(statePlan).Guard("canTransition").Do("recordTransition").
			On("FAIL").Target(stateFailed).Do("recordTransition").
			Done().
		State(statePlan).
			OnEntry("logEntry").
			On("ACT").Target(stateAct).Guard("canTransition").Do("recordTransition").
			On("DONE").Target(stateDone).Do("recordTransition").
			On("FAIL").Target(stateFailed).Do("recordTransition").
			Done().
		State(stateAct).
			OnEntry("logEntry").
			On("SENSE").Target(stateSense).Guard("canTransition").Do("recordTransition"). // Loop back
			On("DONE").Target(stateDone).Do("recordTransition").
			On("FAIL").Target(stateFailed).Do("recordTransition").
			Done().
		State(stateDone).
			Final().
			OnEntry("logEntry").
			Done().
		State(stateFailed).
			Final().
			OnEntry("logEntry").
			Done().
		Build()
}

// EventForTransition returns the event type for a state transition.
func EventForTransition(to agent.State) statekit.EventType {
	switch to {
	case agent.StateSense:
		return "SENSE"
	case agent.StatePlan:
		return "PLAN"
	case agent.StateAct:
		return "ACT"
	case agent.StateDone:
		return "DONE"
	case agent.StateFailed:
		return "FAIL"
	default:
		return statekit.EventType(to)
	}
}

// StateFromMachine converts the machine state ID to domain State.
func StateFromMachine(stateID statekit.StateID) agent.State {
	return agent.State(stateID)
}
