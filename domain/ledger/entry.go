// Package ledger provides an append-only record of planning and execution
// activity during a run.
package ledger

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/goap-go/domain/agent"
)

// EntryType classifies the type of ledger entry.
type EntryType string

const (
	EntryRunStarted      EntryType = "run_started"
	EntryRunCompleted    EntryType = "run_completed"
	EntryRunFailed       EntryType = "run_failed"
	EntryStateTransition EntryType = "state_transition"
	EntryGoalSelected    EntryType = "goal_selected"
	EntryPlanComputed    EntryType = "plan_computed"
	EntryPlanFailed      EntryType = "plan_failed"
	EntryActionExecuted  EntryType = "action_executed"
	EntryActionError     EntryType = "action_error"
	EntryActionSkipped   EntryType = "action_skipped"
	EntryReplan          EntryType = "replan"
)

// Entry represents a single record in the ledger.
type Entry struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Type      EntryType       `json:"type"`
	RunID     string          `json:"run_id"`
	State     agent.State     `json:"state,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// TransitionDetails contains details for state transition entries.
type TransitionDetails struct {
	FromState agent.State `json:"from_state"`
	ToState   agent.State `json:"to_state"`
	Reason    string      `json:"reason,omitempty"`
}

// GoalDetails contains details for goal selection entries.
type GoalDetails struct {
	Goal     string  `json:"goal"`
	Priority float64 `json:"priority"`
}

// PlanDetails contains details for plan computation entries.
type PlanDetails struct {
	Goal    string   `json:"goal"`
	Actions []string `json:"actions"`
	Cost    float64  `json:"cost"`
}

// ActionDetails contains details for action execution entries.
type ActionDetails struct {
	Action string `json:"action"`
	Error  string `json:"error,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// NewEntry creates a new ledger entry.
func NewEntry(entryType EntryType, runID string, state agent.State, details any) Entry {
	var detailsJSON json.RawMessage
	if details != nil {
		detailsJSON, _ = json.Marshal(details)
	}

	return Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Type:      entryType,
		RunID:     runID,
		State:     state,
		Details:   detailsJSON,
	}
}

// DecodeDetails unmarshals the entry details into the given struct.
func (e Entry) DecodeDetails(v any) error {
	if e.Details == nil {
		return nil
	}
	return json.Unmarshal(e.Details, v)
}
