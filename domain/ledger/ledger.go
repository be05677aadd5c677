package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/goap-go/domain/agent"
)

// Ledger provides an append-only record of all activity during a run.
type Ledger struct {
	runID   string
	entries []Entry
	mu      sync.RWMutex
}

// New creates a new ledger for the given run.
func New(runID string) *Ledger {
	return &Ledger{
		runID:   runID,
		entries: make([]Entry, 0),
	}
}

// Append adds an entry to the ledger.
func (l *Ledger) Append(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.RunID = l.runID
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	l.entries = append(l.entries, entry)
}

// Entries returns a copy of all entries.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// EntriesByType returns entries filtered by type.
func (l *Ledger) EntriesByType(entryType EntryType) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var filtered []Entry
	for _, e := range l.entries {
		if e.Type == entryType {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// LastEntry returns the most recent entry, or nil if empty.
func (l *Ledger) LastEntry() *Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return nil
	}
	entry := l.entries[len(l.entries)-1]
	return &entry
}

// Count returns the number of entries.
func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// RunID returns the associated run ID.
func (l *Ledger) RunID() string {
	return l.runID
}

// RecordRunStarted records the start of a run.
func (l *Ledger) RecordRunStarted() {
	l.Append(NewEntry(EntryRunStarted, l.runID, agent.StateSense, nil))
}

// RecordRunCompleted records the successful completion of a run.
func (l *Ledger) RecordRunCompleted(goal string) {
	l.Append(NewEntry(EntryRunCompleted, l.runID, agent.StateDone, map[string]string{
		"goal": goal,
	}))
}

// RecordRunFailed records the failure of a run.
func (l *Ledger) RecordRunFailed(state agent.State, reason string) {
	l.Append(NewEntry(EntryRunFailed, l.runID, state, map[string]string{
		"reason": reason,
	}))
}

// RecordTransition records a state transition.
func (l *Ledger) RecordTransition(from, to agent.State, reason string) {
	l.Append(NewEntry(EntryStateTransition, l.runID, to, TransitionDetails{
		FromState: from,
		ToState:   to,
		Reason:    reason,
	}))
}

// RecordGoalSelected records the goal chosen for pursuit.
func (l *Ledger) RecordGoalSelected(goal string, priority float64) {
	l.Append(NewEntry(EntryGoalSelected, l.runID, agent.StatePlan, GoalDetails{
		Goal:     goal,
		Priority: priority,
	}))
}

// RecordPlanComputed records a successful planning result.
func (l *Ledger) RecordPlanComputed(goal string, actions []string, cost float64) {
	l.Append(NewEntry(EntryPlanComputed, l.runID, agent.StatePlan, PlanDetails{
		Goal:    goal,
		Actions: actions,
		Cost:    cost,
	}))
}

// RecordPlanFailed records a planning call that found no plan.
func (l *Ledger) RecordPlanFailed(goal string) {
	l.Append(NewEntry(EntryPlanFailed, l.runID, agent.StatePlan, PlanDetails{
		Goal: goal,
	}))
}

// RecordActionExecuted records a successfully executed action.
func (l *Ledger) RecordActionExecuted(name string) {
	l.Append(NewEntry(EntryActionExecuted, l.runID, agent.StateAct, ActionDetails{
		Action: name,
	}))
}

// RecordActionError records a failed action execution.
func (l *Ledger) RecordActionError(name string, err error) {
	details := ActionDetails{Action: name}
	if err != nil {
		details.Error = err.Error()
	}
	l.Append(NewEntry(EntryActionError, l.runID, agent.StateAct, details))
}

// RecordActionSkipped records an action skipped by its runtime gate.
func (l *Ledger) RecordActionSkipped(name, reason string) {
	l.Append(NewEntry(EntryActionSkipped, l.runID, agent.StateAct, ActionDetails{
		Action: name,
		Reason: reason,
	}))
}

// RecordReplan records a decision to discard the current plan and replan.
func (l *Ledger) RecordReplan(reason string) {
	l.Append(NewEntry(EntryReplan, l.runID, agent.StatePlan, ActionDetails{
		Reason: reason,
	}))
}
