package agent

import "time"

// RunStatus represents the current status of a run.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"   // Not yet started
	RunStatusRunning   RunStatus = "running"   // Currently executing
	RunStatusCompleted RunStatus = "completed" // Successfully finished
	RunStatusFailed    RunStatus = "failed"    // Terminated with error
)

// Run represents a single execution of the agent loop.
// It is the aggregate root for the agent domain.
type Run struct {
	ID           string    `json:"id"`
	Goal         string    `json:"goal"`
	CurrentState State     `json:"current_state"`
	Status       RunStatus `json:"status"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time,omitempty"`
	ActionsRun   int       `json:"actions_run"`
	Replans      int       `json:"replans"`
	Error        string    `json:"error,omitempty"`
}

// NewRun creates a new run with the given ID.
func NewRun(id string) *Run {
	return &Run{
		ID:           id,
		CurrentState: StateSense,
		Status:       RunStatusPending,
		StartTime:    time.Now(),
	}
}

// Start marks the run as running.
func (r *Run) Start() {
	r.Status = RunStatusRunning
	r.StartTime = time.Now()
}

// TransitionTo changes the current state.
func (r *Run) TransitionTo(state State) {
	r.CurrentState = state
	if state.IsTerminal() {
		r.EndTime = time.Now()
		if state == StateDone {
			r.Status = RunStatusCompleted
		} else {
			r.Status = RunStatusFailed
		}
	}
}

// Complete marks the run as successfully completed.
func (r *Run) Complete() {
	r.Status = RunStatusCompleted
	r.CurrentState = StateDone
	r.EndTime = time.Now()
}

// Fail marks the run as failed with an error.
func (r *Run) Fail(err string) {
	r.Status = RunStatusFailed
	r.CurrentState = StateFailed
	r.EndTime = time.Now()
	r.Error = err
}

// SetGoal records the goal the run is pursuing.
func (r *Run) SetGoal(name string) {
	r.Goal = name
}

// RecordAction counts an executed action.
func (r *Run) RecordAction() {
	r.ActionsRun++
}

// RecordReplan counts a replanning event.
func (r *Run) RecordReplan() {
	r.Replans++
}

// IsTerminal returns true if the run has reached a terminal status.
func (r *Run) IsTerminal() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusFailed
}

// Duration returns the duration of the run.
func (r *Run) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}
