package agent

import "testing"

func TestState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateSense, false},
		{StatePlan, false},
		{StateAct, false},
		{StateDone, true},
		{StateFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.expected {
				t.Errorf("State(%q).IsTerminal() = %v, want %v", tt.state, got, tt.expected)
			}
		})
	}
}

func TestState_AllowsSideEffects(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateSense, false},
		{StatePlan, false},
		{StateAct, true},
		{StateDone, false},
		{StateFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.AllowsSideEffects(); got != tt.expected {
				t.Errorf("State(%q).AllowsSideEffects() = %v, want %v", tt.state, got, tt.expected)
			}
		})
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		state    State
		expected bool
	}{
		{StateSense, true},
		{StatePlan, true},
		{StateAct, true},
		{StateDone, true},
		{StateFailed, true},
		{State("unknown"), false},
		{State(""), false},
		{State("SENSE"), false}, // Case sensitive
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("State(%q).IsValid() = %v, want %v", tt.state, got, tt.expected)
			}
		})
	}
}

func TestAllStates(t *testing.T) {
	states := AllStates()
	if len(states) != 5 {
		t.Errorf("AllStates() returned %d states, want 5", len(states))
	}

	for _, s := range states {
		if !s.IsValid() {
			t.Errorf("AllStates() contains invalid state %q", s)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	states := TerminalStates()
	if len(states) != 2 {
		t.Errorf("TerminalStates() returned %d states, want 2", len(states))
	}

	for _, s := range states {
		if !s.IsTerminal() {
			t.Errorf("TerminalStates() contains non-terminal state %q", s)
		}
	}
}

func TestNonTerminalStates(t *testing.T) {
	states := NonTerminalStates()
	if len(states) != 3 {
		t.Errorf("NonTerminalStates() returned %d states, want 3", len(states))
	}

	for _, s := range states {
		if s.IsTerminal() {
			t.Errorf("NonTerminalStates() contains terminal state %q", s)
		}
	}
}
