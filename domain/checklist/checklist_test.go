package checklist

import (
	"context"
	"errors"
	"testing"
)

func TestChecklist_Evaluate(t *testing.T) {
	c := New(
		Check{Fact: "HasFood", Probe: func(ctx context.Context) (bool, error) { return true, nil }},
		Check{Fact: "Hungry", Probe: func(ctx context.Context) (bool, error) { return false, nil }},
	)

	state, err := c.Evaluate(context.Background())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !state.Matches("HasFood", true) || !state.Matches("Hungry", false) {
		t.Errorf("Evaluate() = %v", state)
	}
}

func TestChecklist_Evaluate_ProbeFailure(t *testing.T) {
	probeErr := errors.New("sensor offline")
	c := New(
		Check{Fact: "Broken", Probe: func(ctx context.Context) (bool, error) { return false, probeErr }},
		Check{Fact: "Working", Probe: func(ctx context.Context) (bool, error) { return true, nil }},
	)

	state, err := c.Evaluate(context.Background())
	if !errors.Is(err, probeErr) {
		t.Errorf("Evaluate() error = %v, want wrapped probe error", err)
	}

	// The failed fact is absent, which reads as false under the absence rule.
	if _, present := state["Broken"]; present {
		t.Error("Evaluate() recorded a fact for a failed probe")
	}
	if !state.Matches("Broken", false) {
		t.Error("absent fact should match a false expectation")
	}
	if !state.Matches("Working", true) {
		t.Error("Evaluate() dropped facts after a failed probe")
	}
}

func TestChecklist_Add(t *testing.T) {
	c := New()
	c.Add("A", func(ctx context.Context) (bool, error) { return true, nil })
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}
