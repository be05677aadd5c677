package goal

import (
	"testing"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

func TestGoal_IsSatisfied(t *testing.T) {
	g := Goal{Name: "fed", Desired: world.State{"Hungry": false}}

	if !g.IsSatisfied(world.State{"Hungry": false}) {
		t.Error("IsSatisfied() = false, want true for matching state")
	}
	if !g.IsSatisfied(world.State{}) {
		t.Error("IsSatisfied() = false, want true: absent fact matches false")
	}
	if g.IsSatisfied(world.State{"Hungry": true}) {
		t.Error("IsSatisfied() = true, want false")
	}
}

func TestPrioritySelector_Select(t *testing.T) {
	goals := []Goal{
		{Name: "rest", Desired: world.State{"Rested": true}, Priority: 1},
		{Name: "eat", Desired: world.State{"Hungry": false}, Priority: 5},
		{Name: "flee", Desired: world.State{"Safe": true}, Priority: 10},
	}

	tests := []struct {
		name     string
		state    world.State
		want     string
		wantNone bool
	}{
		{"highest priority unsatisfied", world.State{"Hungry": true}, "flee", false},
		{"satisfied goals skipped", world.State{"Safe": true, "Hungry": true}, "eat", false},
		{"lowest remaining", world.State{"Safe": true, "Hungry": false}, "rest", false},
		{"all satisfied", world.State{"Safe": true, "Hungry": false, "Rested": true}, "", true},
	}

	s := NewPrioritySelector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := s.Select(tt.state, goals)
			if tt.wantNone {
				if ok {
					t.Errorf("Select() = %q, want no goal", g.Name)
				}
				return
			}
			if !ok || g.Name != tt.want {
				t.Errorf("Select() = %q, %v, want %q", g.Name, ok, tt.want)
			}
		})
	}
}

func TestPrioritySelector_StableForEqualPriority(t *testing.T) {
	goals := []Goal{
		{Name: "alpha", Desired: world.State{"A": true}, Priority: 3},
		{Name: "beta", Desired: world.State{"B": true}, Priority: 3},
	}

	g, ok := NewPrioritySelector().Select(world.State{}, goals)
	if !ok || g.Name != "alpha" {
		t.Errorf("Select() = %q, want the earliest goal on a priority tie", g.Name)
	}
}

func TestPrioritySelector_NoGoals(t *testing.T) {
	if _, ok := NewPrioritySelector().Select(world.State{}, nil); ok {
		t.Error("Select() found a goal in an empty set")
	}
}
