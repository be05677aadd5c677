// Package world provides the fact-state model shared by goals, planners,
// and the perception boundary.
package world

import (
	"sort"
	"strconv"
	"strings"
)

// State is a snapshot mapping fact names to boolean values.
// A fact name absent from a state is treated as false for equality tests:
// an expectation of false is satisfied by absence, an expectation of true
// is not. Goal satisfaction and precondition matching both rely on this.
type State map[string]bool

// New creates an empty state.
func New() State {
	return make(State)
}

// FromFacts creates a state from the given facts.
func FromFacts(facts ...Fact) State {
	s := make(State, len(facts))
	for _, f := range facts {
		s[f.Name] = f.Value
	}
	return s
}

// Fact is a single named boolean proposition.
type Fact struct {
	Name  string `json:"name" yaml:"name"`
	Value bool   `json:"value" yaml:"value"`
}

// Clone returns an independent copy of the state.
func (s State) Clone() State {
	c := make(State, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Get returns the value recorded for the named fact. An absent fact
// reads as false, per the absence rule.
func (s State) Get(name string) bool {
	return s[name]
}

// Matches reports whether the fact named name has the expected value,
// applying the absence-as-false rule.
func (s State) Matches(name string, expected bool) bool {
	v, ok := s[name]
	if !ok {
		return !expected
	}
	return v == expected
}

// Satisfies reports whether every fact required by goal matches this state.
func (s State) Satisfies(goal State) bool {
	for name, expected := range goal {
		if !s.Matches(name, expected) {
			return false
		}
	}
	return true
}

// Apply returns a new state with effects overlaid on this one. Facts named
// by effects are set (added or overwritten); all others carry over. The
// receiver is not modified.
func (s State) Apply(effects State) State {
	next := s.Clone()
	for name, value := range effects {
		next[name] = value
	}
	return next
}

// Distance returns the number of goal facts not matching this state. It is
// the unsatisfied-goal-count heuristic used by the cost-aware planner.
func (s State) Distance(goal State) int {
	count := 0
	for name, expected := range goal {
		if !s.Matches(name, expected) {
			count++
		}
	}
	return count
}

// Canonical returns a deterministic serialization of the state: fact names
// sorted lexicographically, rendered as name=value pairs joined by commas.
// Two states with the same fact set serialize identically.
func (s State) Canonical() string {
	if len(s) == 0 {
		return ""
	}

	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(strconv.FormatBool(s[name]))
	}
	return b.String()
}

// Facts returns the state's facts sorted by name.
func (s State) Facts() []Fact {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	facts := make([]Fact, 0, len(names))
	for _, name := range names {
		facts = append(facts, Fact{Name: name, Value: s[name]})
	}
	return facts
}
