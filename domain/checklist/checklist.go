// Package checklist derives named boolean facts from raw perception.
// It is the boundary between sensors and the planning core: each Check
// probes one fact, and Evaluate snapshots the full fact state.
package checklist

import (
	"context"
	"errors"
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Probe reads the environment and reports one boolean fact.
type Probe func(ctx context.Context) (bool, error)

// Check binds a fact name to the probe that establishes it.
type Check struct {
	Fact  string
	Probe Probe
}

// Checklist evaluates a fixed, ordered set of checks into a world state.
type Checklist struct {
	checks []Check
}

// New creates a checklist from the given checks, preserving order.
func New(checks ...Check) *Checklist {
	return &Checklist{checks: checks}
}

// Add appends a check.
func (c *Checklist) Add(fact string, probe Probe) {
	c.checks = append(c.checks, Check{Fact: fact, Probe: probe})
}

// Len returns the number of checks.
func (c *Checklist) Len() int {
	return len(c.checks)
}

// Evaluate runs every probe in order and returns the resulting fact state.
// A failing probe leaves its fact absent from the snapshot, which the
// absence rule reads as false; all probe errors are joined and returned
// alongside the partial snapshot.
func (c *Checklist) Evaluate(ctx context.Context) (world.State, error) {
	state := world.New()
	var errs []error
	for _, check := range c.checks {
		value, err := check.Probe(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("check %q: %w", check.Fact, err))
			continue
		}
		state[check.Fact] = value
	}
	return state, errors.Join(errs...)
}
