package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/agent"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

func testAction(t *testing.T, name string) action.Action {
	t.Helper()
	return action.NewBuilder(name).
		WithEffect(name+"_done", true).
		MustBuild()
}

func TestActionRegistryRegisterAndGet(t *testing.T) {
	t.Parallel()

	r := NewActionRegistry()
	a := testAction(t, "chop_wood")

	if err := r.Register(a); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, ok := r.Get("chop_wood")
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if got.Name() != "chop_wood" {
		t.Errorf("Get() name = %q, want %q", got.Name(), "chop_wood")
	}
}

func TestActionRegistryDuplicateName(t *testing.T) {
	t.Parallel()

	r := NewActionRegistry()
	if err := r.Register(testAction(t, "dig")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	err := r.Register(testAction(t, "dig"))
	if !errors.Is(err, action.ErrActionExists) {
		t.Errorf("Register() error = %v, want ErrActionExists", err)
	}
}

func TestActionRegistryListPreservesOrder(t *testing.T) {
	t.Parallel()

	r := NewActionRegistry()
	names := []string{"zeta", "alpha", "mid"}
	for _, name := range names {
		if err := r.Register(testAction(t, name)); err != nil {
			t.Fatalf("Register(%q) error = %v", name, err)
		}
	}

	list := r.List()
	if len(list) != len(names) {
		t.Fatalf("List() len = %d, want %d", len(list), len(names))
	}
	for i, want := range names {
		if list[i].Name() != want {
			t.Errorf("List()[%d] = %q, want %q", i, list[i].Name(), want)
		}
	}

	got := r.Names()
	for i, want := range names {
		if got[i] != want {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want)
		}
	}
}

func TestActionRegistryUnregister(t *testing.T) {
	t.Parallel()

	r := NewActionRegistry()
	for _, name := range []string{"a", "b", "c"} {
		if err := r.Register(testAction(t, name)); err != nil {
			t.Fatalf("Register(%q) error = %v", name, err)
		}
	}

	if err := r.Unregister("b"); err != nil {
		t.Fatalf("Unregister() error = %v", err)
	}
	if r.Has("b") {
		t.Error("Has(b) = true after Unregister")
	}

	got := r.Names()
	want := []string{"a", "c"}
	if len(got) != len(want) {
		t.Fatalf("Names() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if err := r.Unregister("missing"); !errors.Is(err, action.ErrActionNotFound) {
		t.Errorf("Unregister(missing) error = %v, want ErrActionNotFound", err)
	}
}

func TestActionRegistryResolve(t *testing.T) {
	t.Parallel()

	r := NewActionRegistry()
	for _, name := range []string{"a", "b"} {
		if err := r.Register(testAction(t, name)); err != nil {
			t.Fatalf("Register(%q) error = %v", name, err)
		}
	}

	actions, ok := r.Resolve([]string{"b", "a"})
	if !ok {
		t.Fatal("Resolve() ok = false, want true")
	}
	if actions[0].Name() != "b" || actions[1].Name() != "a" {
		t.Errorf("Resolve() order = [%s %s], want [b a]", actions[0].Name(), actions[1].Name())
	}

	if _, ok := r.Resolve([]string{"a", "missing"}); ok {
		t.Error("Resolve() ok = true for unknown name, want false")
	}
}

func TestPlanCacheGetSet(t *testing.T) {
	t.Parallel()

	c := NewPlanCache()
	ctx := context.Background()
	state := world.State{"has_axe": true}
	goal := world.State{"has_wood": true}

	if _, ok, err := c.Get(ctx, state, goal); err != nil || ok {
		t.Fatalf("Get() before Set = (ok=%v, err=%v), want miss", ok, err)
	}

	names := []string{"chop_wood", "haul_wood"}
	if err := c.Set(ctx, state, goal, names, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := c.Get(ctx, state, goal)
	if err != nil || !ok {
		t.Fatalf("Get() = (ok=%v, err=%v), want hit", ok, err)
	}
	if len(got) != 2 || got[0] != "chop_wood" || got[1] != "haul_wood" {
		t.Errorf("Get() = %v, want %v", got, names)
	}

	// Different goal is a different key.
	if _, ok, _ := c.Get(ctx, state, world.State{"has_stone": true}); ok {
		t.Error("Get() with different goal = hit, want miss")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 2 {
		t.Errorf("Stats() = %+v, want 1 hit, 2 misses", stats)
	}
}

func TestPlanCacheTTLExpiration(t *testing.T) {
	t.Parallel()

	c := NewPlanCache()
	ctx := context.Background()
	state := world.State{"a": true}
	goal := world.State{"b": true}

	if err := c.Set(ctx, state, goal, []string{"step"}, time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, state, goal); ok {
		t.Error("Get() after TTL = hit, want miss")
	}
}

func TestPlanCacheDeleteAndClear(t *testing.T) {
	t.Parallel()

	c := NewPlanCache()
	ctx := context.Background()
	state := world.State{"a": true}
	goal := world.State{"b": true}

	if err := c.Set(ctx, state, goal, []string{"step"}, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, state, goal); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, state, goal); ok {
		t.Error("Get() after Delete = hit, want miss")
	}

	if err := c.Set(ctx, state, goal, []string{"step"}, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if c.Stats().Size != 0 {
		t.Errorf("Stats().Size after Clear = %d, want 0", c.Stats().Size)
	}
}

func TestPlanCacheMaxSizeEviction(t *testing.T) {
	t.Parallel()

	c := NewPlanCache(WithMaxSize(2))
	ctx := context.Background()
	goal := world.State{"goal": true}

	for _, fact := range []string{"a", "b", "c"} {
		state := world.State{fact: true}
		if err := c.Set(ctx, state, goal, []string{fact}, 0); err != nil {
			t.Fatalf("Set(%q) error = %v", fact, err)
		}
	}

	if size := c.Stats().Size; size > 2 {
		t.Errorf("Stats().Size = %d, want <= 2", size)
	}
}

func TestPlanCacheCanceledContext(t *testing.T) {
	t.Parallel()

	c := NewPlanCache()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := c.Get(ctx, world.State{}, world.State{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Get() error = %v, want context.Canceled", err)
	}
	if err := c.Set(ctx, world.State{}, world.State{}, nil, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("Set() error = %v, want context.Canceled", err)
	}
}

func TestRunStoreSaveGetList(t *testing.T) {
	t.Parallel()

	s := NewRunStore()
	ctx := context.Background()

	r1 := agent.NewRun("run-2")
	r1.SetGoal("has_shelter")
	r2 := agent.NewRun("run-1")

	if err := s.Save(ctx, r1); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(ctx, r2); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Get(ctx, "run-2")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Goal != "has_shelter" {
		t.Errorf("Get().Goal = %q, want %q", got.Goal, "has_shelter")
	}

	// Stored copy is isolated from later mutation.
	r1.SetGoal("changed")
	got, err = s.Get(ctx, "run-2")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Goal != "has_shelter" {
		t.Errorf("Get().Goal after mutation = %q, want %q", got.Goal, "has_shelter")
	}

	runs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "run-1" || runs[1].ID != "run-2" {
		t.Errorf("List() order = %v, want [run-1 run-2]", []string{runs[0].ID, runs[1].ID})
	}
}

func TestRunStoreSaveOverwrites(t *testing.T) {
	t.Parallel()

	s := NewRunStore()
	ctx := context.Background()

	r := agent.NewRun("run-1")
	if err := s.Save(ctx, r); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	r.Complete()
	if err := s.Save(ctx, r); err != nil {
		t.Fatalf("Save() second error = %v", err)
	}

	got, err := s.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != agent.RunStatusCompleted {
		t.Errorf("Get().Status = %q, want %q", got.Status, agent.RunStatusCompleted)
	}
	if s.Count() != 1 {
		t.Errorf("Count() = %d, want 1", s.Count())
	}
}

func TestRunStoreDeleteAndNotFound(t *testing.T) {
	t.Parallel()

	s := NewRunStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, agent.ErrRunNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrRunNotFound", err)
	}

	if err := s.Save(ctx, agent.NewRun("run-1")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Delete(ctx, "run-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete(ctx, "run-1"); !errors.Is(err, agent.ErrRunNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrRunNotFound", err)
	}
}
