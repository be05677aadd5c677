package application

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/goap-go/domain/agent"
	"github.com/felixgeelhaar/goap-go/domain/config"
	"github.com/felixgeelhaar/goap-go/domain/planner"
)

func testConfig() *config.AgentConfig {
	cost := 2.0
	return &config.AgentConfig{
		Name:    "lumberjack",
		Version: "1.0",
		Planner: config.PlannerConfig{Strategy: config.StrategySearch, MaxIterations: 200},
		World: []config.FactConfig{
			{Name: "has_axe", Value: true},
		},
		Goals: []config.GoalConfig{
			{
				Name:     "stockpile",
				Priority: 10,
				Desired:  []config.FactConfig{{Name: "has_wood", Value: true}},
			},
		},
		Actions: []config.ActionConfig{
			{
				Name:          "chop_wood",
				Cost:          &cost,
				Preconditions: []config.FactConfig{{Name: "has_axe", Value: true}},
				Effects:       []config.FactConfig{{Name: "has_wood", Value: true}},
			},
		},
	}
}

func TestBuildEngineAndRun(t *testing.T) {
	t.Parallel()

	handlers := Handlers{
		"chop_wood": func(context.Context) error { return nil },
	}

	e, err := BuildEngine(testConfig(), handlers, nil)
	if err != nil {
		t.Fatalf("BuildEngine() error = %v", err)
	}

	run, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if run.Status != agent.RunStatusCompleted {
		t.Errorf("Status = %q, want completed", run.Status)
	}
	if run.ActionsRun != 1 {
		t.Errorf("ActionsRun = %d, want 1", run.ActionsRun)
	}
}

func TestBuildEngineMissingHandler(t *testing.T) {
	t.Parallel()

	_, err := BuildEngine(testConfig(), Handlers{}, nil)
	if !errors.Is(err, config.ErrBuildFailed) {
		t.Errorf("BuildEngine() error = %v, want ErrBuildFailed", err)
	}
}

func TestBuildEngineNilConfig(t *testing.T) {
	t.Parallel()

	_, err := BuildEngine(nil, nil, nil)
	if !errors.Is(err, config.ErrBuildFailed) {
		t.Errorf("BuildEngine(nil) error = %v, want ErrBuildFailed", err)
	}
}

func TestBuildEngineUnknownCacheBackend(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Cache.Backend = "carrier-pigeon"

	handlers := Handlers{
		"chop_wood": func(context.Context) error { return nil },
	}
	_, err := BuildEngine(cfg, handlers, nil)
	if !errors.Is(err, config.ErrBuildFailed) {
		t.Errorf("BuildEngine() error = %v, want ErrBuildFailed", err)
	}
}

func TestBuildPlannerStrategy(t *testing.T) {
	t.Parallel()

	p, strategy := buildPlanner(config.PlannerConfig{Strategy: config.StrategySearch, MaxIterations: 42})
	s, ok := p.(*planner.Search)
	if !ok {
		t.Fatalf("buildPlanner(search) = %T, want *planner.Search", p)
	}
	if s.MaxIterations != 42 {
		t.Errorf("MaxIterations = %d, want 42", s.MaxIterations)
	}
	if strategy != config.StrategySearch {
		t.Errorf("strategy = %q, want search", strategy)
	}

	p, strategy = buildPlanner(config.PlannerConfig{MaxDepth: 3})
	g, ok := p.(*planner.Greedy)
	if !ok {
		t.Fatalf("buildPlanner(default) = %T, want *planner.Greedy", p)
	}
	if g.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", g.MaxDepth)
	}
	if strategy != config.StrategyGreedy {
		t.Errorf("strategy = %q, want greedy", strategy)
	}
}

func TestBuildEngineGateWired(t *testing.T) {
	t.Parallel()

	handlers := Handlers{
		"chop_wood": func(context.Context) error { return nil },
	}
	gates := Gates{
		"chop_wood": func() bool { return false },
	}

	e, err := BuildEngine(testConfig(), handlers, gates)
	if err != nil {
		t.Fatalf("BuildEngine() error = %v", err)
	}

	// The only action is gated off, so the goal is unreachable.
	run, err := e.Run(context.Background())
	if !errors.Is(err, agent.ErrNoPlan) {
		t.Fatalf("Run() error = %v, want ErrNoPlan", err)
	}
	if run.Status != agent.RunStatusFailed {
		t.Errorf("Status = %q, want failed", run.Status)
	}
}
