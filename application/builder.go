package application

import (
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/config"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/planner"
	"github.com/felixgeelhaar/goap-go/domain/world"
	"github.com/felixgeelhaar/goap-go/infrastructure/resilience"
	"github.com/felixgeelhaar/goap-go/infrastructure/storage/memory"
	"github.com/felixgeelhaar/goap-go/infrastructure/storage/redis"
)

// Handlers maps declared action names to their execution handlers.
// Config files declare preconditions, effects, and costs; the code
// supplies the behavior.
type Handlers map[string]action.Handler

// Gates maps declared action names to their runtime executability gates.
type Gates map[string]action.Gate

// BuildEngine constructs an engine from a validated configuration.
// Every declared action must have a handler; gates are optional.
func BuildEngine(cfg *config.AgentConfig, handlers Handlers, gates Gates) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrBuildFailed)
	}

	registry := memory.NewActionRegistry()
	for _, ac := range cfg.Actions {
		handler, ok := handlers[ac.Name]
		if !ok {
			return nil, fmt.Errorf("%w: no handler for action %q", config.ErrBuildFailed, ac.Name)
		}

		b := action.NewBuilder(ac.Name).
			WithPreconditions(factsToState(ac.Preconditions)).
			WithEffects(factsToState(ac.Effects)).
			WithHandler(handler)
		if ac.Cost != nil {
			b = b.WithCost(*ac.Cost)
		}
		if gate, ok := gates[ac.Name]; ok {
			b = b.WithGate(gate)
		}

		a, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("%w: action %q: %v", config.ErrBuildFailed, ac.Name, err)
		}
		if err := registry.Register(a); err != nil {
			return nil, fmt.Errorf("%w: action %q: %v", config.ErrBuildFailed, ac.Name, err)
		}
	}

	goals := make([]goal.Goal, 0, len(cfg.Goals))
	for _, gc := range cfg.Goals {
		goals = append(goals, goal.Goal{
			Name:     gc.Name,
			Priority: gc.Priority,
			Desired:  factsToState(gc.Desired),
		})
	}

	p, strategy := buildPlanner(cfg.Planner)
	cache, err := buildCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	return NewEngine(EngineConfig{
		Registry: registry,
		Planner:  p,
		Strategy: strategy,
		Executor: buildExecutor(cfg.Resilience),
		Goals:    goals,
		World:    factsToState(cfg.World),
		Cache:    cache,
		CacheTTL: cfg.Cache.TTL,
		MaxSteps: cfg.Agent.MaxSteps,
	})
}

// factsToState converts declared facts to a fact state.
func factsToState(facts []config.FactConfig) world.State {
	s := world.New()
	for _, f := range facts {
		s[f.Name] = f.Value
	}
	return s
}

// buildPlanner selects the planner for the configured strategy.
func buildPlanner(cfg config.PlannerConfig) (planner.Planner, string) {
	switch cfg.Strategy {
	case config.StrategySearch:
		p := planner.NewSearch()
		if cfg.MaxIterations > 0 {
			p.MaxIterations = cfg.MaxIterations
		}
		return p, config.StrategySearch
	default:
		p := planner.NewGreedy()
		if cfg.MaxDepth > 0 {
			p.MaxDepth = cfg.MaxDepth
		}
		return p, config.StrategyGreedy
	}
}

// buildExecutor configures the resilient executor from config.
func buildExecutor(cfg config.ResilienceConfig) *resilience.Executor {
	var opts []resilience.Option
	if cfg.MaxConcurrent > 0 {
		opts = append(opts, resilience.WithMaxConcurrent(cfg.MaxConcurrent))
	}
	if cfg.CircuitBreakerThreshold > 0 {
		opts = append(opts, resilience.WithCircuitBreakerThreshold(cfg.CircuitBreakerThreshold))
	}
	if cfg.CircuitBreakerTimeout > 0 {
		opts = append(opts, resilience.WithCircuitBreakerTimeout(cfg.CircuitBreakerTimeout))
	}
	if cfg.RetryMaxAttempts > 0 {
		opts = append(opts, resilience.WithRetryAttempts(cfg.RetryMaxAttempts))
	}
	if cfg.RetryInitialDelay > 0 {
		opts = append(opts, resilience.WithRetryDelay(cfg.RetryInitialDelay))
	}
	if cfg.DefaultTimeout > 0 {
		opts = append(opts, resilience.WithTimeout(cfg.DefaultTimeout))
	}
	return resilience.NewExecutorWithOptions(opts...)
}

// buildCache constructs the plan cache for the configured backend.
func buildCache(cfg config.CacheConfig) (plan.Cache, error) {
	switch cfg.Backend {
	case "", "memory":
		if cfg.Backend == "" && cfg.TTL == 0 {
			return nil, nil // caching not configured
		}
		return memory.NewPlanCache(), nil
	case "redis":
		rc := redis.DefaultConfig()
		rc.Address = cfg.Addr
		rc.Password = cfg.Password
		rc.DB = cfg.DB
		if cfg.TTL > 0 {
			rc.DefaultTTL = cfg.TTL
		}
		c, err := redis.NewPlanCache(rc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrBuildFailed, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown cache backend %q", config.ErrBuildFailed, cfg.Backend)
	}
}
