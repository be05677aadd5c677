// Package application provides the application layer for the planning runtime.
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/agent"
	"github.com/felixgeelhaar/goap-go/domain/checklist"
	"github.com/felixgeelhaar/goap-go/domain/goal"
	"github.com/felixgeelhaar/goap-go/domain/ledger"
	"github.com/felixgeelhaar/goap-go/domain/plan"
	"github.com/felixgeelhaar/goap-go/domain/planner"
	"github.com/felixgeelhaar/goap-go/domain/world"
	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
	"github.com/felixgeelhaar/goap-go/infrastructure/resilience"
	"github.com/felixgeelhaar/goap-go/infrastructure/statemachine"
	"github.com/felixgeelhaar/goap-go/infrastructure/telemetry"
)

// ErrMaxStepsExceeded indicates the loop ran out of steps before
// reaching a terminal state.
var ErrMaxStepsExceeded = errors.New("max steps exceeded")

// Engine is the main orchestration service for agent execution. It
// drives the sense-plan-act loop until every goal is satisfied, the
// run fails, or the step budget runs out.
type Engine struct {
	registry action.Registry
	planner  planner.Planner
	strategy string
	executor *resilience.Executor
	selector goal.Selector
	goals    []goal.Goal
	initial  world.State
	checks   *checklist.Checklist
	cache    plan.Cache
	cacheTTL time.Duration
	runs     agent.Store
	ledgers  ledger.Store
	metrics  telemetry.Metrics
	tracer   trace.Tracer
	maxSteps int
}

// EngineConfig contains configuration for the engine.
type EngineConfig struct {
	// Registry holds the executable actions. Required.
	Registry action.Registry
	// Planner computes plans. Required.
	Planner planner.Planner
	// Strategy names the planner for metrics and logs.
	Strategy string
	// Executor runs actions with resilience policies.
	Executor *resilience.Executor
	// Selector picks the goal to pursue each cycle.
	Selector goal.Selector
	// Goals are the goals available to the agent, in declaration order.
	Goals []goal.Goal
	// World is the initial fact state.
	World world.State
	// Checklist probes facts during the sense phase.
	Checklist *checklist.Checklist
	// Cache stores computed plans across runs. Optional.
	Cache plan.Cache
	// CacheTTL bounds how long cached plans stay valid.
	CacheTTL time.Duration
	// Runs persists finished runs. Optional.
	Runs agent.Store
	// Ledgers persists run ledgers. Optional.
	Ledgers ledger.Store
	// Metrics records telemetry. Defaults to a no-op provider.
	Metrics telemetry.Metrics
	// Tracer creates spans around run phases. Defaults to a no-op tracer.
	Tracer trace.Tracer
	// MaxSteps is the maximum number of loop steps per run.
	MaxSteps int
}

// NewEngine creates a new engine with the given configuration.
func NewEngine(config EngineConfig) (*Engine, error) {
	if config.Registry == nil {
		return nil, errors.New("registry is required")
	}
	if config.Planner == nil {
		return nil, errors.New("planner is required")
	}

	e := &Engine{
		registry: config.Registry,
		planner:  config.Planner,
		strategy: config.Strategy,
		executor: config.Executor,
		selector: config.Selector,
		goals:    config.Goals,
		initial:  config.World,
		checks:   config.Checklist,
		cache:    config.Cache,
		cacheTTL: config.CacheTTL,
		runs:     config.Runs,
		ledgers:  config.Ledgers,
		metrics:  config.Metrics,
		tracer:   config.Tracer,
		maxSteps: config.MaxSteps,
	}

	// Set defaults
	if e.executor == nil {
		e.executor = resilience.NewDefaultExecutor()
	}
	if e.selector == nil {
		e.selector = goal.NewPrioritySelector()
	}
	if e.initial == nil {
		e.initial = world.New()
	}
	if e.metrics == nil {
		e.metrics = &telemetry.NoopMetricsProvider{}
	}
	if e.tracer == nil {
		e.tracer = noop.NewTracerProvider().Tracer("goap-engine")
	}
	if e.strategy == "" {
		e.strategy = "custom"
	}
	if e.maxSteps == 0 {
		e.maxSteps = 100
	}

	return e, nil
}

// session holds the mutable state of one run through the loop.
type session struct {
	run    *agent.Run
	ledger *ledger.Ledger
	interp *statemachine.Interpreter
	world  world.State
	goal   goal.Goal
	queue  plan.Plan
}

// Run executes the agent loop until a terminal state is reached.
// The returned run is always non-nil and carries the final status.
func (e *Engine) Run(ctx context.Context) (*agent.Run, error) {
	runID := uuid.NewString()
	run := agent.NewRun(runID)
	runLedger := ledger.New(runID)

	machine, err := statemachine.NewAgentMachine()
	if err != nil {
		return nil, fmt.Errorf("failed to create state machine: %w", err)
	}
	interp := statemachine.NewInterpreter(machine, statemachine.NewContext(run, runLedger))

	ctx, span := e.tracer.Start(ctx, "goap.run",
		trace.WithAttributes(attribute.String("run.id", runID)))
	defer span.End()

	e.metrics.IncrementActiveRuns(ctx)
	defer e.metrics.DecrementActiveRuns(ctx)

	logging.Info().
		Add(logging.RunID(runID)).
		Msg("run started")

	interp.Start()
	runLedger.RecordRunStarted()

	s := &session{
		run:    run,
		ledger: runLedger,
		interp: interp,
		world:  e.initial.Clone(),
		queue:  plan.Empty(),
	}

	steps := 0
	for !interp.IsTerminal() && steps < e.maxSteps {
		select {
		case <-ctx.Done():
			run.Fail("context cancelled")
			runLedger.RecordRunFailed(run.CurrentState, "context cancelled")
			e.persist(s)
			return run, ctx.Err()
		default:
		}

		if err := e.step(ctx, s); err != nil {
			run.Fail(err.Error())
			runLedger.RecordRunFailed(run.CurrentState, err.Error())

			logging.Error().
				Add(logging.RunID(runID)).
				Add(logging.State(run.CurrentState)).
				Add(logging.ErrorField(err)).
				Msg("run failed")

			e.metrics.RecordRunDuration(ctx, run.Duration(), string(run.CurrentState), false)
			e.persist(s)
			return run, err
		}
		steps++
	}

	if steps >= e.maxSteps && !interp.IsTerminal() {
		run.Fail(ErrMaxStepsExceeded.Error())
		runLedger.RecordRunFailed(run.CurrentState, ErrMaxStepsExceeded.Error())
		e.persist(s)
		return run, ErrMaxStepsExceeded
	}

	if run.Status == agent.RunStatusCompleted {
		runLedger.RecordRunCompleted(run.Goal)
	}

	logging.Info().
		Add(logging.RunID(runID)).
		Add(logging.State(run.CurrentState)).
		Add(logging.Duration(run.Duration())).
		Msg("run completed")

	e.metrics.RecordRunDuration(ctx, run.Duration(), string(run.CurrentState), run.Status == agent.RunStatusCompleted)
	e.persist(s)
	return run, nil
}

// step executes a single phase of the agent loop.
func (e *Engine) step(ctx context.Context, s *session) error {
	switch s.run.CurrentState {
	case agent.StateSense:
		return e.sense(ctx, s)
	case agent.StatePlan:
		return e.plan(ctx, s)
	case agent.StateAct:
		return e.act(ctx, s)
	default:
		return fmt.Errorf("%w: %s", agent.ErrInvalidState, s.run.CurrentState)
	}
}

// sense refreshes the fact state through the checklist probes.
func (e *Engine) sense(ctx context.Context, s *session) error {
	ctx, span := e.tracer.Start(ctx, "goap.sense")
	defer span.End()

	if e.checks != nil && e.checks.Len() > 0 {
		probed, err := e.checks.Evaluate(ctx)
		if err != nil {
			return fmt.Errorf("sense failed: %w", err)
		}
		s.world = s.world.Apply(probed)
	}

	return s.interp.Transition(agent.StatePlan, "world sensed")
}

// plan selects a goal and computes a plan for it.
func (e *Engine) plan(ctx context.Context, s *session) error {
	ctx, span := e.tracer.Start(ctx, "goap.plan")
	defer span.End()

	g, ok := e.selector.Select(s.world, e.goals)
	if !ok {
		return s.interp.Transition(agent.StateDone, "all goals satisfied")
	}

	s.goal = g
	s.run.SetGoal(g.Name)
	s.ledger.RecordGoalSelected(g.Name, g.Priority)
	span.SetAttributes(attribute.String("goal.name", g.Name))

	logging.Debug().
		Add(logging.RunID(s.run.ID)).
		Add(logging.Goal(g.Name)).
		Msg("goal selected")

	if e.lookupCachedPlan(ctx, s, g) {
		return s.interp.Transition(agent.StateAct, "cached plan loaded")
	}

	start := time.Now()
	p := e.planner.Plan(s.world, g.Desired, e.registry.List())
	elapsed := time.Since(start)

	if p.IsEmpty() {
		s.ledger.RecordPlanFailed(g.Name)
		e.metrics.RecordPlanFailed(ctx, e.strategy, g.Name, elapsed)
		return fmt.Errorf("%w: %s", agent.ErrNoPlan, g.Name)
	}

	s.ledger.RecordPlanComputed(g.Name, p.Names(), p.TotalCost())
	e.metrics.RecordPlanComputed(ctx, e.strategy, g.Name, p.Len(), p.TotalCost(), elapsed)

	logging.Info().
		Add(logging.RunID(s.run.ID)).
		Add(logging.Goal(g.Name)).
		Add(logging.PlanLength(p.Len())).
		Add(logging.PlanCost(p.TotalCost())).
		Add(logging.Duration(elapsed)).
		Msg("plan computed")

	if e.cache != nil {
		if err := e.cache.Set(ctx, s.world, g.Desired, p.Names(), e.cacheTTL); err != nil {
			logging.Warn().
				Add(logging.RunID(s.run.ID)).
				Add(logging.ErrorField(err)).
				Msg("plan cache store failed")
		}
	}

	s.queue = p
	return s.interp.Transition(agent.StateAct, "plan computed")
}

// lookupCachedPlan tries to load a cached plan for the goal. Cached
// entries hold action names; a name that no longer resolves through
// the registry invalidates the entry.
func (e *Engine) lookupCachedPlan(ctx context.Context, s *session, g goal.Goal) bool {
	if e.cache == nil {
		return false
	}

	names, hit, err := e.cache.Get(ctx, s.world, g.Desired)
	if err != nil {
		logging.Warn().
			Add(logging.RunID(s.run.ID)).
			Add(logging.ErrorField(err)).
			Msg("plan cache lookup failed")
		return false
	}
	if !hit {
		e.metrics.RecordCacheMiss(ctx, g.Name)
		return false
	}

	actions := make([]action.Action, 0, len(names))
	for _, name := range names {
		a, ok := e.registry.Get(name)
		if !ok {
			e.metrics.RecordCacheMiss(ctx, g.Name)
			return false
		}
		actions = append(actions, a)
	}

	p := plan.Of(actions...)
	s.queue = p
	s.ledger.RecordPlanComputed(g.Name, p.Names(), p.TotalCost())
	e.metrics.RecordCacheHit(ctx, g.Name)

	logging.Debug().
		Add(logging.RunID(s.run.ID)).
		Add(logging.Goal(g.Name)).
		Add(logging.PlanLength(p.Len())).
		Add(logging.Cached(true)).
		Msg("plan loaded from cache")

	return true
}

// act executes the queued plan action by action, replanning when the
// world no longer matches an action's preconditions.
func (e *Engine) act(ctx context.Context, s *session) error {
	ctx, span := e.tracer.Start(ctx, "goap.act")
	defer span.End()

	for i := 0; i < s.queue.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		a := s.queue[i]

		if !s.world.Satisfies(a.Preconditions()) {
			return e.replan(ctx, s, "preconditions lost")
		}

		result, err := e.executor.Execute(ctx, a)
		if errors.Is(err, action.ErrNotExecutable) {
			// The runtime gate closed since planning.
			s.ledger.RecordActionSkipped(a.Name(), "gate closed")
			return e.replan(ctx, s, "gate closed")
		}
		if err != nil {
			s.ledger.RecordActionError(a.Name(), err)
			e.metrics.RecordActionExecution(ctx, a.Name(), false, result.Duration)
			return fmt.Errorf("action %s failed: %w", a.Name(), err)
		}

		s.world = s.world.Apply(a.Effects())
		s.run.RecordAction()
		s.ledger.RecordActionExecuted(a.Name())
		e.metrics.RecordActionExecution(ctx, a.Name(), true, result.Duration)

		logging.Debug().
			Add(logging.RunID(s.run.ID)).
			Add(logging.ActionName(a.Name())).
			Add(logging.Step(i)).
			Add(logging.Duration(result.Duration)).
			Msg("action executed")
	}

	s.queue = plan.Empty()
	return s.interp.Transition(agent.StateSense, "plan executed")
}

// replan discards the queued plan and loops back to the sense phase.
func (e *Engine) replan(ctx context.Context, s *session, reason string) error {
	s.queue = plan.Empty()
	s.run.RecordReplan()
	s.ledger.RecordReplan(reason)
	e.metrics.RecordReplan(ctx, s.goal.Name, reason)

	logging.Info().
		Add(logging.RunID(s.run.ID)).
		Add(logging.Goal(s.goal.Name)).
		Add(logging.Str("reason", reason)).
		Msg("replanning")

	return s.interp.Transition(agent.StateSense, reason)
}

// persist saves the run and its ledger to the configured stores.
// Persistence failures are logged, not fatal.
func (e *Engine) persist(s *session) {
	ctx := context.Background()

	if e.runs != nil {
		if err := e.runs.Save(ctx, s.run); err != nil {
			logging.Warn().
				Add(logging.RunID(s.run.ID)).
				Add(logging.ErrorField(err)).
				Msg("run store save failed")
		}
	}
	if e.ledgers != nil {
		if err := e.ledgers.Append(ctx, s.ledger.Entries()...); err != nil {
			logging.Warn().
				Add(logging.RunID(s.run.ID)).
				Add(logging.ErrorField(err)).
				Msg("ledger store append failed")
		}
	}
}

// World returns a copy of the engine's initial fact state.
func (e *Engine) World() world.State {
	return e.initial.Clone()
}

// Goals returns the configured goals.
func (e *Engine) Goals() []goal.Goal {
	out := make([]goal.Goal, len(e.goals))
	copy(out, e.goals)
	return out
}

// Registry returns the engine's action registry.
func (e *Engine) Registry() action.Registry {
	return e.registry
}
