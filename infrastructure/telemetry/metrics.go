// Package telemetry provides observability infrastructure including
// OpenTelemetry metrics and tracing support for the planning runtime.
package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsProvider provides access to metrics instruments.
type MetricsProvider struct {
	meter metric.Meter

	// Counters
	plansComputed    metric.Int64Counter
	plansFailed      metric.Int64Counter
	actionExecutions metric.Int64Counter
	stateTransitions metric.Int64Counter
	replans          metric.Int64Counter
	cacheHits        metric.Int64Counter
	cacheMisses      metric.Int64Counter
	errors           metric.Int64Counter

	// Histograms
	planningDuration metric.Float64Histogram
	planCost         metric.Float64Histogram
	planLength       metric.Float64Histogram
	actionDuration   metric.Float64Histogram
	runDuration      metric.Float64Histogram

	// Gauges (using UpDownCounter for OpenTelemetry)
	activeRuns metric.Int64UpDownCounter

	initOnce sync.Once
	initErr  error
}

// MetricsConfig configures the metrics provider.
type MetricsConfig struct {
	// MeterName is the name of the meter (default: "github.com/felixgeelhaar/goap-go").
	MeterName string
	// MeterVersion is the version of the meter.
	MeterVersion string
	// Attributes are default attributes to attach to all metrics.
	Attributes []attribute.KeyValue
}

// DefaultMetricsConfig returns a default metrics configuration.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		MeterName:    "github.com/felixgeelhaar/goap-go",
		MeterVersion: "1.0.0",
	}
}

// NewMetricsProvider creates a new metrics provider.
func NewMetricsProvider(config MetricsConfig) *MetricsProvider {
	if config.MeterName == "" {
		config = DefaultMetricsConfig()
	}

	provider := otel.GetMeterProvider()
	meter := provider.Meter(
		config.MeterName,
		metric.WithInstrumentationVersion(config.MeterVersion),
	)

	mp := &MetricsProvider{
		meter: meter,
	}

	mp.initOnce.Do(func() {
		mp.initErr = mp.initInstruments()
	})

	return mp
}

// initInstruments initializes all metric instruments.
func (mp *MetricsProvider) initInstruments() error {
	var err error

	// Counters
	mp.plansComputed, err = mp.meter.Int64Counter(
		"goap.plans.computed",
		metric.WithDescription("Number of plans computed"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return err
	}

	mp.plansFailed, err = mp.meter.Int64Counter(
		"goap.plans.failed",
		metric.WithDescription("Number of planning attempts that found no plan"),
		metric.WithUnit("{plan}"),
	)
	if err != nil {
		return err
	}

	mp.actionExecutions, err = mp.meter.Int64Counter(
		"goap.action.executions",
		metric.WithDescription("Number of action executions"),
		metric.WithUnit("{execution}"),
	)
	if err != nil {
		return err
	}

	mp.stateTransitions, err = mp.meter.Int64Counter(
		"goap.state.transitions",
		metric.WithDescription("Number of agent state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return err
	}

	mp.replans, err = mp.meter.Int64Counter(
		"goap.replans",
		metric.WithDescription("Number of replanning events"),
		metric.WithUnit("{replan}"),
	)
	if err != nil {
		return err
	}

	mp.cacheHits, err = mp.meter.Int64Counter(
		"goap.cache.hits",
		metric.WithDescription("Number of plan cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return err
	}

	mp.cacheMisses, err = mp.meter.Int64Counter(
		"goap.cache.misses",
		metric.WithDescription("Number of plan cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return err
	}

	mp.errors, err = mp.meter.Int64Counter(
		"goap.errors",
		metric.WithDescription("Number of errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return err
	}

	// Histograms
	mp.planningDuration, err = mp.meter.Float64Histogram(
		"goap.planning.duration",
		metric.WithDescription("Duration of planning operations"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.planCost, err = mp.meter.Float64Histogram(
		"goap.plan.cost",
		metric.WithDescription("Total cost of computed plans"),
		metric.WithUnit("{cost}"),
	)
	if err != nil {
		return err
	}

	mp.planLength, err = mp.meter.Float64Histogram(
		"goap.plan.length",
		metric.WithDescription("Number of actions in computed plans"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return err
	}

	mp.actionDuration, err = mp.meter.Float64Histogram(
		"goap.action.duration",
		metric.WithDescription("Duration of action executions"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	mp.runDuration, err = mp.meter.Float64Histogram(
		"goap.run.duration",
		metric.WithDescription("Duration of agent runs"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	// Gauges (UpDownCounters)
	mp.activeRuns, err = mp.meter.Int64UpDownCounter(
		"goap.runs.active",
		metric.WithDescription("Number of active agent runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return err
	}

	return nil
}

// Error returns any initialization error.
func (mp *MetricsProvider) Error() error {
	return mp.initErr
}

// RecordPlanComputed records a successful planning operation.
func (mp *MetricsProvider) RecordPlanComputed(ctx context.Context, strategy, goal string, length int, cost float64, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("planner.strategy", strategy),
		attribute.String("goal.name", goal),
	}

	mp.plansComputed.Add(ctx, 1, metric.WithAttributes(attrs...))
	mp.planningDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	mp.planCost.Record(ctx, cost, metric.WithAttributes(attrs...))
	mp.planLength.Record(ctx, float64(length), metric.WithAttributes(attrs...))
}

// RecordPlanFailed records a planning attempt that produced an empty plan.
func (mp *MetricsProvider) RecordPlanFailed(ctx context.Context, strategy, goal string, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("planner.strategy", strategy),
		attribute.String("goal.name", goal),
	}

	mp.plansFailed.Add(ctx, 1, metric.WithAttributes(attrs...))
	mp.planningDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordActionExecution records an action execution.
func (mp *MetricsProvider) RecordActionExecution(ctx context.Context, actionName string, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("action.name", actionName),
		attribute.Bool("success", success),
	}

	mp.actionExecutions.Add(ctx, 1, metric.WithAttributes(attrs...))
	mp.actionDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if !success {
		mp.errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("error.type", "action_execution"),
			attribute.String("action.name", actionName),
		))
	}
}

// RecordStateTransition records an agent state transition.
func (mp *MetricsProvider) RecordStateTransition(ctx context.Context, fromState, toState, runID string) {
	attrs := []attribute.KeyValue{
		attribute.String("state.from", fromState),
		attribute.String("state.to", toState),
		attribute.String("run.id", runID),
	}

	mp.stateTransitions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordReplan records a replanning event.
func (mp *MetricsProvider) RecordReplan(ctx context.Context, goal, reason string) {
	attrs := []attribute.KeyValue{
		attribute.String("goal.name", goal),
		attribute.String("replan.reason", reason),
	}

	mp.replans.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCacheHit records a plan cache hit.
func (mp *MetricsProvider) RecordCacheHit(ctx context.Context, goal string) {
	mp.cacheHits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("goal.name", goal),
	))
}

// RecordCacheMiss records a plan cache miss.
func (mp *MetricsProvider) RecordCacheMiss(ctx context.Context, goal string) {
	mp.cacheMisses.Add(ctx, 1, metric.WithAttributes(
		attribute.String("goal.name", goal),
	))
}

// RecordError records an error.
func (mp *MetricsProvider) RecordError(ctx context.Context, errorType string, details map[string]string) {
	attrs := []attribute.KeyValue{
		attribute.String("error.type", errorType),
	}
	for k, v := range details {
		attrs = append(attrs, attribute.String(k, v))
	}

	mp.errors.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRunDuration records the duration of an agent run.
func (mp *MetricsProvider) RecordRunDuration(ctx context.Context, duration time.Duration, finalState string, success bool) {
	attrs := []attribute.KeyValue{
		attribute.String("state.final", finalState),
		attribute.Bool("success", success),
	}

	mp.runDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// IncrementActiveRuns increments the active runs counter.
func (mp *MetricsProvider) IncrementActiveRuns(ctx context.Context) {
	mp.activeRuns.Add(ctx, 1)
}

// DecrementActiveRuns decrements the active runs counter.
func (mp *MetricsProvider) DecrementActiveRuns(ctx context.Context) {
	mp.activeRuns.Add(ctx, -1)
}

// NoopMetricsProvider is a no-op metrics provider for testing or when metrics are disabled.
type NoopMetricsProvider struct{}

// RecordPlanComputed is a no-op.
func (n *NoopMetricsProvider) RecordPlanComputed(ctx context.Context, strategy, goal string, length int, cost float64, duration time.Duration) {
}

// RecordPlanFailed is a no-op.
func (n *NoopMetricsProvider) RecordPlanFailed(ctx context.Context, strategy, goal string, duration time.Duration) {
}

// RecordActionExecution is a no-op.
func (n *NoopMetricsProvider) RecordActionExecution(ctx context.Context, actionName string, success bool, duration time.Duration) {
}

// RecordStateTransition is a no-op.
func (n *NoopMetricsProvider) RecordStateTransition(ctx context.Context, fromState, toState, runID string) {
}

// RecordReplan is a no-op.
func (n *NoopMetricsProvider) RecordReplan(ctx context.Context, goal, reason string) {}

// RecordCacheHit is a no-op.
func (n *NoopMetricsProvider) RecordCacheHit(ctx context.Context, goal string) {}

// RecordCacheMiss is a no-op.
func (n *NoopMetricsProvider) RecordCacheMiss(ctx context.Context, goal string) {}

// RecordError is a no-op.
func (n *NoopMetricsProvider) RecordError(ctx context.Context, errorType string, details map[string]string) {
}

// RecordRunDuration is a no-op.
func (n *NoopMetricsProvider) RecordRunDuration(ctx context.Context, duration time.Duration, finalState string, success bool) {
}

// IncrementActiveRuns is a no-op.
func (n *NoopMetricsProvider) IncrementActiveRuns(ctx context.Context) {}

// DecrementActiveRuns is a no-op.
func (n *NoopMetricsProvider) DecrementActiveRuns(ctx context.Context) {}

// Metrics defines the interface for metrics recording.
type Metrics interface {
	RecordPlanComputed(ctx context.Context, strategy, goal string, length int, cost float64, duration time.Duration)
	RecordPlanFailed(ctx context.Context, strategy, goal string, duration time.Duration)
	RecordActionExecution(ctx context.Context, actionName string, success bool, duration time.Duration)
	RecordStateTransition(ctx context.Context, fromState, toState, runID string)
	RecordReplan(ctx context.Context, goal, reason string)
	RecordCacheHit(ctx context.Context, goal string)
	RecordCacheMiss(ctx context.Context, goal string)
	RecordError(ctx context.Context, errorType string, details map[string]string)
	RecordRunDuration(ctx context.Context, duration time.Duration, finalState string, success bool)
	IncrementActiveRuns(ctx context.Context)
	DecrementActiveRuns(ctx context.Context)
}

// Ensure implementations satisfy the interface.
var (
	_ Metrics = (*MetricsProvider)(nil)
	_ Metrics = (*NoopMetricsProvider)(nil)
)
