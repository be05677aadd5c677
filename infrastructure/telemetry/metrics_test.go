package telemetry

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupTestMetrics sets up a test meter provider and returns it along with a reader.
func setupTestMetrics(t *testing.T) (*metric.ManualReader, *MetricsProvider) {
	reader := metric.NewManualReader()
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	otel.SetMeterProvider(provider)

	mp := NewMetricsProvider(DefaultMetricsConfig())
	if mp.Error() != nil {
		t.Fatalf("failed to create metrics provider: %v", mp.Error())
	}

	return reader, mp
}

// counterTotal collects metrics and sums the int64 counter with the given name.
func counterTotal(t *testing.T, reader *metric.ManualReader, name string) (int64, bool) {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("metric %s: expected Sum[int64], got %T", name, m.Data)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total, true
		}
	}
	return 0, false
}

func TestNewMetricsProvider(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	if mp == nil {
		t.Fatal("NewMetricsProvider returned nil")
	}
	if mp.Error() != nil {
		t.Errorf("unexpected error: %v", mp.Error())
	}
}

func TestMetricsProvider_RecordPlanComputed(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.RecordPlanComputed(ctx, "search", "has_wood", 3, 4.5, 2*time.Millisecond)
	mp.RecordPlanComputed(ctx, "greedy", "has_wood", 1, 1.0, time.Millisecond)

	total, found := counterTotal(t, reader, "goap.plans.computed")
	if !found {
		t.Fatal("metric goap.plans.computed not found")
	}
	if total != 2 {
		t.Errorf("goap.plans.computed = %d, want 2", total)
	}
}

func TestMetricsProvider_RecordPlanFailed(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	mp.RecordPlanFailed(context.Background(), "search", "unreachable", time.Millisecond)

	total, found := counterTotal(t, reader, "goap.plans.failed")
	if !found {
		t.Fatal("metric goap.plans.failed not found")
	}
	if total != 1 {
		t.Errorf("goap.plans.failed = %d, want 1", total)
	}
}

func TestMetricsProvider_RecordActionExecution(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.RecordActionExecution(ctx, "chop_wood", true, 100*time.Millisecond)
	mp.RecordActionExecution(ctx, "chop_wood", false, 50*time.Millisecond)

	total, found := counterTotal(t, reader, "goap.action.executions")
	if !found {
		t.Fatal("metric goap.action.executions not found")
	}
	if total != 2 {
		t.Errorf("goap.action.executions = %d, want 2", total)
	}

	// A failed execution also counts as an error.
	errTotal, found := counterTotal(t, reader, "goap.errors")
	if !found {
		t.Fatal("metric goap.errors not found")
	}
	if errTotal != 1 {
		t.Errorf("goap.errors = %d, want 1", errTotal)
	}
}

func TestMetricsProvider_RecordCacheHitMiss(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.RecordCacheHit(ctx, "has_wood")
	mp.RecordCacheMiss(ctx, "has_wood")
	mp.RecordCacheMiss(ctx, "has_stone")

	hits, _ := counterTotal(t, reader, "goap.cache.hits")
	if hits != 1 {
		t.Errorf("goap.cache.hits = %d, want 1", hits)
	}
	misses, _ := counterTotal(t, reader, "goap.cache.misses")
	if misses != 2 {
		t.Errorf("goap.cache.misses = %d, want 2", misses)
	}
}

func TestMetricsProvider_ActiveRuns(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.IncrementActiveRuns(ctx)
	mp.IncrementActiveRuns(ctx)
	mp.DecrementActiveRuns(ctx)

	total, found := counterTotal(t, reader, "goap.runs.active")
	if !found {
		t.Fatal("metric goap.runs.active not found")
	}
	if total != 1 {
		t.Errorf("goap.runs.active = %d, want 1", total)
	}
}

func TestMetricsProvider_RecordReplanAndTransitions(t *testing.T) {
	reader, mp := setupTestMetrics(t)
	defer reader.Shutdown(context.Background())

	ctx := context.Background()

	mp.RecordReplan(ctx, "has_wood", "preconditions_lost")
	mp.RecordStateTransition(ctx, "sense", "plan", "run-1")
	mp.RecordStateTransition(ctx, "plan", "act", "run-1")

	replans, _ := counterTotal(t, reader, "goap.replans")
	if replans != 1 {
		t.Errorf("goap.replans = %d, want 1", replans)
	}
	transitions, _ := counterTotal(t, reader, "goap.state.transitions")
	if transitions != 2 {
		t.Errorf("goap.state.transitions = %d, want 2", transitions)
	}
}

func TestNoopMetricsProvider(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var mp Metrics = &NoopMetricsProvider{}

	// All calls are safe no-ops.
	mp.RecordPlanComputed(ctx, "greedy", "g", 1, 1.0, time.Millisecond)
	mp.RecordPlanFailed(ctx, "greedy", "g", time.Millisecond)
	mp.RecordActionExecution(ctx, "a", false, time.Millisecond)
	mp.RecordStateTransition(ctx, "sense", "plan", "run-1")
	mp.RecordReplan(ctx, "g", "reason")
	mp.RecordCacheHit(ctx, "g")
	mp.RecordCacheMiss(ctx, "g")
	mp.RecordError(ctx, "t", nil)
	mp.RecordRunDuration(ctx, time.Second, "done", true)
	mp.IncrementActiveRuns(ctx)
	mp.DecrementActiveRuns(ctx)
}

func TestTracingProviderNoop(t *testing.T) {
	t.Parallel()

	p := NewNoopTracingProvider()
	if p.Tracer() == nil {
		t.Fatal("Tracer() returned nil")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}

	_, span := p.Tracer().Start(context.Background(), "plan")
	span.End()
}

func TestDefaultTracingConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultTracingConfig()
	if cfg.ServiceName != "goap-agent" {
		t.Errorf("ServiceName = %s, want goap-agent", cfg.ServiceName)
	}
	if cfg.Exporter != ExporterNoop {
		t.Errorf("Exporter = %s, want noop", cfg.Exporter)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("SampleRate = %v, want 1.0", cfg.SampleRate)
	}
}
