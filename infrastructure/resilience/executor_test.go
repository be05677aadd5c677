package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/action"
)

func TestExecutor_Execute(t *testing.T) {
	t.Parallel()

	ran := 0
	a := action.NewBuilder("tick").
		WithHandler(func(ctx context.Context) error {
			ran++
			return nil
		}).
		MustBuild()

	result, err := NewDefaultExecutor().Execute(context.Background(), a)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ran != 1 {
		t.Errorf("handler ran %d times, want 1", ran)
	}
	if result.Action != "tick" {
		t.Errorf("Result.Action = %q, want %q", result.Action, "tick")
	}
	if result.Duration < 0 {
		t.Errorf("Result.Duration = %v", result.Duration)
	}
}

func TestExecutor_GateRejectsExecution(t *testing.T) {
	t.Parallel()

	a := action.NewBuilder("blocked").
		WithGate(func() bool { return false }).
		WithHandler(func(ctx context.Context) error { return nil }).
		MustBuild()

	executor := NewExecutorWithOptions(
		WithRetryAttempts(1),
		WithRetryDelay(time.Millisecond),
	)
	if _, err := executor.Execute(context.Background(), a); !errors.Is(err, action.ErrNotExecutable) {
		t.Errorf("Execute() error = %v, want ErrNotExecutable", err)
	}
}

func TestExecutor_RetriesFailures(t *testing.T) {
	t.Parallel()

	attempts := 0
	a := action.NewBuilder("flaky").
		WithHandler(func(ctx context.Context) error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		}).
		MustBuild()

	executor := NewExecutorWithOptions(
		WithRetryAttempts(3),
		WithRetryDelay(time.Millisecond),
	)
	if _, err := executor.Execute(context.Background(), a); err != nil {
		t.Fatalf("Execute() error = %v after retries", err)
	}
	if attempts != 3 {
		t.Errorf("handler ran %d times, want 3", attempts)
	}
}

func TestExecutor_ExecuteSimple(t *testing.T) {
	t.Parallel()

	execErr := errors.New("broken")
	a := action.NewBuilder("direct").
		WithHandler(func(ctx context.Context) error { return execErr }).
		MustBuild()

	if _, err := NewDefaultExecutor().ExecuteSimple(context.Background(), a); !errors.Is(err, execErr) {
		t.Errorf("ExecuteSimple() error = %v, want the handler error", err)
	}
}

func TestDefaultExecutorConfig(t *testing.T) {
	t.Parallel()

	config := DefaultExecutorConfig()
	if config.MaxConcurrent != 10 {
		t.Errorf("MaxConcurrent = %d, want 10", config.MaxConcurrent)
	}
	if config.RetryMaxAttempts != 3 {
		t.Errorf("RetryMaxAttempts = %d, want 3", config.RetryMaxAttempts)
	}
}
