// Package resilience provides resilient action execution using fortify.
package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/bulkhead"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"

	"github.com/felixgeelhaar/goap-go/domain/action"
)

// Result contains the outcome of one action execution.
type Result struct {
	// Action is the executed action's name.
	Action string

	// Duration is how long the execution took.
	Duration time.Duration
}

// Executor provides resilient action execution with circuit breaker, retry,
// and bulkhead patterns. The execution layer re-checks each action's runtime
// gate before running it, since world state may have changed since planning.
type Executor struct {
	bulkhead bulkhead.Bulkhead[Result]
	breaker  circuitbreaker.CircuitBreaker[Result]
	retry    retry.Retry[Result]
	timeout  time.Duration
}

// ExecutorConfig configures the resilient executor.
type ExecutorConfig struct {
	// MaxConcurrent limits concurrent action executions.
	MaxConcurrent int

	// CircuitBreakerThreshold is the number of failures before opening.
	CircuitBreakerThreshold int

	// CircuitBreakerTimeout is how long the circuit stays open.
	CircuitBreakerTimeout time.Duration

	// RetryMaxAttempts is the maximum number of retry attempts.
	RetryMaxAttempts int

	// RetryInitialDelay is the initial delay between retries.
	RetryInitialDelay time.Duration

	// RetryBackoffMultiplier is the exponential backoff multiplier.
	RetryBackoffMultiplier float64

	// DefaultTimeout is the default execution timeout.
	DefaultTimeout time.Duration
}

// DefaultExecutorConfig returns a configuration with sensible defaults.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		MaxConcurrent:           10,
		CircuitBreakerThreshold: 5,
		CircuitBreakerTimeout:   30 * time.Second,
		RetryMaxAttempts:        3,
		RetryInitialDelay:       100 * time.Millisecond,
		RetryBackoffMultiplier:  2.0,
		DefaultTimeout:          30 * time.Second,
	}
}

// NewExecutor creates a new resilient executor.
func NewExecutor(config ExecutorConfig) *Executor {
	maxConcurrent := config.MaxConcurrent
	if maxConcurrent < 0 {
		maxConcurrent = 10 // default
	}
	threshold := config.CircuitBreakerThreshold
	if threshold < 0 {
		threshold = 5 // default
	}

	return &Executor{
		bulkhead: bulkhead.New[Result](bulkhead.Config{
			MaxConcurrent: maxConcurrent,
		}),
		breaker: circuitbreaker.New[Result](circuitbreaker.Config{
			MaxRequests: uint32(maxConcurrent), // #nosec G115 -- bounds checked above
			Interval:    config.CircuitBreakerTimeout,
			Timeout:     config.CircuitBreakerTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(threshold) // #nosec G115 -- bounds checked above
			},
		}),
		retry: retry.New[Result](retry.Config{
			MaxAttempts:   config.RetryMaxAttempts,
			InitialDelay:  config.RetryInitialDelay,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    config.RetryBackoffMultiplier,
		}),
		timeout: config.DefaultTimeout,
	}
}

// NewDefaultExecutor creates an executor with default configuration.
func NewDefaultExecutor() *Executor {
	return NewExecutor(DefaultExecutorConfig())
}

// Execute runs an action with resilience patterns applied.
// Composition order: Bulkhead → Timeout → Circuit Breaker → Retry
func (e *Executor) Execute(ctx context.Context, a action.Action) (Result, error) {
	start := time.Now()

	result, err := e.bulkhead.Execute(ctx, func(ctx context.Context) (Result, error) {
		// Apply timeout
		ctx, cancel := context.WithTimeout(ctx, e.timeout)
		defer cancel()

		// Apply circuit breaker
		return e.breaker.Execute(ctx, func(ctx context.Context) (Result, error) {
			return e.retry.Do(ctx, func(ctx context.Context) (Result, error) {
				// Re-check the runtime gate on every attempt.
				if !a.CanExecute() {
					return Result{}, fmt.Errorf("%w: %s", action.ErrNotExecutable, a.Name())
				}
				if err := a.Execute(ctx); err != nil {
					return Result{}, err
				}
				return Result{Action: a.Name()}, nil
			})
		})
	})

	if err == nil {
		result.Duration = time.Since(start)
	}

	return result, err
}

// ExecuteWithTimeout runs an action with a custom timeout.
func (e *Executor) ExecuteWithTimeout(ctx context.Context, a action.Action, timeout time.Duration) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return e.Execute(ctx, a)
}

// ExecuteSimple runs an action without resilience patterns.
func (e *Executor) ExecuteSimple(ctx context.Context, a action.Action) (Result, error) {
	start := time.Now()
	if !a.CanExecute() {
		return Result{}, fmt.Errorf("%w: %s", action.ErrNotExecutable, a.Name())
	}
	if err := a.Execute(ctx); err != nil {
		return Result{}, err
	}
	return Result{Action: a.Name(), Duration: time.Since(start)}, nil
}

// CircuitBreakerState returns the current state of the circuit breaker.
func (e *Executor) CircuitBreakerState() circuitbreaker.State {
	return e.breaker.State()
}
