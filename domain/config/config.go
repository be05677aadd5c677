// Package config provides domain models for agent configuration.
package config

import "time"

// AgentConfig represents the complete agent configuration.
type AgentConfig struct {
	// Name is a human-readable name for this configuration.
	Name string `json:"name" yaml:"name"`
	// Version is the configuration schema version.
	Version string `json:"version" yaml:"version"`
	// Description describes the agent's purpose.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Agent contains core agent loop settings.
	Agent AgentSettings `json:"agent" yaml:"agent"`
	// Planner contains planning strategy settings.
	Planner PlannerConfig `json:"planner,omitempty" yaml:"planner,omitempty"`
	// World is the initial fact state.
	World []FactConfig `json:"world,omitempty" yaml:"world,omitempty"`
	// Goals are the goals available to the agent, in declaration order.
	Goals []GoalConfig `json:"goals,omitempty" yaml:"goals,omitempty"`
	// Actions are the declarative action descriptors.
	Actions []ActionConfig `json:"actions,omitempty" yaml:"actions,omitempty"`
	// Resilience contains action execution resilience settings.
	Resilience ResilienceConfig `json:"resilience,omitempty" yaml:"resilience,omitempty"`
	// Cache configures the plan cache.
	Cache CacheConfig `json:"cache,omitempty" yaml:"cache,omitempty"`
	// Logging configures structured logging.
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// AgentSettings contains core agent loop behavior settings.
type AgentSettings struct {
	// MaxSteps is the maximum number of loop steps per run.
	MaxSteps int `json:"max_steps,omitempty" yaml:"max_steps,omitempty"`
}

// PlannerConfig contains planning strategy settings.
type PlannerConfig struct {
	// Strategy selects the planner (greedy or search).
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	// MaxDepth bounds the greedy planner's backtracking.
	MaxDepth int `json:"max_depth,omitempty" yaml:"max_depth,omitempty"`
	// MaxIterations bounds the cost-aware planner's search loop.
	MaxIterations int `json:"max_iterations,omitempty" yaml:"max_iterations,omitempty"`
}

// Planner strategy names.
const (
	StrategyGreedy = "greedy"
	StrategySearch = "search"
)

// FactConfig declares one initial fact.
type FactConfig struct {
	// Name is the fact name, case-sensitive.
	Name string `json:"name" yaml:"name"`
	// Value is the fact's boolean value.
	Value bool `json:"value" yaml:"value"`
}

// GoalConfig declares one goal.
type GoalConfig struct {
	// Name identifies the goal.
	Name string `json:"name" yaml:"name"`
	// Priority orders goal selection; higher wins.
	Priority float64 `json:"priority,omitempty" yaml:"priority,omitempty"`
	// Desired are the fact values the goal requires.
	Desired []FactConfig `json:"desired" yaml:"desired"`
}

// ActionConfig declares one action descriptor.
type ActionConfig struct {
	// Name identifies the action.
	Name string `json:"name" yaml:"name"`
	// Cost is the planning cost (default 1.0).
	Cost *float64 `json:"cost,omitempty" yaml:"cost,omitempty"`
	// Preconditions are the fact values required before selection.
	Preconditions []FactConfig `json:"preconditions,omitempty" yaml:"preconditions,omitempty"`
	// Effects are the fact values the action sets.
	Effects []FactConfig `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// ResilienceConfig contains action execution resilience settings.
type ResilienceConfig struct {
	// MaxConcurrent limits concurrent action executions.
	MaxConcurrent int `json:"max_concurrent,omitempty" yaml:"max_concurrent,omitempty"`
	// CircuitBreakerThreshold is failures before the circuit opens.
	CircuitBreakerThreshold int `json:"circuit_breaker_threshold,omitempty" yaml:"circuit_breaker_threshold,omitempty"`
	// CircuitBreakerTimeout is how long the circuit stays open.
	CircuitBreakerTimeout time.Duration `json:"circuit_breaker_timeout,omitempty" yaml:"circuit_breaker_timeout,omitempty"`
	// RetryMaxAttempts is the maximum number of retry attempts.
	RetryMaxAttempts int `json:"retry_max_attempts,omitempty" yaml:"retry_max_attempts,omitempty"`
	// RetryInitialDelay is the initial delay between retries.
	RetryInitialDelay time.Duration `json:"retry_initial_delay,omitempty" yaml:"retry_initial_delay,omitempty"`
	// DefaultTimeout is the default execution timeout.
	DefaultTimeout time.Duration `json:"default_timeout,omitempty" yaml:"default_timeout,omitempty"`
}

// CacheConfig configures the plan cache.
type CacheConfig struct {
	// Backend selects the cache backend (memory or redis).
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`
	// TTL is how long cached plans stay valid.
	TTL time.Duration `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	// Addr is the redis address for the redis backend.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
	// Password is the redis password for the redis backend.
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	// DB is the redis database index for the redis backend.
	DB int `json:"db,omitempty" yaml:"db,omitempty"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	// Level is the minimum log level (trace, debug, info, warn, error).
	Level string `json:"level,omitempty" yaml:"level,omitempty"`
	// Format is the output format (json or console).
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *AgentConfig {
	return &AgentConfig{
		Version: "1.0",
		Agent: AgentSettings{
			MaxSteps: 100,
		},
		Planner: PlannerConfig{
			Strategy:      StrategySearch,
			MaxDepth:      5,
			MaxIterations: 1000,
		},
		Cache: CacheConfig{
			Backend: "memory",
			TTL:     time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
