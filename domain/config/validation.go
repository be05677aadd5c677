package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Path is the JSON path to the invalid field.
	Path string
	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d validation errors:\n  - %s", len(e), strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates agent configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(config *AgentConfig) ValidationErrors {
	v.errors = nil

	v.validateRequired(config)
	v.validateAgent(config)
	v.validatePlanner(config)
	v.validateGoals(config)
	v.validateActions(config)
	v.validateCache(config)
	v.validateLogging(config)

	return v.errors
}

func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}

func (v *Validator) validateRequired(config *AgentConfig) {
	if config.Name == "" {
		v.addError("name", "name is required")
	}
	if config.Version == "" {
		v.addError("version", "version is required")
	}
}

func (v *Validator) validateAgent(config *AgentConfig) {
	if config.Agent.MaxSteps < 0 {
		v.addError("agent.max_steps", "must not be negative")
	}
}

func (v *Validator) validatePlanner(config *AgentConfig) {
	switch config.Planner.Strategy {
	case "", StrategyGreedy, StrategySearch:
	default:
		v.addError("planner.strategy", fmt.Sprintf("unknown strategy %q", config.Planner.Strategy))
	}
	if config.Planner.MaxDepth < 0 {
		v.addError("planner.max_depth", "must not be negative")
	}
	if config.Planner.MaxIterations < 0 {
		v.addError("planner.max_iterations", "must not be negative")
	}
}

func (v *Validator) validateGoals(config *AgentConfig) {
	seen := make(map[string]bool)
	for i, g := range config.Goals {
		path := fmt.Sprintf("goals[%d]", i)
		if g.Name == "" {
			v.addError(path+".name", "name is required")
		} else if seen[g.Name] {
			v.addError(path+".name", fmt.Sprintf("duplicate goal %q", g.Name))
		}
		seen[g.Name] = true
		if len(g.Desired) == 0 {
			v.addError(path+".desired", "at least one desired fact is required")
		}
		for j, f := range g.Desired {
			if f.Name == "" {
				v.addError(fmt.Sprintf("%s.desired[%d].name", path, j), "fact name is required")
			}
		}
	}
}

func (v *Validator) validateActions(config *AgentConfig) {
	seen := make(map[string]bool)
	for i, a := range config.Actions {
		path := fmt.Sprintf("actions[%d]", i)
		if a.Name == "" {
			v.addError(path+".name", "name is required")
		} else if seen[a.Name] {
			v.addError(path+".name", fmt.Sprintf("duplicate action %q", a.Name))
		}
		seen[a.Name] = true
		if a.Cost != nil && *a.Cost < 0 {
			v.addError(path+".cost", "must not be negative")
		}
		for j, f := range a.Preconditions {
			if f.Name == "" {
				v.addError(fmt.Sprintf("%s.preconditions[%d].name", path, j), "fact name is required")
			}
		}
		for j, f := range a.Effects {
			if f.Name == "" {
				v.addError(fmt.Sprintf("%s.effects[%d].name", path, j), "fact name is required")
			}
		}
	}
}

func (v *Validator) validateCache(config *AgentConfig) {
	switch config.Cache.Backend {
	case "", "memory", "redis":
	default:
		v.addError("cache.backend", fmt.Sprintf("unknown backend %q", config.Cache.Backend))
	}
	if config.Cache.Backend == "redis" && config.Cache.Addr == "" {
		v.addError("cache.addr", "redis backend requires an address")
	}
	if config.Cache.TTL < 0 {
		v.addError("cache.ttl", "must not be negative")
	}
}

func (v *Validator) validateLogging(config *AgentConfig) {
	switch config.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		v.addError("logging.level", fmt.Sprintf("unknown level %q", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "", "json", "console":
	default:
		v.addError("logging.format", fmt.Sprintf("unknown format %q", config.Logging.Format))
	}
}
