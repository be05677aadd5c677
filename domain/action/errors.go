package action

import "errors"

// Domain errors for the action system.
var (
	// ErrEmptyName indicates an action was created with an empty name.
	ErrEmptyName = errors.New("action name cannot be empty")

	// ErrNoHandler indicates an action was executed without a handler.
	ErrNoHandler = errors.New("action has no handler")

	// ErrNegativeCost indicates an action was created with a negative cost.
	ErrNegativeCost = errors.New("action cost cannot be negative")

	// ErrActionNotFound indicates the requested action was not found.
	ErrActionNotFound = errors.New("action not found")

	// ErrActionExists indicates an action with the same name is already registered.
	ErrActionExists = errors.New("action already registered")

	// ErrNotExecutable indicates the action's runtime gate rejected execution.
	ErrNotExecutable = errors.New("action is not currently executable")
)
