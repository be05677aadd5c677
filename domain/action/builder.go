package action

import "github.com/felixgeelhaar/goap-go/domain/world"

// Builder provides a fluent API for constructing actions.
type Builder struct {
	def *Definition
	err error
}

// NewBuilder creates a new action builder with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		def: &Definition{
			name:          name,
			preconditions: world.New(),
			effects:       world.New(),
			cost:          DefaultCost,
		},
	}
}

// WithPrecondition adds a fact-value requirement the action imposes.
func (b *Builder) WithPrecondition(name string, value bool) *Builder {
	if b.err != nil {
		return b
	}
	b.def.preconditions[name] = value
	return b
}

// WithPreconditions merges the given state into the preconditions.
func (b *Builder) WithPreconditions(state world.State) *Builder {
	if b.err != nil {
		return b
	}
	b.def.preconditions = b.def.preconditions.Apply(state)
	return b
}

// WithEffect adds a fact-value change the action's selection causes.
func (b *Builder) WithEffect(name string, value bool) *Builder {
	if b.err != nil {
		return b
	}
	b.def.effects[name] = value
	return b
}

// WithEffects merges the given state into the effects.
func (b *Builder) WithEffects(state world.State) *Builder {
	if b.err != nil {
		return b
	}
	b.def.effects = b.def.effects.Apply(state)
	return b
}

// WithCost sets the planning cost. Negative costs are rejected at Build.
func (b *Builder) WithCost(cost float64) *Builder {
	if b.err != nil {
		return b
	}
	b.def.cost = cost
	return b
}

// WithGate sets the runtime executability gate.
func (b *Builder) WithGate(gate Gate) *Builder {
	if b.err != nil {
		return b
	}
	b.def.gate = gate
	return b
}

// WithHandler sets the execution handler.
func (b *Builder) WithHandler(handler Handler) *Builder {
	if b.err != nil {
		return b
	}
	b.def.handler = handler
	return b
}

// Build constructs the action definition.
func (b *Builder) Build() (Action, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.def.name == "" {
		return nil, ErrEmptyName
	}
	if b.def.cost < 0 {
		return nil, ErrNegativeCost
	}
	return b.def, nil
}

// MustBuild constructs the action definition or panics on error.
func (b *Builder) MustBuild() Action {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
