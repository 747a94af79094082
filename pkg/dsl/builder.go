package dsl

import (
	"github.com/verdict-dev/verdict/pkg/domain"
)

// Builder manages the state definition construction. It implements
// ports.StateLoader, so it can be passed directly to the engine.
type Builder struct {
	order  []string
	states map[string]*StateBuilder
}

// New creates a new definition builder.
func New() *Builder {
	return &Builder{
		states: make(map[string]*StateBuilder),
	}
}

// State creates a new state in the definition.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{
		state:   domain.RawState{Name: name},
		builder: b,
	}
	b.order = append(b.order, name)
	b.states[name] = sb
	return sb
}

// Build compiles the definition into raw state descriptors, in
// declaration order. The descriptors still go through full validation
// when the engine is constructed.
func (b *Builder) Build() []domain.RawState {
	states := make([]domain.RawState, 0, len(b.order))
	for _, name := range b.order {
		states = append(states, b.states[name].state)
	}
	return states
}

// Load implements ports.StateLoader.
func (b *Builder) Load() ([]domain.RawState, error) {
	return b.Build(), nil
}

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	state   domain.RawState
	builder *Builder
}

// When appends condition atoms to the state. Atoms are conjunctive: all
// of them must hold for the state to be enabled.
func (s *StateBuilder) When(atoms ...string) *StateBuilder {
	s.state.Conditions = append(s.state.Conditions, atoms...)
	return s
}

// Extends declares that this state inherits the conditions of the named
// states.
func (s *StateBuilder) Extends(names ...string) *StateBuilder {
	s.state.Extends = append(s.state.Extends, names...)
	return s
}

// Overrides declares that this state suppresses the named states when
// both are enabled.
func (s *StateBuilder) Overrides(names ...string) *StateBuilder {
	s.state.Overrides = append(s.state.Overrides, names...)
	return s
}

// Counter declares a counter-state, engaged exactly when this state is
// not.
func (s *StateBuilder) Counter(name string) *StateBuilder {
	s.state.Counter = name
	return s
}

// State starts a new state on the parent builder, allowing chained
// definitions.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}
