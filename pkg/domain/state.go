package domain

// RawState is the unvalidated state descriptor produced by loaders.
// Relation targets are referenced by name; they are resolved and checked
// when the state graph is built.
type RawState struct {
	// Name of the state. Must be unique across the list.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Conditions holds the state's own condition atoms in the condition
	// grammar, one atom per entry.
	Conditions []string `json:"conditions,omitempty" yaml:"conditions,omitempty" mapstructure:"conditions"`

	// Extends names states whose effective conditions this state inherits.
	Extends []string `json:"extends,omitempty" yaml:"extends,omitempty" mapstructure:"extends"`

	// Overrides names states this state suppresses when both are enabled.
	Overrides []string `json:"overrides,omitempty" yaml:"overrides,omitempty" mapstructure:"overrides"`

	// Counter optionally names a synthetic counter-state, engaged exactly
	// when this state is not. A counter-state carries no condition and may
	// not participate in any relation.
	Counter string `json:"counter,omitempty" yaml:"counter,omitempty" mapstructure:"counter"`
}

// StateInfo is the read-only view of one validated state, exposed for
// introspection and visualization.
type StateInfo struct {
	Name       string   `json:"name"`
	Conditions []string `json:"conditions,omitempty"`
	Extends    []string `json:"extends,omitempty"`
	Overrides  []string `json:"overrides,omitempty"`
	// Counter is true for synthetic counter-states; Origin then names the
	// state being countered.
	Counter bool   `json:"counter,omitempty"`
	Origin  string `json:"origin,omitempty"`
}

// Outcome is the result of one resolution. Resolution is a pure function
// of (graph, metadata): identical inputs yield identical outcomes.
type Outcome struct {
	// State is the selected state name; empty when no state is engaged.
	State string `json:"state,omitempty"`
	// Matched reports whether a state was selected.
	Matched bool `json:"matched"`
	// Enabled lists every state whose effective condition held, sorted.
	Enabled []string `json:"enabled,omitempty"`
	// Engaged lists the enabled states that survived override
	// suppression, sorted. More than one entry is an ambiguity and is
	// reported as an error alongside the outcome.
	Engaged []string `json:"engaged,omitempty"`
}
