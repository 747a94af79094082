package domain

import (
	"fmt"
	"strings"
)

// ConfigErrorKind classifies graph construction failures.
type ConfigErrorKind string

const (
	// ErrDuplicateName: two states share a name.
	ErrDuplicateName ConfigErrorKind = "DuplicateName"
	// ErrCycleDetected: extends, overrides, or their union is cyclic.
	ErrCycleDetected ConfigErrorKind = "CycleDetected"
	// ErrRelationConflict: a pair of states is related by both extends
	// and overrides.
	ErrRelationConflict ConfigErrorKind = "RelationConflict"
	// ErrInvalidCounterReference: a relation references a counter-state.
	ErrInvalidCounterReference ConfigErrorKind = "InvalidCounterReference"
	// ErrUnknownState: a relation references a name that does not exist.
	ErrUnknownState ConfigErrorKind = "UnknownState"
	// ErrInvalidCondition: a condition string does not parse.
	ErrInvalidCondition ConfigErrorKind = "InvalidCondition"
)

// ConfigError is a build-time failure. It is fatal to graph construction:
// no partially usable graph is ever returned alongside one.
type ConfigError struct {
	Kind   ConfigErrorKind
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid state configuration (%s): %s", e.Kind, e.Detail)
}

// TypeError is an evaluation-time failure: a comparison operator was used
// against a kind that does not support it, under the strict policy.
type TypeError struct {
	Op     Op
	Kind   Kind
	Detail string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("operator %q undefined for %s values: %s", e.Op, e.Kind, e.Detail)
}

// AmbiguousStateError is a resolution-time failure: more than one
// mutually non-overriding state is engaged for the given metadata. The
// engine never breaks the tie itself; the caller decides.
type AmbiguousStateError struct {
	States []string
}

func (e *AmbiguousStateError) Error() string {
	return fmt.Sprintf("ambiguous resolution: %d states engaged (%s)",
		len(e.States), strings.Join(e.States, ", "))
}
