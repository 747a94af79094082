// Package memory provides an in-memory MetadataSource. It backs tests,
// CLI-supplied metadata, and snapshots materialized by other adapters.
package memory

import (
	"fmt"

	"github.com/verdict-dev/verdict/pkg/domain"
)

// Metadata implements ports.MetadataSource over a plain map.
type Metadata struct {
	values map[string]domain.Value
}

// New creates an empty metadata snapshot.
func New() *Metadata {
	return &Metadata{values: make(map[string]domain.Value)}
}

// NewFromValues creates a snapshot from typed values.
func NewFromValues(values map[string]domain.Value) *Metadata {
	m := New()
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// NewFromAny creates a snapshot from dynamically typed values, as
// produced by JSON or YAML decoding. Kinds are inferred from the Go
// types (string, bool, float64, []string/[]any).
func NewFromAny(raw map[string]any) (*Metadata, error) {
	m := New()
	for k, v := range raw {
		if err := domain.CheckIdentifier(k); err != nil {
			return nil, fmt.Errorf("metadata: %w", err)
		}
		val, err := domain.FromAny(v)
		if err != nil {
			return nil, fmt.Errorf("metadata %q: %w", k, err)
		}
		m.values[k] = val
	}
	return m, nil
}

// Set stores a value under an identifier, replacing any previous one.
// The identifier is assumed valid per domain.CheckIdentifier; callers
// taking untrusted keys should go through NewFromAny instead.
func (m *Metadata) Set(identifier string, value domain.Value) *Metadata {
	m.values[identifier] = value
	return m
}

// Get returns the value for an identifier, or false when absent.
func (m *Metadata) Get(identifier string) (domain.Value, bool) {
	v, ok := m.values[identifier]
	return v, ok
}

// Len returns the number of identifiers in the snapshot.
func (m *Metadata) Len() int { return len(m.values) }
