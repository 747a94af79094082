package ports

import "github.com/verdict-dev/verdict/pkg/domain"

// MetadataSource is a read-only snapshot of one issue's metadata.
// Lookups are idempotent, side-effect free and consistent for the
// duration of a resolution: the core never observes mutation
// mid-resolution. Backends with asynchronous retrieval materialize a
// snapshot first (see the redis adapter).
type MetadataSource interface {
	// Get returns the value for an identifier, or false when the
	// identifier is absent. Absence is a normal input, not an error.
	Get(identifier string) (domain.Value, bool)
}

// StateLoader produces the raw state descriptor list consumed by graph
// construction.
type StateLoader interface {
	Load() ([]domain.RawState, error)
}
