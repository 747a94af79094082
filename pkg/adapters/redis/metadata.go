// Package redis sources issue metadata from Redis hashes.
//
// Each issue is one hash whose fields are metadata identifiers and whose
// values are the textual form of the metadata value. Because every hash
// field is a string, the adapter carries a schema mapping identifiers to
// value kinds; fields absent from the schema are read as strings.
package redis

import (
	"context"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/verdict-dev/verdict/pkg/adapters/memory"
	"github.com/verdict-dev/verdict/pkg/domain"
)

// Source reads metadata snapshots for issues stored as Redis hashes.
type Source struct {
	client *backend.Client
	prefix string
	schema map[string]domain.Kind
}

// NewSource creates a metadata source over the given client. Keys are
// looked up as prefix+issueID. The schema maps identifiers to the kind
// their hash field should be parsed as; it may be nil.
func NewSource(client *backend.Client, prefix string, schema map[string]domain.Kind) *Source {
	return &Source{
		client: client,
		prefix: prefix,
		schema: schema,
	}
}

// Snapshot fetches the hash for issueID and materializes it as an
// in-memory metadata snapshot. A missing key yields an empty snapshot,
// which resolves like an issue with no metadata at all.
func (s *Source) Snapshot(ctx context.Context, issueID string) (*memory.Metadata, error) {
	fields, err := s.client.HGetAll(ctx, s.prefix+issueID).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error reading issue %q: %w", issueID, err)
	}

	meta := memory.New()
	for field, text := range fields {
		if err := domain.CheckIdentifier(field); err != nil {
			return nil, fmt.Errorf("issue %q: %w", issueID, err)
		}
		kind, ok := s.schema[field]
		if !ok {
			kind = domain.KindString
		}
		value, err := domain.ParseValue(kind, text)
		if err != nil {
			return nil, fmt.Errorf("issue %q field %q: %w", issueID, field, err)
		}
		meta.Set(field, value)
	}
	return meta, nil
}
