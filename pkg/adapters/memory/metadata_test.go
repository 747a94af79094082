package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdict-dev/verdict/pkg/domain"
)

func TestMetadata_Lookup(t *testing.T) {
	meta := New().
		Set("closed", domain.BoolValue(true)).
		Set("labels", domain.NewSet("bug", "ui"))

	v, ok := meta.Get("closed")
	require.True(t, ok)
	assert.Equal(t, domain.KindBool, v.Kind())

	_, ok = meta.Get("assignee")
	assert.False(t, ok, "absent identifiers report false, not an error")
}

func TestNewFromAny(t *testing.T) {
	meta, err := NewFromAny(map[string]any{
		"title":        "crash on save",
		"review_count": float64(2),
		"closed":       false,
		"labels":       []any{"bug", "p1"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, meta.Len())

	v, ok := meta.Get("labels")
	require.True(t, ok)
	assert.Equal(t, domain.KindSet, v.Kind())

	_, err = NewFromAny(map[string]any{"bad": map[string]any{}})
	assert.Error(t, err)
}

func TestNewFromAny_RejectsInvalidIdentifiers(t *testing.T) {
	for _, key := range []string{"a=b", "a b", "done!", ""} {
		_, err := NewFromAny(map[string]any{key: "x"})
		assert.Error(t, err, "key %q", key)
	}
}
