package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdict-dev/verdict/pkg/adapters/redis"
	"github.com/verdict-dev/verdict/pkg/domain"
)

func testClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSource_Snapshot(t *testing.T) {
	mr, client := testClient(t)
	mr.HSet("issue:42",
		"assignee", "ada",
		"priority", "5",
		"closed", "true",
		"labels", "bug,regression",
	)

	src := redis.NewSource(client, "issue:", map[string]domain.Kind{
		"priority": domain.KindNumber,
		"closed":   domain.KindBool,
		"labels":   domain.KindSet,
	})

	meta, err := src.Snapshot(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, 4, meta.Len())

	value, ok := meta.Get("priority")
	require.True(t, ok)
	assert.Equal(t, domain.KindNumber, value.Kind())

	value, ok = meta.Get("assignee")
	require.True(t, ok)
	assert.Equal(t, domain.KindString, value.Kind(), "unschematized fields default to strings")

	value, ok = meta.Get("labels")
	require.True(t, ok)
	assert.Equal(t, domain.KindSet, value.Kind())
}

func TestSource_MissingKey(t *testing.T) {
	_, client := testClient(t)
	src := redis.NewSource(client, "issue:", nil)

	meta, err := src.Snapshot(context.Background(), "absent")
	require.NoError(t, err)
	assert.Equal(t, 0, meta.Len())
}

func TestSource_BadSchemaValue(t *testing.T) {
	mr, client := testClient(t)
	mr.HSet("issue:7", "priority", "not-a-number")

	src := redis.NewSource(client, "issue:", map[string]domain.Kind{
		"priority": domain.KindNumber,
	})

	_, err := src.Snapshot(context.Background(), "7")
	assert.Error(t, err)
}

func TestSource_RejectsInvalidFieldNames(t *testing.T) {
	mr, client := testClient(t)
	mr.HSet("issue:9", "bad=field", "x")

	src := redis.NewSource(client, "issue:", nil)

	_, err := src.Snapshot(context.Background(), "9")
	assert.Error(t, err)
}
