package yamlfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdict-dev/verdict/pkg/adapters/yamlfile"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_YAML(t *testing.T) {
	path := writeFile(t, "states.yaml", `
states:
  - open
  - name: closed
    conditions: closed=true
    overrides: open
  - name: assigned
    conditions: assignee
    counter: unassigned
`)

	raw, err := yamlfile.New(path).Load()
	require.NoError(t, err)
	require.Len(t, raw, 3)

	assert.Equal(t, "open", raw[0].Name)
	assert.Empty(t, raw[0].Conditions)

	assert.Equal(t, "closed", raw[1].Name)
	assert.Equal(t, []string{"closed=true"}, raw[1].Conditions)
	assert.Equal(t, []string{"open"}, raw[1].Overrides)

	assert.Equal(t, "assigned", raw[2].Name)
	assert.Equal(t, "unassigned", raw[2].Counter)
}

func TestLoader_JSON(t *testing.T) {
	path := writeFile(t, "states.json", `{
  "states": [
    "open",
    {"name": "closed", "conditions": ["closed=true"], "overrides": ["open"]}
  ]
}`)

	raw, err := yamlfile.New(path).Load()
	require.NoError(t, err)
	require.Len(t, raw, 2)
	assert.Equal(t, []string{"open"}, raw[1].Overrides)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := yamlfile.New(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	assert.Error(t, err)
}

func TestParse_MissingStatesKey(t *testing.T) {
	_, err := yamlfile.Parse([]byte("other: 1\n"), ".yaml")
	assert.ErrorContains(t, err, "states")
}

func TestParse_UnknownField(t *testing.T) {
	_, err := yamlfile.Parse([]byte(`
states:
  - name: open
    condiitons: closed=true
`), ".yaml")
	assert.Error(t, err, "typoed fields are rejected, not dropped")
}
