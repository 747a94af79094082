package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteDefinition writes a state definition document into a temporary
// directory and returns its path. It fails the test immediately on
// error.
func WriteDefinition(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "states.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write state definition")
	return path
}
