package checker_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/importcheck/internal/checker"
)

// writeRepo creates a repository with the root marker and the given files,
// keyed by slash-separated path relative to the root.
func writeRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	files[checker.DefaultMarker] = "package main\n"

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	return root
}

func repoPath(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
