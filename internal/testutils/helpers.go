// Package testutils holds fixtures shared by the package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupSurveyDir creates a temporary directory holding files (name -> content).
// It returns the absolute path to the directory and fails the test immediately on error.
func SetupSurveyDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		WriteSurvey(t, dir, name, content)
	}
	return dir
}

// WriteSurvey writes content to dir/name and returns the file path.
func WriteSurvey(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", name)
	return path
}
