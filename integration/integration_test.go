//go:build integration

package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// skipIfGoNotInstalled skips the test if the go command is not on PATH.
func skipIfGoNotInstalled(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not installed")
	}
}

// buildDevServer compiles the demonstration server and returns its path.
func buildDevServer(t *testing.T) string {
	t.Helper()
	skipIfGoNotInstalled(t)

	bin := filepath.Join(t.TempDir(), "dev-server")

	out, err := exec.CommandContext(t.Context(), "go", "build", "-o", bin, "../examples/dev_server").CombinedOutput()
	require.NoError(t, err, string(out))

	return bin
}

// writeModule creates a small Go module for the review tool to check.
func writeModule(t *testing.T, source string) string {
	t.Helper()

	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/reviewed\n\ngo 1.22\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.go"), []byte(source), 0o600))

	return dir
}
