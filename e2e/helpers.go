package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildEacdiffBinary builds the CLI from the project root into a temporary
// directory
func buildEacdiffBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "eacdiff")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/eacdiff")

	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build eacdiff binary: %v\n%s", err, output)
	}
	return binaryPath
}

// createTestCSharpFile writes content to dir/name, creating parent
// directories
func createTestCSharpFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	filePath := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", name, err)
	}
	return filePath
}
