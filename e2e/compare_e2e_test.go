package e2e

import (
	"bytes"
	"encoding/json"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

const orderServiceV1 = `namespace Shop
{
    public class OrderService
    {
        public decimal Total(Order order)
        {
            var sum = 0m;
            foreach (var line in order.Lines)
            {
                sum += line.Price;
            }
            return sum;
        }

        public void Cancel(Order order)
        {
            order.State = State.Cancelled;
        }
    }
}`

const orderServiceV2 = `namespace Shop
{
    public class OrderService
    {
        public decimal Total(Order order)
        {
            var sum = 0m;
            foreach (var line in order.Lines)
            {
                sum += line.Price * line.Quantity;
            }
            return sum;
        }

        public void Ship(Order order)
        {
            order.State = State.Shipped;
        }
    }
}`

func runEacdiff(t *testing.T, binaryPath string, args ...string) (string, string, int) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return stdout.String(), stderr.String(), 0
	case errors.As(err, &exitErr):
		return stdout.String(), stderr.String(), exitErr.ExitCode()
	}
	t.Fatalf("Failed to run eacdiff: %v", err)
	return "", "", 0
}

// TestCompareE2EText compares two files and checks the text report
func TestCompareE2EText(t *testing.T) {
	binaryPath := buildEacdiffBinary(t)

	testDir := t.TempDir()
	oldPath := createTestCSharpFile(t, testDir, "v1/OrderService.cs", orderServiceV1)
	newPath := createTestCSharpFile(t, testDir, "v2/OrderService.cs", orderServiceV2)

	stdout, stderr, code := runEacdiff(t, binaryPath, "compare", "--no-color", oldPath, newPath)
	if code != 0 {
		t.Fatalf("Command failed with exit code %d\nStderr: %s", code, stderr)
	}

	for _, want := range []string{
		"Shop.OrderService.Total(Order)",
		"Shop.OrderService.Cancel(Order)",
		"Shop.OrderService.Ship(Order)",
		"update",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Output should contain %q\n%s", want, stdout)
		}
	}
}

// TestCompareE2EJSON checks the member statuses of the JSON report
func TestCompareE2EJSON(t *testing.T) {
	binaryPath := buildEacdiffBinary(t)

	testDir := t.TempDir()
	oldPath := createTestCSharpFile(t, testDir, "v1/OrderService.cs", orderServiceV1)
	newPath := createTestCSharpFile(t, testDir, "v2/OrderService.cs", orderServiceV2)

	stdout, stderr, code := runEacdiff(t, binaryPath, "compare", "--json", oldPath, newPath)
	if code != 0 {
		t.Fatalf("Command failed with exit code %d\nStderr: %s", code, stderr)
	}

	var report struct {
		Members []struct {
			Signature string `json:"signature"`
			Status    string `json:"status"`
		} `json:"members"`
		Summary struct {
			ModifiedMembers int `json:"modified_members"`
			InsertedMembers int `json:"inserted_members"`
			DeletedMembers  int `json:"deleted_members"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("Invalid JSON output: %v\n%s", err, stdout)
	}

	statuses := make(map[string]string)
	for _, member := range report.Members {
		statuses[member.Signature] = member.Status
	}
	expected := map[string]string{
		"Shop.OrderService.Total(Order)":  "modified",
		"Shop.OrderService.Cancel(Order)": "deleted",
		"Shop.OrderService.Ship(Order)":   "inserted",
	}
	for signature, status := range expected {
		if statuses[signature] != status {
			t.Errorf("%s: status %q, want %q", signature, statuses[signature], status)
		}
	}
	if report.Summary.ModifiedMembers != 1 || report.Summary.InsertedMembers != 1 || report.Summary.DeletedMembers != 1 {
		t.Errorf("Unexpected summary: %+v", report.Summary)
	}
}

// TestCompareE2EExitCode checks the exit status contract
func TestCompareE2EExitCode(t *testing.T) {
	binaryPath := buildEacdiffBinary(t)

	testDir := t.TempDir()
	oldPath := createTestCSharpFile(t, testDir, "v1/OrderService.cs", orderServiceV1)
	newPath := createTestCSharpFile(t, testDir, "v2/OrderService.cs", orderServiceV2)
	brokenPath := createTestCSharpFile(t, testDir, "broken/OrderService.cs", "public class OrderService {")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "identical", args: []string{"compare", "--exit-code", oldPath, oldPath}, want: 0},
		{name: "changed", args: []string{"compare", "--exit-code", oldPath, newPath}, want: 1},
		{name: "changed without flag", args: []string{"compare", oldPath, newPath}, want: 0},
		{name: "syntax error", args: []string{"compare", oldPath, brokenPath}, want: 2},
		{name: "missing file", args: []string{"compare", oldPath, filepath.Join(testDir, "missing.cs")}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runEacdiff(t, binaryPath, tt.args...)
			if code != tt.want {
				t.Errorf("Exit code %d, want %d\nStderr: %s", code, tt.want, stderr)
			}
		})
	}
}

// TestBatchE2E compares two trees
func TestBatchE2E(t *testing.T) {
	binaryPath := buildEacdiffBinary(t)

	testDir := t.TempDir()
	createTestCSharpFile(t, testDir, "v1/Orders/OrderService.cs", orderServiceV1)
	createTestCSharpFile(t, testDir, "v2/Orders/OrderService.cs", orderServiceV2)
	createTestCSharpFile(t, testDir, "v1/Legacy.cs", orderServiceV1)
	createTestCSharpFile(t, testDir, "v2/bin/Generated.cs", orderServiceV1)

	stdout, stderr, code := runEacdiff(t, binaryPath, "batch", "--json", "--no-progress",
		filepath.Join(testDir, "v1"), filepath.Join(testDir, "v2"))
	if code != 0 {
		t.Fatalf("Command failed with exit code %d\nStderr: %s", code, stderr)
	}

	var report struct {
		RemovedFiles []string `json:"removed_files"`
		AddedFiles   []string `json:"added_files"`
		Summary      struct {
			FilesCompared int `json:"files_compared"`
			FilesChanged  int `json:"files_changed"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("Invalid JSON output: %v\n%s", err, stdout)
	}

	if report.Summary.FilesCompared != 1 || report.Summary.FilesChanged != 1 {
		t.Errorf("Unexpected summary: %+v", report.Summary)
	}
	if len(report.RemovedFiles) != 1 || report.RemovedFiles[0] != "Legacy.cs" {
		t.Errorf("Unexpected removed files: %v", report.RemovedFiles)
	}
	if len(report.AddedFiles) != 0 {
		t.Errorf("Files under bin/ should be skipped, got added files %v", report.AddedFiles)
	}
}
