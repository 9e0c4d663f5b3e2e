package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/eacdiff/app"
	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/service"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
}

func widget(statement string) string {
	return fmt.Sprintf(`class Widget
{
    void Render()
    {
        %s
    }
}`, statement)
}

func newBatchUseCase(t *testing.T) *app.BatchUseCase {
	t.Helper()
	fileReader := service.NewFileReader()
	useCase, err := app.NewBatchUseCaseBuilder().
		WithService(service.NewCompareServiceWithReader(fileReader)).
		WithFileReader(fileReader).
		WithFormatter(service.NewOutputFormatter()).
		WithConfigLoader(service.NewConfigurationLoader()).
		WithConcurrency(2).
		Build()
	if err != nil {
		t.Fatalf("Failed to build batch use case: %v", err)
	}
	return useCase
}

func batchRequest(oldDir, newDir string, output *bytes.Buffer) domain.BatchRequest {
	return domain.BatchRequest{
		OldDir:          oldDir,
		NewDir:          newDir,
		Recursive:       true,
		IncludePatterns: domain.DefaultIncludePatterns,
		ExcludePatterns: domain.DefaultExcludePatterns,
		OutputFormat:    domain.OutputFormatText,
		OutputWriter:    output,
		DistanceLevels:  domain.DefaultDistanceLevels,
		MaxLambdaDepth:  domain.DefaultMaxLambdaDepth,
	}
}

// TestBatchCancellation checks that a cancelled context stops the batch
func TestBatchCancellation(t *testing.T) {
	tempDir := t.TempDir()
	oldDir := filepath.Join(tempDir, "old")
	newDir := filepath.Join(tempDir, "new")
	writeTree(t, oldDir, map[string]string{"Widget.cs": widget("Draw();")})
	writeTree(t, newDir, map[string]string{"Widget.cs": widget("Draw(1);")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var output bytes.Buffer
	err := newBatchUseCase(t).Execute(ctx, batchRequest(oldDir, newDir, &output))
	if err == nil {
		t.Fatal("Expected an error for a cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if output.Len() != 0 {
		t.Errorf("Expected no report for a cancelled batch, got:\n%s", output.String())
	}
}

// TestBatchWithBrokenFile checks that one unparsable file does not stop the
// batch
func TestBatchWithBrokenFile(t *testing.T) {
	tempDir := t.TempDir()
	oldDir := filepath.Join(tempDir, "old")
	newDir := filepath.Join(tempDir, "new")

	oldFiles := make(map[string]string)
	newFiles := make(map[string]string)
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("Widgets/Widget%d.cs", i)
		oldFiles[name] = widget("Draw();")
		newFiles[name] = widget(fmt.Sprintf("Draw(%d);", i))
	}
	newFiles["Widgets/Widget3.cs"] = "class Widget {"
	writeTree(t, oldDir, oldFiles)
	writeTree(t, newDir, newFiles)

	response, err := newBatchUseCase(t).Run(context.Background(), batchRequest(oldDir, newDir, nil))
	if err != nil {
		t.Fatalf("Batch failed: %v", err)
	}

	if response.Summary.FilesCompared != 7 {
		t.Errorf("Expected 7 compared files, got %d", response.Summary.FilesCompared)
	}
	if response.Summary.FilesFailed != 1 {
		t.Errorf("Expected 1 failed file, got %d", response.Summary.FilesFailed)
	}
	if response.Summary.FilesChanged != 7 {
		t.Errorf("Expected 7 changed files, got %d", response.Summary.FilesChanged)
	}
	if len(response.Errors) != 1 || !strings.Contains(response.Errors[0], "Widget3.cs") {
		t.Errorf("Expected one error naming Widget3.cs, got %v", response.Errors)
	}
}
