package service

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/internal/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".eacdiff.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const sampleConfig = `[matching]
distance_levels = [0.1, 0.9]
max_lambda_depth = 4

[output]
format = "json"
show_unchanged = true

[input]
recursive = false
include_patterns = ["src/**/*.cs"]
exclude_patterns = ["**/Generated/**"]
`

func TestConfigurationLoader_LoadConfig(t *testing.T) {
	loader := NewConfigurationLoader()

	req, err := loader.LoadConfig(writeConfigFile(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, domain.OutputFormatJSON, req.OutputFormat)
	assert.True(t, req.ShowUnchanged)
	assert.Equal(t, []float64{0.1, 0.9}, req.DistanceLevels)
	assert.Equal(t, 4, req.MaxLambdaDepth)
	assert.Equal(t, os.Stdout, req.OutputWriter)
}

func TestConfigurationLoader_LoadConfigErrors(t *testing.T) {
	loader := NewConfigurationLoader()

	tests := []struct {
		name string
		path string
	}{
		{name: "missing file", path: filepath.Join(t.TempDir(), "missing.toml")},
		{name: "unknown key", path: writeConfigFile(t, "[matching]\nlevels = [0.5]\n")},
		{name: "invalid value", path: writeConfigFile(t, "[matching]\nmax_lambda_depth = 0\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.LoadConfig(tt.path)
			require.Error(t, err)
			assert.Equal(t, domain.ErrCodeConfigError, domain.ErrorCode(err))
		})
	}
}

func TestConfigurationLoader_LoadBatchConfig(t *testing.T) {
	req, err := NewConfigurationLoader().LoadBatchConfig(writeConfigFile(t, sampleConfig))
	require.NoError(t, err)

	assert.False(t, req.Recursive)
	assert.Equal(t, []string{"src/**/*.cs"}, req.IncludePatterns)
	assert.Equal(t, []string{"**/Generated/**"}, req.ExcludePatterns)
	assert.True(t, req.ShowProgress)
	assert.Equal(t, domain.OutputFormatJSON, req.OutputFormat)
}

func TestConfigurationLoader_MergeConfig(t *testing.T) {
	loader := NewConfigurationLoader()
	base := &domain.CompareRequest{
		OutputFormat:   domain.OutputFormatYAML,
		DistanceLevels: []float64{0.5, 1.0},
		MaxLambdaDepth: 8,
	}

	var out bytes.Buffer
	merged := loader.MergeConfig(base, &domain.CompareRequest{
		OldPath:        "a.cs",
		NewPath:        "b.cs",
		OutputWriter:   &out,
		MaxLambdaDepth: 2,
	})

	assert.Equal(t, "a.cs", merged.OldPath)
	assert.Equal(t, "b.cs", merged.NewPath)
	assert.Equal(t, &out, merged.OutputWriter)
	assert.Equal(t, domain.OutputFormatYAML, merged.OutputFormat)
	assert.Equal(t, []float64{0.5, 1.0}, merged.DistanceLevels)
	assert.Equal(t, 2, merged.MaxLambdaDepth)
	assert.Equal(t, 8, base.MaxLambdaDepth, "base is not modified")

	assert.Same(t, base, loader.MergeConfig(base, nil))
}

func TestConfigurationLoaderWithFlags_MergeConfig(t *testing.T) {
	base := &domain.CompareRequest{
		OutputFormat:   domain.OutputFormatJSON,
		ShowUnchanged:  true,
		DistanceLevels: []float64{0.5, 1.0},
		MaxLambdaDepth: 8,
	}
	// Flag defaults the user did not change
	override := &domain.CompareRequest{
		OldPath:        "a.cs",
		NewPath:        "b.cs",
		OutputFormat:   domain.OutputFormatText,
		ShowUnchanged:  false,
		DistanceLevels: []float64{0.00001, 0.5, 1.0},
		MaxLambdaDepth: 16,
	}

	t.Run("no flags set", func(t *testing.T) {
		loader := NewConfigurationLoaderWithFlags(config.NewFlagTracker())
		merged := loader.MergeConfig(base, override)

		assert.Equal(t, "a.cs", merged.OldPath)
		assert.Equal(t, domain.OutputFormatJSON, merged.OutputFormat)
		assert.True(t, merged.ShowUnchanged)
		assert.Equal(t, []float64{0.5, 1.0}, merged.DistanceLevels)
		assert.Equal(t, 8, merged.MaxLambdaDepth)
	})

	t.Run("explicit flags", func(t *testing.T) {
		tracker := config.NewFlagTrackerWithFlags(map[string]bool{
			FlagFormat:         true,
			FlagShowUnchanged:  true,
			FlagMaxLambdaDepth: true,
		})
		merged := NewConfigurationLoaderWithFlags(tracker).MergeConfig(base, override)

		assert.Equal(t, domain.OutputFormatText, merged.OutputFormat)
		assert.False(t, merged.ShowUnchanged)
		assert.Equal(t, []float64{0.5, 1.0}, merged.DistanceLevels)
		assert.Equal(t, 16, merged.MaxLambdaDepth)
	})

	t.Run("json shorthand", func(t *testing.T) {
		yamlBase := *base
		yamlBase.OutputFormat = domain.OutputFormatYAML
		jsonOverride := *override
		jsonOverride.OutputFormat = domain.OutputFormatJSON

		tracker := config.NewFlagTrackerWithFlags(map[string]bool{FlagJSON: true})
		merged := NewConfigurationLoaderWithFlags(tracker).MergeConfig(&yamlBase, &jsonOverride)
		assert.Equal(t, domain.OutputFormatJSON, merged.OutputFormat)
	})
}

func TestConfigurationLoaderWithFlags_MergeBatchConfig(t *testing.T) {
	base := &domain.BatchRequest{
		Recursive:       true,
		IncludePatterns: []string{"**/*.cs"},
		ExcludePatterns: []string{"**/bin/**"},
		ShowProgress:    true,
		MaxLambdaDepth:  16,
	}
	override := &domain.BatchRequest{
		OldDir:          "old",
		NewDir:          "new",
		Recursive:       false,
		IncludePatterns: []string{"src/**/*.cs"},
		ExcludePatterns: nil,
		ShowProgress:    false,
		MaxLambdaDepth:  16,
	}

	tracker := config.NewFlagTrackerWithFlags(map[string]bool{
		FlagRecursive:  true,
		FlagNoProgress: true,
	})
	merged := NewConfigurationLoaderWithFlags(tracker).MergeBatchConfig(base, override)

	assert.Equal(t, "old", merged.OldDir)
	assert.Equal(t, "new", merged.NewDir)
	assert.False(t, merged.Recursive)
	assert.False(t, merged.ShowProgress)
	assert.Equal(t, []string{"**/*.cs"}, merged.IncludePatterns)
	assert.Equal(t, []string{"**/bin/**"}, merged.ExcludePatterns)
}
