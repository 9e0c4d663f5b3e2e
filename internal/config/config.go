package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"

	"github.com/ludo-technologies/eacdiff/domain"
)

// ConfigFileNames are the configuration files looked up from the working
// directory upward, in order of precedence
var ConfigFileNames = []string{
	".eacdiff.toml",
	"eacdiff.toml",
	".eacdiff.yaml",
	".eacdiff.yml",
}

// Config represents the main configuration structure
type Config struct {
	// Matching holds the statement matching configuration
	Matching MatchingConfig `mapstructure:"matching" yaml:"matching" toml:"matching"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" toml:"output"`

	// Input holds file selection configuration for batch comparisons
	Input InputConfig `mapstructure:"input" yaml:"input" toml:"input"`
}

// MatchingConfig controls how statement bodies are matched
type MatchingConfig struct {
	// DistanceLevels are the increasing distance ceilings of the matching
	// passes, each in (0, 1]
	DistanceLevels []float64 `mapstructure:"distance_levels" yaml:"distance_levels" toml:"distance_levels"`

	// MaxLambdaDepth bounds how deep nested lambda bodies are compared
	MaxLambdaDepth int `mapstructure:"max_lambda_depth" yaml:"max_lambda_depth" toml:"max_lambda_depth"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json or yaml
	Format string `mapstructure:"format" yaml:"format" toml:"format"`

	// ShowUnchanged includes unchanged members in reports
	ShowUnchanged bool `mapstructure:"show_unchanged" yaml:"show_unchanged" toml:"show_unchanged"`
}

// InputConfig selects the files of a batch comparison
type InputConfig struct {
	// Recursive descends into subdirectories
	Recursive bool `mapstructure:"recursive" yaml:"recursive" toml:"recursive"`

	// IncludePatterns are doublestar patterns of files to compare
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns" toml:"include_patterns"`

	// ExcludePatterns are doublestar patterns of files to skip
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" toml:"exclude_patterns"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Matching: MatchingConfig{
			DistanceLevels: append([]float64(nil), domain.DefaultDistanceLevels...),
			MaxLambdaDepth: domain.DefaultMaxLambdaDepth,
		},
		Output: OutputConfig{
			Format:        string(domain.OutputFormatText),
			ShowUnchanged: false,
		},
		Input: InputConfig{
			Recursive:       true,
			IncludePatterns: append([]string(nil), domain.DefaultIncludePatterns...),
			ExcludePatterns: append([]string(nil), domain.DefaultExcludePatterns...),
		},
	}
}

// LoadConfig loads configuration from file. An empty path looks for one of
// ConfigFileNames from the working directory upward; without one the
// defaults are returned.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		wd, err := os.Getwd()
		if err == nil {
			configPath = FindConfig(wd)
		}
	}
	if configPath == "" {
		return config, nil
	}

	if filepath.Ext(configPath) == ".toml" {
		if err := checkTOMLKeys(configPath); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// FindConfig walks up from startDir and returns the first configuration
// file found, or "" when there is none
func FindConfig(startDir string) string {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	levels := c.Matching.DistanceLevels
	if len(levels) == 0 {
		return fmt.Errorf("matching.distance_levels must not be empty")
	}
	for i, level := range levels {
		if level <= 0 || level > 1 {
			return fmt.Errorf("matching.distance_levels[%d] must be in (0, 1], got %g", i, level)
		}
		if i > 0 && level <= levels[i-1] {
			return fmt.Errorf("matching.distance_levels must be strictly increasing, got %g after %g", level, levels[i-1])
		}
	}

	if c.Matching.MaxLambdaDepth < 1 {
		return fmt.Errorf("matching.max_lambda_depth must be >= 1, got %d", c.Matching.MaxLambdaDepth)
	}

	if _, err := domain.ParseOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}

	if err := validatePatterns("input.include_patterns", c.Input.IncludePatterns); err != nil {
		return err
	}
	return validatePatterns("input.exclude_patterns", c.Input.ExcludePatterns)
}

func validatePatterns(key string, patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%s: invalid pattern %q", key, pattern)
		}
	}
	return nil
}

// SaveConfig saves configuration to a file whose format follows its
// extension
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)

	v.Set("matching", map[string]any{
		"distance_levels":  config.Matching.DistanceLevels,
		"max_lambda_depth": config.Matching.MaxLambdaDepth,
	})
	v.Set("output", map[string]any{
		"format":         config.Output.Format,
		"show_unchanged": config.Output.ShowUnchanged,
	})
	v.Set("input", map[string]any{
		"recursive":        config.Input.Recursive,
		"include_patterns": config.Input.IncludePatterns,
		"exclude_patterns": config.Input.ExcludePatterns,
	})

	return v.WriteConfig()
}
