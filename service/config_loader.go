package service

import (
	"os"

	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/internal/config"
)

// ConfigurationLoaderImpl implements the ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path. An empty path
// searches for a configuration file from the working directory upward.
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.CompareRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return c.convertToCompareRequest(cfg), nil
}

// LoadDefaultConfig loads the discovered configuration file, falling back
// to the built-in defaults when there is none or it cannot be loaded
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.CompareRequest {
	if req, err := c.LoadConfig(""); err == nil {
		return req
	}
	return c.convertToCompareRequest(config.DefaultConfig())
}

// MergeConfig merges CLI values with the configuration file. Without flag
// tracking every non-zero override wins.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.CompareRequest, override *domain.CompareRequest) *domain.CompareRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	mergeInputs(&merged, override)

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.ShowUnchanged {
		merged.ShowUnchanged = true
	}
	if len(override.DistanceLevels) > 0 {
		merged.DistanceLevels = override.DistanceLevels
	}
	if override.MaxLambdaDepth > 0 {
		merged.MaxLambdaDepth = override.MaxLambdaDepth
	}
	return &merged
}

// LoadBatchConfig loads the configuration of a batch comparison
func (c *ConfigurationLoaderImpl) LoadBatchConfig(path string) (*domain.BatchRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return c.convertToBatchRequest(cfg), nil
}

// MergeBatchConfig merges CLI values with a batch configuration. Without
// flag tracking every non-zero override wins.
func (c *ConfigurationLoaderImpl) MergeBatchConfig(base *domain.BatchRequest, override *domain.BatchRequest) *domain.BatchRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	if override.OldDir != "" {
		merged.OldDir = override.OldDir
	}
	if override.NewDir != "" {
		merged.NewDir = override.NewDir
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.ShowUnchanged {
		merged.ShowUnchanged = true
	}
	if len(override.DistanceLevels) > 0 {
		merged.DistanceLevels = override.DistanceLevels
	}
	if override.MaxLambdaDepth > 0 {
		merged.MaxLambdaDepth = override.MaxLambdaDepth
	}
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}
	return &merged
}

// mergeInputs copies the values that always come from the command line
func mergeInputs(merged, override *domain.CompareRequest) {
	if override.OldPath != "" {
		merged.OldPath = override.OldPath
	}
	if override.NewPath != "" {
		merged.NewPath = override.NewPath
	}
	if override.OldSource != nil {
		merged.OldSource = override.OldSource
	}
	if override.NewSource != nil {
		merged.NewSource = override.NewSource
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}
}

func outputFormatOf(cfg *config.Config) domain.OutputFormat {
	format, err := domain.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return domain.OutputFormatText
	}
	return format
}

// convertToCompareRequest converts internal config to domain request
func (c *ConfigurationLoaderImpl) convertToCompareRequest(cfg *config.Config) *domain.CompareRequest {
	return &domain.CompareRequest{
		OutputFormat:   outputFormatOf(cfg),
		OutputWriter:   os.Stdout,
		ShowUnchanged:  cfg.Output.ShowUnchanged,
		DistanceLevels: cfg.Matching.DistanceLevels,
		MaxLambdaDepth: cfg.Matching.MaxLambdaDepth,
	}
}

// convertToBatchRequest converts internal config to a batch request
func (c *ConfigurationLoaderImpl) convertToBatchRequest(cfg *config.Config) *domain.BatchRequest {
	return &domain.BatchRequest{
		Recursive:       cfg.Input.Recursive,
		IncludePatterns: cfg.Input.IncludePatterns,
		ExcludePatterns: cfg.Input.ExcludePatterns,
		OutputFormat:    outputFormatOf(cfg),
		OutputWriter:    os.Stdout,
		ShowUnchanged:   cfg.Output.ShowUnchanged,
		ShowProgress:    true,
		DistanceLevels:  cfg.Matching.DistanceLevels,
		MaxLambdaDepth:  cfg.Matching.MaxLambdaDepth,
	}
}
