package service

import (
	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/internal/config"
)

// Flag names whose values override configuration files when set
const (
	FlagFormat         = "format"
	FlagJSON           = "json"
	FlagYAML           = "yaml"
	FlagShowUnchanged  = "show-unchanged"
	FlagLevels         = "levels"
	FlagMaxLambdaDepth = "max-lambda-depth"
	FlagRecursive      = "recursive"
	FlagInclude        = "include"
	FlagExclude        = "exclude"
	FlagNoProgress     = "no-progress"
)

// ConfigurationLoaderWithFlags wraps configuration loading with explicit flag tracking
type ConfigurationLoaderWithFlags struct {
	loader      *ConfigurationLoaderImpl
	flagTracker *config.FlagTracker
}

// NewConfigurationLoaderWithFlags creates a new configuration loader that tracks explicit flags
func NewConfigurationLoaderWithFlags(tracker *config.FlagTracker) *ConfigurationLoaderWithFlags {
	if tracker == nil {
		tracker = config.NewFlagTracker()
	}
	return &ConfigurationLoaderWithFlags{
		loader:      NewConfigurationLoader(),
		flagTracker: tracker,
	}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderWithFlags) LoadConfig(path string) (*domain.CompareRequest, error) {
	return c.loader.LoadConfig(path)
}

// LoadDefaultConfig loads the default configuration
func (c *ConfigurationLoaderWithFlags) LoadDefaultConfig() *domain.CompareRequest {
	return c.loader.LoadDefaultConfig()
}

// MergeConfig merges CLI flags with configuration file, respecting explicit flags
func (c *ConfigurationLoaderWithFlags) MergeConfig(base *domain.CompareRequest, override *domain.CompareRequest) *domain.CompareRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	mergeInputs(&merged, override)

	if c.flagTracker.AnySet(FlagFormat, FlagJSON, FlagYAML) {
		merged.OutputFormat = override.OutputFormat
	}
	merged.ShowUnchanged = c.flagTracker.MergeBool(merged.ShowUnchanged, override.ShowUnchanged, FlagShowUnchanged)
	merged.DistanceLevels = c.flagTracker.MergeFloat64Slice(merged.DistanceLevels, override.DistanceLevels, FlagLevels)
	merged.MaxLambdaDepth = c.flagTracker.MergeInt(merged.MaxLambdaDepth, override.MaxLambdaDepth, FlagMaxLambdaDepth)

	return &merged
}

// LoadBatchConfig loads the configuration of a batch comparison
func (c *ConfigurationLoaderWithFlags) LoadBatchConfig(path string) (*domain.BatchRequest, error) {
	return c.loader.LoadBatchConfig(path)
}

// MergeBatchConfig merges CLI flags with a batch configuration, respecting
// explicit flags
func (c *ConfigurationLoaderWithFlags) MergeBatchConfig(base *domain.BatchRequest, override *domain.BatchRequest) *domain.BatchRequest {
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

	if c.flagTracker.AnySet(FlagFormat, FlagJSON, FlagYAML) {
		merged.OutputFormat = override.OutputFormat
	}
	merged.ShowUnchanged = c.flagTracker.MergeBool(merged.ShowUnchanged, override.ShowUnchanged, FlagShowUnchanged)
	merged.ShowProgress = c.flagTracker.MergeBool(merged.ShowProgress, override.ShowProgress, FlagNoProgress)
	merged.DistanceLevels = c.flagTracker.MergeFloat64Slice(merged.DistanceLevels, override.DistanceLevels, FlagLevels)
	merged.MaxLambdaDepth = c.flagTracker.MergeInt(merged.MaxLambdaDepth, override.MaxLambdaDepth, FlagMaxLambdaDepth)
	merged.Recursive = c.flagTracker.MergeBool(merged.Recursive, override.Recursive, FlagRecursive)
	merged.IncludePatterns = c.flagTracker.MergeStringSlice(merged.IncludePatterns, override.IncludePatterns, FlagInclude)
	merged.ExcludePatterns = c.flagTracker.MergeStringSlice(merged.ExcludePatterns, override.ExcludePatterns, FlagExclude)

	return &merged
}
