package mcp

import (
	"github.com/ludo-technologies/eacdiff/app"
	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/internal/config"
	"github.com/ludo-technologies/eacdiff/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		fileReader: service.NewFileReader(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// FileReader returns the reader shared by the handlers.
func (d *Dependencies) FileReader() domain.FileReader {
	return d.fileReader
}

// BuildCompareUseCase assembles a fresh CompareUseCase. The handlers
// resolve options from Config themselves, so no configuration loader is
// attached.
func (d *Dependencies) BuildCompareUseCase() (*app.CompareUseCase, error) {
	return app.NewCompareUseCaseBuilder().
		WithService(service.NewCompareServiceWithReader(d.fileReader)).
		WithFileReader(d.fileReader).
		WithFormatter(service.NewOutputFormatter()).
		Build()
}

// BuildBatchUseCase assembles a fresh BatchUseCase without a progress bar,
// since stdout carries the JSON-RPC stream.
func (d *Dependencies) BuildBatchUseCase() (*app.BatchUseCase, error) {
	return app.NewBatchUseCaseBuilder().
		WithFileReader(d.fileReader).
		WithProgressManager(service.NewNoOpProgressManager()).
		Build()
}
