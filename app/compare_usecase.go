package app

import (
	"context"
	"fmt"

	"github.com/ludo-technologies/eacdiff/domain"
)

// CompareUseCase orchestrates the comparison of two versions of a file
type CompareUseCase struct {
	service      domain.CompareService
	fileReader   domain.FileReader
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
}

// NewCompareUseCase creates a new compare use case
func NewCompareUseCase(
	service domain.CompareService,
	fileReader domain.FileReader,
	formatter domain.OutputFormatter,
	configLoader domain.ConfigurationLoader,
) *CompareUseCase {
	return &CompareUseCase{
		service:      service,
		fileReader:   fileReader,
		formatter:    formatter,
		configLoader: configLoader,
	}
}

// Execute performs the complete comparison workflow and writes the report
func (uc *CompareUseCase) Execute(ctx context.Context, req domain.CompareRequest) error {
	if req.OutputWriter == nil {
		return domain.NewInvalidInputError("invalid request", fmt.Errorf("output writer is required"))
	}

	response, finalReq, err := uc.run(ctx, req)
	if err != nil {
		return err
	}
	return uc.formatter.Write(response, finalReq.OutputFormat, finalReq.OutputWriter)
}

// Run compares the two versions and returns the result without writing it
func (uc *CompareUseCase) Run(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	response, _, err := uc.run(ctx, req)
	return response, err
}

func (uc *CompareUseCase) run(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, domain.CompareRequest, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, req, domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, req, err
	}

	if err := uc.validateFiles(finalReq); err != nil {
		return nil, finalReq, err
	}

	response, err := uc.service.Compare(ctx, finalReq)
	if err != nil {
		return nil, finalReq, err
	}
	return response, finalReq, nil
}

// validateRequest validates the compare request
func (uc *CompareUseCase) validateRequest(req domain.CompareRequest) error {
	if req.OldPath == "" && req.OldSource == nil {
		return fmt.Errorf("no old version specified")
	}
	if req.NewPath == "" && req.NewSource == nil {
		return fmt.Errorf("no new version specified")
	}
	if req.MaxLambdaDepth < 0 {
		return fmt.Errorf("maximum lambda depth cannot be negative")
	}
	if req.OutputFormat != "" {
		if _, err := domain.ParseOutputFormat(string(req.OutputFormat)); err != nil {
			return err
		}
	}
	return nil
}

// validateFiles checks the paths that will be read from disk
func (uc *CompareUseCase) validateFiles(req domain.CompareRequest) error {
	check := func(path string, source []byte) error {
		if source != nil || path == "" {
			return nil
		}
		exists, err := uc.fileReader.FileExists(path)
		if err != nil || !exists {
			return domain.NewFileNotFoundError(path, err)
		}
		if !uc.fileReader.IsValidCSharpFile(path) {
			return domain.NewInvalidInputError(fmt.Sprintf("not a C# file: %s", path), nil)
		}
		return nil
	}

	if err := check(req.OldPath, req.OldSource); err != nil {
		return err
	}
	return check(req.NewPath, req.NewSource)
}

// loadAndMergeConfig loads configuration from file and merges with request
func (uc *CompareUseCase) loadAndMergeConfig(req domain.CompareRequest) (domain.CompareRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	var configReq *domain.CompareRequest
	if req.ConfigPath != "" {
		loaded, err := uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return req, err
		}
		configReq = loaded
	} else {
		configReq = uc.configLoader.LoadDefaultConfig()
	}

	if configReq == nil {
		return req, nil
	}
	// Request values take precedence
	return *uc.configLoader.MergeConfig(configReq, &req), nil
}

// CompareUseCaseBuilder provides a builder pattern for creating CompareUseCase
type CompareUseCaseBuilder struct {
	service      domain.CompareService
	fileReader   domain.FileReader
	formatter    domain.OutputFormatter
	configLoader domain.ConfigurationLoader
}

// NewCompareUseCaseBuilder creates a new builder
func NewCompareUseCaseBuilder() *CompareUseCaseBuilder {
	return &CompareUseCaseBuilder{}
}

// WithService sets the compare service
func (b *CompareUseCaseBuilder) WithService(service domain.CompareService) *CompareUseCaseBuilder {
	b.service = service
	return b
}

// WithFileReader sets the file reader
func (b *CompareUseCaseBuilder) WithFileReader(fileReader domain.FileReader) *CompareUseCaseBuilder {
	b.fileReader = fileReader
	return b
}

// WithFormatter sets the output formatter
func (b *CompareUseCaseBuilder) WithFormatter(formatter domain.OutputFormatter) *CompareUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader. Without one the request
// is used as given.
func (b *CompareUseCaseBuilder) WithConfigLoader(configLoader domain.ConfigurationLoader) *CompareUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// Build creates the CompareUseCase with the configured dependencies
func (b *CompareUseCaseBuilder) Build() (*CompareUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("compare service is required")
	}
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}

	return NewCompareUseCase(b.service, b.fileReader, b.formatter, b.configLoader), nil
}
