package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ludo-technologies/eacdiff/domain"
	"github.com/ludo-technologies/eacdiff/internal/version"
	"github.com/ludo-technologies/eacdiff/service"
)

// BatchUseCase compares two directory trees file by file
type BatchUseCase struct {
	service         domain.CompareService
	fileReader      domain.FileReader
	formatter       domain.OutputFormatter
	configLoader    domain.BatchConfigurationLoader
	progressManager domain.ProgressManager
	concurrency     int
	now             func() time.Time
}

// BatchUseCaseBuilder builds a BatchUseCase
type BatchUseCaseBuilder struct {
	service         domain.CompareService
	fileReader      domain.FileReader
	formatter       domain.OutputFormatter
	configLoader    domain.BatchConfigurationLoader
	progressManager domain.ProgressManager
	concurrency     int
}

// NewBatchUseCaseBuilder creates a new builder
func NewBatchUseCaseBuilder() *BatchUseCaseBuilder {
	return &BatchUseCaseBuilder{}
}

// WithService sets the compare service. A service implementing
// service.ParseCacheAware gets every file parsed ahead of time.
func (b *BatchUseCaseBuilder) WithService(s domain.CompareService) *BatchUseCaseBuilder {
	b.service = s
	return b
}

// WithFileReader sets the file reader
func (b *BatchUseCaseBuilder) WithFileReader(fr domain.FileReader) *BatchUseCaseBuilder {
	b.fileReader = fr
	return b
}

// WithFormatter sets the formatter
func (b *BatchUseCaseBuilder) WithFormatter(f domain.OutputFormatter) *BatchUseCaseBuilder {
	b.formatter = f
	return b
}

// WithConfigLoader sets the configuration loader
func (b *BatchUseCaseBuilder) WithConfigLoader(cl domain.BatchConfigurationLoader) *BatchUseCaseBuilder {
	b.configLoader = cl
	return b
}

// WithProgressManager sets the progress manager
func (b *BatchUseCaseBuilder) WithProgressManager(pm domain.ProgressManager) *BatchUseCaseBuilder {
	b.progressManager = pm
	return b
}

// WithConcurrency sets how many files are parsed at once; 0 uses every CPU
func (b *BatchUseCaseBuilder) WithConcurrency(n int) *BatchUseCaseBuilder {
	b.concurrency = n
	return b
}

// Build creates the BatchUseCase
func (b *BatchUseCaseBuilder) Build() (*BatchUseCase, error) {
	if b.fileReader == nil {
		return nil, fmt.Errorf("file reader is required")
	}
	if b.service == nil {
		b.service = service.NewCompareServiceWithReader(b.fileReader)
	}
	if b.formatter == nil {
		b.formatter = service.NewOutputFormatter()
	}
	if b.progressManager == nil {
		b.progressManager = service.NewNoOpProgressManager()
	}

	return &BatchUseCase{
		service:         b.service,
		fileReader:      b.fileReader,
		formatter:       b.formatter,
		configLoader:    b.configLoader,
		progressManager: b.progressManager,
		concurrency:     b.concurrency,
		now:             time.Now,
	}, nil
}

// Execute compares the trees and writes the report
func (uc *BatchUseCase) Execute(ctx context.Context, req domain.BatchRequest) error {
	if req.OutputWriter == nil {
		return domain.NewInvalidInputError("invalid request", fmt.Errorf("output writer is required"))
	}

	response, finalReq, err := uc.run(ctx, req)
	if err != nil {
		return err
	}
	return uc.formatter.WriteBatch(response, finalReq.OutputFormat, finalReq.OutputWriter)
}

// Run compares the trees and returns the result without writing it
func (uc *BatchUseCase) Run(ctx context.Context, req domain.BatchRequest) (*domain.BatchResponse, error) {
	response, _, err := uc.run(ctx, req)
	return response, err
}

func (uc *BatchUseCase) run(ctx context.Context, req domain.BatchRequest) (*domain.BatchResponse, domain.BatchRequest, error) {
	if req.OldDir == "" || req.NewDir == "" {
		return nil, req, domain.NewInvalidInputError("both an old and a new directory are required", nil)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, req, err
	}

	pairs, added, removed, err := uc.fileReader.PairFiles(
		finalReq.OldDir,
		finalReq.NewDir,
		finalReq.Recursive,
		finalReq.IncludePatterns,
		finalReq.ExcludePatterns,
	)
	if err != nil {
		return nil, finalReq, err
	}

	response := &domain.BatchResponse{
		OldDir:       finalReq.OldDir,
		NewDir:       finalReq.NewDir,
		Files:        []domain.CompareResponse{},
		AddedFiles:   added,
		RemovedFiles: removed,
		Summary: domain.BatchSummary{
			FilesAdded:   len(added),
			FilesRemoved: len(removed),
			EditCounts:   make(map[domain.EditKind]int),
		},
		GeneratedAt: uc.now().Format(time.RFC3339),
		Version:     version.Version,
	}

	if len(pairs) == 0 {
		response.Warnings = append(response.Warnings, "no C# files present in both trees")
		return response, finalReq, nil
	}

	uc.prepareParseCache(ctx, pairs)

	if finalReq.ShowProgress {
		uc.progressManager.Initialize(len(pairs))
		uc.progressManager.Start()
	}
	defer uc.progressManager.Close()

	for i, pair := range pairs {
		if err := ctx.Err(); err != nil {
			uc.progressManager.Complete(false)
			return nil, finalReq, err
		}

		fileResponse, err := uc.service.Compare(ctx, finalReq.CompareOptions(pair.OldPath, pair.NewPath))
		if err != nil {
			log.Printf("WARNING: Failed to compare %s: %v", pair.RelativePath, err)
			response.Errors = append(response.Errors, fmt.Sprintf("%s: %v", pair.RelativePath, err))
			response.Summary.FilesFailed++
		} else {
			uc.record(response, fileResponse, finalReq.ShowUnchanged)
		}

		if finalReq.ShowProgress {
			uc.progressManager.Update(i+1, len(pairs))
		}
	}
	if finalReq.ShowProgress {
		uc.progressManager.Complete(response.Summary.FilesFailed == 0)
	}

	return response, finalReq, nil
}

// prepareParseCache parses every paired file concurrently when the service
// can reuse the trees
func (uc *BatchUseCase) prepareParseCache(ctx context.Context, pairs []domain.FilePair) {
	aware, ok := uc.service.(service.ParseCacheAware)
	if !ok {
		return
	}

	files := make([]string, 0, 2*len(pairs))
	for _, pair := range pairs {
		files = append(files, pair.OldPath, pair.NewPath)
	}
	aware.SetParseCache(service.PopulateParseCache(ctx, uc.fileReader, files, uc.concurrency))
}

// record adds a file comparison to the batch summary
func (uc *BatchUseCase) record(response *domain.BatchResponse, file *domain.CompareResponse, showUnchanged bool) {
	s := &response.Summary
	s.FilesCompared++
	if file.Changed() {
		s.FilesChanged++
	} else {
		s.FilesUnchanged++
	}
	s.TotalEdits += file.Summary.TotalEdits
	for kind, n := range file.Summary.EditCounts {
		s.EditCounts[kind] += n
	}
	for _, e := range file.Errors {
		response.Errors = append(response.Errors, fmt.Sprintf("%s: %s", file.NewPath, e))
	}

	if file.Changed() || showUnchanged {
		response.Files = append(response.Files, *file)
	}
}

// loadAndMergeConfig loads configuration from file and merges with request
func (uc *BatchUseCase) loadAndMergeConfig(req domain.BatchRequest) (domain.BatchRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	configReq, err := uc.configLoader.LoadBatchConfig(req.ConfigPath)
	if err != nil {
		if req.ConfigPath != "" {
			return req, err
		}
		// A discovered but unusable file is reported and ignored
		log.Printf("WARNING: Ignoring configuration: %v", err)
		return req, nil
	}
	if configReq == nil {
		return req, nil
	}
	return *uc.configLoader.MergeBatchConfig(configReq, &req), nil
}
