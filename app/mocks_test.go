package app

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/ludo-technologies/eacdiff/domain"
)

type mockCompareService struct {
	mock.Mock
}

func (m *mockCompareService) Compare(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompareResponse), args.Error(1)
}

type mockFileReader struct {
	mock.Mock
}

func (m *mockFileReader) CollectCSharpFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	args := m.Called(paths, recursive, includePatterns, excludePatterns)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockFileReader) PairFiles(oldDir, newDir string, recursive bool, includePatterns, excludePatterns []string) ([]domain.FilePair, []string, []string, error) {
	args := m.Called(oldDir, newDir, recursive, includePatterns, excludePatterns)
	var pairs []domain.FilePair
	if p := args.Get(0); p != nil {
		pairs = p.([]domain.FilePair)
	}
	var added, removed []string
	if a := args.Get(1); a != nil {
		added = a.([]string)
	}
	if r := args.Get(2); r != nil {
		removed = r.([]string)
	}
	return pairs, added, removed, args.Error(3)
}

func (m *mockFileReader) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockFileReader) IsValidCSharpFile(path string) bool {
	args := m.Called(path)
	return args.Bool(0)
}

func (m *mockFileReader) FileExists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

type mockOutputFormatter struct {
	mock.Mock
}

func (m *mockOutputFormatter) Format(response *domain.CompareResponse, format domain.OutputFormat) (string, error) {
	args := m.Called(response, format)
	return args.String(0), args.Error(1)
}

func (m *mockOutputFormatter) Write(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

func (m *mockOutputFormatter) FormatBatch(response *domain.BatchResponse, format domain.OutputFormat) (string, error) {
	args := m.Called(response, format)
	return args.String(0), args.Error(1)
}

func (m *mockOutputFormatter) WriteBatch(response *domain.BatchResponse, format domain.OutputFormat, writer io.Writer) error {
	args := m.Called(response, format, writer)
	return args.Error(0)
}

type mockConfigurationLoader struct {
	mock.Mock
}

func (m *mockConfigurationLoader) LoadConfig(path string) (*domain.CompareRequest, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompareRequest), args.Error(1)
}

func (m *mockConfigurationLoader) LoadDefaultConfig() *domain.CompareRequest {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.CompareRequest)
}

func (m *mockConfigurationLoader) MergeConfig(base *domain.CompareRequest, override *domain.CompareRequest) *domain.CompareRequest {
	args := m.Called(base, override)
	return args.Get(0).(*domain.CompareRequest)
}

type mockProgressManager struct {
	mock.Mock
}

func (m *mockProgressManager) Initialize(maxValue int) { m.Called(maxValue) }
func (m *mockProgressManager) Start() { m.Called() }
func (m *mockProgressManager) Complete(success bool) { m.Called(success) }
func (m *mockProgressManager) Update(processed, total int) { m.Called(processed, total) }
func (m *mockProgressManager) SetWriter(writer io.Writer) { m.Called(writer) }
func (m *mockProgressManager) Close() { m.Called() }

func (m *mockProgressManager) IsInteractive() bool {
	args := m.Called()
	return args.Bool(0)
}
