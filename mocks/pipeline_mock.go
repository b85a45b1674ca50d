package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/resume-ranker/internal/models"
)

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) SaveUpload(doc *models.UploadedDocument) (string, error) {
	args := m.Called(doc)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) GetFilePath(ext string) string {
	args := m.Called(ext)
	return args.String(0)
}

func (m *MockStorageService) EnsureUploadDir() error {
	args := m.Called()
	return args.Error(0)
}

type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractFile(filePath string) (string, error) {
	args := m.Called(filePath)
	return args.String(0), args.Error(1)
}

type MockAnalysisRequester struct {
	mock.Mock
}

func (m *MockAnalysisRequester) Request(ctx context.Context, req models.AnalysisRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type MockAnalyzerService struct {
	mock.Mock
}

func (m *MockAnalyzerService) Analyze(ctx context.Context, input models.AnalysisInput) *models.AnalysisOutcome {
	args := m.Called(ctx, input)
	return args.Get(0).(*models.AnalysisOutcome)
}
