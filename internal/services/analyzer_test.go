package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/mocks"
)

const scenarioJobDescription = "Seeking a backend engineer with Go experience"

func loadDocument(t *testing.T, name string) *models.UploadedDocument {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return &models.UploadedDocument{Filename: name, Data: data}
}

// newPipeline wires the real storage, extractor and requester around a mocked model.
func newPipeline(t *testing.T, gemini GeminiService) AnalyzerService {
	t.Helper()

	storage := NewStorageService(t.TempDir())
	require.NoError(t, storage.EnsureUploadDir())

	return NewAnalyzerService(
		storage,
		NewTextExtractor(NewPDFParserService()),
		NewAnalysisRequester(gemini, 1),
		startWorker(t, 4),
		nil,
		5*time.Second,
	)
}

func TestAnalyzeReportScenario(t *testing.T) {
	gemini := new(mocks.MockGeminiService)
	analyzer := newPipeline(t, gemini)

	var prompt string
	gemini.On("GenerateTextWithRetry", mock.Anything, mock.Anything, 1).
		Run(func(args mock.Arguments) { prompt = args.String(1) }).
		Return("Strengths: Go. Weaknesses: none listed.", nil).Once()

	outcome := analyzer.Analyze(context.Background(), models.AnalysisInput{
		JobDescription:  scenarioJobDescription,
		Document:        loadDocument(t, "one_page.pdf"),
		ReportRequested: true,
	})

	require.True(t, outcome.IsReport(), outcome.Message)
	assert.Equal(t, models.ActionReport, outcome.Action)
	assert.Equal(t, "Strengths: Go. Weaknesses: none listed.", outcome.Message)
	assert.NoError(t, outcome.Err)
	assert.Nil(t, outcome.ID)

	assert.Contains(t, prompt, scenarioJobDescription)
	assert.Contains(t, prompt, "Experienced backend engineer, 5 years Go")
	assert.True(t, strings.HasSuffix(prompt, ReportInstruction))
	gemini.AssertExpectations(t)
}

func TestAnalyzeMatchScoreScenario(t *testing.T) {
	gemini := new(mocks.MockGeminiService)
	analyzer := newPipeline(t, gemini)

	var prompts []string
	gemini.On("GenerateTextWithRetry", mock.Anything, mock.Anything, 1).
		Run(func(args mock.Arguments) { prompts = append(prompts, args.String(1)) }).
		Return("85%", nil).Twice()

	input := models.AnalysisInput{
		JobDescription:  scenarioJobDescription,
		Document:        loadDocument(t, "one_page.pdf"),
		ReportRequested: true,
	}
	analyzer.Analyze(context.Background(), input)

	input.ReportRequested = false
	input.MatchScoreRequested = true
	outcome := analyzer.Analyze(context.Background(), input)

	require.True(t, outcome.IsReport())
	assert.Equal(t, models.ActionMatchScore, outcome.Action)
	assert.Equal(t, "85%", outcome.Message)

	require.Len(t, prompts, 2)
	assert.True(t, strings.HasSuffix(prompts[1], MatchScoreInstruction))
	assert.Equal(t,
		strings.TrimSuffix(prompts[0], ReportInstruction),
		strings.TrimSuffix(prompts[1], MatchScoreInstruction))
}

func TestAnalyzeScannedPDFNeverCallsModel(t *testing.T) {
	gemini := new(mocks.MockGeminiService)
	analyzer := newPipeline(t, gemini)

	outcome := analyzer.Analyze(context.Background(), models.AnalysisInput{
		JobDescription:  scenarioJobDescription,
		Document:        loadDocument(t, "scanned.pdf"),
		ReportRequested: true,
	})

	assert.Equal(t, models.OutcomeWarning, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, ErrExtractionEmpty)
	assert.Equal(t, "Could not extract text from the uploaded PDF. It might be a scanned image.", outcome.Message)
	gemini.AssertNotCalled(t, "GenerateTextWithRetry", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeWithoutDocumentDoesNoWork(t *testing.T) {
	for _, input := range []models.AnalysisInput{
		{JobDescription: scenarioJobDescription, ReportRequested: true},
		{JobDescription: scenarioJobDescription, MatchScoreRequested: true},
	} {
		storage := new(mocks.MockStorageService)
		extractor := new(mocks.MockTextExtractor)
		requester := new(mocks.MockAnalysisRequester)
		repo := new(mocks.MockAnalysisRepository)
		analyzer := NewAnalyzerService(storage, extractor, requester, startWorker(t, 1), repo, time.Second)

		outcome := analyzer.Analyze(context.Background(), input)

		assert.Equal(t, models.OutcomeWarning, outcome.Kind)
		assert.Equal(t, "Please upload the resume.", outcome.Message)
		assert.ErrorIs(t, outcome.Err, ErrNoDocument)
		storage.AssertNotCalled(t, "SaveUpload", mock.Anything)
		extractor.AssertNotCalled(t, "ExtractFile", mock.Anything)
		requester.AssertNotCalled(t, "Request", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	}
}

func TestAnalyzeWithoutAction(t *testing.T) {
	analyzer := NewAnalyzerService(nil, nil, nil, startWorker(t, 1), nil, time.Second)

	outcome := analyzer.Analyze(context.Background(), models.AnalysisInput{
		Document: &models.UploadedDocument{Filename: "cv.pdf"},
	})

	assert.Equal(t, models.OutcomeWarning, outcome.Kind)
	assert.ErrorIs(t, outcome.Err, ErrNoAction)
}

func TestAnalyzeReportTakesPrecedence(t *testing.T) {
	storage := new(mocks.MockStorageService)
	extractor := new(mocks.MockTextExtractor)
	requester := new(mocks.MockAnalysisRequester)
	analyzer := NewAnalyzerService(storage, extractor, requester, startWorker(t, 1), nil, time.Second)

	doc := &models.UploadedDocument{Filename: "cv.pdf", Data: []byte("%PDF")}
	storage.On("SaveUpload", doc).Return("/tmp/uploaded_resume.pdf", nil)
	extractor.On("ExtractFile", "/tmp/uploaded_resume.pdf").Return("resume text", nil)
	requester.On("Request", mock.Anything, models.AnalysisRequest{
		JobDescription: "jd",
		ResumeText:     "resume text",
		Action:         models.ActionReport,
	}).Return("report", nil).Once()

	outcome := analyzer.Analyze(context.Background(), models.AnalysisInput{
		JobDescription:      "jd",
		Document:            doc,
		ReportRequested:     true,
		MatchScoreRequested: true,
	})

	assert.Equal(t, models.ActionReport, outcome.Action)
	assert.Equal(t, "report", outcome.Message)
	requester.AssertExpectations(t)
}

func TestAnalyzeMapsEveryFailureToWarning(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"unsupported", fmt.Errorf("%w: .png", ErrUnsupportedFormat), "Only PDF and DOCX resumes are supported."},
		{"unreadable", fmt.Errorf("bad xref: %w", ErrUnreadableDocument), "The uploaded resume could not be read. Please upload a valid PDF."},
		{"service", fmt.Errorf("quota: %w", ErrServiceFailure), "The analysis service could not complete the request. Please try again later."},
		{"timeout", context.DeadlineExceeded, "The analysis took too long and was cancelled. Please try again."},
		{"cancelled", context.Canceled, "The analysis was cancelled."},
		{"unknown", errors.New("disk on fire"), "Something went wrong while analysing the resume."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			storage := new(mocks.MockStorageService)
			extractor := new(mocks.MockTextExtractor)
			requester := new(mocks.MockAnalysisRequester)
			analyzer := NewAnalyzerService(storage, extractor, requester, startWorker(t, 1), nil, time.Second)

			storage.On("SaveUpload", mock.Anything).Return("/tmp/uploaded_resume.pdf", nil)
			extractor.On("ExtractFile", mock.Anything).Return("resume text", nil)
			requester.On("Request", mock.Anything, mock.Anything).Return("", tc.err)

			outcome := analyzer.Analyze(context.Background(), models.AnalysisInput{
				Document:            &models.UploadedDocument{Filename: "cv.pdf"},
				MatchScoreRequested: true,
			})

			assert.Equal(t, models.OutcomeWarning, outcome.Kind)
			assert.Equal(t, tc.message, outcome.Message)
			assert.ErrorIs(t, outcome.Err, tc.err)
		})
	}
}

func TestAnalyzeTimesOutSlowService(t *testing.T) {
	storage := new(mocks.MockStorageService)
	extractor := new(mocks.MockTextExtractor)
	requester := new(mocks.MockAnalysisRequester)
	analyzer := NewAnalyzerService(storage, extractor, requester, startWorker(t, 1), nil, 30*time.Millisecond)

	storage.On("SaveUpload", mock.Anything).Return("/tmp/uploaded_resume.pdf", nil)
	extractor.On("ExtractFile", mock.Anything).Return("resume text", nil)
	requester.On("Request", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return("", context.DeadlineExceeded)

	start := time.Now()
	outcome := analyzer.Analyze(context.Background(), models.AnalysisInput{
		Document:        &models.UploadedDocument{Filename: "cv.pdf"},
		ReportRequested: true,
	})

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.ErrorIs(t, outcome.Err, context.DeadlineExceeded)
	assert.Equal(t, "The analysis took too long and was cancelled. Please try again.", outcome.Message)
}

func TestAnalyzeRecordsHistory(t *testing.T) {
	storage := new(mocks.MockStorageService)
	extractor := new(mocks.MockTextExtractor)
	requester := new(mocks.MockAnalysisRequester)
	repo := new(mocks.MockAnalysisRepository)
	analyzer := NewAnalyzerService(storage, extractor, requester, startWorker(t, 1), repo, time.Second)

	storage.On("SaveUpload", mock.Anything).Return("/tmp/uploaded_resume.pdf", nil)
	extractor.On("ExtractFile", mock.Anything).Return("resume text", nil).Once()
	extractor.On("ExtractFile", mock.Anything).Return("", ErrExtractionEmpty).Once()
	requester.On("Request", mock.Anything, mock.Anything).Return("report body", nil)

	var saved []*models.Analysis
	repo.On("Create", mock.Anything).
		Run(func(args mock.Arguments) { saved = append(saved, args.Get(0).(*models.Analysis)) }).
		Return(nil)

	input := models.AnalysisInput{
		JobDescription:  "jd",
		Document:        &models.UploadedDocument{Filename: "cv.pdf"},
		ReportRequested: true,
	}
	ok := analyzer.Analyze(context.Background(), input)
	failed := analyzer.Analyze(context.Background(), input)

	require.Len(t, saved, 2)
	require.NotNil(t, ok.ID)
	assert.Equal(t, saved[0].ID, *ok.ID)
	assert.Equal(t, models.StatusCompleted, saved[0].Status)
	require.NotNil(t, saved[0].Report)
	assert.Equal(t, "report body", *saved[0].Report)
	assert.Equal(t, "cv.pdf", saved[0].ResumeFilename)

	require.NotNil(t, failed.ID)
	assert.Equal(t, models.StatusFailed, saved[1].Status)
	require.NotNil(t, saved[1].ErrorMessage)
	assert.Contains(t, *saved[1].ErrorMessage, ErrExtractionEmpty.Error())
}

func TestAnalyzeHistoryFailureKeepsOutcome(t *testing.T) {
	storage := new(mocks.MockStorageService)
	extractor := new(mocks.MockTextExtractor)
	requester := new(mocks.MockAnalysisRequester)
	repo := new(mocks.MockAnalysisRepository)
	analyzer := NewAnalyzerService(storage, extractor, requester, startWorker(t, 1), repo, time.Second)

	storage.On("SaveUpload", mock.Anything).Return("/tmp/uploaded_resume.pdf", nil)
	extractor.On("ExtractFile", mock.Anything).Return("resume text", nil)
	requester.On("Request", mock.Anything, mock.Anything).Return("report body", nil)
	repo.On("Create", mock.Anything).Return(errors.New("connection refused"))

	outcome := analyzer.Analyze(context.Background(), models.AnalysisInput{
		Document:        &models.UploadedDocument{Filename: "cv.pdf"},
		ReportRequested: true,
	})

	assert.True(t, outcome.IsReport())
	assert.Equal(t, "report body", outcome.Message)
	assert.Nil(t, outcome.ID)
}

func TestWarningMessageWorkerErrors(t *testing.T) {
	assert.Equal(t, "Too many analyses are waiting. Please try again shortly.", WarningMessage(ErrWorkerBusy))
	assert.Equal(t, "The service is shutting down. Please try again later.", WarningMessage(ErrWorkerStopped))
}
