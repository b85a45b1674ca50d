package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
)

type AnalyzerService interface {
	Analyze(ctx context.Context, input models.AnalysisInput) *models.AnalysisOutcome
}

type analyzerService struct {
	storageService StorageService
	extractor      TextExtractor
	requester      AnalysisRequester
	worker         Worker
	analysisRepo   repositories.AnalysisRepository
	timeout        time.Duration
}

// NewAnalyzerService wires the pipeline. analysisRepo may be nil, in which
// case nothing is recorded.
func NewAnalyzerService(
	storageService StorageService,
	extractor TextExtractor,
	requester AnalysisRequester,
	worker Worker,
	analysisRepo repositories.AnalysisRepository,
	timeout time.Duration,
) AnalyzerService {
	return &analyzerService{
		storageService: storageService,
		extractor:      extractor,
		requester:      requester,
		worker:         worker,
		analysisRepo:   analysisRepo,
		timeout:        timeout,
	}
}

// Analyze handles one user interaction. Report wins when both actions are
// requested. Every failure comes back as a warning outcome.
func (a *analyzerService) Analyze(ctx context.Context, input models.AnalysisInput) *models.AnalysisOutcome {
	var action models.Action
	switch {
	case input.ReportRequested:
		action = models.ActionReport
	case input.MatchScoreRequested:
		action = models.ActionMatchScore
	default:
		return warningOutcome("", ErrNoAction)
	}

	if input.Document == nil {
		return warningOutcome(action, ErrNoDocument)
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	log.Printf("🔄 Starting %s for %s\n", action.Label(), input.Document.Filename)

	report, err := a.worker.Do(ctx, func(ctx context.Context) (string, error) {
		return a.runPipeline(ctx, action, input)
	})

	var outcome *models.AnalysisOutcome
	if err != nil {
		log.Printf("❌ %s failed: %v\n", action.Label(), err)
		outcome = warningOutcome(action, err)
	} else {
		log.Printf("✅ %s completed\n", action.Label())
		outcome = &models.AnalysisOutcome{
			Action:  action,
			Kind:    models.OutcomeReport,
			Message: report,
		}
	}

	outcome.ID = a.record(action, input, report, err)
	return outcome
}

func (a *analyzerService) runPipeline(ctx context.Context, action models.Action, input models.AnalysisInput) (string, error) {
	filePath, err := a.storageService.SaveUpload(input.Document)
	if err != nil {
		return "", fmt.Errorf("failed to store resume: %w", err)
	}

	log.Println("📄 Extracting resume text...")
	resumeText, err := a.extractor.ExtractFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to extract resume text: %w", err)
	}

	log.Println("🤖 Requesting analysis from Gemini...")
	return a.requester.Request(ctx, models.AnalysisRequest{
		JobDescription: input.JobDescription,
		ResumeText:     resumeText,
		Action:         action,
	})
}

func (a *analyzerService) record(action models.Action, input models.AnalysisInput, report string, runErr error) *uuid.UUID {
	if a.analysisRepo == nil {
		return nil
	}

	analysis := &models.Analysis{
		ID:             uuid.New(),
		Action:         action,
		Status:         models.StatusCompleted,
		JobDescription: input.JobDescription,
		ResumeFilename: input.Document.Filename,
		CreatedAt:      time.Now(),
	}
	if runErr != nil {
		msg := runErr.Error()
		analysis.Status = models.StatusFailed
		analysis.ErrorMessage = &msg
	} else {
		analysis.Report = &report
	}

	if err := a.analysisRepo.Create(analysis); err != nil {
		log.Printf("⚠️  Failed to record analysis: %v\n", err)
		return nil
	}

	return &analysis.ID
}

func warningOutcome(action models.Action, err error) *models.AnalysisOutcome {
	return &models.AnalysisOutcome{
		Action:  action,
		Kind:    models.OutcomeWarning,
		Message: WarningMessage(err),
		Err:     err,
	}
}

// WarningMessage is the user-facing text for a pipeline error.
func WarningMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoAction):
		return "Choose Resume Report or Resume Match Score."
	case errors.Is(err, ErrNoDocument):
		return "Please upload the resume."
	case errors.Is(err, ErrUnsupportedFormat):
		return "Only PDF and DOCX resumes are supported."
	case errors.Is(err, ErrUnreadableDocument):
		return "The uploaded resume could not be read. Please upload a valid PDF."
	case errors.Is(err, ErrExtractionEmpty):
		return "Could not extract text from the uploaded PDF. It might be a scanned image."
	case errors.Is(err, ErrServiceFailure):
		return "The analysis service could not complete the request. Please try again later."
	case errors.Is(err, context.DeadlineExceeded):
		return "The analysis took too long and was cancelled. Please try again."
	case errors.Is(err, context.Canceled):
		return "The analysis was cancelled."
	case errors.Is(err, ErrWorkerBusy):
		return "Too many analyses are waiting. Please try again shortly."
	case errors.Is(err, ErrWorkerStopped):
		return "The service is shutting down. Please try again later."
	default:
		return "Something went wrong while analysing the resume."
	}
}
