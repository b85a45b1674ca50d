package services

import (
	"context"
	"log"

	"alfredoptarigan/resume-ranker/internal/models"
)

// EmptyResumeFallback is returned instead of calling the model when a request
// carries no resume text.
const EmptyResumeFallback = "Could not extract text from the uploaded resume. Please upload a text-based PDF."

type AnalysisRequester interface {
	Request(ctx context.Context, req models.AnalysisRequest) (string, error)
}

type analysisRequester struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
	maxAttempts   int
}

func NewAnalysisRequester(geminiService GeminiService, maxAttempts int) AnalysisRequester {
	return &analysisRequester{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(),
		maxAttempts:   maxAttempts,
	}
}

// Request sends the composed prompt as the only content of one model call and
// returns the answer unmodified.
func (r *analysisRequester) Request(ctx context.Context, req models.AnalysisRequest) (string, error) {
	if req.ResumeText == "" {
		return EmptyResumeFallback, nil
	}

	prompt := r.promptBuilder.BuildAnalysisPrompt(req)
	log.Printf("📝 %s prompt length: %d characters", req.Action.Label(), len(prompt))

	response, err := r.geminiService.GenerateTextWithRetry(ctx, prompt, r.maxAttempts)
	if err != nil {
		return "", err
	}

	log.Printf("✅ %s response received: %d characters", req.Action.Label(), len(response))
	return response, nil
}
