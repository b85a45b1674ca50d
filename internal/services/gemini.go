package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"google.golang.org/genai"

	"alfredoptarigan/resume-ranker/internal/config"
)

type GeminiService interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string, maxAttempts int) (string, error)
}

type geminiService struct {
	client          *genai.Client
	modelName       string
	temperature     *float32
	maxOutputTokens int32
}

// NewGeminiService builds the model client from an explicit credential; the
// API key is never read from the environment at call time.
func NewGeminiService(ctx context.Context, cfg config.GeminiConfig) (GeminiService, error) {
	return newGeminiService(ctx, cfg, nil)
}

func newGeminiService(ctx context.Context, cfg config.GeminiConfig, httpOptions *genai.HTTPOptions) (GeminiService, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if httpOptions != nil {
		clientConfig.HTTPOptions = *httpOptions
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:          client,
		modelName:       cfg.Model,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
	}, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	var generateConfig *genai.GenerateContentConfig
	if g.temperature != nil || g.maxOutputTokens > 0 {
		generateConfig = &genai.GenerateContentConfig{
			Temperature:     g.temperature,
			MaxOutputTokens: g.maxOutputTokens,
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), generateConfig)
	if err != nil {
		return "", classifyGeminiError(ctx, err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response): %w", ErrServiceFailure)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response: %w", ErrServiceFailure)
	}

	return text, nil
}

// GenerateTextWithRetry implements GeminiService.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string, maxAttempts int) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := g.GenerateText(ctx, prompt)
		if err == nil {
			return result, nil
		}

		lastErr = err

		if ctx.Err() != nil || errors.Is(err, ErrPermanentFailure) {
			return "", err
		}

		if attempt < maxAttempts {
			log.Printf("⚠️  Gemini attempt %d failed: %v. Retrying...\n", attempt, err)
		}
	}

	if maxAttempts == 1 {
		return "", lastErr
	}
	return "", fmt.Errorf("failed after %d attempts: %w", maxAttempts, lastErr)
}

// classifyGeminiError wraps a model call failure. Context errors pass through
// untouched so callers can tell a timeout from a service failure.
func classifyGeminiError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	if code, ok := apiErrorCode(err); ok {
		switch code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("gemini authentication failed: %v: %w", err, errors.Join(ErrServiceFailure, ErrPermanentFailure))
		case http.StatusBadRequest, http.StatusNotFound:
			return fmt.Errorf("gemini rejected the request: %v: %w", err, errors.Join(ErrServiceFailure, ErrPermanentFailure))
		}
	}

	return fmt.Errorf("failed to generate text: %v: %w", err, ErrServiceFailure)
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code, true
	}
	return 0, false
}
