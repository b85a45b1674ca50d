package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

type AnalyzeHandler struct {
	analyzer    services.AnalyzerService
	maxFileSize int64
}

func NewAnalyzeHandler(analyzer services.AnalyzerService, maxFileSize int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
	}
}

// HandleAnalyze handles POST /api/v1/analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	doc, err := readUpload(c, "resume", h.maxFileSize)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: err.Error(),
			Code:  fiber.StatusBadRequest,
		})
	}

	action := models.Action(c.FormValue("action"))
	if c.FormValue("action") != "" && !action.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "action must be 'report' or 'match_score'",
			Code:  fiber.StatusBadRequest,
		})
	}

	outcome := h.analyzer.Analyze(c.UserContext(), models.AnalysisInput{
		JobDescription:      c.FormValue("job_description"),
		Document:            doc,
		ReportRequested:     action == models.ActionReport,
		MatchScoreRequested: action == models.ActionMatchScore,
	})

	if !outcome.IsReport() {
		code := statusForError(outcome.Err)
		return c.Status(code).JSON(models.ErrorResponse{
			Error: outcome.Message,
			Code:  code,
		})
	}

	response := models.AnalyzeResponse{
		Action: string(outcome.Action),
		Report: outcome.Message,
	}
	if outcome.ID != nil {
		response.ID = outcome.ID.String()
	}

	return c.JSON(response)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNoAction),
		errors.Is(err, services.ErrNoDocument),
		errors.Is(err, services.ErrUnsupportedFormat):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnreadableDocument),
		errors.Is(err, services.ErrExtractionEmpty):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrServiceFailure):
		return fiber.StatusBadGateway
	case errors.Is(err, services.ErrWorkerBusy),
		errors.Is(err, services.ErrWorkerStopped):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return fiber.StatusRequestTimeout
	default:
		return fiber.StatusInternalServerError
	}
}
