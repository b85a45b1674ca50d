package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/repositories"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type ResultHandler struct {
	analysisRepo repositories.AnalysisRepository
}

// NewResultHandler accepts a nil repository when history is disabled; every
// lookup then answers 404.
func NewResultHandler(analysisRepo repositories.AnalysisRepository) *ResultHandler {
	return &ResultHandler{
		analysisRepo: analysisRepo,
	}
}

// HandleGetAnalysis handles GET /api/v1/analyses/:id
func (h *ResultHandler) HandleGetAnalysis(c *fiber.Ctx) error {
	if h.analysisRepo == nil {
		return historyDisabled(c)
	}

	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "Invalid analysis ID format",
			Code:  fiber.StatusBadRequest,
		})
	}

	analysis, err := h.analysisRepo.FindByID(analysisID)
	if err != nil {
		if errors.Is(err, repositories.ErrAnalysisNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
				Error: "Analysis not found",
				Code:  fiber.StatusNotFound,
			})
		}
		return err
	}

	return c.JSON(models.NewAnalysisResponse(analysis))
}

// HandleListAnalyses handles GET /api/v1/analyses?limit=n
func (h *ResultHandler) HandleListAnalyses(c *fiber.Ctx) error {
	if h.analysisRepo == nil {
		return historyDisabled(c)
	}

	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	analyses, err := h.analysisRepo.FindRecent(limit)
	if err != nil {
		return err
	}

	responses := make([]models.AnalysisResponse, 0, len(analyses))
	for i := range analyses {
		responses = append(responses, models.NewAnalysisResponse(&analyses[i]))
	}

	return c.JSON(fiber.Map{
		"analyses": responses,
		"count":    len(responses),
	})
}

func historyDisabled(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: "Analysis history is disabled",
		Code:  fiber.StatusNotFound,
	})
}
