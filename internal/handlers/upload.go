package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
)

var errFileTooLarge = errors.New("resume file too large")

// readUpload returns the first file posted under field, or nil when the
// request carries none. A body that is not multipart carries no file.
func readUpload(c *fiber.Ctx, field string, maxFileSize int64) (*models.UploadedDocument, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File[field]
	if len(files) == 0 || files[0].Filename == "" {
		return nil, nil
	}
	file := files[0]

	if maxFileSize > 0 && file.Size > maxFileSize {
		return nil, fmt.Errorf("%w. Max size: %d bytes", errFileTooLarge, maxFileSize)
	}

	f, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return &models.UploadedDocument{
		Filename: file.Filename,
		Data:     data,
	}, nil
}
