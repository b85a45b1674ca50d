package services

import (
	"fmt"
	"os"
	"path/filepath"

	"alfredoptarigan/resume-ranker/internal/models"
)

const tempResumeName = "uploaded_resume"

type StorageService interface {
	SaveUpload(doc *models.UploadedDocument) (string, error)
	GetFilePath(ext string) string
	EnsureUploadDir() error
}

// storageService keeps exactly one temporary copy of the latest upload per
// extension. Each save overwrites it; callers serialise access.
type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) SaveUpload(doc *models.UploadedDocument) (string, error) {
	if !SupportedExtension(doc.Filename) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, doc.Extension())
	}

	filePath := s.GetFilePath(doc.Extension())
	if err := os.WriteFile(filePath, doc.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}

func (s *storageService) GetFilePath(ext string) string {
	return filepath.Join(s.uploadPath, tempResumeName+ext)
}
