package services

import (
	"fmt"
	"path/filepath"
	"strings"
)

// TextExtractor turns a stored resume file into plain text. Empty results are
// reported as ErrExtractionEmpty, never as an empty string.
type TextExtractor interface {
	ExtractFile(filePath string) (string, error)
}

type textExtractor struct {
	pdfParser PDFParserService
}

func NewTextExtractor(pdfParser PDFParserService) TextExtractor {
	return &textExtractor{pdfParser: pdfParser}
}

func (e *textExtractor) ExtractFile(filePath string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".pdf":
		return e.pdfParser.ExtractText(filePath)
	case ".docx":
		return extractDOCXText(filePath)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// SupportedExtension reports whether a resume with this file name can be analysed.
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx":
		return true
	default:
		return false
	}
}
