package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(filePath string) (string, error)
	ExtractTextFromBytes(data []byte) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// pageSource is the part of a PDF reader the extractor depends on: pages are
// numbered from 1 and a page either yields text or is skipped.
type pageSource interface {
	NumPage() int
	PageText(index int) (string, bool)
}

type pdfPages struct {
	reader *pdf.Reader
}

func (p pdfPages) NumPage() int {
	return p.reader.NumPage()
}

func (p pdfPages) PageText(index int) (string, bool) {
	page := p.reader.Page(index)
	if page.V.IsNull() {
		return "", false
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return "", false
	}
	return text, true
}

func (p *pdfParserService) ExtractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		if f != nil {
			f.Close()
		}
		return "", fmt.Errorf("failed to open PDF: %v: %w", err, ErrUnreadableDocument)
	}
	defer f.Close()

	return joinPageText(pdfPages{reader: r})
}

func (p *pdfParserService) ExtractTextFromBytes(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %v: %w", err, ErrUnreadableDocument)
	}

	return joinPageText(pdfPages{reader: r})
}

// joinPageText concatenates the text of every page that produced some, in
// page order, each followed by a newline, and trims the result.
func joinPageText(src pageSource) (string, error) {
	var textBuilder strings.Builder

	for pageIndex := 1; pageIndex <= src.NumPage(); pageIndex++ {
		text, ok := src.PageText(pageIndex)
		if !ok || text == "" {
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := strings.TrimSpace(textBuilder.String())
	if text == "" {
		return "", ErrExtractionEmpty
	}

	return text, nil
}
