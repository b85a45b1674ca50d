package services

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTab          = regexp.MustCompile(`<w:tab/>`)
	docxTag          = regexp.MustCompile(`<[^>]+>`)
	blankRuns        = regexp.MustCompile(`[ \t\r\f\v]+`)
	blankLines       = regexp.MustCompile(`\n{2,}`)
)

func extractDOCXText(filePath string) (string, error) {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %v: %w", err, ErrUnreadableDocument)
	}
	defer doc.Close()

	text := docxPlainText(doc.Editable().GetContent())
	if text == "" {
		return "", ErrExtractionEmpty
	}
	return text, nil
}

// docxPlainText turns document.xml markup into lines of text, one per paragraph.
func docxPlainText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = docxTag.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(blankRuns.ReplaceAllString(line, " "))
	}

	content = strings.Join(lines, "\n")
	content = blankLines.ReplaceAllString(content, "\n")
	return strings.TrimSpace(content)
}
