package handlers

import (
	"bytes"
	_ "embed"
	"html/template"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

//go:embed templates/index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	JobDescription string
	Uploaded       bool
	Warning        string
	Report         string
}

// PageHandler serves the single-page form at "/".
type PageHandler struct {
	analyzer    services.AnalyzerService
	maxFileSize int64
}

func NewPageHandler(analyzer services.AnalyzerService, maxFileSize int64) *PageHandler {
	return &PageHandler{
		analyzer:    analyzer,
		maxFileSize: maxFileSize,
	}
}

// HandleIndex handles GET /
func (h *PageHandler) HandleIndex(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, pageData{})
}

// HandleSubmit handles POST /
func (h *PageHandler) HandleSubmit(c *fiber.Ctx) error {
	data := pageData{JobDescription: c.FormValue("job_description")}

	doc, err := readUpload(c, "resume", h.maxFileSize)
	if err != nil {
		data.Warning = err.Error()
		return h.render(c, fiber.StatusBadRequest, data)
	}
	data.Uploaded = doc != nil

	input := models.AnalysisInput{
		JobDescription:      data.JobDescription,
		Document:            doc,
		ReportRequested:     c.FormValue("submit_report") != "",
		MatchScoreRequested: c.FormValue("submit_match_score") != "",
	}

	// Uploading without pressing a button only confirms the upload.
	if !input.ReportRequested && !input.MatchScoreRequested {
		return h.render(c, fiber.StatusOK, data)
	}

	outcome := h.analyzer.Analyze(c.UserContext(), input)
	if outcome.IsReport() {
		data.Report = outcome.Message
	} else {
		data.Warning = outcome.Message
	}

	return h.render(c, fiber.StatusOK, data)
}

func (h *PageHandler) render(c *fiber.Ctx, status int, data pageData) error {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		log.Printf("❌ Failed to render page: %v\n", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
