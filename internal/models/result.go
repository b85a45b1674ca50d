package models

import "time"

type AnalyzeResponse struct {
	ID     string `json:"id,omitempty"`
	Action string `json:"action"`
	Report string `json:"report"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

type AnalysisResponse struct {
	ID             string    `json:"id"`
	Action         string    `json:"action"`
	Status         string    `json:"status"`
	JobDescription string    `json:"job_description"`
	ResumeFilename string    `json:"resume_filename"`
	Report         *string   `json:"report,omitempty"`
	ErrorMessage   *string   `json:"error_message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewAnalysisResponse(a *Analysis) AnalysisResponse {
	return AnalysisResponse{
		ID:             a.ID.String(),
		Action:         string(a.Action),
		Status:         string(a.Status),
		JobDescription: a.JobDescription,
		ResumeFilename: a.ResumeFilename,
		Report:         a.Report,
		ErrorMessage:   a.ErrorMessage,
		CreatedAt:      a.CreatedAt,
	}
}
