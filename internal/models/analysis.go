package models

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionReport     Action = "report"
	ActionMatchScore Action = "match_score"
)

func (a Action) Valid() bool {
	return a == ActionReport || a == ActionMatchScore
}

// Label is the button caption shown for the action.
func (a Action) Label() string {
	switch a {
	case ActionReport:
		return "Resume Report"
	case ActionMatchScore:
		return "Resume Match Score"
	default:
		return string(a)
	}
}

type AnalysisStatus string

const (
	StatusCompleted AnalysisStatus = "completed"
	StatusFailed    AnalysisStatus = "failed"
)

// Analysis is a finished pipeline run kept in the history table. The resume
// itself and its extracted text are not stored.
type Analysis struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Action         Action         `gorm:"type:text;not null" json:"action"`
	Status         AnalysisStatus `gorm:"type:text;not null" json:"status"`
	JobDescription string         `gorm:"type:text" json:"job_description"`
	ResumeFilename string         `gorm:"type:text" json:"resume_filename"`
	Report         *string        `gorm:"type:text" json:"report,omitempty"`
	ErrorMessage   *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}

// AnalysisRequest is the immutable input of one model call.
type AnalysisRequest struct {
	JobDescription string
	ResumeText     string
	Action         Action
}

// AnalysisInput captures one user interaction with the page or the API.
type AnalysisInput struct {
	JobDescription      string
	Document            *UploadedDocument
	ReportRequested     bool
	MatchScoreRequested bool
}

type OutcomeKind string

const (
	OutcomeReport  OutcomeKind = "report"
	OutcomeWarning OutcomeKind = "warning"
)

// AnalysisOutcome is what the presentation layer shows: either the model's
// report or a warning message. Err keeps the underlying cause for status
// mapping and logging.
type AnalysisOutcome struct {
	ID      *uuid.UUID
	Action  Action
	Kind    OutcomeKind
	Message string
	Err     error
}

func (o *AnalysisOutcome) IsReport() bool {
	return o.Kind == OutcomeReport
}
