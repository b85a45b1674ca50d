package services

import (
	"fmt"

	"alfredoptarigan/resume-ranker/internal/models"
)

const ReportInstruction = `
You are an experienced Technical Human Resource Manager.
Review the provided resume against the job description.
Highlight strengths and weaknesses of the applicant in relation to the job requirements.
`

const MatchScoreInstruction = `
You are a skilled ATS scanner.
Evaluate the resume against the provided job description.
Give me the percentage match first, then missing keywords, then final thoughts.
`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Instruction returns the fixed template for an action. Unknown actions get
// the report template.
func (pb *PromptBuilder) Instruction(action models.Action) string {
	if action == models.ActionMatchScore {
		return MatchScoreInstruction
	}
	return ReportInstruction
}

// ComposePrompt fills the job description, resume text and instruction into
// the single payload sent to the model. User content is not escaped.
func (pb *PromptBuilder) ComposePrompt(jobDescription, resumeText, instruction string) string {
	return fmt.Sprintf("Job Description:\n%s\n\nResume:\n%s\n\n%s", jobDescription, resumeText, instruction)
}

// BuildAnalysisPrompt composes the payload for a request using its action's template.
func (pb *PromptBuilder) BuildAnalysisPrompt(req models.AnalysisRequest) string {
	return pb.ComposePrompt(req.JobDescription, req.ResumeText, pb.Instruction(req.Action))
}
