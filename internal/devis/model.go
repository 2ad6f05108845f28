package devis

import (
	"encoding/json"
	"strings"
	"time"
)

// ProjectTypes lists the offers shown on the marketing site. A submission may
// also carry "other" for projects outside the catalogue.
var ProjectTypes = []string{
	"Site Vitrine Essentiel",
	"Solution Performance",
	"Projet Sur Mesure",
	"other",
}

// Budgets lists the budget ranges offered by the quote form.
var Budgets = []string{
	"< 1 500 €",
	"1 500 € - 3 000 €",
	"3 000 € - 8 000 €",
	"> 8 000 €",
}

// MinDescriptionLen is the minimum length of a project description after trimming.
const MinDescriptionLen = 20

// SubmissionRequest is the payload of a quote request from the website form.
type SubmissionRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone,omitempty"`
	Company            string `json:"company,omitempty"`
	ProjectType        string `json:"projectType"`
	ProjectDescription string `json:"projectDescription"`
	Budget             string `json:"budget,omitempty"`
}

// Validate rejects the request when a required field is missing or blank.
// It runs before any side effect; a rejected request touches no collaborator.
// Fields are normalized in place (whitespace trimmed).
func (r *SubmissionRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Company = strings.TrimSpace(r.Company)
	r.ProjectType = strings.TrimSpace(r.ProjectType)
	r.ProjectDescription = strings.TrimSpace(r.ProjectDescription)
	r.Budget = strings.TrimSpace(r.Budget)

	switch {
	case r.Name == "":
		return ErrMissingName
	case r.Email == "":
		return ErrMissingEmail
	case r.ProjectType == "":
		return ErrMissingProjectType
	case r.ProjectDescription == "":
		return ErrMissingDescription
	case len(r.ProjectDescription) < MinDescriptionLen:
		return ErrDescriptionTooShort
	}
	return nil
}

// AnalysisResult is the AI-derived summary attached to a submission when
// text generation succeeds.
type AnalysisResult struct {
	Summary  string   `json:"summary"`
	Priority int      `json:"priority"` // 1 (low) to 5 (urgent)
	Keywords []string `json:"keywords"`
}

// Enrichment bundles the optional AI outputs of a submission. The content
// brief is an opaque structured document; the pipeline stores and forwards it
// verbatim and only the preview-image step reads into it.
type Enrichment struct {
	Analysis *AnalysisResult
	Brief    json.RawMessage
}

// Submission is a stored quote request, written once and never updated.
type Submission struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone,omitempty"`
	Company            string          `json:"company,omitempty"`
	ProjectType        string          `json:"projectType"`
	ProjectDescription string          `json:"projectDescription"`
	Budget             string          `json:"budget,omitempty"`
	Analysis           *AnalysisResult `json:"analysis,omitempty"`
	Brief              json.RawMessage `json:"contentBrief,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}
