package model

import (
	"time"

	"tinkerly.io/api/internal/estimate"
)

type AnalysisSource string

const (
	AnalysisSourceLLM      AnalysisSource = "llm"
	AnalysisSourceFallback AnalysisSource = "fallback"
)

type ProjectStatus string

const (
	ProjectStatusEstimated ProjectStatus = "estimated"
)

type Project struct {
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	RequestedComplexity *string         `json:"requested_complexity,omitempty"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Category            string          `json:"category"`
	Requirements        string          `json:"requirements"`
	Timeline            string          `json:"timeline"`
	AnalysisSource      AnalysisSource  `json:"analysis_source"`
	Status              ProjectStatus   `json:"status"`
	Analysis            estimate.Result `json:"analysis"`
	Milestones          []Milestone     `json:"milestones,omitempty"`
	ID                  int64           `json:"id"`
	UserID              int64           `json:"user_id"`
}

// NewProject captures the descriptor and the analysis it produced.
func NewProject(userID int64, d estimate.Descriptor, result estimate.Result, source AnalysisSource) Project {
	var requested *string
	if d.Complexity != "" {
		c := d.Complexity
		requested = &c
	}

	return Project{
		UserID:              userID,
		Title:               d.Title,
		Description:         d.Description,
		Category:            d.Category,
		Requirements:        d.Requirements,
		Timeline:            d.Timeline,
		RequestedComplexity: requested,
		Analysis:            result,
		AnalysisSource:      source,
		Status:              ProjectStatusEstimated,
	}
}
