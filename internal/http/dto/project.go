package dto

import (
	"strconv"
	"time"

	"tinkerly.io/api/internal/estimate"
	"tinkerly.io/api/internal/model"
	"tinkerly.io/api/internal/service"
)

// ProjectData is the client's project description. Title, description, category
// and requirements are mandatory for a full analysis and may not be blank.
type ProjectData struct {
	Title        string `json:"title" binding:"required,notblank,max=200"`
	Description  string `json:"description" binding:"required,notblank,max=10000"`
	Category     string `json:"category" binding:"required,notblank,max=100"`
	Requirements string `json:"requirements" binding:"required,notblank,max=20000"`
	Timeline     string `json:"timeline" binding:"max=100"`
	Complexity   string `json:"complexity" binding:"max=50"`
}

func (p ProjectData) Descriptor() estimate.Descriptor {
	return estimate.Descriptor{
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Requirements: p.Requirements,
		Timeline:     p.Timeline,
		Complexity:   p.Complexity,
	}
}

type AnalyzeProjectRequest struct {
	ProjectData ProjectData `json:"projectData"`
}

type AnalyzeProjectResponse struct {
	ProjectID        *string              `json:"project_id"`
	Analysis         estimate.Result      `json:"analysis"`
	CreditsRemaining int                  `json:"credits_remaining"`
	Source           model.AnalysisSource `json:"source"`
}

func ToAnalyzeProjectResponse(r *service.AnalysisResult) AnalyzeProjectResponse {
	var projectID *string
	if r.ProjectID != nil {
		s := strconv.FormatInt(*r.ProjectID, 10)
		projectID = &s
	}
	return AnalyzeProjectResponse{
		ProjectID:        projectID,
		Analysis:         r.Analysis,
		CreditsRemaining: r.CreditsRemaining,
		Source:           r.Source,
	}
}

type ProjectSummary struct {
	ID             int64               `json:"id,string"`
	Title          string              `json:"title"`
	Category       string              `json:"category"`
	Complexity     estimate.Tier       `json:"complexity"`
	EstimatedHours int                 `json:"estimated_hours"`
	TotalCost      int                 `json:"total_cost"`
	Status         model.ProjectStatus `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
}

type ProjectResponse struct {
	ID                  int64                `json:"id,string"`
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	Category            string               `json:"category"`
	Requirements        string               `json:"requirements"`
	Timeline            string               `json:"timeline"`
	RequestedComplexity *string              `json:"requested_complexity,omitempty"`
	Status              model.ProjectStatus  `json:"status"`
	Source              model.AnalysisSource `json:"source"`
	Analysis            estimate.Result      `json:"analysis"`
	Milestones          []MilestoneResponse  `json:"milestones"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

type MilestoneResponse struct {
	ID          int64                 `json:"id,string"`
	Position    int                   `json:"position"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Percentage  int                   `json:"percentage"`
	Amount      int64                 `json:"amount"`
	DueDate     string                `json:"due_date"`
	Status      model.MilestoneStatus `json:"status"`
}

type ListProjectsResponse struct {
	Projects []ProjectSummary `json:"projects"`
	Limit    int32            `json:"limit"`
	Offset   int32            `json:"offset"`
}

type UpdateMilestoneRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed paid"`
}

func ToProjectSummary(p model.Project) ProjectSummary {
	return ProjectSummary{
		ID:             p.ID,
		Title:          p.Title,
		Category:       p.Category,
		Complexity:     p.Analysis.Complexity,
		EstimatedHours: p.Analysis.EstimatedHours,
		TotalCost:      p.Analysis.TotalCost,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
	}
}

func ToProjectResponse(p *model.Project) ProjectResponse {
	milestones := make([]MilestoneResponse, 0, len(p.Milestones))
	for _, m := range p.Milestones {
		milestones = append(milestones, ToMilestoneResponse(&m))
	}
	return ProjectResponse{
		ID:                  p.ID,
		Title:               p.Title,
		Description:         p.Description,
		Category:            p.Category,
		Requirements:        p.Requirements,
		Timeline:            p.Timeline,
		RequestedComplexity: p.RequestedComplexity,
		Status:              p.Status,
		Source:              p.AnalysisSource,
		Analysis:            p.Analysis,
		Milestones:          milestones,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

func ToMilestoneResponse(m *model.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:          m.ID,
		Position:    m.Position,
		Title:       m.Title,
		Description: m.Description,
		Percentage:  m.Percentage,
		Amount:      m.Amount,
		DueDate:     m.DueDate.Format(time.DateOnly),
		Status:      m.Status,
	}
}
