package store

import (
	"context"
	"encoding/json"
	"fmt"

	"tinkerly.io/api/core/db/sqlc"
	"tinkerly.io/api/internal/model"
)

type projectStore struct {
	queries *sqlc.Queries
}

func newProjectStore(queries *sqlc.Queries) ProjectStore {
	return &projectStore{queries: queries}
}

func (s *projectStore) Create(ctx context.Context, project *model.Project) error {
	analysis, err := json.Marshal(project.Analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}

	a := project.Analysis
	row, err := s.queries.CreateProject(ctx, sqlc.CreateProjectParams{
		ID:                  project.ID,
		UserID:              project.UserID,
		Title:               project.Title,
		Description:         project.Description,
		Category:            project.Category,
		Requirements:        project.Requirements,
		Timeline:            project.Timeline,
		RequestedComplexity: project.RequestedComplexity,
		Complexity:          string(a.Complexity),
		ComplexityScore:     int32(a.ComplexityScore),
		EstimatedHours:      int32(a.EstimatedHours),
		HourlyRate:          int32(a.HourlyRate),
		TotalCost:           int64(a.TotalCost),
		Analysis:            analysis,
		AnalysisSource:      string(project.AnalysisSource),
	})
	if err != nil {
		return mapError(err)
	}

	created, err := toProjectModel(row)
	if err != nil {
		return err
	}
	*project = *created
	return nil
}

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	row, err := s.queries.GetProject(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toProjectModel(row)
}

func (s *projectStore) ListByUser(ctx context.Context, userID int64, limit, offset int32) ([]model.Project, error) {
	rows, err := s.queries.ListProjectsByUser(ctx, sqlc.ListProjectsByUserParams{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Project, 0, len(rows))
	for _, row := range rows {
		p, err := toProjectModel(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, nil
}

func toProjectModel(row sqlc.Project) (*model.Project, error) {
	p := &model.Project{
		ID:                  row.ID,
		UserID:              row.UserID,
		Title:               row.Title,
		Description:         row.Description,
		Category:            row.Category,
		Requirements:        row.Requirements,
		Timeline:            row.Timeline,
		RequestedComplexity: row.RequestedComplexity,
		AnalysisSource:      model.AnalysisSource(row.AnalysisSource),
		Status:              model.ProjectStatus(row.Status),
		CreatedAt:           row.CreatedAt.Time,
		UpdatedAt:           row.UpdatedAt.Time,
	}
	if err := json.Unmarshal(row.Analysis, &p.Analysis); err != nil {
		return nil, fmt.Errorf("decode analysis for project %d: %w", row.ID, err)
	}
	return p, nil
}
