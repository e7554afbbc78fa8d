package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"tinkerly.io/api/core/db/sqlc"
	"tinkerly.io/api/internal/model"
)

type milestoneStore struct {
	queries *sqlc.Queries
}

func newMilestoneStore(queries *sqlc.Queries) MilestoneStore {
	return &milestoneStore{queries: queries}
}

func (s *milestoneStore) Create(ctx context.Context, m *model.Milestone) error {
	row, err := s.queries.CreateMilestone(ctx, sqlc.CreateMilestoneParams{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		Position:    int32(m.Position),
		Title:       m.Title,
		Description: m.Description,
		Percentage:  int32(m.Percentage),
		Amount:      m.Amount,
		DueDate:     pgtype.Date{Time: m.DueDate, Valid: true},
	})
	if err != nil {
		return mapError(err)
	}
	*m = *toMilestoneModel(row)
	return nil
}

func (s *milestoneStore) GetByID(ctx context.Context, id int64) (*model.Milestone, error) {
	row, err := s.queries.GetMilestone(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toMilestoneModel(row), nil
}

func (s *milestoneStore) ListByProject(ctx context.Context, projectID int64) ([]model.Milestone, error) {
	rows, err := s.queries.ListMilestonesByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Milestone, 0, len(rows))
	for _, row := range rows {
		result = append(result, *toMilestoneModel(row))
	}
	return result, nil
}

func (s *milestoneStore) UpdateStatus(ctx context.Context, id int64, status model.MilestoneStatus) (*model.Milestone, error) {
	row, err := s.queries.UpdateMilestoneStatus(ctx, sqlc.UpdateMilestoneStatusParams{
		ID:     id,
		Status: string(status),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toMilestoneModel(row), nil
}

func toMilestoneModel(row sqlc.Milestone) *model.Milestone {
	return &model.Milestone{
		ID:          row.ID,
		ProjectID:   row.ProjectID,
		Position:    int(row.Position),
		Title:       row.Title,
		Description: row.Description,
		Percentage:  int(row.Percentage),
		Amount:      row.Amount,
		DueDate:     row.DueDate.Time,
		Status:      model.MilestoneStatus(row.Status),
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
