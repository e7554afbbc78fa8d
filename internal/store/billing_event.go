package store

import (
	"context"
	"encoding/json"
	"fmt"

	"tinkerly.io/api/core/db/sqlc"
	"tinkerly.io/api/internal/model"
)

type billingEventStore struct {
	queries *sqlc.Queries
}

func newBillingEventStore(queries *sqlc.Queries) BillingEventStore {
	return &billingEventStore{queries: queries}
}

func (s *billingEventStore) CreateOrGet(ctx context.Context, event *model.BillingEvent) (*model.BillingEvent, bool, error) {
	row, err := s.queries.UpsertBillingEvent(ctx, sqlc.UpsertBillingEventParams{
		ID:            event.ID,
		StripeEventID: event.StripeEventID,
		EventType:     event.EventType,
		Payload:       []byte(event.Payload),
	})
	if err != nil {
		return nil, false, mapError(err)
	}
	created := row.ID == event.ID
	return toBillingEventModel(row), created, nil
}

func (s *billingEventStore) GetByID(ctx context.Context, id int64) (*model.BillingEvent, error) {
	row, err := s.queries.GetBillingEvent(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toBillingEventModel(row), nil
}

// GetByIDForUpdate reads the event and holds its row lock until the surrounding
// transaction ends.
func (s *billingEventStore) GetByIDForUpdate(ctx context.Context, id int64) (*model.BillingEvent, error) {
	row, err := s.queries.LockBillingEvent(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toBillingEventModel(row), nil
}

// MarkProcessed returns ErrConflict when the event was already marked processed.
func (s *billingEventStore) MarkProcessed(ctx context.Context, id int64) error {
	rows, err := s.queries.MarkBillingEventProcessed(ctx, id)
	if err != nil {
		return mapError(err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: billing event %d already processed", ErrConflict, id)
	}
	return nil
}

func (s *billingEventStore) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	return s.queries.MarkBillingEventFailed(ctx, sqlc.MarkBillingEventFailedParams{
		ID:              id,
		ProcessingError: &errMsg,
	})
}

func toBillingEventModel(row sqlc.BillingEvent) *model.BillingEvent {
	return &model.BillingEvent{
		ID:              row.ID,
		StripeEventID:   row.StripeEventID,
		EventType:       row.EventType,
		Payload:         json.RawMessage(row.Payload),
		ProcessedAt:     toTimePointer(row.ProcessedAt),
		ProcessingError: row.ProcessingError,
		Attempts:        int(row.Attempts),
		CreatedAt:       row.CreatedAt.Time,
	}
}
