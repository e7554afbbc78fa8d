package store

import (
	"context"

	"tinkerly.io/api/core/db/sqlc"
	"tinkerly.io/api/internal/model"
)

type creditStore struct {
	queries *sqlc.Queries
}

func newCreditStore(queries *sqlc.Queries) CreditStore {
	return &creditStore{queries: queries}
}

func (s *creditStore) Create(ctx context.Context, entry *model.CreditEntry) error {
	row, err := s.queries.CreateCreditEntry(ctx, sqlc.CreateCreditEntryParams{
		ID:           entry.ID,
		UserID:       entry.UserID,
		Delta:        int32(entry.Delta),
		Reason:       string(entry.Reason),
		Reference:    entry.Reference,
		BalanceAfter: int32(entry.BalanceAfter),
	})
	if err != nil {
		return mapError(err)
	}
	*entry = *toCreditEntryModel(row)
	return nil
}

func (s *creditStore) ListByUser(ctx context.Context, userID int64, limit int32) ([]model.CreditEntry, error) {
	rows, err := s.queries.ListCreditEntriesByUser(ctx, sqlc.ListCreditEntriesByUserParams{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.CreditEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, *toCreditEntryModel(row))
	}
	return result, nil
}

func toCreditEntryModel(row sqlc.CreditLedger) *model.CreditEntry {
	return &model.CreditEntry{
		ID:           row.ID,
		UserID:       row.UserID,
		Delta:        int(row.Delta),
		Reason:       model.CreditReason(row.Reason),
		Reference:    row.Reference,
		BalanceAfter: int(row.BalanceAfter),
		CreatedAt:    row.CreatedAt.Time,
	}
}
