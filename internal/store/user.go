package store

import (
	"context"
	"errors"

	"tinkerly.io/api/core/db/sqlc"
	"tinkerly.io/api/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByAuthSubject(ctx context.Context, subject string) (*model.User, error) {
	row, err := s.queries.GetUserByAuthSubject(ctx, subject)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByStripeCustomerID(ctx context.Context, customerID string) (*model.User, error) {
	row, err := s.queries.GetUserByStripeCustomerID(ctx, &customerID)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) Upsert(ctx context.Context, user *model.User) (*model.User, bool, error) {
	row, err := s.queries.UpsertUser(ctx, sqlc.UpsertUserParams{
		ID:               user.ID,
		AuthSubject:      user.AuthSubject,
		Email:            user.Email,
		CreditsRemaining: int32(user.CreditsRemaining),
	})
	if err != nil {
		return nil, false, mapError(err)
	}
	created := row.ID == user.ID
	return toUserModel(row), created, nil
}

func (s *userStore) SpendCredit(ctx context.Context, id int64) (int, error) {
	remaining, err := s.queries.SpendCredit(ctx, id)
	if err != nil {
		err = mapError(err)
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNoCredits
		}
		return 0, err
	}
	return int(remaining), nil
}

func (s *userStore) AddCredits(ctx context.Context, id int64, delta int) (int, error) {
	remaining, err := s.queries.AddCredits(ctx, sqlc.AddCreditsParams{
		ID:    id,
		Delta: int32(delta),
	})
	if err != nil {
		return 0, mapError(err)
	}
	return int(remaining), nil
}

func (s *userStore) UpdateSubscription(ctx context.Context, id int64, tier model.SubscriptionTier, status model.SubscriptionStatus, customerID *string) (*model.User, error) {
	row, err := s.queries.UpdateUserSubscription(ctx, sqlc.UpdateUserSubscriptionParams{
		ID:                 id,
		SubscriptionTier:   string(tier),
		SubscriptionStatus: string(status),
		StripeCustomerID:   customerID,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:                 row.ID,
		AuthSubject:        row.AuthSubject,
		Email:              row.Email,
		CreditsRemaining:   int(row.CreditsRemaining),
		SubscriptionTier:   model.SubscriptionTier(row.SubscriptionTier),
		SubscriptionStatus: model.SubscriptionStatus(row.SubscriptionStatus),
		StripeCustomerID:   row.StripeCustomerID,
		CreatedAt:          row.CreatedAt.Time,
		UpdatedAt:          row.UpdatedAt.Time,
	}
}
