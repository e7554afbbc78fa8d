package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tinkerly.io/api/common/id"
	"tinkerly.io/api/internal/model"
	"tinkerly.io/api/internal/store"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrUserNotFound        = errors.New("user not found")
)

// Principal is the authenticated caller as identified by the auth provider.
type Principal struct {
	Subject string
	Email   string
}

type Balance struct {
	CreditsRemaining   int                      `json:"credits_remaining"`
	SubscriptionTier   model.SubscriptionTier   `json:"subscription_tier"`
	SubscriptionStatus model.SubscriptionStatus `json:"subscription_status"`
	Recent             []model.CreditEntry      `json:"recent"`
}

type CreditService interface {
	// EnsureUser returns the caller's user row, creating it with the free credit
	// allowance on first sight.
	EnsureUser(ctx context.Context, p Principal) (*model.User, error)
	Balance(ctx context.Context, p Principal) (*Balance, error)
	Grant(ctx context.Context, userID int64, delta int, reason model.CreditReason, reference string) (int, error)
}

const recentLedgerEntries = 20

type creditService struct {
	stores      StoreProvider
	txRunner    TxRunner
	freeCredits int
}

func NewCreditService(stores StoreProvider, txRunner TxRunner, freeCredits int) CreditService {
	return &creditService{
		stores:      stores,
		txRunner:    txRunner,
		freeCredits: freeCredits,
	}
}

func (s *creditService) EnsureUser(ctx context.Context, p Principal) (*model.User, error) {
	if p.Subject == "" {
		return nil, fmt.Errorf("principal subject is required")
	}

	existing, err := s.stores.Users().GetByAuthSubject(ctx, p.Subject)
	if err == nil && (p.Email == "" || existing.Email == p.Email) {
		return existing, nil
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	var user *model.User
	if err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		var created bool
		var err error
		user, created, err = sp.Users().Upsert(ctx, &model.User{
			ID:               id.New(),
			AuthSubject:      p.Subject,
			Email:            p.Email,
			CreditsRemaining: s.freeCredits,
		})
		if err != nil {
			return fmt.Errorf("upserting user: %w", err)
		}

		if created && s.freeCredits > 0 {
			if err := sp.Credits().Create(ctx, &model.CreditEntry{
				ID:           id.New(),
				UserID:       user.ID,
				Delta:        s.freeCredits,
				Reason:       model.CreditReasonSignupGrant,
				BalanceAfter: user.CreditsRemaining,
			}); err != nil {
				return fmt.Errorf("recording signup grant: %w", err)
			}
			slog.InfoContext(ctx, "user created with free credits",
				"user_id", user.ID,
				"credits", s.freeCredits)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *creditService) Balance(ctx context.Context, p Principal) (*Balance, error) {
	user, err := s.EnsureUser(ctx, p)
	if err != nil {
		return nil, err
	}

	recent, err := s.stores.Credits().ListByUser(ctx, user.ID, recentLedgerEntries)
	if err != nil {
		return nil, fmt.Errorf("listing credit ledger: %w", err)
	}

	return &Balance{
		CreditsRemaining:   user.CreditsRemaining,
		SubscriptionTier:   user.SubscriptionTier,
		SubscriptionStatus: user.SubscriptionStatus,
		Recent:             recent,
	}, nil
}

func (s *creditService) Grant(ctx context.Context, userID int64, delta int, reason model.CreditReason, reference string) (int, error) {
	var balance int
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		var err error
		balance, err = grantCredits(ctx, sp, userID, delta, reason, reference)
		return err
	})
	return balance, err
}

// grantCredits adjusts the balance and appends the matching ledger row using sp,
// which is expected to be transaction-bound.
func grantCredits(ctx context.Context, sp StoreProvider, userID int64, delta int, reason model.CreditReason, reference string) (int, error) {
	if delta == 0 {
		return 0, fmt.Errorf("credit delta must be non-zero")
	}

	balance, err := sp.Users().AddCredits(ctx, userID, delta)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("adding credits: %w", err)
	}

	var ref *string
	if reference != "" {
		ref = &reference
	}
	if err := sp.Credits().Create(ctx, &model.CreditEntry{
		ID:           id.New(),
		UserID:       userID,
		Delta:        delta,
		Reason:       reason,
		Reference:    ref,
		BalanceAfter: balance,
	}); err != nil {
		return 0, fmt.Errorf("recording credit entry: %w", err)
	}

	slog.InfoContext(ctx, "credits granted",
		"user_id", userID,
		"delta", delta,
		"reason", reason,
		"balance", balance)
	return balance, nil
}
