package dto

import (
	"time"

	"tinkerly.io/api/internal/model"
	"tinkerly.io/api/internal/service"
)

type CreditEntryResponse struct {
	ID           int64              `json:"id,string"`
	Delta        int                `json:"delta"`
	Reason       model.CreditReason `json:"reason"`
	Reference    *string            `json:"reference,omitempty"`
	BalanceAfter int                `json:"balance_after"`
	CreatedAt    time.Time          `json:"created_at"`
}

type CreditsResponse struct {
	CreditsRemaining   int                      `json:"credits_remaining"`
	SubscriptionTier   model.SubscriptionTier   `json:"subscription_tier"`
	SubscriptionStatus model.SubscriptionStatus `json:"subscription_status"`
	Recent             []CreditEntryResponse    `json:"recent"`
}

func ToCreditsResponse(b *service.Balance) CreditsResponse {
	recent := make([]CreditEntryResponse, 0, len(b.Recent))
	for _, e := range b.Recent {
		recent = append(recent, CreditEntryResponse{
			ID:           e.ID,
			Delta:        e.Delta,
			Reason:       e.Reason,
			Reference:    e.Reference,
			BalanceAfter: e.BalanceAfter,
			CreatedAt:    e.CreatedAt,
		})
	}
	return CreditsResponse{
		CreditsRemaining:   b.CreditsRemaining,
		SubscriptionTier:   b.SubscriptionTier,
		SubscriptionStatus: b.SubscriptionStatus,
		Recent:             recent,
	}
}
