package model

import "time"

type SubscriptionTier string

const (
	SubscriptionTierFree SubscriptionTier = "free"
)

type SubscriptionStatus string

const (
	SubscriptionStatusNone     SubscriptionStatus = "none"
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

// User is keyed by the auth provider's subject claim; the snowflake ID is internal.
type User struct {
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	StripeCustomerID   *string            `json:"stripe_customer_id,omitempty"`
	AuthSubject        string             `json:"auth_subject"`
	Email              string             `json:"email"`
	SubscriptionTier   SubscriptionTier   `json:"subscription_tier"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	ID                 int64              `json:"id"`
	CreditsRemaining   int                `json:"credits_remaining"`
}

func (u User) HasCredits() bool {
	return u.CreditsRemaining > 0
}
