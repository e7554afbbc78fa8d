package model

import "time"

type CreditReason string

const (
	CreditReasonSignupGrant  CreditReason = "signup_grant"
	CreditReasonAnalysis     CreditReason = "analysis"
	CreditReasonPurchase     CreditReason = "purchase"
	CreditReasonSubscription CreditReason = "subscription"
	CreditReasonManualAdjust CreditReason = "manual_adjustment"
)

// CreditEntry is one row of the append-only credit ledger.
type CreditEntry struct {
	CreatedAt    time.Time    `json:"created_at"`
	Reference    *string      `json:"reference,omitempty"`
	Reason       CreditReason `json:"reason"`
	ID           int64        `json:"id"`
	UserID       int64        `json:"user_id"`
	Delta        int          `json:"delta"`
	BalanceAfter int          `json:"balance_after"`
}
