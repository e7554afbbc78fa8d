package model

import (
	"encoding/json"
	"time"
)

type BillingEvent struct {
	CreatedAt       time.Time       `json:"created_at"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	ProcessingError *string         `json:"processing_error,omitempty"`
	StripeEventID   string          `json:"stripe_event_id"`
	EventType       string          `json:"event_type"`
	Payload         json.RawMessage `json:"payload"`
	ID              int64           `json:"id"`
	Attempts        int             `json:"attempts"`
}

func (e BillingEvent) Processed() bool {
	return e.ProcessedAt != nil
}
