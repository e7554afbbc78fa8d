package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are attached to every record logged with a context that carries them.
type LogFields struct {
	RequestID      *string
	UserID         *int64
	ProjectID      *int64
	BillingEventID *int64
	MessageID      *string // Redis stream message ID
	EventType      *string // Stripe event type, e.g. "invoice.paid"
	Component      string  // e.g. "tinkerly.service.estimation"
}

// WithLogFields merges fields into the context. Non-nil/non-empty values in fields win.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := mergeFields(GetLogFields(ctx), fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields returns the fields stored in ctx, or the zero value.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.RequestID != nil {
		result.RequestID = next.RequestID
	}
	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.ProjectID != nil {
		result.ProjectID = next.ProjectID
	}
	if next.BillingEventID != nil {
		result.BillingEventID = next.BillingEventID
	}
	if next.MessageID != nil {
		result.MessageID = next.MessageID
	}
	if next.EventType != nil {
		result.EventType = next.EventType
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr returns a pointer to v, for inline LogFields literals.
func Ptr[T any](v T) *T {
	return &v
}

// Truncate shortens s to maxLen bytes, appending "..." when it cut something.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
