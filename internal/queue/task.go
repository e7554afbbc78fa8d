package queue

type TaskType string

const (
	TaskTypeBillingEvent TaskType = "billing_event"
)

// BillingTask asks the worker to apply one recorded payment processor event.
type BillingTask struct {
	BillingEventID int64
	StripeEventID  string
	EventType      string
	TraceID        *string
	Attempt        int
}
