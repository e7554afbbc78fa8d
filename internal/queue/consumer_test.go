package queue_test

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tinkerly.io/api/internal/queue"
)

var _ = Describe("ParseMessage", func() {
	It("parses string-encoded stream values", func() {
		msg, err := queue.ParseMessage(redis.XMessage{
			ID: "1700000000000-0",
			Values: map[string]any{
				"task_type":        "billing_event",
				"billing_event_id": "42",
				"stripe_event_id":  "evt_123",
				"event_type":       "checkout.session.completed",
				"attempt":          "3",
				"trace_id":         "abc",
				"last_error":       "db down",
			},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.ID).To(Equal("1700000000000-0"))
		Expect(msg.TaskType).To(Equal(queue.TaskTypeBillingEvent))
		Expect(msg.BillingEventID).To(Equal(int64(42)))
		Expect(msg.StripeEventID).To(Equal("evt_123"))
		Expect(msg.EventType).To(Equal("checkout.session.completed"))
		Expect(msg.Attempt).To(Equal(3))
		Expect(msg.TraceID).To(Equal("abc"))
		Expect(msg.LastError).To(Equal("db down"))
	})

	It("defaults task type and attempt", func() {
		msg, err := queue.ParseMessage(redis.XMessage{
			ID:     "1-0",
			Values: map[string]any{"billing_event_id": "7", "event_type": "invoice.paid"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.TaskType).To(Equal(queue.TaskTypeBillingEvent))
		Expect(msg.Attempt).To(Equal(1))
	})

	DescribeTable("rejects broken messages",
		func(values map[string]any) {
			_, err := queue.ParseMessage(redis.XMessage{ID: "1-0", Values: values})
			Expect(err).To(HaveOccurred())
		},
		Entry("unknown task", map[string]any{"task_type": "repo_sync", "billing_event_id": "1", "event_type": "x"}),
		Entry("missing id", map[string]any{"event_type": "x"}),
		Entry("non-numeric id", map[string]any{"billing_event_id": "abc", "event_type": "x"}),
		Entry("zero id", map[string]any{"billing_event_id": "0", "event_type": "x"}),
		Entry("missing event type", map[string]any{"billing_event_id": "1"}),
		Entry("bad attempt", map[string]any{"billing_event_id": "1", "event_type": "x", "attempt": "many"}),
	)
})

var _ = Describe("MessageValues", func() {
	It("round-trips through ParseMessage with the new attempt", func() {
		original := queue.Message{
			BillingEventID: 9,
			StripeEventID:  "evt_9",
			EventType:      "invoice.paid",
			Attempt:        1,
			TraceID:        "t-1",
		}

		values := queue.MessageValues(original, 2)
		stringly := make(map[string]any, len(values))
		for k, v := range values {
			stringly[k] = toString(v)
		}

		parsed, err := queue.ParseMessage(redis.XMessage{ID: "2-0", Values: stringly})
		Expect(err).NotTo(HaveOccurred())
		Expect(parsed.Attempt).To(Equal(2))
		Expect(parsed.BillingEventID).To(Equal(int64(9)))
		Expect(parsed.StripeEventID).To(Equal("evt_9"))
		Expect(parsed.TraceID).To(Equal("t-1"))
	})
})

// toString mimics how Redis hands stream values back: always as strings.
func toString(v any) string {
	return fmt.Sprint(v)
}
