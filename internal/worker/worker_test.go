package worker_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tinkerly.io/api/internal/queue"
	"tinkerly.io/api/internal/service"
	"tinkerly.io/api/internal/worker"
)

func message(id string, billingEventID int64, attempt int) queue.Message {
	return queue.Message{
		ID:             id,
		TaskType:       queue.TaskTypeBillingEvent,
		BillingEventID: billingEventID,
		EventType:      "invoice.paid",
		Attempt:        attempt,
	}
}

var _ = Describe("Worker", func() {
	var (
		ctx      context.Context
		consumer *mockConsumer
		billing  *mockBillingService
		w        *worker.Worker
	)

	BeforeEach(func() {
		ctx = context.Background()
		consumer = &mockConsumer{}
		billing = &mockBillingService{}
		w = worker.New(consumer, billing, worker.Config{MaxAttempts: 3, ErrorBackoff: time.Millisecond})
	})

	Describe("HandleMessage", func() {
		It("acknowledges processed messages", func() {
			Expect(w.HandleMessage(ctx, message("1-0", 42, 1))).To(Succeed())
			Expect(billing.processed).To(Equal([]int64{42}))
			Expect(consumer.acked).To(Equal([]string{"1-0"}))
			Expect(consumer.requeued).To(BeEmpty())
		})

		It("requeues transient failures", func() {
			billing.processFn = func(context.Context, int64) error { return errors.New("connection reset") }

			Expect(w.HandleMessage(ctx, message("1-0", 42, 1))).To(HaveOccurred())
			Expect(consumer.requeued).To(Equal([]string{"1-0"}))
			Expect(consumer.acked).To(BeEmpty())
			Expect(consumer.dlq).To(BeEmpty())
		})

		It("dead-letters messages that ran out of attempts", func() {
			billing.processFn = func(context.Context, int64) error { return errors.New("connection reset") }

			Expect(w.HandleMessage(ctx, message("1-0", 42, 3))).To(HaveOccurred())
			Expect(consumer.requeued).To(BeEmpty())
			Expect(consumer.dlq).To(HaveKeyWithValue("1-0", ContainSubstring("connection reset")))
		})

		It("dead-letters unprocessable events straight away", func() {
			billing.processFn = func(context.Context, int64) error {
				return fmt.Errorf("%w: unknown plan", service.ErrUnprocessable)
			}

			Expect(w.HandleMessage(ctx, message("1-0", 42, 1))).To(HaveOccurred())
			Expect(consumer.requeued).To(BeEmpty())
			Expect(consumer.dlq).To(HaveKey("1-0"))
		})

		It("recovers from panics", func() {
			billing.processFn = func(context.Context, int64) error { panic("boom") }

			err := w.HandleMessage(ctx, message("1-0", 42, 1))
			Expect(err).To(MatchError(ContainSubstring("panic: boom")))
			Expect(consumer.requeued).To(Equal([]string{"1-0"}))
		})

		It("continues traces carried by the message", func() {
			msg := message("1-0", 42, 1)
			msg.TraceID = "4bf92f3577b34da6a3ce929d0e0e4736"
			Expect(w.HandleMessage(ctx, msg)).To(Succeed())
		})
	})

	Describe("Run", func() {
		It("drains batches until stopped", func() {
			consumer.batches = [][]queue.Message{
				{message("1-0", 1, 1), message("2-0", 2, 1)},
				{message("3-0", 3, 1)},
			}

			done := make(chan error, 1)
			go func() { done <- w.Run(ctx) }()

			Eventually(consumer.Acked).Should(Equal([]string{"1-0", "2-0", "3-0"}))
			w.Stop()
			Expect(<-done).To(Succeed())
		})

		It("keeps polling after read errors", func() {
			consumer.readErr = errors.New("redis unavailable")

			done := make(chan error, 1)
			go func() { done <- w.Run(ctx) }()

			Consistently(done, 20*time.Millisecond).ShouldNot(Receive())
			w.Stop()
			Expect(<-done).To(Succeed())
		})

		It("returns when the context is cancelled", func() {
			runCtx, cancel := context.WithCancel(ctx)
			done := make(chan error, 1)
			go func() { done <- w.Run(runCtx) }()

			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
		})
	})
})
