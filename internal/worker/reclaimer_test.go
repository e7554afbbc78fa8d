package worker_test

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"

	"tinkerly.io/api/internal/queue"
	"tinkerly.io/api/internal/worker"
)

var _ = Describe("Reclaimer", func() {
	var (
		ctx       context.Context
		client    *mockStreamClient
		consumer  *mockConsumer
		handled   []queue.Message
		processor queue.MessageProcessor
		cfg       worker.ReclaimerConfig
	)

	BeforeEach(func() {
		ctx = context.Background()
		client = &mockStreamClient{claimed: map[string]redis.XMessage{}}
		consumer = &mockConsumer{}
		handled = nil
		processor = func(_ context.Context, msg queue.Message) error {
			handled = append(handled, msg)
			return nil
		}
		cfg = worker.ReclaimerConfig{
			Stream:    "billing_events",
			Group:     "billing_workers",
			Consumer:  "worker-1-reclaimer",
			MinIdle:   5 * time.Minute,
			Interval:  time.Minute,
			BatchSize: 10,
		}
	})

	It("does nothing without stale messages", func() {
		r := worker.NewReclaimer(client, cfg, consumer, processor)
		Expect(r.ReclaimOnce(ctx)).To(Succeed())
		Expect(client.claimArgs).To(BeEmpty())
		Expect(handled).To(BeEmpty())
	})

	It("claims and processes stale messages", func() {
		client.pending = []redis.XPendingExt{{ID: "1-0", Consumer: "worker-dead", Idle: 10 * time.Minute, RetryCount: 1}}
		client.claimed["1-0"] = redis.XMessage{ID: "1-0", Values: map[string]any{
			"billing_event_id": "42",
			"event_type":       "invoice.paid",
			"attempt":          "2",
		}}

		r := worker.NewReclaimer(client, cfg, consumer, processor)
		Expect(r.ReclaimOnce(ctx)).To(Succeed())

		Expect(client.claimArgs).To(HaveLen(1))
		Expect(client.claimArgs[0].Consumer).To(Equal("worker-1-reclaimer"))
		Expect(client.claimArgs[0].MinIdle).To(Equal(5 * time.Minute))

		Expect(handled).To(HaveLen(1))
		Expect(handled[0].BillingEventID).To(Equal(int64(42)))
		Expect(handled[0].Attempt).To(Equal(2))
	})

	It("skips messages another consumer claimed first", func() {
		client.pending = []redis.XPendingExt{{ID: "1-0"}}

		r := worker.NewReclaimer(client, cfg, consumer, processor)
		Expect(r.ReclaimOnce(ctx)).To(Succeed())
		Expect(handled).To(BeEmpty())
	})

	It("acknowledges messages it cannot parse", func() {
		client.pending = []redis.XPendingExt{{ID: "1-0"}}
		client.claimed["1-0"] = redis.XMessage{ID: "1-0", Values: map[string]any{"event_type": "invoice.paid"}}

		r := worker.NewReclaimer(client, cfg, consumer, processor)
		Expect(r.ReclaimOnce(ctx)).To(Succeed())
		Expect(handled).To(BeEmpty())
		Expect(consumer.acked).To(Equal([]string{"1-0"}))
	})

	It("logs unparsable messages it fails to acknowledge", func() {
		logs := gbytes.NewBuffer()
		prev := slog.Default()
		slog.SetDefault(slog.New(slog.NewJSONHandler(logs, nil)))
		DeferCleanup(func() { slog.SetDefault(prev) })

		client.pending = []redis.XPendingExt{{ID: "1-0"}}
		client.claimed["1-0"] = redis.XMessage{ID: "1-0", Values: map[string]any{"event_type": "invoice.paid"}}
		consumer.ackErr = errors.New("connection refused")

		r := worker.NewReclaimer(client, cfg, consumer, processor)
		Expect(r.ReclaimOnce(ctx)).To(Succeed())
		Expect(handled).To(BeEmpty())
		Expect(logs).To(gbytes.Say(`"msg":"failed to reclaim message".*acknowledging unparsable message: connection refused`))
		Expect(string(logs.Contents())).To(ContainSubstring(`"message_id":"1-0"`))
	})

	It("keeps going when one message fails", func() {
		client.pending = []redis.XPendingExt{{ID: "1-0"}, {ID: "2-0"}}
		for _, id := range []string{"1-0", "2-0"} {
			client.claimed[id] = redis.XMessage{ID: id, Values: map[string]any{
				"billing_event_id": "7",
				"event_type":       "invoice.paid",
			}}
		}
		calls := 0
		processor = func(context.Context, queue.Message) error {
			calls++
			if calls == 1 {
				return errors.New("boom")
			}
			return nil
		}

		r := worker.NewReclaimer(client, cfg, consumer, processor)
		Expect(r.ReclaimOnce(ctx)).To(Succeed())
		Expect(calls).To(Equal(2))
	})

	It("reports pending lookups that fail", func() {
		client.pendingErr = errors.New("NOGROUP")

		r := worker.NewReclaimer(client, cfg, consumer, processor)
		Expect(r.ReclaimOnce(ctx)).To(MatchError(ContainSubstring("NOGROUP")))
	})

	It("hands reclaimed messages to the worker", func() {
		billing := &mockBillingService{}
		w := worker.New(consumer, billing, worker.Config{MaxAttempts: 3})
		client.pending = []redis.XPendingExt{{ID: "1-0"}}
		client.claimed["1-0"] = redis.XMessage{ID: "1-0", Values: map[string]any{
			"billing_event_id": "42",
			"event_type":       "invoice.paid",
		}}

		r := worker.NewReclaimer(client, cfg, consumer, w.HandleMessage)
		Expect(r.ReclaimOnce(ctx)).To(Succeed())
		Expect(billing.processed).To(Equal([]int64{42}))
		Expect(consumer.acked).To(Equal([]string{"1-0"}))
	})

	It("stops on request", func() {
		cfg.Interval = time.Millisecond
		r := worker.NewReclaimer(client, cfg, consumer, processor)

		done := make(chan struct{})
		go func() {
			r.Run(ctx)
			close(done)
		}()

		r.Stop()
		Eventually(done).Should(BeClosed())
	})
})
