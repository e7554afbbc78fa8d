package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tinkerly.io/api/common/logger"
	"tinkerly.io/api/internal/queue"
	"tinkerly.io/api/internal/service"
)

// Consumer is the subset of queue.RedisConsumer the worker drives.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

type Config struct {
	MaxAttempts  int
	ErrorBackoff time.Duration // pause after a failed read
}

type Worker struct {
	consumer Consumer
	billing  service.BillingService
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer Consumer, billing service.BillingService, cfg Config) *Worker {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = time.Second
	}
	return &Worker{
		consumer:  consumer,
		billing:   billing,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "tinkerly.worker",
	})
	slog.InfoContext(ctx, "worker started", "max_attempts", w.cfg.MaxAttempts)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-w.stopCh:
					return nil
				case <-time.After(w.cfg.ErrorBackoff):
				}
			}
		}
	}
}

// Stop blocks until Run has returned.
func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		w.HandleMessage(ctx, msg)
	}
	return nil
}

// HandleMessage processes msg and, when that fails, requeues it or moves it to
// the dead letter stream. Shared with the reclaimer.
func (w *Worker) HandleMessage(ctx context.Context, msg queue.Message) error {
	err := w.processMessageSafe(ctx, msg)
	if err == nil {
		return nil
	}

	slog.ErrorContext(ctx, "message processing failed",
		"error", err,
		"message_id", msg.ID,
		"billing_event_id", msg.BillingEventID)
	w.handleFailedMessage(ctx, msg, err)
	return err
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing",
				"panic", r,
				"message_id", msg.ID,
				"billing_event_id", msg.BillingEventID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// ProcessMessage applies the billing event behind msg and acknowledges it.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID:      logger.Ptr(msg.ID),
		BillingEventID: logger.Ptr(msg.BillingEventID),
		EventType:      logger.Ptr(msg.EventType),
	})

	sc := logger.StartSpanFromTraceID(ctx, msg.TraceID, "worker.billing_event",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.message.id", msg.ID),
			attribute.Int64("billing_event.id", msg.BillingEventID),
			attribute.String("billing_event.type", msg.EventType),
			attribute.Int("billing_event.attempt", msg.Attempt),
		))
	defer sc.End()
	ctx = sc.Context()

	slog.InfoContext(ctx, "processing message", "attempt", msg.Attempt)

	start := time.Now()
	if err := w.billing.Process(ctx, msg.BillingEventID); err != nil {
		sc.RecordError(err)
		sc.Span().SetStatus(codes.Error, err.Error())
		return fmt.Errorf("processing billing event %d: %w", msg.BillingEventID, err)
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// The event is already marked processed, so a redelivery is a no-op.
		slog.WarnContext(ctx, "failed to ACK message", "error", err)
	}

	slog.InfoContext(ctx, "message processed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if errors.Is(err, service.ErrUnprocessable) || msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "sending message to DLQ",
			"message_id", msg.ID,
			"billing_event_id", msg.BillingEventID,
			"attempts", msg.Attempt,
			"unprocessable", errors.Is(err, service.ErrUnprocessable))
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"message_id", msg.ID,
		"billing_event_id", msg.BillingEventID,
		"attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
