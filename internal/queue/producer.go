package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type Producer interface {
	Enqueue(ctx context.Context, task BillingTask) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Enqueue(ctx context.Context, task BillingTask) error {
	attempt := task.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	fields := map[string]any{
		"task_type":        string(TaskTypeBillingEvent),
		"billing_event_id": task.BillingEventID,
		"stripe_event_id":  task.StripeEventID,
		"event_type":       task.EventType,
		"attempt":          attempt,
	}

	if task.TraceID != nil && *task.TraceID != "" {
		fields["trace_id"] = *task.TraceID
	}

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue billing event: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued billing event",
		"billing_event_id", task.BillingEventID,
		"stripe_event_id", task.StripeEventID,
		"event_type", task.EventType,
		"attempt", attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}
