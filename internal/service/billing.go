package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v82"

	"tinkerly.io/api/common/id"
	"tinkerly.io/api/common/logger"
	"tinkerly.io/api/internal/model"
	"tinkerly.io/api/internal/queue"
	"tinkerly.io/api/internal/store"
)

// ErrUnprocessable marks billing events that will never apply, no matter how often
// they are retried.
var ErrUnprocessable = errors.New("billing event cannot be applied")

var errAlreadyProcessed = errors.New("billing event already processed")

const maxCreditPack = 10000

type IngestResult struct {
	Event      *model.BillingEvent
	Enqueued   bool
	Duplicated bool
}

type BillingService interface {
	// Ingest records a verified Stripe event once and hands it to the worker.
	Ingest(ctx context.Context, event stripe.Event) (*IngestResult, error)
	// Process applies a recorded event. Already processed events are a no-op.
	Process(ctx context.Context, billingEventID int64) error
}

type billingService struct {
	stores      StoreProvider
	txRunner    TxRunner
	queue       queue.Producer
	planCredits map[string]int
}

func NewBillingService(stores StoreProvider, txRunner TxRunner, producer queue.Producer, planCredits map[string]int) BillingService {
	return &billingService{
		stores:      stores,
		txRunner:    txRunner,
		queue:       producer,
		planCredits: planCredits,
	}
}

func (s *billingService) Ingest(ctx context.Context, event stripe.Event) (*IngestResult, error) {
	if event.ID == "" || event.Type == "" {
		return nil, fmt.Errorf("event id and type are required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}

	recorded, created, err := s.stores.BillingEvents().CreateOrGet(ctx, &model.BillingEvent{
		ID:            id.New(),
		StripeEventID: event.ID,
		EventType:     string(event.Type),
		Payload:       payload,
	})
	if err != nil {
		return nil, fmt.Errorf("recording billing event: %w", err)
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		BillingEventID: &recorded.ID,
		EventType:      logger.Ptr(recorded.EventType),
	})

	// Stripe retries deliveries until it sees a 2xx, so a known but unprocessed
	// event is enqueued again.
	if !created && recorded.Processed() {
		slog.InfoContext(ctx, "duplicate billing event ignored", "stripe_event_id", event.ID)
		return &IngestResult{Event: recorded, Duplicated: true}, nil
	}

	var traceID *string
	if t := logger.TraceID(ctx); t != "" {
		traceID = &t
	}
	if err := s.queue.Enqueue(ctx, queue.BillingTask{
		BillingEventID: recorded.ID,
		StripeEventID:  recorded.StripeEventID,
		EventType:      recorded.EventType,
		TraceID:        traceID,
		Attempt:        1,
	}); err != nil {
		return nil, fmt.Errorf("enqueueing billing event: %w", err)
	}

	return &IngestResult{Event: recorded, Enqueued: true, Duplicated: !created}, nil
}

func (s *billingService) Process(ctx context.Context, billingEventID int64) error {
	recorded, err := s.stores.BillingEvents().GetByID(ctx, billingEventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: billing event %d not found", ErrUnprocessable, billingEventID)
		}
		return fmt.Errorf("fetching billing event: %w", err)
	}
	if recorded.Processed() {
		slog.InfoContext(ctx, "billing event already processed")
		return nil
	}

	var event stripe.Event
	if err := json.Unmarshal(recorded.Payload, &event); err != nil {
		return s.fail(ctx, recorded.ID, fmt.Errorf("%w: decoding payload: %v", ErrUnprocessable, err))
	}

	// The row lock serializes concurrent deliveries of the same event. The guarded
	// mark rolls back a run that lost the race anyway.
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		locked, err := sp.BillingEvents().GetByIDForUpdate(ctx, recorded.ID)
		if err != nil {
			return fmt.Errorf("locking billing event: %w", err)
		}
		if locked.Processed() {
			return errAlreadyProcessed
		}
		if err := s.apply(ctx, sp, event); err != nil {
			return err
		}
		if err := sp.BillingEvents().MarkProcessed(ctx, recorded.ID); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return errAlreadyProcessed
			}
			return fmt.Errorf("marking billing event processed: %w", err)
		}
		return nil
	})
	if errors.Is(err, errAlreadyProcessed) {
		slog.InfoContext(ctx, "billing event applied by another run, changes rolled back")
		return nil
	}
	if err != nil {
		return s.fail(ctx, recorded.ID, err)
	}

	slog.InfoContext(ctx, "billing event processed", "stripe_event_id", recorded.StripeEventID)
	return nil
}

func (s *billingService) fail(ctx context.Context, billingEventID int64, cause error) error {
	if err := s.stores.BillingEvents().MarkFailed(ctx, billingEventID, cause.Error()); err != nil {
		slog.ErrorContext(ctx, "failed to record billing event failure", "error", err)
	}
	return cause
}

func (s *billingService) apply(ctx context.Context, sp StoreProvider, event stripe.Event) error {
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return fmt.Errorf("%w: event has no data object", ErrUnprocessable)
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return fmt.Errorf("%w: decoding checkout session: %v", ErrUnprocessable, err)
		}
		return s.applyCheckout(ctx, sp, &session)

	case stripe.EventTypeInvoicePaid:
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return fmt.Errorf("%w: decoding invoice: %v", ErrUnprocessable, err)
		}
		return s.applyInvoicePaid(ctx, sp, &invoice)

	case stripe.EventTypeCustomerSubscriptionUpdated, stripe.EventTypeCustomerSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("%w: decoding subscription: %v", ErrUnprocessable, err)
		}
		return s.applySubscriptionChange(ctx, sp, &sub, event.Type == stripe.EventTypeCustomerSubscriptionDeleted)

	default:
		slog.DebugContext(ctx, "ignoring billing event type")
		return nil
	}
}

func (s *billingService) applyCheckout(ctx context.Context, sp StoreProvider, session *stripe.CheckoutSession) error {
	customerID := customerIDOf(session.Customer)
	user, err := s.resolveUser(ctx, sp, session.ClientReferenceID, session.Metadata, customerID)
	if err != nil {
		return err
	}

	switch session.Mode {
	case stripe.CheckoutSessionModePayment:
		credits, err := strconv.Atoi(session.Metadata["credits"])
		if err != nil || credits <= 0 || credits > maxCreditPack {
			return fmt.Errorf("%w: invalid credits metadata %q", ErrUnprocessable, session.Metadata["credits"])
		}
		if customerID != nil && user.StripeCustomerID == nil {
			if _, err := sp.Users().UpdateSubscription(ctx, user.ID, user.SubscriptionTier, user.SubscriptionStatus, customerID); err != nil {
				return fmt.Errorf("linking stripe customer: %w", err)
			}
		}
		_, err = grantCredits(ctx, sp, user.ID, credits, model.CreditReasonPurchase, session.ID)
		return err

	case stripe.CheckoutSessionModeSubscription:
		plan, credits, err := s.plan(session.Metadata["plan"])
		if err != nil {
			return err
		}
		if _, err := sp.Users().UpdateSubscription(ctx, user.ID, model.SubscriptionTier(plan), model.SubscriptionStatusActive, customerID); err != nil {
			return fmt.Errorf("activating subscription: %w", err)
		}
		if credits == 0 {
			return nil
		}
		_, err = grantCredits(ctx, sp, user.ID, credits, model.CreditReasonSubscription, session.ID)
		return err

	default:
		slog.DebugContext(ctx, "ignoring checkout session mode", "mode", session.Mode)
		return nil
	}
}

func (s *billingService) applyInvoicePaid(ctx context.Context, sp StoreProvider, invoice *stripe.Invoice) error {
	// The first invoice of a subscription is covered by checkout.session.completed.
	if invoice.BillingReason != stripe.InvoiceBillingReasonSubscriptionCycle {
		slog.DebugContext(ctx, "ignoring invoice", "billing_reason", invoice.BillingReason)
		return nil
	}

	user, err := s.resolveUser(ctx, sp, "", nil, customerIDOf(invoice.Customer))
	if err != nil {
		return err
	}

	credits, ok := s.planCredits[string(user.SubscriptionTier)]
	if !ok || credits == 0 {
		slog.WarnContext(ctx, "paid invoice for user without a credit plan",
			"user_id", user.ID,
			"tier", user.SubscriptionTier)
		return nil
	}

	_, err = grantCredits(ctx, sp, user.ID, credits, model.CreditReasonSubscription, invoice.ID)
	return err
}

func (s *billingService) applySubscriptionChange(ctx context.Context, sp StoreProvider, sub *stripe.Subscription, deleted bool) error {
	user, err := s.resolveUser(ctx, sp, "", sub.Metadata, customerIDOf(sub.Customer))
	if err != nil {
		return err
	}

	tier := user.SubscriptionTier
	status := subscriptionStatus(sub.Status)
	if deleted {
		tier = model.SubscriptionTierFree
		status = model.SubscriptionStatusCanceled
	} else if plan := strings.ToLower(sub.Metadata["plan"]); plan != "" {
		if _, ok := s.planCredits[plan]; ok {
			tier = model.SubscriptionTier(plan)
		}
	}

	if _, err := sp.Users().UpdateSubscription(ctx, user.ID, tier, status, customerIDOf(sub.Customer)); err != nil {
		return fmt.Errorf("updating subscription: %w", err)
	}

	slog.InfoContext(ctx, "subscription updated",
		"user_id", user.ID,
		"tier", tier,
		"status", status)
	return nil
}

// resolveUser finds the user a Stripe object belongs to: by auth subject passed as
// client_reference_id or metadata user_id, then by Stripe customer ID.
func (s *billingService) resolveUser(ctx context.Context, sp StoreProvider, reference string, metadata map[string]string, customerID *string) (*model.User, error) {
	subjects := []string{reference, metadata["user_id"]}
	for _, subject := range subjects {
		if subject == "" {
			continue
		}
		user, err := sp.Users().GetByAuthSubject(ctx, subject)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("fetching user: %w", err)
		}
	}

	if customerID != nil {
		user, err := sp.Users().GetByStripeCustomerID(ctx, *customerID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("fetching user by customer: %w", err)
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrUnprocessable, ErrUserNotFound)
}

func (s *billingService) plan(name string) (string, int, error) {
	plan := strings.ToLower(strings.TrimSpace(name))
	credits, ok := s.planCredits[plan]
	if !ok {
		return "", 0, fmt.Errorf("%w: unknown plan %q", ErrUnprocessable, name)
	}
	return plan, credits, nil
}

func customerIDOf(c *stripe.Customer) *string {
	if c == nil || c.ID == "" {
		return nil
	}
	customerID := c.ID
	return &customerID
}

func subscriptionStatus(status stripe.SubscriptionStatus) model.SubscriptionStatus {
	switch status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return model.SubscriptionStatusActive
	case stripe.SubscriptionStatusPastDue, stripe.SubscriptionStatusUnpaid, stripe.SubscriptionStatusIncomplete:
		return model.SubscriptionStatusPastDue
	default:
		return model.SubscriptionStatusCanceled
	}
}
