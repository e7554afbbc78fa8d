package webhook

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82/webhook"

	"tinkerly.io/api/common/logger"
	"tinkerly.io/api/internal/service"
)

const (
	stripeSignatureHeader = "Stripe-Signature"
	maxBodyBytes          = int64(65536)
)

type StripeWebhookHandler struct {
	billing service.BillingService
	secret  string
}

func NewStripeWebhookHandler(billing service.BillingService, secret string) *StripeWebhookHandler {
	return &StripeWebhookHandler{
		billing: billing,
		secret:  secret,
	}
}

func (h *StripeWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	if h.secret == "" {
		slog.ErrorContext(ctx, "stripe webhook received but no signing secret is configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "webhooks not configured"})
		return
	}

	signature := c.GetHeader(stripeSignatureHeader)
	if signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing stripe signature"})
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "payload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(body, signature, h.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		slog.WarnContext(ctx, "stripe webhook verification failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		EventType: logger.Ptr(string(event.Type)),
	})
	slog.InfoContext(ctx, "received stripe webhook", "stripe_event_id", event.ID)

	result, err := h.billing.Ingest(ctx, event)
	if err != nil {
		// Non-2xx makes Stripe redeliver later.
		slog.ErrorContext(ctx, "failed to ingest stripe event", "error", err, "stripe_event_id", event.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ingest event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"received":   true,
		"enqueued":   result.Enqueued,
		"duplicated": result.Duplicated,
	})
}
