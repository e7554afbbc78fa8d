package webhook_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stripe/stripe-go/v82"
	stripewebhook "github.com/stripe/stripe-go/v82/webhook"

	"tinkerly.io/api/internal/http/handler/webhook"
	"tinkerly.io/api/internal/service"
)

const signingSecret = "whsec_test"

type fakeBilling struct {
	ingestFn func(ctx context.Context, event stripe.Event) (*service.IngestResult, error)
	ingested []stripe.Event
}

func (f *fakeBilling) Ingest(ctx context.Context, event stripe.Event) (*service.IngestResult, error) {
	f.ingested = append(f.ingested, event)
	if f.ingestFn != nil {
		return f.ingestFn(ctx, event)
	}
	return &service.IngestResult{Enqueued: true}, nil
}

func (f *fakeBilling) Process(ctx context.Context, billingEventID int64) error {
	return nil
}

const eventBody = `{"id":"evt_1","object":"event","type":"invoice.paid","api_version":"2024-06-20","data":{"object":{"id":"in_1","object":"invoice"}}}`

func signed(body, secret string) (string, []byte) {
	payload := stripewebhook.GenerateTestSignedPayload(&stripewebhook.UnsignedPayload{
		Payload:   []byte(body),
		Secret:    secret,
		Timestamp: time.Now(),
	})
	return payload.Header, payload.Payload
}

var _ = Describe("StripeWebhookHandler", func() {
	var (
		router  *gin.Engine
		billing *fakeBilling
		secret  string
	)

	BeforeEach(func() {
		billing = &fakeBilling{}
		secret = signingSecret
	})

	JustBeforeEach(func() {
		router = gin.New()
		h := webhook.NewStripeWebhookHandler(billing, secret)
		router.POST("/webhooks/stripe", h.HandleEvent)
	})

	post := func(header string, body []byte) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if header != "" {
			req.Header.Set("Stripe-Signature", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("ingests verified events", func() {
		header, body := signed(eventBody, signingSecret)
		w := post(header, body)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(MatchJSON(`{"received":true,"enqueued":true,"duplicated":false}`))
		Expect(billing.ingested).To(HaveLen(1))
		Expect(billing.ingested[0].ID).To(Equal("evt_1"))
		Expect(billing.ingested[0].Type).To(Equal(stripe.EventType("invoice.paid")))
	})

	It("acknowledges duplicates", func() {
		billing.ingestFn = func(context.Context, stripe.Event) (*service.IngestResult, error) {
			return &service.IngestResult{Duplicated: true}, nil
		}
		header, body := signed(eventBody, signingSecret)
		w := post(header, body)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"duplicated":true`))
	})

	It("rejects requests without a signature", func() {
		w := post("", []byte(eventBody))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(billing.ingested).To(BeEmpty())
	})

	It("rejects events signed with another secret", func() {
		header, body := signed(eventBody, "whsec_other")
		w := post(header, body)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(billing.ingested).To(BeEmpty())
	})

	It("rejects tampered bodies", func() {
		header, _ := signed(eventBody, signingSecret)
		w := post(header, []byte(strings.Replace(eventBody, "in_1", "in_2", 1)))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("asks Stripe to retry when ingestion fails", func() {
		billing.ingestFn = func(context.Context, stripe.Event) (*service.IngestResult, error) {
			return nil, errors.New("db down")
		}
		header, body := signed(eventBody, signingSecret)
		w := post(header, body)
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})

	It("rejects oversized payloads", func() {
		big := `{"id":"evt_1","pad":"` + strings.Repeat("x", 70000) + `"}`
		header, body := signed(big, signingSecret)
		w := post(header, body)
		Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
	})

	Context("without a signing secret", func() {
		BeforeEach(func() {
			secret = ""
		})

		It("refuses to process events", func() {
			header, body := signed(eventBody, signingSecret)
			w := post(header, body)
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})
})
