package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tinkerly.io/api/internal/http/handler"
	"tinkerly.io/api/internal/model"
	"tinkerly.io/api/internal/service"
)

var _ = Describe("CreditHandler", func() {
	var (
		router *gin.Engine
		svc    *mockCreditService
	)

	BeforeEach(func() {
		svc = &mockCreditService{}
		h := handler.NewCreditHandler(svc)
		router = gin.New()
		router.GET("/credits", authenticated(caller), h.Balance)
		router.GET("/anonymous/credits", h.Balance)
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	It("returns the balance and recent ledger entries", func() {
		ref := "cs_1"
		svc.balanceFn = func(_ context.Context, p service.Principal) (*service.Balance, error) {
			Expect(p.Subject).To(Equal("user_abc"))
			return &service.Balance{
				CreditsRemaining:   27,
				SubscriptionTier:   "starter",
				SubscriptionStatus: model.SubscriptionStatusActive,
				Recent: []model.CreditEntry{
					{ID: 5, Delta: 25, Reason: model.CreditReasonSubscription, Reference: &ref, BalanceAfter: 27},
				},
			}, nil
		}

		w := get("/credits")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"credits_remaining":27`))
		Expect(w.Body.String()).To(ContainSubstring(`"subscription_tier":"starter"`))
		Expect(w.Body.String()).To(ContainSubstring(`"reference":"cs_1"`))
		Expect(w.Body.String()).To(ContainSubstring(`"id":"5"`))
	})

	It("returns 500 when the balance cannot be loaded", func() {
		svc.balanceFn = func(context.Context, service.Principal) (*service.Balance, error) {
			return nil, errors.New("boom")
		}
		Expect(get("/credits").Code).To(Equal(http.StatusInternalServerError))
	})

	It("returns 401 without a principal", func() {
		Expect(get("/anonymous/credits").Code).To(Equal(http.StatusUnauthorized))
	})
})
