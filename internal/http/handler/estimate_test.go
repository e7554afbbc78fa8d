package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tinkerly.io/api/internal/http/handler"
)

var _ = Describe("EstimateHandler", func() {
	var (
		router *gin.Engine
		svc    *mockEstimationService
	)

	BeforeEach(func() {
		svc = &mockEstimationService{}
		router = gin.New()
		router.POST("/estimate", handler.NewEstimateHandler(svc).Quick)
	})

	serve := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/estimate", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("prices a project without authentication", func() {
		w := serve(`{"category":"Landing Page","requirements":"one page"}`)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp struct {
			Analysis map[string]any `json:"analysis"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Analysis["complexity"]).To(Equal("Simple"))
		Expect(resp.Analysis["total_cost"]).To(BeEquivalentTo(1600))
		Expect(svc.quick).To(HaveLen(1))
		Expect(svc.quick[0].Category).To(Equal("Landing Page"))
	})

	It("accepts an empty descriptor", func() {
		w := serve(`{}`)
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("rejects malformed json", func() {
		w := serve(`{"category":`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(svc.quick).To(BeEmpty())
	})
})
