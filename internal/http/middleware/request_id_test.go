package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tinkerly.io/api/common/logger"
	"tinkerly.io/api/internal/http/middleware"
)

var _ = Describe("RequestID", func() {
	var (
		router *gin.Engine
		seen   string
	)

	BeforeEach(func() {
		seen = ""
		router = gin.New()
		router.Use(middleware.RequestID())
		router.GET("/", func(c *gin.Context) {
			if id := logger.GetLogFields(c.Request.Context()).RequestID; id != nil {
				seen = *id
			}
			c.Status(http.StatusNoContent)
		})
	})

	serve := func(incoming string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if incoming != "" {
			req.Header.Set(middleware.RequestIDHeader, incoming)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("mints a UUID when none is sent", func() {
		w := serve("")
		header := w.Header().Get(middleware.RequestIDHeader)
		_, err := uuid.Parse(header)
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal(header))
	})

	It("propagates an incoming ID", func() {
		w := serve("req-123")
		Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("req-123"))
		Expect(seen).To(Equal("req-123"))
	})

	It("replaces oversized IDs", func() {
		w := serve(strings.Repeat("a", 500))
		Expect(w.Header().Get(middleware.RequestIDHeader)).To(HaveLen(36))
	})
})

var _ = Describe("Recovery", func() {
	It("turns panics into 500s", func() {
		router := gin.New()
		router.Use(middleware.Recovery(), middleware.Logger())
		router.GET("/", func(*gin.Context) { panic("boom") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(MatchJSON(`{"error":"internal server error"}`))
	})
})
