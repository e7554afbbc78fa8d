package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tinkerly.io/api/common/logger"
)

var _ = Describe("WithLogFields", func() {
	It("merges newer non-empty values over older ones", func() {
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			UserID:    logger.Ptr(int64(1)),
			Component: "tinkerly.http",
		})
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			ProjectID: logger.Ptr(int64(2)),
			Component: "tinkerly.service.project",
		})

		fields := logger.GetLogFields(ctx)
		Expect(*fields.UserID).To(Equal(int64(1)))
		Expect(*fields.ProjectID).To(Equal(int64(2)))
		Expect(fields.Component).To(Equal("tinkerly.service.project"))
	})

	It("returns empty fields for a bare context", func() {
		Expect(logger.GetLogFields(context.Background())).To(Equal(logger.LogFields{}))
	})
})

var _ = Describe("TraceHandler", func() {
	It("adds context fields to records", func() {
		var buf bytes.Buffer
		log := slog.New(logger.NewTraceHandler(slog.NewJSONHandler(&buf, nil)))

		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			RequestID: logger.Ptr("req-1"),
			UserID:    logger.Ptr(int64(42)),
			EventType: logger.Ptr("invoice.paid"),
		})
		log.InfoContext(ctx, "hello")

		var record map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &record)).To(Succeed())
		Expect(record["request_id"]).To(Equal("req-1"))
		Expect(record["user_id"]).To(BeNumerically("==", 42))
		Expect(record["event_type"]).To(Equal("invoice.paid"))
		Expect(record).NotTo(HaveKey("trace_id"))
	})
})

var _ = Describe("Truncate", func() {
	It("keeps short strings", func() {
		Expect(logger.Truncate("abc", 5)).To(Equal("abc"))
	})

	It("cuts long strings", func() {
		Expect(logger.Truncate(strings.Repeat("a", 10), 4)).To(Equal("aaaa..."))
	})
})
