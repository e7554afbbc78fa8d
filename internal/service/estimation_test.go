package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tinkerly.io/api/common/llm"
	"tinkerly.io/api/internal/estimate"
	"tinkerly.io/api/internal/model"
	"tinkerly.io/api/internal/service"
)

// replyWith makes a mock LLM answer with r serialized the way the model would.
func replyWith(r estimate.Result) func(context.Context, llm.Request, any) (*llm.Response, error) {
	return func(_ context.Context, _ llm.Request, result any) (*llm.Response, error) {
		raw, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		if err := llm.Decode(string(raw), result); err != nil {
			return nil, err
		}
		return &llm.Response{PromptTokens: 100, CompletionTokens: 200}, nil
	}
}

var _ = Describe("EstimationService", func() {
	var (
		ctx        context.Context
		descriptor estimate.Descriptor
		client     *mockLLMClient
		llmResult  estimate.Result
	)

	BeforeEach(func() {
		ctx = context.Background()
		descriptor = estimate.Descriptor{
			Title:        "Marketplace",
			Description:  "Two-sided marketplace for local makers",
			Category:     "E-commerce Platform",
			Requirements: "Vendor onboarding, payment splits, search " + strings.Repeat("r", 300),
			Timeline:     "3 months",
			Complexity:   "Complex",
		}
		client = &mockLLMClient{}

		llmResult = estimate.Analyze(descriptor)
		llmResult.WhyRecommended = "Written by the model"
	})

	Describe("Infer", func() {
		It("reports unavailable without a client", func() {
			svc := service.NewEstimationService(nil, nil, service.EstimationConfig{})
			_, err := svc.Infer(ctx, descriptor)

			var inferErr *service.InferenceError
			Expect(errors.As(err, &inferErr)).To(BeTrue())
			Expect(inferErr.Kind).To(Equal(service.InferenceUnavailable))
			Expect(errors.Is(err, service.ErrLLMNotConfigured)).To(BeTrue())
		})

		It("returns the model result and sends a structured request", func() {
			client.chatFn = replyWith(llmResult)
			svc := service.NewEstimationService(client, nil, service.EstimationConfig{MaxTokens: 1234})

			got, err := svc.Infer(ctx, descriptor)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.WhyRecommended).To(Equal("Written by the model"))

			Expect(client.last.SchemaName).To(Equal("project_estimate"))
			Expect(client.last.Schema).NotTo(BeNil())
			Expect(client.last.MaxTokens).To(Equal(1234))
			Expect(client.last.UserPrompt).To(ContainSubstring("## Category\nE-commerce Platform"))
			Expect(client.last.UserPrompt).To(ContainSubstring("## Desired timeline\n3 months"))
			Expect(client.last.UserPrompt).To(ContainSubstring("Complex (a hint, not a constraint)"))
		})

		DescribeTable("classifies failures",
			func(err error, kind service.InferenceErrorKind) {
				client.chatFn = func(context.Context, llm.Request, any) (*llm.Response, error) {
					return nil, err
				}
				svc := service.NewEstimationService(client, nil, service.EstimationConfig{})

				_, got := svc.Infer(ctx, descriptor)
				var inferErr *service.InferenceError
				Expect(errors.As(got, &inferErr)).To(BeTrue())
				Expect(inferErr.Kind).To(Equal(kind))
			},
			Entry("deadline", context.DeadlineExceeded, service.InferenceTimeout),
			Entry("malformed output", llm.ErrMalformedOutput, service.InferenceMalformed),
			Entry("no choices", llm.ErrEmptyResponse, service.InferenceMalformed),
			Entry("network", errors.New("connection refused"), service.InferenceUnavailable),
			Entry("cancelled", context.Canceled, service.InferenceFailed),
		)

		It("rejects model output that is internally inconsistent", func() {
			broken := llmResult
			broken.Milestones = []estimate.Milestone{{Title: "All", Percentage: 90}}
			client.chatFn = replyWith(broken)
			svc := service.NewEstimationService(client, nil, service.EstimationConfig{})

			_, err := svc.Infer(ctx, descriptor)
			var inferErr *service.InferenceError
			Expect(errors.As(err, &inferErr)).To(BeTrue())
			Expect(inferErr.Kind).To(Equal(service.InferenceMalformed))
			Expect(errors.Is(err, estimate.ErrInvalidResult)).To(BeTrue())
		})

		It("retries transient failures", func() {
			calls := 0
			ok := replyWith(llmResult)
			client.chatFn = func(ctx context.Context, req llm.Request, result any) (*llm.Response, error) {
				calls++
				if calls == 1 {
					return nil, errors.New("connection reset by peer")
				}
				return ok(ctx, req, result)
			}
			svc := service.NewEstimationService(client, nil, service.EstimationConfig{Attempts: 2})

			_, err := svc.Infer(ctx, descriptor)
			Expect(err).NotTo(HaveOccurred())
			Expect(client.calls).To(Equal(2))
		})

		It("does not retry permanent failures", func() {
			client.chatFn = func(context.Context, llm.Request, any) (*llm.Response, error) {
				return nil, llm.ErrMalformedOutput
			}
			svc := service.NewEstimationService(client, nil, service.EstimationConfig{Attempts: 3})

			_, err := svc.Infer(ctx, descriptor)
			Expect(err).To(HaveOccurred())
			Expect(client.calls).To(Equal(1))
		})

		It("bounds the call with the configured timeout", func() {
			client.chatFn = func(ctx context.Context, _ llm.Request, _ any) (*llm.Response, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}
			svc := service.NewEstimationService(client, nil, service.EstimationConfig{Timeout: 10 * time.Millisecond})

			_, err := svc.Infer(ctx, descriptor)
			var inferErr *service.InferenceError
			Expect(errors.As(err, &inferErr)).To(BeTrue())
			Expect(inferErr.Kind).To(Equal(service.InferenceTimeout))
		})
	})

	Describe("Estimate", func() {
		It("uses the model when it succeeds", func() {
			client.chatFn = replyWith(llmResult)
			svc := service.NewEstimationService(client, nil, service.EstimationConfig{})

			got := svc.Estimate(ctx, descriptor)
			Expect(got.Source).To(Equal(model.AnalysisSourceLLM))
			Expect(got.Result.WhyRecommended).To(Equal("Written by the model"))
		})

		It("falls back to the deterministic engine without a client", func() {
			svc := service.NewEstimationService(nil, nil, service.EstimationConfig{})

			got := svc.Estimate(ctx, descriptor)
			Expect(got.Source).To(Equal(model.AnalysisSourceFallback))
			Expect(got.Result).To(Equal(estimate.Analyze(descriptor)))
		})

		It("falls back when the model fails", func() {
			client.chatFn = func(context.Context, llm.Request, any) (*llm.Response, error) {
				return nil, context.DeadlineExceeded
			}
			svc := service.NewEstimationService(client, nil, service.EstimationConfig{})

			got := svc.Estimate(ctx, descriptor)
			Expect(got.Source).To(Equal(model.AnalysisSourceFallback))
			Expect(estimate.Validate(got.Result)).To(Succeed())
		})
	})

	Describe("QuickEstimate", func() {
		It("never calls the model", func() {
			svc := service.NewEstimationService(client, nil, service.EstimationConfig{})
			Expect(svc.QuickEstimate(descriptor)).To(Equal(estimate.Analyze(descriptor)))
			Expect(client.calls).To(BeZero())
		})
	})
})
