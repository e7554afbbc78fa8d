package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tinkerly.io/api/common/llm"
	"tinkerly.io/api/common/logger"
	"tinkerly.io/api/internal/estimate"
	"tinkerly.io/api/internal/model"
)

type InferenceErrorKind string

const (
	InferenceUnavailable InferenceErrorKind = "unavailable"
	InferenceTimeout     InferenceErrorKind = "timeout"
	InferenceFailed      InferenceErrorKind = "failed"
	InferenceMalformed   InferenceErrorKind = "malformed"
)

var ErrLLMNotConfigured = errors.New("no language model configured")

// InferenceError explains why a model-backed estimate could not be produced.
type InferenceError struct {
	Kind InferenceErrorKind
	Err  error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference %s: %v", e.Kind, e.Err)
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

type Estimation struct {
	Result estimate.Result
	Source model.AnalysisSource
}

type EstimationService interface {
	// Infer asks the language model for an estimate. Errors are *InferenceError.
	Infer(ctx context.Context, d estimate.Descriptor) (estimate.Result, error)
	// Estimate tries Infer and falls back to the deterministic engine on any failure.
	Estimate(ctx context.Context, d estimate.Descriptor) Estimation
	// QuickEstimate runs the deterministic engine only.
	QuickEstimate(d estimate.Descriptor) estimate.Result
}

type EstimationConfig struct {
	Timeout   time.Duration
	MaxTokens int
	// Attempts bounds calls per Infer; only transient failures are retried.
	Attempts int
	Backoff  time.Duration
}

var resultSchema = llm.GenerateSchema[estimate.Result]()

type estimationService struct {
	llm      llm.Client
	analyzer *estimate.Analyzer
	cfg      EstimationConfig
}

// NewEstimationService builds the estimator. client may be nil, in which case every
// estimate comes from the deterministic engine.
func NewEstimationService(client llm.Client, analyzer *estimate.Analyzer, cfg EstimationConfig) EstimationService {
	if analyzer == nil {
		analyzer = estimate.NewAnalyzer()
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}
	return &estimationService{
		llm:      client,
		analyzer: analyzer,
		cfg:      cfg,
	}
}

func (s *estimationService) Infer(ctx context.Context, d estimate.Descriptor) (estimate.Result, error) {
	if s.llm == nil {
		return estimate.Result{}, &InferenceError{Kind: InferenceUnavailable, Err: ErrLLMNotConfigured}
	}

	sc := logger.StartSpan(ctx, "estimation.infer")
	defer sc.End()
	ctx = sc.Context()

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	var (
		result estimate.Result
		err    error
	)
	for attempt := 0; attempt < s.cfg.Attempts; attempt++ {
		result = estimate.Result{}
		_, err = s.llm.Chat(ctx, llm.Request{
			SystemPrompt: estimatorSystemPrompt,
			UserPrompt:   buildEstimatePrompt(d),
			SchemaName:   "project_estimate",
			Schema:       resultSchema,
			MaxTokens:    s.cfg.MaxTokens,
			Temperature:  llm.Temp(0.2),
		}, &result)
		if err == nil || !llm.IsTransient(err) || attempt == s.cfg.Attempts-1 {
			break
		}

		slog.WarnContext(ctx, "estimate inference retry", "attempt", attempt+1, "error", err)
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case <-time.After(s.cfg.Backoff << attempt):
			continue
		}
		break
	}
	if err != nil {
		inferErr := classifyInferenceError(err)
		sc.RecordError(inferErr)
		return estimate.Result{}, inferErr
	}

	if err := estimate.Validate(result); err != nil {
		sc.RecordError(err)
		return estimate.Result{}, &InferenceError{Kind: InferenceMalformed, Err: err}
	}

	return result, nil
}

func (s *estimationService) Estimate(ctx context.Context, d estimate.Descriptor) Estimation {
	result, err := s.Infer(ctx, d)
	if err == nil {
		return Estimation{Result: result, Source: model.AnalysisSourceLLM}
	}

	var inferErr *InferenceError
	if errors.As(err, &inferErr) {
		switch inferErr.Kind {
		case InferenceUnavailable:
			slog.DebugContext(ctx, "llm unavailable, using deterministic estimate", "error", err)
		case InferenceTimeout, InferenceFailed, InferenceMalformed:
			slog.WarnContext(ctx, "llm estimate failed, using deterministic estimate",
				"kind", inferErr.Kind,
				"error", err)
		}
	} else {
		slog.WarnContext(ctx, "llm estimate failed, using deterministic estimate", "error", err)
	}

	return Estimation{Result: s.analyzer.Analyze(d), Source: model.AnalysisSourceFallback}
}

func (s *estimationService) QuickEstimate(d estimate.Descriptor) estimate.Result {
	return s.analyzer.Analyze(d)
}

func classifyInferenceError(err error) *InferenceError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &InferenceError{Kind: InferenceTimeout, Err: err}
	case errors.Is(err, llm.ErrMalformedOutput), errors.Is(err, llm.ErrEmptyResponse):
		return &InferenceError{Kind: InferenceMalformed, Err: err}
	case llm.IsTransient(err):
		return &InferenceError{Kind: InferenceUnavailable, Err: err}
	default:
		return &InferenceError{Kind: InferenceFailed, Err: err}
	}
}
