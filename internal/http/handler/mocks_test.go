package handler_test

import (
	"context"

	"github.com/gin-gonic/gin"

	"tinkerly.io/api/internal/estimate"
	"tinkerly.io/api/internal/http/middleware"
	"tinkerly.io/api/internal/model"
	"tinkerly.io/api/internal/service"
)

var caller = service.Principal{Subject: "user_abc", Email: "ada@example.com"}

// authenticated stands in for middleware.RequireAuth.
func authenticated(p service.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

type mockProjectService struct {
	analyzeFn         func(ctx context.Context, p service.Principal, d estimate.Descriptor) (*service.AnalysisResult, error)
	listFn            func(ctx context.Context, p service.Principal, limit, offset int32) ([]model.Project, error)
	getFn             func(ctx context.Context, p service.Principal, projectID int64) (*model.Project, error)
	updateMilestoneFn func(ctx context.Context, p service.Principal, projectID, milestoneID int64, status model.MilestoneStatus) (*model.Milestone, error)
}

func (m *mockProjectService) Analyze(ctx context.Context, p service.Principal, d estimate.Descriptor) (*service.AnalysisResult, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, p, d)
	}
	return &service.AnalysisResult{}, nil
}

func (m *mockProjectService) List(ctx context.Context, p service.Principal, limit, offset int32) ([]model.Project, error) {
	if m.listFn != nil {
		return m.listFn(ctx, p, limit, offset)
	}
	return nil, nil
}

func (m *mockProjectService) Get(ctx context.Context, p service.Principal, projectID int64) (*model.Project, error) {
	if m.getFn != nil {
		return m.getFn(ctx, p, projectID)
	}
	return nil, service.ErrProjectNotFound
}

func (m *mockProjectService) UpdateMilestoneStatus(ctx context.Context, p service.Principal, projectID, milestoneID int64, status model.MilestoneStatus) (*model.Milestone, error) {
	if m.updateMilestoneFn != nil {
		return m.updateMilestoneFn(ctx, p, projectID, milestoneID, status)
	}
	return nil, service.ErrMilestoneNotFound
}

type mockCreditService struct {
	balanceFn func(ctx context.Context, p service.Principal) (*service.Balance, error)
}

func (m *mockCreditService) EnsureUser(ctx context.Context, p service.Principal) (*model.User, error) {
	return &model.User{AuthSubject: p.Subject}, nil
}

func (m *mockCreditService) Balance(ctx context.Context, p service.Principal) (*service.Balance, error) {
	if m.balanceFn != nil {
		return m.balanceFn(ctx, p)
	}
	return &service.Balance{}, nil
}

func (m *mockCreditService) Grant(ctx context.Context, userID int64, delta int, reason model.CreditReason, reference string) (int, error) {
	return delta, nil
}

type mockEstimationService struct {
	quick []estimate.Descriptor
}

func (m *mockEstimationService) Infer(ctx context.Context, d estimate.Descriptor) (estimate.Result, error) {
	return estimate.Result{}, &service.InferenceError{Kind: service.InferenceUnavailable, Err: service.ErrLLMNotConfigured}
}

func (m *mockEstimationService) Estimate(ctx context.Context, d estimate.Descriptor) service.Estimation {
	return service.Estimation{Result: estimate.Analyze(d), Source: model.AnalysisSourceFallback}
}

func (m *mockEstimationService) QuickEstimate(d estimate.Descriptor) estimate.Result {
	m.quick = append(m.quick, d)
	return estimate.Analyze(d)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}
