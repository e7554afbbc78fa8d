package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tinkerly.io/api/common/id"
	"tinkerly.io/api/common/logger"
	"tinkerly.io/api/internal/estimate"
	"tinkerly.io/api/internal/model"
	"tinkerly.io/api/internal/store"
)

var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrMilestoneNotFound      = errors.New("milestone not found")
	ErrInvalidTransition      = errors.New("invalid milestone status transition")
	ErrUnknownMilestoneStatus = errors.New("unknown milestone status")
)

// AnalysisResult is what the caller gets back from Analyze. ProjectID is nil when
// the analysis could not be saved.
type AnalysisResult struct {
	ProjectID        *int64
	Analysis         estimate.Result
	Source           model.AnalysisSource
	CreditsRemaining int
}

type ProjectService interface {
	Analyze(ctx context.Context, p Principal, d estimate.Descriptor) (*AnalysisResult, error)
	List(ctx context.Context, p Principal, limit, offset int32) ([]model.Project, error)
	Get(ctx context.Context, p Principal, projectID int64) (*model.Project, error)
	UpdateMilestoneStatus(ctx context.Context, p Principal, projectID, milestoneID int64, status model.MilestoneStatus) (*model.Milestone, error)
}

type projectService struct {
	stores    StoreProvider
	txRunner  TxRunner
	credits   CreditService
	estimator EstimationService
	now       func() time.Time
}

func NewProjectService(stores StoreProvider, txRunner TxRunner, credits CreditService, estimator EstimationService) ProjectService {
	return &projectService{
		stores:    stores,
		txRunner:  txRunner,
		credits:   credits,
		estimator: estimator,
		now:       time.Now,
	}
}

func (s *projectService) Analyze(ctx context.Context, p Principal, d estimate.Descriptor) (*AnalysisResult, error) {
	user, err := s.credits.EnsureUser(ctx, p)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})

	if !user.HasCredits() {
		return nil, ErrInsufficientCredits
	}

	est := s.estimator.Estimate(ctx, d)

	result := &AnalysisResult{
		Analysis:         est.Result,
		Source:           est.Source,
		CreditsRemaining: user.CreditsRemaining,
	}

	project := model.NewProject(user.ID, d, est.Result, est.Source)
	project.ID = id.New()

	var remaining int
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Projects().Create(ctx, &project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}

		for _, m := range model.PlanMilestones(est.Result, s.now()) {
			m.ID = id.New()
			m.ProjectID = project.ID
			if err := sp.Milestones().Create(ctx, &m); err != nil {
				return fmt.Errorf("creating milestone %d: %w", m.Position, err)
			}
		}

		var err error
		remaining, err = sp.Users().SpendCredit(ctx, user.ID)
		if err != nil {
			return err
		}

		ref := fmt.Sprintf("project:%d", project.ID)
		return sp.Credits().Create(ctx, &model.CreditEntry{
			ID:           id.New(),
			UserID:       user.ID,
			Delta:        -1,
			Reason:       model.CreditReasonAnalysis,
			Reference:    &ref,
			BalanceAfter: remaining,
		})
	})

	switch {
	case err == nil:
		result.ProjectID = &project.ID
		result.CreditsRemaining = remaining
		slog.InfoContext(ctx, "project analyzed",
			"project_id", project.ID,
			"source", est.Source,
			"complexity", est.Result.Complexity,
			"credits_remaining", remaining)
	case errors.Is(err, store.ErrNoCredits):
		// Another request spent the last credit between the check and the debit.
		return nil, ErrInsufficientCredits
	default:
		slog.ErrorContext(ctx, "failed to persist analysis", "error", err)
	}

	return result, nil
}

func (s *projectService) List(ctx context.Context, p Principal, limit, offset int32) ([]model.Project, error) {
	user, err := s.stores.Users().GetByAuthSubject(ctx, p.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []model.Project{}, nil
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	projects, err := s.stores.Projects().ListByUser(ctx, user.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, p Principal, projectID int64) (*model.Project, error) {
	project, err := s.ownedProject(ctx, p, projectID)
	if err != nil {
		return nil, err
	}

	milestones, err := s.stores.Milestones().ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	project.Milestones = milestones
	return project, nil
}

func (s *projectService) UpdateMilestoneStatus(ctx context.Context, p Principal, projectID, milestoneID int64, status model.MilestoneStatus) (*model.Milestone, error) {
	if !status.IsValid() {
		return nil, ErrUnknownMilestoneStatus
	}

	if _, err := s.ownedProject(ctx, p, projectID); err != nil {
		return nil, err
	}

	milestone, err := s.stores.Milestones().GetByID(ctx, milestoneID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("fetching milestone: %w", err)
	}
	if milestone.ProjectID != projectID {
		return nil, ErrMilestoneNotFound
	}

	if !milestone.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, milestone.Status, status)
	}

	updated, err := s.stores.Milestones().UpdateStatus(ctx, milestoneID, status)
	if err != nil {
		return nil, fmt.Errorf("updating milestone: %w", err)
	}

	slog.InfoContext(ctx, "milestone status updated",
		"project_id", projectID,
		"milestone_id", milestoneID,
		"from", milestone.Status,
		"to", status)
	return updated, nil
}

// ownedProject hides projects of other users behind ErrProjectNotFound.
func (s *projectService) ownedProject(ctx context.Context, p Principal, projectID int64) (*model.Project, error) {
	user, err := s.stores.Users().GetByAuthSubject(ctx, p.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	project, err := s.stores.Projects().GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("fetching project: %w", err)
	}
	if project.UserID != user.ID {
		return nil, ErrProjectNotFound
	}
	return project, nil
}
