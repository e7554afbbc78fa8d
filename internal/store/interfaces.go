package store

import (
	"context"
	"errors"

	"tinkerly.io/api/internal/model"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrNoCredits is returned when a credit cannot be spent because the balance is zero
	ErrNoCredits = errors.New("no credits remaining")
	// ErrConflict is returned when a write violates a uniqueness constraint
	ErrConflict = errors.New("conflict")
)

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByAuthSubject(ctx context.Context, subject string) (*model.User, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*model.User, error)
	// Upsert inserts the user or refreshes the email of the existing one. The returned
	// flag is true when a new row was created.
	Upsert(ctx context.Context, user *model.User) (*model.User, bool, error)
	SpendCredit(ctx context.Context, id int64) (int, error)
	AddCredits(ctx context.Context, id int64, delta int) (int, error)
	UpdateSubscription(ctx context.Context, id int64, tier model.SubscriptionTier, status model.SubscriptionStatus, customerID *string) (*model.User, error)
}

// ProjectStore defines the contract for project data access
type ProjectStore interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int32) ([]model.Project, error)
}

// MilestoneStore defines the contract for milestone data access
type MilestoneStore interface {
	Create(ctx context.Context, milestone *model.Milestone) error
	GetByID(ctx context.Context, id int64) (*model.Milestone, error)
	ListByProject(ctx context.Context, projectID int64) ([]model.Milestone, error)
	UpdateStatus(ctx context.Context, id int64, status model.MilestoneStatus) (*model.Milestone, error)
}

// CreditStore defines the contract for the credit ledger
type CreditStore interface {
	Create(ctx context.Context, entry *model.CreditEntry) error
	ListByUser(ctx context.Context, userID int64, limit int32) ([]model.CreditEntry, error)
}

// BillingEventStore defines the contract for recorded payment processor events
type BillingEventStore interface {
	CreateOrGet(ctx context.Context, event *model.BillingEvent) (*model.BillingEvent, bool, error)
	GetByID(ctx context.Context, id int64) (*model.BillingEvent, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*model.BillingEvent, error)
	MarkProcessed(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
}
