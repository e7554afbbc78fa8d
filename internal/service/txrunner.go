package service

import (
	"context"

	"tinkerly.io/api/core/db"
	"tinkerly.io/api/core/db/sqlc"
	"tinkerly.io/api/internal/store"
)

// StoreProvider exposes the stores a service needs, either pool-backed or bound to a
// transaction.
type StoreProvider interface {
	Users() store.UserStore
	Projects() store.ProjectStore
	Milestones() store.MilestoneStore
	Credits() store.CreditStore
	BillingEvents() store.BillingEventStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		return fn(store.NewStores(q))
	})
}
