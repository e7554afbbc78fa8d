package store

import (
	"tinkerly.io/api/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Projects() ProjectStore {
	return newProjectStore(s.queries)
}

func (s *Stores) Milestones() MilestoneStore {
	return newMilestoneStore(s.queries)
}

func (s *Stores) Credits() CreditStore {
	return newCreditStore(s.queries)
}

func (s *Stores) BillingEvents() BillingEventStore {
	return newBillingEventStore(s.queries)
}
