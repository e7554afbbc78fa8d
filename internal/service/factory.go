package service

import (
	"time"

	"tinkerly.io/api/common/llm"
	"tinkerly.io/api/core/config"
	"tinkerly.io/api/internal/estimate"
	"tinkerly.io/api/internal/queue"
	"tinkerly.io/api/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	llm      llm.Client
	producer queue.Producer
	analyzer *estimate.Analyzer
	cfg      config.Config
}

// NewServices wires the service graph. client and producer may be nil: without a
// client every estimate is deterministic, and without a producer Billing is unusable.
func NewServices(stores *store.Stores, txRunner TxRunner, client llm.Client, producer queue.Producer, cfg config.Config) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		llm:      client,
		producer: producer,
		analyzer: estimate.NewAnalyzer(),
		cfg:      cfg,
	}
}

func (s *Services) Estimation() EstimationService {
	return NewEstimationService(s.llm, s.analyzer, EstimationConfig{
		Timeout:   s.cfg.EstimatorLLM.Timeout,
		MaxTokens: s.cfg.EstimatorLLM.MaxTokens,
		Attempts:  2,
		Backoff:   time.Second,
	})
}

func (s *Services) Credits() CreditService {
	return NewCreditService(s.stores, s.txRunner, s.cfg.Credits.FreeCredits)
}

func (s *Services) Projects() ProjectService {
	return NewProjectService(s.stores, s.txRunner, s.Credits(), s.Estimation())
}

func (s *Services) Billing() BillingService {
	return NewBillingService(s.stores, s.txRunner, s.producer, s.cfg.Stripe.PlanCredits)
}
