package services

import (
	"context"
	"fmt"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/rewards"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/search"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/pkg/pagination"
)

// TransactionService reads the ledger and reconstructs reward increments
type TransactionService struct {
	api        TransactionAPI
	classifier *search.Classifier
	bounds     pagination.Bounds
}

// NewTransactionService creates a new transaction service
func NewTransactionService(api TransactionAPI, classifier *search.Classifier, defaultLimit, maxLimit int) *TransactionService {
	return &TransactionService{
		api:        api,
		classifier: classifier,
		bounds:     pagination.Bounds{Default: defaultLimit, Max: maxLimit},
	}
}

// TransactionQuery is the search box term plus optional explicit filters
type TransactionQuery struct {
	Search   string
	UserID   string
	IDNumber string
	Email    string
	Limit    int
}

// TransactionResult is a window of transactions with the filter that produced it
type TransactionResult struct {
	Filter       search.Filter        `json:"filter"`
	Limit        int                  `json:"limit"`
	Transactions []domain.Transaction `json:"transactions"`
}

// List fetches the newest transactions and annotates display amounts
func (s *TransactionService) List(ctx context.Context, sess *domain.Session, q *TransactionQuery) (*TransactionResult, error) {
	filter, ok := search.Explicit(q.UserID, q.IDNumber, q.Email)
	if !ok {
		filter = s.classifier.Classify(q.Search)
	}

	limit := s.bounds.Clamp(q.Limit)

	txs, err := s.api.Transactions(ctx, sess.Token, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	rewards.Annotate(txs)

	return &TransactionResult{
		Filter:       filter,
		Limit:        limit,
		Transactions: txs,
	}, nil
}
