package services

import (
	"context"
	"testing"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/search"
	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/services/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionService_List(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      TransactionQuery
		wantFilter search.Filter
		wantLimit  int
	}{
		{
			name:       "no filter uses default limit",
			query:      TransactionQuery{},
			wantFilter: search.Filter{},
			wantLimit:  100,
		},
		{
			name:       "short number is a user id",
			query:      TransactionQuery{Search: "42", Limit: 20},
			wantFilter: search.Filter{Kind: search.KindUserID, Value: "42"},
			wantLimit:  20,
		},
		{
			name:       "email term",
			query:      TransactionQuery{Search: "kasun@example.com"},
			wantFilter: search.Filter{Kind: search.KindEmail, Value: "kasun@example.com"},
			wantLimit:  100,
		},
		{
			name:       "explicit parameter beats the search box",
			query:      TransactionQuery{Search: "42", IDNumber: "200012345678"},
			wantFilter: search.Filter{Kind: search.KindIDNumber, Value: "200012345678"},
			wantLimit:  100,
		},
		{
			name:       "limit is capped",
			query:      TransactionQuery{Limit: 5000},
			wantFilter: search.Filter{},
			wantLimit:  500,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := mocks.NewAPI()
			svc := NewTransactionService(fake, search.NewClassifier(3), 100, 500)

			q := tt.query
			result, err := svc.List(context.Background(), testSession(), &q)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFilter, result.Filter)
			assert.Equal(t, tt.wantLimit, result.Limit)
			assert.Equal(t, tt.wantFilter, fake.LastFilter)
			assert.Equal(t, tt.wantLimit, fake.LastLimit)
		})
	}
}

func TestTransactionService_ListAnnotates(t *testing.T) {
	t.Parallel()

	fake := mocks.NewAPI()
	fake.Txs = []domain.Transaction{
		{ID: 3, UserID: 1, Type: domain.TransactionAdded, Amount: decimal.NewFromInt(13), Description: "Weekly Reward: 12.75"},
		{ID: 2, UserID: 1, Type: domain.TransactionDeducted, Amount: decimal.NewFromInt(200), Description: "Order #88"},
		{ID: 1, UserID: 1, Type: domain.TransactionAdded, Amount: decimal.NewFromInt(10), Description: "Weekly Reward: 10.25"},
	}
	svc := NewTransactionService(fake, search.NewClassifier(3), 100, 500)

	result, err := svc.List(context.Background(), testSession(), &TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 3)

	assert.Equal(t, "2.5", result.Transactions[0].DisplayAmount.String())
	assert.Equal(t, "200", result.Transactions[1].DisplayAmount.String())
	assert.Equal(t, "10.25", result.Transactions[2].DisplayAmount.String())
}

func TestTransactionService_ListError(t *testing.T) {
	t.Parallel()

	fake := mocks.NewAPI()
	fake.ListErr = domain.ErrUpstreamFailure
	svc := NewTransactionService(fake, search.NewClassifier(3), 100, 500)

	_, err := svc.List(context.Background(), testSession(), &TransactionQuery{})
	require.ErrorIs(t, err, domain.ErrUpstreamFailure)
}
