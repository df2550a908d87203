package rewards

import (
	"fmt"
	"testing"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCumulativeFigure(t *testing.T) {
	tests := []struct {
		desc string
		want string
		ok   bool
	}{
		{desc: "Weekly reward. Reward: 12.75", want: "12.75", ok: true},
		{desc: "reward:3", want: "3", ok: true},
		{desc: "REWARD:   1,250.5 points", want: "1250.5", ok: true},
		{desc: "Points added by admin", ok: false},
		{desc: "Reward: pending", ok: false},
		{desc: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got, ok := CumulativeFigure(tt.desc)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, d(tt.want).Equal(got), "got %s", got)
			}
		})
	}
}

func TestAnnotate(t *testing.T) {
	txs := []domain.Transaction{
		{ID: 6, UserID: 1, Type: domain.TransactionAdded, Amount: d("21"), Description: "Reward: 20.75"},
		{ID: 5, UserID: 2, Type: domain.TransactionAdded, Amount: d("5"), Description: "Reward: 5.10"},
		{ID: 4, UserID: 1, Type: domain.TransactionDeducted, Amount: d("100"), Description: "Order #A1"},
		{ID: 3, UserID: 1, Type: domain.TransactionAdded, Amount: d("50"), Description: "Points added by admin"},
		{ID: 2, UserID: 1, Type: domain.TransactionAdded, Amount: d("8"), Description: "Reward: 8.333"},
		{ID: 1, UserID: 1, Type: domain.TransactionRefunded, Amount: d("30"), Description: "Refund for order #A0. Reward: 1"},
	}

	Annotate(txs)

	assert.Equal(t, "12.42", txs[0].DisplayAmount.StringFixed(2))
	assert.Equal(t, "5.10", txs[1].DisplayAmount.StringFixed(2))
	assert.True(t, d("100").Equal(txs[2].DisplayAmount))
	assert.True(t, d("50").Equal(txs[3].DisplayAmount))
	assert.Equal(t, "8.33", txs[4].DisplayAmount.StringFixed(2))
	// refunds are never reward rows even if the text mentions one
	assert.True(t, d("30").Equal(txs[5].DisplayAmount))
}

func TestAnnotate_Empty(t *testing.T) {
	require.NotPanics(t, func() { Annotate(nil) })
}

func TestRewardFigure(t *testing.T) {
	v, ok := rewardFigure(&domain.Transaction{Type: domain.TransactionAdded, Description: "Reward: 1"})
	assert.True(t, ok)
	assert.True(t, v.Equal(decimal.NewFromInt(1)))

	_, ok = rewardFigure(&domain.Transaction{Type: domain.TransactionDeducted, Description: "Reward: 1"})
	assert.False(t, ok)
	_, ok = rewardFigure(&domain.Transaction{Type: domain.TransactionAdded, Description: "bonus"})
	assert.False(t, ok)
}

// For every user the reward increments in a window add up to the newest
// cumulative figure, because each increment subtracts the next older one.
func TestAnnotate_TelescopesPerUser(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		txs := make([]domain.Transaction, n)
		for i := range txs {
			user := rapid.Int64Range(1, 4).Draw(t, "user")
			isReward := rapid.Bool().Draw(t, "reward")
			cents := rapid.Int64Range(0, 10_000_000).Draw(t, "cents")
			figure := decimal.New(cents, -2)

			txs[i] = domain.Transaction{ID: int64(n - i), UserID: user, Type: domain.TransactionAdded, Amount: figure.Round(0)}
			if isReward {
				txs[i].Description = fmt.Sprintf("Reward: %s", figure.StringFixed(2))
			} else {
				txs[i].Description = "Points added by admin"
			}
		}

		Annotate(txs)

		sums := map[int64]decimal.Decimal{}
		newest := map[int64]decimal.Decimal{}
		for i := range txs {
			v, ok := CumulativeFigure(txs[i].Description)
			if !ok {
				if !txs[i].DisplayAmount.Equal(txs[i].Amount) {
					t.Fatalf("non-reward row %d shows %s, want %s", i, txs[i].DisplayAmount, txs[i].Amount)
				}
				continue
			}
			if _, seen := newest[txs[i].UserID]; !seen {
				newest[txs[i].UserID] = v
			}
			sums[txs[i].UserID] = sums[txs[i].UserID].Add(txs[i].DisplayAmount)
		}

		for user, sum := range sums {
			if !sum.Equal(newest[user]) {
				t.Fatalf("user %d: increments sum to %s, newest figure is %s", user, sum, newest[user])
			}
		}
	})
}
