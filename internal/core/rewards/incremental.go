// Package rewards reconstructs per-transaction reward increments from the
// cumulative "Reward: N" figure embedded in transaction descriptions.
//
// The remote API stores the reward amount rounded to an integer, so the
// description text is the only place the exact cumulative figure survives.
package rewards

import (
	"regexp"
	"strings"

	"github.com/SasmithaSL/Diamond-Store-Admin/internal/core/domain"

	"github.com/shopspring/decimal"
)

var rewardPattern = regexp.MustCompile(`(?i)reward:\s*([0-9][0-9,]*(?:\.[0-9]+)?)`)

// CumulativeFigure extracts N from a "Reward: N" description.
func CumulativeFigure(description string) (decimal.Decimal, bool) {
	m := rewardPattern.FindStringSubmatch(description)
	if m == nil {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

// Annotate sets DisplayAmount on every transaction. txs must be ordered newest
// first. A reward row shows its cumulative figure minus the figure of the same
// user's next older reward row, or the full figure when the window holds none.
func Annotate(txs []domain.Transaction) {
	for i := range txs {
		tx := &txs[i]

		current, ok := rewardFigure(tx)
		if !ok {
			tx.DisplayAmount = tx.Amount
			continue
		}

		previous := decimal.Zero
		for j := i + 1; j < len(txs); j++ {
			if txs[j].UserID != tx.UserID {
				continue
			}
			if v, ok := rewardFigure(&txs[j]); ok {
				previous = v
				break
			}
		}

		tx.DisplayAmount = current.Sub(previous).Round(2)
	}
}

// rewardFigure returns the cumulative figure of a reward credit
func rewardFigure(tx *domain.Transaction) (decimal.Decimal, bool) {
	if tx.Type != domain.TransactionAdded {
		return decimal.Zero, false
	}
	return CumulativeFigure(tx.Description)
}
