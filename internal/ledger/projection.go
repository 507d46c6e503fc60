package ledger

import (
	"github.com/shopspring/decimal"

	"grana/internal/models"
)

// Projection is a forward-looking view of a period: settled figures plus
// the commitments still due.
type Projection struct {
	Income         decimal.Decimal `json:"income"`
	Expenses       decimal.Decimal `json:"expenses"`
	Balance        decimal.Decimal `json:"balance"`
	Commitments    decimal.Decimal `json:"commitments"`
	FundsAvailable decimal.Decimal `json:"funds_available"`
}

// MergeProjections folds unpaid payables into a settled summary.
// Commitments only ever reduce the available funds; income stays the
// settled income. Paid payables are skipped, superseded by the
// transaction generated when they were settled.
func MergeProjections(summary Summary, payables []models.Payable) Projection {
	commitments := decimal.Zero
	for _, p := range payables {
		if p.IsPaid {
			continue
		}
		commitments = commitments.Add(p.Amount)
	}

	expenses := summary.TotalExpense.Add(commitments)
	balance := summary.TotalIncome.Sub(expenses)

	return Projection{
		Income:         summary.TotalIncome,
		Expenses:       expenses,
		Balance:        balance,
		Commitments:    commitments,
		FundsAvailable: balance,
	}
}
