package ledger

import (
	"github.com/shopspring/decimal"

	"grana/internal/models"
)

// Summary holds the settled totals of a period.
type Summary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	SavingsRate  float64         `json:"savings_rate"`
}

// BudgetRule is the informational 50/30/20-style split of a period.
// Shares are percentages of total income; they describe, never enforce.
type BudgetRule struct {
	Essential          decimal.Decimal `json:"essential"`
	Discretionary      decimal.Decimal `json:"discretionary"`
	Savings            decimal.Decimal `json:"savings"`
	EssentialShare     float64         `json:"essential_share"`
	DiscretionaryShare float64         `json:"discretionary_share"`
	SavingsShare       float64         `json:"savings_share"`
}

// Compute aggregates settled transactions into a Summary. An empty slice
// yields all-zero totals; a zero income yields a zero savings rate rather
// than a division error.
func Compute(transactions []models.Transaction) Summary {
	income := decimal.Zero
	expense := decimal.Zero

	for _, tx := range transactions {
		switch tx.Type {
		case models.TransactionTypeIncome:
			income = income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			expense = expense.Add(tx.Amount)
		}
	}

	balance := income.Sub(expense)

	var rate float64
	if income.IsPositive() {
		rate, _ = balance.Div(income).Float64()
	}

	return Summary{
		TotalIncome:  income,
		TotalExpense: expense,
		Balance:      balance,
		SavingsRate:  rate,
	}
}

// ComputeBudgetRule splits the period's expenses into essential
// (fixed, payroll deductions, credit card, unclassified) and
// discretionary (leisure) buckets, with savings as the non-negative
// balance. Shares are zero when there is no income.
func ComputeBudgetRule(transactions []models.Transaction, summary Summary) BudgetRule {
	essential := decimal.Zero
	discretionary := decimal.Zero

	for _, tx := range transactions {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		if Classify(tx.Category) == ClassLeisure {
			discretionary = discretionary.Add(tx.Amount)
		} else {
			essential = essential.Add(tx.Amount)
		}
	}

	savings := summary.Balance
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	rule := BudgetRule{
		Essential:     essential,
		Discretionary: discretionary,
		Savings:       savings,
	}

	if summary.TotalIncome.IsPositive() {
		hundred := decimal.NewFromInt(100)
		rule.EssentialShare, _ = essential.Mul(hundred).Div(summary.TotalIncome).Float64()
		rule.DiscretionaryShare, _ = discretionary.Mul(hundred).Div(summary.TotalIncome).Float64()
		rule.SavingsShare, _ = savings.Mul(hundred).Div(summary.TotalIncome).Float64()
	}

	return rule
}
