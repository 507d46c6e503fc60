package ledger

import (
	"github.com/shopspring/decimal"

	"grana/internal/models"
)

// MonthCell is one month of the planning grid: income and expense items
// partitioned by category class with their running totals.
//
// The four expense buckets (fixed, variable, leisure, credit card) are
// disjoint and, together with payroll deductions, cover every expense of
// the month, so TotalExpenses always equals their sum.
type MonthCell struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Year  int    `json:"year"`

	Incomes           []models.Transaction `json:"incomes"`
	PayrollDeductions []models.Transaction `json:"payroll_deductions"`
	Fixed             []models.Transaction `json:"fixed"`
	Variable          []models.Transaction `json:"variable"`
	Leisure           []models.Transaction `json:"leisure"`
	CreditCard        []models.Transaction `json:"credit_card"`

	TotalIncome            decimal.Decimal `json:"total_income"`
	TotalPayrollDeductions decimal.Decimal `json:"total_payroll_deductions"`
	NetIncome              decimal.Decimal `json:"net_income"`
	TotalFixed             decimal.Decimal `json:"total_fixed"`
	TotalVariable          decimal.Decimal `json:"total_variable"`
	TotalLeisure           decimal.Decimal `json:"total_leisure"`
	TotalCreditCard        decimal.Decimal `json:"total_credit_card"`
	TotalExpenses          decimal.Decimal `json:"total_expenses"`
	Balance                decimal.Decimal `json:"balance"`
}

// BuildMonthCell partitions one month's transactions into the planning
// grid buckets. The caller is responsible for fetching transactions over
// the half-open month interval; an empty slice yields zero totals and
// empty item lists.
func BuildMonthCell(monthKey string, transactions []models.Transaction) MonthCell {
	cell := MonthCell{
		Month:             monthKey,
		Incomes:           []models.Transaction{},
		PayrollDeductions: []models.Transaction{},
		Fixed:             []models.Transaction{},
		Variable:          []models.Transaction{},
		Leisure:           []models.Transaction{},
		CreditCard:        []models.Transaction{},
	}
	if year, month, err := ParseMonthKey(monthKey); err == nil {
		cell.Year = year
		cell.Label = MonthName(month)
	}

	zero := decimal.Zero
	cell.TotalIncome = zero
	cell.TotalPayrollDeductions = zero
	cell.TotalFixed = zero
	cell.TotalVariable = zero
	cell.TotalLeisure = zero
	cell.TotalCreditCard = zero

	for _, tx := range transactions {
		if tx.Type == models.TransactionTypeIncome {
			cell.Incomes = append(cell.Incomes, tx)
			cell.TotalIncome = cell.TotalIncome.Add(tx.Amount)
			continue
		}

		switch Classify(tx.Category) {
		case ClassPayrollDeduction:
			cell.PayrollDeductions = append(cell.PayrollDeductions, tx)
			cell.TotalPayrollDeductions = cell.TotalPayrollDeductions.Add(tx.Amount)
		case ClassCreditCard:
			cell.CreditCard = append(cell.CreditCard, tx)
			cell.TotalCreditCard = cell.TotalCreditCard.Add(tx.Amount)
		case ClassFixed:
			cell.Fixed = append(cell.Fixed, tx)
			cell.TotalFixed = cell.TotalFixed.Add(tx.Amount)
		case ClassLeisure:
			cell.Leisure = append(cell.Leisure, tx)
			cell.TotalLeisure = cell.TotalLeisure.Add(tx.Amount)
		default:
			cell.Variable = append(cell.Variable, tx)
			cell.TotalVariable = cell.TotalVariable.Add(tx.Amount)
		}
	}

	cell.NetIncome = cell.TotalIncome.Sub(cell.TotalPayrollDeductions)
	cell.TotalExpenses = cell.TotalFixed.
		Add(cell.TotalVariable).
		Add(cell.TotalLeisure).
		Add(cell.TotalCreditCard)
	cell.Balance = cell.NetIncome.Sub(cell.TotalExpenses)

	return cell
}
