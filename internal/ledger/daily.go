package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"grana/internal/models"
)

// LineStatus distinguishes settled history from scheduled obligations in
// the daily view.
type LineStatus string

const (
	LineStatusSettled   LineStatus = "settled"
	LineStatusScheduled LineStatus = "scheduled"
)

// DayLine is one entry of a day bucket.
type DayLine struct {
	ID          string                 `json:"id"`
	Description string                 `json:"description"`
	Category    string                 `json:"category"`
	Type        models.TransactionType `json:"type"`
	Amount      decimal.Decimal        `json:"amount"`
	Status      LineStatus             `json:"status"`
}

// DayBucket groups the lines of one calendar day.
type DayBucket struct {
	Date  string    `json:"date"`
	Label string    `json:"label"`
	Lines []DayLine `json:"lines"`
}

// DailyView is the day-by-day cash-flow view of a period. Days are sorted
// by date key descending; totals are computed from the raw record sets and
// must reconcile with the sum of the bucketed lines.
type DailyView struct {
	Days         []DayBucket     `json:"days"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
}

// BuildDailyView buckets settled transactions by occurrence date and
// unpaid payables by due date. When both sources share a day they share
// one bucket, transactions first. Either source may introduce a new day;
// both paths compute the label the same way. now anchors the relative
// Hoje/Ontem labels.
func BuildDailyView(now time.Time, transactions []models.Transaction, payables []models.Payable) DailyView {
	buckets := make(map[string]*DayBucket)

	bucketFor := func(day time.Time) *DayBucket {
		key := DayKey(day)
		b, ok := buckets[key]
		if !ok {
			b = &DayBucket{
				Date:  key,
				Label: DayLabel(now, day),
				Lines: []DayLine{},
			}
			buckets[key] = b
		}
		return b
	}

	income := decimal.Zero
	expense := decimal.Zero

	for _, tx := range transactions {
		b := bucketFor(tx.Date)
		b.Lines = append(b.Lines, DayLine{
			ID:          tx.ID,
			Description: tx.Description,
			Category:    tx.Category,
			Type:        tx.Type,
			Amount:      tx.Amount,
			Status:      LineStatusSettled,
		})
		switch tx.Type {
		case models.TransactionTypeIncome:
			income = income.Add(tx.Amount)
		case models.TransactionTypeExpense:
			expense = expense.Add(tx.Amount)
		}
	}

	for _, p := range payables {
		if p.IsPaid {
			continue
		}
		b := bucketFor(p.DueDate)
		b.Lines = append(b.Lines, DayLine{
			ID:          p.ID,
			Description: p.Name,
			Category:    models.CategoryScheduledPayment,
			Type:        models.TransactionTypeExpense,
			Amount:      p.Amount,
			Status:      LineStatusScheduled,
		})
		expense = expense.Add(p.Amount)
	}

	days := make([]DayBucket, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, *b)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})

	return DailyView{
		Days:         days,
		TotalIncome:  income,
		TotalExpense: expense,
	}
}
