package services

import (
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "grana/internal/errors"
	"grana/internal/ledger"
)

// DefaultGridMonths is the planning-grid window when no count is given.
const DefaultGridMonths = 12

// maxGridMonths bounds a single grid request.
const maxGridMonths = 36

// summaryService builds the derived read models. It owns no state beyond
// its collaborators: every call re-reads the store and recomputes through
// the pure engine, so results never go stale and calls are safe to repeat.
type summaryService struct {
	transactions TransactionServicer
	payables     PayableServicer
}

// NewSummaryService creates a new SummaryServicer.
func NewSummaryService(transactions TransactionServicer, payables PayableServicer) SummaryServicer {
	return &summaryService{transactions: transactions, payables: payables}
}

// monthBounds converts a zero-based month index into the half-open month
// interval and its key.
func monthBounds(year, monthIndex int) (time.Time, time.Time, string, error) {
	if monthIndex < 0 || monthIndex > 11 {
		return time.Time{}, time.Time{}, "", apperrors.WithMessage(apperrors.ErrInvalidInput, "month index must be between 0 and 11")
	}
	month := time.Month(monthIndex + 1)
	from, to := ledger.MonthInterval(year, month)
	return from, to, ledger.MonthKey(year, month), nil
}

// MonthSummary computes the settled totals of a month.
func (s *summaryService) MonthSummary(userID string, year, monthIndex int) (*ledger.Summary, error) {
	from, to, _, err := monthBounds(year, monthIndex)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactions.FindRange(userID, from, to)
	if err != nil {
		return nil, err
	}
	summary := ledger.Compute(transactions)
	return &summary, nil
}

// ProjectedSummary folds the month's unpaid payables into its settled
// summary. Settled income is never adjusted by the commitments.
func (s *summaryService) ProjectedSummary(userID string, year, monthIndex int) (*ledger.Projection, error) {
	from, to, monthKey, err := monthBounds(year, monthIndex)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactions.FindRange(userID, from, to)
	if err != nil {
		return nil, err
	}
	payables, err := s.payables.UnpaidInMonth(userID, monthKey)
	if err != nil {
		return nil, err
	}
	projection := ledger.MergeProjections(ledger.Compute(transactions), payables)
	return &projection, nil
}

// MonthBudgetRule computes the informational essential/discretionary/
// savings split of a month.
func (s *summaryService) MonthBudgetRule(userID string, year, monthIndex int) (*ledger.BudgetRule, error) {
	from, to, _, err := monthBounds(year, monthIndex)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactions.FindRange(userID, from, to)
	if err != nil {
		return nil, err
	}
	rule := ledger.ComputeBudgetRule(transactions, ledger.Compute(transactions))
	return &rule, nil
}

// CashFlow builds the day-by-day view of a month from settled
// transactions and unpaid payables.
func (s *summaryService) CashFlow(userID string, year, monthIndex int, now time.Time) (*CashFlowData, error) {
	from, to, monthKey, err := monthBounds(year, monthIndex)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactions.FindRange(userID, from, to)
	if err != nil {
		return nil, err
	}
	payables, err := s.payables.UnpaidInMonth(userID, monthKey)
	if err != nil {
		return nil, err
	}

	view := ledger.BuildDailyView(now, transactions, payables)
	return &CashFlowData{
		Month:        ledger.MonthTitle(time.Month(monthIndex + 1)),
		Year:         year,
		MonthIndex:   monthIndex,
		MonthKey:     monthKey,
		TotalIncome:  view.TotalIncome,
		TotalExpense: view.TotalExpense,
		Days:         view.Days,
	}, nil
}

// PlanningGrid builds monthCount consecutive cells starting at
// startMonth. Each month is one independent store read; the reads are
// issued concurrently and the indexed result slice keeps the cells in
// chronological order.
func (s *summaryService) PlanningGrid(userID, startMonth string, monthCount int) ([]ledger.MonthCell, error) {
	year, month, err := ledger.ParseMonthKey(startMonth)
	if err != nil {
		return nil, apperrors.ErrInvalidMonthKey
	}
	if monthCount <= 0 {
		monthCount = DefaultGridMonths
	}
	if monthCount > maxGridMonths {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "month count too large")
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	cells := make([]ledger.MonthCell, monthCount)

	var g errgroup.Group
	for i := 0; i < monthCount; i++ {
		i := i
		g.Go(func() error {
			monthStart := start.AddDate(0, i, 0)
			from, to := ledger.MonthInterval(monthStart.Year(), monthStart.Month())
			transactions, err := s.transactions.FindRange(userID, from, to)
			if err != nil {
				return err
			}
			cells[i] = ledger.BuildMonthCell(ledger.MonthKeyOf(monthStart), transactions)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return cells, nil
}
