package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"grana/internal/ledger"
	"grana/internal/models"
	"grana/internal/testutil"
)

func newSummaryFixture(t *testing.T) (*gorm.DB, SummaryServicer, TransactionServicer, PayableServicer, *models.User) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	transactions := NewTransactionService(db)
	payables := NewPayableService(db)
	summaries := NewSummaryService(transactions, payables)
	user := testutil.CreateTestUser(t, db)
	return db, summaries, transactions, payables, user
}

func TestMonthSummary(t *testing.T) {
	t.Run("settled_totals", func(t *testing.T) {
		db, summaries, _, _, user := newSummaryFixture(t)
		defer testutil.TeardownTestDB(t, db)

		march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "Salário", "5000.00", march)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Moradia", "1200.00", march)
		// April is outside the requested month.
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Moradia", "999.00",
			time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

		summary, err := summaries.MonthSummary(user.ID, 2024, 2)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, "TotalIncome", summary.TotalIncome, "5000.00")
		testutil.AssertDecimal(t, "TotalExpense", summary.TotalExpense, "1200.00")
		testutil.AssertDecimal(t, "Balance", summary.Balance, "3800.00")
		if summary.SavingsRate != 0.76 {
			t.Errorf("expected savings rate 0.76, got %v", summary.SavingsRate)
		}
	})

	t.Run("month_index_out_of_range", func(t *testing.T) {
		db, summaries, _, _, user := newSummaryFixture(t)
		defer testutil.TeardownTestDB(t, db)

		_, err := summaries.MonthSummary(user.ID, 2024, 12)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestProjectedSummary(t *testing.T) {
	t.Run("commitments_reduce_available_funds", func(t *testing.T) {
		db, summaries, _, payables, user := newSummaryFixture(t)
		defer testutil.TeardownTestDB(t, db)

		march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "Salário", "5000.00", march)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Moradia", "1200.00", march)

		_, err := payables.Register(user.ID, "Internet", testutil.Amount(t, "120.00"),
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), 15)
		testutil.AssertNoError(t, err)

		projection, err := summaries.ProjectedSummary(user.ID, 2024, 2)
		testutil.AssertNoError(t, err)

		testutil.AssertDecimal(t, "Income", projection.Income, "5000.00")
		testutil.AssertDecimal(t, "Commitments", projection.Commitments, "120.00")
		testutil.AssertDecimal(t, "Expenses", projection.Expenses, "1320.00")
		testutil.AssertDecimal(t, "FundsAvailable", projection.FundsAvailable, "3680.00")
	})

	t.Run("settled_payable_is_counted_once", func(t *testing.T) {
		db, summaries, _, payables, user := newSummaryFixture(t)
		defer testutil.TeardownTestDB(t, db)

		march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "Salário", "5000.00", march)

		payable, err := payables.Register(user.ID, "Internet", testutil.Amount(t, "120.00"),
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), 15)
		testutil.AssertNoError(t, err)
		_, _, err = payables.Settle(user.ID, payable.ID)
		testutil.AssertNoError(t, err)

		projection, err := summaries.ProjectedSummary(user.ID, 2024, 2)
		testutil.AssertNoError(t, err)

		// The obligation now lives in the settled expenses, not in the
		// commitments; counting it in both would double it.
		testutil.AssertDecimal(t, "Commitments", projection.Commitments, "0")
		testutil.AssertDecimal(t, "Expenses", projection.Expenses, "120.00")
		testutil.AssertDecimal(t, "FundsAvailable", projection.FundsAvailable, "4880.00")
	})
}

func TestMonthBudgetRule(t *testing.T) {
	db, summaries, _, _, user := newSummaryFixture(t)
	defer testutil.TeardownTestDB(t, db)

	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "Salário", "5000.00", march)
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Moradia", "2000.00", march)
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Lazer", "500.00", march)

	rule, err := summaries.MonthBudgetRule(user.ID, 2024, 2)
	testutil.AssertNoError(t, err)

	testutil.AssertDecimal(t, "Essential", rule.Essential, "2000.00")
	testutil.AssertDecimal(t, "Discretionary", rule.Discretionary, "500.00")
	testutil.AssertDecimal(t, "Savings", rule.Savings, "2500.00")
	if rule.EssentialShare != 40 {
		t.Errorf("expected essential share 40, got %v", rule.EssentialShare)
	}
	if rule.DiscretionaryShare != 10 {
		t.Errorf("expected discretionary share 10, got %v", rule.DiscretionaryShare)
	}
	if rule.SavingsShare != 50 {
		t.Errorf("expected savings share 50, got %v", rule.SavingsShare)
	}
}

func TestCashFlow(t *testing.T) {
	db, summaries, _, payables, user := newSummaryFixture(t)
	defer testutil.TeardownTestDB(t, db)

	now := time.Date(2024, 3, 16, 10, 0, 0, 0, time.UTC)
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "Salário", "5000.00",
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Mercado", "350.00",
		time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC))
	_, err := payables.Register(user.ID, "Internet", testutil.Amount(t, "120.00"),
		time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), 15)
	testutil.AssertNoError(t, err)

	data, err := summaries.CashFlow(user.ID, 2024, 2, now)
	testutil.AssertNoError(t, err)

	if data.Month != "Março" {
		t.Errorf("expected month Março, got %s", data.Month)
	}
	if data.MonthKey != "2024-03" {
		t.Errorf("expected month key 2024-03, got %s", data.MonthKey)
	}
	testutil.AssertDecimal(t, "TotalIncome", data.TotalIncome, "5000.00")
	// Scheduled lines are part of the view, so the total reconciles with
	// the bucketed lines: 350 settled plus the 120 obligation.
	testutil.AssertDecimal(t, "TotalExpense", data.TotalExpense, "470.00")

	if len(data.Days) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(data.Days))
	}
	today := data.Days[0]
	if today.Label != "Hoje" {
		t.Errorf("expected first bucket labelled Hoje, got %s", today.Label)
	}
	if len(today.Lines) != 2 {
		t.Fatalf("expected 2 lines today, got %d", len(today.Lines))
	}
	// Settled activity is listed before scheduled obligations.
	if today.Lines[0].Status != ledger.LineStatusSettled || today.Lines[0].Category != "Mercado" {
		t.Errorf("expected settled Mercado line first, got %s %s", today.Lines[0].Status, today.Lines[0].Category)
	}
	if today.Lines[1].Status != ledger.LineStatusScheduled || today.Lines[1].Description != "Internet" {
		t.Errorf("expected scheduled Internet line second, got %s %s", today.Lines[1].Status, today.Lines[1].Description)
	}
}

func TestPlanningGrid(t *testing.T) {
	t.Run("cells_in_chronological_order", func(t *testing.T) {
		db, summaries, _, _, user := newSummaryFixture(t)
		defer testutil.TeardownTestDB(t, db)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "Salário", "5000.00",
			time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Moradia", "1200.00",
			time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Lazer", "300.00",
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

		cells, err := summaries.PlanningGrid(user.ID, "2024-01", 3)
		testutil.AssertNoError(t, err)

		if len(cells) != 3 {
			t.Fatalf("expected 3 cells, got %d", len(cells))
		}
		for i, want := range []string{"2024-01", "2024-02", "2024-03"} {
			if cells[i].Month != want {
				t.Errorf("cell %d: expected month %s, got %s", i, want, cells[i].Month)
			}
		}
		testutil.AssertDecimal(t, "january income", cells[0].TotalIncome, "5000.00")
		testutil.AssertDecimal(t, "february fixed", cells[1].TotalFixed, "1200.00")
		testutil.AssertDecimal(t, "march leisure", cells[2].TotalLeisure, "300.00")
	})

	t.Run("defaults_and_bounds", func(t *testing.T) {
		db, summaries, _, _, user := newSummaryFixture(t)
		defer testutil.TeardownTestDB(t, db)

		cells, err := summaries.PlanningGrid(user.ID, "2024-01", 0)
		testutil.AssertNoError(t, err)
		if len(cells) != DefaultGridMonths {
			t.Errorf("expected %d default cells, got %d", DefaultGridMonths, len(cells))
		}

		_, err = summaries.PlanningGrid(user.ID, "2024-01", 37)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = summaries.PlanningGrid(user.ID, "2024/01", 3)
		testutil.AssertAppError(t, err, "INVALID_MONTH_KEY")
	})
}
