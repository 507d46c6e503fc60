package services

import (
	"testing"
	"time"

	"grana/internal/models"
	"grana/internal/pagination"
	"grana/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		tx, err := svc.Create(user.ID, "Aluguel de março", "Moradia",
			models.TransactionTypeExpense, testutil.Amount(t, "1200.00"), march)
		testutil.AssertNoError(t, err)

		if tx.ID == "" {
			t.Fatal("expected non-empty transaction ID")
		}
		if tx.Category != "Moradia" {
			t.Errorf("expected category Moradia, got %s", tx.Category)
		}
		testutil.AssertDecimal(t, "Amount", tx.Amount, "1200.00")
		if tx.Type != models.TransactionTypeExpense {
			t.Errorf("expected type expense, got %s", tx.Type)
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, "x", "Moradia",
			models.TransactionTypeExpense, testutil.Amount(t, "0"), march)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, "x", "Moradia",
			models.TransactionType("transfer"), testutil.Amount(t, "10.00"), march)
		testutil.AssertAppError(t, err, "INVALID_TRANSACTION_TYPE")
	})

	t.Run("missing_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Create(user.ID, "x", "",
			models.TransactionTypeExpense, testutil.Amount(t, "10.00"), march)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListTransactions(t *testing.T) {
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("returns_user_transactions_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user1.ID, models.TransactionTypeExpense, "Mercado", "50.00", march)
		testutil.CreateTestTransaction(t, db, user1.ID, models.TransactionTypeIncome, "Salário", "5000.00", march)
		testutil.CreateTestTransaction(t, db, user2.ID, models.TransactionTypeExpense, "Lazer", "80.00", march)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.List(user1.ID, page, TransactionFilter{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 transactions, got %d", result.TotalItems)
		}
	})

	t.Run("filter_by_type_and_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Mercado", "50.00", march)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Lazer", "80.00", march)
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeIncome, "Salário", "5000.00", march)

		expense := models.TransactionTypeExpense
		category := "Mercado"
		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.List(user.ID, page, TransactionFilter{Type: &expense, Category: &category})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 transaction, got %d", result.TotalItems)
		}
		if result.Data[0].Category != "Mercado" {
			t.Errorf("expected Mercado, got %s", result.Data[0].Category)
		}
	})
}

func TestFindRange(t *testing.T) {
	t.Run("upper_bound_is_exclusive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Mercado", "10.00",
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Mercado", "20.00",
			time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC))
		// Boundary transaction belongs to April, not March.
		testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Mercado", "30.00",
			time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		txs, err := svc.FindRange(user.ID, from, to)
		testutil.AssertNoError(t, err)

		if len(txs) != 2 {
			t.Errorf("expected 2 transactions in [march, april), got %d", len(txs))
		}
	})

	t.Run("empty_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)

		from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
		txs, err := svc.FindRange(user.ID, from, to)
		testutil.AssertNoError(t, err)
		if len(txs) != 0 {
			t.Errorf("expected no transactions, got %d", len(txs))
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Mercado", "50.00", march)

		category := "Lazer"
		amount := testutil.Amount(t, "75.50")
		updated, err := svc.Update(user.ID, tx.ID, TransactionUpdate{Category: &category, Amount: &amount})
		testutil.AssertNoError(t, err)

		fetched, err := svc.GetByID(user.ID, updated.ID)
		testutil.AssertNoError(t, err)
		if fetched.Category != "Lazer" {
			t.Errorf("expected category Lazer, got %s", fetched.Category)
		}
		testutil.AssertDecimal(t, "Amount", fetched.Amount, "75.50")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		tx := testutil.CreateTestTransaction(t, db, user1.ID, models.TransactionTypeExpense, "Mercado", "50.00", march)

		desc := "stolen"
		_, err := svc.Update(user2.ID, tx.ID, TransactionUpdate{Description: &desc})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTransactionService(db)
	user := testutil.CreateTestUser(t, db)
	tx := testutil.CreateTestTransaction(t, db, user.ID, models.TransactionTypeExpense, "Mercado", "50.00", march)

	testutil.AssertNoError(t, svc.Delete(user.ID, tx.ID))

	_, err := svc.GetByID(user.ID, tx.ID)
	testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
}
