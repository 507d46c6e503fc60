package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"grana/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// Amount parses a decimal literal, failing the test on bad input.
func Amount(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", value, err)
	}
	return d
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTransaction creates a transaction of the given type, category
// and amount on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, txType models.TransactionType, category, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
		Category:    category,
		Type:        txType,
		Amount:      Amount(t, amount),
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestWindow creates a payment window for the given month and day.
func CreateTestWindow(t *testing.T, db *gorm.DB, userID, month string, windowDay int) *models.PaymentWindow {
	t.Helper()

	window := &models.PaymentWindow{
		UserID:         userID,
		Month:          month,
		WindowDay:      windowDay,
		ReceivedAmount: decimal.Zero,
	}
	if err := db.Create(window).Error; err != nil {
		t.Fatalf("failed to create test payment window: %v", err)
	}
	return window
}

// CreateTestPayable creates an unpaid payable inside the given window.
func CreateTestPayable(t *testing.T, db *gorm.DB, userID string, window *models.PaymentWindow, amount string, dueDate time.Time) *models.Payable {
	t.Helper()

	payable := &models.Payable{
		UserID:          userID,
		PaymentWindowID: window.ID,
		Name:            fmt.Sprintf("Test Payable %d", nextID()),
		Amount:          Amount(t, amount),
		DueDate:         dueDate,
		IsPaid:          false,
	}
	if err := db.Create(payable).Error; err != nil {
		t.Fatalf("failed to create test payable: %v", err)
	}
	return payable
}

// CreateTestBudget creates a budget for the given category and limit.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, category, limit string) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Limit:    Amount(t, limit),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
