package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// CategoryScheduledPayment is the category assigned to transactions
// generated when a payable is settled.
const CategoryScheduledPayment = "Pagamento Agendado"

// Transaction represents a settled monetary event. The amount is always
// positive; the direction is carried by Type.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Description string          `json:"description"`
	Category    string          `gorm:"not null" json:"category"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
}
