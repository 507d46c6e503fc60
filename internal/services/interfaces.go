package services

import (
	"time"

	"github.com/shopspring/decimal"

	"grana/internal/ledger"
	"grana/internal/models"
	"grana/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Type      *models.TransactionType
	Category  *string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// TransactionUpdate holds the mutable fields of a transaction; nil fields
// are left unchanged.
type TransactionUpdate struct {
	Description *string
	Category    *string
	Type        *models.TransactionType
	Amount      *decimal.Decimal
	Date        *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	Create(userID, description, category string, txType models.TransactionType, amount decimal.Decimal, date time.Time) (*models.Transaction, error)
	List(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetByID(userID, transactionID string) (*models.Transaction, error)
	Update(userID, transactionID string, update TransactionUpdate) (*models.Transaction, error)
	Delete(userID, transactionID string) error
	// FindRange returns all transactions with date in [from, to),
	// the half-open interval every aggregation reads from.
	FindRange(userID string, from, to time.Time) ([]models.Transaction, error)
}

// PayableServicer defines the contract for payable and payment-window logic.
type PayableServicer interface {
	Register(userID, name string, amount decimal.Decimal, dueDate time.Time, windowDay int) (*models.Payable, error)
	GetByID(userID, payableID string) (*models.Payable, error)
	// MonthWindows groups the month's payables into the 7/15/30 windows.
	MonthWindows(userID, monthKey string) (ledger.WindowGroups, error)
	// UnpaidInMonth returns the unpaid payables due within the month.
	UnpaidInMonth(userID, monthKey string) ([]models.Payable, error)
	// Settle marks the payable paid and records the matching settled
	// transaction; both writes happen in one database transaction.
	Settle(userID, payableID string) (*models.Payable, *models.Transaction, error)
}

// CashFlowData is the day-by-day view of one month.
type CashFlowData struct {
	Month        string             `json:"month"`
	Year         int                `json:"year"`
	MonthIndex   int                `json:"month_index"`
	MonthKey     string             `json:"month_key"`
	TotalIncome  decimal.Decimal    `json:"total_income"`
	TotalExpense decimal.Decimal    `json:"total_expense"`
	Days         []ledger.DayBucket `json:"days"`
}

// SummaryServicer defines the contract for the derived read models. Month
// indexes are zero-based (0 = January) to match the query surface.
type SummaryServicer interface {
	MonthSummary(userID string, year, monthIndex int) (*ledger.Summary, error)
	ProjectedSummary(userID string, year, monthIndex int) (*ledger.Projection, error)
	MonthBudgetRule(userID string, year, monthIndex int) (*ledger.BudgetRule, error)
	CashFlow(userID string, year, monthIndex int, now time.Time) (*CashFlowData, error)
	// PlanningGrid builds monthCount consecutive cells starting at
	// startMonth ("YYYY-MM"), in chronological order.
	PlanningGrid(userID, startMonth string, monthCount int) ([]ledger.MonthCell, error)
}

// BudgetStatus compares a category ceiling against the month's spending.
type BudgetStatus struct {
	BudgetID   string          `json:"budget_id"`
	Category   string          `json:"category"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"`
}

// BudgetServicer defines the contract for category-limit business logic.
type BudgetServicer interface {
	Create(userID, category string, limit decimal.Decimal) (*models.Budget, error)
	List(userID string) ([]models.Budget, error)
	Update(userID, budgetID string, limit decimal.Decimal) (*models.Budget, error)
	Delete(userID, budgetID string) error
	// Status reports spent vs limit for every budget over the month.
	Status(userID, monthKey string) ([]BudgetStatus, error)
}

// GoalServicer defines the contract for savings-goal business logic.
type GoalServicer interface {
	Create(userID, name string, target decimal.Decimal, deadline *time.Time) (*models.Goal, error)
	List(userID string) ([]models.Goal, error)
	AddSaved(userID, goalID string, amount decimal.Decimal) (*models.Goal, error)
	Delete(userID, goalID string) error
}

// DebtServicer defines the contract for debt business logic.
type DebtServicer interface {
	Create(userID, name string, total decimal.Decimal, dueDate *time.Time) (*models.Debt, error)
	List(userID string) ([]models.Debt, error)
	RecordPayment(userID, debtID string, amount decimal.Decimal) (*models.Debt, error)
	Delete(userID, debtID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
