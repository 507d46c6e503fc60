package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "grana/internal/errors"
	"grana/internal/ledger"
	"grana/internal/models"
)

// budgetService handles category-limit business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// Create registers a monthly spending ceiling for a category. One budget
// per (user, category).
func (s *budgetService) Create(userID, category string, limit decimal.Decimal) (*models.Budget, error) {
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if !limit.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be greater than zero")
	}

	var count int64
	s.db.Model(&models.Budget{}).Where("user_id = ? AND category = ?", userID, category).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateBudget
	}

	budget := &models.Budget{
		UserID:   userID,
		Category: category,
		Limit:    limit,
	}
	if err := s.db.Create(budget).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budget, nil
}

// List returns all budgets of the user.
func (s *budgetService) List(userID string) ([]models.Budget, error) {
	var budgets []models.Budget
	if err := s.db.Where("user_id = ?", userID).Order("category ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return budgets, nil
}

func (s *budgetService) getByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// Update changes a budget's monthly ceiling.
func (s *budgetService) Update(userID, budgetID string, limit decimal.Decimal) (*models.Budget, error) {
	if !limit.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be greater than zero")
	}
	budget, err := s.getByID(userID, budgetID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(budget).Update("monthly_limit", limit).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	budget.Limit = limit
	return budget, nil
}

// Delete removes a budget.
func (s *budgetService) Delete(userID, budgetID string) error {
	budget, err := s.getByID(userID, budgetID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Status compares each budget against the month's spending in its
// category. Spending is recomputed from the month's transactions on
// every call.
func (s *budgetService) Status(userID, monthKey string) ([]BudgetStatus, error) {
	year, month, err := ledger.ParseMonthKey(monthKey)
	if err != nil {
		return nil, apperrors.ErrInvalidMonthKey
	}
	from, to := ledger.MonthInterval(year, month)

	budgets, err := s.List(userID)
	if err != nil {
		return nil, err
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		var transactions []models.Transaction
		if err := s.db.
			Where("user_id = ? AND category = ? AND type = ? AND date >= ? AND date < ?",
				userID, budget.Category, models.TransactionTypeExpense, from, to).
			Find(&transactions).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		spent := decimal.Zero
		for _, tx := range transactions {
			spent = spent.Add(tx.Amount)
		}

		status := BudgetStatus{
			BudgetID:  budget.ID,
			Category:  budget.Category,
			Limit:     budget.Limit,
			Spent:     spent,
			Remaining: budget.Limit.Sub(spent),
		}
		if budget.Limit.IsPositive() {
			status.Percentage, _ = spent.Mul(decimal.NewFromInt(100)).Div(budget.Limit).Float64()
		}
		statuses = append(statuses, status)
	}

	return statuses, nil
}
