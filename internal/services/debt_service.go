package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "grana/internal/errors"
	"grana/internal/models"
)

// debtService handles debt business logic.
type debtService struct {
	db *gorm.DB
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB) DebtServicer {
	return &debtService{db: db}
}

// Create registers a debt.
func (s *debtService) Create(userID, name string, total decimal.Decimal, dueDate *time.Time) (*models.Debt, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !total.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
	}

	debt := &models.Debt{
		UserID:      userID,
		Name:        name,
		TotalAmount: total,
		PaidAmount:  decimal.Zero,
		DueDate:     dueDate,
	}
	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	debt.ComputeRemaining()
	return debt, nil
}

// List returns all debts of the user.
func (s *debtService) List(userID string) ([]models.Debt, error) {
	var debts []models.Debt
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debts, nil
}

func (s *debtService) getByID(userID, debtID string) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.Where("id = ? AND user_id = ?", debtID, userID).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// RecordPayment adds a payment towards the debt. Payments may not exceed
// the outstanding amount.
func (s *debtService) RecordPayment(userID, debtID string, amount decimal.Decimal) (*models.Debt, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	debt, err := s.getByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	paid := debt.PaidAmount.Add(amount)
	if paid.GreaterThan(debt.TotalAmount) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment exceeds outstanding amount")
	}

	if err := s.db.Model(debt).Update("paid_amount", paid).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	debt.PaidAmount = paid
	debt.ComputeRemaining()
	return debt, nil
}

// Delete removes a debt.
func (s *debtService) Delete(userID, debtID string) error {
	debt, err := s.getByID(userID, debtID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(debt).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
