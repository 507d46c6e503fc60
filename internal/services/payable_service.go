package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "grana/internal/errors"
	"grana/internal/ledger"
	"grana/internal/models"
)

// payableService handles payable and payment-window business logic.
type payableService struct {
	db *gorm.DB
}

// NewPayableService creates a new PayableServicer.
func NewPayableService(db *gorm.DB) PayableServicer {
	return &payableService{db: db}
}

// Register creates a payable, lazily creating the payment window for the
// (user, month, windowDay) triple on first use. The month key is derived
// from the due date.
func (s *payableService) Register(userID, name string, amount decimal.Decimal, dueDate time.Time, windowDay int) (*models.Payable, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if dueDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "due date is required")
	}
	if !validWindowDay(windowDay) {
		return nil, apperrors.ErrInvalidWindowDay
	}

	monthKey := ledger.MonthKeyOf(dueDate)

	var payable *models.Payable
	err := s.db.Transaction(func(tx *gorm.DB) error {
		window, err := findOrCreateWindow(tx, userID, monthKey, windowDay)
		if err != nil {
			return err
		}

		payable = &models.Payable{
			UserID:          userID,
			PaymentWindowID: window.ID,
			Name:            name,
			Amount:          amount,
			DueDate:         dueDate,
			IsPaid:          false,
		}
		if err := tx.Create(payable).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		payable.Window = *window
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payable, nil
}

func validWindowDay(day int) bool {
	for _, d := range models.WindowDays {
		if d == day {
			return true
		}
	}
	return false
}

func findOrCreateWindow(tx *gorm.DB, userID, monthKey string, windowDay int) (*models.PaymentWindow, error) {
	var window models.PaymentWindow
	err := tx.Where("user_id = ? AND month = ? AND window_day = ?", userID, monthKey, windowDay).
		First(&window).Error
	if err == nil {
		return &window, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	window = models.PaymentWindow{
		UserID:         userID,
		Month:          monthKey,
		WindowDay:      windowDay,
		ReceivedAmount: decimal.Zero,
	}
	if err := tx.Create(&window).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &window, nil
}

// GetByID retrieves a payable with its window for a specific user.
func (s *payableService) GetByID(userID, payableID string) (*models.Payable, error) {
	var payable models.Payable
	if err := s.db.Preload("Window").
		Where("id = ? AND user_id = ?", payableID, userID).
		First(&payable).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPayableNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &payable, nil
}

// MonthWindows groups the month's payables into the three fixed windows.
func (s *payableService) MonthWindows(userID, monthKey string) (ledger.WindowGroups, error) {
	if !ledger.IsMonthKey(monthKey) {
		return nil, apperrors.ErrInvalidMonthKey
	}

	var payables []models.Payable
	if err := s.db.Preload("Window").
		Joins("JOIN payment_windows ON payment_windows.id = payables.payment_window_id").
		Where("payables.user_id = ? AND payment_windows.month = ?", userID, monthKey).
		Order("payables.due_date ASC").
		Find(&payables).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	groups, err := ledger.GroupByWindow(payables)
	if err != nil {
		// A window day outside {7,15,30} can only come from corrupted
		// rows; report it instead of misfiling the payable.
		return nil, apperrors.Wrap(apperrors.ErrInvalidWindowDay, err)
	}
	return groups, nil
}

// UnpaidInMonth returns the unpaid payables due within the month,
// ordered by due date.
func (s *payableService) UnpaidInMonth(userID, monthKey string) ([]models.Payable, error) {
	year, month, err := ledger.ParseMonthKey(monthKey)
	if err != nil {
		return nil, apperrors.ErrInvalidMonthKey
	}
	from, to := ledger.MonthInterval(year, month)

	var payables []models.Payable
	if err := s.db.
		Where("user_id = ? AND is_paid = ? AND due_date >= ? AND due_date < ?", userID, false, from, to).
		Order("due_date ASC").
		Find(&payables).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return payables, nil
}

// Settle marks a payable paid and records the matching settled
// transaction. Both writes run in one database transaction: if either
// fails the other is rolled back, so an obligation can never vanish from
// the projections without its settled counterpart existing.
func (s *payableService) Settle(userID, payableID string) (*models.Payable, *models.Transaction, error) {
	payable, err := s.GetByID(userID, payableID)
	if err != nil {
		return nil, nil, err
	}
	if payable.IsPaid {
		return nil, nil, apperrors.ErrPayableAlreadyPaid
	}

	var settled *models.Transaction
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Guarded update: the paid flag flips exactly once even under
		// concurrent settle calls.
		res := tx.Model(&models.Payable{}).
			Where("id = ? AND user_id = ? AND is_paid = ?", payableID, userID, false).
			Update("is_paid", true)
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrPayableAlreadyPaid
		}

		settled = &models.Transaction{
			UserID:      userID,
			Description: payable.Name,
			Category:    models.CategoryScheduledPayment,
			Type:        models.TransactionTypeExpense,
			Amount:      payable.Amount,
			Date:        payable.DueDate,
		}
		if err := tx.Create(settled).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	payable.IsPaid = true
	return payable, settled, nil
}
