package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Debt is an outstanding amount owed, paid down over time.
type Debt struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string          `gorm:"not null" json:"name"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_amount"`
	PaidAmount  decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"paid_amount"`
	DueDate     *time.Time      `json:"due_date,omitempty"`

	// Remaining is the outstanding amount, derived and never stored.
	Remaining decimal.Decimal `gorm:"-" json:"remaining"`
}

// ComputeRemaining refreshes the derived Remaining field.
func (d *Debt) ComputeRemaining() {
	d.Remaining = d.TotalAmount.Sub(d.PaidAmount)
}

// AfterFind populates the derived field on reads.
func (d *Debt) AfterFind(*gorm.DB) error {
	d.ComputeRemaining()
	return nil
}
