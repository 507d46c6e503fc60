package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WindowDays are the three billing-cycle days payables can be grouped under.
var WindowDays = []int{7, 15, 30}

// PaymentWindow groups the payables of one (user, month, window day) triple.
// Month uses the "YYYY-MM" key format shared with the aggregation queries.
type PaymentWindow struct {
	Base
	UserID         string          `gorm:"type:uuid;not null;uniqueIndex:idx_window_triple" json:"user_id"`
	Month          string          `gorm:"size:7;not null;uniqueIndex:idx_window_triple" json:"month"`
	WindowDay      int             `gorm:"not null;uniqueIndex:idx_window_triple" json:"window_day"`
	ReceivedAmount decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"received_amount"`

	Payables []Payable `gorm:"foreignKey:PaymentWindowID" json:"payables,omitempty"`
}

// Payable represents a scheduled, not-yet-settled obligation. Amounts are
// always expense-signed; settling a payable flips IsPaid exactly once and
// emits the matching settled Transaction.
type Payable struct {
	Base
	UserID          string          `gorm:"type:uuid;not null;index" json:"user_id"`
	PaymentWindowID string          `gorm:"type:uuid;not null;index" json:"payment_window_id"`
	Name            string          `gorm:"not null" json:"name"`
	Amount          decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	DueDate         time.Time       `gorm:"not null;index" json:"due_date"`
	IsPaid          bool            `gorm:"default:false" json:"is_paid"`

	Window PaymentWindow `gorm:"foreignKey:PaymentWindowID" json:"window,omitempty"`
}
