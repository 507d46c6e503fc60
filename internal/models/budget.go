package models

import "github.com/shopspring/decimal"

// Budget is a per-category monthly spending ceiling. Spending against it is
// always recomputed from the transactions of the target month.
type Budget struct {
	Base
	UserID   string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Category string          `gorm:"not null" json:"category"`
	Limit    decimal.Decimal `gorm:"column:monthly_limit;type:numeric(14,2);not null" json:"limit"`
}
