package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a savings target the user is putting money aside for.
type Goal struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string          `gorm:"not null" json:"name"`
	TargetAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"target_amount"`
	SavedAmount  decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"saved_amount"`
	Deadline     *time.Time      `json:"deadline,omitempty"`

	// Progress is the saved share of the target in percent, derived and
	// never stored.
	Progress float64 `gorm:"-" json:"progress"`
}

// ComputeProgress refreshes the derived Progress field.
func (g *Goal) ComputeProgress() {
	if g.TargetAmount.IsPositive() {
		g.Progress, _ = g.SavedAmount.Mul(decimal.NewFromInt(100)).Div(g.TargetAmount).Float64()
	}
}

// AfterFind populates the derived field on reads.
func (g *Goal) AfterFind(*gorm.DB) error {
	g.ComputeProgress()
	return nil
}
