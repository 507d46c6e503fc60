package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"grana/internal/models"
)

// ErrInvalidWindowDay reports a payable whose payment window carries a day
// outside the closed {7, 15, 30} enumeration. This is a data-integrity
// condition: surfacing it beats silently misfiling the payable.
var ErrInvalidWindowDay = fmt.Errorf("payment window day outside {7, 15, 30}")

// WindowGroup holds the payables and subtotal of one window day.
type WindowGroup struct {
	Total decimal.Decimal  `json:"total"`
	Items []models.Payable `json:"items"`
}

// WindowGroups maps each of the three window days to its group. All three
// keys are always present, empty windows included.
type WindowGroups map[int]WindowGroup

// GroupByWindow routes each payable into the bucket of its payment
// window's day. Payables must carry their Window association. A window
// day outside the closed set returns ErrInvalidWindowDay wrapped with the
// offending payable.
func GroupByWindow(payables []models.Payable) (WindowGroups, error) {
	groups := make(WindowGroups, len(models.WindowDays))
	for _, day := range models.WindowDays {
		groups[day] = WindowGroup{Total: decimal.Zero, Items: []models.Payable{}}
	}

	for _, p := range payables {
		day := p.Window.WindowDay
		group, ok := groups[day]
		if !ok {
			return nil, fmt.Errorf("payable %s: %w (got %d)", p.ID, ErrInvalidWindowDay, day)
		}
		group.Total = group.Total.Add(p.Amount)
		group.Items = append(group.Items, p)
		groups[day] = group
	}

	return groups, nil
}
