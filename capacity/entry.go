package capacity

import (
	"github.com/zllovesuki/offering/month"

	"github.com/shopspring/decimal"
)

// Entry describes the planned unit count for one month, plus an optional
// signed adjustment (churn, promos, trials)
type Entry struct {
	Month      month.Key        `json:"month"`
	Capacity   decimal.Decimal  `json:"capacity"`
	Adjustment *decimal.Decimal `json:"adjustment,omitempty"`
}

// Effective will return the units actually used in revenue and cost
// calculations: capacity plus the adjustment when one is set
func (e Entry) Effective() decimal.Decimal {
	if e.Adjustment == nil {
		return e.Capacity
	}
	return e.Capacity.Add(*e.Adjustment)
}

// clone returns a copy of the entry with its own adjustment pointer
func (e Entry) clone() Entry {
	c := Entry{
		Month:    e.Month,
		Capacity: e.Capacity,
	}
	if e.Adjustment != nil {
		adj := *e.Adjustment
		c.Adjustment = &adj
	}
	return c
}
