package subscription

import (
	"strings"

	"github.com/zllovesuki/offering/faults"
	"github.com/zllovesuki/offering/money"

	"github.com/shopspring/decimal"
)

// CostItem is a per-unit cost component (hosting, support, licensing)
// attributed to each active capacity unit. Subtotal is always kept as
// UnitCost multiplied by Quantity.
type CostItem struct {
	ID       string          `json:"id"`
	Item     string          `json:"item"`
	UnitCost money.Money     `json:"unitCost"`
	Quantity decimal.Decimal `json:"quantity"`
	Subtotal money.Money     `json:"subtotal"`
	Unit     string          `json:"unit,omitempty"`
}

// CostItemInput carries the caller-supplied fields of a cost item
type CostItemInput struct {
	Item     string `validate:"required"`
	UnitCost money.Money
	Quantity decimal.Decimal
	Unit     string
}

func (s *Subscription) validateCostInput(input CostItemInput) error {
	if err := validate.Struct(&input); err != nil {
		return faults.ErrInvalidArgument().
			WithMessage("missing required fields").
			AddMessages(err.Error())
	}
	if strings.TrimSpace(input.Item) == "" {
		return faults.ErrInvalidArgument().
			WithMessage("item name must not be blank")
	}
	if !input.Quantity.IsPositive() {
		return faults.ErrInvalidArgument().
			WithMessage("quantity must be positive")
	}
	if input.UnitCost.Currency != s.Currency() {
		return faults.ErrCurrencyMismatch().
			WithMessagef("unit cost is %s, subscription is %s", input.UnitCost.Currency, s.Currency())
	}
	return nil
}

// CostItems returns a copy of the cost item list
func (s *Subscription) CostItems() []CostItem {
	out := make([]CostItem, len(s.costItems))
	copy(out, s.costItems)
	return out
}

func (s *Subscription) costItemIndex(id string) int {
	for i, item := range s.costItems {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// AddCostItem validates and appends a new cost item, returning it with its
// generated ID and computed subtotal
func (s *Subscription) AddCostItem(input CostItemInput) (CostItem, error) {
	if err := s.validateCostInput(input); err != nil {
		return CostItem{}, err
	}
	item := CostItem{
		ID:       generateID("cos_"),
		Item:     input.Item,
		UnitCost: input.UnitCost,
		Quantity: input.Quantity,
		Subtotal: input.UnitCost.Multiply(input.Quantity),
		Unit:     input.Unit,
	}
	s.costItems = append(s.costItems, item)
	s.markDirty()
	return item, nil
}

// UpdateCostItem replaces the fields of an existing cost item and recomputes
// its subtotal
func (s *Subscription) UpdateCostItem(id string, input CostItemInput) (CostItem, error) {
	idx := s.costItemIndex(id)
	if idx < 0 {
		return CostItem{}, faults.ErrInvalidArgument().
			WithMessagef("no cost item with id %s", id)
	}
	if err := s.validateCostInput(input); err != nil {
		return CostItem{}, err
	}
	item := s.costItems[idx]
	item.Item = input.Item
	item.UnitCost = input.UnitCost
	item.Quantity = input.Quantity
	item.Subtotal = input.UnitCost.Multiply(input.Quantity)
	item.Unit = input.Unit
	s.costItems[idx] = item
	s.markDirty()
	return item, nil
}

// RemoveCostItem deletes a cost item by ID
func (s *Subscription) RemoveCostItem(id string) error {
	idx := s.costItemIndex(id)
	if idx < 0 {
		return faults.ErrInvalidArgument().
			WithMessagef("no cost item with id %s", id)
	}
	s.costItems = append(s.costItems[:idx], s.costItems[idx+1:]...)
	s.markDirty()
	return nil
}

// ClearCostItems removes every cost item
func (s *Subscription) ClearCostItems() {
	s.costItems = make([]CostItem, 0)
	s.markDirty()
}

// perUnitCost sums the subtotals of every cost item, seeded with a zero in
// the subscription's currency
func (s *Subscription) perUnitCost() money.Money {
	total := money.Zero(s.Currency())
	for _, item := range s.costItems {
		// subtotals share the subscription's currency by construction
		total, _ = total.Add(item.Subtotal)
	}
	return total
}
