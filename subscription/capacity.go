package subscription

import (
	"github.com/zllovesuki/offering/capacity"
	"github.com/zllovesuki/offering/month"

	"github.com/shopspring/decimal"
)

// Plan returns the capacity plan for read-only inspection. Mutate the plan
// through the Subscription methods so the finance snapshot is invalidated.
func (s *Subscription) Plan() *capacity.Plan {
	return s.plan
}

// SetCapacity replaces the whole capacity plan. Duplicate months and
// malformed month keys are rejected before anything is committed.
func (s *Subscription) SetCapacity(entries []capacity.Entry) error {
	if err := s.plan.Replace(entries); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// GenerateCapacity regenerates the plan from a base amount and a monthly
// growth rate. See capacity.Plan.Generate.
func (s *Subscription) GenerateCapacity(months int, baseAmount, growthRate decimal.Decimal, start interface{}) error {
	if err := s.plan.Generate(months, baseAmount, growthRate, start); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// NormalizeCapacityUnits sets every planned month to the same unit count
func (s *Subscription) NormalizeCapacityUnits(amount decimal.Decimal) error {
	if err := s.plan.NormalizeUnits(amount); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// ResizeCapacityPeriod resizes the plan to the inclusive month range
// [start, end] in the given mode
func (s *Subscription) ResizeCapacityPeriod(start, end month.Key, mode capacity.ResizeMode) error {
	if err := s.plan.ResizePeriod(start, end, mode); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// AddCapacity plans a new month
func (s *Subscription) AddCapacity(m month.Key, units decimal.Decimal, adjustment *decimal.Decimal) error {
	if err := s.plan.Add(m, units, adjustment); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// UpdateCapacityUnits changes the capacity of a planned month
func (s *Subscription) UpdateCapacityUnits(m month.Key, units decimal.Decimal) error {
	if err := s.plan.UpdateUnits(m, units); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// UpdateCapacityAdjustment changes (or clears, when nil) the adjustment of a
// planned month
func (s *Subscription) UpdateCapacityAdjustment(m month.Key, adjustment *decimal.Decimal) error {
	if err := s.plan.UpdateAdjustment(m, adjustment); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// RemoveCapacity unplans a month
func (s *Subscription) RemoveCapacity(m month.Key) error {
	if err := s.plan.Remove(m); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// ClearCapacity empties the plan
func (s *Subscription) ClearCapacity() {
	s.plan.Clear()
	s.markDirty()
}

// ApplyTrial zeroes out the effective units of the first `months` planned
// months via adjustments. See capacity.Plan.ApplyTrial.
func (s *Subscription) ApplyTrial(months int) error {
	if err := s.plan.ApplyTrial(months); err != nil {
		return err
	}
	s.markDirty()
	return nil
}
