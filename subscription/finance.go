package subscription

import (
	"time"

	"github.com/zllovesuki/offering/faults"
	"github.com/zllovesuki/offering/money"
	"github.com/zllovesuki/offering/month"

	"github.com/shopspring/decimal"
)

// Column is one cell of the finance snapshot: a monetary value plus its
// margin against gross revenue, as a decimal ratio
type Column struct {
	Value       money.Money     `json:"value"`
	MarginRatio decimal.Decimal `json:"marginRatio"`
}

// Figure pairs the gross and net columns of one finance line
type Figure struct {
	Gross Column `json:"gross"`
	Net   Column `json:"net"`
}

// FinanceSnapshot is the cached derived view of the subscription's finances.
// It is recomputed in full whenever stale; there is no incremental update.
//
// Net columns currently mirror gross columns: the snapshot applies no
// deductions. Deductions are only supported on the per-month NetRevenue and
// NetProfit accessors.
type FinanceSnapshot struct {
	Revenue Figure `json:"revenue"`
	Income  Figure `json:"income"`
	Profit  Figure `json:"profit"`
	COS     Figure `json:"cos"`
}

func zeroSnapshot(currency money.Currency) FinanceSnapshot {
	zero := Column{
		Value:       money.Zero(currency),
		MarginRatio: decimal.Zero,
	}
	figure := Figure{Gross: zero, Net: zero}
	return FinanceSnapshot{
		Revenue: figure,
		Income:  figure,
		Profit:  figure,
		COS:     figure,
	}
}

// Finance returns the snapshot, recomputing it first if any mutation to the
// rate, the cost items, or the capacity plan has happened since the last
// read. Recomputation is a pure function of those three inputs, so calling
// this twice without an intervening mutation yields identical content.
func (s *Subscription) Finance() FinanceSnapshot {
	if s.dirty {
		s.snapshot = s.computeSnapshot()
		s.dirty = false
	}
	return s.snapshot
}

// computeGrossRevenue sums rate amount times effective units over every
// planned month, seeded with a zero in the rate's currency
func (s *Subscription) computeGrossRevenue() money.Money {
	total := money.Zero(s.Currency())
	for _, e := range s.plan.Entries() {
		total, _ = total.Add(s.rate.Amount.Multiply(e.Effective()))
	}
	return total
}

// computeGrossCOS multiplies the full per-unit cost total by the total
// effective capacity across all months (perUnitCOS x totalCapacity). Note
// this is deliberately not the sum of per-month COS(month) values; the
// historical aggregate formula is kept as-is.
func (s *Subscription) computeGrossCOS() money.Money {
	return s.perUnitCost().Multiply(s.plan.TotalCapacity())
}

func (s *Subscription) computeSnapshot() FinanceSnapshot {
	grossRevenue := s.computeGrossRevenue()
	grossCOS := s.computeGrossCOS()
	grossProfit, _ := grossRevenue.Subtract(grossCOS)

	revenueMargin := decimal.Zero
	cosMargin := decimal.Zero
	if !grossRevenue.IsZero() {
		revenueMargin, _ = grossProfit.Ratio(grossRevenue)
		cosMargin, _ = grossCOS.Ratio(grossRevenue)
	}

	revenueColumn := Column{
		Value:       grossRevenue,
		MarginRatio: decimal.NewFromInt(1),
	}
	cosColumn := Column{
		Value:       grossCOS,
		MarginRatio: cosMargin,
	}
	profitColumn := Column{
		Value:       grossProfit,
		MarginRatio: revenueMargin,
	}

	return FinanceSnapshot{
		Revenue: Figure{Gross: revenueColumn, Net: revenueColumn},
		COS:     Figure{Gross: cosColumn, Net: cosColumn},
		Profit:  Figure{Gross: profitColumn, Net: profitColumn},
		Income:  Figure{Gross: profitColumn, Net: profitColumn},
	}
}

// effectiveUnits returns the effective units planned for the month, or zero
// when the month is absent
func (s *Subscription) effectiveUnits(m month.Key) decimal.Decimal {
	entry, ok := s.plan.Get(m)
	if !ok {
		return decimal.Zero
	}
	return entry.Effective()
}

// Revenue returns rate amount times effective units for the given month, or
// a zero amount when the month is not planned. It does not depend on the
// cached snapshot.
func (s *Subscription) Revenue(m month.Key) (money.Money, error) {
	if !month.Valid(m) {
		return money.Money{}, faults.ErrInvalidMonth().
			WithMessagef("%q is not a valid month key", m)
	}
	return s.rate.Amount.Multiply(s.effectiveUnits(m)), nil
}

// COS returns the per-unit cost total times effective units for the given
// month
func (s *Subscription) COS(m month.Key) (money.Money, error) {
	if !month.Valid(m) {
		return money.Money{}, faults.ErrInvalidMonth().
			WithMessagef("%q is not a valid month key", m)
	}
	return s.perUnitCost().Multiply(s.effectiveUnits(m)), nil
}

// Profit returns revenue minus COS for the given month
func (s *Subscription) Profit(m month.Key) (money.Money, error) {
	revenue, err := s.Revenue(m)
	if err != nil {
		return money.Money{}, err
	}
	cos, err := s.COS(m)
	if err != nil {
		return money.Money{}, err
	}
	return revenue.Subtract(cos)
}

// Margin returns profit over revenue for the given month as a decimal
// ratio, or zero when the month's revenue is zero
func (s *Subscription) Margin(m month.Key) (decimal.Decimal, error) {
	revenue, err := s.Revenue(m)
	if err != nil {
		return decimal.Zero, err
	}
	if revenue.IsZero() {
		return decimal.Zero, nil
	}
	profit, err := s.Profit(m)
	if err != nil {
		return decimal.Zero, err
	}
	return profit.Ratio(revenue)
}

// Deductions are the optional subtractions applied to a month's revenue.
// Nil fields are skipped.
type Deductions struct {
	Discounts  *money.Money
	Returns    *money.Money
	Allowances *money.Money
}

// NetRevenue returns the month's revenue minus any supplied deductions
func (s *Subscription) NetRevenue(m month.Key, deductions Deductions) (money.Money, error) {
	revenue, err := s.Revenue(m)
	if err != nil {
		return money.Money{}, err
	}
	for _, d := range []*money.Money{deductions.Discounts, deductions.Returns, deductions.Allowances} {
		if d == nil {
			continue
		}
		revenue, err = revenue.Subtract(*d)
		if err != nil {
			return money.Money{}, err
		}
	}
	return revenue, nil
}

// NetProfitInputs extends Deductions with operating expenses and taxes
type NetProfitInputs struct {
	Deductions
	OpEx  *money.Money
	Taxes *money.Money
}

// NetProfit returns the month's net revenue minus operating expenses and
// taxes when supplied
func (s *Subscription) NetProfit(m month.Key, inputs NetProfitInputs) (money.Money, error) {
	net, err := s.NetRevenue(m, inputs.Deductions)
	if err != nil {
		return money.Money{}, err
	}
	for _, d := range []*money.Money{inputs.OpEx, inputs.Taxes} {
		if d == nil {
			continue
		}
		net, err = net.Subtract(*d)
		if err != nil {
			return money.Money{}, err
		}
	}
	return net, nil
}

// ForecastRevenue walks n virtual future months, cycling through the sorted
// capacity plan with wraparound, and sums the projected revenue. An empty
// plan forecasts zero.
func (s *Subscription) ForecastRevenue(n int) (money.Money, error) {
	if n <= 0 {
		return money.Money{}, faults.ErrInvalidArgument().
			WithMessagef("forecast months must be positive, got %d", n)
	}
	total := money.Zero(s.Currency())
	sorted := s.plan.SortedEntries()
	if len(sorted) == 0 {
		return total, nil
	}
	for i := 0; i < n; i++ {
		entry := sorted[i%len(sorted)]
		total, _ = total.Add(s.rate.Amount.Multiply(entry.Effective()))
	}
	return total, nil
}

// MRR returns the monthly recurring revenue for the given month, defaulting
// to the current UTC month
func (s *Subscription) MRR(m ...month.Key) (money.Money, error) {
	key := month.Current()
	if len(m) > 0 {
		key = m[0]
	}
	return s.Revenue(key)
}

// ARR returns the annual recurring revenue: the revenue forecast over the
// given number of months, defaulting to 12
func (s *Subscription) ARR(months ...int) (money.Money, error) {
	n := 12
	if len(months) > 0 {
		n = months[0]
	}
	return s.ForecastRevenue(n)
}

// NextBillingDate returns the first of the first planned month strictly
// after now, or the first of the month following the last planned month when
// the whole plan is in the past. The second return is false when the plan is
// empty.
func (s *Subscription) NextBillingDate() (time.Time, bool) {
	sorted := s.plan.SortedEntries()
	if len(sorted) == 0 {
		return time.Time{}, false
	}
	now := time.Now()
	for _, e := range sorted {
		if t := e.Month.Time(); t.After(now) {
			return t, true
		}
	}
	return sorted[len(sorted)-1].Month.Next(), true
}
