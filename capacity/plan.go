package capacity

import (
	"sort"

	"github.com/zllovesuki/offering/faults"
	"github.com/zllovesuki/offering/month"

	"github.com/shopspring/decimal"
)

// ResizeMode selects how ResizePeriod fills the new month range
type ResizeMode string

const (
	// ResizeDefault copies entries positionally from the sorted plan,
	// repeating the last entry when the new range is longer and truncating
	// when it is shorter
	ResizeDefault ResizeMode = "default"
	// ResizeDistribute preserves the total effective capacity and spreads it
	// evenly across the new range, dropping adjustments
	ResizeDistribute ResizeMode = "distribute"
)

// Plan holds the monthly capacity entries of a subscription. Storage order is
// preserved as entries were inserted; operations that depend on chronology
// sort a copy by month first. At most one entry may exist per month.
//
// A Plan is not safe for concurrent use; the caller serializes access.
type Plan struct {
	entries []Entry
}

// NewPlan returns an empty capacity plan
func NewPlan() *Plan {
	return &Plan{
		entries: make([]Entry, 0),
	}
}

// Len returns the number of entries in the plan
func (p *Plan) Len() int {
	return len(p.entries)
}

// Entries returns a defensive copy of the plan in storage order
func (p *Plan) Entries() []Entry {
	out := make([]Entry, 0, len(p.entries))
	for _, e := range p.entries {
		out = append(out, e.clone())
	}
	return out
}

// SortedEntries returns a copy of the plan sorted by month ascending
func (p *Plan) SortedEntries() []Entry {
	out := p.Entries()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Month < out[j].Month
	})
	return out
}

// Get returns the entry for the given month, if present
func (p *Plan) Get(m month.Key) (Entry, bool) {
	for _, e := range p.entries {
		if e.Month == m {
			return e.clone(), true
		}
	}
	return Entry{}, false
}

func (p *Plan) indexOf(m month.Key) int {
	for i, e := range p.entries {
		if e.Month == m {
			return i
		}
	}
	return -1
}

// Generate will replace the plan with `months` consecutive entries starting
// at the normalized start month. Entry i's capacity compounds the growth
// rate, rounding at each step; with a zero growth rate every entry carries
// round(baseAmount).
func (p *Plan) Generate(months int, baseAmount decimal.Decimal, growthRate decimal.Decimal, start interface{}) error {
	if months <= 0 {
		return faults.ErrInvalidArgument().
			WithMessagef("months must be positive, got %d", months)
	}
	if baseAmount.IsNegative() {
		return faults.ErrInvalidArgument().
			WithMessage("base amount must not be negative")
	}
	if growthRate.IsNegative() {
		return faults.ErrInvalidArgument().
			WithMessage("growth rate must not be negative")
	}
	startKey, err := month.Normalize(start)
	if err != nil {
		return err
	}

	factor := decimal.NewFromInt(1).Add(growthRate)
	amount := baseAmount.Round(0)
	entries := make([]Entry, 0, months)
	for i := 0; i < months; i++ {
		if i > 0 && growthRate.IsPositive() {
			amount = amount.Mul(factor).Round(0)
		}
		entries = append(entries, Entry{
			Month:    startKey.Add(i),
			Capacity: amount,
		})
	}
	p.entries = entries
	return nil
}

// NormalizeUnits will set every entry's capacity to the given amount,
// leaving adjustments untouched. A single-entry plan is already considered
// normalized and is left as-is.
func (p *Plan) NormalizeUnits(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return faults.ErrInvalidArgument().
			WithMessage("normalized amount must not be negative")
	}
	if len(p.entries) == 0 {
		return faults.ErrEmptyPlan()
	}
	if len(p.entries) == 1 {
		return nil
	}
	for i := range p.entries {
		p.entries[i].Capacity = amount
	}
	return nil
}

// ResizePeriod will recompute the plan to span exactly the inclusive month
// range [start, end].
func (p *Plan) ResizePeriod(start, end month.Key, mode ResizeMode) error {
	if !month.Valid(start) || !month.Valid(end) {
		return faults.ErrInvalidRange().
			WithMessagef("malformed range bounds %q..%q", start, end)
	}
	if month.Compare(start, end) > 0 {
		return faults.ErrInvalidRange().
			WithMessagef("start %s is after end %s", start, end)
	}
	if len(p.entries) == 0 {
		return faults.ErrNoCapacityPlan()
	}

	newLen := month.Distance(start, end) + 1
	sorted := p.SortedEntries()

	switch mode {
	case ResizeDistribute:
		p.entries = distribute(p.TotalCapacity(), start, newLen)
	default:
		entries := make([]Entry, 0, newLen)
		for i := 0; i < newLen; i++ {
			src := sorted[len(sorted)-1]
			if i < len(sorted) {
				src = sorted[i]
			}
			e := src.clone()
			e.Month = start.Add(i)
			entries = append(entries, e)
		}
		p.entries = entries
	}
	return nil
}

// distribute spreads total evenly over n months from start using integer
// division: every month gets floor(total/n), and the remainder goes out as
// +1 to the first months in chronological order. Totals are whole numbers in
// practice since generators produce integer capacities.
func distribute(total decimal.Decimal, start month.Key, n int) []Entry {
	count := decimal.NewFromInt(int64(n))
	base := total.Div(count).Floor()
	remainder := total.Sub(base.Mul(count))

	one := decimal.NewFromInt(1)
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		amount := base
		if decimal.NewFromInt(int64(i)).LessThan(remainder) {
			amount = amount.Add(one)
		}
		entries = append(entries, Entry{
			Month:    start.Add(i),
			Capacity: amount,
		})
	}
	return entries
}

// Add inserts an entry for a month that is not yet planned
func (p *Plan) Add(m month.Key, units decimal.Decimal, adjustment *decimal.Decimal) error {
	if !month.Valid(m) {
		return faults.ErrInvalidMonth().
			WithMessagef("%q is not a valid month key", m)
	}
	if p.indexOf(m) >= 0 {
		return faults.ErrDuplicateMonth().
			WithMessagef("month %s is already planned", m)
	}
	e := Entry{
		Month:    m,
		Capacity: units,
	}
	if adjustment != nil {
		adj := *adjustment
		e.Adjustment = &adj
	}
	p.entries = append(p.entries, e)
	return nil
}

// UpdateUnits changes the capacity of an existing month
func (p *Plan) UpdateUnits(m month.Key, units decimal.Decimal) error {
	idx := p.indexOf(m)
	if idx < 0 {
		return faults.ErrMonthNotFound().
			WithMessagef("month %s is not planned", m)
	}
	p.entries[idx].Capacity = units
	return nil
}

// UpdateAdjustment changes (or clears, when nil) the adjustment of an
// existing month
func (p *Plan) UpdateAdjustment(m month.Key, adjustment *decimal.Decimal) error {
	idx := p.indexOf(m)
	if idx < 0 {
		return faults.ErrMonthNotFound().
			WithMessagef("month %s is not planned", m)
	}
	if adjustment == nil {
		p.entries[idx].Adjustment = nil
		return nil
	}
	adj := *adjustment
	p.entries[idx].Adjustment = &adj
	return nil
}

// Remove deletes the entry for the given month
func (p *Plan) Remove(m month.Key) error {
	idx := p.indexOf(m)
	if idx < 0 {
		return faults.ErrMonthNotFound().
			WithMessagef("month %s is not planned", m)
	}
	p.entries = append(p.entries[:idx], p.entries[idx+1:]...)
	return nil
}

// Replace swaps in a whole new set of entries. Every month key is validated
// and duplicate months are rejected before anything is committed.
func (p *Plan) Replace(entries []Entry) error {
	seen := make(map[month.Key]struct{}, len(entries))
	for _, e := range entries {
		if !month.Valid(e.Month) {
			return faults.ErrInvalidMonth().
				WithMessagef("%q is not a valid month key", e.Month)
		}
		if _, ok := seen[e.Month]; ok {
			return faults.ErrDuplicateMonth().
				WithMessagef("month %s appears more than once", e.Month)
		}
		seen[e.Month] = struct{}{}
	}
	next := make([]Entry, 0, len(entries))
	for _, e := range entries {
		next = append(next, e.clone())
	}
	p.entries = next
	return nil
}

// Clear empties the plan
func (p *Plan) Clear() {
	p.entries = make([]Entry, 0)
}

// TotalCapacity returns the sum of effective units over all entries
func (p *Plan) TotalCapacity() decimal.Decimal {
	total := decimal.Zero
	for _, e := range p.entries {
		total = total.Add(e.Effective())
	}
	return total
}

// AverageMonthlyCapacity returns total effective units divided by the number
// of months, or zero for an empty plan
func (p *Plan) AverageMonthlyCapacity() decimal.Decimal {
	if len(p.entries) == 0 {
		return decimal.Zero
	}
	return p.TotalCapacity().Div(decimal.NewFromInt(int64(len(p.entries))))
}

// EarliestMonth returns the smallest month key in the plan
func (p *Plan) EarliestMonth() (month.Key, bool) {
	if len(p.entries) == 0 {
		return "", false
	}
	earliest := p.entries[0].Month
	for _, e := range p.entries[1:] {
		if e.Month < earliest {
			earliest = e.Month
		}
	}
	return earliest, true
}

// LatestMonth returns the largest month key in the plan
func (p *Plan) LatestMonth() (month.Key, bool) {
	if len(p.entries) == 0 {
		return "", false
	}
	latest := p.entries[0].Month
	for _, e := range p.entries[1:] {
		if e.Month > latest {
			latest = e.Month
		}
	}
	return latest, true
}

// MaxSupplyMonth returns the entry with the highest effective units. Ties go
// to the entry encountered first in storage order.
func (p *Plan) MaxSupplyMonth() (Entry, bool) {
	if len(p.entries) == 0 {
		return Entry{}, false
	}
	best := p.entries[0]
	for _, e := range p.entries[1:] {
		if e.Effective().GreaterThan(best.Effective()) {
			best = e
		}
	}
	return best.clone(), true
}

// MinSupplyMonth returns the entry with the lowest effective units. Ties go
// to the entry encountered first in storage order.
func (p *Plan) MinSupplyMonth() (Entry, bool) {
	if len(p.entries) == 0 {
		return Entry{}, false
	}
	best := p.entries[0]
	for _, e := range p.entries[1:] {
		if e.Effective().LessThan(best.Effective()) {
			best = e
		}
	}
	return best.clone(), true
}

// ApplyTrial will sort the plan chronologically, then subtract each entry's
// own capacity from its adjustment for the first `months` entries, driving
// their effective units toward zero. The plan is replaced with the sorted,
// adjusted version.
func (p *Plan) ApplyTrial(months int) error {
	if months <= 0 {
		return faults.ErrInvalidArgument().
			WithMessagef("trial months must be positive, got %d", months)
	}
	sorted := p.SortedEntries()
	limit := months
	if limit > len(sorted) {
		limit = len(sorted)
	}
	for i := 0; i < limit; i++ {
		adj := decimal.Zero
		if sorted[i].Adjustment != nil {
			adj = *sorted[i].Adjustment
		}
		adj = adj.Sub(sorted[i].Capacity)
		sorted[i].Adjustment = &adj
	}
	p.entries = sorted
	return nil
}
