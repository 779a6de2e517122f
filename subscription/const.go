package subscription

// Status is the lifecycle status of a subscription offering
type Status string

// Defining constants
const (
	StatusActive  Status = "Active"
	StatusPaused  Status = "Paused"
	StatusRetired Status = "Retired"
)

// Visibility controls whether the offering is listed publicly
type Visibility string

const (
	VisibilityPrivate Visibility = "Private"
	VisibilityPublic  Visibility = "Public"
)

// RateUnit is what one unit of the rate is charged against
type RateUnit string

const (
	PerSubscriber RateUnit = "per-subscriber"
	PerAccount    RateUnit = "per-account"
	PerUser       RateUnit = "per-user"
	PerMonth      RateUnit = "per-month"
)

func (u RateUnit) valid() bool {
	switch u {
	case PerSubscriber, PerAccount, PerUser, PerMonth:
		return true
	}
	return false
}

// BillingCycle is how often the rate is billed
type BillingCycle string

const (
	CycleDaily     BillingCycle = "daily"
	CycleWeekly    BillingCycle = "weekly"
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleYearly    BillingCycle = "yearly"
)

func (c BillingCycle) valid() bool {
	switch c {
	case CycleDaily, CycleWeekly, CycleMonthly, CycleQuarterly, CycleYearly:
		return true
	}
	return false
}
