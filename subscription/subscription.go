package subscription

import (
	"strings"
	"time"

	"github.com/zllovesuki/offering/capacity"
	"github.com/zllovesuki/offering/faults"
	"github.com/zllovesuki/offering/money"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/lithammer/shortuuid/v3"
)

var validate *validator.Validate = validator.New()

// Rate is the single source of the per-unit price. Changing currency means
// replacing the whole rate; there is no conversion logic.
type Rate struct {
	Amount       money.Money  `json:"amount"`
	Unit         RateUnit     `json:"unit"`
	BillingCycle BillingCycle `json:"billingCycle"`
}

// Validate checks that the rate is fully specified
func (r Rate) Validate() error {
	if r.Amount.Currency == "" {
		return faults.ErrInvalidArgument().
			WithMessage("rate amount must carry a currency")
	}
	if !r.Unit.valid() {
		return faults.ErrInvalidArgument().
			WithMessagef("%q is not a valid rate unit", r.Unit)
	}
	if !r.BillingCycle.valid() {
		return faults.ErrInvalidArgument().
			WithMessagef("%q is not a valid billing cycle", r.BillingCycle)
	}
	return nil
}

// Subscription is the aggregate root: identity and metadata, the rate, the
// cost-of-subscription items, the monthly capacity plan, and the cached
// finance snapshot gated by a dirty flag.
//
// A Subscription is not safe for concurrent use; callers serialize access.
type Subscription struct {
	id          string
	slugValue   string
	name        string
	description string
	sku         string
	photos      []string
	category    string
	subType     string
	status      Status
	visibility  Visibility
	restricted  bool
	createdAt   time.Time
	updatedAt   time.Time

	rate      Rate
	costItems []CostItem
	plan      *capacity.Plan

	snapshot FinanceSnapshot
	dirty    bool
}

// InitializeOptions carries the required construction inputs
type InitializeOptions struct {
	Name        string `validate:"required"`
	Type        string `validate:"required"`
	Rate        Rate
	Category    string `validate:"required"`
	Description string
	SKU         string
}

// Initialize will construct a new Subscription with default settings:
// active, private, unrestricted, empty cost items, empty capacity plan, and
// a zeroed finance snapshot in the rate's currency.
func Initialize(opts InitializeOptions) (*Subscription, error) {
	if err := validate.Struct(&opts); err != nil {
		return nil, faults.ErrInvalidArgument().
			WithMessage("missing required fields").
			AddMessages(err.Error())
	}
	if strings.TrimSpace(opts.Name) == "" {
		return nil, faults.ErrInvalidArgument().
			WithMessage("name must not be blank")
	}
	if strings.TrimSpace(opts.Category) == "" {
		return nil, faults.ErrInvalidArgument().
			WithMessage("category must not be blank")
	}
	if err := opts.Rate.Validate(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	s := &Subscription{
		id:          id,
		slugValue:   slug.Make(opts.Name) + "-" + id[:8],
		name:        opts.Name,
		description: opts.Description,
		sku:         opts.SKU,
		photos:      make([]string, 0),
		category:    opts.Category,
		subType:     opts.Type,
		status:      StatusActive,
		visibility:  VisibilityPrivate,
		createdAt:   now,
		updatedAt:   now,
		rate:        opts.Rate,
		costItems:   make([]CostItem, 0),
		plan:        capacity.NewPlan(),
	}
	s.snapshot = zeroSnapshot(s.Currency())
	return s, nil
}

// generateID returns an opaque unique identifier with the given prefix
func generateID(prefix string) string {
	return prefix + shortuuid.New()
}

func (s *Subscription) touch() {
	s.updatedAt = time.Now().UTC()
}

// markDirty flags the finance snapshot as stale; the next finance read
// recomputes it
func (s *Subscription) markDirty() {
	s.dirty = true
	s.touch()
}

// ID returns the unique identifier of the subscription
func (s *Subscription) ID() string {
	return s.id
}

// Slug returns the URL-safe identifier derived from the name
func (s *Subscription) Slug() string {
	return s.slugValue
}

func (s *Subscription) Name() string {
	return s.name
}

func (s *Subscription) Description() string {
	return s.description
}

func (s *Subscription) SKU() string {
	return s.sku
}

// Photos returns a copy of the photo URL list
func (s *Subscription) Photos() []string {
	out := make([]string, len(s.photos))
	copy(out, s.photos)
	return out
}

func (s *Subscription) Category() string {
	return s.category
}

func (s *Subscription) Type() string {
	return s.subType
}

func (s *Subscription) Status() Status {
	return s.status
}

func (s *Subscription) Visibility() Visibility {
	return s.visibility
}

func (s *Subscription) Restricted() bool {
	return s.restricted
}

func (s *Subscription) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Subscription) UpdatedAt() time.Time {
	return s.updatedAt
}

// Rate returns the current rate
func (s *Subscription) Rate() Rate {
	return s.rate
}

// Currency returns the fixed currency of the subscription, taken from the
// rate amount
func (s *Subscription) Currency() money.Currency {
	return s.rate.Amount.Currency
}

// Rename changes the display name. The slug is derived at construction and
// does not change with the name.
func (s *Subscription) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return faults.ErrInvalidArgument().
			WithMessage("name must not be blank")
	}
	s.name = name
	s.touch()
	return nil
}

func (s *Subscription) SetDescription(description string) {
	s.description = description
	s.touch()
}

func (s *Subscription) SetSKU(sku string) {
	s.sku = sku
	s.touch()
}

func (s *Subscription) AddPhoto(url string) error {
	if strings.TrimSpace(url) == "" {
		return faults.ErrInvalidArgument().
			WithMessage("photo URL must not be blank")
	}
	s.photos = append(s.photos, url)
	s.touch()
	return nil
}

func (s *Subscription) SetCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return faults.ErrInvalidArgument().
			WithMessage("category must not be blank")
	}
	s.category = category
	s.touch()
	return nil
}

func (s *Subscription) SetStatus(status Status) error {
	switch status {
	case StatusActive, StatusPaused, StatusRetired:
	default:
		return faults.ErrInvalidArgument().
			WithMessagef("%q is not a valid status", status)
	}
	s.status = status
	s.touch()
	return nil
}

func (s *Subscription) SetVisibility(visibility Visibility) error {
	switch visibility {
	case VisibilityPrivate, VisibilityPublic:
	default:
		return faults.ErrInvalidArgument().
			WithMessagef("%q is not a valid visibility", visibility)
	}
	s.visibility = visibility
	s.touch()
	return nil
}

func (s *Subscription) Restrict() {
	s.restricted = true
	s.touch()
}

func (s *Subscription) Unrestrict() {
	s.restricted = false
	s.touch()
}

// SetRate replaces the whole rate. Replacing with a different currency is
// only allowed while no cost items exist, since their unit costs are pinned
// to the subscription's currency.
func (s *Subscription) SetRate(rate Rate) error {
	if err := rate.Validate(); err != nil {
		return err
	}
	if rate.Amount.Currency != s.Currency() && len(s.costItems) > 0 {
		return faults.ErrCurrencyMismatch().
			WithMessagef("cannot switch currency to %s while cost items exist", rate.Amount.Currency)
	}
	s.rate = rate
	s.markDirty()
	return nil
}

// SetRateAmount changes the per-unit price in the current currency
func (s *Subscription) SetRateAmount(amount money.Money) error {
	if amount.Currency != s.Currency() {
		return faults.ErrCurrencyMismatch().
			WithMessagef("rate amount is %s, subscription is %s", amount.Currency, s.Currency())
	}
	s.rate.Amount = amount
	s.markDirty()
	return nil
}

func (s *Subscription) SetRateUnit(unit RateUnit) error {
	if !unit.valid() {
		return faults.ErrInvalidArgument().
			WithMessagef("%q is not a valid rate unit", unit)
	}
	s.rate.Unit = unit
	s.markDirty()
	return nil
}

func (s *Subscription) SetBillingCycle(cycle BillingCycle) error {
	if !cycle.valid() {
		return faults.ErrInvalidArgument().
			WithMessagef("%q is not a valid billing cycle", cycle)
	}
	s.rate.BillingCycle = cycle
	s.markDirty()
	return nil
}
