package subscription

import (
	"encoding/json"
	"time"

	"github.com/zllovesuki/offering/capacity"
	"github.com/zllovesuki/offering/faults"

	extErrors "github.com/pkg/errors"
)

const (
	documentType = "subscription"
	documentKind = "entity"
)

type timestampDoc struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type metadataDoc struct {
	Description  string           `json:"description"`
	SKU          string           `json:"sku"`
	Photos       []string         `json:"photos"`
	Type         string           `json:"type"`
	Category     string           `json:"category"`
	Rate         Rate             `json:"rate"`
	COS          []CostItem       `json:"cos"`
	CapacityPlan []capacity.Entry `json:"capacityPlan"`
	Finance      FinanceSnapshot  `json:"finance"`
}

type settingsDoc struct {
	Status     Status     `json:"status"`
	Visibility Visibility `json:"visibility"`
	Restricted bool       `json:"restricted"`
}

// document is the wire form of a Subscription. Money-valued fields
// serialize in their currency-tagged minor unit representation.
type document struct {
	Type      string        `json:"$type"`
	Kind      string        `json:"$kind"`
	ID        string        `json:"id"`
	Slug      string        `json:"slug"`
	Name      string        `json:"name"`
	Category  string        `json:"category"`
	Rate      Rate          `json:"rate"`
	Status    Status        `json:"status"`
	SubType   string        `json:"type"`
	Timestamp *timestampDoc `json:"timestamp"`
	Metadata  *metadataDoc  `json:"metadata"`
	Settings  *settingsDoc  `json:"settings"`
}

// ToJSON serializes the subscription, refreshing the finance snapshot first
// so the document carries current totals
func (s *Subscription) ToJSON() ([]byte, error) {
	doc := document{
		Type:     documentType,
		Kind:     documentKind,
		ID:       s.id,
		Slug:     s.slugValue,
		Name:     s.name,
		Category: s.category,
		Rate:     s.rate,
		Status:   s.status,
		SubType:  s.subType,
		Timestamp: &timestampDoc{
			CreatedAt: s.createdAt,
			UpdatedAt: s.updatedAt,
		},
		Metadata: &metadataDoc{
			Description:  s.description,
			SKU:          s.sku,
			Photos:       s.Photos(),
			Type:         s.subType,
			Category:     s.category,
			Rate:         s.rate,
			COS:          s.CostItems(),
			CapacityPlan: s.plan.Entries(),
			Finance:      s.Finance(),
		},
		Settings: &settingsDoc{
			Status:     s.status,
			Visibility: s.visibility,
			Restricted: s.restricted,
		},
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, extErrors.Wrap(err, "Cannot serialize subscription")
	}
	return out, nil
}

// ParseFromJSON reconstructs a Subscription from its wire form. Input may be
// a JSON string, raw bytes, or an already-decoded object (which is deep
// cloned by re-encoding before use).
func ParseFromJSON(input interface{}) (*Subscription, error) {
	var data []byte
	switch in := input.(type) {
	case string:
		data = []byte(in)
	case []byte:
		data = in
	default:
		cloned, err := json.Marshal(in)
		if err != nil {
			return nil, extErrors.Wrap(err, "Cannot clone subscription input")
		}
		data = cloned
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, extErrors.Wrap(err, "Cannot parse subscription JSON")
	}
	if doc.ID == "" {
		return nil, faults.ErrMissingField().
			WithMessage("document has no id")
	}
	if doc.Timestamp == nil {
		return nil, faults.ErrMissingField().
			WithMessage("document has no timestamp")
	}
	if doc.Metadata == nil {
		return nil, faults.ErrMissingField().
			WithMessage("document has no metadata")
	}
	if doc.Settings == nil {
		return nil, faults.ErrMissingField().
			WithMessage("document has no settings")
	}
	if err := doc.Rate.Validate(); err != nil {
		return nil, err
	}

	plan := capacity.NewPlan()
	if err := plan.Replace(doc.Metadata.CapacityPlan); err != nil {
		return nil, err
	}

	items := doc.Metadata.COS
	if items == nil {
		items = make([]CostItem, 0)
	}
	photos := doc.Metadata.Photos
	if photos == nil {
		photos = make([]string, 0)
	}

	s := &Subscription{
		id:          doc.ID,
		slugValue:   doc.Slug,
		name:        doc.Name,
		description: doc.Metadata.Description,
		sku:         doc.Metadata.SKU,
		photos:      photos,
		category:    doc.Category,
		subType:     doc.SubType,
		status:      doc.Settings.Status,
		visibility:  doc.Settings.Visibility,
		restricted:  doc.Settings.Restricted,
		createdAt:   doc.Timestamp.CreatedAt,
		updatedAt:   doc.Timestamp.UpdatedAt,
		rate:        doc.Rate,
		costItems:   items,
		plan:        plan,
		snapshot:    doc.Metadata.Finance,
	}
	return s, nil
}
