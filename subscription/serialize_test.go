package subscription

import (
	"encoding/json"
	"testing"

	"github.com/zllovesuki/offering/faults"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	s := testSubscription(t)
	require.NoError(t, s.ApplyTrial(1))
	original := s.Finance()

	data, err := s.ToJSON()
	require.NoError(t, err)

	parsed, err := ParseFromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, s.ID(), parsed.ID())
	assert.Equal(t, s.Slug(), parsed.Slug())
	assert.Equal(t, s.Name(), parsed.Name())
	assert.Equal(t, s.Category(), parsed.Category())
	assert.Equal(t, s.Type(), parsed.Type())
	assert.Equal(t, s.Status(), parsed.Status())
	assert.Equal(t, s.Visibility(), parsed.Visibility())

	assert.True(t, s.Rate().Amount.Equal(parsed.Rate().Amount))
	assert.Equal(t, s.Rate().Unit, parsed.Rate().Unit)
	assert.Equal(t, s.Rate().BillingCycle, parsed.Rate().BillingCycle)

	originalItems := s.CostItems()
	parsedItems := parsed.CostItems()
	require.Len(t, parsedItems, len(originalItems))
	for i := range originalItems {
		assert.Equal(t, originalItems[i].ID, parsedItems[i].ID)
		assert.Equal(t, originalItems[i].Item, parsedItems[i].Item)
		assert.True(t, originalItems[i].UnitCost.Equal(parsedItems[i].UnitCost))
		assert.True(t, originalItems[i].Quantity.Equal(parsedItems[i].Quantity))
		assert.True(t, originalItems[i].Subtotal.Equal(parsedItems[i].Subtotal))
	}

	originalPlan := s.Plan().SortedEntries()
	parsedPlan := parsed.Plan().SortedEntries()
	require.Len(t, parsedPlan, len(originalPlan))
	for i := range originalPlan {
		assert.Equal(t, originalPlan[i].Month, parsedPlan[i].Month)
		assert.True(t, originalPlan[i].Capacity.Equal(parsedPlan[i].Capacity))
		assert.True(t, originalPlan[i].Effective().Equal(parsedPlan[i].Effective()),
			"month %s", originalPlan[i].Month)
	}

	reparsed := parsed.Finance()
	assert.True(t, original.Revenue.Gross.Value.Equal(reparsed.Revenue.Gross.Value))
	assert.True(t, original.COS.Gross.Value.Equal(reparsed.COS.Gross.Value))
	assert.True(t, original.Profit.Gross.Value.Equal(reparsed.Profit.Gross.Value))
}

func TestParseAcceptsStringAndDecodedObject(t *testing.T) {
	s := testSubscription(t)
	data, err := s.ToJSON()
	require.NoError(t, err)

	fromString, err := ParseFromJSON(string(data))
	require.NoError(t, err)
	assert.Equal(t, s.ID(), fromString.ID())

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	fromObject, err := ParseFromJSON(decoded)
	require.NoError(t, err)
	assert.Equal(t, s.ID(), fromObject.ID())

	// the decoded object is cloned, not aliased
	decoded["id"] = "tampered"
	assert.Equal(t, s.ID(), fromObject.ID())
}

func TestParseRejectsMissingFields(t *testing.T) {
	s := testSubscription(t)
	data, err := s.ToJSON()
	require.NoError(t, err)

	for _, field := range []string{"id", "timestamp", "metadata", "settings"} {
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &decoded))
		delete(decoded, field)

		_, err := ParseFromJSON(decoded)
		requireKind(t, err, faults.MissingField)
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	_, err := ParseFromJSON("{not json")
	require.Error(t, err)
}

func TestDocumentDiscriminators(t *testing.T) {
	s := testSubscription(t)
	data, err := s.ToJSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "subscription", decoded["$type"])
	assert.Equal(t, "entity", decoded["$kind"])

	// money fields travel in minor unit form
	metadata := decoded["metadata"].(map[string]interface{})
	rate := metadata["rate"].(map[string]interface{})
	amount := rate["amount"].(map[string]interface{})
	assert.Equal(t, "USD", amount["currency"])
	assert.Equal(t, float64(2900), amount["minorUnits"])
}
