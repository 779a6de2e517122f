package subscription

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewManagerRequiresLogger(t *testing.T) {
	_, err := NewManager(nil)
	require.Error(t, err)
}

func TestManagerLifecycle(t *testing.T) {
	m, err := NewManager(zap.NewNop())
	require.NoError(t, err)

	s, err := m.Create(InitializeOptions{
		Name:     "Fleet Monitoring",
		Type:     "saas",
		Rate:     testRate(t),
		Category: "observability",
	})
	require.NoError(t, err)

	assert.Same(t, s, m.GetByID(s.ID()))
	assert.Same(t, s, m.GetBySlug(s.Slug()))
	assert.Nil(t, m.GetByID("missing"))
	assert.Nil(t, m.GetBySlug("missing"))
	assert.Len(t, m.List(), 1)

	assert.True(t, m.Remove(s.ID()))
	assert.False(t, m.Remove(s.ID()))
	assert.Empty(t, m.List())
}

func TestManagerCreateValidates(t *testing.T) {
	m, err := NewManager(zap.NewNop())
	require.NoError(t, err)

	_, err = m.Create(InitializeOptions{
		Name:     " ",
		Type:     "saas",
		Rate:     testRate(t),
		Category: "x",
	})
	require.Error(t, err)
	assert.Empty(t, m.List())
}

func TestLoadFromFile(t *testing.T) {
	first := testSubscription(t)
	second, err := Initialize(InitializeOptions{
		Name:     "Device Fleet Lite",
		Type:     "saas",
		Rate:     testRate(t),
		Category: "observability",
	})
	require.NoError(t, err)
	require.NoError(t, second.GenerateCapacity(6, decimal.NewFromInt(50), decimal.Zero, "2025-01"))

	firstDoc, err := first.ToJSON()
	require.NoError(t, err)
	secondDoc, err := second.ToJSON()
	require.NoError(t, err)

	payload, err := json.Marshal([]json.RawMessage{firstDoc, secondDoc})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "offerings.json")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	m, err := NewManager(zap.NewNop())
	require.NoError(t, err)

	count, err := m.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	loaded := m.GetByID(first.ID())
	require.NotNil(t, loaded)
	revenue, err := loaded.Revenue("2025-06")
	require.NoError(t, err)
	assert.Equal(t, "14500.00 USD", revenue.String())
}

func TestLoadFromFileErrors(t *testing.T) {
	m, err := NewManager(zap.NewNop())
	require.NoError(t, err)

	_, err = m.LoadFromFile(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not an array"), 0o644))
	_, err = m.LoadFromFile(path)
	require.Error(t, err)
}
