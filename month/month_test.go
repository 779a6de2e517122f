package month

import (
	"errors"
	"testing"
	"time"

	"github.com/zllovesuki/offering/faults"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValid(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"2025-01", true},
		{"2025-12", true},
		{"0001-06", true},
		{"2025-00", false},
		{"2025-13", false},
		{"2025-1", false},
		{"202501", false},
		{"2025-01-01", false},
		{"", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(Key(tt.key)), "key %q", tt.key)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse("2025/01")
	require.Error(t, err)
	kind, ok := faults.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, faults.InvalidMonth, kind)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  Key
	}{
		{"time.Time", time.Date(2025, 3, 17, 5, 4, 3, 0, time.UTC), "2025-03"},
		{"month key string", "2025-03", "2025-03"},
		{"month Key", Key("2025-03"), "2025-03"},
		{"RFC3339 timestamp", "2025-03-17T12:00:00Z", "2025-03"},
		{"date string", "2025-03-31", "2025-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRejectsUnknownInput(t *testing.T) {
	for _, input := range []interface{}{42, "not-a-date", ""} {
		_, err := Normalize(input)
		require.Error(t, err, "input %v", input)
		assert.True(t, errors.Is(err, faults.ErrInvalidMonth()))
	}
}

func TestAddAndDistance(t *testing.T) {
	k := Key("2025-01")
	assert.Equal(t, Key("2025-02"), k.Add(1))
	assert.Equal(t, Key("2026-01"), k.Add(12))
	assert.Equal(t, Key("2024-12"), k.Add(-1))

	assert.Equal(t, 0, Distance("2025-01", "2025-01"))
	assert.Equal(t, 11, Distance("2025-01", "2025-12"))
	assert.Equal(t, -13, Distance("2025-01", "2023-12"))
}

func TestLexicographicOrderIsChronological(t *testing.T) {
	assert.Equal(t, -1, Compare("2024-12", "2025-01"))
	assert.Equal(t, 1, Compare("2025-02", "2025-01"))
	assert.Equal(t, 0, Compare("2025-01", "2025-01"))
}

func TestTimeAndNext(t *testing.T) {
	k := Key("2025-06")
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), k.Time())
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), k.Next())

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Key("2025-12").Next())
}
