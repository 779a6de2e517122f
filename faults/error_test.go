package faults

import (
	"errors"
	"testing"

	extErrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageBuilding(t *testing.T) {
	err := ErrInvalidArgument().
		WithMessagef("months must be positive, got %d", -1).
		AddMessages("see capacity plan docs")

	assert.Contains(t, err.Error(), "InvalidArgument")
	assert.Contains(t, err.Error(), "months must be positive, got -1")
	assert.Contains(t, err.Error(), "see capacity plan docs")
}

func TestKindMatching(t *testing.T) {
	err := ErrDuplicateMonth().WithMessage("month 2025-01 is already planned")

	assert.True(t, errors.Is(err, ErrDuplicateMonth()))
	assert.False(t, errors.Is(err, ErrMonthNotFound()))

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, DuplicateMonth, kind)
}

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	wrapped := extErrors.Wrap(ErrCurrencyMismatch(), "Cannot add cost item")

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, CurrencyMismatch, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}
