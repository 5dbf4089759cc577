package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Lifecycle(t *testing.T) {
	l := NewLedger()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, l.Open(Platform{Index: 0, OrderHorizon: 3}))
	require.NoError(t, l.Append(0, Order{DeliveryDate: day, ProductCode: "A", Quantity: 40}))
	require.NoError(t, l.Append(0, Order{DeliveryDate: day, ProductCode: "A", Quantity: 99}))
	require.NoError(t, l.Append(0, Order{DeliveryDate: day, ProductCode: "B", Quantity: 12}))

	assert.Zero(t, l.Quantity(0, "A"), "open platforms are not visible")

	require.NoError(t, l.Seal(0))
	assert.Equal(t, 40, l.Quantity(0, "A"), "first order wins")
	assert.Equal(t, 12, l.Quantity(0, "B"))
	assert.Zero(t, l.Quantity(0, "C"))
	assert.Zero(t, l.Quantity(1, "A"))
	assert.Zero(t, l.Quantity(-1, "A"))

	err := l.Append(0, Order{ProductCode: "C", Quantity: 1})
	assert.ErrorIs(t, err, ErrLedgerSealed)

	require.NoError(t, l.Open(Platform{Index: 1, OrderHorizon: 4}))
	assert.Equal(t, 2, l.Len())

	platforms := l.Platforms()
	require.Len(t, platforms, 2)
	assert.Equal(t, "P1", platforms[0].Name)
	assert.Equal(t, 3, platforms[0].OrderHorizon)
	assert.Len(t, platforms[0].Orders, 3)
	assert.Equal(t, "P2", platforms[1].Name)
	assert.Empty(t, platforms[1].Orders)

	platforms[0].Orders[0].Quantity = 0
	assert.Equal(t, 40, l.Quantity(0, "A"), "Platforms returns a copy")
}

func TestLedger_PlatformOrder(t *testing.T) {
	l := NewLedger()

	err := l.Open(Platform{Index: 1})
	assert.ErrorIs(t, err, ErrPlatformOrder)

	require.NoError(t, l.Open(Platform{Index: 0}))
	err = l.Open(Platform{Index: 1})
	assert.ErrorIs(t, err, ErrPlatformOrder, "previous platform still open")

	err = l.Append(3, Order{})
	assert.ErrorIs(t, err, ErrPlatformOrder)
	assert.ErrorIs(t, l.Seal(3), ErrPlatformOrder)
}
