package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_Rows(t *testing.T) {
	l := NewLedger()
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)

	require.NoError(t, l.Open(Platform{Index: 0, OrderHorizon: 3}))
	require.NoError(t, l.Append(0, Order{DeliveryDate: day, ProductCode: "1001", Quantity: 40}))
	require.NoError(t, l.Append(0, Order{DeliveryDate: day, ProductCode: "1003", Quantity: 12}))
	require.NoError(t, l.Seal(0))
	require.NoError(t, l.Open(Platform{Index: 1, OrderHorizon: 4}))
	require.NoError(t, l.Seal(1))

	r := NewReport(l, day)
	rows := r.Rows()

	want := [][]any{
		{"P1", ""},
		{"Date", "Product Code", "Order Quantity"},
		{"2026-10-18", "1001", 40},
		{"2026-10-18", "1003", 12},
		{},
		{"P2", ""},
		{"Date", "Product Code", "Order Quantity"},
		{},
	}
	assert.Equal(t, want, rows)

	s := r.Summary()
	assert.Equal(t, 2, s.Platforms)
	assert.Equal(t, 2, s.Orders)
	assert.Equal(t, 52, s.TotalQuantity)
	assert.Equal(t, []string{"P2"}, s.EmptyPlatforms)
}

func TestReport_Empty(t *testing.T) {
	r := NewReport(NewLedger(), time.Now())
	assert.Empty(t, r.Rows())
	assert.Equal(t, Summary{}, r.Summary())
}
