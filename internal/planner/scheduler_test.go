package planner

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/replenish-planner/internal/sheet"
)

func TestRunOptions_Platform(t *testing.T) {
	t.Run("every day", func(t *testing.T) {
		o := RunOptions{WindowDays: 3, Platforms: 3, EveryDay: true}
		for k := 0; k < 3; k++ {
			p := o.Platform(k, 2)
			assert.Equal(t, 3+k, p.OrderHorizon)
			assert.Zero(t, p.GapToNext)
			assert.Equal(t, 2, p.LeadTime)
			assert.True(t, p.EveryDay)
		}
	})

	t.Run("staggered", func(t *testing.T) {
		o := RunOptions{WindowDays: 5, Platforms: 3, Gaps: []int{2, 3}}

		want := []struct{ horizon, gap int }{{5, 2}, {7, 3}, {10, 0}}
		for k, w := range want {
			p := o.Platform(k, 1)
			assert.Equal(t, w.horizon, p.OrderHorizon, "platform %d", k)
			assert.Equal(t, w.gap, p.GapToNext, "platform %d", k)
			assert.False(t, p.EveryDay)
		}
	})
}

func TestRunOptions_Validate(t *testing.T) {
	assert.NoError(t, RunOptions{WindowDays: 1, Platforms: 1}.Validate())
	assert.ErrorIs(t, RunOptions{WindowDays: 0, Platforms: 1}.Validate(), ErrInvalidOptions)
	assert.ErrorIs(t, RunOptions{WindowDays: 1, Platforms: 0}.Validate(), ErrInvalidOptions)
	assert.ErrorIs(t, RunOptions{WindowDays: 1, Platforms: 1, Gaps: []int{1, -1}}.Validate(), ErrInvalidOptions)
}

// productRow lays out A code, B avg, C inventory, D trend, E box, F row,
// G pallet, H shelf life, I safety override, J-AC sales, AD-AW incoming.
func productRow(code, trend string, avg float64) []string {
	row := []string{code, strconv.FormatFloat(avg, 'f', -1, 64), "0", trend, "10", "20", "100", "30", ""}
	for i := 0; i < 20; i++ {
		row = append(row, "5")
	}
	for i := 0; i < 20; i++ {
		row = append(row, "0")
	}
	return row
}

func testWorkbook() *sheet.Workbook {
	data := sheet.NewTable("1000", [][]string{
		productRow("1001", "روندی", 5),
		{},
		productRow("1002", "other", 5),
		{},
		{},
	})
	conf := sheet.NewTable("DB", [][]string{
		{"lead_time", "2", "", "30", "5"},
		{"product_gap", "2", "", "90", "9"},
		{"sap_code", "A1"},
		{"Av_sales", "B1"},
		{"inv", "C1"},
		{"FOS", "D1"},
		{"box", "E1"},
		{"row", "F1"},
		{"pallet", "G1"},
		{"shelf_life", "H1"},
		{"safty_stock", "I1"},
		{"sales_trend", "J1"},
		{"open_order", "AD1"},
	})
	return sheet.NewWorkbook(data, conf)
}

func testSettings() Settings {
	return Settings{
		DataSheet:         "1000",
		ConfigSheet:       "DB",
		KeyColumn:         "A",
		ValueColumn:       "B",
		ShelfLifeColumn:   "D",
		SafetyDaysColumn:  "E",
		ForecastDays:      20,
		DefaultProductGap: 9,
		TrendLabels:       []string{"روندی"},
		Workers:           2,
	}
}

func TestPlanner_Run(t *testing.T) {
	pl, err := New(testWorkbook(), testSettings(), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, pl.Layout().LeadTime)
	assert.Equal(t, 2, pl.Layout().ProductGap)

	today := time.Date(2026, 10, 16, 15, 4, 0, 0, time.UTC)
	ledger, err := pl.Run(context.Background(), RunOptions{
		WindowDays: 3,
		Platforms:  2,
		EveryDay:   true,
		Today:      today,
	})
	require.NoError(t, err)

	platforms := ledger.Platforms()
	require.Len(t, platforms, 2)

	p1 := platforms[0]
	assert.Equal(t, "P1", p1.Name)
	require.Len(t, p1.Orders, 1)
	assert.Equal(t, "1001", p1.Orders[0].ProductCode)
	assert.Equal(t, 40, p1.Orders[0].Quantity)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), p1.Orders[0].DeliveryDate)

	// P1's 40 units arrive before P2's cut-off and cover it.
	assert.Equal(t, "P2", platforms[1].Name)
	assert.Empty(t, platforms[1].Orders)
}

func TestPlanner_RunCancelled(t *testing.T) {
	pl, err := New(testWorkbook(), testSettings(), zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = pl.Run(ctx, RunOptions{WindowDays: 3, Platforms: 2, EveryDay: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanner_RunForecastExhausted(t *testing.T) {
	pl, err := New(testWorkbook(), testSettings(), zerolog.Nop())
	require.NoError(t, err)

	_, err = pl.Run(context.Background(), RunOptions{WindowDays: 18, Platforms: 1, EveryDay: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForecastExhausted)
	assert.Contains(t, err.Error(), "P1")
	assert.Contains(t, err.Error(), "1001")
}

func TestNew_MissingSheet(t *testing.T) {
	settings := testSettings()
	settings.ConfigSheet = "Config"

	_, err := New(testWorkbook(), settings, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Config"`)
}
