package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andresuchdata/replenish-planner/internal/sheet"
)

// SnapshotBuilder reads per-SKU snapshots from the data sheet.
type SnapshotBuilder struct {
	data         *sheet.Table
	layout       *Layout
	forecastDays int
	trendLabels  map[string]struct{}
}

// NewSnapshotBuilder returns a builder reading up to forecastDays sales and
// incoming cells per product. A trend cell whose trimmed text equals one of
// trendLabels marks the product as trending.
func NewSnapshotBuilder(data *sheet.Table, layout *Layout, forecastDays int, trendLabels []string) *SnapshotBuilder {
	labels := make(map[string]struct{}, len(trendLabels))
	for _, l := range trendLabels {
		if l = strings.TrimSpace(l); l != "" {
			labels[l] = struct{}{}
		}
	}
	return &SnapshotBuilder{
		data:         data,
		layout:       layout,
		forecastDays: forecastDays,
		trendLabels:  labels,
	}
}

// Build reads the product at row offset from the anchor row. It returns
// ErrNoMoreProducts when the product code cell is blank or past the end of
// the sheet.
func (b *SnapshotBuilder) Build(offset int) (*Snapshot, error) {
	l := b.layout

	code, ok := b.data.Cell(l.ProductCode.Offset(offset))
	if !ok || code.IsBlank() || strings.TrimSpace(code.String()) == "" {
		return nil, ErrNoMoreProducts
	}

	s := &Snapshot{
		Offset:      offset,
		ProductCode: strings.TrimSpace(code.String()),
	}

	var err error
	if s.AvgDailySales, err = b.quantity(l.AvgDailySales.Offset(offset), KeyAvgDailySales); err != nil {
		return nil, err
	}
	if s.InitialStock, err = b.quantity(l.Inventory.Offset(offset), KeyInventory); err != nil {
		return nil, err
	}

	s.DailySales = b.sales(l.SalesTrend.Offset(offset), s.AvgDailySales)
	s.DailyIncoming = b.incoming(l.OpenOrder.Offset(offset))

	s.BoxSize = b.size(l.Box.Offset(offset))
	s.PalletSize = b.size(l.Pallet.Offset(offset))
	row, _ := b.data.Cell(l.Row.Offset(offset))
	s.RowSize = row.Coerce()

	if v, _ := b.data.Cell(l.ShelfLife.Offset(offset)); v.IsNumber() {
		s.ShelfLife, s.HasShelfLife = v.FloatOr(0), true
	}

	if v, _ := b.data.Cell(l.Trend.Offset(offset)); !v.IsBlank() {
		if _, ok := b.trendLabels[strings.TrimSpace(v.String())]; ok {
			s.Trend = TrendTrending
		}
	}

	if v, _ := b.data.Cell(l.SafetyStock.Offset(offset)); v.IsNumber() {
		s.SafetyStockOverride = v.FloatOr(0)
	}

	return s, nil
}

// quantity reads a numeric cell that defaults to 0 when blank or missing.
// Text is a data error.
func (b *SnapshotBuilder) quantity(a sheet.Address, field string) (float64, error) {
	v, ok := b.data.Cell(a)
	if !ok || v.IsBlank() {
		return 0, nil
	}
	f, isNum := v.Float()
	if !isNum {
		return 0, fmt.Errorf("%s at %s: not a number: %q", field, a, v.String())
	}
	return f, nil
}

// sales reads consecutive forecast cells until the first non-numeric one,
// then fills the remaining days with avg.
func (b *SnapshotBuilder) sales(anchor sheet.Address, avg float64) []float64 {
	out := make([]float64, 0, b.forecastDays)
	for i := 0; i < b.forecastDays; i++ {
		v, ok := b.data.Cell(anchor.Shift(i))
		f, isNum := v.Float()
		if !ok || !isNum {
			break
		}
		out = append(out, f)
	}
	for len(out) < b.forecastDays {
		out = append(out, avg)
	}
	return out
}

func (b *SnapshotBuilder) incoming(anchor sheet.Address) []float64 {
	out := make([]float64, b.forecastDays)
	for i := range out {
		v, _ := b.data.Cell(anchor.Shift(i))
		out[i] = v.FloatOr(0)
	}
	return out
}

// size reads a pack size; blank, zero or non-numeric cells mean 1.
func (b *SnapshotBuilder) size(a sheet.Address) float64 {
	v, _ := b.data.Cell(a)
	f, ok := v.Float()
	if !ok || f == 0 {
		return 1
	}
	return f
}

// Scan builds snapshots starting at offset 0 and advancing by the layout's
// product gap until the first blank product code.
func (b *SnapshotBuilder) Scan() ([]*Snapshot, error) {
	var out []*Snapshot
	for offset := 0; ; offset += b.layout.ProductGap {
		s, err := b.Build(offset)
		if errors.Is(err, ErrNoMoreProducts) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
}
