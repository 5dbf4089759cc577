package planner

import (
	"fmt"
	"math"

	"github.com/andresuchdata/replenish-planner/internal/sheet"
)

// Keys looked up in the config sheet. The spelling matches the workbooks
// the planner is fed with.
const (
	KeyLeadTime      = "lead_time"
	KeyProductGap    = "product_gap"
	KeyProductCode   = "sap_code"
	KeyAvgDailySales = "Av_sales"
	KeyInventory     = "inv"
	KeySalesTrend    = "sales_trend"
	KeyOpenOrder     = "open_order"
	KeyBox           = "box"
	KeyRow           = "row"
	KeyPallet        = "pallet"
	KeyShelfLife     = "shelf_life"
	KeyTrend         = "FOS"
	KeySafetyStock   = "safty_stock"
)

// Layout is the resolved config sheet: shared parameters plus the anchor
// cell of every per-SKU field on the data sheet (first product row).
type Layout struct {
	LeadTime   int
	ProductGap int

	ProductCode   sheet.Address
	AvgDailySales sheet.Address
	Inventory     sheet.Address
	SalesTrend    sheet.Address
	OpenOrder     sheet.Address
	Box           sheet.Address
	Row           sheet.Address
	Pallet        sheet.Address
	ShelfLife     sheet.Address
	Trend         sheet.Address
	SafetyStock   sheet.Address
}

// LayoutOptions names the key/value columns of the config sheet.
type LayoutOptions struct {
	KeyColumn         string
	ValueColumn       string
	DefaultProductGap int
}

// ResolveLayout reads lead time, product stride and anchors from the config
// sheet. A missing or non-numeric lead time or a missing anchor is fatal; a
// missing or non-integer product_gap falls back to the default.
func ResolveLayout(cfg *sheet.Table, opts LayoutOptions) (*Layout, error) {
	lookup := func(key string) (sheet.Value, bool) {
		v, ok := cfg.Find(sheet.Text(key), opts.KeyColumn, opts.ValueColumn, true)
		if !ok || v.IsBlank() {
			return sheet.Blank(), false
		}
		return v, true
	}

	l := &Layout{ProductGap: opts.DefaultProductGap}

	lt, ok := lookup(KeyLeadTime)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfigKey, KeyLeadTime)
	}
	leadTime, isNum := lt.Float()
	if !isNum || leadTime < 0 {
		return nil, fmt.Errorf("%w: %s must be a non-negative number, got %q", ErrMissingConfigKey, KeyLeadTime, lt.String())
	}
	l.LeadTime = int(leadTime)

	if gap, ok := lookup(KeyProductGap); ok {
		if f, isNum := gap.Float(); isNum && f > 0 && f == math.Trunc(f) {
			l.ProductGap = int(f)
		}
	}
	if l.ProductGap <= 0 {
		return nil, fmt.Errorf("%w: product gap must be positive", ErrMissingConfigKey)
	}

	anchors := []struct {
		key  string
		dest *sheet.Address
	}{
		{KeyProductCode, &l.ProductCode},
		{KeyAvgDailySales, &l.AvgDailySales},
		{KeyInventory, &l.Inventory},
		{KeySalesTrend, &l.SalesTrend},
		{KeyOpenOrder, &l.OpenOrder},
		{KeyBox, &l.Box},
		{KeyRow, &l.Row},
		{KeyPallet, &l.Pallet},
		{KeyShelfLife, &l.ShelfLife},
		{KeyTrend, &l.Trend},
		{KeySafetyStock, &l.SafetyStock},
	}
	for _, a := range anchors {
		v, ok := lookup(a.key)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfigKey, a.key)
		}
		addr, err := sheet.ParseAddress(v.String())
		if err != nil {
			return nil, fmt.Errorf("config key %s: %w", a.key, err)
		}
		if !addr.HasRow() {
			return nil, fmt.Errorf("config key %s: %w: %q has no row", a.key, sheet.ErrInvalidAddress, v.String())
		}
		*a.dest = addr
	}

	return l, nil
}
