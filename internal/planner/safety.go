package planner

import (
	"math"

	"github.com/andresuchdata/replenish-planner/internal/sheet"
)

// SafetyStockPolicy maps shelf life to safety-stock days using the nearest
// entry of a two-column table. When no entry matches, the largest day count
// of the table applies. A positive per-SKU override always wins.
type SafetyStockPolicy struct {
	table    *sheet.Table
	shelfCol string
	daysCol  string
	fallback float64
}

// NewSafetyStockPolicy builds the policy over the shelfLifeCol/daysCol
// columns of t. The first row is treated as a header when computing the
// fallback.
func NewSafetyStockPolicy(t *sheet.Table, shelfLifeCol, daysCol string) (*SafetyStockPolicy, error) {
	col, err := sheet.ParseColumn(daysCol)
	if err != nil {
		return nil, err
	}
	if _, err := sheet.ParseColumn(shelfLifeCol); err != nil {
		return nil, err
	}

	fallback := math.Inf(-1)
	for _, v := range t.Column(col, 1) {
		if f, ok := v.Float(); ok && f > fallback {
			fallback = f
		}
	}
	if math.IsInf(fallback, -1) {
		fallback = 0
	}

	return &SafetyStockPolicy{
		table:    t,
		shelfCol: shelfLifeCol,
		daysCol:  daysCol,
		fallback: fallback,
	}, nil
}

// SafetyEntry is one shelf-life band of a policy table.
type SafetyEntry struct {
	ShelfLife float64
	Days      float64
}

// PolicyFromEntries builds a policy from shelf-life bands, in table order.
func PolicyFromEntries(entries ...SafetyEntry) *SafetyStockPolicy {
	rows := [][]sheet.Value{{sheet.Text("shelf_life"), sheet.Text("days")}}
	for _, e := range entries {
		rows = append(rows, []sheet.Value{sheet.Number(e.ShelfLife), sheet.Number(e.Days)})
	}
	p, _ := NewSafetyStockPolicy(sheet.NewTableFromValues("safety", rows), "A", "B")
	return p
}

// Fallback is the day count used when shelf life cannot be matched.
func (p *SafetyStockPolicy) Fallback() float64 {
	return p.fallback
}

// Days resolves the safety-stock days for a SKU.
func (p *SafetyStockPolicy) Days(s *Snapshot) float64 {
	if s.SafetyStockOverride > 0 {
		return s.SafetyStockOverride
	}
	if !s.HasShelfLife {
		return p.fallback
	}
	v, ok := p.table.Find(sheet.Number(s.ShelfLife), p.shelfCol, p.daysCol, false)
	if !ok {
		return p.fallback
	}
	days, isNum := v.Float()
	if !isNum {
		return p.fallback
	}
	return days
}
