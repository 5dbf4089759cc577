package planner

import (
	"math"

	"github.com/shopspring/decimal"
)

// Packaging thresholds.
const (
	palletRegimeShare = 0.7 // avg sales at or above this share of a pallet order whole pallets
	rowCeilFraction   = 0.3
	rowHalfFraction   = 0.5
	palletSnapHigh    = 0.6
	palletSnapMid     = 0.5
	shortShelfLife    = 95
)

// roundToMultiple rounds q/unit to the nearest integer, ties to even, and
// scales back. A zero unit leaves q unchanged.
func roundToMultiple(q, unit float64) float64 {
	if unit == 0 {
		return q
	}
	return math.RoundToEven(q/unit) * unit
}

func ceilToMultiple(q, unit float64) float64 {
	if unit == 0 {
		return q
	}
	return math.Ceil(q/unit) * unit
}

// roundHalfUpToMultiple rounds q/unit with ties away from zero.
func roundHalfUpToMultiple(q, unit float64) float64 {
	if unit == 0 {
		return q
	}
	n := q / unit
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return q
	}
	return decimal.NewFromFloat(n).Round(0).InexactFloat64() * unit
}

// boxFill aligns raw to whole boxes.
func boxFill(raw, box float64) float64 {
	return roundToMultiple(raw, box)
}

// rowOrPallet applies the first stage of the cascade: whole pallets for fast
// movers, row multiples otherwise.
func rowOrPallet(fill float64, s *Snapshot) float64 {
	if s.AvgDailySales >= s.PalletSize*palletRegimeShare {
		return roundToMultiple(fill, s.PalletSize)
	}

	row := s.RowSize
	if row == 0 {
		return fill
	}
	rows := fill / row
	switch {
	case rows > 1:
		if math.Mod(fill, row)/row >= rowCeilFraction {
			return ceilToMultiple(fill, row)
		}
		return roundToMultiple(fill, row)
	case rows >= rowHalfFraction:
		return ceilToMultiple(fill, row)
	default:
		return fill
	}
}

// snapToPallet nudges quantities close to a pallet boundary onto it. Fast
// movers (avg >= pallet) fall back to the box-aligned fill.
func snapToPallet(q, fill float64, s *Snapshot) float64 {
	pallet := s.PalletSize
	if pallet == 0 {
		return q
	}
	frac := math.Mod(q, pallet) / pallet
	if frac == 0 {
		return q
	}
	if s.AvgDailySales >= pallet {
		return fill
	}

	switch {
	case frac >= palletSnapHigh:
		return roundToMultiple(q, pallet)
	case frac >= palletSnapMid:
		if s.ShelfLife <= shortShelfLife && q < pallet {
			return roundToMultiple(q, s.RowSize)
		}
		return roundHalfUpToMultiple(q, pallet)
	case q > pallet:
		return roundToMultiple(q, pallet)
	default:
		return q
	}
}

// applyPackaging runs box rounding, the row/pallet cascade and pallet
// snapping on a positive raw quantity.
func applyPackaging(raw float64, s *Snapshot) (fill, final float64) {
	if raw <= 0 {
		return 0, 0
	}
	fill = boxFill(raw, s.BoxSize)
	final = rowOrPallet(fill, s)
	final = snapToPallet(final, fill, s)
	return fill, final
}
