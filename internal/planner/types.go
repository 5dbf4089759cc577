package planner

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingConfigKey is returned when the config sheet lacks a required key.
	ErrMissingConfigKey = errors.New("planner: missing config key")

	// ErrNoMoreProducts marks the blank product code that ends a SKU scan.
	ErrNoMoreProducts = errors.New("planner: no more products")

	// ErrForecastExhausted is returned when a computation needs a forecast day
	// beyond the end of the sequence.
	ErrForecastExhausted = errors.New("planner: forecast sequence exhausted")

	// ErrPlatformOrder is returned when platforms are opened out of order.
	ErrPlatformOrder = errors.New("planner: platforms must be processed in increasing order")

	// ErrLedgerSealed is returned when appending to a finished platform.
	ErrLedgerSealed = errors.New("planner: platform ledger is sealed")

	// ErrInvalidOptions is returned for unusable run parameters.
	ErrInvalidOptions = errors.New("planner: invalid options")
)

// TrendFlag gates automated ordering for a SKU.
type TrendFlag int

const (
	TrendOther TrendFlag = iota
	TrendTrending
)

func (f TrendFlag) String() string {
	if f == TrendTrending {
		return "trending"
	}
	return "other"
}

// Snapshot is everything the engine needs to know about one product.
type Snapshot struct {
	Offset              int // row offset from the anchor row
	ProductCode         string
	AvgDailySales       float64
	InitialStock        float64
	DailySales          []float64
	DailyIncoming       []float64
	BoxSize             float64
	PalletSize          float64
	RowSize             float64
	ShelfLife           float64
	HasShelfLife        bool
	Trend               TrendFlag
	SafetyStockOverride float64
}

// Platform is one ordering window of a run.
type Platform struct {
	Index        int
	LeadTime     int
	OrderHorizon int // days until this platform's cut-off, cumulative
	GapToNext    int
	EveryDay     bool
}

// Name is the platform label used in reports, e.g. "P1".
func (p Platform) Name() string {
	return PlatformName(p.Index)
}

// PlatformName returns the label of the platform at a 0-based index.
func PlatformName(index int) string {
	return fmt.Sprintf("P%d", index+1)
}

// Order is one suggested purchase.
type Order struct {
	DeliveryDate time.Time
	ProductCode  string
	Quantity     int
}
