package planner

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// lookbackPlatforms is how many platforms back the stock simulation looks
// for in-transit orders on day i: day i reads platform P(i-2).
const lookbackPlatforms = 2

// LedgerReader exposes the orders of finished platforms.
type LedgerReader interface {
	Quantity(platform int, product string) int
}

// Evaluation holds the intermediate values of one engine call.
type Evaluation struct {
	Quantity        int
	SafetyStockDays float64
	SalesDuringLead float64
	IncomingDuring  float64
	StockAtLeadEnd  float64
	SalesToCover    float64
	RequiredStock   float64
	ProjectedStock  float64
	Raw             float64
	BoxFill         float64
	SkippedSimDays  int
}

// Engine computes order quantities for one SKU on one platform.
type Engine struct {
	policy *SafetyStockPolicy
	log    zerolog.Logger
}

func NewEngine(policy *SafetyStockPolicy, log zerolog.Logger) *Engine {
	return &Engine{policy: policy, log: log}
}

// Quantity returns the suggested order quantity.
func (e *Engine) Quantity(s *Snapshot, p Platform, ledger LedgerReader) (int, error) {
	ev, err := e.Evaluate(s, p, ledger)
	if err != nil {
		return 0, err
	}
	return ev.Quantity, nil
}

// Evaluate runs the full computation and returns every intermediate value.
// Only trending SKUs are evaluated; others yield a zero Evaluation.
func (e *Engine) Evaluate(s *Snapshot, p Platform, ledger LedgerReader) (Evaluation, error) {
	var ev Evaluation
	if s.Trend != TrendTrending {
		return ev, nil
	}

	ev.SafetyStockDays = e.policy.Days(s)
	safety := ev.SafetyStockDays * s.AvgDailySales

	ev.SalesDuringLead = sum(s.DailySales, 0, p.OrderHorizon)
	ev.IncomingDuring = sum(s.DailyIncoming, 0, p.OrderHorizon+p.LeadTime-1)
	for prior := 0; prior < p.Index; prior++ {
		ev.IncomingDuring += float64(ledger.Quantity(prior, s.ProductCode))
	}
	ev.StockAtLeadEnd = s.InitialStock + ev.IncomingDuring - ev.SalesDuringLead

	endOfHorizon := p.LeadTime + p.OrderHorizon
	ev.SalesToCover = sum(s.DailySales, 0, endOfHorizon) +
		sum(s.DailySales, endOfHorizon, endOfHorizon+coverageTail(s, p))
	ev.RequiredStock = ev.SalesToCover + safety - (s.InitialStock + ev.IncomingDuring)

	ev.ProjectedStock, ev.SkippedSimDays = e.simulate(s, p, ledger)

	switch {
	case ev.StockAtLeadEnd <= 0:
		if endOfHorizon >= len(s.DailySales) {
			return ev, fmt.Errorf("%w: product %s needs day %d of %d",
				ErrForecastExhausted, s.ProductCode, endOfHorizon, len(s.DailySales))
		}
		ev.Raw = safety + s.DailySales[endOfHorizon]
	case ev.ProjectedStock < safety:
		ev.Raw = safety + ev.RequiredStock
	}
	if math.IsNaN(ev.Raw) || math.IsInf(ev.Raw, 0) {
		e.log.Warn().Str("product", s.ProductCode).Str("platform", p.Name()).Msg("non-finite raw quantity, suggesting nothing")
		ev.Raw = 0
	}

	var final float64
	ev.BoxFill, final = applyPackaging(ev.Raw, s)
	if final > 0 {
		ev.Quantity = int(final)
	}

	e.log.Debug().
		Str("platform", p.Name()).
		Int("order_horizon", p.OrderHorizon).
		Str("product", s.ProductCode).
		Float64("raw", ev.Raw).
		Float64("sales_to_cover", ev.SalesToCover).
		Float64("end_stock", ev.ProjectedStock).
		Float64("safety_days", ev.SafetyStockDays).
		Float64("required_stock", ev.RequiredStock).
		Float64("stock_at_lead_end", ev.StockAtLeadEnd).
		Int("quantity", ev.Quantity).
		Msg("evaluated")

	return ev, nil
}

// coverageTail is the number of extra forecast days covered beyond the end
// of the horizon. It may be negative, which covers nothing.
func coverageTail(s *Snapshot, p Platform) int {
	if p.EveryDay {
		if s.AvgDailySales >= s.PalletSize {
			return 0
		}
		switch {
		case s.ShelfLife <= 30:
			return 1
		case s.ShelfLife >= 31 && s.ShelfLife < 75:
			return 2
		case s.ShelfLife >= 75:
			return 3
		}
		return 0
	}
	if s.AvgDailySales < s.PalletSize*0.8 && s.ShelfLife >= 75 {
		return p.GapToNext + 1
	}
	return p.GapToNext - 1
}

// simulate walks the stock forward day by day, floored at zero, adding
// in-transit orders from earlier platforms. Days with non-finite inputs are
// skipped.
func (e *Engine) simulate(s *Snapshot, p Platform, ledger LedgerReader) (stock float64, skipped int) {
	days := p.LeadTime + p.OrderHorizon
	if p.GapToNext > 0 {
		days += p.GapToNext - 1
	}

	stock = s.InitialStock
	for i := 0; i < days; i++ {
		incoming := at(s.DailyIncoming, i)
		sales := at(s.DailySales, i)
		if !finite(incoming) || !finite(sales) {
			e.log.Warn().Str("product", s.ProductCode).Int("day", i).Msg("skipping unreadable day in stock simulation")
			skipped++
			continue
		}

		var transit float64
		if i >= p.LeadTime && i > lookbackPlatforms {
			transit = float64(ledger.Quantity(i-lookbackPlatforms-1, s.ProductCode))
		}

		stock += incoming + transit - sales
		if stock < 0 {
			stock = 0
		}
	}
	return stock, skipped
}

// sum adds xs[lo:hi], clipped to the slice bounds.
func sum(xs []float64, lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(xs) {
		hi = len(xs)
	}
	var total float64
	for i := lo; i < hi; i++ {
		total += xs[i]
	}
	return total
}

func at(xs []float64, i int) float64 {
	if i < 0 || i >= len(xs) {
		return 0
	}
	return xs[i]
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
