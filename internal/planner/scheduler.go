package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/andresuchdata/replenish-planner/internal/sheet"
)

// Settings locate the planner's inputs inside a workbook.
type Settings struct {
	DataSheet         string
	ConfigSheet       string
	KeyColumn         string
	ValueColumn       string
	ShelfLifeColumn   string
	SafetyDaysColumn  string
	ForecastDays      int
	DefaultProductGap int
	TrendLabels       []string
	Workers           int
}

// RunOptions are the per-run answers collected from the operator.
type RunOptions struct {
	WindowDays int
	Platforms  int
	EveryDay   bool
	Gaps       []int // one per platform transition, staggered mode only
	Today      time.Time
}

// Validate checks that the options describe a runnable plan.
func (o RunOptions) Validate() error {
	if o.WindowDays <= 0 {
		return fmt.Errorf("%w: window must be a positive number of days, got %d", ErrInvalidOptions, o.WindowDays)
	}
	if o.Platforms <= 0 {
		return fmt.Errorf("%w: platform count must be positive, got %d", ErrInvalidOptions, o.Platforms)
	}
	for i, g := range o.Gaps {
		if g < 0 {
			return fmt.Errorf("%w: gap %d is negative (%d)", ErrInvalidOptions, i+1, g)
		}
	}
	return nil
}

// Platform returns the context of the platform at index. Every-day
// platforms advance the horizon by one day each; staggered platforms by the
// cumulative gaps before them.
func (o RunOptions) Platform(index, leadTime int) Platform {
	p := Platform{Index: index, LeadTime: leadTime, EveryDay: o.EveryDay}
	if o.EveryDay {
		p.OrderHorizon = o.WindowDays + index
		return p
	}

	p.OrderHorizon = o.WindowDays
	for i := 0; i < index && i < len(o.Gaps); i++ {
		p.OrderHorizon += o.Gaps[i]
	}
	if index < len(o.Gaps) {
		p.GapToNext = o.Gaps[index]
	}
	return p
}

// Planner ties a workbook's layout, SKU rows and safety policy together.
type Planner struct {
	layout  *Layout
	builder *SnapshotBuilder
	engine  *Engine
	workers int
	log     zerolog.Logger
}

// New resolves the layout and safety policy of wb.
func New(wb *sheet.Workbook, cfg Settings, log zerolog.Logger) (*Planner, error) {
	data, err := wb.Sheet(cfg.DataSheet)
	if err != nil {
		return nil, err
	}
	conf, err := wb.Sheet(cfg.ConfigSheet)
	if err != nil {
		return nil, err
	}

	layout, err := ResolveLayout(conf, LayoutOptions{
		KeyColumn:         cfg.KeyColumn,
		ValueColumn:       cfg.ValueColumn,
		DefaultProductGap: cfg.DefaultProductGap,
	})
	if err != nil {
		return nil, err
	}
	policy, err := NewSafetyStockPolicy(conf, cfg.ShelfLifeColumn, cfg.SafetyDaysColumn)
	if err != nil {
		return nil, fmt.Errorf("safety stock policy: %w", err)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	log.Info().
		Int("lead_time", layout.LeadTime).
		Int("product_gap", layout.ProductGap).
		Float64("safety_fallback_days", policy.Fallback()).
		Msg("workbook layout resolved")

	return &Planner{
		layout:  layout,
		builder: NewSnapshotBuilder(data, layout, cfg.ForecastDays, cfg.TrendLabels),
		engine:  NewEngine(policy, log),
		workers: workers,
		log:     log,
	}, nil
}

// Layout returns the resolved config sheet.
func (pl *Planner) Layout() *Layout { return pl.layout }

// Run plans every platform in order and returns the finished ledger.
func (pl *Planner) Run(ctx context.Context, opts RunOptions) (*Ledger, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Today.IsZero() {
		opts.Today = time.Now()
	}
	today := time.Date(opts.Today.Year(), opts.Today.Month(), opts.Today.Day(), 0, 0, 0, 0, opts.Today.Location())

	snapshots, err := pl.builder.Scan()
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	pl.log.Info().Int("products", len(snapshots)).Msg("products loaded")

	ledger := NewLedger()
	for k := 0; k < opts.Platforms; k++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := opts.Platform(k, pl.layout.LeadTime)
		if err := ledger.Open(p); err != nil {
			return nil, err
		}

		quantities, err := pl.evaluate(ctx, snapshots, p, ledger)
		if err != nil {
			return nil, fmt.Errorf("platform %s: %w", p.Name(), err)
		}

		delivery := today.AddDate(0, 0, p.OrderHorizon-1)
		orders := 0
		for i, q := range quantities {
			if q <= 0 {
				continue
			}
			if err := ledger.Append(k, Order{DeliveryDate: delivery, ProductCode: snapshots[i].ProductCode, Quantity: q}); err != nil {
				return nil, err
			}
			orders++
		}
		if err := ledger.Seal(k); err != nil {
			return nil, err
		}

		pl.log.Info().
			Str("platform", p.Name()).
			Int("order_horizon", p.OrderHorizon).
			Int("gap_to_next", p.GapToNext).
			Int("orders", orders).
			Msg("platform planned")
	}

	return ledger, nil
}

// evaluate computes one quantity per snapshot. Rows are independent within a
// platform, so they may be spread over several workers; results keep row
// order.
func (pl *Planner) evaluate(ctx context.Context, snapshots []*Snapshot, p Platform, ledger LedgerReader) ([]int, error) {
	out := make([]int, len(snapshots))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(pl.workers)
	for i, s := range snapshots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			q, err := pl.engine.Quantity(s, p, ledger)
			if err != nil {
				return fmt.Errorf("product %s: %w", s.ProductCode, err)
			}
			out[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
