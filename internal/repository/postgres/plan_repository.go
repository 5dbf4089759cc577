package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andresuchdata/replenish-planner/internal/domain"
	"github.com/andresuchdata/replenish-planner/internal/repository"
)

type planRepository struct {
	db *DB
}

func NewPlanRepository(db *DB) repository.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) SavePlanRun(ctx context.Context, run *domain.PlanRun, suggestions []*domain.OrderSuggestion) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO plan_runs (
				workbook, window_days, platforms, every_day, gaps,
				lead_time, orders, total_quantity, output_path, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
			run.Workbook, run.WindowDays, run.Platforms, run.EveryDay, run.Gaps,
			run.LeadTime, run.Orders, run.TotalQty, run.OutputPath, run.CreatedAt,
		).Scan(&run.ID)
		if err != nil {
			return fmt.Errorf("failed to insert plan run: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO order_suggestions (
				run_id, platform, platform_index, delivery_date, product_code, quantity
			) VALUES ($1, $2, $3, $4, $5, $6)`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, s := range suggestions {
			s.RunID = run.ID
			if _, err := stmt.ExecContext(ctx,
				s.RunID, s.Platform, s.PlatformIdx, s.DeliveryDate, s.ProductCode, s.Quantity,
			); err != nil {
				return fmt.Errorf("failed to insert suggestion %s/%s: %w", s.Platform, s.ProductCode, err)
			}
		}

		return nil
	})
}

func (r *planRepository) ListPlanRuns(ctx context.Context, limit int) ([]*domain.PlanRun, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []*domain.PlanRun
	err := r.db.SelectContext(ctx, &runs, `
		SELECT id, workbook, window_days, platforms, every_day, gaps,
		       lead_time, orders, total_quantity, output_path, created_at
		FROM plan_runs
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plan runs: %w", err)
	}
	return runs, nil
}

func (r *planRepository) GetSuggestions(ctx context.Context, runID int64) ([]*domain.OrderSuggestion, error) {
	var out []*domain.OrderSuggestion
	err := r.db.SelectContext(ctx, &out, `
		SELECT id, run_id, platform, platform_index, delivery_date, product_code, quantity
		FROM order_suggestions
		WHERE run_id = $1
		ORDER BY platform_index, id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get suggestions for run %d: %w", runID, err)
	}
	return out, nil
}
