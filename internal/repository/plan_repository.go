// internal/repository/plan_repository.go
package repository

import (
	"context"

	"github.com/andresuchdata/replenish-planner/internal/domain"
)

// PlanRepository archives planner runs and their suggestions.
type PlanRepository interface {
	SavePlanRun(ctx context.Context, run *domain.PlanRun, suggestions []*domain.OrderSuggestion) error
	ListPlanRuns(ctx context.Context, limit int) ([]*domain.PlanRun, error)
	GetSuggestions(ctx context.Context, runID int64) ([]*domain.OrderSuggestion, error)
}
