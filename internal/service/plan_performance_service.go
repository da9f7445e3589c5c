package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitayushchyk/data-factory-test-task/internal/model"
	"github.com/vitayushchyk/data-factory-test-task/internal/repository"
	"github.com/vitayushchyk/data-factory-test-task/pkg/datetime"
)

var hundred = decimal.NewFromInt(100)

// PlanPerformance compares one plan against the actuals accumulated up to the
// target date.
type PlanPerformance struct {
	Period   datetime.Date   `json:"period"`
	Category string          `json:"category"`
	PlanSum  decimal.Decimal `json:"plan_sum"`
	FactSum  decimal.Decimal `json:"fact_sum"`
	Percent  float64         `json:"percent"`
}

// PlanPerformanceRepository defines the data access the aggregator needs.
type PlanPerformanceRepository interface {
	PlansForPeriod(ctx context.Context, period time.Time) ([]repository.PlanForPeriod, error)
	ActualSumForCategory(ctx context.Context, kind model.CategoryKind, from, to time.Time) (decimal.Decimal, error)
}

// PlanPerformanceService computes per-plan performance for a target date.
type PlanPerformanceService struct {
	repo PlanPerformanceRepository
}

// NewPlanPerformanceService creates a new PlanPerformanceService with the given repository.
func NewPlanPerformanceService(repo PlanPerformanceRepository) *PlanPerformanceService {
	return &PlanPerformanceService{repo: repo}
}

// GetPerformance produces one performance record per plan active in the
// target date's month. A mid-month target clamps the actuals window, so the
// fact sum covers only the elapsed part of the month. The percentage here is
// actual-over-planned (fact / plan * 100), rounded to two decimals; a
// zero-sum plan is trivially un-measurable and yields 0 instead of an error.
func (s *PlanPerformanceService) GetPerformance(ctx context.Context, targetDate time.Time) ([]PlanPerformance, error) {
	plans, err := s.repo.PlansForPeriod(ctx, targetDate)
	if err != nil {
		return nil, err
	}

	results := make([]PlanPerformance, 0, len(plans))
	for _, plan := range plans {
		periodStart := datetime.StartOfMonth(plan.Period)
		periodTo := datetime.MinDate(datetime.LastOfMonth(plan.Period), targetDate)

		factSum, err := s.repo.ActualSumForCategory(ctx, model.KindOfName(plan.Category), periodStart, periodTo)
		if err != nil {
			return nil, err
		}

		var percent float64
		if !plan.Sum.IsZero() {
			percent = factSum.Div(plan.Sum).Mul(hundred).Round(2).InexactFloat64()
		}

		results = append(results, PlanPerformance{
			Period:   datetime.FromTime(plan.Period),
			Category: plan.Category,
			PlanSum:  plan.Sum,
			FactSum:  factSum,
			Percent:  percent,
		})
	}

	return results, nil
}
