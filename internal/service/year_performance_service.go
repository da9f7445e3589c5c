package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vitayushchyk/data-factory-test-task/internal/model"
	"github.com/vitayushchyk/data-factory-test-task/internal/repository"
)

// MonthPerformance is one row of the annual performance table.
//
// The plan-attainment percentages keep the planned-over-actual direction of
// the yearly call path (plan / actual * 100), which is the inverse of the
// single-period endpoint. Both conventions are existing consumer contracts
// and must not be unified.
type MonthPerformance struct {
	Month             int             `json:"month"`
	Year              int             `json:"year"`
	IssuanceCount     int             `json:"issuance_count"`
	PlanIssuanceSum   decimal.Decimal `json:"plan_issuance_sum"`
	IssuanceSum       decimal.Decimal `json:"issuance_sum"`
	PctIssuancePlan   float64         `json:"pct_issuance_plan"`
	CollectionCount   int             `json:"collection_count"`
	PlanCollectionSum decimal.Decimal `json:"plan_collection_sum"`
	CollectionSum     decimal.Decimal `json:"collection_sum"`
	PctCollectionPlan float64         `json:"pct_collection_plan"`
	PctIssuanceYear   float64         `json:"pct_issuance_year"`
	PctCollectionYear float64         `json:"pct_collection_year"`
}

// YearStatsRepository defines the data access the year aggregator needs.
type YearStatsRepository interface {
	YearlyStats(ctx context.Context, year, limit, offset int, cats model.Categories) ([]repository.MonthlyStat, error)
}

// YearPerformanceService shapes the raw yearly statistics into response rows.
type YearPerformanceService struct {
	repo YearStatsRepository
	cats model.Categories
}

// NewYearPerformanceService creates a new YearPerformanceService with the
// given repository and resolved category ids.
func NewYearPerformanceService(repo YearStatsRepository, cats model.Categories) *YearPerformanceService {
	return &YearPerformanceService{repo: repo, cats: cats}
}

// GetYearPerformance forwards to the repository and rounds the four
// percentage fields to two decimals at this presentation boundary.
func (s *YearPerformanceService) GetYearPerformance(ctx context.Context, year, limit, offset int) ([]MonthPerformance, error) {
	stats, err := s.repo.YearlyStats(ctx, year, limit, offset, s.cats)
	if err != nil {
		return nil, err
	}

	results := make([]MonthPerformance, 0, len(stats))
	for _, st := range stats {
		results = append(results, MonthPerformance{
			Month:             st.Month,
			Year:              st.Year,
			IssuanceCount:     st.IssuanceCount,
			PlanIssuanceSum:   st.PlanIssuanceSum,
			IssuanceSum:       st.IssuanceSum,
			PctIssuancePlan:   st.PctIssuancePlan.Round(2).InexactFloat64(),
			CollectionCount:   st.CollectionCount,
			PlanCollectionSum: st.PlanCollectionSum,
			CollectionSum:     st.CollectionSum,
			PctCollectionPlan: st.PctCollectionPlan.Round(2).InexactFloat64(),
			PctIssuanceYear:   st.PctIssuanceYear.Round(2).InexactFloat64(),
			PctCollectionYear: st.PctCollectionYear.Round(2).InexactFloat64(),
		})
	}

	return results, nil
}
