package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/vitayushchyk/data-factory-test-task/internal/model"
)

// PlanForPeriod is a plan row joined to its category's display name.
type PlanForPeriod struct {
	ID         int64           `db:"id"`
	Period     time.Time       `db:"period"`
	Sum        decimal.Decimal `db:"sum"`
	Category   string          `db:"category"`
	CategoryID int64           `db:"category_id"`
}

// MonthlyStat is one month of the annual performance table. The percentage
// columns are computed in SQL and rounded later, at the presentation boundary.
type MonthlyStat struct {
	Month             int             `db:"month"`
	Year              int             `db:"year"`
	IssuanceCount     int             `db:"issuance_count"`
	IssuanceSum       decimal.Decimal `db:"issuance_sum"`
	CollectionCount   int             `db:"collection_count"`
	CollectionSum     decimal.Decimal `db:"collection_sum"`
	PlanIssuanceSum   decimal.Decimal `db:"plan_issuance_sum"`
	PlanCollectionSum decimal.Decimal `db:"plan_collection_sum"`
	PctIssuancePlan   decimal.Decimal `db:"pct_issuance_plan"`
	PctCollectionPlan decimal.Decimal `db:"pct_collection_plan"`
	PctIssuanceYear   decimal.Decimal `db:"pct_issuance_year"`
	PctCollectionYear decimal.Decimal `db:"pct_collection_year"`
}

// PlanKey identifies a plan by its (period, category) pair, unique at the
// application layer.
type PlanKey struct {
	Period     time.Time `db:"period"`
	CategoryID int64     `db:"category_id"`
}

// PlanRepository provides data access for plan targets and their actuals.
type PlanRepository struct {
	db *sqlx.DB
}

// NewPlanRepository creates a new PlanRepository with the given database connection.
func NewPlanRepository(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// ActualSumForCategory sums the actual money flow of a category kind inside
// the inclusive [from, to] window: credit bodies issued for issuance, payment
// sums received for collection. Any other kind yields zero without a query.
func (r *PlanRepository) ActualSumForCategory(ctx context.Context, kind model.CategoryKind, from, to time.Time) (decimal.Decimal, error) {
	var query string
	switch kind {
	case model.CategoryIssuance:
		query = `
			SELECT COALESCE(SUM(body), 0)
			FROM credits
			WHERE issuance_date >= $1 AND issuance_date <= $2`
	case model.CategoryCollection:
		query = `
			SELECT COALESCE(SUM(sum), 0)
			FROM payments
			WHERE payment_date >= $1 AND payment_date <= $2`
	default:
		return decimal.Zero, nil
	}

	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, query, from, to)
	return total, err
}

// PlansForPeriod retrieves every plan of the month containing period, joined
// to the category display name. The target date is truncated to month start.
// Rows are ordered by category id so pagination and output are reproducible.
func (r *PlanRepository) PlansForPeriod(ctx context.Context, period time.Time) ([]PlanForPeriod, error) {
	query := `
		SELECT
			p.id,
			p.period,
			p.sum,
			d.name AS category,
			p.category_id
		FROM plans p
		JOIN dictionary d ON d.id = p.category_id
		WHERE p.period = $1
		ORDER BY p.category_id`

	monthStart := time.Date(period.Year(), period.Month(), 1, 0, 0, 0, 0, time.UTC)

	var plans []PlanForPeriod
	err := r.db.SelectContext(ctx, &plans, query, monthStart)
	return plans, err
}

// YearlyStats computes the monthly performance table for a year. Only months
// with at least one credit issuance appear. Plan rows for the issuance and
// collection categories are outer-joined, so an absent plan contributes zero.
//
// Note the percentage direction here: pct_issuance_plan and
// pct_collection_plan are planned-over-actual (plan / actual * 100), the
// inverse of the single-period performance endpoint. Consumers rely on it.
func (r *PlanRepository) YearlyStats(ctx context.Context, year, limit, offset int, cats model.Categories) ([]MonthlyStat, error) {
	query := `
		WITH monthly_credits AS (
			SELECT
				EXTRACT(MONTH FROM issuance_date)::int AS month,
				EXTRACT(YEAR FROM issuance_date)::int AS year,
				COUNT(id) AS issuance_count,
				SUM(body) AS issuance_sum
			FROM credits
			WHERE EXTRACT(YEAR FROM issuance_date) = $1
			GROUP BY 1, 2
		),
		monthly_payments AS (
			SELECT
				EXTRACT(MONTH FROM payment_date)::int AS month,
				EXTRACT(YEAR FROM payment_date)::int AS year,
				COUNT(id) AS collection_count,
				SUM(sum) AS collection_sum
			FROM payments
			WHERE EXTRACT(YEAR FROM payment_date) = $1
			GROUP BY 1, 2
		),
		year_credits AS (
			SELECT SUM(body) AS issuance_sum
			FROM credits
			WHERE EXTRACT(YEAR FROM issuance_date) = $1
		),
		year_payments AS (
			SELECT SUM(sum) AS collection_sum
			FROM payments
			WHERE EXTRACT(YEAR FROM payment_date) = $1
		)
		SELECT
			mc.month,
			mc.year,
			mc.issuance_count,
			COALESCE(mc.issuance_sum, 0) AS issuance_sum,
			COALESCE(mp.collection_count, 0) AS collection_count,
			COALESCE(mp.collection_sum, 0) AS collection_sum,
			COALESCE(pi.sum, 0) AS plan_issuance_sum,
			COALESCE(pc.sum, 0) AS plan_collection_sum,
			COALESCE(COALESCE(pi.sum, 0) / NULLIF(mc.issuance_sum, 0) * 100, 0) AS pct_issuance_plan,
			COALESCE(COALESCE(pc.sum, 0) / NULLIF(mp.collection_sum, 0) * 100, 0) AS pct_collection_plan,
			COALESCE(COALESCE(mc.issuance_sum, 0) / NULLIF(yc.issuance_sum, 0) * 100, 0) AS pct_issuance_year,
			COALESCE(COALESCE(mp.collection_sum, 0) / NULLIF(yp.collection_sum, 0) * 100, 0) AS pct_collection_year
		FROM monthly_credits mc
		LEFT JOIN monthly_payments mp
			ON mp.year = mc.year AND mp.month = mc.month
		LEFT JOIN plans pi
			ON EXTRACT(YEAR FROM pi.period) = mc.year
			AND EXTRACT(MONTH FROM pi.period) = mc.month
			AND pi.category_id = $2
		LEFT JOIN plans pc
			ON EXTRACT(YEAR FROM pc.period) = mc.year
			AND EXTRACT(MONTH FROM pc.period) = mc.month
			AND pc.category_id = $3
		CROSS JOIN year_credits yc
		CROSS JOIN year_payments yp
		ORDER BY mc.month
		LIMIT $4 OFFSET $5`

	var stats []MonthlyStat
	err := r.db.SelectContext(ctx, &stats, query, year, cats.IssuanceID, cats.CollectionID, limit, offset)
	return stats, err
}

// ExistingPlanKeys returns the subset of keys already present in the plans
// table. Used to reject duplicate (period, category) pairs before insert.
func (r *PlanRepository) ExistingPlanKeys(ctx context.Context, keys []PlanKey) ([]PlanKey, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	placeholders := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys)*2)
	for i, k := range keys {
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2))
		args = append(args, k.Period, k.CategoryID)
	}

	query := fmt.Sprintf(`
		SELECT period, category_id
		FROM plans
		WHERE (period, category_id) IN (%s)`, strings.Join(placeholders, ", "))

	var existing []PlanKey
	err := r.db.SelectContext(ctx, &existing, query, args...)
	return existing, err
}

// InsertPlans inserts a batch of plans in a single transaction. Either every
// row is inserted or none are.
func (r *PlanRepository) InsertPlans(ctx context.Context, plans []model.Plan) error {
	if len(plans) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO plans (period, sum, category_id) VALUES ($1, $2, $3)`
	for _, p := range plans {
		if _, err := tx.ExecContext(ctx, query, p.Period, p.Sum, p.CategoryID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
