package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/vitayushchyk/data-factory-test-task/internal/logger"
	"github.com/vitayushchyk/data-factory-test-task/internal/model"
)

// CreditRepository provides data access for user credits and their payments.
type CreditRepository struct {
	db *sqlx.DB
}

// NewCreditRepository creates a new CreditRepository with the given database connection.
func NewCreditRepository(db *sqlx.DB) *CreditRepository {
	return &CreditRepository{db: db}
}

// CreditsByUser retrieves every credit owned by the user, oldest issuance first.
func (r *CreditRepository) CreditsByUser(ctx context.Context, userID int64) ([]model.Credit, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id must be a positive value, got %d", userID)
	}

	query := `
		SELECT
			id,
			user_id,
			issuance_date,
			return_date,
			actual_return_date,
			COALESCE(body, 0) AS body,
			COALESCE(percent, 0) AS percent
		FROM credits
		WHERE user_id = $1
		ORDER BY issuance_date, id`

	var credits []model.Credit
	if err := r.db.SelectContext(ctx, &credits, query, userID); err != nil {
		logger.FromContext(ctx).Error("fetching credits failed",
			"user_id", userID, "error", err)
		return nil, err
	}
	return credits, nil
}

// TotalPayments sums every payment made against the credit, regardless of type.
func (r *CreditRepository) TotalPayments(ctx context.Context, creditID int64) (decimal.Decimal, error) {
	if creditID <= 0 {
		return decimal.Zero, fmt.Errorf("credit id must be a positive value, got %d", creditID)
	}

	query := `SELECT COALESCE(SUM(sum), 0) FROM payments WHERE credit_id = $1`

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, creditID); err != nil {
		logger.FromContext(ctx).Error("fetching total payments failed",
			"credit_id", creditID, "error", err)
		return decimal.Zero, err
	}
	return total, nil
}

// PaymentsByType sums the credit's payments of one payment type.
func (r *CreditRepository) PaymentsByType(ctx context.Context, creditID, typeID int64) (decimal.Decimal, error) {
	if creditID <= 0 {
		return decimal.Zero, fmt.Errorf("credit id must be a positive value, got %d", creditID)
	}
	if typeID <= 0 {
		return decimal.Zero, fmt.Errorf("type id must be a positive value, got %d", typeID)
	}

	query := `SELECT COALESCE(SUM(sum), 0) FROM payments WHERE credit_id = $1 AND type_id = $2`

	var total decimal.Decimal
	if err := r.db.GetContext(ctx, &total, query, creditID, typeID); err != nil {
		logger.FromContext(ctx).Error("fetching payments by type failed",
			"credit_id", creditID, "type_id", typeID, "error", err)
		return decimal.Zero, err
	}
	return total, nil
}

// UserExists reports whether a user row with the given id is present.
func (r *CreditRepository) UserExists(ctx context.Context, userID int64) (bool, error) {
	if userID <= 0 {
		return false, fmt.Errorf("user id must be a positive value, got %d", userID)
	}

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID); err != nil {
		logger.FromContext(ctx).Error("checking user existence failed",
			"user_id", userID, "error", err)
		return false, err
	}
	return exists, nil
}
