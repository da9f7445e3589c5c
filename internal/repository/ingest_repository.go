package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vitayushchyk/data-factory-test-task/internal/model"
)

// IngestRepository persists bulk-loaded source rows. Inserts carry the ids
// from the source files; idempotency is handled by the caller diffing against
// ExistingIDs before inserting.
type IngestRepository struct {
	db *sqlx.DB
}

// NewIngestRepository creates a new IngestRepository with the given database connection.
func NewIngestRepository(db *sqlx.DB) *IngestRepository {
	return &IngestRepository{db: db}
}

// ingestTables is the closed set of tables the ingestion may touch.
var ingestTables = map[string]bool{
	"dictionary": true,
	"users":      true,
	"credits":    true,
	"payments":   true,
	"plans":      true,
}

// ExistingIDs returns the set of primary keys already present in the table.
func (r *IngestRepository) ExistingIDs(ctx context.Context, table string) (map[int64]struct{}, error) {
	if !ingestTables[table] {
		return nil, fmt.Errorf("table %q is not ingestable", table)
	}

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, fmt.Sprintf(`SELECT id FROM %s`, table)); err != nil {
		return nil, err
	}

	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// InsertDictionary inserts dictionary rows in one transaction.
func (r *IngestRepository) InsertDictionary(ctx context.Context, entries []model.DictionaryEntry) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `INSERT INTO dictionary (id, name) VALUES ($1, $2)`
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx, query, e.ID, e.Name); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertUsers inserts user rows in one transaction.
func (r *IngestRepository) InsertUsers(ctx context.Context, users []model.User) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `INSERT INTO users (id, login, registration_date) VALUES ($1, $2, $3)`
		for _, u := range users {
			if _, err := tx.ExecContext(ctx, query, u.ID, u.Login, u.RegistrationDate); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertCredits inserts credit rows in one transaction.
func (r *IngestRepository) InsertCredits(ctx context.Context, credits []model.Credit) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO credits (id, user_id, issuance_date, return_date, actual_return_date, body, percent)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		for _, c := range credits {
			if _, err := tx.ExecContext(ctx, query,
				c.ID, c.UserID, c.IssuanceDate, c.ReturnDate, c.ActualReturnDate, c.Body, c.Percent); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertPayments inserts payment rows in one transaction.
func (r *IngestRepository) InsertPayments(ctx context.Context, payments []model.Payment) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `INSERT INTO payments (id, sum, payment_date, credit_id, type_id) VALUES ($1, $2, $3, $4, $5)`
		for _, p := range payments {
			if _, err := tx.ExecContext(ctx, query, p.ID, p.Sum, p.PaymentDate, p.CreditID, p.TypeID); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertPlanRows inserts plan rows, ids included, in one transaction.
// Validated plan uploads go through PlanRepository.InsertPlans instead.
func (r *IngestRepository) InsertPlanRows(ctx context.Context, plans []model.Plan) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `INSERT INTO plans (id, period, sum, category_id) VALUES ($1, $2, $3, $4)`
		for _, p := range plans {
			if _, err := tx.ExecContext(ctx, query, p.ID, p.Period, p.Sum, p.CategoryID); err != nil {
				return err
			}
		}
		// Uploaded plans draw ids from the sequence, so it must stay ahead
		// of the ids carried in from the source files.
		_, err := tx.ExecContext(ctx, `SELECT setval('plans_id_seq', (SELECT MAX(id) FROM plans))`)
		return err
	})
}

func (r *IngestRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
