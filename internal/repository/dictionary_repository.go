package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/vitayushchyk/data-factory-test-task/internal/model"
)

// DictionaryRepository provides access to the shared lookup table.
type DictionaryRepository struct {
	db *sqlx.DB
}

// NewDictionaryRepository creates a new DictionaryRepository with the given database connection.
func NewDictionaryRepository(db *sqlx.DB) *DictionaryRepository {
	return &DictionaryRepository{db: db}
}

// List returns every dictionary entry.
func (r *DictionaryRepository) List(ctx context.Context) ([]model.DictionaryEntry, error) {
	query := `SELECT id, name FROM dictionary ORDER BY id`

	var entries []model.DictionaryEntry
	err := r.db.SelectContext(ctx, &entries, query)
	return entries, err
}
