package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/vitayushchyk/data-factory-test-task/internal/apperror"
	"github.com/vitayushchyk/data-factory-test-task/internal/model"
	"github.com/vitayushchyk/data-factory-test-task/internal/repository"
	"github.com/vitayushchyk/data-factory-test-task/pkg/datetime"
)

// Required upload columns, named as in the source spreadsheets.
const (
	columnPeriod   = "місяць плану"
	columnCategory = "назва категорії плану"
	columnSum      = "сума"
)

// planRow is one uploaded CSV row. Fields stay strings so validation can
// report the offending spreadsheet rows instead of failing on first decode.
type planRow struct {
	Period   string `csv:"місяць плану"`
	Category string `csv:"назва категорії плану"`
	Sum      string `csv:"сума"`
}

// ImportResult reports a successful plan batch insert.
type ImportResult struct {
	Success  bool `json:"success"`
	Inserted int  `json:"inserted"`
}

// PlanWriter defines the plan persistence the import needs.
type PlanWriter interface {
	ExistingPlanKeys(ctx context.Context, keys []repository.PlanKey) ([]repository.PlanKey, error)
	InsertPlans(ctx context.Context, plans []model.Plan) error
}

// PlanImportService validates and inserts uploaded plan batches.
type PlanImportService struct {
	repo PlanWriter
	cats model.Categories
}

// NewPlanImportService creates a new PlanImportService with the given
// repository and resolved category ids.
func NewPlanImportService(repo PlanWriter, cats model.Categories) *PlanImportService {
	return &PlanImportService{repo: repo, cats: cats}
}

// LoadCSV parses an uploaded CSV of monthly plans, validates it, and inserts
// the batch all-or-nothing. Validation halts on the first violated rule and
// names the offending rows; the header is row 1. A batch overlapping any
// existing (period, category) pair is rejected as a conflict with zero rows
// inserted.
func (s *PlanImportService) LoadCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperror.BadRequest("unable to read uploaded file")
	}

	if err := validateColumns(data); err != nil {
		return nil, err
	}

	var rows []planRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, apperror.BadRequest(fmt.Sprintf("unable to parse CSV: %v", err))
	}
	if len(rows) == 0 {
		return nil, apperror.BadRequest("file contains no plan rows")
	}

	sums, err := validateSums(rows)
	if err != nil {
		return nil, err
	}
	periods, err := validatePeriods(rows)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := s.validateCategories(rows)
	if err != nil {
		return nil, err
	}

	keys := make([]repository.PlanKey, len(rows))
	for i := range rows {
		keys[i] = repository.PlanKey{Period: periods[i], CategoryID: categoryIDs[i]}
	}

	duplicates, err := s.repo.ExistingPlanKeys(ctx, keys)
	if err != nil {
		return nil, err
	}
	if len(duplicates) > 0 {
		described := make([]string, len(duplicates))
		for i, d := range duplicates {
			described[i] = fmt.Sprintf("(period=%s, category_id=%d)", d.Period.Format(datetime.DateFormat), d.CategoryID)
		}
		return nil, apperror.Conflict(fmt.Sprintf("found already existing plans for: %s", strings.Join(described, ", ")))
	}

	plans := make([]model.Plan, len(rows))
	for i := range rows {
		plans[i] = model.Plan{Period: periods[i], Sum: sums[i], CategoryID: categoryIDs[i]}
	}

	if err := s.repo.InsertPlans(ctx, plans); err != nil {
		return nil, err
	}

	return &ImportResult{Success: true, Inserted: len(plans)}, nil
}

// validateColumns checks the header row for the three required columns.
func validateColumns(data []byte) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return apperror.BadRequest("unable to read CSV header")
	}

	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[strings.ToLower(strings.TrimSpace(name))] = true
	}

	var missing []string
	for _, required := range []string{columnSum, columnPeriod, columnCategory} {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return apperror.BadRequest(fmt.Sprintf("required columns missing: %s", strings.Join(missing, ", ")))
	}
	return nil
}

func validateSums(rows []planRow) ([]decimal.Decimal, error) {
	sums := make([]decimal.Decimal, len(rows))
	var badRows []int
	for i, row := range rows {
		value := strings.TrimSpace(row.Sum)
		if value == "" {
			badRows = append(badRows, i+2)
			continue
		}
		sum, err := decimal.NewFromString(value)
		if err != nil {
			return nil, apperror.ValidationError(columnSum, fmt.Sprintf("column %q must be numeric", columnSum))
		}
		if sum.IsNegative() {
			badRows = append(badRows, i+2)
			continue
		}
		sums[i] = sum
	}
	if len(badRows) > 0 {
		return nil, apperror.ValidationError(columnSum,
			fmt.Sprintf("sum cannot be empty or negative, bad rows: %v", badRows))
	}
	return sums, nil
}

func validatePeriods(rows []planRow) ([]time.Time, error) {
	periods := make([]time.Time, len(rows))
	var badRows []int
	for i, row := range rows {
		period, err := time.Parse(datetime.DateFormat, strings.TrimSpace(row.Period))
		if err != nil {
			return nil, apperror.ValidationError(columnPeriod, "period column must be convertible to date")
		}
		if period.Day() != 1 {
			badRows = append(badRows, i+2)
			continue
		}
		periods[i] = period
	}
	if len(badRows) > 0 {
		return nil, apperror.ValidationError(columnPeriod,
			fmt.Sprintf("period must be the first day of a month, bad rows: %v", badRows))
	}
	return periods, nil
}

func (s *PlanImportService) validateCategories(rows []planRow) ([]int64, error) {
	allowed := map[int64]bool{s.cats.IssuanceID: true, s.cats.CollectionID: true}

	ids := make([]int64, len(rows))
	invalid := make(map[int64]bool)
	for i, row := range rows {
		id, err := strconv.ParseInt(strings.TrimSpace(row.Category), 10, 64)
		if err != nil {
			return nil, apperror.ValidationError(columnCategory,
				fmt.Sprintf("column %q must contain category ids", columnCategory))
		}
		if !allowed[id] {
			invalid[id] = true
			continue
		}
		ids[i] = id
	}
	if len(invalid) > 0 {
		seen := make([]string, 0, len(invalid))
		for id := range invalid {
			seen = append(seen, strconv.FormatInt(id, 10))
		}
		return nil, apperror.ValidationError(columnCategory,
			fmt.Sprintf("invalid categories: %s, must be %d or %d",
				strings.Join(seen, ", "), s.cats.IssuanceID, s.cats.CollectionID))
	}
	return ids, nil
}
