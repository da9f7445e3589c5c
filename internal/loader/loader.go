// Package loader imports the tab-separated source tables into the database.
// Imports are idempotent: rows whose primary key already exists are skipped.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/vitayushchyk/data-factory-test-task/internal/logger"
	"github.com/vitayushchyk/data-factory-test-task/internal/model"
)

// sourceDateFormat is the date layout used in the source files (DD.MM.YYYY).
const sourceDateFormat = "02.01.2006"

// Store defines the persistence the loader needs.
type Store interface {
	ExistingIDs(ctx context.Context, table string) (map[int64]struct{}, error)
	InsertDictionary(ctx context.Context, entries []model.DictionaryEntry) error
	InsertUsers(ctx context.Context, users []model.User) error
	InsertCredits(ctx context.Context, credits []model.Credit) error
	InsertPayments(ctx context.Context, payments []model.Payment) error
	InsertPlanRows(ctx context.Context, plans []model.Plan) error
}

// Loader reads the five source CSV files from a data directory.
type Loader struct {
	store   Store
	dataDir string
}

// New creates a Loader reading from dataDir.
func New(store Store, dataDir string) *Loader {
	return &Loader{store: store, dataDir: dataDir}
}

// Raw row shapes of the source files.

type dictionaryRow struct {
	ID   int64  `csv:"id"`
	Name string `csv:"name"`
}

type userRow struct {
	ID               int64  `csv:"id"`
	Login            string `csv:"login"`
	RegistrationDate string `csv:"registration_date"`
}

type creditRow struct {
	ID               int64  `csv:"id"`
	UserID           int64  `csv:"user_id"`
	IssuanceDate     string `csv:"issuance_date"`
	ReturnDate       string `csv:"return_date"`
	ActualReturnDate string `csv:"actual_return_date"`
	Body             string `csv:"body"`
	Percent          string `csv:"percent"`
}

type paymentRow struct {
	ID          int64  `csv:"id"`
	Sum         string `csv:"sum"`
	PaymentDate string `csv:"payment_date"`
	CreditID    int64  `csv:"credit_id"`
	TypeID      int64  `csv:"type_id"`
}

type planRow struct {
	ID         int64  `csv:"id"`
	Period     string `csv:"period"`
	Sum        string `csv:"sum"`
	CategoryID int64  `csv:"category_id"`
}

// decodeTSV decodes a tab-separated file with a header row into out.
func decodeTSV(r io.Reader, out interface{}) error {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.TrimLeadingSpace = true
	return gocsv.UnmarshalCSV(reader, out)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(sourceDateFormat, s)
}

// parseOptionalDate returns nil for an empty value.
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseSum(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// ImportAll loads every source file, skipping rows whose id already exists.
// Each entity type is inserted as one atomic batch; a failure aborts the
// remaining entities.
func (l *Loader) ImportAll(ctx context.Context) error {
	if err := l.importDictionary(ctx); err != nil {
		return fmt.Errorf("importing dictionary: %w", err)
	}
	if err := l.importUsers(ctx); err != nil {
		return fmt.Errorf("importing users: %w", err)
	}
	if err := l.importPlans(ctx); err != nil {
		return fmt.Errorf("importing plans: %w", err)
	}
	if err := l.importCredits(ctx); err != nil {
		return fmt.Errorf("importing credits: %w", err)
	}
	if err := l.importPayments(ctx); err != nil {
		return fmt.Errorf("importing payments: %w", err)
	}
	return nil
}

func (l *Loader) openSource(name string) (*os.File, error) {
	return os.Open(filepath.Join(l.dataDir, name))
}

func (l *Loader) importDictionary(ctx context.Context) error {
	f, err := l.openSource("dictionary.csv")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var rows []dictionaryRow
	if err := decodeTSV(f, &rows); err != nil {
		return err
	}

	existing, err := l.store.ExistingIDs(ctx, "dictionary")
	if err != nil {
		return err
	}

	var entries []model.DictionaryEntry
	for _, row := range rows {
		if _, ok := existing[row.ID]; ok {
			continue
		}
		entries = append(entries, model.DictionaryEntry{ID: row.ID, Name: row.Name})
	}

	if len(entries) == 0 {
		logger.Warn("dictionary already up-to-date")
		return nil
	}
	if err := l.store.InsertDictionary(ctx, entries); err != nil {
		return err
	}
	logger.Info("imported dictionary entries", "count", len(entries))
	return nil
}

func (l *Loader) importUsers(ctx context.Context) error {
	f, err := l.openSource("users.csv")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var rows []userRow
	if err := decodeTSV(f, &rows); err != nil {
		return err
	}

	existing, err := l.store.ExistingIDs(ctx, "users")
	if err != nil {
		return err
	}

	var users []model.User
	for _, row := range rows {
		if _, ok := existing[row.ID]; ok {
			continue
		}
		registered, err := parseDate(row.RegistrationDate)
		if err != nil {
			return fmt.Errorf("user %d: %w", row.ID, err)
		}
		users = append(users, model.User{ID: row.ID, Login: row.Login, RegistrationDate: registered})
	}

	if len(users) == 0 {
		logger.Warn("users already up-to-date")
		return nil
	}
	if err := l.store.InsertUsers(ctx, users); err != nil {
		return err
	}
	logger.Info("imported users", "count", len(users))
	return nil
}

func (l *Loader) importPlans(ctx context.Context) error {
	f, err := l.openSource("plans.csv")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var rows []planRow
	if err := decodeTSV(f, &rows); err != nil {
		return err
	}

	existing, err := l.store.ExistingIDs(ctx, "plans")
	if err != nil {
		return err
	}

	var plans []model.Plan
	for _, row := range rows {
		if _, ok := existing[row.ID]; ok {
			continue
		}
		period, err := parseDate(row.Period)
		if err != nil {
			return fmt.Errorf("plan %d: %w", row.ID, err)
		}
		sum, err := parseSum(row.Sum)
		if err != nil {
			return fmt.Errorf("plan %d: %w", row.ID, err)
		}
		plans = append(plans, model.Plan{ID: row.ID, Period: period, Sum: sum, CategoryID: row.CategoryID})
	}

	if len(plans) == 0 {
		logger.Warn("plans already up-to-date")
		return nil
	}
	if err := l.store.InsertPlanRows(ctx, plans); err != nil {
		return err
	}
	logger.Info("imported plans", "count", len(plans))
	return nil
}

func (l *Loader) importCredits(ctx context.Context) error {
	f, err := l.openSource("credits.csv")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var rows []creditRow
	if err := decodeTSV(f, &rows); err != nil {
		return err
	}

	existing, err := l.store.ExistingIDs(ctx, "credits")
	if err != nil {
		return err
	}

	var credits []model.Credit
	for _, row := range rows {
		if _, ok := existing[row.ID]; ok {
			continue
		}
		issued, err := parseDate(row.IssuanceDate)
		if err != nil {
			return fmt.Errorf("credit %d: %w", row.ID, err)
		}
		returnDate, err := parseOptionalDate(row.ReturnDate)
		if err != nil {
			return fmt.Errorf("credit %d: %w", row.ID, err)
		}
		actualReturn, err := parseOptionalDate(row.ActualReturnDate)
		if err != nil {
			return fmt.Errorf("credit %d: %w", row.ID, err)
		}
		body, err := parseSum(row.Body)
		if err != nil {
			return fmt.Errorf("credit %d: %w", row.ID, err)
		}
		percent, err := parseSum(row.Percent)
		if err != nil {
			return fmt.Errorf("credit %d: %w", row.ID, err)
		}
		credits = append(credits, model.Credit{
			ID:               row.ID,
			UserID:           row.UserID,
			IssuanceDate:     issued,
			ReturnDate:       returnDate,
			ActualReturnDate: actualReturn,
			Body:             body,
			Percent:          percent,
		})
	}

	if len(credits) == 0 {
		logger.Warn("credits already up-to-date")
		return nil
	}
	if err := l.store.InsertCredits(ctx, credits); err != nil {
		return err
	}
	logger.Info("imported credits", "count", len(credits))
	return nil
}

func (l *Loader) importPayments(ctx context.Context) error {
	f, err := l.openSource("payments.csv")
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var rows []paymentRow
	if err := decodeTSV(f, &rows); err != nil {
		return err
	}

	existing, err := l.store.ExistingIDs(ctx, "payments")
	if err != nil {
		return err
	}

	var payments []model.Payment
	for _, row := range rows {
		if _, ok := existing[row.ID]; ok {
			continue
		}
		paid, err := parseDate(row.PaymentDate)
		if err != nil {
			return fmt.Errorf("payment %d: %w", row.ID, err)
		}
		sum, err := parseSum(row.Sum)
		if err != nil {
			return fmt.Errorf("payment %d: %w", row.ID, err)
		}
		payments = append(payments, model.Payment{
			ID:          row.ID,
			Sum:         sum,
			PaymentDate: paid,
			CreditID:    row.CreditID,
			TypeID:      row.TypeID,
		})
	}

	if len(payments) == 0 {
		logger.Warn("payments already up-to-date")
		return nil
	}
	if err := l.store.InsertPayments(ctx, payments); err != nil {
		return err
	}
	logger.Info("imported payments", "count", len(payments))
	return nil
}
