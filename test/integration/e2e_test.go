//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vitayushchyk/data-factory-test-task/internal/db"
	"github.com/vitayushchyk/data-factory-test-task/internal/handler"
	"github.com/vitayushchyk/data-factory-test-task/internal/model"
	"github.com/vitayushchyk/data-factory-test-task/internal/repository"
	"github.com/vitayushchyk/data-factory-test-task/internal/service"
)

// TestEnv holds the test environment
type TestEnv struct {
	DB        *sqlx.DB
	Container testcontainers.Container
	Server    *httptest.Server
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// SetupTestEnv starts a PostgreSQL container, migrates the schema, seeds the
// source tables and wires the full HTTP stack against it.
func SetupTestEnv(t *testing.T) *TestEnv {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := db.Connect(connStr)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	seed(t, conn)

	dictRepo := repository.NewDictionaryRepository(conn)
	cats, err := service.ResolveCategories(ctx, dictRepo)
	require.NoError(t, err)

	planRepo := repository.NewPlanRepository(conn)
	creditRepo := repository.NewCreditRepository(conn)

	performanceService := service.NewPlanPerformanceService(planRepo)
	yearService := service.NewYearPerformanceService(planRepo, cats)
	importService := service.NewPlanImportService(planRepo, cats)
	creditService := service.NewCreditService(creditRepo, cats)

	planHandler := handler.NewPlanHandler(performanceService, yearService, importService)
	creditHandler := handler.NewCreditHandler(creditService)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/plans_performance", planHandler.GetPlansPerformance)
	r.Get("/year_performance", planHandler.GetYearPerformance)
	r.Post("/plans_insert", planHandler.InsertPlans)
	r.Get("/user_credits/{user_id}", creditHandler.GetUserCredits)

	server := httptest.NewServer(r)

	return &TestEnv{DB: conn, Container: pgContainer, Server: server}
}

// seed loads a small but complete dataset through the ingestion repository.
func seed(t *testing.T, conn *sqlx.DB) {
	ctx := context.Background()
	store := repository.NewIngestRepository(conn)

	require.NoError(t, store.InsertDictionary(ctx, []model.DictionaryEntry{
		{ID: 1, Name: "тіло"},
		{ID: 2, Name: "відсотки"},
		{ID: 3, Name: "видача"},
		{ID: 4, Name: "збір"},
	}))

	require.NoError(t, store.InsertUsers(ctx, []model.User{
		{ID: 1, Login: "alice", RegistrationDate: date(2023, time.May, 2)},
		{ID: 2, Login: "bob", RegistrationDate: date(2023, time.June, 9)},
	}))

	require.NoError(t, store.InsertPlanRows(ctx, []model.Plan{
		{ID: 1, Period: date(2024, time.March, 1), Sum: decimal.NewFromInt(10000), CategoryID: 3},
		{ID: 2, Period: date(2024, time.March, 1), Sum: decimal.NewFromInt(2000), CategoryID: 4},
	}))

	require.NoError(t, store.InsertCredits(ctx, []model.Credit{
		{
			ID:               1,
			UserID:           1,
			IssuanceDate:     date(2024, time.March, 5),
			ReturnDate:       ptr(date(2024, time.June, 5)),
			ActualReturnDate: ptr(date(2024, time.May, 20)),
			Body:             decimal.NewFromInt(5000),
			Percent:          decimal.NewFromInt(500),
		},
		{
			ID:           2,
			UserID:       1,
			IssuanceDate: date(2024, time.March, 10),
			ReturnDate:   ptr(date(2024, time.April, 10)),
			Body:         decimal.NewFromInt(3000),
			Percent:      decimal.NewFromInt(300),
		},
	}))

	require.NoError(t, store.InsertPayments(ctx, []model.Payment{
		{ID: 1, Sum: decimal.NewFromInt(5500), PaymentDate: date(2024, time.May, 20), CreditID: 1, TypeID: 1},
		{ID: 2, Sum: decimal.NewFromInt(1000), PaymentDate: date(2024, time.March, 15), CreditID: 2, TypeID: 1},
		{ID: 3, Sum: decimal.NewFromInt(100), PaymentDate: date(2024, time.March, 20), CreditID: 2, TypeID: 2},
	}))
}

// Cleanup tears down the test environment
func (e *TestEnv) Cleanup(t *testing.T) {
	e.Server.Close()
	e.DB.Close()
	if err := e.Container.Terminate(context.Background()); err != nil {
		t.Logf("Failed to terminate container: %v", err)
	}
}

func (e *TestEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()

	resp, err := http.Get(e.Server.URL + path)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestE2E_PlansPerformance(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup(t)

	resp := env.get(t, "/plans_performance?target_date=2024-03-31")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	records := decodeBody[[]map[string]any](t, resp)
	require.Len(t, records, 2)

	byCategory := map[string]map[string]any{}
	for _, rec := range records {
		byCategory[rec["category"].(string)] = rec
	}

	// Issuance actuals: credits issued in March, body 5000 + 3000 = 8000 of 10000 planned.
	issuance := byCategory["видача"]
	require.NotNil(t, issuance)
	assert.Equal(t, 80.0, issuance["percent"])

	// Collection actuals: March payments 1000 + 100 = 1100 of 2000 planned.
	collection := byCategory["збір"]
	require.NotNil(t, collection)
	assert.Equal(t, 55.0, collection["percent"])
}

func TestE2E_PlansPerformance_MidMonthClamp(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup(t)

	// Only the March 5 credit falls inside the window ending March 7.
	resp := env.get(t, "/plans_performance?target_date=2024-03-07")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	records := decodeBody[[]map[string]any](t, resp)
	require.Len(t, records, 2)

	for _, rec := range records {
		if rec["category"] == "видача" {
			assert.Equal(t, 50.0, rec["percent"])
		}
	}
}

func TestE2E_ActualSumsAddUpAcrossSubWindows(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup(t)

	ctx := context.Background()
	repo := repository.NewPlanRepository(env.DB)

	// Splitting a window at any day must not lose or double-count actuals:
	// the two halves sum to the whole. The seed puts activity on both sides
	// of March 9 (credits on the 5th and 10th, payments on the 15th and 20th).
	for _, kind := range []model.CategoryKind{model.CategoryIssuance, model.CategoryCollection} {
		full, err := repo.ActualSumForCategory(ctx, kind, date(2024, time.March, 1), date(2024, time.March, 31))
		require.NoError(t, err)

		first, err := repo.ActualSumForCategory(ctx, kind, date(2024, time.March, 1), date(2024, time.March, 9))
		require.NoError(t, err)
		second, err := repo.ActualSumForCategory(ctx, kind, date(2024, time.March, 10), date(2024, time.March, 31))
		require.NoError(t, err)

		assert.True(t, first.Add(second).Equal(full),
			"%s: %s + %s != %s", kind, first, second, full)
		assert.False(t, full.IsZero())
	}

	// The full-month sum is exactly what the endpoint reports as fact_sum.
	resp := env.get(t, "/plans_performance?target_date=2024-03-31")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	records := decodeBody[[]map[string]any](t, resp)
	fullIssuance, err := repo.ActualSumForCategory(ctx, model.CategoryIssuance,
		date(2024, time.March, 1), date(2024, time.March, 31))
	require.NoError(t, err)
	for _, rec := range records {
		if rec["category"] == "видача" {
			// Decimal sums travel as quoted strings on the wire.
			assert.Equal(t, fullIssuance.String(), rec["fact_sum"])
		}
	}
}

func TestE2E_YearPerformance(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup(t)

	resp := env.get(t, "/year_performance?target_year=2024")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	records := decodeBody[[]map[string]any](t, resp)

	// Only months with issued credits appear; the seed issues credits in
	// March alone.
	require.Len(t, records, 1)
	first := records[0]
	assert.Equal(t, 3.0, first["month"])
	assert.Equal(t, 2024.0, first["year"])
	assert.Equal(t, 2.0, first["issuance_count"])
	// Plan attainment here is planned-over-actual: 10000 / 8000 * 100.
	assert.Equal(t, 125.0, first["pct_issuance_plan"])
}

func TestE2E_UserCredits(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup(t)

	resp := env.get(t, "/user_credits/1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]any](t, resp)
	credits := body["credits"].([]any)
	require.Len(t, credits, 2)

	first := credits[0].(map[string]any)
	assert.Equal(t, true, first["closed"])
	assert.Equal(t, "2024-05-20", first["actual_return_date"])

	second := credits[1].(map[string]any)
	assert.Equal(t, false, second["closed"])
	_, hasOverdue := second["days_overdue"]
	assert.True(t, hasOverdue)
}

func TestE2E_UserCredits_NotFound(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup(t)

	resp := env.get(t, "/user_credits/999")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestE2E_PlanUpload(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup(t)

	upload := func(content string) *http.Response {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("file", "plans.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		resp, err := http.Post(env.Server.URL+"/plans_insert", writer.FormDataContentType(), &buf)
		require.NoError(t, err)
		return resp
	}

	// A fresh month inserts cleanly.
	resp := upload("місяць плану,назва категорії плану,сума\n2024-07-01,3,15000\n2024-07-01,4,4000\n")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeBody[map[string]any](t, resp)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, 2.0, result["inserted"])

	// Re-uploading the same keys is rejected with nothing inserted.
	resp = upload("місяць плану,назва категорії плану,сума\n2024-07-01,3,15000\n")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int
	require.NoError(t, env.DB.Get(&count, `SELECT COUNT(*) FROM plans WHERE period = '2024-07-01'`))
	assert.Equal(t, 2, count)
}
