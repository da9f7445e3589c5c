package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/vitayushchyk/data-factory-test-task/internal/service"
	"github.com/vitayushchyk/data-factory-test-task/pkg/datetime"
)

const (
	defaultYearLimit = 12
	maxYearLimit     = 100
	maxUploadBytes   = 10 << 20
)

// PlanPerformanceServiceInterface defines the single-period performance contract.
type PlanPerformanceServiceInterface interface {
	GetPerformance(ctx context.Context, targetDate time.Time) ([]service.PlanPerformance, error)
}

// YearPerformanceServiceInterface defines the annual performance contract.
type YearPerformanceServiceInterface interface {
	GetYearPerformance(ctx context.Context, year, limit, offset int) ([]service.MonthPerformance, error)
}

// PlanImportServiceInterface defines the plan upload contract.
type PlanImportServiceInterface interface {
	LoadCSV(ctx context.Context, r io.Reader) (*service.ImportResult, error)
}

// PlanHandler handles HTTP requests for plan performance and plan uploads.
type PlanHandler struct {
	performance     PlanPerformanceServiceInterface
	yearPerformance YearPerformanceServiceInterface
	importer        PlanImportServiceInterface
}

// NewPlanHandler creates a new PlanHandler with the given services.
func NewPlanHandler(
	performance PlanPerformanceServiceInterface,
	yearPerformance YearPerformanceServiceInterface,
	importer PlanImportServiceInterface,
) *PlanHandler {
	return &PlanHandler{
		performance:     performance,
		yearPerformance: yearPerformance,
		importer:        importer,
	}
}

// GetPlansPerformance godoc
// @Summary Get plan performance for a month
// @Description Returns plan-vs-actual records for the month of target_date, with actuals accumulated up to that date
// @Tags plans
// @Produce json
// @Param target_date query string true "Target date (YYYY-MM-DD)"
// @Success 200 {array} service.PlanPerformance
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /plans_performance [get]
func (h *PlanHandler) GetPlansPerformance(w http.ResponseWriter, r *http.Request) {
	targetStr := r.URL.Query().Get("target_date")
	if targetStr == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "target_date parameter is required",
			Field: "target_date",
		})
		return
	}

	target, err := datetime.ParseDate(targetStr)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid target_date parameter: must be YYYY-MM-DD",
			Field: "target_date",
		})
		return
	}

	records, err := h.performance.GetPerformance(r.Context(), target.Time)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// GetYearPerformance godoc
// @Summary Get monthly performance table for a year
// @Description Returns per-month issuance and collection statistics with plan attainment and share-of-year percentages
// @Tags plans
// @Produce json
// @Param target_year query int true "Target year (e.g., 2024)"
// @Param limit query int false "Maximum months returned (1-100, default 12)"
// @Param offset query int false "Months to skip (default 0)"
// @Success 200 {array} service.MonthPerformance
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /year_performance [get]
func (h *PlanHandler) GetYearPerformance(w http.ResponseWriter, r *http.Request) {
	yearStr := r.URL.Query().Get("target_year")
	if yearStr == "" {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "target_year parameter is required",
			Field: "target_year",
		})
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid target_year parameter: must be a number",
			Field: "target_year",
		})
		return
	}

	if year < 1900 || year > 2100 {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid target_year parameter: must be between 1900 and 2100",
			Field: "target_year",
		})
		return
	}

	limit := defaultYearLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxYearLimit {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "invalid limit parameter: must be between 1 and 100",
				Field: "limit",
			})
			return
		}
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{
				Error: "invalid offset parameter: must be a non-negative number",
				Field: "offset",
			})
			return
		}
	}

	records, err := h.yearPerformance.GetYearPerformance(r.Context(), year, limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// InsertPlans godoc
// @Summary Upload a batch of monthly plans
// @Description Accepts a CSV file of monthly plans and inserts the batch all-or-nothing after validation
// @Tags plans
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file with plan rows"
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /plans_insert [post]
func (h *PlanHandler) InsertPlans(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "request must be multipart form data with a file field")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file field in upload")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.importer.LoadCSV(r.Context(), file)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
