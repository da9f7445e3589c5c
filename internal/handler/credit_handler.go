package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vitayushchyk/data-factory-test-task/internal/service"
)

// CreditServiceInterface defines the per-user credit status contract.
type CreditServiceInterface interface {
	GetUserCredits(ctx context.Context, userID int64) (*service.UserCredits, error)
}

// CreditHandler handles HTTP requests for user credit status.
type CreditHandler struct {
	creditService CreditServiceInterface
}

// NewCreditHandler creates a new CreditHandler with the given service.
func NewCreditHandler(creditService CreditServiceInterface) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// GetUserCredits godoc
// @Summary Get credit status for a user
// @Description Returns the status of every credit owned by the user: closed credits report total payments, open ones report days overdue and the body/interest payment split
// @Tags credits
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} service.UserCredits
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /user_credits/{user_id} [get]
func (h *CreditHandler) GetUserCredits(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil || userID <= 0 {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid user_id parameter: must be a positive number",
			Field: "user_id",
		})
		return
	}

	result, err := h.creditService.GetUserCredits(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
