package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitayushchyk/data-factory-test-task/internal/apperror"
	"github.com/vitayushchyk/data-factory-test-task/internal/model"
	"github.com/vitayushchyk/data-factory-test-task/pkg/datetime"
)

// CreditInfo is the status of one credit. A closed credit reports its total
// payments; an open one reports days overdue and the body/interest payment
// split. Unused fields are omitted from the response.
type CreditInfo struct {
	CreditID         int64            `json:"credit_id"`
	IssuanceDate     datetime.Date    `json:"issuance_date"`
	Closed           bool             `json:"closed"`
	ActualReturnDate *datetime.Date   `json:"actual_return_date,omitempty"`
	Body             decimal.Decimal  `json:"body"`
	Percent          decimal.Decimal  `json:"percent"`
	TotalPayments    *decimal.Decimal `json:"total_payments,omitempty"`
	ReturnDate       *datetime.Date   `json:"return_date,omitempty"`
	DaysOverdue      *int             `json:"days_overdue,omitempty"`
	BodyPayments     *decimal.Decimal `json:"body_payments,omitempty"`
	PercentPayments  *decimal.Decimal `json:"percent_payments,omitempty"`
}

// UserCredits is the per-user credit status response.
type UserCredits struct {
	UserID  int64        `json:"user_id"`
	Credits []CreditInfo `json:"credits"`
}

// CreditRepositoryInterface defines the data access the credit status needs.
type CreditRepositoryInterface interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
	CreditsByUser(ctx context.Context, userID int64) ([]model.Credit, error)
	TotalPayments(ctx context.Context, creditID int64) (decimal.Decimal, error)
	PaymentsByType(ctx context.Context, creditID, typeID int64) (decimal.Decimal, error)
}

// CreditService reports per-user credit status.
type CreditService struct {
	repo CreditRepositoryInterface
	cats model.Categories
	now  func() time.Time
}

// NewCreditService creates a new CreditService with the given repository and
// resolved category ids.
func NewCreditService(repo CreditRepositoryInterface, cats model.Categories) *CreditService {
	return &CreditService{repo: repo, cats: cats, now: time.Now}
}

// GetUserCredits returns the status of every credit owned by the user.
// An unknown user is a not-found fault, not an empty list.
func (s *CreditService) GetUserCredits(ctx context.Context, userID int64) (*UserCredits, error) {
	if userID <= 0 {
		return nil, apperror.ValidationError("user_id", "user id must be a positive value")
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.NotFound("user")
	}

	if s.cats.BodyID == 0 || s.cats.InterestID == 0 {
		return nil, apperror.Internal(fmt.Errorf(
			"payment types %q or %q not found in dictionary",
			model.CategoryNameBody, model.CategoryNameInterest))
	}

	credits, err := s.repo.CreditsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	infos := make([]CreditInfo, 0, len(credits))
	for i := range credits {
		info, err := s.creditInfo(ctx, &credits[i])
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	return &UserCredits{UserID: userID, Credits: infos}, nil
}

func (s *CreditService) creditInfo(ctx context.Context, credit *model.Credit) (CreditInfo, error) {
	info := CreditInfo{
		CreditID:     credit.ID,
		IssuanceDate: datetime.FromTime(credit.IssuanceDate),
		Closed:       credit.Closed(),
		Body:         credit.Body,
		Percent:      credit.Percent,
	}

	if credit.Closed() {
		total, err := s.repo.TotalPayments(ctx, credit.ID)
		if err != nil {
			return CreditInfo{}, err
		}
		actualReturn := datetime.FromTime(*credit.ActualReturnDate)
		info.ActualReturnDate = &actualReturn
		info.TotalPayments = &total
		return info, nil
	}

	daysOverdue := 0
	if credit.ReturnDate != nil {
		returnDate := datetime.FromTime(*credit.ReturnDate)
		info.ReturnDate = &returnDate
		if today := datetime.FromTime(s.now()); today.After(returnDate.Time) {
			daysOverdue = datetime.DaysBetween(returnDate.Time, today.Time)
		}
	}
	info.DaysOverdue = &daysOverdue

	bodyPayments, err := s.repo.PaymentsByType(ctx, credit.ID, s.cats.BodyID)
	if err != nil {
		return CreditInfo{}, err
	}
	percentPayments, err := s.repo.PaymentsByType(ctx, credit.ID, s.cats.InterestID)
	if err != nil {
		return CreditInfo{}, err
	}
	info.BodyPayments = &bodyPayments
	info.PercentPayments = &percentPayments

	return info, nil
}
