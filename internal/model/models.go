package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID               int64     `db:"id" json:"id"`
	Login            string    `db:"login" json:"login"`
	RegistrationDate time.Time `db:"registration_date" json:"registration_date"`
}

// DictionaryEntry is a row of the shared lookup table. Plan categories and
// payment types both reference it by id and are distinguished only by name.
type DictionaryEntry struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Credit struct {
	ID               int64           `db:"id" json:"id"`
	UserID           int64           `db:"user_id" json:"user_id"`
	IssuanceDate     time.Time       `db:"issuance_date" json:"issuance_date"`
	ReturnDate       *time.Time      `db:"return_date" json:"return_date,omitempty"`
	ActualReturnDate *time.Time      `db:"actual_return_date" json:"actual_return_date,omitempty"`
	Body             decimal.Decimal `db:"body" json:"body"`
	Percent          decimal.Decimal `db:"percent" json:"percent"`
}

// Closed reports whether the credit has a recorded actual return date.
func (c *Credit) Closed() bool {
	return c.ActualReturnDate != nil
}

type Payment struct {
	ID          int64           `db:"id" json:"id"`
	Sum         decimal.Decimal `db:"sum" json:"sum"`
	PaymentDate time.Time       `db:"payment_date" json:"payment_date"`
	CreditID    int64           `db:"credit_id" json:"credit_id"`
	TypeID      int64           `db:"type_id" json:"type_id"`
}

// Plan is a target monetary sum for a category in a given month.
// Period is always the first calendar day of that month.
type Plan struct {
	ID         int64           `db:"id" json:"id"`
	Period     time.Time       `db:"period" json:"period"`
	Sum        decimal.Decimal `db:"sum" json:"sum"`
	CategoryID int64           `db:"category_id" json:"category_id"`
}

// CategoryKind classifies a dictionary entry once its display name has been
// resolved, so query code never branches on raw strings.
type CategoryKind string

const (
	CategoryIssuance   CategoryKind = "issuance"
	CategoryCollection CategoryKind = "collection"
	CategoryBody       CategoryKind = "body"
	CategoryInterest   CategoryKind = "interest"
	CategoryUnknown    CategoryKind = "unknown"
)

// Display names used in the source dictionary.
const (
	CategoryNameIssuance   = "видача"
	CategoryNameCollection = "збір"
	CategoryNameBody       = "тіло"
	CategoryNameInterest   = "відсотки"
)

// Categories holds the dictionary ids of the known category names, resolved
// once at startup and injected wherever an id used to be hard-coded.
type Categories struct {
	IssuanceID   int64
	CollectionID int64
	BodyID       int64
	InterestID   int64
}

// KindOfName maps a dictionary display name to its kind.
func KindOfName(name string) CategoryKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case CategoryNameIssuance:
		return CategoryIssuance
	case CategoryNameCollection:
		return CategoryCollection
	case CategoryNameBody:
		return CategoryBody
	case CategoryNameInterest:
		return CategoryInterest
	default:
		return CategoryUnknown
	}
}
