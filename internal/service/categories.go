package service

import (
	"context"
	"fmt"

	"github.com/vitayushchyk/data-factory-test-task/internal/model"
)

// DictionaryReader defines the lookup-table access the resolver needs.
type DictionaryReader interface {
	List(ctx context.Context) ([]model.DictionaryEntry, error)
}

// ResolveCategories maps the known dictionary display names to their ids,
// once, at startup. Query code receives the resolved ids instead of
// re-parsing display strings or hard-coding row ids, so a reseeded
// dictionary cannot silently break the aggregation.
//
// The issuance and collection categories must exist; the plan queries are
// meaningless without them. The payment-type entries (body, interest) may be
// absent here and are checked again where they are actually needed.
func ResolveCategories(ctx context.Context, dict DictionaryReader) (model.Categories, error) {
	entries, err := dict.List(ctx)
	if err != nil {
		return model.Categories{}, fmt.Errorf("listing dictionary: %w", err)
	}

	var cats model.Categories
	for _, e := range entries {
		switch model.KindOfName(e.Name) {
		case model.CategoryIssuance:
			cats.IssuanceID = e.ID
		case model.CategoryCollection:
			cats.CollectionID = e.ID
		case model.CategoryBody:
			cats.BodyID = e.ID
		case model.CategoryInterest:
			cats.InterestID = e.ID
		}
	}

	if cats.IssuanceID == 0 {
		return cats, fmt.Errorf("dictionary has no %q category", model.CategoryNameIssuance)
	}
	if cats.CollectionID == 0 {
		return cats, fmt.Errorf("dictionary has no %q category", model.CategoryNameCollection)
	}

	return cats, nil
}
