// Package dto converts between the generated API types and the quotes domain.
package dto

import (
	"quote_backend/internal/api"
	"quote_backend/internal/feature/quotes/domain/entity"
)

// ToEntity converts the wire form into the domain entity.
func ToEntity(q api.Quote) entity.Quote {
	return entity.Quote{Category: q.Category, Text: q.Text}
}

// ToEntities converts a request's quotes, keeping their order.
func ToEntities(quotes []api.Quote) []entity.Quote {
	out := make([]entity.Quote, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, ToEntity(q))
	}
	return out
}

// FromEntities converts domain quotes for a response. The result is never nil.
func FromEntities(quotes []entity.Quote) []api.Quote {
	out := make([]api.Quote, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, api.Quote{Category: q.Category, Text: q.Text})
	}
	return out
}
