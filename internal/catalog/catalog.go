// Package catalog defines the product model and the data source port the
// storefront reads products through.
package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates a requested product does not exist upstream.
var ErrNotFound = errors.New("product not found")

// Rating summarizes customer feedback for a product.
type Rating struct {
	// Rate is the average score on a 0-5 scale.
	Rate float64 `json:"rate"`
	// Count is the number of ratings received.
	Count int `json:"count"`
}

// Product is an immutable catalog item. The storefront only ever holds
// read-only copies; the data source owns the canonical records.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

// Source is the catalog data source port. Pagination and view filtering
// are storefront responsibilities; the source only fetches and matches
// keywords.
type Source interface {
	// FetchAll returns the full product set.
	FetchAll(ctx context.Context) ([]Product, error)
	// FetchOne returns a single product or ErrNotFound.
	FetchOne(ctx context.Context, id string) (Product, error)
	// SearchByKeyword returns products matching the keyword. An empty
	// result is a valid outcome, not an error.
	SearchByKeyword(ctx context.Context, query string) ([]Product, error)
}
