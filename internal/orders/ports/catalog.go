package ports

import (
	"context"
	"errors"
)

// Product is the catalog's view of a sellable subscription. Prices are
// optional; either or both may be absent.
type Product struct {
	ID              string   `json:"id"`
	PublicationName string   `json:"publication_name"`
	PricePerMonth   *float64 `json:"price_per_month"`
	PricePerYear    *float64 `json:"price_per_year"`
}

// UnitPrice picks the monthly price when present, else the yearly price,
// else zero. A product with neither price yields a zero-priced order;
// that is the inherited behavior, kept deliberately.
func (p Product) UnitPrice() float64 {
	if p.PricePerMonth != nil {
		return *p.PricePerMonth
	}
	if p.PricePerYear != nil {
		return *p.PricePerYear
	}
	return 0
}

// ProductCatalog resolves a product identifier to its current pricing.
// The not-found/unavailable split decides whether a creation failure is
// the caller's fault (400) or a dependency fault (500).
type ProductCatalog interface {
	Resolve(ctx context.Context, productID string) (*Product, error)
}

var (
	// ErrProductNotFound means the catalog reports no such product.
	ErrProductNotFound = errors.New("product not found")

	// ErrCatalogUnavailable covers every other catalog failure:
	// network errors, timeouts, unexpected status codes.
	ErrCatalogUnavailable = errors.New("product catalog unavailable")
)
