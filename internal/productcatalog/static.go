package productcatalog

import (
	"context"

	"github.com/subhub/order-service/internal/orders/ports"
)

// StaticCatalog serves products from a fixed map. Useful for local dev
// and handler tests before pointing at a real product service.
type StaticCatalog struct {
	products map[string]ports.Product
}

// NewStaticCatalog returns a catalog backed by the given products,
// keyed by product id.
func NewStaticCatalog(products map[string]ports.Product) *StaticCatalog {
	if products == nil {
		products = make(map[string]ports.Product)
	}
	return &StaticCatalog{products: products}
}

func (c *StaticCatalog) Resolve(_ context.Context, productID string) (*ports.Product, error) {
	product, ok := c.products[productID]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	copy := product
	return &copy, nil
}
