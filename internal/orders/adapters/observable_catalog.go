package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/subhub/order-service/internal/orders/ports"
	"github.com/subhub/order-service/internal/productcatalog"
	"github.com/subhub/order-service/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// ObservableCatalog wraps a ProductCatalog with spans and lookup
// metrics. A not-found is recorded as its own outcome since it is a
// client error, not a dependency fault.
type ObservableCatalog struct {
	catalog ports.ProductCatalog
	metrics *productcatalog.Metrics
}

func NewObservableCatalog(catalog ports.ProductCatalog, metrics *productcatalog.Metrics) *ObservableCatalog {
	return &ObservableCatalog{
		catalog: catalog,
		metrics: metrics,
	}
}

func (c *ObservableCatalog) Resolve(ctx context.Context, productID string) (*ports.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "ProductCatalog.Resolve")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("product.id", productID),
	)

	start := time.Now()
	product, err := c.catalog.Resolve(ctx, productID)
	duration := time.Since(start).Seconds()

	switch {
	case err == nil:
		c.metrics.RecordLookup(ctx, "success", duration)
	case errors.Is(err, ports.ErrProductNotFound):
		c.metrics.RecordLookup(ctx, "not_found", duration)
	default:
		c.metrics.RecordLookup(ctx, "error", duration)
	}

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("product.publication_name", product.PublicationName),
		attribute.Float64("product.unit_price", product.UnitPrice()),
	)
	telemetry.SetSpanSuccess(span)
	return product, nil
}
