package productcatalog

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	lookupDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.lookupDuration, err = meter.Float64Histogram(
		"product_lookup_duration_seconds",
		metric.WithDescription("Product catalog lookup duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create product_lookup_duration histogram: %w", err)
	}

	return m, nil
}

// RecordLookup records one catalog round trip. Outcome is one of
// "success", "not_found", or "error".
func (m *Metrics) RecordLookup(ctx context.Context, outcome string, durationSeconds float64) {
	m.lookupDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
