package kafka

import (
	"context"
	"log/slog"

	"github.com/subhub/order-service/internal/orders/domain"
)

// NoopEventBus logs events without sending them anywhere. Stands in
// until a real producer is wired against the brokers.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishOrderCreated(_ context.Context, orderID int64) error {
	slog.Debug("event::order_created", "order_id", orderID)
	return nil
}

func (n *NoopEventBus) PublishOrderStatusChanged(_ context.Context, orderID int64, status domain.OrderStatus) error {
	slog.Debug("event::order_status_changed", "order_id", orderID, "status", status)
	return nil
}

func (n *NoopEventBus) PublishOrderDeleted(_ context.Context, orderID int64) error {
	slog.Debug("event::order_deleted", "order_id", orderID)
	return nil
}
