package ports

import (
	"context"

	"github.com/subhub/order-service/internal/orders/domain"
)

// EventBus defines the contract for publishing order lifecycle events.
// Publishing is best-effort: a failed publish never fails the request.
type EventBus interface {
	PublishOrderCreated(ctx context.Context, orderID int64) error
	PublishOrderStatusChanged(ctx context.Context, orderID int64, status domain.OrderStatus) error
	PublishOrderDeleted(ctx context.Context, orderID int64) error
}
