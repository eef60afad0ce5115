package commands

import (
	"context"
	"fmt"

	"github.com/subhub/order-service/internal/orders/domain"
	"github.com/subhub/order-service/internal/orders/ports"
)

type DeleteOrderCommand struct {
	OrderID int64
}

// DeleteOrderCommandHandler removes the row permanently and returns its
// last-known state. This is a hard delete, not a cancelled marker.
type DeleteOrderCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewDeleteOrderCommandHandler(repo ports.OrderRepository, events ports.EventBus) *DeleteOrderCommandHandler {
	return &DeleteOrderCommandHandler{repo: repo, events: events}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) (*domain.Order, error) {
	order, err := h.repo.Delete(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	if err := h.events.PublishOrderDeleted(ctx, order.ID); err != nil {
		return order, fmt.Errorf("order deleted but failed to publish event: %w", err)
	}

	return order, nil
}
