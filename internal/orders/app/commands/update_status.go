package commands

import (
	"context"
	"fmt"

	"github.com/subhub/order-service/internal/orders/domain"
	"github.com/subhub/order-service/internal/orders/ports"
)

type UpdateStatusCommand struct {
	OrderID int64
	Status  domain.OrderStatus
}

// Validate checks set membership only. Any valid status may overwrite
// any other; there is no transition graph.
func (c UpdateStatusCommand) Validate() error {
	if !c.Status.Valid() {
		return ports.InvalidInput("Invalid status")
	}
	return nil
}

type UpdateStatusCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewUpdateStatusCommandHandler(repo ports.OrderRepository, events ports.EventBus) *UpdateStatusCommandHandler {
	return &UpdateStatusCommandHandler{repo: repo, events: events}
}

func (h *UpdateStatusCommandHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.UpdateStatus(ctx, cmd.OrderID, cmd.Status)
	if err != nil {
		return nil, err
	}

	if err := h.events.PublishOrderStatusChanged(ctx, order.ID, order.Status); err != nil {
		return order, fmt.Errorf("status updated but failed to publish event: %w", err)
	}

	return order, nil
}
