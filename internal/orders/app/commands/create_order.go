package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/subhub/order-service/internal/orders/domain"
	"github.com/subhub/order-service/internal/orders/ports"
)

type CreateOrderCommand struct {
	ProductID string
	Quantity  int
}

func (c CreateOrderCommand) Validate() error {
	if strings.TrimSpace(c.ProductID) == "" {
		return ports.InvalidInput("Product ID is required")
	}
	if c.Quantity < 0 {
		return ports.InvalidInput("Quantity must be positive")
	}
	return nil
}

type CommandHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
}

// CreateOrderCommandHandler validates the product against the catalog,
// prices the order, and persists it. The catalog call and the insert are
// two independent steps: a price change in between is accepted.
type CreateOrderCommandHandler struct {
	repo    ports.OrderRepository
	catalog ports.ProductCatalog
	events  ports.EventBus
}

func NewCreateOrderCommandHandler(
	repo ports.OrderRepository,
	catalog ports.ProductCatalog,
	events ports.EventBus,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		repo:    repo,
		catalog: catalog,
		events:  events,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	quantity := cmd.Quantity
	if quantity == 0 {
		quantity = 1
	}

	product, err := h.catalog.Resolve(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}

	order, err := h.repo.Insert(ctx, ports.NewOrder{
		ProductID:  cmd.ProductID,
		Quantity:   quantity,
		TotalPrice: product.UnitPrice() * float64(quantity),
		Status:     domain.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	if err := h.events.PublishOrderCreated(ctx, order.ID); err != nil {
		return order, fmt.Errorf("order saved but failed to publish event: %w", err)
	}

	return order, nil
}
