package app

import (
	"context"
	"log/slog"

	"github.com/subhub/order-service/internal/orders/app/commands"
	"github.com/subhub/order-service/internal/orders/app/queries"
	"github.com/subhub/order-service/internal/orders/domain"
	"github.com/subhub/order-service/internal/orders/metrics"
	"github.com/subhub/order-service/internal/orders/ports"
)

// Service bundles the order use cases behind one facade. It is the sole
// authority for order state transitions and the only caller of both the
// order store and the product catalog.
type Service struct {
	repo         ports.OrderRepository
	logger       *slog.Logger
	createOrder  commands.CommandHandler
	updateStatus *commands.UpdateStatusCommandHandler
	deleteOrder  *commands.DeleteOrderCommandHandler
	getOrder     *queries.GetOrderQueryHandler
	listOrders   *queries.ListOrdersQueryHandler
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	catalog ports.ProductCatalog,
	events ports.EventBus,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	coreCreate := commands.NewCreateOrderCommandHandler(repo, catalog, events)
	observableCreate := commands.NewObservableCommandHandler(coreCreate, logger, metrics)

	return &Service{
		repo:         repo,
		logger:       logger,
		createOrder:  observableCreate,
		updateStatus: commands.NewUpdateStatusCommandHandler(repo, events),
		deleteOrder:  commands.NewDeleteOrderCommandHandler(repo, events),
		getOrder:     queries.NewGetOrderQueryHandler(repo),
		listOrders:   queries.NewListOrdersQueryHandler(repo),
	}
}

// CreateOrderInput captures the payload for creating an order. A zero
// quantity means the field was omitted and defaults to 1.
type CreateOrderInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CreateOrder validates the product against the catalog, prices the
// order, and persists it with status pending.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	order, err := s.createOrder.Handle(ctx, commands.CreateOrderCommand{
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
	})
	return s.swallowPublishFailure(ctx, order, err)
}

// GetOrder retrieves an order by ID.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.getOrder.Handle(ctx, queries.GetOrderQuery{OrderID: id})
}

// ListOrders returns all orders, newest first.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.listOrders.Handle(ctx, queries.ListOrdersQuery{})
}

// ListOrdersByStatus returns orders whose status exactly equals the
// given value, newest first. The value is not validated; an unknown
// status yields an empty list.
func (s *Service) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	return s.listOrders.Handle(ctx, queries.ListOrdersQuery{Status: &status})
}

// UpdateStatus assigns a new status to an order. Membership in the
// status set is enforced; transitions are not.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.updateStatus.Handle(ctx, commands.UpdateStatusCommand{
		OrderID: id,
		Status:  status,
	})
	return s.swallowPublishFailure(ctx, order, err)
}

// DeleteOrder removes the order permanently and returns its last-known
// state.
func (s *Service) DeleteOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.deleteOrder.Handle(ctx, commands.DeleteOrderCommand{OrderID: id})
	return s.swallowPublishFailure(ctx, order, err)
}

// CountOrders reports the number of stored orders. Backs the store
// connectivity check endpoint.
func (s *Service) CountOrders(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// swallowPublishFailure keeps event publishing best-effort: when the
// state change itself succeeded, a failed publish is logged and the
// request still succeeds.
func (s *Service) swallowPublishFailure(ctx context.Context, order *domain.Order, err error) (*domain.Order, error) {
	if err == nil {
		return order, nil
	}
	if order == nil {
		return nil, err
	}
	s.logger.WarnContext(ctx, "order event publish failed", "order_id", order.ID, "error", err)
	return order, nil
}
