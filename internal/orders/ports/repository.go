package ports

import (
	"context"
	"errors"

	"github.com/subhub/order-service/internal/orders/domain"
)

// NewOrder carries the fields the application layer decides; the store
// assigns id and created_at.
type NewOrder struct {
	ProductID  string
	Quantity   int
	TotalPrice float64
	Status     domain.OrderStatus
}

// OrderRepository exposes persistence operations required by the
// application layer. Every returned order is enriched with the product's
// publication name when resolvable (left-join semantics).
type OrderRepository interface {
	Insert(ctx context.Context, order NewOrder) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)
	Delete(ctx context.Context, id int64) (*domain.Order, error)
	Count(ctx context.Context) (int64, error)
}

// ListFilter narrows list queries by status. Results are always
// newest-first and unbounded.
type ListFilter struct {
	Status *domain.OrderStatus
}

// ErrNotFound is returned when the requested order does not exist.
var ErrNotFound = errors.New("order not found")
