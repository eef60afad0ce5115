package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/subhub/order-service/internal/orders/domain"
	"github.com/subhub/order-service/internal/orders/ports"
)

// Repository provides an in-memory store useful for local development
// and handler tests. Ids are assigned from an in-process sequence and
// the publication-name join is mimicked with a product-name table.
type Repository struct {
	mu           sync.RWMutex
	nextID       int64
	orders       map[int64]domain.Order
	productNames map[string]string
}

// NewRepository constructs a new in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		nextID:       1,
		orders:       make(map[int64]domain.Order),
		productNames: make(map[string]string),
	}
}

// SetProductName registers a publication name used to enrich reads,
// standing in for the products table.
func (r *Repository) SetProductName(productID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.productNames[productID] = name
}

func (r *Repository) Insert(_ context.Context, order ports.NewOrder) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := domain.Order{
		ID:         r.nextID,
		ProductID:  order.ProductID,
		Quantity:   order.Quantity,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
		CreatedAt:  time.Now().UTC(),
	}
	r.nextID++
	r.orders[created.ID] = created

	return &created, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	order.PublicationName = r.productNames[order.ProductID]
	return &order, nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Order{}
	for _, order := range r.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		order.PublicationName = r.productNames[order.ProductID]
		result = append(result, order)
	}

	// Newest first; ties broken by descending id like the SQL ordering.
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *Repository) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}

	order.Status = status
	r.orders[id] = order

	return &order, nil
}

func (r *Repository) Delete(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}

	delete(r.orders, id)
	return &order, nil
}

func (r *Repository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}
