package queries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/subhub/order-service/internal/orders/app/queries"
	"github.com/subhub/order-service/internal/orders/domain"
	"github.com/subhub/order-service/internal/orders/ports"
)

type mockRepository struct {
	getByIDFn func(ctx context.Context, id int64) (*domain.Order, error)
	listFn    func(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error)
}

func (m *mockRepository) Insert(ctx context.Context, order ports.NewOrder) (*domain.Order, error) {
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, ports.ErrNotFound
}

func (m *mockRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []domain.Order{}, nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Delete(ctx context.Context, id int64) (*domain.Order, error) {
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Count(ctx context.Context) (int64, error) {
	return 0, nil
}

func TestGetOrder(t *testing.T) {
	t.Run("returns the stored order", func(t *testing.T) {
		repo := &mockRepository{
			getByIDFn: func(_ context.Context, id int64) (*domain.Order, error) {
				return &domain.Order{ID: id, ProductID: "P1", PublicationName: "Daily Tech"}, nil
			},
		}
		handler := queries.NewGetOrderQueryHandler(repo)

		order, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: 42})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if order.ID != 42 {
			t.Errorf("expected id 42, got %d", order.ID)
		}
		if order.PublicationName != "Daily Tech" {
			t.Errorf("expected enriched publication name, got %q", order.PublicationName)
		}
	})

	t.Run("missing order propagates not found", func(t *testing.T) {
		handler := queries.NewGetOrderQueryHandler(&mockRepository{})

		_, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: 99})

		if !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestListOrders(t *testing.T) {
	t.Run("passes the status filter through to the store", func(t *testing.T) {
		var captured ports.ListFilter
		repo := &mockRepository{
			listFn: func(_ context.Context, filter ports.ListFilter) ([]domain.Order, error) {
				captured = filter
				return []domain.Order{{ID: 1, Status: domain.StatusPending}}, nil
			},
		}
		handler := queries.NewListOrdersQueryHandler(repo)

		status := domain.StatusPending
		orders, err := handler.Handle(context.Background(), queries.ListOrdersQuery{Status: &status})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if captured.Status == nil || *captured.Status != domain.StatusPending {
			t.Errorf("expected pending filter to reach the store, got %v", captured.Status)
		}
		if len(orders) != 1 {
			t.Errorf("expected 1 order, got %d", len(orders))
		}
	})

	t.Run("no filter lists everything", func(t *testing.T) {
		repo := &mockRepository{
			listFn: func(_ context.Context, filter ports.ListFilter) ([]domain.Order, error) {
				if filter.Status != nil {
					t.Errorf("expected nil status filter, got %v", *filter.Status)
				}
				return []domain.Order{{ID: 2}, {ID: 1}}, nil
			},
		}
		handler := queries.NewListOrdersQueryHandler(repo)

		orders, err := handler.Handle(context.Background(), queries.ListOrdersQuery{})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(orders) != 2 {
			t.Errorf("expected 2 orders, got %d", len(orders))
		}
	})

	t.Run("empty store yields an empty slice, not nil", func(t *testing.T) {
		handler := queries.NewListOrdersQueryHandler(&mockRepository{})

		orders, err := handler.Handle(context.Background(), queries.ListOrdersQuery{})

		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if orders == nil {
			t.Error("expected empty slice, got nil")
		}
	})
}
