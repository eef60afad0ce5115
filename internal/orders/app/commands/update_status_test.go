package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/subhub/order-service/internal/orders/app/commands"
	"github.com/subhub/order-service/internal/orders/domain"
	"github.com/subhub/order-service/internal/orders/ports"
)

func TestUpdateStatus(t *testing.T) {
	t.Run("assigns any member of the status set", func(t *testing.T) {
		for _, status := range []domain.OrderStatus{
			domain.StatusPending,
			domain.StatusConfirmed,
			domain.StatusCompleted,
			domain.StatusCancelled,
		} {
			handler := commands.NewUpdateStatusCommandHandler(&mockRepository{}, &mockEventBus{})

			order, err := handler.Handle(context.Background(), commands.UpdateStatusCommand{
				OrderID: 7,
				Status:  status,
			})

			if err != nil {
				t.Fatalf("status %s: expected no error, got: %v", status, err)
			}
			if order.Status != status {
				t.Errorf("expected status %s, got %s", status, order.Status)
			}
		}
	})

	t.Run("rejects unknown status before touching the store", func(t *testing.T) {
		storeCalled := false
		repo := &mockRepository{
			updateStatusFn: func(_ context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
				storeCalled = true
				return &domain.Order{ID: id, Status: status}, nil
			},
		}
		handler := commands.NewUpdateStatusCommandHandler(repo, &mockEventBus{})

		order, err := handler.Handle(context.Background(), commands.UpdateStatusCommand{
			OrderID: 7,
			Status:  "done",
		})

		if !errors.Is(err, ports.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if err.Error() != "Invalid status" {
			t.Errorf("expected %q, got %q", "Invalid status", err.Error())
		}
		if order != nil {
			t.Errorf("expected nil order, got %+v", order)
		}
		if storeCalled {
			t.Error("expected store not to be touched")
		}
	})

	t.Run("missing order propagates not found", func(t *testing.T) {
		repo := &mockRepository{
			updateStatusFn: func(_ context.Context, _ int64, _ domain.OrderStatus) (*domain.Order, error) {
				return nil, ports.ErrNotFound
			},
		}
		handler := commands.NewUpdateStatusCommandHandler(repo, &mockEventBus{})

		_, err := handler.Handle(context.Background(), commands.UpdateStatusCommand{
			OrderID: 99,
			Status:  domain.StatusConfirmed,
		})

		if !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("returns order even when event publishing fails", func(t *testing.T) {
		events := &mockEventBus{
			publishStatusChangedFn: func(_ context.Context, _ int64, _ domain.OrderStatus) error {
				return errors.New("kafka unavailable")
			},
		}
		handler := commands.NewUpdateStatusCommandHandler(&mockRepository{}, events)

		order, err := handler.Handle(context.Background(), commands.UpdateStatusCommand{
			OrderID: 7,
			Status:  domain.StatusCompleted,
		})

		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if order == nil {
			t.Fatal("expected order to be returned even on event bus error")
		}
	})
}
