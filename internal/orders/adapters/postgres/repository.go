package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/subhub/order-service/internal/orders/domain"
	"github.com/subhub/order-service/internal/orders/ports"
)

// Repository persists orders in Postgres. Reads enrich each row with
// the product's publication name via a left join; write paths return
// the bare row (the name is a read-time projection, never stored).
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Insert(ctx context.Context, order ports.NewOrder) (*domain.Order, error) {
	query := `
		INSERT INTO orders (product_id, quantity, total_price, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, product_id, quantity, total_price, status, created_at
	`

	var created domain.Order
	err := r.pool.QueryRow(ctx, query,
		order.ProductID,
		order.Quantity,
		order.TotalPrice,
		order.Status,
	).Scan(
		&created.ID,
		&created.ProductID,
		&created.Quantity,
		&created.TotalPrice,
		&created.Status,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	return &created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT o.id, o.product_id, o.quantity, o.total_price, o.status, o.created_at,
		       COALESCE(p.publication_name, '')
		FROM orders o
		LEFT JOIN products p ON o.product_id = p.id
		WHERE o.id = $1
	`

	var order domain.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.ProductID,
		&order.Quantity,
		&order.TotalPrice,
		&order.Status,
		&order.CreatedAt,
		&order.PublicationName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	return &order, nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	query := `
		SELECT o.id, o.product_id, o.quantity, o.total_price, o.status, o.created_at,
		       COALESCE(p.publication_name, '')
		FROM orders o
		LEFT JOIN products p ON o.product_id = p.id
		WHERE ($1::text IS NULL OR o.status = $1)
		ORDER BY o.created_at DESC, o.id DESC
	`

	var statusFilter *string
	if filter.Status != nil {
		s := string(*filter.Status)
		statusFilter = &s
	}

	rows, err := r.pool.Query(ctx, query, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.ProductID,
			&order.Quantity,
			&order.TotalPrice,
			&order.Status,
			&order.CreatedAt,
			&order.PublicationName,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2
		RETURNING id, product_id, quantity, total_price, status, created_at
	`

	var order domain.Order
	err := r.pool.QueryRow(ctx, query, status, id).Scan(
		&order.ID,
		&order.ProductID,
		&order.Quantity,
		&order.TotalPrice,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	return &order, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		DELETE FROM orders
		WHERE id = $1
		RETURNING id, product_id, quantity, total_price, status, created_at
	`

	var order domain.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.ProductID,
		&order.Quantity,
		&order.TotalPrice,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("delete order: %w", err)
	}

	return &order, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}
