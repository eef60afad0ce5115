package domain

import (
	"time"
)

// OrderStatus captures the lifecycle tag of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is a member of the fixed set.
// Transitions themselves are unrestricted: any valid status may
// overwrite any other.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Order represents a persisted purchase record for one product at a
// fixed price and quantity.
type Order struct {
	ID         int64       `json:"id"`
	ProductID  string      `json:"product_id"`
	Quantity   int         `json:"quantity"`
	TotalPrice float64     `json:"total_price"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`

	// PublicationName is joined from the product catalog at read time.
	// It is never stored on the order and is absent on write responses.
	PublicationName string `json:"publication_name,omitempty"`
}
