package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	// GetOrder returns the order with its Customer populated.
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	// UpdateOrderStatus writes the status fields of order only when the stored status
	// still equals from, and reports whether a row was updated.
	UpdateOrderStatus(ctx context.Context, order domain.Order, from domain.OrderStatus) (bool, error)
}

type OrderEvents interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}
