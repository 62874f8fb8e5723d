package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderEventType string

const (
	OrderEventCreated   OrderEventType = "order.created"
	OrderEventPaid      OrderEventType = "order.paid"
	OrderEventDelivered OrderEventType = "order.delivered"
)

type OrderEvent struct {
	Type       OrderEventType
	OrderID    uuid.UUID
	UserID     uuid.UUID
	Status     OrderStatus
	Total      Money
	OccurredAt time.Time
}

func NewOrderEvent(t OrderEventType, o Order, now time.Time) OrderEvent {
	return OrderEvent{
		Type:       t,
		OrderID:    o.ID,
		UserID:     o.UserID,
		Status:     o.Status,
		Total:      NewMoney(o.Prices.TotalPrice, o.Prices.Currency),
		OccurredAt: now,
	}
}
