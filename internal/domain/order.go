package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle position of an order. It only moves forward:
// created -> paid -> delivered.
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusDelivered OrderStatus = "delivered"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch status := OrderStatus(s); status {
	case OrderStatusCreated, OrderStatusPaid, OrderStatusDelivered:
		return status, nil
	default:
		return "", fmt.Errorf("order status[%s] is not valid", s)
	}
}

type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Items           []OrderItem
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	Prices          PriceBreakdown
	Status          OrderStatus
	PaidAt          *time.Time
	PaymentReceipt  *PaymentReceipt
	DeliveredAt     *time.Time

	// Customer is filled in by lookups that join the owning user.
	Customer *Customer

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is a point-in-time copy of a cart line; later catalog edits never touch it.
type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	Price     Money
	Quantity  int
	Image     string
	Variant   string
}

// NewOrder snapshots a validated cart into a fresh order in the created state.
func NewOrder(id uuid.UUID, userID uuid.UUID, cart Cart, prices PriceBreakdown, now time.Time) Order {
	items := make([]OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
			Variant:   item.Variant,
		})
	}

	return Order{
		ID:              id,
		UserID:          userID,
		Items:           items,
		ShippingAddress: cart.ShippingAddress,
		PaymentMethod:   cart.PaymentMethod,
		Prices:          prices,
		Status:          OrderStatusCreated,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (o Order) IsPaid() bool {
	return o.Status == OrderStatusPaid || o.Status == OrderStatusDelivered
}

func (o Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}

func (o Order) OwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// Pay moves a created order to paid. Paying an order that is already paid (or
// delivered) returns it unchanged with changed=false, so retries are harmless.
func (o Order) Pay(receipt PaymentReceipt, now time.Time) (_ Order, changed bool, _ error) {
	if o.IsPaid() {
		return o, false, nil
	}

	if err := receipt.Validate(); err != nil {
		return o, false, err
	}

	paidAt := notBefore(now, o.CreatedAt)

	o.Status = OrderStatusPaid
	o.PaidAt = &paidAt
	o.PaymentReceipt = &receipt
	o.UpdatedAt = paidAt

	return o, true, nil
}

// Deliver moves a paid order to delivered. Unpaid orders are rejected with
// ErrPreconditionFailed; delivered orders come back unchanged.
func (o Order) Deliver(now time.Time) (_ Order, changed bool, _ error) {
	switch o.Status {
	case OrderStatusDelivered:
		return o, false, nil
	case OrderStatusPaid:
	default:
		return o, false, fmt.Errorf("%w: order[%s] is not paid", ErrPreconditionFailed, o.ID)
	}

	deliveredAt := notBefore(now, *o.PaidAt)

	o.Status = OrderStatusDelivered
	o.DeliveredAt = &deliveredAt
	o.UpdatedAt = deliveredAt

	return o, true, nil
}

// Validate checks the status and timestamp combination; illegal pairs such as
// delivered-but-unpaid never pass.
func (o Order) Validate() error {
	switch o.Status {
	case OrderStatusCreated:
		if o.PaidAt != nil || o.DeliveredAt != nil {
			return fmt.Errorf("order[%s]: created order carries payment or delivery time", o.ID)
		}
	case OrderStatusPaid:
		if o.PaidAt == nil || o.DeliveredAt != nil {
			return fmt.Errorf("order[%s]: paid order must have paidAt and no deliveredAt", o.ID)
		}
	case OrderStatusDelivered:
		if o.PaidAt == nil || o.DeliveredAt == nil {
			return fmt.Errorf("order[%s]: delivered order must have paidAt and deliveredAt", o.ID)
		}
	default:
		return fmt.Errorf("order[%s]: status[%s] is not valid", o.ID, o.Status)
	}

	return nil
}

func notBefore(t, floor time.Time) time.Time {
	if t.Before(floor) {
		return floor
	}

	return t
}
