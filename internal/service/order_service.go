package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// OrderMetrics is the slice of the metrics registry the order lifecycle reports to.
type OrderMetrics interface {
	RecordOrderTransition(status string)
	RecordEventPublishFailure(eventType string)
}

// OrderService is the order lifecycle controller. It receives the caller identity
// as a domain.Actor and checks the capability it needs; it never authenticates.
type OrderService struct {
	orders   port.OrderRepository
	products port.ProductRepository
	carts    port.CartStore
	events   port.OrderEvents
	policy   domain.PricingPolicy
	clock    port.Clock
	logger   *slog.Logger
	metrics  OrderMetrics
}

func NewOrderService(
	orders port.OrderRepository,
	products port.ProductRepository,
	carts port.CartStore,
	events port.OrderEvents,
	policy domain.PricingPolicy,
	clock port.Clock,
	logger *slog.Logger,
	metrics OrderMetrics,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		carts:    carts,
		events:   events,
		policy:   policy,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// Submit validates the cart and stores it as a new order priced at current catalog
// prices. When quote is not nil it must match the recomputed prices within a cent.
// Nothing is written unless every check passes.
func (s *OrderService) Submit(ctx context.Context, actor domain.Actor, cart domain.Cart, quote *domain.PriceBreakdown) (domain.Order, error) {
	if !actor.Authenticated() {
		return domain.Order{}, domain.ErrUnauthenticated
	}

	if err := cart.ValidateForCheckout(); err != nil {
		return domain.Order{}, err
	}

	byID, err := catalogProducts(ctx, s.products, cart)
	if err != nil {
		return domain.Order{}, err
	}

	for _, item := range cart.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return domain.Order{}, fmt.Errorf("%w: product[%s] is no longer available", domain.ErrValidation, item.ProductID)
		}
		if !product.Price.SameCurrency(item.Price) {
			return domain.Order{}, fmt.Errorf("%w: product[%s] is now priced in %s", domain.ErrValidation, item.ProductID, product.Price.Currency)
		}
		if item.Quantity > product.CountInStock {
			return domain.Order{}, fmt.Errorf("%w: quantity[%d] of product[%s] exceeds stock[%d]",
				domain.ErrValidation, item.Quantity, item.ProductID, product.CountInStock)
		}
	}

	prices := domain.ComputeTotals(cart, catalogPrices(byID), s.policy)

	if quote != nil && !quote.Matches(prices) {
		return domain.Order{}, fmt.Errorf("%w: quoted total %s does not match %s", domain.ErrValidation,
			quote.TotalPrice.StringFixed(2), prices.TotalPrice.StringFixed(2))
	}

	// the order snapshot carries the prices it was charged at
	cart.Items = slices.Clone(cart.Items)
	for i := range cart.Items {
		cart.Items[i].Price = byID[cart.Items[i].ProductID].Price
	}

	order := domain.NewOrder(uuid.New(), actor.UserID, cart, prices, s.clock.Now())

	created, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.CreateOrder: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		"order_id", created.ID, "user_id", created.UserID, "total", created.Prices.TotalPrice.StringFixed(2))
	s.transitioned(ctx, domain.OrderEventCreated, created)

	return created, nil
}

// Checkout submits the actor's stored cart and clears its items on success. A failed
// submission leaves the cart as it was.
func (s *OrderService) Checkout(ctx context.Context, actor domain.Actor) (domain.Order, error) {
	if !actor.Authenticated() {
		return domain.Order{}, domain.ErrUnauthenticated
	}

	cart, err := s.carts.Load(ctx, actor.CartOwner())
	if err != nil {
		return domain.Order{}, fmt.Errorf("carts.Load: %w", err)
	}

	order, err := s.Submit(ctx, actor, cart, nil)
	if err != nil {
		return domain.Order{}, err
	}

	cart.Clear()
	cart.UpdatedAt = s.clock.Now()

	// the order is committed, so a failed clear only leaves a stale cart behind
	if err := s.carts.Save(ctx, cart); err != nil {
		s.logger.WarnContext(ctx, "failed to clear cart after checkout",
			"order_id", order.ID, "user_id", actor.UserID, "error", err)
	}

	return order, nil
}

// MarkPaid records the payment of an order. Paying a paid or delivered order returns
// it unchanged. When a concurrent request paid the order first, its result wins.
func (s *OrderService) MarkPaid(ctx context.Context, actor domain.Actor, orderID uuid.UUID, receipt domain.PaymentReceipt) (domain.Order, error) {
	if !actor.Authenticated() {
		return domain.Order{}, domain.ErrUnauthenticated
	}

	order, err := s.visibleOrder(ctx, actor, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	paid, changed, err := order.Pay(receipt, s.clock.Now())
	if err != nil {
		return domain.Order{}, err
	}
	if !changed {
		return order, nil
	}

	return s.transition(ctx, paid, domain.OrderStatusCreated, domain.OrderEventPaid)
}

// MarkDelivered is reserved to admins. Unpaid orders fail with ErrPreconditionFailed.
func (s *OrderService) MarkDelivered(ctx context.Context, actor domain.Actor, orderID uuid.UUID) (domain.Order, error) {
	if !actor.Authenticated() {
		return domain.Order{}, domain.ErrUnauthenticated
	}
	if !actor.IsAdmin {
		return domain.Order{}, fmt.Errorf("%w: only admins can deliver orders", domain.ErrForbidden)
	}

	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	delivered, changed, err := order.Deliver(s.clock.Now())
	if err != nil {
		return domain.Order{}, err
	}
	if !changed {
		return order, nil
	}

	return s.transition(ctx, delivered, domain.OrderStatusPaid, domain.OrderEventDelivered)
}

// GetOrder returns the order to its owner or to an admin; anybody else gets
// ErrNotFound so order ids cannot be probed.
func (s *OrderService) GetOrder(ctx context.Context, actor domain.Actor, orderID uuid.UUID) (domain.Order, error) {
	if !actor.Authenticated() {
		return domain.Order{}, domain.ErrUnauthenticated
	}

	return s.visibleOrder(ctx, actor, orderID)
}

func (s *OrderService) ListMyOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}

	orders, err := s.orders.ListOrdersByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrdersByUser: %w", err)
	}

	return orders, nil
}

func (s *OrderService) ListOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	if !actor.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if !actor.IsAdmin {
		return nil, fmt.Errorf("%w: only admins can list all orders", domain.ErrForbidden)
	}

	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrders: %w", err)
	}

	return orders, nil
}

// transition persists next only if the stored status still equals from. Losing
// that race means another request already moved the order forward, so the stored
// state is returned instead.
func (s *OrderService) transition(ctx context.Context, next domain.Order, from domain.OrderStatus, eventType domain.OrderEventType) (domain.Order, error) {
	updated, err := s.orders.UpdateOrderStatus(ctx, next, from)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.UpdateOrderStatus: %w", err)
	}

	if !updated {
		s.logger.InfoContext(ctx, "order transition lost to a concurrent update",
			"order_id", next.ID, "status", next.Status)

		return s.getOrder(ctx, next.ID)
	}

	s.logger.InfoContext(ctx, "order status changed", "order_id", next.ID, "from", from, "to", next.Status)
	s.transitioned(ctx, eventType, next)

	return next, nil
}

func (s *OrderService) transitioned(ctx context.Context, eventType domain.OrderEventType, order domain.Order) {
	s.metrics.RecordOrderTransition(string(order.Status))

	event := domain.NewOrderEvent(eventType, order, s.clock.Now())
	if err := s.events.Publish(ctx, event); err != nil {
		s.metrics.RecordEventPublishFailure(string(eventType))
		s.logger.ErrorContext(ctx, "failed to publish order event",
			"type", eventType, "order_id", order.ID, "error", err)
	}
}

func (s *OrderService) visibleOrder(ctx context.Context, actor domain.Actor, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	if !actor.IsAdmin && !order.OwnedBy(actor.UserID) {
		return domain.Order{}, fmt.Errorf("%w: order[%s]", domain.ErrNotFound, orderID)
	}

	return order, nil
}

func (s *OrderService) getOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	if orderID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("%w: orderID is empty", domain.ErrValidation)
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return order, nil
}
