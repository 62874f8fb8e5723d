package repository

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrders(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewOrdersWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

// CreateOrder writes the order row and its item snapshot in one transaction and
// returns the stored order.
func (r *orderRepository) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.ID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("orderID is empty")
	}
	if order.UserID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("userID is empty")
	}
	if len(order.Items) == 0 {
		return domain.Order{}, fmt.Errorf("order items are empty")
	}
	for _, item := range order.Items {
		if item.Quantity < 1 || item.Quantity > math.MaxInt32 {
			return domain.Order{}, fmt.Errorf("%w: quantity[%d] of product[%s] is out of range",
				domain.ErrValidation, item.Quantity, item.ProductID)
		}
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (domain.Order, error) {
		err := q.CreateOrder(ctx, mapOrderToCreateParams(order))
		if err != nil {
			return domain.Order{}, wrap("q.CreateOrder", err)
		}

		for i, item := range order.Items {
			err := q.CreateOrderItem(ctx, db.CreateOrderItemParams{
				OrderID:       order.ID,
				Position:      int32(i),
				ProductID:     item.ProductID,
				Name:          item.Name,
				Image:         item.Image,
				Variant:       item.Variant,
				PriceAmount:   item.Price.Amount,
				PriceCurrency: item.Price.Currency.String(),
				Quantity:      int32(item.Quantity),
			})
			if err != nil {
				return domain.Order{}, wrap("q.CreateOrderItem", err)
			}
		}

		return getOrder(ctx, q, order.ID)
	})
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	if orderID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("orderID is empty")
	}

	return getOrder(ctx, r.q, orderID)
}

func (r *orderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("userID is empty")
	}

	rows, err := r.q.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, wrap("q.ListOrdersByUser", err)
	}

	orderRows := make([]db.GetOrderRow, 0, len(rows))
	for _, row := range rows {
		orderRows = append(orderRows, db.GetOrderRow(row))
	}

	return r.withItems(ctx, orderRows)
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := r.q.ListOrders(ctx)
	if err != nil {
		return nil, wrap("q.ListOrders", err)
	}

	orderRows := make([]db.GetOrderRow, 0, len(rows))
	for _, row := range rows {
		orderRows = append(orderRows, db.GetOrderRow(row))
	}

	return r.withItems(ctx, orderRows)
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, order domain.Order, from domain.OrderStatus) (bool, error) {
	if order.ID == uuid.Nil {
		return false, fmt.Errorf("orderID is empty")
	}
	if err := order.Validate(); err != nil {
		return false, fmt.Errorf("order.Validate: %w", err)
	}

	params := db.UpdateOrderStatusParams{
		Status:      string(order.Status),
		PaidAt:      order.PaidAt,
		DeliveredAt: order.DeliveredAt,
		UpdatedAt:   order.UpdatedAt,
		ID:          order.ID,
		FromStatus:  string(from),
	}
	if receipt := order.PaymentReceipt; receipt != nil {
		params.PaymentID = &receipt.ID
		params.PaymentStatus = &receipt.Status
		params.PaymentUpdateTime = &receipt.UpdateTime
		params.PaymentEmail = &receipt.EmailAddress
	}

	rowsAffected, err := r.q.UpdateOrderStatus(ctx, params)
	if err != nil {
		return false, wrap("q.UpdateOrderStatus", err)
	}

	return rowsAffected > 0, nil
}

func (r *orderRepository) withItems(ctx context.Context, rows []db.GetOrderRow) ([]domain.Order, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	dbItems, err := r.q.GetOrderItems(ctx, ids)
	if err != nil {
		return nil, wrap("q.GetOrderItems", err)
	}

	itemsByOrder := make(map[uuid.UUID][]db.OrderItem, len(rows))
	for _, item := range dbItems {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order, err := mapOrderRowToDomain(row, itemsByOrder[row.ID])
		if err != nil {
			return nil, fmt.Errorf("mapOrderRowToDomain: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func getOrder(ctx context.Context, q *db.Queries, orderID uuid.UUID) (domain.Order, error) {
	row, err := q.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, wrap("q.GetOrder", err)
	}

	items, err := q.GetOrderItems(ctx, []uuid.UUID{orderID})
	if err != nil {
		return domain.Order{}, wrap("q.GetOrderItems", err)
	}

	order, err := mapOrderRowToDomain(row, items)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderRowToDomain: %w", err)
	}

	return order, nil
}

func mapOrderToCreateParams(o domain.Order) db.CreateOrderParams {
	return db.CreateOrderParams{
		ID:                 o.ID,
		UserID:             o.UserID,
		ShippingFullName:   o.ShippingAddress.FullName,
		ShippingAddress:    o.ShippingAddress.Address,
		ShippingCity:       o.ShippingAddress.City,
		ShippingPostalCode: o.ShippingAddress.PostalCode,
		ShippingCountry:    o.ShippingAddress.Country,
		ShippingPhone:      o.ShippingAddress.Phone,
		PaymentMethod:      string(o.PaymentMethod),
		Currency:           o.Prices.Currency.String(),
		ItemsPrice:         o.Prices.ItemsPrice,
		ShippingPrice:      o.Prices.ShippingPrice,
		TaxPrice:           o.Prices.TaxPrice,
		TotalPrice:         o.Prices.TotalPrice,
		Status:             string(o.Status),
		CreatedAt:          o.CreatedAt,
	}
}

func mapOrderRowToDomain(row db.GetOrderRow, dbItems []db.OrderItem) (domain.Order, error) {
	cur, err := domain.ParseCurrency(row.Currency)
	if err != nil {
		return domain.Order{}, err
	}

	status, err := domain.ParseOrderStatus(row.Status)
	if err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.OrderItem, 0, len(dbItems))
	for _, dbItem := range dbItems {
		itemCur, err := domain.ParseCurrency(dbItem.PriceCurrency)
		if err != nil {
			return domain.Order{}, err
		}

		items = append(items, domain.OrderItem{
			ProductID: dbItem.ProductID,
			Name:      dbItem.Name,
			Price:     domain.NewMoney(dbItem.PriceAmount, itemCur),
			Quantity:  int(dbItem.Quantity),
			Image:     dbItem.Image,
			Variant:   dbItem.Variant,
		})
	}

	order := domain.Order{
		ID:     row.ID,
		UserID: row.UserID,
		Items:  items,
		ShippingAddress: domain.ShippingAddress{
			FullName:   row.ShippingFullName,
			Address:    row.ShippingAddress,
			City:       row.ShippingCity,
			PostalCode: row.ShippingPostalCode,
			Country:    row.ShippingCountry,
			Phone:      row.ShippingPhone,
		},
		PaymentMethod: domain.PaymentMethod(row.PaymentMethod),
		Prices: domain.PriceBreakdown{
			Currency:      cur,
			ItemsPrice:    row.ItemsPrice,
			ShippingPrice: row.ShippingPrice,
			TaxPrice:      row.TaxPrice,
			TotalPrice:    row.TotalPrice,
		},
		Status:      status,
		PaidAt:      row.PaidAt,
		DeliveredAt: row.DeliveredAt,
		Customer: &domain.Customer{
			Name:  row.UserName,
			Email: row.UserEmail,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if row.PaymentID != nil {
		order.PaymentReceipt = &domain.PaymentReceipt{
			ID:           *row.PaymentID,
			Status:       deref(row.PaymentStatus),
			UpdateTime:   deref(row.PaymentUpdateTime),
			EmailAddress: deref(row.PaymentEmail),
		}
	}

	return order, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
