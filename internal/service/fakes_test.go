package service_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type fakeOrders struct {
	mu     sync.Mutex
	orders map[uuid.UUID]domain.Order
	// calls counts every repository call, reads included
	calls   int
	failGet error
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: make(map[uuid.UUID]domain.Order)}
}

func (f *fakeOrders) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if _, ok := f.orders[order.ID]; ok {
		return domain.Order{}, fmt.Errorf("%w: order[%s]", domain.ErrConflict, order.ID)
	}
	f.orders[order.ID] = order

	return order, nil
}

func (f *fakeOrders) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.failGet != nil {
		return domain.Order{}, f.failGet
	}

	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: order[%s]", domain.ErrNotFound, orderID)
	}

	return order, nil
}

func (f *fakeOrders) ListOrdersByUser(_ context.Context, userID uuid.UUID) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	var result []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	sortNewestFirst(result)

	return result, nil
}

func (f *fakeOrders) ListOrders(_ context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	result := make([]domain.Order, 0, len(f.orders))
	for _, o := range f.orders {
		result = append(result, o)
	}
	sortNewestFirst(result)

	return result, nil
}

func (f *fakeOrders) UpdateOrderStatus(_ context.Context, order domain.Order, from domain.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	stored, ok := f.orders[order.ID]
	if !ok || stored.Status != from {
		return false, nil
	}
	f.orders[order.ID] = order

	return true, nil
}

func (f *fakeOrders) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

func (f *fakeOrders) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.orders)
}

func (f *fakeOrders) stored(orderID uuid.UUID) domain.Order {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.orders[orderID]
}

func sortNewestFirst(orders []domain.Order) {
	slices.SortFunc(orders, func(a, b domain.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

type fakeProducts struct {
	mu       sync.Mutex
	products map[uuid.UUID]domain.Product
	fail     error
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{products: make(map[uuid.UUID]domain.Product)}
}

func (f *fakeProducts) add(p domain.Product) domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.products[p.ID] = p

	return p
}

func (f *fakeProducts) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail != nil {
		return domain.Product{}, f.fail
	}

	p, ok := f.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: product[%s]", domain.ErrNotFound, productID)
	}

	return p, nil
}

func (f *fakeProducts) GetProducts(_ context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail != nil {
		return nil, f.fail
	}

	var result []domain.Product
	for _, id := range productIDs {
		if p, ok := f.products[id]; ok {
			result = append(result, p)
		}
	}

	return result, nil
}

func (f *fakeProducts) SearchProducts(_ context.Context, keyword string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []domain.Product
	for _, p := range f.products {
		if containsFold(p.Name, keyword) {
			result = append(result, p)
		}
	}

	return result, nil
}

func (f *fakeProducts) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	return f.add(product), nil
}

func (f *fakeProducts) UpdateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[product.ID]; !ok {
		return domain.Product{}, fmt.Errorf("%w: product[%s]", domain.ErrNotFound, product.ID)
	}
	f.products[product.ID] = product

	return product, nil
}

func (f *fakeProducts) DeleteProduct(_ context.Context, productID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.products[productID]
	delete(f.products, productID)

	return ok, nil
}

type fakeEvents struct {
	mu     sync.Mutex
	events []domain.OrderEvent
	fail   error
}

func (f *fakeEvents) Publish(_ context.Context, event domain.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail != nil {
		return f.fail
	}
	f.events = append(f.events, event)

	return nil
}

func (f *fakeEvents) types() []domain.OrderEventType {
	f.mu.Lock()
	defer f.mu.Unlock()

	types := make([]domain.OrderEventType, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.Type)
	}

	return types
}

type fakeMetrics struct {
	mu          sync.Mutex
	transitions map[string]int
	failures    map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		transitions: make(map[string]int),
		failures:    make(map[string]int),
	}
}

func (f *fakeMetrics) RecordOrderTransition(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.transitions[status]++
}

func (f *fakeMetrics) RecordEventPublishFailure(eventType string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failures[eventType]++
}

// tickingClock advances one second on every reading.
type tickingClock struct {
	start time.Time
	ticks atomic.Int64
}

func newTickingClock() *tickingClock {
	return &tickingClock{start: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *tickingClock) Now() time.Time {
	return c.start.Add(time.Duration(c.ticks.Add(1)) * time.Second)
}

var errStoreDown = errors.Join(errors.New("dial tcp: connection refused"), domain.ErrTransient)

func randomProduct(price string, stock int) domain.Product {
	return domain.Product{
		ID:           uuid.New(),
		Name:         gofakeit.ProductName(),
		Image:        "/images/" + gofakeit.Word() + ".jpg",
		Brand:        gofakeit.Company(),
		Category:     gofakeit.ProductCategory(),
		Description:  gofakeit.Sentence(8),
		Price:        domain.NewMoney(decimal.RequireFromString(price), currency.USD),
		CountInStock: stock,
	}
}

func randomAddress() domain.ShippingAddress {
	addr := gofakeit.Address()

	return domain.ShippingAddress{
		FullName:   gofakeit.Name(),
		Address:    addr.Street,
		City:       addr.City,
		PostalCode: addr.Zip,
		Country:    addr.Country,
		Phone:      gofakeit.Phone(),
	}
}

func randomReceipt() domain.PaymentReceipt {
	return domain.PaymentReceipt{
		ID:           gofakeit.UUID(),
		Status:       "COMPLETED",
		UpdateTime:   gofakeit.Date().Format(time.RFC3339),
		EmailAddress: gofakeit.Email(),
	}
}

func randomActor() domain.Actor {
	return domain.Actor{UserID: uuid.New()}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
