package http

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
)

// stubAuth knows a fixed set of tokens.
type stubAuth struct {
	actors map[string]domain.Actor
}

func (s *stubAuth) Register(_ context.Context, name, email, _ string) (auth.Session, error) {
	if email == "taken@example.com" {
		return auth.Session{}, fmt.Errorf("%w: user already exists", domain.ErrConflict)
	}

	return auth.Session{User: domain.User{ID: uuid.New(), Name: name, Email: email}, Token: "new-token"}, nil
}

func (s *stubAuth) Login(context.Context, string, string) (auth.Session, error) {
	return auth.Session{}, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthenticated)
}

func (s *stubAuth) Authenticate(_ context.Context, token string) (domain.Actor, error) {
	actor, ok := s.actors[token]
	if !ok {
		return domain.Actor{}, fmt.Errorf("%w: token is not valid", domain.ErrUnauthenticated)
	}

	return actor, nil
}

func (s *stubAuth) Me(_ context.Context, actor domain.Actor) (domain.User, error) {
	return domain.User{ID: actor.UserID, Name: "Jane Doe", Email: "jane@example.com", IsAdmin: actor.IsAdmin}, nil
}

type stubCatalog struct {
	created *service.ProductInput
}

func (s *stubCatalog) Search(context.Context, string) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubCatalog) Get(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	return domain.Product{}, fmt.Errorf("%w: product[%s]", domain.ErrNotFound, productID)
}

func (s *stubCatalog) Create(_ context.Context, actor domain.Actor, in service.ProductInput) (domain.Product, error) {
	if !actor.IsAdmin {
		return domain.Product{}, domain.ErrForbidden
	}
	s.created = &in

	return domain.Product{ID: uuid.New(), Name: in.Name}, nil
}

func (s *stubCatalog) Update(context.Context, domain.Actor, uuid.UUID, service.ProductInput) (domain.Product, error) {
	return domain.Product{}, errors.New("not implemented")
}

func (s *stubCatalog) Delete(context.Context, domain.Actor, uuid.UUID) error {
	return nil
}

type stubCarts struct {
	addedQty int
	cart     domain.Cart
}

func (s *stubCarts) Summary(_ context.Context, _ domain.Actor) (service.CartSummary, error) {
	return service.CartSummary{
		Cart:   s.cart,
		Prices: domain.ComputeTotals(s.cart, nil, domain.DefaultPricingPolicy()),
	}, nil
}

func (s *stubCarts) AddItem(_ context.Context, _ domain.Actor, _ uuid.UUID, qty int, _ string) (domain.Cart, error) {
	s.addedQty = qty
	return s.cart, nil
}

func (s *stubCarts) RemoveItem(context.Context, domain.Actor, uuid.UUID) (domain.Cart, error) {
	return s.cart, nil
}

func (s *stubCarts) AdjustQuantity(context.Context, domain.Actor, uuid.UUID, int) (domain.Cart, error) {
	return s.cart, nil
}

func (s *stubCarts) Clear(context.Context, domain.Actor) (domain.Cart, error) {
	return s.cart, nil
}

func (s *stubCarts) SetShippingAddress(_ context.Context, _ domain.Actor, addr domain.ShippingAddress) (domain.Cart, error) {
	s.cart.ShippingAddress = addr
	return s.cart, nil
}

func (s *stubCarts) SetPaymentMethod(_ context.Context, _ domain.Actor, method domain.PaymentMethod) (domain.Cart, error) {
	s.cart.PaymentMethod = method
	return s.cart, nil
}

// stubOrders returns order or err from every call and records what it was given.
type stubOrders struct {
	order domain.Order
	err   error
	panic bool

	submitted *domain.Cart
	quote     *domain.PriceBreakdown
	receipt   *domain.PaymentReceipt
	calls     int
}

func (s *stubOrders) result() (domain.Order, error) {
	s.calls++
	if s.panic {
		panic("boom")
	}

	return s.order, s.err
}

func (s *stubOrders) Submit(_ context.Context, _ domain.Actor, cart domain.Cart, quote *domain.PriceBreakdown) (domain.Order, error) {
	s.submitted = &cart
	s.quote = quote

	return s.result()
}

func (s *stubOrders) Checkout(context.Context, domain.Actor) (domain.Order, error) {
	return s.result()
}

func (s *stubOrders) MarkPaid(_ context.Context, _ domain.Actor, _ uuid.UUID, receipt domain.PaymentReceipt) (domain.Order, error) {
	s.receipt = &receipt
	return s.result()
}

func (s *stubOrders) MarkDelivered(context.Context, domain.Actor, uuid.UUID) (domain.Order, error) {
	return s.result()
}

func (s *stubOrders) GetOrder(context.Context, domain.Actor, uuid.UUID) (domain.Order, error) {
	return s.result()
}

func (s *stubOrders) ListMyOrders(context.Context, domain.Actor) ([]domain.Order, error) {
	order, err := s.result()
	if err != nil {
		return nil, err
	}

	return []domain.Order{order}, nil
}

func (s *stubOrders) ListOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	return s.ListMyOrders(ctx, actor)
}

type stubUploader struct {
	data []byte
}

func (s *stubUploader) Upload(_ context.Context, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.data = data

	return "/uploads/" + filename, nil
}
