package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

// CartService runs the cart operations against the actor's stored cart. Every
// mutation is load, change, save; it returns only after the save succeeded.
type CartService struct {
	carts    port.CartStore
	products port.ProductRepository
	policy   domain.PricingPolicy
	clock    port.Clock
}

func NewCartService(carts port.CartStore, products port.ProductRepository, policy domain.PricingPolicy, clock port.Clock) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		policy:   policy,
		clock:    clock,
	}
}

// CartSummary is the cart together with its price at current catalog prices.
type CartSummary struct {
	Cart   domain.Cart
	Prices domain.PriceBreakdown
}

func (s *CartService) Get(ctx context.Context, actor domain.Actor) (domain.Cart, error) {
	if !actor.Authenticated() {
		return domain.Cart{}, domain.ErrUnauthenticated
	}

	cart, err := s.carts.Load(ctx, actor.CartOwner())
	if err != nil {
		return domain.Cart{}, fmt.Errorf("carts.Load: %w", err)
	}

	return cart, nil
}

func (s *CartService) Summary(ctx context.Context, actor domain.Actor) (CartSummary, error) {
	cart, err := s.Get(ctx, actor)
	if err != nil {
		return CartSummary{}, err
	}

	byID, err := catalogProducts(ctx, s.products, cart)
	if err != nil {
		return CartSummary{}, err
	}

	return CartSummary{
		Cart:   cart,
		Prices: domain.ComputeTotals(cart, catalogPrices(byID), s.policy),
	}, nil
}

func (s *CartService) AddItem(ctx context.Context, actor domain.Actor, productID uuid.UUID, qty int, variant string) (domain.Cart, error) {
	if productID == uuid.Nil {
		return domain.Cart{}, fmt.Errorf("%w: productID is empty", domain.ErrValidation)
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	return s.mutate(ctx, actor, func(cart *domain.Cart) error {
		item := product.CartItem(qty, strings.TrimSpace(variant), s.clock.Now())
		return cart.AddItem(item, product.CountInStock)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, actor domain.Actor, productID uuid.UUID) (domain.Cart, error) {
	return s.mutate(ctx, actor, func(cart *domain.Cart) error {
		cart.RemoveItem(productID)
		return nil
	})
}

// AdjustQuantity changes an item quantity by delta, clamped to current stock. An
// item whose product left the catalog can still be decreased but not increased.
func (s *CartService) AdjustQuantity(ctx context.Context, actor domain.Actor, productID uuid.UUID, delta int) (domain.Cart, error) {
	return s.mutate(ctx, actor, func(cart *domain.Cart) error {
		item, ok := cart.Item(productID)
		if !ok {
			return fmt.Errorf("%w: product[%s] is not in the cart", domain.ErrNotFound, productID)
		}

		stock := item.Quantity
		if delta > 0 {
			product, err := s.products.GetProduct(ctx, productID)
			switch {
			case err == nil:
				stock = product.CountInStock
			case !errors.Is(err, domain.ErrNotFound):
				return fmt.Errorf("products.GetProduct: %w", err)
			}
		}

		return cart.AdjustQuantity(productID, delta, stock)
	})
}

func (s *CartService) Clear(ctx context.Context, actor domain.Actor) (domain.Cart, error) {
	return s.mutate(ctx, actor, func(cart *domain.Cart) error {
		cart.Clear()
		return nil
	})
}

func (s *CartService) SetShippingAddress(ctx context.Context, actor domain.Actor, addr domain.ShippingAddress) (domain.Cart, error) {
	return s.mutate(ctx, actor, func(cart *domain.Cart) error {
		return cart.SetShippingAddress(addr)
	})
}

func (s *CartService) SetPaymentMethod(ctx context.Context, actor domain.Actor, method domain.PaymentMethod) (domain.Cart, error) {
	return s.mutate(ctx, actor, func(cart *domain.Cart) error {
		return cart.SetPaymentMethod(method)
	})
}

// mutate leaves the stored cart untouched when fn fails.
func (s *CartService) mutate(ctx context.Context, actor domain.Actor, fn func(cart *domain.Cart) error) (domain.Cart, error) {
	cart, err := s.Get(ctx, actor)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := fn(&cart); err != nil {
		return domain.Cart{}, err
	}

	cart.UpdatedAt = s.clock.Now()

	if err := s.carts.Save(ctx, cart); err != nil {
		return domain.Cart{}, fmt.Errorf("carts.Save: %w", err)
	}

	return cart, nil
}
