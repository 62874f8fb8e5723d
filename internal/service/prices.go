// Package service holds the application use cases: the server-side cart, the
// order lifecycle and the product catalog.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
)

// catalogProducts loads the live catalog rows of the cart items, keyed by id.
// Products missing from the catalog are absent from the result.
func catalogProducts(ctx context.Context, products port.ProductRepository, cart domain.Cart) (map[uuid.UUID]domain.Product, error) {
	if cart.IsEmpty() {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	list, err := products.GetProducts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("products.GetProducts: %w", err)
	}

	byID := make(map[uuid.UUID]domain.Product, len(list))
	for _, p := range list {
		byID[p.ID] = p
	}

	return byID, nil
}

func catalogPrices(byID map[uuid.UUID]domain.Product) map[uuid.UUID]decimal.Decimal {
	prices := make(map[uuid.UUID]decimal.Decimal, len(byID))
	for id, p := range byID {
		prices[id] = p.Price.Amount
	}

	return prices
}
