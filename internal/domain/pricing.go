package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// PricingPolicy holds the knobs of the price calculation. Shipping is free only when
// the items price is strictly above FreeShippingThreshold.
type PricingPolicy struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
	Currency              currency.Unit
}

func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		FreeShippingThreshold: decimal.NewFromInt(100),
		FlatShippingFee:       decimal.NewFromInt(10),
		TaxRate:               decimal.RequireFromString("0.15"),
		Currency:              currency.USD,
	}
}

type PriceBreakdown struct {
	Currency      currency.Unit
	ItemsPrice    decimal.Decimal
	ShippingPrice decimal.Decimal
	TaxPrice      decimal.Decimal
	TotalPrice    decimal.Decimal
}

var priceTolerance = decimal.RequireFromString("0.01")

const pricePlaces = 2

// ComputeTotals prices a cart. catalogPrices, keyed by product id, take precedence over
// the price cached on the cart item; pass nil to price with the cached values.
//
// An empty cart still pays the flat shipping fee. Checkout rejects empty carts, so the
// only place this shows is a cart summary.
func ComputeTotals(cart Cart, catalogPrices map[uuid.UUID]decimal.Decimal, p PricingPolicy) PriceBreakdown {
	items := decimal.Zero
	for _, item := range cart.Items {
		price := item.Price.Amount
		if catalogPrice, ok := catalogPrices[item.ProductID]; ok {
			price = catalogPrice
		}
		items = items.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	items = items.Round(pricePlaces)

	shipping := p.FlatShippingFee
	if items.GreaterThan(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := items.Mul(p.TaxRate).Round(pricePlaces)

	cur := p.Currency
	if c, ok := cart.Currency(); ok {
		cur = c
	}

	return PriceBreakdown{
		Currency:      cur,
		ItemsPrice:    items,
		ShippingPrice: shipping.Round(pricePlaces),
		TaxPrice:      tax,
		TotalPrice:    items.Add(shipping).Add(tax).Round(pricePlaces),
	}
}

// Matches compares two breakdowns component-wise within one cent.
func (b PriceBreakdown) Matches(other PriceBreakdown) bool {
	pairs := [][2]decimal.Decimal{
		{b.ItemsPrice, other.ItemsPrice},
		{b.ShippingPrice, other.ShippingPrice},
		{b.TaxPrice, other.TaxPrice},
		{b.TotalPrice, other.TotalPrice},
	}

	for _, p := range pairs {
		if p[0].Sub(p[1]).Abs().GreaterThan(priceTolerance) {
			return false
		}
	}

	return true
}

// Consistent reports whether total == items + shipping + tax within one cent.
func (b PriceBreakdown) Consistent() bool {
	sum := b.ItemsPrice.Add(b.ShippingPrice).Add(b.TaxPrice)
	return sum.Sub(b.TotalPrice).Abs().LessThanOrEqual(priceTolerance)
}
