package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestCatalogService(t *testing.T) {
	ctx := t.Context()
	products := newFakeProducts()
	svc := service.NewCatalogService(products, currency.USD, newTickingClock())

	admin := domain.Actor{UserID: uuid.New(), IsAdmin: true}
	customer := randomActor()

	_, err := svc.Create(ctx, customer, service.ProductInput{})
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Create(ctx, domain.Actor{}, service.ProductInput{})
	require.ErrorIs(t, err, domain.ErrUnauthenticated)

	sample, err := svc.Create(ctx, admin, service.ProductInput{})
	require.NoError(t, err)
	assert.Equal(t, "Sample name", sample.Name)
	assert.Equal(t, "/images/sample.jpg", sample.Image)
	assert.Equal(t, admin.UserID, sample.UserID)
	assert.True(t, sample.Price.Amount.IsZero())
	assert.Equal(t, "USD", sample.Price.Currency.String())

	updated, err := svc.Update(ctx, admin, sample.ID, service.ProductInput{
		Name:         "Airpods Wireless Bluetooth Headphones",
		Price:        decimal.RequireFromString("89.99"),
		Image:        "/images/airpods.jpg",
		Brand:        "Apple",
		Category:     "Electronics",
		Description:  "Bluetooth technology lets you connect it with compatible devices wirelessly",
		CountInStock: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "Apple", updated.Brand)
	assert.Equal(t, 10, updated.CountInStock)

	_, err = svc.Update(ctx, admin, sample.ID, service.ProductInput{Name: "x", CountInStock: -1})
	require.ErrorIs(t, err, domain.ErrValidation)

	found, err := svc.Search(ctx, "  airpods ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, sample.ID, found[0].ID)

	got, err := svc.Get(ctx, sample.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Name, got.Name)

	require.ErrorIs(t, svc.Delete(ctx, customer, sample.ID), domain.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, admin, sample.ID))
	require.ErrorIs(t, svc.Delete(ctx, admin, sample.ID), domain.ErrNotFound)

	_, err = svc.Get(ctx, sample.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogService_StockAboveLimit(t *testing.T) {
	ctx := t.Context()
	products := newFakeProducts()
	svc := service.NewCatalogService(products, currency.USD, newTickingClock())
	admin := domain.Actor{UserID: uuid.New(), IsAdmin: true}

	_, err := svc.Create(ctx, admin, service.ProductInput{Name: "Airpods", CountInStock: 1 << 32})
	require.ErrorIs(t, err, domain.ErrValidation)

	product, err := svc.Create(ctx, admin, service.ProductInput{Name: "Airpods", CountInStock: domain.MaxCountInStock})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxCountInStock, product.CountInStock)

	_, err = svc.Update(ctx, admin, product.ID, service.ProductInput{Name: "Airpods", CountInStock: domain.MaxCountInStock + 1})
	require.ErrorIs(t, err, domain.ErrValidation)

	got, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxCountInStock, got.CountInStock)
}
