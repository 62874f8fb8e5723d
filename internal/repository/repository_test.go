package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// postgresFixture is embedded by every repository suite: one migrated container per suite.
type postgresFixture struct {
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
}

func (f *postgresFixture) start(ctx context.Context) error {
	container, connStr, err := startPostgres(ctx)
	if err != nil {
		return err
	}
	f.container = container

	f.pool, err = pgxpool.New(ctx, connStr)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := repository.Migrate(f.pool); err != nil {
		return fmt.Errorf("repository.Migrate: %w", err)
	}

	return nil
}

func (f *postgresFixture) stop() {
	if f.pool != nil {
		f.pool.Close()
	}
	if f.container != nil {
		_ = testcontainers.TerminateContainer(f.container)
	}
}

func (f *postgresFixture) truncate(ctx context.Context) error {
	_, err := f.pool.Exec(ctx, "TRUNCATE TABLE order_items, orders, products, users CASCADE")
	return err
}

func randomUser() domain.User {
	return domain.User{
		ID:           uuid.New(),
		Name:         gofakeit.Name(),
		Email:        gofakeit.Email(),
		PasswordHash: []byte(gofakeit.Password(true, true, true, false, false, 20)),
	}
}

func randomProduct() domain.Product {
	return domain.Product{
		ID:           uuid.New(),
		Name:         gofakeit.ProductName(),
		Image:        "/uploads/" + gofakeit.UUID() + ".jpg",
		Brand:        gofakeit.Company(),
		Category:     gofakeit.ProductCategory(),
		Description:  gofakeit.ProductDescription(),
		Price:        randomMoney(currency.USD),
		CountInStock: gofakeit.IntRange(0, 50),
	}
}

func randomMoney(cur currency.Unit) domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		Currency: cur,
	}
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// tag is not a recognized currency
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
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

func randomOrder(userID uuid.UUID) domain.Order {
	cur := randomCurrency()

	cart := domain.NewCart(userID.String())
	for range gofakeit.IntRange(1, 4) {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: uuid.New(),
			Name:      gofakeit.ProductName(),
			Price:     randomMoney(cur),
			Quantity:  gofakeit.IntRange(1, 5),
			Image:     gofakeit.URL(),
			Variant:   gofakeit.Color(),
		})
	}
	cart.ShippingAddress = randomAddress()

	policy := domain.DefaultPricingPolicy()
	policy.Currency = cur
	prices := domain.ComputeTotals(cart, nil, policy)

	return domain.NewOrder(uuid.New(), userID, cart, prices, gofakeit.PastDate().UTC().Truncate(0))
}

var currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
	return x.String() == y.String()
})

var decimalComparer = cmp.Comparer(func(x, y decimal.Decimal) bool {
	return x.Equal(y)
})

var timeComparer = cmp.Comparer(func(x, y time.Time) bool {
	return x.Sub(y).Abs() < time.Millisecond
})

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Order{}, "Customer"),
		currencyComparer,
		decimalComparer,
		timeComparer,
		cmpopts.EquateEmpty(),
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)
}

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Product{}, "CreatedAt", "UpdatedAt"),
		currencyComparer,
		decimalComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.False(t, actual.CreatedAt.IsZero())
}
