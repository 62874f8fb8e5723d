// Command seed loads the demo accounts and sample products. It does nothing when
// the admin account already exists.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/currency"
)

const (
	adminEmail   = "admin@example.com"
	seedPassword = "123456"
)

var configPath = flag.String("config", "", "config file path")

type sampleProduct struct {
	name        string
	description string
	price       string
	stock       int
}

var sampleProducts = []sampleProduct{
	{name: "Airpods", description: "Bluetooth tech", price: "89.99", stock: 3},
	{name: "iPhone 13", description: "Mobile phone", price: "599.99", stock: 10},
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, logCloser, err := logger.New(cfg.Logger, "storefront-seed", cfg.App.Env)
	if err != nil {
		return fmt.Errorf("logger.New: %w", err)
	}
	defer logCloser.Close()

	pricing, err := cfg.Pricing.Policy()
	if err != nil {
		return fmt.Errorf("cfg.Pricing.Policy: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := repository.Migrate(pool); err != nil {
		return fmt.Errorf("repository.Migrate: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pool.Begin: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Warn("tx.Rollback failed", "error", err)
		}
	}()

	seeded, err := seed(ctx, tx, pricing.Currency, port.UTCClock().Now())
	if err != nil {
		return err
	}
	if !seeded {
		log.Info("admin account exists, nothing to seed")
		return nil
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	log.Info("data imported", slog.Int("users", 2), slog.Int("products", len(sampleProducts)))

	return nil
}

func seed(ctx context.Context, tx pgx.Tx, cur currency.Unit, now time.Time) (bool, error) {
	users := repository.NewUsersWithTx(tx)
	products := repository.NewProductsWithTx(tx)

	_, err := users.GetUserByEmail(ctx, adminEmail)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, domain.ErrNotFound):
		return false, fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	hash, err := auth.HashPassword(seedPassword, bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	accounts := []domain.User{
		{ID: uuid.New(), Name: "Admin User", Email: adminEmail, PasswordHash: hash, IsAdmin: true, CreatedAt: now},
		{ID: uuid.New(), Name: "John Doe", Email: "user@example.com", PasswordHash: hash, CreatedAt: now},
	}
	for _, account := range accounts {
		if _, err := users.CreateUser(ctx, account); err != nil {
			return false, fmt.Errorf("users.CreateUser: %w", err)
		}
	}

	for _, sp := range sampleProducts {
		product := domain.Product{
			ID:           uuid.New(),
			UserID:       accounts[0].ID,
			Name:         sp.name,
			Image:        "https://placehold.co/400",
			Brand:        "Sample brand",
			Category:     "Electronics",
			Description:  sp.description,
			Price:        domain.NewMoney(decimal.RequireFromString(sp.price), cur),
			CountInStock: sp.stock,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if _, err := products.CreateProduct(ctx, product); err != nil {
			return false, fmt.Errorf("products.CreateProduct: %w", err)
		}
	}

	return true, nil
}
