package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/cartstore"
	"github.com/nikolayk812/storefront/internal/config"
	"github.com/nikolayk812/storefront/internal/events"
	h "github.com/nikolayk812/storefront/internal/http"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/upload"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var configPath = flag.String("config", "", "config file path")

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	log, logCloser, err := logger.New(cfg.Logger, cfg.App.Name, cfg.App.Env)
	if err != nil {
		return fmt.Errorf("logger.New: %w", err)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := newPool(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.Postgres.Migrate {
		if err := repository.Migrate(pool); err != nil {
			return fmt.Errorf("repository.Migrate: %w", err)
		}
		log.Info("migrations applied")
	}

	pricing, err := cfg.Pricing.Policy()
	if err != nil {
		return fmt.Errorf("cfg.Pricing.Policy: %w", err)
	}

	clock := port.UTCClock()
	m := metrics.New(cfg.App.Name)

	users := repository.NewUsers(pool)
	products := repository.NewProducts(pool)
	orders := repository.NewOrders(pool)

	carts, closeCarts, err := newCartStore(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer closeCarts()

	orderEvents := events.NewNop()
	if cfg.Kafka.Enabled {
		publisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer publisher.Close()

		orderEvents = publisher
		log.Info("order events go to kafka", "topic", cfg.Kafka.Topic)
	}

	disk, err := upload.NewDisk(cfg.Upload.Dir, cfg.Upload.URLPrefix)
	if err != nil {
		return fmt.Errorf("upload.NewDisk: %w", err)
	}
	images := upload.WithBreaker(disk, cfg.Upload.WriteTimeout, log)

	authSvc := auth.NewService(users, auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer, clock), clock, 0)
	catalogSvc := service.NewCatalogService(products, pricing.Currency, clock)
	cartSvc := service.NewCartService(carts, products, pricing, clock)
	orderSvc := service.NewOrderService(orders, products, carts, orderEvents, pricing, clock, log, m)
	uploadSvc := upload.NewService(images, cfg.Upload.MaxBytes, clock)

	handler := h.NewHandler(h.Config{
		Production:      cfg.App.IsProduction(),
		MaxBodyBytes:    cfg.HTTP.MaxBodyBytes,
		MaxUploadBytes:  cfg.Upload.MaxBytes,
		UploadDir:       cfg.Upload.Dir,
		UploadURLPrefix: cfg.Upload.URLPrefix,
		Pricing:         pricing,
	}, authSvc, catalogSvc, cartSvc, orderSvc, uploadSvc, m, log)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      otelhttp.NewHandler(handler.Routes(), cfg.App.Name),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  60 * time.Second,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelError),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("storefront starting", "addr", cfg.HTTP.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("srv.ListenAndServe: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown: %w", err)
	}

	log.Info("server exited")

	return nil
}

func newPool(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.NewWithConfig: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pool.Ping: %w", err)
	}

	return pool, nil
}

// newCartStore falls back to process memory when redis is disabled; carts then
// do not survive a restart.
func newCartStore(ctx context.Context, cfg config.RedisConfig, log *slog.Logger) (port.CartStore, func(), error) {
	if !cfg.Enabled {
		log.Warn("redis disabled, carts are kept in memory")
		return cartstore.NewMemory(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("client.Ping: %w", err)
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warn("redis close failed", "error", err)
		}
	}

	return cartstore.NewRedis(client, cfg.CartTTL), closeFn, nil
}
