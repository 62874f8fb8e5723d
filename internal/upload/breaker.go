package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/sony/gobreaker/v2"
)

type breakerStore struct {
	inner   port.ImageStore
	breaker *gobreaker.CircuitBreaker[string]
	timeout time.Duration
}

// WithBreaker guards an image store: five consecutive failures open the circuit for
// thirty seconds, during which uploads fail fast with ErrTransient.
func WithBreaker(inner port.ImageStore, timeout time.Duration, logger *slog.Logger) port.ImageStore {
	settings := gobreaker.Settings{
		Name:        "image-store",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &breakerStore{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
		timeout: timeout,
	}
}

func (s *breakerStore) Put(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	location, err := s.breaker.Execute(func() (string, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		return s.inner.Put(ctx, name, contentType, r)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: image storage: %w", domain.ErrTransient, err)
	}
	if err != nil {
		return "", fmt.Errorf("image storage: %w", err)
	}

	return location, nil
}
