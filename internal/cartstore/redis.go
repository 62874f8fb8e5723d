package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis stores each cart as one JSON value under cart:<owner>. Every Save
// refreshes the ttl, so only abandoned carts expire.
func NewRedis(client redis.UniversalClient, ttl time.Duration) port.CartStore {
	return &redisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *redisStore) Load(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	data, err := s.client.Get(ctx, cartKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewCart(ownerID), nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("client.Get: %w", mapError(err))
	}

	var doc cartDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Cart{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	cart, err := fromDocument(doc)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("fromDocument: %w", err)
	}

	return cart, nil
}

func (s *redisStore) Save(ctx context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	data, err := json.Marshal(toDocument(cart))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := s.client.Set(ctx, cartKey(cart.OwnerID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", mapError(err))
	}

	return nil
}

func (s *redisStore) Delete(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	if err := s.client.Del(ctx, cartKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", mapError(err))
	}

	return nil
}

func cartKey(ownerID string) string {
	return fmt.Sprintf("cart:%s", ownerID)
}

func mapError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("%w: %w", domain.ErrTransient, err)
	}

	return err
}
