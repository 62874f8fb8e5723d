package cartstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type memoryStore struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

// NewMemory keeps carts in process memory. Carts are lost on restart.
func NewMemory() port.CartStore {
	return &memoryStore{
		carts: make(map[string]domain.Cart),
	}
}

func (s *memoryStore) Load(_ context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[ownerID]
	if !ok {
		return domain.NewCart(ownerID), nil
	}

	return cloneCart(cart), nil
}

func (s *memoryStore) Save(_ context.Context, cart domain.Cart) error {
	if cart.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[cart.OwnerID] = cloneCart(cart)

	return nil
}

func (s *memoryStore) Delete(_ context.Context, ownerID string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, ownerID)

	return nil
}
