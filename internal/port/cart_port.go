package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// CartStore persists the whole cart as one document. Load of an unknown owner
// returns a fresh empty cart, not an error.
type CartStore interface {
	Load(ctx context.Context, ownerID string) (domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
	Delete(ctx context.Context, ownerID string) error
}
