package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	GetProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error)
	// SearchProducts matches keyword case-insensitively against the name; empty lists all.
	SearchProducts(ctx context.Context, keyword string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) (bool, error)
}
