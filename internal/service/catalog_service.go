package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ProductInput carries the editable product fields. Blank text fields of a new
// product are filled with sample values so an admin can create first and edit later.
type ProductInput struct {
	Name         string
	Price        decimal.Decimal
	Image        string
	Brand        string
	Category     string
	Description  string
	CountInStock int
}

const (
	sampleName        = "Sample name"
	sampleImage       = "/images/sample.jpg"
	sampleBrand       = "Sample brand"
	sampleCategory    = "Sample category"
	sampleDescription = "Sample description"
)

type CatalogService struct {
	products port.ProductRepository
	currency currency.Unit
	clock    port.Clock
}

func NewCatalogService(products port.ProductRepository, cur currency.Unit, clock port.Clock) *CatalogService {
	return &CatalogService{
		products: products,
		currency: cur,
		clock:    clock,
	}
}

func (s *CatalogService) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	products, err := s.products.SearchProducts(ctx, strings.TrimSpace(keyword))
	if err != nil {
		return nil, fmt.Errorf("products.SearchProducts: %w", err)
	}

	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	return product, nil
}

func (s *CatalogService) Create(ctx context.Context, actor domain.Actor, in ProductInput) (domain.Product, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Product{}, err
	}

	now := s.clock.Now()
	product := domain.Product{
		ID:           uuid.New(),
		UserID:       actor.UserID,
		Name:         orDefault(in.Name, sampleName),
		Image:        orDefault(in.Image, sampleImage),
		Brand:        orDefault(in.Brand, sampleBrand),
		Category:     orDefault(in.Category, sampleCategory),
		Description:  orDefault(in.Description, sampleDescription),
		Price:        domain.NewMoney(in.Price, s.currency),
		CountInStock: in.CountInStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}

	created, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.CreateProduct: %w", err)
	}

	return created, nil
}

// Update overwrites every editable field; the currency stays the one the product
// was created with.
func (s *CatalogService) Update(ctx context.Context, actor domain.Actor, productID uuid.UUID, in ProductInput) (domain.Product, error) {
	if err := requireAdmin(actor); err != nil {
		return domain.Product{}, err
	}

	product, err := s.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}

	product.Name = in.Name
	product.Price = domain.NewMoney(in.Price, product.Price.Currency)
	product.Image = in.Image
	product.Brand = in.Brand
	product.Category = in.Category
	product.Description = in.Description
	product.CountInStock = in.CountInStock
	product.UpdatedAt = s.clock.Now()

	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}

	updated, err := s.products.UpdateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.UpdateProduct: %w", err)
	}

	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, actor domain.Actor, productID uuid.UUID) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	deleted, err := s.products.DeleteProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("products.DeleteProduct: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: product[%s]", domain.ErrNotFound, productID)
	}

	return nil
}

func requireAdmin(actor domain.Actor) error {
	if !actor.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if !actor.IsAdmin {
		return fmt.Errorf("%w: admin only", domain.ErrForbidden)
	}

	return nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}

	return s
}
