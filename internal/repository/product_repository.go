package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type productRepository struct {
	q *db.Queries
}

func NewProducts(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

func NewProductsWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q: db.New(tx),
	}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	if productID == uuid.Nil {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}

	row, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, wrap("q.GetProduct", err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) GetProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	rows, err := r.q.GetProducts(ctx, productIDs)
	if err != nil {
		return nil, wrap("q.GetProducts", err)
	}

	return mapProductsToDomain(rows)
}

func (r *productRepository) SearchProducts(ctx context.Context, keyword string) ([]domain.Product, error) {
	rows, err := r.q.SearchProducts(ctx, escapeLike(strings.TrimSpace(keyword)))
	if err != nil {
		return nil, wrap("q.SearchProducts", err)
	}

	return mapProductsToDomain(rows)
}

func (r *productRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == uuid.Nil {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}
	if product.CountInStock < 0 || product.CountInStock > domain.MaxCountInStock {
		return domain.Product{}, fmt.Errorf("%w: countInStock[%d] is out of range", domain.ErrValidation, product.CountInStock)
	}

	var userID *uuid.UUID
	if product.UserID != uuid.Nil {
		userID = &product.UserID
	}

	row, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		ID:            product.ID,
		UserID:        userID,
		Name:          product.Name,
		Image:         product.Image,
		Brand:         product.Brand,
		Category:      product.Category,
		Description:   product.Description,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		CountInStock:  int32(product.CountInStock),
	})
	if err != nil {
		return domain.Product{}, wrap("q.CreateProduct", err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == uuid.Nil {
		return domain.Product{}, fmt.Errorf("productID is empty")
	}
	if product.CountInStock < 0 || product.CountInStock > domain.MaxCountInStock {
		return domain.Product{}, fmt.Errorf("%w: countInStock[%d] is out of range", domain.ErrValidation, product.CountInStock)
	}

	row, err := r.q.UpdateProduct(ctx, db.UpdateProductParams{
		Name:          product.Name,
		Image:         product.Image,
		Brand:         product.Brand,
		Category:      product.Category,
		Description:   product.Description,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		CountInStock:  int32(product.CountInStock),
		ID:            product.ID,
	})
	if err != nil {
		return domain.Product{}, wrap("q.UpdateProduct", err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) DeleteProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	if productID == uuid.Nil {
		return false, fmt.Errorf("productID is empty")
	}

	rowsAffected, err := r.q.DeleteProduct(ctx, productID)
	if err != nil {
		return false, wrap("q.DeleteProduct", err)
	}

	return rowsAffected > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	cur, err := domain.ParseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, err
	}

	var userID uuid.UUID
	if row.UserID != nil {
		userID = *row.UserID
	}

	return domain.Product{
		ID:           row.ID,
		UserID:       userID,
		Name:         row.Name,
		Image:        row.Image,
		Brand:        row.Brand,
		Category:     row.Category,
		Description:  row.Description,
		Price:        domain.NewMoney(row.PriceAmount, cur),
		CountInStock: int(row.CountInStock),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}

func mapProductsToDomain(rows []db.Product) ([]domain.Product, error) {
	var products []domain.Product

	for _, row := range rows {
		product, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}

		products = append(products, product)
	}

	return products, nil
}
