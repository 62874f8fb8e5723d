package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxCountInStock is the largest stock the catalog can store.
const MaxCountInStock = math.MaxInt32

type Product struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	Image        string
	Brand        string
	Category     string
	Description  string
	Price        Money
	CountInStock int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is empty", ErrValidation)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: product price[%s] is negative", ErrValidation, p.Price)
	}
	if p.CountInStock < 0 {
		return fmt.Errorf("%w: countInStock[%d] is negative", ErrValidation, p.CountInStock)
	}
	if p.CountInStock > MaxCountInStock {
		return fmt.Errorf("%w: countInStock[%d] is above %d", ErrValidation, p.CountInStock, MaxCountInStock)
	}

	return nil
}

// CartItem builds a cart line for qty units priced at the current catalog price.
func (p Product) CartItem(qty int, variant string, now time.Time) CartItem {
	return CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		Image:     p.Image,
		Variant:   variant,
		CreatedAt: now,
	}
}
