package cartstore

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// cartDocument is the serialized form of a cart session.
type cartDocument struct {
	OwnerID         string             `json:"ownerId"`
	Items           []cartItemDocument `json:"items"`
	ShippingAddress addressDocument    `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

type addressDocument struct {
	FullName   string `json:"fullName,omitempty"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type cartItemDocument struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
	Quantity  int             `json:"qty"`
	Image     string          `json:"image,omitempty"`
	Variant   string          `json:"variant,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func toDocument(cart domain.Cart) cartDocument {
	items := make([]cartItemDocument, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemDocument{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.Amount,
			Currency:  item.Price.Currency.String(),
			Quantity:  item.Quantity,
			Image:     item.Image,
			Variant:   item.Variant,
			CreatedAt: item.CreatedAt,
		})
	}

	return cartDocument{
		OwnerID:         cart.OwnerID,
		Items:           items,
		ShippingAddress: addressDocument(cart.ShippingAddress),
		PaymentMethod:   string(cart.PaymentMethod),
		UpdatedAt:       cart.UpdatedAt,
	}
}

func fromDocument(doc cartDocument) (domain.Cart, error) {
	cart := domain.NewCart(doc.OwnerID)
	cart.ShippingAddress = domain.ShippingAddress(doc.ShippingAddress)
	cart.UpdatedAt = doc.UpdatedAt
	if doc.PaymentMethod != "" {
		cart.PaymentMethod = domain.PaymentMethod(doc.PaymentMethod)
	}

	for _, item := range doc.Items {
		cur, err := domain.ParseCurrency(item.Currency)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("item[%s]: %w", item.ProductID, err)
		}

		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     domain.NewMoney(item.Price, cur),
			Quantity:  item.Quantity,
			Image:     item.Image,
			Variant:   item.Variant,
			CreatedAt: item.CreatedAt,
		})
	}

	return cart, nil
}

func cloneCart(cart domain.Cart) domain.Cart {
	cart.Items = slices.Clone(cart.Items)
	return cart
}
