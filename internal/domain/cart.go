package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
)

type Cart struct {
	OwnerID         string
	Items           []CartItem
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod

	UpdatedAt time.Time
}

type CartItem struct {
	ProductID uuid.UUID
	Name      string
	Price     Money
	Quantity  int
	Image     string
	Variant   string

	CreatedAt time.Time
}

func NewCart(ownerID string) Cart {
	return Cart{
		OwnerID:       ownerID,
		PaymentMethod: PaymentMethodCard,
	}
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c Cart) Item(productID uuid.UUID) (CartItem, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i], true
	}

	return CartItem{}, false
}

// Currency of the cart; false for an empty cart.
func (c Cart) Currency() (currency.Unit, bool) {
	if c.IsEmpty() {
		return currency.Unit{}, false
	}

	return c.Items[0].Price.Currency, true
}

// AddItem merges item into the cart. A product already present gets its quantity
// increased; the resulting quantity is clamped to stock. A product with no stock
// left is rejected.
func (c *Cart) AddItem(item CartItem, stock int) error {
	if item.ProductID == uuid.Nil {
		return fmt.Errorf("%w: productID is empty", ErrValidation)
	}
	if item.Quantity < 1 {
		return fmt.Errorf("%w: quantity[%d] must be at least 1", ErrValidation, item.Quantity)
	}
	if item.Price.IsNegative() {
		return fmt.Errorf("%w: price[%s] is negative", ErrValidation, item.Price)
	}
	if stock < 1 {
		return fmt.Errorf("%w: product[%s] is out of stock", ErrValidation, item.ProductID)
	}
	if cur, ok := c.Currency(); ok && cur.String() != item.Price.Currency.String() {
		return fmt.Errorf("%w: currency[%s] differs from cart currency[%s]", ErrValidation, item.Price.Currency, cur)
	}

	if i := c.indexOf(item.ProductID); i >= 0 {
		c.Items[i].Quantity = min(c.Items[i].Quantity+item.Quantity, stock)
		return nil
	}

	item.Quantity = min(item.Quantity, stock)
	c.Items = append(c.Items, item)

	return nil
}

// RemoveItem reports whether an item was removed; removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}

	c.Items = append(c.Items[:i], c.Items[i+1:]...)

	return true
}

// AdjustQuantity changes the quantity by delta. A result below 1 removes the item,
// a result above stock is clamped to stock.
func (c *Cart) AdjustQuantity(productID uuid.UUID, delta int, stock int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return fmt.Errorf("%w: product[%s] is not in the cart", ErrNotFound, productID)
	}

	qty := c.Items[i].Quantity + delta
	if qty < 1 {
		c.RemoveItem(productID)
		return nil
	}

	if delta > 0 && qty > stock {
		qty = max(stock, c.Items[i].Quantity)
	}
	c.Items[i].Quantity = qty

	return nil
}

// Clear drops the line items; address and payment choice survive for the next checkout.
func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) SetShippingAddress(addr ShippingAddress) error {
	if err := addr.Validate(); err != nil {
		return err
	}

	c.ShippingAddress = addr

	return nil
}

func (c *Cart) SetPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.PaymentMethod = method

	return nil
}

// ValidateForCheckout checks everything an order snapshot needs.
func (c Cart) ValidateForCheckout() error {
	if c.IsEmpty() {
		return fmt.Errorf("%w: no order items", ErrValidation)
	}

	cur, _ := c.Currency()
	seen := make(map[uuid.UUID]struct{}, len(c.Items))

	for i, item := range c.Items {
		if item.ProductID == uuid.Nil {
			return fmt.Errorf("%w: item %d: productID is empty", ErrValidation, i)
		}
		if _, dup := seen[item.ProductID]; dup {
			return fmt.Errorf("%w: item %d: product[%s] is listed twice", ErrValidation, i, item.ProductID)
		}
		seen[item.ProductID] = struct{}{}

		if item.Name == "" {
			return fmt.Errorf("%w: item %d: name is empty", ErrValidation, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d: quantity[%d] must be at least 1", ErrValidation, i, item.Quantity)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("%w: item %d: price[%s] is negative", ErrValidation, i, item.Price)
		}
		if item.Price.Currency.String() != cur.String() {
			return fmt.Errorf("%w: item %d: currency[%s] differs from %s", ErrValidation, i, item.Price.Currency, cur)
		}
	}

	if err := c.ShippingAddress.Validate(); err != nil {
		return err
	}

	return c.PaymentMethod.Validate()
}

func (c Cart) indexOf(productID uuid.UUID) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}

	return -1
}
