package domain

import (
	"fmt"
	"strings"
)

type ShippingAddress struct {
	FullName   string
	Address    string
	City       string
	PostalCode string
	Country    string
	Phone      string
}

// Validate reports every blank field at once so a form can highlight all of them.
func (a ShippingAddress) Validate() error {
	var missing []string

	fields := []struct {
		name  string
		value string
	}{
		{"fullName", a.FullName},
		{"address", a.Address},
		{"city", a.City},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
		{"phone", a.Phone},
	}

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: shipping address is missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	return nil
}

type PaymentMethod string

const (
	PaymentMethodCard           PaymentMethod = "Card"
	PaymentMethodPayPal         PaymentMethod = "PayPal"
	PaymentMethodCashOnDelivery PaymentMethod = "CashOnDelivery"
)

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodCard, PaymentMethodPayPal, PaymentMethodCashOnDelivery:
		return nil
	case "":
		return fmt.Errorf("%w: payment method is empty", ErrValidation)
	default:
		return fmt.Errorf("%w: payment method[%s] is not supported", ErrValidation, m)
	}
}

// PaymentReceipt is what the (simulated) payment provider hands back on success.
type PaymentReceipt struct {
	ID           string
	Status       string
	UpdateTime   string
	EmailAddress string
}

func (r PaymentReceipt) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: payment receipt id is empty", ErrValidation)
	}

	return nil
}
