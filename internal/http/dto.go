package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/shopspring/decimal"
)

// Money travels as a JSON number with two decimals; the currency is a separate field.

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token,omitempty"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:      u.ID.String(),
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	}
}

func toSessionResponse(s auth.Session) userResponse {
	resp := toUserResponse(s.User)
	resp.Token = s.Token

	return resp
}

type productRequest struct {
	Name         string  `json:"name" validate:"max=200"`
	Price        float64 `json:"price" validate:"gte=0"`
	Image        string  `json:"image"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	CountInStock int     `json:"countInStock" validate:"gte=0,max=2147483647"`
}

func (r productRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:         r.Name,
		Price:        decimal.NewFromFloat(r.Price).Round(2),
		Image:        r.Image,
		Brand:        r.Brand,
		Category:     r.Category,
		Description:  r.Description,
		CountInStock: r.CountInStock,
	}
}

type productResponse struct {
	ID           string    `json:"id"`
	User         string    `json:"user,omitempty"`
	Name         string    `json:"name"`
	Image        string    `json:"image"`
	Brand        string    `json:"brand"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	CountInStock int       `json:"countInStock"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toProductResponse(p domain.Product) productResponse {
	resp := productResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Image:        p.Image,
		Brand:        p.Brand,
		Category:     p.Category,
		Description:  p.Description,
		Price:        p.Price.Amount.InexactFloat64(),
		Currency:     p.Price.Currency.String(),
		CountInStock: p.CountInStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.UserID != uuid.Nil {
		resp.User = p.UserID.String()
	}

	return resp
}

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Qty       int    `json:"qty" validate:"omitempty,min=1,max=1000"`
	Variant   string `json:"variant" validate:"max=100"`
}

type adjustQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type shippingAddressDTO struct {
	FullName   string `json:"fullName" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
}

func (a shippingAddressDTO) toDomain() domain.ShippingAddress {
	return domain.ShippingAddress(a)
}

func toShippingAddressDTO(a domain.ShippingAddress) shippingAddressDTO {
	return shippingAddressDTO(a)
}

type paymentMethodRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=Card PayPal CashOnDelivery"`
}

type cartItemResponse struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Qty       int     `json:"qty"`
	Variant   string  `json:"variant,omitempty"`
}

type cartResponse struct {
	CartItems       []cartItemResponse `json:"cartItems"`
	ShippingAddress shippingAddressDTO `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	UpdatedAt       *time.Time         `json:"updatedAt,omitempty"`
}

func toCartResponse(c domain.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, cartItemResponse{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price.Amount.InexactFloat64(),
			Currency:  item.Price.Currency.String(),
			Qty:       item.Quantity,
			Variant:   item.Variant,
		})
	}

	resp := cartResponse{
		CartItems:       items,
		ShippingAddress: toShippingAddressDTO(c.ShippingAddress),
		PaymentMethod:   string(c.PaymentMethod),
	}
	if !c.UpdatedAt.IsZero() {
		resp.UpdatedAt = &c.UpdatedAt
	}

	return resp
}

type pricesResponse struct {
	Currency      string  `json:"currency"`
	ItemsPrice    float64 `json:"itemsPrice"`
	ShippingPrice float64 `json:"shippingPrice"`
	TaxPrice      float64 `json:"taxPrice"`
	TotalPrice    float64 `json:"totalPrice"`
}

func toPricesResponse(b domain.PriceBreakdown) pricesResponse {
	return pricesResponse{
		Currency:      b.Currency.String(),
		ItemsPrice:    b.ItemsPrice.InexactFloat64(),
		ShippingPrice: b.ShippingPrice.InexactFloat64(),
		TaxPrice:      b.TaxPrice.InexactFloat64(),
		TotalPrice:    b.TotalPrice.InexactFloat64(),
	}
}

type cartSummaryResponse struct {
	Cart   cartResponse   `json:"cart"`
	Prices pricesResponse `json:"prices"`
}

type orderItemRequest struct {
	Product string  `json:"product" validate:"required,uuid"`
	Name    string  `json:"name" validate:"required"`
	Qty     int     `json:"qty" validate:"min=1,max=1000"`
	Image   string  `json:"image"`
	Price   float64 `json:"price" validate:"gte=0"`
	Variant string  `json:"variant"`
}

// createOrderRequest mirrors the checkout screen. The four prices are the client's
// quote; when all of them are sent they must match the server's own calculation.
type createOrderRequest struct {
	OrderItems      []orderItemRequest `json:"orderItems" validate:"dive"`
	ShippingAddress shippingAddressDTO `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod" validate:"required"`
	ItemsPrice      *float64           `json:"itemsPrice" validate:"omitempty,gte=0"`
	ShippingPrice   *float64           `json:"shippingPrice" validate:"omitempty,gte=0"`
	TaxPrice        *float64           `json:"taxPrice" validate:"omitempty,gte=0"`
	TotalPrice      *float64           `json:"totalPrice" validate:"omitempty,gte=0"`
}

func (r createOrderRequest) toCart(actor domain.Actor, pricing domain.PricingPolicy) domain.Cart {
	cart := domain.NewCart(actor.CartOwner())
	cart.ShippingAddress = r.ShippingAddress.toDomain()
	cart.PaymentMethod = domain.PaymentMethod(r.PaymentMethod)

	for _, item := range r.OrderItems {
		cart.Items = append(cart.Items, domain.CartItem{
			ProductID: uuid.MustParse(item.Product),
			Name:      item.Name,
			Price:     domain.NewMoney(decimal.NewFromFloat(item.Price).Round(2), pricing.Currency),
			Quantity:  item.Qty,
			Image:     item.Image,
			Variant:   item.Variant,
		})
	}

	return cart
}

func (r createOrderRequest) quote(pricing domain.PricingPolicy) *domain.PriceBreakdown {
	if r.ItemsPrice == nil || r.ShippingPrice == nil || r.TaxPrice == nil || r.TotalPrice == nil {
		return nil
	}

	return &domain.PriceBreakdown{
		Currency:      pricing.Currency,
		ItemsPrice:    decimal.NewFromFloat(*r.ItemsPrice),
		ShippingPrice: decimal.NewFromFloat(*r.ShippingPrice),
		TaxPrice:      decimal.NewFromFloat(*r.TaxPrice),
		TotalPrice:    decimal.NewFromFloat(*r.TotalPrice),
	}
}

type paymentReceiptDTO struct {
	ID           string `json:"id" validate:"required"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time"`
	EmailAddress string `json:"email_address" validate:"omitempty,email"`
}

func (r paymentReceiptDTO) toDomain() domain.PaymentReceipt {
	return domain.PaymentReceipt(r)
}

type customerDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type orderItemResponse struct {
	Product string  `json:"product"`
	Name    string  `json:"name"`
	Qty     int     `json:"qty"`
	Image   string  `json:"image"`
	Price   float64 `json:"price"`
	Variant string  `json:"variant,omitempty"`
}

type orderResponse struct {
	ID              string              `json:"id"`
	User            customerDTO         `json:"user"`
	OrderItems      []orderItemResponse `json:"orderItems"`
	ShippingAddress shippingAddressDTO  `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	PaymentResult   *paymentReceiptDTO  `json:"paymentResult,omitempty"`
	Currency        string              `json:"currency"`
	ItemsPrice      float64             `json:"itemsPrice"`
	ShippingPrice   float64             `json:"shippingPrice"`
	TaxPrice        float64             `json:"taxPrice"`
	TotalPrice      float64             `json:"totalPrice"`
	Status          string              `json:"status"`
	IsPaid          bool                `json:"isPaid"`
	PaidAt          *time.Time          `json:"paidAt,omitempty"`
	IsDelivered     bool                `json:"isDelivered"`
	DeliveredAt     *time.Time          `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func toOrderResponse(o domain.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemResponse{
			Product: item.ProductID.String(),
			Name:    item.Name,
			Qty:     item.Quantity,
			Image:   item.Image,
			Price:   item.Price.Amount.InexactFloat64(),
			Variant: item.Variant,
		})
	}

	prices := toPricesResponse(o.Prices)
	resp := orderResponse{
		ID:              o.ID.String(),
		User:            customerDTO{ID: o.UserID.String()},
		OrderItems:      items,
		ShippingAddress: toShippingAddressDTO(o.ShippingAddress),
		PaymentMethod:   string(o.PaymentMethod),
		Currency:        prices.Currency,
		ItemsPrice:      prices.ItemsPrice,
		ShippingPrice:   prices.ShippingPrice,
		TaxPrice:        prices.TaxPrice,
		TotalPrice:      prices.TotalPrice,
		Status:          string(o.Status),
		IsPaid:          o.IsPaid(),
		PaidAt:          o.PaidAt,
		IsDelivered:     o.IsDelivered(),
		DeliveredAt:     o.DeliveredAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}

	if o.Customer != nil {
		resp.User.Name = o.Customer.Name
		resp.User.Email = o.Customer.Email
	}
	if o.PaymentReceipt != nil {
		receipt := paymentReceiptDTO(*o.PaymentReceipt)
		resp.PaymentResult = &receipt
	}

	return resp
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}

	return resp
}

type messageResponse struct {
	Message string `json:"message"`
}

type uploadResponse struct {
	Message string `json:"message"`
	Image   string `json:"image"`
}
