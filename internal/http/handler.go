// Package http exposes the storefront over a JSON REST API.
package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (auth.Session, error)
	Login(ctx context.Context, email, password string) (auth.Session, error)
	Authenticate(ctx context.Context, token string) (domain.Actor, error)
	Me(ctx context.Context, actor domain.Actor) (domain.User, error)
}

type CatalogService interface {
	Search(ctx context.Context, keyword string) ([]domain.Product, error)
	Get(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	Create(ctx context.Context, actor domain.Actor, in service.ProductInput) (domain.Product, error)
	Update(ctx context.Context, actor domain.Actor, productID uuid.UUID, in service.ProductInput) (domain.Product, error)
	Delete(ctx context.Context, actor domain.Actor, productID uuid.UUID) error
}

type CartService interface {
	Summary(ctx context.Context, actor domain.Actor) (service.CartSummary, error)
	AddItem(ctx context.Context, actor domain.Actor, productID uuid.UUID, qty int, variant string) (domain.Cart, error)
	RemoveItem(ctx context.Context, actor domain.Actor, productID uuid.UUID) (domain.Cart, error)
	AdjustQuantity(ctx context.Context, actor domain.Actor, productID uuid.UUID, delta int) (domain.Cart, error)
	Clear(ctx context.Context, actor domain.Actor) (domain.Cart, error)
	SetShippingAddress(ctx context.Context, actor domain.Actor, addr domain.ShippingAddress) (domain.Cart, error)
	SetPaymentMethod(ctx context.Context, actor domain.Actor, method domain.PaymentMethod) (domain.Cart, error)
}

type OrderService interface {
	Submit(ctx context.Context, actor domain.Actor, cart domain.Cart, quote *domain.PriceBreakdown) (domain.Order, error)
	Checkout(ctx context.Context, actor domain.Actor) (domain.Order, error)
	MarkPaid(ctx context.Context, actor domain.Actor, orderID uuid.UUID, receipt domain.PaymentReceipt) (domain.Order, error)
	MarkDelivered(ctx context.Context, actor domain.Actor, orderID uuid.UUID) (domain.Order, error)
	GetOrder(ctx context.Context, actor domain.Actor, orderID uuid.UUID) (domain.Order, error)
	ListMyOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error)
	ListOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error)
}

type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

type Config struct {
	Production bool
	// MaxBodyBytes limits JSON request bodies.
	MaxBodyBytes int64
	// MaxUploadBytes limits the multipart upload body.
	MaxUploadBytes int64
	// UploadDir is served under UploadURLPrefix when both are set.
	UploadDir       string
	UploadURLPrefix string
	Pricing         domain.PricingPolicy
}

type Handler struct {
	cfg      Config
	auth     AuthService
	catalog  CatalogService
	carts    CartService
	orders   OrderService
	uploads  Uploader
	metrics  *metrics.Metrics
	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(
	cfg Config,
	auth AuthService,
	catalog CatalogService,
	carts CartService,
	orders OrderService,
	uploads Uploader,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		cfg:      cfg,
		auth:     auth,
		catalog:  catalog,
		carts:    carts,
		orders:   orders,
		uploads:  uploads,
		metrics:  m,
		logger:   logger,
		validate: newValidator(),
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.instrument)
	r.Use(h.recoverPanics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusNotFound, errorResponse{Message: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusMethodNotAllowed, errorResponse{Message: "Method Not Allowed"})
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	if h.cfg.UploadDir != "" && h.cfg.UploadURLPrefix != "" {
		files := http.StripPrefix(h.cfg.UploadURLPrefix, http.FileServer(http.Dir(h.cfg.UploadDir)))
		r.Method(http.MethodGet, h.cfg.UploadURLPrefix+"/*", files)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.With(h.authenticate).Get("/me", h.me)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.searchProducts)
			r.Get("/{id}", h.getProduct)

			r.Group(func(r chi.Router) {
				r.Use(h.authenticate)
				r.Post("/", h.createProduct)
				r.Put("/{id}", h.updateProduct)
				r.Delete("/{id}", h.deleteProduct)
			})
		})

		r.With(h.authenticate, requireAdmin).Post("/upload", h.uploadImage)

		r.Route("/cart", func(r chi.Router) {
			r.Use(h.authenticate)
			r.Get("/", h.getCart)
			r.Delete("/", h.clearCart)
			r.Post("/items", h.addCartItem)
			r.Patch("/items/{productID}", h.adjustCartItem)
			r.Delete("/items/{productID}", h.removeCartItem)
			r.Put("/shipping", h.setShippingAddress)
			r.Put("/payment", h.setPaymentMethod)
			r.Post("/checkout", h.checkout)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(h.authenticate)
			r.Post("/", h.createOrder)
			r.Get("/", h.listOrders)
			r.Get("/myorders", h.listMyOrders)
			r.Get("/{id}", h.getOrder)
			r.Put("/{id}/pay", h.payOrder)
			r.Put("/{id}/deliver", h.deliverOrder)
		})
	})

	return r
}
