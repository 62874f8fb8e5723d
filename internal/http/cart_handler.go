package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

// GET /api/cart
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.carts.Summary(r.Context(), actorFrom(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cartSummaryResponse{
		Cart:   toCartResponse(summary.Cart),
		Prices: toPricesResponse(summary.Prices),
	})
}

// POST /api/cart/items
func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	qty := req.Qty
	if qty == 0 {
		qty = 1
	}

	cart, err := h.carts.AddItem(r.Context(), actorFrom(r.Context()), uuid.MustParse(req.ProductID), qty, req.Variant)
	h.respondCart(w, r, cart, err)
}

// PATCH /api/cart/items/{productID}
func (h *Handler) adjustCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req adjustQuantityRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	cart, err := h.carts.AdjustQuantity(r.Context(), actorFrom(r.Context()), productID, req.Delta)
	h.respondCart(w, r, cart, err)
}

// DELETE /api/cart/items/{productID}
func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), actorFrom(r.Context()), productID)
	h.respondCart(w, r, cart, err)
}

// DELETE /api/cart
func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.Clear(r.Context(), actorFrom(r.Context()))
	h.respondCart(w, r, cart, err)
}

// PUT /api/cart/shipping
func (h *Handler) setShippingAddress(w http.ResponseWriter, r *http.Request) {
	var req shippingAddressDTO
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	cart, err := h.carts.SetShippingAddress(r.Context(), actorFrom(r.Context()), req.toDomain())
	h.respondCart(w, r, cart, err)
}

// PUT /api/cart/payment
func (h *Handler) setPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req paymentMethodRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	cart, err := h.carts.SetPaymentMethod(r.Context(), actorFrom(r.Context()), domain.PaymentMethod(req.PaymentMethod))
	h.respondCart(w, r, cart, err)
}

// POST /api/cart/checkout
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Checkout(r.Context(), actorFrom(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handler) respondCart(w http.ResponseWriter, r *http.Request, cart domain.Cart, err error) {
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartResponse(cart))
}
