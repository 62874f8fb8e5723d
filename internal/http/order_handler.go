package http

import (
	"fmt"
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
)

// POST /api/orders
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if len(req.OrderItems) == 0 {
		h.respondError(w, r, fmt.Errorf("%w: No order items", domain.ErrValidation))
		return
	}

	if err := h.validateStruct(&req); err != nil {
		h.respondError(w, r, err)
		return
	}

	actor := actorFrom(r.Context())

	order, err := h.orders.Submit(r.Context(), actor, req.toCart(actor, h.cfg.Pricing), req.quote(h.cfg.Pricing))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toOrderResponse(order))
}

// GET /api/orders/myorders
func (h *Handler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListMyOrders(r.Context(), actorFrom(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponses(orders))
}

// GET /api/orders
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context(), actorFrom(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponses(orders))
}

// GET /api/orders/{id}
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	order, err := h.orders.GetOrder(r.Context(), actorFrom(r.Context()), id)
	h.respondOrder(w, r, order, err)
}

// PUT /api/orders/{id}/pay
func (h *Handler) payOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req paymentReceiptDTO
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	order, err := h.orders.MarkPaid(r.Context(), actorFrom(r.Context()), id, req.toDomain())
	h.respondOrder(w, r, order, err)
}

// PUT /api/orders/{id}/deliver
func (h *Handler) deliverOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	order, err := h.orders.MarkDelivered(r.Context(), actorFrom(r.Context()), id)
	h.respondOrder(w, r, order, err)
}

func (h *Handler) respondOrder(w http.ResponseWriter, r *http.Request, order domain.Order, err error) {
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(order))
}
