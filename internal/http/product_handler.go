package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

// GET /api/products?keyword=
func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Search(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}

	respondJSON(w, http.StatusOK, resp)
}

// GET /api/products/{id}
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductResponse(product))
}

// POST /api/products; an empty body creates a sample product.
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if r.ContentLength != 0 {
		if err := h.decode(w, r, &req); err != nil {
			h.respondError(w, r, err)
			return
		}
	}

	product, err := h.catalog.Create(r.Context(), actorFrom(r.Context()), req.toInput())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toProductResponse(product))
}

// PUT /api/products/{id}
func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var req productRequest
	if err := h.decode(w, r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	product, err := h.catalog.Update(r.Context(), actorFrom(r.Context()), id, req.toInput())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductResponse(product))
}

// DELETE /api/products/{id}
func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.catalog.Delete(r.Context(), actorFrom(r.Context()), id); err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "Product removed"})
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s[%s] is not a valid id", domain.ErrValidation, name, raw)
	}

	return id, nil
}
