package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
)

const multipartOverhead = 1 << 20

// POST /api/upload, multipart field "image".
func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes+multipartOverhead)

	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respondError(w, r, fmt.Errorf("%w: image is larger than %d bytes", domain.ErrValidation, h.cfg.MaxUploadBytes))
			return
		}

		h.respondError(w, r, fmt.Errorf("%w: image file is required: %v", domain.ErrValidation, err))
		return
	}
	defer file.Close()

	path, err := h.uploads.Upload(r.Context(), header.Filename, file)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, uploadResponse{
		Message: "Image uploaded",
		Image:   path,
	})
}
