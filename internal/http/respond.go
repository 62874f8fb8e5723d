package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"runtime/debug"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/storefront/internal/domain"
)

type errorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

var kindStatus = map[domain.Kind]int{
	domain.KindValidation:         http.StatusBadRequest,
	domain.KindUnauthenticated:    http.StatusUnauthorized,
	domain.KindForbidden:          http.StatusForbidden,
	domain.KindNotFound:           http.StatusNotFound,
	domain.KindPreconditionFailed: http.StatusConflict,
	domain.KindConflict:           http.StatusConflict,
	domain.KindTransient:          http.StatusServiceUnavailable,
	domain.KindInternal:           http.StatusInternalServerError,
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondError maps err to its status by kind. Internal errors keep their details
// out of production responses; elsewhere they carry a stack trace.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	h.respondErrorStack(w, r, err, nil)
}

func (h *Handler) respondErrorStack(w http.ResponseWriter, r *http.Request, err error, stack []byte) {
	kind := domain.KindOf(err)
	status := kindStatus[kind]

	resp := errorResponse{
		Message: err.Error(),
		Kind:    string(kind),
	}

	if kind == domain.KindInternal {
		h.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)

		if h.cfg.Production {
			resp.Message = http.StatusText(status)
		} else {
			if stack == nil {
				stack = debug.Stack()
			}
			resp.Stack = string(stack)
		}
	}

	respondJSON(w, status, resp)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := h.decodeJSON(w, r, dst); err != nil {
		return err
	}

	return h.validateStruct(dst)
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: request body is larger than %d bytes", domain.ErrValidation, maxErr.Limit)
		}

		return fmt.Errorf("%w: malformed JSON: %v", domain.ErrValidation, err)
	}

	return nil
}

func (h *Handler) validateStruct(dst any) error {
	err := h.validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate.Struct: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}

	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, ", "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "uuid":
		return field + " must be a valid id"
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	default:
		return field + " is not valid"
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report JSON field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}
