package okrs

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/platform/httpx"
)

// Handler serves /v1/okrs.
type Handler struct {
	service    *Service
	collection *collection.Handler[OKR]
}

// NewHandler constructs the OKR handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, collection: collection.NewHandler(logger, service.Service, "periodo", "owner")}
}

// MountRoutes registers key result updates and the collection endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Put("/{id}/key-results/{krId}", h.handleKeyResult)
	h.collection.MountRoutes(r)
}

type keyResultRequest struct {
	Atual *float64 `json:"atual"`
}

func (h *Handler) handleKeyResult(w http.ResponseWriter, r *http.Request) {
	var req keyResultRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if req.Atual == nil {
		httpx.RespondError(w, form.Required("atual", ""))
		return
	}
	o, err := h.service.UpdateKeyResult(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "krId"), *req.Atual)
	if err != nil {
		h.collection.Fail(w, "update key result", err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}
