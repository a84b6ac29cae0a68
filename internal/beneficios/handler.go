package beneficios

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/platform/httpx"
)

// Handler serves /v1/beneficios.
type Handler struct {
	service    *Service
	collection *collection.Handler[Beneficio]
}

// NewHandler constructs the benefits handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, collection: collection.NewHandler(logger, service.Service, "fornecedor")}
}

// MountRoutes registers the toggle, summary and collection endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/resumo", h.handleSummary)
	r.Post("/{id}/toggle", h.handleToggle)
	h.collection.MountRoutes(r)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.collection.Fail(w, "toggle beneficio", err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	resumo, err := h.service.Summary(r.Context())
	if err != nil {
		h.collection.Fail(w, "summarise beneficios", err)
		return
	}
	httpx.JSON(w, http.StatusOK, resumo)
}
