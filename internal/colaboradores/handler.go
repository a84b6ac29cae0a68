package colaboradores

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/cfohub/cfohub/internal/collection"
)

// Handler serves /v1/colaboradores.
type Handler struct {
	collection *collection.Handler[Colaborador]
}

// NewHandler constructs the roster handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{collection: collection.NewHandler(logger, service.Service, "departamento", "cargo", "gerente")}
}

// MountRoutes registers the collection endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	h.collection.MountRoutes(r)
}
