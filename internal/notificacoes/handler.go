package notificacoes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/platform/httpx"
)

// Handler serves /v1/notificacoes.
type Handler struct {
	logger     *slog.Logger
	service    *Service
	collection *collection.Handler[Notificacao]
}

// NewHandler constructs the notification handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:     logger,
		service:    service,
		collection: collection.NewHandler(logger, service.Service, "categoria", "prioridade", "destinatario"),
	}
}

// MountRoutes registers the feed actions and the collection endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/nao-lidas", h.handleUnread)
	r.Post("/lidas", h.handleMarkAllRead)
	r.Post("/{id}/lida", h.handleMarkRead)
	h.collection.MountRoutes(r)
}

type unreadResponse struct {
	Items []Notificacao `json:"items"`
	Total int           `json:"total"`
}

type markAllResponse struct {
	Updated int `json:"updated"`
}

func (h *Handler) handleUnread(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Unread(r.Context(), r.URL.Query().Get("destinatario"))
	if err != nil {
		h.collection.Fail(w, "list unread notifications", err)
		return
	}
	httpx.JSON(w, http.StatusOK, unreadResponse{Items: items, Total: len(items)})
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.MarkRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.collection.Fail(w, "mark notification read", err)
		return
	}
	httpx.JSON(w, http.StatusOK, n)
}

func (h *Handler) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.MarkAllRead(r.Context())
	if err != nil {
		h.collection.Fail(w, "mark all notifications read", err)
		return
	}
	h.logger.Info("notifications marked read", slog.Int("updated", n))
	httpx.JSON(w, http.StatusOK, markAllResponse{Updated: n})
}
