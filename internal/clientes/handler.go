package clientes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/platform/httpx"
	"github.com/cfohub/cfohub/internal/shared"
)

// Handler serves /v1/clientes.
type Handler struct {
	logger     *slog.Logger
	service    *Service
	collection *collection.Handler[Cliente]
}

// NewHandler constructs the client handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:     logger,
		service:    service,
		collection: collection.NewHandler(logger, service.Service, "segmento", "responsavel"),
	}
}

// MountRoutes registers workflow actions and the collection endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/{id}/submeter", h.handleSubmeter)
	r.Post("/{id}/aprovar", h.handleAprovar)
	r.Post("/{id}/rejeitar", h.handleRejeitar)
	r.Post("/{id}/devolver", h.handleDevolver)
	r.Post("/{id}/ativar", h.lifecycle(ActionAtivar))
	r.Post("/{id}/pausar", h.lifecycle(ActionPausar))
	r.Post("/{id}/encerrar", h.lifecycle(ActionEncerrar))
	h.collection.MountRoutes(r)
}

type actionRequest struct {
	Responsavel string `json:"responsavel"`
	Motivo      string `json:"motivo"`
	Comentarios string `json:"comentarios"`
}

func decodeAction(r *http.Request) (actionRequest, error) {
	var req actionRequest
	if r.ContentLength == 0 {
		return req, nil
	}
	err := httpx.DecodeJSON(r, &req)
	return req, err
}

func (h *Handler) handleSubmeter(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Submeter(r.Context(), chi.URLParam(r, "id"))
	h.respond(w, "submit cliente", c, err)
}

func (h *Handler) handleAprovar(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAction(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if req.Responsavel == "" {
		if p := shared.PrincipalFromContext(r.Context()); p != nil {
			req.Responsavel = p.UserID
		}
	}
	c, err := h.service.Aprovar(r.Context(), chi.URLParam(r, "id"), req.Responsavel)
	h.respond(w, "approve cliente", c, err)
}

func (h *Handler) handleRejeitar(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAction(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	c, err := h.service.Rejeitar(r.Context(), chi.URLParam(r, "id"), req.Motivo)
	h.respond(w, "reject cliente", c, err)
}

func (h *Handler) handleDevolver(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAction(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	c, err := h.service.Devolver(r.Context(), chi.URLParam(r, "id"), req.Comentarios)
	h.respond(w, "return cliente", c, err)
}

func (h *Handler) lifecycle(action Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := h.service.Lifecycle(r.Context(), chi.URLParam(r, "id"), action)
		h.respond(w, "cliente "+string(action), c, err)
	}
}

func (h *Handler) respond(w http.ResponseWriter, op string, c Cliente, err error) {
	if err != nil {
		h.collection.Fail(w, op, err)
		return
	}
	h.logger.Info(op, slog.String("cliente", c.ID), slog.String("status", c.Status))
	httpx.JSON(w, http.StatusOK, c)
}
