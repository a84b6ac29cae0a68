package solicitacoes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/platform/httpx"
	"github.com/cfohub/cfohub/internal/shared"
)

// Handler serves /v1/solicitacoes.
type Handler struct {
	logger     *slog.Logger
	service    *Service
	collection *collection.Handler[Solicitacao]
}

// NewHandler constructs the request handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:     logger,
		service:    service,
		collection: collection.NewHandler(logger, service.Service, "urgencia", "solicitante"),
	}
}

// MountRoutes registers decision actions and the collection endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/{id}/aprovar", h.decide(StatusAprovada))
	r.Post("/{id}/rejeitar", h.decide(StatusRejeitada))
	r.Post("/{id}/responder", h.handleResponder)
	h.collection.MountRoutes(r)
}

type decisionRequest struct {
	Gestor   string `json:"gestor"`
	Mensagem string `json:"mensagem"`
}

type respostaRequest struct {
	Gestor   string  `json:"gestor"`
	Mensagem string  `json:"mensagem"`
	Arquivos []Anexo `json:"arquivos"`
}

func (h *Handler) decide(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req decisionRequest
		if r.ContentLength != 0 {
			if err := httpx.DecodeJSON(r, &req); err != nil {
				httpx.RespondError(w, err)
				return
			}
		}
		sol, err := h.service.Decide(r.Context(), chi.URLParam(r, "id"), status, gestorName(r, req.Gestor), req.Mensagem)
		if err != nil {
			h.collection.Fail(w, "decide solicitacao", err)
			return
		}
		h.logger.Info("solicitacao decided", slog.String("id", sol.ID), slog.String("status", sol.Status))
		httpx.JSON(w, http.StatusOK, sol)
	}
}

func (h *Handler) handleResponder(w http.ResponseWriter, r *http.Request) {
	var req respostaRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	sol, err := h.service.Responder(r.Context(), chi.URLParam(r, "id"), gestorName(r, req.Gestor), req.Mensagem, req.Arquivos)
	if err != nil {
		h.collection.Fail(w, "answer solicitacao", err)
		return
	}
	httpx.JSON(w, http.StatusOK, sol)
}

// gestorName falls back to the authenticated user's e-mail.
func gestorName(r *http.Request, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := shared.PrincipalFromContext(r.Context()); p != nil {
		return p.Email
	}
	return ""
}
