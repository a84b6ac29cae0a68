package lembretes

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/platform/httpx"
)

// Handler serves /v1/lembretes.
type Handler struct {
	service    *Service
	collection *collection.Handler[Lembrete]
}

// NewHandler constructs the reminder handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, collection: collection.NewHandler(logger, service.Service, "prioridade", "colaborador")}
}

// MountRoutes registers reminder actions, listings and settings before the
// collection endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/ranked", h.handleRanked)
	r.Get("/hoje", h.handleHoje)
	r.Get("/configuracoes", h.handleGetConfig)
	r.Put("/configuracoes", h.handlePutConfig)
	r.Post("/gerar", h.handleGerar)
	r.Post("/limpar", h.handleLimpar)
	r.Post("/{id}/visualizar", h.action("visualizar lembrete", h.service.Visualizar))
	r.Post("/{id}/concluir", h.action("concluir lembrete", h.service.Concluir))
	r.Post("/{id}/dispensar", h.action("dispensar lembrete", h.service.Dispensar))
	h.collection.MountRoutes(r)
}

type listResponse struct {
	Items []Lembrete `json:"items"`
	Total int        `json:"total"`
}

type gerarResponse struct {
	Queued  bool `json:"queued"`
	Created int  `json:"created"`
}

type limparResponse struct {
	Removed int `json:"removed"`
}

func (h *Handler) handleRanked(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Ranked(r.Context())
	if err != nil {
		h.collection.Fail(w, "rank lembretes", err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Items: items, Total: len(items)})
}

func (h *Handler) handleHoje(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Hoje(r.Context())
	if err != nil {
		h.collection.Fail(w, "lembretes de hoje", err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Items: items, Total: len(items)})
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, h.service.Configuracoes())
}

func (h *Handler) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	cfg := h.service.Configuracoes()
	if err := httpx.DecodeJSON(r, &cfg); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.SetConfiguracoes(cfg); err != nil {
		h.collection.Fail(w, "configurar lembretes", err)
		return
	}
	httpx.JSON(w, http.StatusOK, cfg)
}

func (h *Handler) handleGerar(w http.ResponseWriter, r *http.Request) {
	queued, created, err := h.service.RequestGeneration(r.Context())
	if err != nil {
		h.collection.Fail(w, "gerar lembretes", err)
		return
	}
	status := http.StatusOK
	if queued {
		status = http.StatusAccepted
	}
	httpx.JSON(w, status, gerarResponse{Queued: queued, Created: created})
}

func (h *Handler) handleLimpar(w http.ResponseWriter, r *http.Request) {
	removed, err := h.service.Limpar(r.Context(), httpx.QueryInt(r, "dias", 90))
	if err != nil {
		h.collection.Fail(w, "limpar lembretes", err)
		return
	}
	httpx.JSON(w, http.StatusOK, limparResponse{Removed: removed})
}

func (h *Handler) action(op string, fn func(ctx context.Context, id string) (Lembrete, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := fn(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.collection.Fail(w, op, err)
			return
		}
		httpx.JSON(w, http.StatusOK, l)
	}
}
