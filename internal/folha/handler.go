package folha

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/platform/httpx"
)

// Handler serves /v1/folha-clientes.
type Handler struct {
	logger     *slog.Logger
	service    *Service
	collection *collection.Handler[FolhaCliente]
}

// NewHandler constructs the payroll handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:     logger,
		service:    service,
		collection: collection.NewHandler(logger, service.Service, "periodo", "cliente", "statusOmie"),
	}
}

// MountRoutes registers CSV, OMIE and recalculation endpoints before the
// collection endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/export.csv", h.handleExport)
	r.Get("/modelo.csv", h.handleTemplate)
	r.Post("/omie/sync", h.handleSyncAll)
	r.Post("/{id}/recalcular", h.handleRecalcular)
	r.Post("/{id}/omie", h.handleEnviarOmie)
	h.collection.MountRoutes(r)
}

type syncResponse struct {
	Queued int `json:"queued"`
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Ensure(r.Context()); err != nil {
		h.collection.Fail(w, "export folha", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="folha-clientes.csv"`)
	n, err := h.service.Export(r.Context(), h.collection.FilterFromQuery(r), w)
	if err != nil {
		h.logger.Error("export folha", slog.Any("error", err))
		return
	}
	h.logger.Debug("folha exported", slog.Int("rows", n))
}

func (h *Handler) handleTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="modelo-folha-clientes.csv"`)
	if err := WriteTemplate(w); err != nil {
		h.logger.Error("write folha template", slog.Any("error", err))
	}
}

func (h *Handler) handleRecalcular(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.Recalcular(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.collection.Fail(w, "recalcular folha", err)
		return
	}
	httpx.JSON(w, http.StatusOK, f)
}

func (h *Handler) handleEnviarOmie(w http.ResponseWriter, r *http.Request) {
	f, err := h.service.EnviarOmie(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.collection.Fail(w, "enviar omie", err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, f)
}

func (h *Handler) handleSyncAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.SincronizarOmie(r.Context())
	if err != nil {
		h.collection.Fail(w, "sincronizar omie", err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, syncResponse{Queued: n})
}
