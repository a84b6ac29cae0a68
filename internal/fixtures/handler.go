package fixtures

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cfohub/cfohub/internal/platform/httpx"
)

// Handler exposes the provider as the mock REST API.
type Handler struct {
	logger   *slog.Logger
	provider *Provider
	now      func() time.Time
}

// NewHandler builds the mock API handler.
func NewHandler(logger *slog.Logger, provider *Provider) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, provider: provider, now: time.Now}
}

// MountRoutes registers the mock API. It must be mounted on its own
// subrouter because it installs the catch-all fallback for unmatched paths.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Use(h.recoverer)
	r.NotFound(h.fallback)
	r.MethodNotAllowed(h.fallback)

	r.Get("/empresa", h.handleEmpresa)
	r.Get("/permissoes", h.handlePermissoes)
	r.Get("/permissoes/role", h.handleRolePermissoes)
	r.Get("/permissoes/role/{role}", h.handleRolePermissoes)
	r.Get("/cargos-setores", h.handleCargosSetores)
	r.Get("/cargossetores", h.handleCargosSetores)

	r.Get("/{resource}", h.handleList)
	r.Post("/{resource}", h.handleCreate)
	r.Get("/{resource}/{id}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.provider.List(r.Context(), chi.URLParam(r, "resource"))
	if errors.Is(err, ErrUnknownResource) {
		h.fallback(w, r)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, items)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.provider.Get(r.Context(), chi.URLParam(r, "resource"), ParseID(chi.URLParam(r, "id")))
	if errors.Is(err, ErrUnknownResource) {
		h.fallback(w, r)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	item, err := h.provider.Create(r.Context(), chi.URLParam(r, "resource"))
	if errors.Is(err, ErrUnknownResource) {
		h.fallback(w, r)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) handleEmpresa(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.provider.Empresa())
}

func (h *Handler) handlePermissoes(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.provider.Permissoes())
}

func (h *Handler) handleRolePermissoes(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.provider.RolePermissoes(chi.URLParam(r, "role")))
}

func (h *Handler) handleCargosSetores(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.provider.CargosSetores())
}

type fallbackBody struct {
	Message   string `json:"message"`
	Path      string `json:"path"`
	Method    string `json:"method"`
	Timestamp string `json:"timestamp"`
}

// fallback answers every unmatched route with 200 and a descriptive body.
func (h *Handler) fallback(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, fallbackBody{
		Message:   "Mock data endpoint",
		Path:      mockPath(r),
		Method:    r.Method,
		Timestamp: h.now().UTC().Format(isoMillis),
	})
}

type failureBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("mock api failure", slog.String("path", r.URL.Path), slog.Any("error", err))
	httpx.JSON(w, http.StatusInternalServerError, failureBody{
		Detail: "Internal server error in mock API",
		Error:  err.Error(),
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				h.fail(w, r, fmt.Errorf("%v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// mockPath returns the request path relative to the mock API mount point.
func mockPath(r *http.Request) string {
	path := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
		path = rctx.RoutePath
	}
	return strings.Trim(path, "/")
}

// ParseID reads the leading digits of raw. Anything that yields no positive
// number maps to the sentinel id.
func ParseID(raw string) int {
	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[:end])
	if err != nil || n < 1 {
		return SentinelID
	}
	return n
}
