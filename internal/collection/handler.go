package collection

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cfohub/cfohub/internal/platform/httpx"
	"github.com/cfohub/cfohub/internal/record"
	"github.com/cfohub/cfohub/internal/shared"
)

// Handler serves the generic collection endpoints for one store.
type Handler[T record.Record] struct {
	logger    *slog.Logger
	service   *Service[T]
	extraKeys []string
}

// NewHandler constructs a collection handler. extraKeys lists the query
// parameters forwarded to the store as domain-specific criteria.
func NewHandler[T record.Record](logger *slog.Logger, service *Service[T], extraKeys ...string) *Handler[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler[T]{logger: logger, service: service, extraKeys: extraKeys}
}

// Service returns the bound service.
func (h *Handler[T]) Service() *Service[T] {
	return h.service
}

// MountRoutes registers the collection endpoints on r.
func (h *Handler[T]) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Post("/reload", h.handleReload)
	r.Get("/view", h.handleView)
	r.Put("/filter", h.handleSetFilter)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

type filterRequest struct {
	Status *string           `json:"status"`
	Search *string           `json:"search"`
	Type   *string           `json:"tipo"`
	Extra  map[string]string `json:"extra"`
	Page   *int              `json:"page"`
}

type reloadResponse struct {
	Store string `json:"store"`
	Total int    `json:"total"`
}

func (h *Handler[T]) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Query(r.Context(), h.FilterFromQuery(r), WindowFromQuery(r))
	if err != nil {
		h.fail(w, "list records", err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *Handler[T]) handleGet(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, "get record", err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler[T]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var fields map[string]json.RawMessage
	if err := httpx.DecodeJSON(r, &fields); err != nil {
		httpx.RespondError(w, err)
		return
	}
	item, err := h.service.Create(r.Context(), fields)
	if err != nil {
		h.fail(w, "create record", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler[T]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var fields map[string]json.RawMessage
	if err := httpx.DecodeJSON(r, &fields); err != nil {
		httpx.RespondError(w, err)
		return
	}
	item, err := h.service.Edit(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		h.fail(w, "update record", err)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

func (h *Handler[T]) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, "delete record", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler[T]) handleReload(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Reload(r.Context())
	if err != nil {
		h.fail(w, "reload store", err)
		return
	}
	httpx.JSON(w, http.StatusOK, reloadResponse{Store: h.service.Store().Name(), Total: n})
}

func (h *Handler[T]) handleView(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.View(r.Context())
	if err != nil {
		h.fail(w, "load view", err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

func (h *Handler[T]) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	patch := record.FilterPatch{Status: req.Status, Search: req.Search, Type: req.Type, Extra: req.Extra}
	page, err := h.service.SetView(r.Context(), patch, req.Page)
	if err != nil {
		h.fail(w, "set filter", err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

// Fail logs unexpected failures and writes the mapped problem response.
func (h *Handler[T]) Fail(w http.ResponseWriter, op string, err error) {
	h.fail(w, op, err)
}

func (h *Handler[T]) fail(w http.ResponseWriter, op string, err error) {
	status, _ := httpx.StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(op, slog.String("store", h.service.Store().Name()), slog.Any("error", err))
	} else {
		h.logger.Debug(op, slog.String("store", h.service.Store().Name()), slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

// FilterFromQuery reads status, search (or busca), tipo and the handler's
// extra keys from the query string.
func (h *Handler[T]) FilterFromQuery(r *http.Request) record.Filter {
	q := r.URL.Query()
	f := record.DefaultFilter()
	if v := strings.TrimSpace(q.Get("status")); v != "" {
		f.Status = v
	}
	if v := strings.TrimSpace(q.Get("tipo")); v != "" {
		f.Type = v
	}
	f.Search = strings.TrimSpace(q.Get("search"))
	if f.Search == "" {
		f.Search = strings.TrimSpace(q.Get("busca"))
	}
	for _, key := range h.extraKeys {
		v := strings.TrimSpace(q.Get(key))
		if v == "" || v == record.All {
			continue
		}
		if f.Extra == nil {
			f.Extra = make(map[string]string)
		}
		f.Extra[key] = v
	}
	return f
}

// WindowFromQuery reads page and per_page.
func WindowFromQuery(r *http.Request) shared.PageWindow {
	return shared.PageWindow{
		Page:    httpx.QueryInt(r, "page", 1),
		PerPage: httpx.QueryInt(r, "per_page", 0),
	}
}
