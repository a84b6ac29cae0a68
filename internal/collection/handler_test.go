package collection_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/platform/httpx"
	"github.com/cfohub/cfohub/internal/record"
	"github.com/cfohub/cfohub/internal/shared"
)

type cliente struct {
	ID     string `json:"id"`
	Nome   string `json:"nome" validate:"required"`
	Status string `json:"status"`
	Setor  string `json:"setor"`
}

func (c cliente) RecordID() string     { return c.ID }
func (c cliente) RecordStatus() string { return c.Status }
func (c cliente) DisplayName() string  { return c.Nome }

func seed(n int) []cliente {
	out := make([]cliente, 0, n)
	for i := 1; i <= n; i++ {
		status := "ativo"
		if i%3 == 0 {
			status = "pendente"
		}
		out = append(out, cliente{ID: strconv.Itoa(i), Nome: "Cliente " + strconv.Itoa(i), Status: status, Setor: "varejo"})
	}
	return out
}

func newRouter(t *testing.T, loader record.Loader[cliente]) (http.Handler, *record.Store[cliente]) {
	t.Helper()
	store := record.NewStore(record.Options[cliente]{
		Name:   "clientes",
		Loader: loader,
		NewID:  record.NumericID[cliente],
		SetID: func(c cliente, id string) cliente {
			c.ID = id
			return c
		},
		ExtraMatch: func(c cliente, extra map[string]string) bool {
			v, ok := extra["setor"]
			return !ok || c.Setor == v
		},
	})
	schema := form.Schema[cliente]{
		Defaults: func() cliente { return cliente{Status: "pendente"} },
		Rules:    []form.Rule[cliente]{form.StructRule[cliente](form.NewValidator())},
	}
	h := collection.NewHandler(nil, collection.NewService(store, schema), "setor")
	r := chi.NewRouter()
	r.Route("/clientes", h.MountRoutes)
	return r, store
}

func fixedLoader(items []cliente) record.Loader[cliente] {
	return func(context.Context) ([]cliente, error) { return items, nil }
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) record.Page[cliente] {
	t.Helper()
	var page record.Page[cliente]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	return page
}

func TestListLoadsOnFirstAccess(t *testing.T) {
	h, store := newRouter(t, fixedLoader(seed(15)))
	rec := do(t, h, http.MethodGet, "/clientes?per_page=10&page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodePage(t, rec)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, 15, store.Len())
}

func TestListFiltersByStatusAndExtra(t *testing.T) {
	items := seed(6)
	items[0].Setor = "industria"
	h, _ := newRouter(t, fixedLoader(items))

	page := decodePage(t, do(t, h, http.MethodGet, "/clientes?status=pendente", nil))
	require.Len(t, page.Items, 2)
	assert.Equal(t, "pendente", page.Filter.Status)

	page = decodePage(t, do(t, h, http.MethodGet, "/clientes?setor=industria", nil))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "1", page.Items[0].ID)

	page = decodePage(t, do(t, h, http.MethodGet, "/clientes?busca=cliente%205", nil))
	require.Len(t, page.Items, 1)
}

func TestListEmptyIsNotAnError(t *testing.T) {
	h, _ := newRouter(t, fixedLoader(seed(3)))
	rec := do(t, h, http.MethodGet, "/clientes?status=encerrado", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodePage(t, rec)
	assert.True(t, page.Empty)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 1, page.Pagination.TotalPages)
}

func TestCreateDefaultsToPendente(t *testing.T) {
	h, _ := newRouter(t, fixedLoader(seed(4)))
	rec := do(t, h, http.MethodPost, "/clientes", map[string]any{"nome": "Acme LTDA"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created cliente
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "5", created.ID)
	assert.Equal(t, "pendente", created.Status)

	page := decodePage(t, do(t, h, http.MethodGet, "/clientes?status=pendente&search=acme", nil))
	require.Len(t, page.Items, 1)
	page = decodePage(t, do(t, h, http.MethodGet, "/clientes?status=ativo&search=acme", nil))
	assert.Empty(t, page.Items)
}

func TestCreateValidationFailure(t *testing.T) {
	h, store := newRouter(t, fixedLoader(seed(2)))
	rec := do(t, h, http.MethodPost, "/clientes", map[string]any{"status": "ativo"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "nome", problem.Field)
	assert.Equal(t, 2, store.Len())
}

func TestUpdateAndDelete(t *testing.T) {
	h, store := newRouter(t, fixedLoader(seed(3)))
	rec := do(t, h, http.MethodPut, "/clientes/2", map[string]any{"status": "encerrado"})
	require.Equal(t, http.StatusOK, rec.Code)
	got, err := store.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "encerrado", got.Status)
	assert.Equal(t, "Cliente 2", got.Nome)

	rec = do(t, h, http.MethodPut, "/clientes/2", map[string]any{"id": "99"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodDelete, "/clientes/2", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/clientes/2", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/clientes/2", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/clientes/2", map[string]any{"nome": "x"}).Code)
}

func TestDeletedRecordsStayDeleted(t *testing.T) {
	h, _ := newRouter(t, fixedLoader(seed(1)))
	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/clientes/1", nil).Code)
	page := decodePage(t, do(t, h, http.MethodGet, "/clientes", nil))
	assert.True(t, page.Empty)
}

func TestReloadFailureKeepsRecords(t *testing.T) {
	calls := 0
	loader := func(context.Context) ([]cliente, error) {
		calls++
		if calls > 1 {
			return nil, httpx.ErrUpstream
		}
		return seed(3), nil
	}
	h, store := newRouter(t, loader)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/clientes", nil).Code)
	rec := do(t, h, http.MethodPost, "/clientes/reload", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, 3, store.Len())
}

func TestStoredViewResetsPageOnFilterChange(t *testing.T) {
	h, store := newRouter(t, fixedLoader(seed(25)))
	rec := do(t, h, http.MethodPut, "/clientes/filter", map[string]any{"page": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decodePage(t, rec).Pagination.Page)

	rec = do(t, h, http.MethodPut, "/clientes/filter", map[string]any{"status": "ativo"})
	page := decodePage(t, rec)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, "ativo", store.Filter().Status)

	view := decodePage(t, do(t, h, http.MethodGet, "/clientes/view", nil))
	assert.Equal(t, page.Pagination, view.Pagination)
}

func TestTransitionKeepsRecordOnError(t *testing.T) {
	store := record.NewStore(record.Options[cliente]{Name: "clientes", Loader: fixedLoader(seed(1))})
	svc := collection.NewService(store, form.Schema[cliente]{})
	require.NoError(t, svc.Ensure(context.Background()))
	var events []record.EventKind
	store.Subscribe(func(ev record.Event) { events = append(events, ev.Kind) })

	_, err := svc.Transition(context.Background(), "1", func(c cliente) (cliente, error) {
		c.Status = "aprovado"
		return c, shared.ErrInvalidTransition
	})
	require.True(t, errors.Is(err, shared.ErrInvalidTransition))
	got, err := store.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "ativo", got.Status)
	assert.Empty(t, events)

	_, err = svc.Transition(context.Background(), "1", func(c cliente) (cliente, error) {
		c.Status = "aprovado"
		return c, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []record.EventKind{record.EventUpdated}, events)
}
