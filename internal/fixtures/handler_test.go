package fixtures_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfohub/cfohub/internal/fixtures"
)

func newMockAPI(t *testing.T) http.Handler {
	t.Helper()
	h := fixtures.NewHandler(nil, newProvider(t))
	r := chi.NewRouter()
	r.Route("/api", h.MountRoutes)
	return r
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(`{"nome":"ignored"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerList(t *testing.T) {
	api := newMockAPI(t)
	rec := do(t, api, http.MethodGet, "/api/colaboradores")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 20)
	assert.Equal(t, "Colaborador 1", items[0]["nome"])
}

func TestHandlerGetSingle(t *testing.T) {
	api := newMockAPI(t)
	rec := do(t, api, http.MethodGet, "/api/users/7")
	require.Equal(t, http.StatusOK, rec.Code)

	var item map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "7", item["id"])
	assert.Equal(t, "colaborador", item["role"])

	rec = do(t, api, http.MethodGet, "/api/users/abc")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "1", item["id"])
	assert.Equal(t, "admin", item["role"])
}

func TestHandlerCreate(t *testing.T) {
	api := newMockAPI(t)
	rec := do(t, api, http.MethodPost, "/api/lembretes")
	require.Equal(t, http.StatusCreated, rec.Code)

	var item map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "1", item["id"])
	assert.Equal(t, "Lembrete 1", item["titulo"])
}

func TestHandlerStatic(t *testing.T) {
	api := newMockAPI(t)

	rec := do(t, api, http.MethodGet, "/api/empresa")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"1","nome":"CFO X Consultoria","logo":null,"descricao":"Plataforma de gestão empresarial integrada","website":"https://cfohub.com","funcionarios":50,"fundacao":"2020-01-01","segmento":"Consultoria"}`, rec.Body.String())

	rec = do(t, api, http.MethodGet, "/api/permissoes/role/gestor")
	assert.JSONEq(t, `{"role":"gestor","permissoes":["read:dashboard","read:tarefas","read:clientes","read:colaboradores","write:tarefas"]}`, rec.Body.String())

	rec = do(t, api, http.MethodGet, "/api/cargossetores")
	var cargos []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cargos))
	assert.Len(t, cargos, 3)
}

func TestHandlerFallbackNeverNotFound(t *testing.T) {
	api := newMockAPI(t)
	cases := []struct{ method, path, want string }{
		{http.MethodGet, "/api/inexistente", "inexistente"},
		{http.MethodGet, "/api/a/b/c", "a/b/c"},
		{http.MethodDelete, "/api/clientes/3", "clientes/3"},
		{http.MethodPost, "/api/foo", "foo"},
	}
	for _, tc := range cases {
		rec := do(t, api, tc.method, tc.path)
		require.Equal(t, http.StatusOK, rec.Code, tc.path)
		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Mock data endpoint", body["message"])
		assert.Equal(t, tc.want, body["path"])
		assert.Equal(t, tc.method, body["method"])
		assert.NotEmpty(t, body["timestamp"])
	}
}

func TestHandlerRecoversPanics(t *testing.T) {
	h := fixtures.NewHandler(nil, newProvider(t))
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		h.MountRoutes(r)
		r.Get("/boom/now", func(http.ResponseWriter, *http.Request) { panic("kaboom") })
	})

	rec := do(t, r, http.MethodGet, "/api/boom/now")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Internal server error in mock API","error":"kaboom"}`, rec.Body.String())
}
