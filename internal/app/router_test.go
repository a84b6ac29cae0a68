package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfohub/cfohub/internal/auth"
	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/observability"
	"github.com/cfohub/cfohub/internal/platform/snapshot"
	"github.com/cfohub/cfohub/jobs"
)

type harness struct {
	handler http.Handler
	stores  *Stores
}

func newHarness(t *testing.T, cfg *Config) harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider, err := fixtures.NewProvider()
	require.NoError(t, err)
	authSvc, err := auth.NewService(auth.Options{
		Secret:        "test-secret",
		TTL:           time.Hour,
		AdminEmail:    cfg.AuthAdminEmail,
		AdminPassword: cfg.AuthAdminPassword,
	}, nil)
	require.NoError(t, err)

	stores := NewStores(provider)
	services := NewServices(stores, ServiceDeps{Logger: logger})
	t.Cleanup(services.Close)

	metrics := observability.NewMetrics()
	t.Cleanup(stores.Observe(metrics.StoreObserver()))

	return harness{
		handler: NewRouter(RouterParams{
			Logger:      logger,
			Config:      cfg,
			Provider:    provider,
			AuthService: authSvc,
			Services:    services,
			JobHandler:  jobs.NewHandler(nil, logger),
			Metrics:     metrics,
		}),
		stores: stores,
	}
}

func testConfig() *Config {
	return &Config{
		AppEnv:            "test",
		AppRequestTimeout: 5 * time.Second,
		AuthAdminEmail:    "admin@cfohub.com",
		AuthAdminPassword: "admin123",
	}
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/auth/login", "", `{"email":"admin@cfohub.com","senha":"admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

func TestOperationalEndpoints(t *testing.T) {
	h := newHarness(t, testConfig()).handler

	rec := do(t, h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/jobs/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cfohub_http_requests_total")
}

func TestMockAPIMounted(t *testing.T) {
	h := newHarness(t, testConfig()).handler

	rec := do(t, h, http.MethodGet, "/api/clientes", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.NotEmpty(t, items)

	rec = do(t, h, http.MethodGet, "/api/desconhecido/x/y", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"path"`)
}

func TestCollectionRequiresBearer(t *testing.T) {
	h := newHarness(t, testConfig()).handler

	rec := do(t, h, http.MethodGet, "/v1/clientes", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := login(t, h)
	rec = do(t, h, http.MethodGet, "/v1/clientes?status=pendente", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page struct {
		Items      []map[string]any `json:"items"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	for _, it := range page.Items {
		assert.Equal(t, "pendente", it["status"])
	}

	rec = do(t, h, http.MethodPost, "/api/auth/logout", token, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestEveryDomainMounted(t *testing.T) {
	cfg := testConfig()
	cfg.AuthDisabled = true
	h := newHarness(t, cfg).handler

	for _, path := range []string{
		"/v1/clientes", "/v1/colaboradores", "/v1/folha-clientes", "/v1/beneficios",
		"/v1/okrs", "/v1/lembretes", "/v1/notificacoes", "/v1/solicitacoes",
	} {
		rec := do(t, h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestNewClientAppearsUnderPendente(t *testing.T) {
	cfg := testConfig()
	cfg.AuthDisabled = true
	h := newHarness(t, cfg).handler

	rec := do(t, h, http.MethodPost, "/v1/clientes", "", `{"nome":"Acme LTDA"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(t, h, http.MethodGet, "/v1/clientes?status=pendente&search=acme&per_page=100", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme LTDA")

	rec = do(t, h, http.MethodGet, "/v1/clientes?status=ativo&search=acme&per_page=100", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Acme LTDA")
}

func TestStoresBindRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	provider, err := fixtures.NewProvider()
	require.NoError(t, err)
	db, err := snapshot.Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	first := NewStores(provider)
	stop, err := first.Bind(ctx, db, nil)
	require.NoError(t, err)
	require.NoError(t, first.Beneficios.Load(ctx))
	want := first.Beneficios.Len()
	require.NoError(t, first.Beneficios.Remove(first.Beneficios.All()[0].RecordID()))
	stop()

	second := NewStores(provider)
	stop, err = second.Bind(ctx, db, nil)
	require.NoError(t, err)
	t.Cleanup(stop)
	assert.True(t, second.Beneficios.Loaded())
	assert.Equal(t, want-1, second.Beneficios.Len())
	assert.False(t, second.Clientes.Loaded())
}
