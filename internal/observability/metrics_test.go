package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/cfohub/cfohub/internal/record"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	return rr.Body.String()
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/v1/clientes")

	req := httptest.NewRequest(http.MethodGet, "/v1/clientes", nil)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}

	body := scrape(t, metrics)
	if !strings.Contains(body, `cfohub_http_requests_total{code="418",route="/v1/clientes"} 1`) {
		t.Fatalf("expected metrics to record request, got: %s", body)
	}
	if !strings.Contains(body, `cfohub_http_request_duration_seconds_bucket{route="/v1/clientes"`) {
		t.Fatalf("expected duration histogram to be present, got: %s", body)
	}
}

func TestStoreObserverTracksRecords(t *testing.T) {
	metrics := NewMetrics()
	observe := metrics.StoreObserver()
	observe(record.Event{Store: "clientes", Kind: record.EventLoaded, Len: 15})
	observe(record.Event{Store: "clientes", Kind: record.EventAdded, ID: "16", Len: 16})
	observe(record.Event{Store: "clientes", Kind: record.EventFiltered})

	body := scrape(t, metrics)
	if !strings.Contains(body, `cfohub_store_records{store="clientes"} 16`) {
		t.Fatalf("expected record gauge of 16, got: %s", body)
	}
	if !strings.Contains(body, `cfohub_store_events_total{kind="filtered",store="clientes"} 1`) {
		t.Fatalf("expected filtered event counter, got: %s", body)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var metrics *Metrics
	metrics.StoreObserver()(record.Event{Store: "x"})
	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}
