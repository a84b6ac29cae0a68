package perf

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cfohub/cfohub/internal/collection"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/record"
	"github.com/cfohub/cfohub/internal/shared"
)

type row struct {
	ID     string `json:"id"`
	Nome   string `json:"nome"`
	Status string `json:"status"`
}

func (r row) RecordID() string     { return r.ID }
func (r row) RecordStatus() string { return r.Status }
func (r row) DisplayName() string  { return r.Nome }

func bigStore(n int) *record.Store[row] {
	s := record.NewStore(record.Options[row]{Name: "perf"})
	items := make([]row, n)
	statuses := []string{"ativo", "pendente", "inativo"}
	for i := range items {
		items[i] = row{ID: fmt.Sprint(i + 1), Nome: fmt.Sprintf("Cliente %05d LTDA", i+1), Status: statuses[i%len(statuses)]}
	}
	s.Replace(items)
	return s
}

func TestCollectionLatencyTargets(t *testing.T) {
	store := bigStore(5000)
	r := chi.NewRouter()
	r.Route("/clientes", collection.NewHandler(nil, collection.NewService(store, form.Schema[row]{})).MountRoutes)

	paths := []string{
		"/clientes?status=pendente&page=3",
		"/clientes?search=cliente%2004&per_page=50",
		"/clientes?status=all&page=40",
	}
	samples := make([]time.Duration, 0, 30)
	for i := 0; i < 30; i++ {
		req := httptest.NewRequest(http.MethodGet, paths[i%len(paths)], nil)
		rec := httptest.NewRecorder()
		start := time.Now()
		r.ServeHTTP(rec, req)
		samples = append(samples, time.Since(start))
		if rec.Code != http.StatusOK {
			t.Fatalf("unexpected status %d", rec.Code)
		}
	}
	if p95 := percentile95(samples); p95 > 250*time.Millisecond {
		t.Fatalf("collection list latency regression: p95=%s", p95)
	}
}

func BenchmarkStoreQuery(b *testing.B) {
	store := bigStore(5000)
	f := record.Filter{Status: "pendente", Search: "cliente 01", Type: record.All}
	window := shared.PageWindow{Page: 2, PerPage: 20}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Query(f, window)
	}
}

func percentile95(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	index := int(float64(len(sorted)-1) * 0.95)
	if index < 0 {
		index = 0
	}
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}
