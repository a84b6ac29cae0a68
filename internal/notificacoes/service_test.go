package notificacoes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfohub/cfohub/internal/fixtures"
)

func newService(t *testing.T) *Service {
	t.Helper()
	p, err := fixtures.NewProvider()
	require.NoError(t, err)
	s := NewService(NewStore(p))
	s.now = func() time.Time { return time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestFixturesNormalisePrioridade(t *testing.T) {
	s := newService(t)
	n, err := s.Get(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, PrioridadeMedia, n.Prioridade)
	assert.Equal(t, CategoriaSistema, n.Categoria)
	assert.Equal(t, StatusLida, n.RecordStatus())
}

func TestNotifyPrependsWithDefaults(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	n, err := s.Notify(ctx, Notificacao{Tipo: "lembrete", Titulo: "Aniversário - Ana"})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, PrioridadeMedia, n.Prioridade)
	assert.Equal(t, CategoriaSistema, n.Categoria)
	assert.Equal(t, "2026-02-03T09:00:00Z", n.CriadoEm)
	assert.False(t, n.Lida)

	all := s.Store().All()
	require.Len(t, all, 16)
	assert.Equal(t, n.ID, all[0].ID)
}

func TestMarkAllRead(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	unread, err := s.Unread(ctx, "")
	require.NoError(t, err)
	assert.Len(t, unread, 8)

	n, err := s.MarkAllRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	unread, err = s.Unread(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestUnreadByRecipient(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	s.Store().Replace(nil)
	_, err := s.Notify(ctx, Notificacao{Tipo: "tarefa_atribuida", Titulo: "Para 7", DestinatarioID: "7"})
	require.NoError(t, err)
	_, err = s.Notify(ctx, Notificacao{Tipo: "aviso_sistema", Titulo: "Para todos"})
	require.NoError(t, err)
	_, err = s.Notify(ctx, Notificacao{Tipo: "tarefa_atribuida", Titulo: "Para 9", DestinatarioID: "9"})
	require.NoError(t, err)

	got, err := s.Unread(ctx, "7")
	require.NoError(t, err)
	titles := make([]string, 0, len(got))
	for _, n := range got {
		titles = append(titles, n.Titulo)
	}
	assert.ElementsMatch(t, []string{"Para 7", "Para todos"}, titles)
}

func TestHandlerRoutes(t *testing.T) {
	s := newService(t)
	r := chi.NewRouter()
	r.Route("/notificacoes", NewHandler(nil, s).MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notificacoes/1/lida", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lida":true`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/notificacoes/404/lida", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notificacoes/nao-lidas", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":7`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notificacoes?status=nao_lida&per_page=20", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":7`)
}
