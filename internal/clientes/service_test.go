package clientes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/form"
	"github.com/cfohub/cfohub/internal/notificacoes"
	"github.com/cfohub/cfohub/internal/shared"
)

type recorder struct {
	mu      sync.Mutex
	notes   []notificacoes.Notificacao
	emails  []string
	mailErr error
}

func (r *recorder) Notify(_ context.Context, n notificacoes.Notificacao) (notificacoes.Notificacao, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
	return n, nil
}

func (r *recorder) SendEmail(_ context.Context, to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emails = append(r.emails, to+"|"+subject+"|"+body)
	return r.mailErr
}

func (r *recorder) tipos() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, n.Tipo)
	}
	return out
}

func newService(t *testing.T) (*Service, *recorder) {
	t.Helper()
	p, err := fixtures.NewProvider()
	require.NoError(t, err)
	rec := &recorder{}
	s := NewService(NewStore(p), Options{Notifier: rec, Mailer: rec, LoginURL: "https://app.cfohub.com/login"})
	s.now = func() time.Time { return time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC) }
	return s, rec
}

func TestFixtureClientesLoad(t *testing.T) {
	s, _ := newService(t)
	c, err := s.Get(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Cliente 3", c.Nome)
	assert.Equal(t, StatusPendente, c.Status)
	assert.Equal(t, "São Paulo", c.DadosGerais.Cidade)
	assert.Equal(t, "email", c.ComunicacaoFluxo.CanalPreferencial)
	assert.NotEmpty(t, c.CriadoEm)
}

func TestCreateAcmeDefaultsToPendente(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()
	c, err := s.Create(ctx, map[string]json.RawMessage{"nome": json.RawMessage(`"Acme LTDA"`)})
	require.NoError(t, err)
	assert.Equal(t, "16", c.ID)
	assert.Equal(t, StatusPendente, c.Status)
	assert.Equal(t, "Acme LTDA", c.DadosGerais.Nome)

	f := s.Store().Filter()
	f.Status = StatusPendente
	f.Search = "acme"
	assert.Len(t, s.Store().Select(f), 1)
	f.Status = StatusAtivo
	assert.Empty(t, s.Store().Select(f))
}

func TestCreateRequiresNome(t *testing.T) {
	s, _ := newService(t)
	_, err := s.Create(context.Background(), map[string]json.RawMessage{"mrr": json.RawMessage(`1200`)})
	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "nome", verr.Field)
}

func TestCreateRejectsBadEmail(t *testing.T) {
	s, _ := newService(t)
	_, err := s.Create(context.Background(), map[string]json.RawMessage{
		"nome":               json.RawMessage(`"Beta"`),
		"contatosPrincipais": json.RawMessage(`{"emailPrincipal":"not-an-email"}`),
	})
	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "contatosPrincipais.emailPrincipal", verr.Field)
}

func TestApprovalWorkflow(t *testing.T) {
	s, rec := newService(t)
	ctx := context.Background()

	c, err := s.Aprovar(ctx, "3", "gestor-7")
	require.NoError(t, err)
	assert.Equal(t, StatusAprovado, c.Status)
	assert.Equal(t, "gestor-7", c.Responsavel)
	assert.Equal(t, "2026-02-02T12:00:00Z", c.DataAprovacao)

	_, err = s.Lifecycle(ctx, "3", ActionPausar)
	assert.True(t, errors.Is(err, shared.ErrInvalidTransition))

	c, err = s.Lifecycle(ctx, "3", ActionAtivar)
	require.NoError(t, err)
	assert.Equal(t, StatusAtivo, c.Status)
	c, err = s.Lifecycle(ctx, "3", ActionPausar)
	require.NoError(t, err)
	assert.Equal(t, StatusPausado, c.Status)
	c, err = s.Lifecycle(ctx, "3", ActionEncerrar)
	require.NoError(t, err)
	assert.Equal(t, StatusEncerrado, c.Status)

	assert.Equal(t, []string{"admin_aprovou"}, rec.tipos())
}

func TestRejectThenResubmit(t *testing.T) {
	s, rec := newService(t)
	ctx := context.Background()

	_, err := s.Rejeitar(ctx, "6", "  ")
	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "motivo", verr.Field)

	c, err := s.Rejeitar(ctx, "6", "CNPJ inválido")
	require.NoError(t, err)
	assert.Equal(t, StatusRejeitado, c.Status)
	assert.Equal(t, "CNPJ inválido", c.MotivoRejeicao)

	c, err = s.Submeter(ctx, "6")
	require.NoError(t, err)
	assert.Equal(t, StatusPendente, c.Status)
	assert.Equal(t, "2026-02-02T12:00:00Z", c.DataSubmissao)

	assert.Equal(t, []string{"admin_rejeitou", "cliente_submeteu"}, rec.tipos())
}

func TestDevolverSendsEmailAndTwoNotifications(t *testing.T) {
	s, rec := newService(t)
	c, err := s.Devolver(context.Background(), "9", "Falta contrato social\nAtualize o endereço")
	require.NoError(t, err)
	assert.Equal(t, StatusDevolvido, c.Status)
	assert.Equal(t, "Falta contrato social\nAtualize o endereço", c.ComentariosDevolucao)

	require.Len(t, rec.emails, 1)
	assert.Contains(t, rec.emails[0], "contato9@cliente9.com.br|"+devolutionSubject)
	assert.Contains(t, rec.emails[0], "Falta contrato social<br>Atualize o endere")
	assert.Contains(t, rec.emails[0], "https://app.cfohub.com/login")

	assert.Equal(t, []string{"admin_devolveu", "cliente_devolucao"}, rec.tipos())
	assert.Equal(t, "9", rec.notes[1].DestinatarioID)
}

func TestDevolverSurvivesMailFailure(t *testing.T) {
	s, rec := newService(t)
	rec.mailErr = errors.New("queue down")
	c, err := s.Devolver(context.Background(), "12", "Revisar dados")
	require.NoError(t, err)
	assert.Equal(t, StatusDevolvido, c.Status)
}

func TestRegistrationActionsApplyFromAnyStatus(t *testing.T) {
	s, rec := newService(t)
	ctx := context.Background()

	c, err := s.Submeter(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, StatusPendente, c.Status)

	c, err = s.Submeter(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, StatusPendente, c.Status)

	created, err := s.Create(ctx, map[string]json.RawMessage{"nome": json.RawMessage(`"Acme LTDA"`)})
	require.NoError(t, err)
	require.Equal(t, StatusPendente, created.Status)
	c, err = s.Submeter(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPendente, c.Status)

	c, err = s.Aprovar(ctx, "1", "gestor-1")
	require.NoError(t, err)
	assert.Equal(t, StatusAprovado, c.Status)
	c, err = s.Aprovar(ctx, "1", "gestor-2")
	require.NoError(t, err)
	assert.Equal(t, "gestor-2", c.Responsavel)

	c, err = s.Devolver(ctx, "1", "Revisar contrato")
	require.NoError(t, err)
	assert.Equal(t, StatusDevolvido, c.Status)

	c, err = s.Rejeitar(ctx, "1", "Documentação vencida")
	require.NoError(t, err)
	assert.Equal(t, StatusRejeitado, c.Status)

	assert.Contains(t, rec.tipos(), "admin_aprovou")
}

func TestHandlerWorkflowRoutes(t *testing.T) {
	s, _ := newService(t)
	r := chi.NewRouter()
	r.Route("/clientes", NewHandler(nil, s).MountRoutes)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/clientes/3/aprovar", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"aprovado"`)

	rec = do(http.MethodPost, "/clientes/3/ativar", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(http.MethodPost, "/clientes/3/ativar", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(http.MethodPost, "/clientes/6/rejeitar", `{"motivo":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(http.MethodPost, "/clientes/99/submeter", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(http.MethodGet, "/clientes/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ativo"`)

	rec = do(http.MethodGet, "/clientes?segmento=varejo&status=pendente", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":4`)
}
