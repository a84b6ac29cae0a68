package colaboradores

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/form"
)

func newService(t *testing.T) *Service {
	t.Helper()
	p, err := fixtures.NewProvider()
	require.NoError(t, err)
	return NewService(NewStore(p))
}

func TestFixtureRosterIsActiveCLT(t *testing.T) {
	s := newService(t)
	active, err := s.Active(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 20)
	assert.Equal(t, StatusAtivo, active[0].Status)
	assert.Equal(t, RegimeCLT, active[0].Regime)
	adm, ok := active[0].Admissao()
	require.True(t, ok)
	assert.Equal(t, 2024, adm.Year())
}

func TestActiveSkipsInativo(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	_, err := s.Edit(ctx, "4", map[string]json.RawMessage{"status": json.RawMessage(`"inativo"`)})
	require.NoError(t, err)
	active, err := s.Active(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 19)
}

func TestCreateValidatesDates(t *testing.T) {
	s := newService(t)
	_, err := s.Create(context.Background(), map[string]json.RawMessage{
		"nome":           json.RawMessage(`"Ana"`),
		"email":          json.RawMessage(`"ana@empresa.com"`),
		"dataNascimento": json.RawMessage(`"31/12/1990"`),
	})
	var verr *form.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "dataNascimento", verr.Field)

	c, err := s.Create(context.Background(), map[string]json.RawMessage{
		"nome":           json.RawMessage(`"Ana"`),
		"email":          json.RawMessage(`"ana@empresa.com"`),
		"dataNascimento": json.RawMessage(`"1990-12-31"`),
		"regime":         json.RawMessage(`"PJ"`),
	})
	require.NoError(t, err)
	assert.Equal(t, "21", c.ID)
	assert.Equal(t, StatusEmContratacao, c.Status)
	birth, ok := c.Nascimento()
	require.True(t, ok)
	assert.Equal(t, 31, birth.Day())
}

func TestListByTypeAndDepartment(t *testing.T) {
	s := newService(t)
	r := chi.NewRouter()
	r.Route("/colaboradores", NewHandler(nil, s).MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/colaboradores?tipo=CLT&departamento=rh&per_page=50", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":20`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/colaboradores?tipo=PJ", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"empty":true`)
}
