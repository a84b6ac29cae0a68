package httpx_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfohub/cfohub/internal/platform/httpx"
	"github.com/cfohub/cfohub/internal/shared"
)

type fieldErr struct{ field string }

func (e fieldErr) Error() string     { return e.field + ": campo obrigatório" }
func (e fieldErr) FieldName() string { return e.field }

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("cliente 9: %w", shared.ErrNotFound), http.StatusNotFound},
		{"duplicate", shared.ErrDuplicate, http.StatusConflict},
		{"transition", shared.ErrInvalidTransition, http.StatusConflict},
		{"validation", shared.ErrValidation, http.StatusUnprocessableEntity},
		{"bad request", httpx.ErrBadRequest, http.StatusBadRequest},
		{"revoked", shared.ErrTokenRevoked, http.StatusUnauthorized},
		{"upstream", fmt.Errorf("load: %w", httpx.ErrUpstream), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			httpx.RespondError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			var body httpx.ProblemDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.Status)
		})
	}
}

func TestRespondErrorCarriesField(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.RespondError(rec, fmt.Errorf("commit: %w", fieldErr{field: "nome"}))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "nome", body.Field)
	assert.Equal(t, "Validation Failed", body.Title)
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.RespondError(rec, errors.New("db password leaked"))
	assert.NotContains(t, rec.Body.String(), "leaked")
}
