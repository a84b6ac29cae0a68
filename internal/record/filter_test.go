package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cfohub/cfohub/internal/record"
)

func TestFilterPatchNormalisesEmpty(t *testing.T) {
	f := record.FilterPatch{Status: ptr(""), Type: ptr("")}.Apply(record.Filter{Status: "ativo", Type: "pj"})
	assert.Equal(t, record.All, f.Status)
	assert.Equal(t, record.All, f.Type)
}

func TestFilterEqual(t *testing.T) {
	a := record.Filter{Status: "", Extra: map[string]string{"periodo": "2026-01"}}
	b := record.Filter{Status: record.All, Type: record.All, Extra: map[string]string{"periodo": "2026-01"}}
	assert.True(t, a.Equal(b))
	b.Extra["periodo"] = "2026-02"
	assert.False(t, a.Equal(b))
}

func TestNumericID(t *testing.T) {
	assert.Equal(t, "1", record.NumericID[item](nil))
	assert.Equal(t, "13", record.NumericID([]item{{ID: "4"}, {ID: "12"}, {ID: "abc"}}))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, record.ContainsFold("Comércio Ação", "AÇÃO"))
	assert.False(t, record.ContainsFold("Acme", "beta"))
}

func TestFilterStatusAndTypeMatchExactly(t *testing.T) {
	acme := item{ID: "1", Nome: "Acme LTDA", Status: "pendente", Tipo: "pj"}
	assert.True(t, record.Filter{Status: "pendente", Type: "pj"}.Matches(acme))
	assert.False(t, record.Filter{Status: "Pendente"}.Matches(acme))
	assert.False(t, record.Filter{Type: "PJ"}.Matches(acme))
	assert.True(t, record.Filter{Search: "ACME"}.Matches(acme))
}
