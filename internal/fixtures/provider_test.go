package fixtures_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfohub/cfohub/internal/fixtures"
	"github.com/cfohub/cfohub/internal/platform/httpx"
)

type cliente struct {
	ID          string `json:"id"`
	Nome        string `json:"nome"`
	Status      string `json:"status"`
	DadosGerais struct {
		CNPJ   string `json:"cnpj"`
		Cidade string `json:"cidade"`
	} `json:"dadosGerais"`
}

func (c cliente) RecordID() string     { return c.ID }
func (c cliente) RecordStatus() string { return c.Status }
func (c cliente) DisplayName() string  { return c.Nome }

func newProvider(t *testing.T) *fixtures.Provider {
	t.Helper()
	p, err := fixtures.NewProvider()
	require.NoError(t, err)
	return p
}

func TestListSizes(t *testing.T) {
	p := newProvider(t)
	want := map[string]int{
		"users": 20, "clientes": 15, "colaboradores": 20, "tarefas": 20,
		"solicitacoes": 15, "notificacoes": 15, "documentos": 12, "okrs": 8,
		"avaliacoes": 12, "beneficios": 8, "folha": 12, "folha-clientes": 10,
		"chat": 8, "mural": 15, "feedbacks": 12, "lembretes": 10, "ponto": 25,
		"calendario": 15, "automacoes": 10, "relatorios": 8,
	}
	assert.Len(t, p.Resources(), len(want))
	for name, size := range want {
		items, err := p.List(context.Background(), name)
		require.NoError(t, err, name)
		assert.Len(t, items, size, name)
	}
}

func TestAliases(t *testing.T) {
	p := newProvider(t)
	folha, err := p.List(context.Background(), "folha-pagamento")
	require.NoError(t, err)
	assert.Len(t, folha, 12)
	cal, err := p.List(context.Background(), "calendar")
	require.NoError(t, err)
	assert.Len(t, cal, 15)
}

func TestGeneratorsDeterministic(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()
	for _, name := range p.Resources() {
		a, err := p.Get(ctx, name, 3)
		require.NoError(t, err)
		b, err := p.Get(ctx, name, 3)
		require.NoError(t, err)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("%s fixture 3 not stable:\n%s", name, diff)
		}
	}
}

func TestClienteFixture(t *testing.T) {
	p := newProvider(t)
	ctx := context.Background()

	c3, err := p.Get(ctx, "clientes", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, c3["id"])
	assert.Equal(t, "pendente", c3["status"])
	assert.Equal(t, "2026-01-26T00:00:00.000Z", c3["dataRegistro"])
	dados := c3["dadosGerais"].(fixtures.Fixture)
	assert.Equal(t, "00000000000003", dados["cnpj"])
	assert.Equal(t, "103", dados["numero"])

	c4, err := p.Get(ctx, "clientes", 4)
	require.NoError(t, err)
	assert.Equal(t, "ativo", c4["status"])
}

func TestDatesRollOverMonthBoundary(t *testing.T) {
	p := newProvider(t)
	doc, err := p.Get(context.Background(), "documentos", 30)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-30T00:00:00.000Z", doc["dataUpload"])
}

func TestCreateEchoesSentinel(t *testing.T) {
	p := newProvider(t)
	item, err := p.Create(context.Background(), "tarefas")
	require.NoError(t, err)
	assert.Equal(t, "1", item["id"])
	assert.Equal(t, "Tarefa 1", item["titulo"])

	again, err := p.Create(context.Background(), "tarefas")
	require.NoError(t, err)
	assert.Equal(t, item, again)
}

func TestUnknownResource(t *testing.T) {
	p := newProvider(t)
	_, err := p.List(context.Background(), "nope")
	assert.ErrorIs(t, err, fixtures.ErrUnknownResource)
}

func TestStatic(t *testing.T) {
	p := newProvider(t)
	emp := p.Empresa()
	assert.Equal(t, "CFO X Consultoria", emp.Nome)
	assert.Nil(t, emp.Logo)
	assert.Equal(t, 50, emp.Funcionarios)
	assert.Equal(t, "2020-01-01", emp.Fundacao)

	assert.Len(t, p.Permissoes(), 3)
	assert.Equal(t, "colaborador", p.RolePermissoes("").Role)
	assert.Contains(t, p.RolePermissoes("gestor").Permissoes, "write:tarefas")
	assert.Equal(t, "Gestão", p.CargosSetores()[1].Setor)
}

func TestDecodeStringifiesIDs(t *testing.T) {
	p := newProvider(t)
	load := fixtures.Loader[cliente](p, "clientes")
	items, err := load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 15)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "São Paulo", items[0].DadosGerais.Cidade)
}

func TestParseID(t *testing.T) {
	assert.Equal(t, 5, fixtures.ParseID("5"))
	assert.Equal(t, 12, fixtures.ParseID("12abc"))
	assert.Equal(t, 1, fixtures.ParseID("abc"))
	assert.Equal(t, 1, fixtures.ParseID("0"))
	assert.Equal(t, 1, fixtures.ParseID(""))
}

func TestLoaderUnknownResourceIsUpstream(t *testing.T) {
	p := newProvider(t)
	_, err := fixtures.Loader[cliente](p, "nope")(context.Background())
	assert.ErrorIs(t, err, httpx.ErrUpstream)
}
