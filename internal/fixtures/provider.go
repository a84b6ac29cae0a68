// Package fixtures is the stateless mock backend. It generates deterministic
// records per resource and serves them under /api. Writes are echoed back and
// never remembered.
package fixtures

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// SentinelID is the id every created fixture carries.
const SentinelID = 1

// ErrUnknownResource is returned for resources with no generator.
var ErrUnknownResource = errors.New("fixtures: unknown resource")

type resource struct {
	generate Generator
	size     int
}

var resources = map[string]resource{
	"users":          {user, 20},
	"clientes":       {cliente, 15},
	"colaboradores":  {colaborador, 20},
	"tarefas":        {tarefa, 20},
	"solicitacoes":   {solicitacao, 15},
	"notificacoes":   {notificacao, 15},
	"documentos":     {documento, 12},
	"okrs":           {okr, 8},
	"avaliacoes":     {avaliacao, 12},
	"beneficios":     {beneficio, 8},
	"folha":          {folha, 12},
	"folha-clientes": {folhaCliente, 10},
	"chat":           {chat, 8},
	"mural":          {mural, 15},
	"feedbacks":      {feedback, 12},
	"lembretes":      {lembrete, 10},
	"ponto":          {ponto, 25},
	"calendario":     {calendario, 15},
	"automacoes":     {automacao, 10},
	"relatorios":     {relatorio, 8},
}

var aliases = map[string]string{
	"folha-pagamento": "folha",
	"calendar":        "calendario",
	"cargossetores":   "cargos-setores",
}

// Canonical resolves aliases to the resource name they stand for.
func Canonical(name string) string {
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}

//go:embed static.yaml
var staticYAML []byte

// Empresa is the company profile.
type Empresa struct {
	ID           string  `yaml:"id" json:"id"`
	Nome         string  `yaml:"nome" json:"nome"`
	Logo         *string `yaml:"logo" json:"logo"`
	Descricao    string  `yaml:"descricao" json:"descricao"`
	Website      string  `yaml:"website" json:"website"`
	Funcionarios int     `yaml:"funcionarios" json:"funcionarios"`
	Fundacao     string  `yaml:"fundacao" json:"fundacao"`
	Segmento     string  `yaml:"segmento" json:"segmento"`
}

// Permissao is one role entry.
type Permissao struct {
	ID        string `yaml:"id" json:"id"`
	Nome      string `yaml:"nome" json:"nome"`
	Descricao string `yaml:"descricao" json:"descricao"`
}

// RolePermissoes lists the grants returned for a role.
type RolePermissoes struct {
	Role       string   `json:"role"`
	Permissoes []string `json:"permissoes"`
}

// CargoSetor pairs a job title with its department.
type CargoSetor struct {
	ID    string `yaml:"id" json:"id"`
	Nome  string `yaml:"nome" json:"nome"`
	Setor string `yaml:"setor" json:"setor"`
}

// Static holds the fixed informational documents.
type Static struct {
	Empresa       Empresa      `yaml:"empresa"`
	Permissoes    []Permissao  `yaml:"permissoes"`
	RoleGrants    []string     `yaml:"role_permissoes"`
	DefaultRole   string       `yaml:"default_role"`
	CargosSetores []CargoSetor `yaml:"cargos_setores"`
}

// Provider serves generated fixtures. It holds no mutable state.
type Provider struct {
	static Static
}

// NewProvider parses the embedded static documents.
func NewProvider() (*Provider, error) {
	var static Static
	if err := yaml.Unmarshal(staticYAML, &static); err != nil {
		return nil, fmt.Errorf("fixtures: parse static.yaml: %w", err)
	}
	return &Provider{static: static}, nil
}

// Resources lists the generated resource names in sorted order.
func (p *Provider) Resources() []string {
	names := make([]string, 0, len(resources))
	for name := range resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size reports how many fixtures List returns for name.
func (p *Provider) Size(name string) (int, bool) {
	res, ok := resources[Canonical(name)]
	return res.size, ok
}

// List returns fixtures 1..N for the resource.
func (p *Provider) List(ctx context.Context, name string) ([]Fixture, error) {
	res, err := lookup(name)
	if err != nil {
		return nil, err
	}
	out := make([]Fixture, 0, res.size)
	for id := 1; id <= res.size; id++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, res.generate(id))
	}
	return out, nil
}

// Get returns the fixture for id. Ids below 1 fall back to 1.
func (p *Provider) Get(_ context.Context, name string, id int) (Fixture, error) {
	res, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if id < 1 {
		id = SentinelID
	}
	return res.generate(id), nil
}

// Create echoes a freshly generated record carrying the sentinel id. The
// payload is not inspected and nothing is stored.
func (p *Provider) Create(_ context.Context, name string) (Fixture, error) {
	res, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return res.generate(SentinelID), nil
}

// Empresa returns the company profile.
func (p *Provider) Empresa() Empresa {
	return p.static.Empresa
}

// Permissoes returns the role catalogue.
func (p *Provider) Permissoes() []Permissao {
	return append([]Permissao(nil), p.static.Permissoes...)
}

// RolePermissoes returns the grants for role, defaulting the role name.
func (p *Provider) RolePermissoes(role string) RolePermissoes {
	if role == "" {
		role = p.static.DefaultRole
	}
	return RolePermissoes{Role: role, Permissoes: append([]string(nil), p.static.RoleGrants...)}
}

// CargosSetores returns the job title catalogue.
func (p *Provider) CargosSetores() []CargoSetor {
	return append([]CargoSetor(nil), p.static.CargosSetores...)
}

func lookup(name string) (resource, error) {
	res, ok := resources[Canonical(name)]
	if !ok {
		return resource{}, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	return res, nil
}
